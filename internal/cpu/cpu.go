// Package cpu implements the 65C816 main CPU interpreter described in
// spec.md §4.3: emulation and native mode, all addressing modes, bank
// wrapping, BCD arithmetic, and NMI/IRQ/BRK/COP/RESET delivery.
package cpu

import "fmt"

// Bus is the memory interface the CPU steps against. It matches
// internal/bus.Bus's (bank, offset) read/write shape so the CPU never
// needs to compose a flat 24-bit address itself.
type Bus interface {
	Read(bank uint8, offset uint16) (byte, int)
	Write(bank uint8, offset uint16, value byte) int
}

// AddrMode enumerates the 65C816 addressing modes.
type AddrMode int

const (
	ModeImplied AddrMode = iota
	ModeAccumulator
	ModeImmediateA  // immediate, width follows the M flag
	ModeImmediateXY // immediate, width follows the X flag
	ModeImmediate8  // immediate, always one byte (REP/SEP/COP/BRK signature)
	ModeDirect
	ModeDirectX
	ModeDirectY
	ModeDirectIndirect      // (d)
	ModeDirectIndirectLong  // [d]
	ModeDirectIndexedInd    // (d,x)
	ModeDirectIndInd        // (d),y
	ModeDirectIndLongInd    // [d],y
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeAbsoluteLong
	ModeAbsoluteLongX
	ModeStackRelative     // d,s
	ModeStackRelIndIndexed // (d,s),y
	ModeAbsoluteIndirect   // (a) - JMP only
	ModeAbsoluteIndirectLong // [a] - JML only
	ModeAbsoluteIndexedIndirect // (a,x) - JMP/JSR only
	ModeRelative
	ModeRelativeLong
	ModeBlockMove
	ModeStack // PHx/PLx/PHP/PLP/RTS/RTI/... no memory operand fetched here
)

// Instruction describes one of the 256 opcode slots.
type Instruction struct {
	Name string
	Mode AddrMode
}

// StepResult reports the outcome of one CPU.Step call.
type StepResult struct {
	Cycles  uint64
	Stopped bool // STP was executed
}

// Status register bit masks.
const (
	flagN = 0x80
	flagV = 0x40
	flagM = 0x20
	flagX = 0x10
	flagD = 0x08
	flagI = 0x04
	flagZ = 0x02
	flagC = 0x01
)

// CPU is the 65C816 register file and interpreter.
type CPU struct {
	A, X, Y uint16
	S       uint16
	D       uint16
	DB, PB  uint8
	PC      uint16

	N, V, M, XFlag, DFlag, I, Z, C bool
	E                              bool // emulation mode

	bus Bus

	instructions [256]Instruction

	cycles uint64

	nmiLine     bool
	nmiPrevious bool
	nmiPending  bool
	irqLine     bool

	waiting bool
	stopped bool
}

// New constructs a CPU wired to bus. Call Reset before stepping.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.buildInstructionTable()
	return c
}

// Reset performs the RESET vector sequence (spec.md §3 lifecycle):
// clears to emulation mode, forces M/X/S-high per the invariants, and
// loads PC from $00:FFFC.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.D = 0
	c.DB, c.PB = 0, 0
	c.S = 0x01FF
	c.E = true
	c.M, c.XFlag = true, true
	c.DFlag = false
	c.I = true
	c.N, c.V, c.Z, c.C = false, false, false, false
	c.waiting, c.stopped = false, false
	c.nmiPending, c.nmiLine, c.nmiPrevious, c.irqLine = false, false, false, false

	lo, _ := c.bus.Read(0x00, 0xFFFC)
	hi, _ := c.bus.Read(0x00, 0xFFFD)
	c.PC = uint16(lo) | uint16(hi)<<8
}

// Stopped reports whether STP was encountered (spec.md §7 STPEncountered).
func (c *CPU) Stopped() bool { return c.stopped }

// SetNMI updates the NMI line; NMI is edge-triggered on the falling edge
// (spec.md §4.3).
func (c *CPU) SetNMI(asserted bool) {
	if c.nmiPrevious && !asserted {
		c.nmiPending = true
	}
	c.nmiPrevious = asserted
	c.nmiLine = asserted
}

// SetIRQ updates the level-sensitive IRQ line.
func (c *CPU) SetIRQ(asserted bool) { c.irqLine = asserted }

// RequestNMI immediately latches a pending NMI without edge detection,
// used by the scheduler for the "enable while pending" ordering rule
// (spec.md §4.7).
func (c *CPU) RequestNMI() { c.nmiPending = true }

func (c *CPU) widthA() int {
	if c.E || c.M {
		return 8
	}
	return 16
}

func (c *CPU) widthXY() int {
	if c.E || c.XFlag {
		return 8
	}
	return 16
}

// Step executes one instruction (or one WAI/STP tick, or one byte of an
// in-progress MVN/MVP) and returns the master cycles consumed.
func (c *CPU) Step() StepResult {
	if c.stopped {
		return StepResult{Cycles: 2, Stopped: true}
	}

	if c.serviceInterrupts() {
		return StepResult{Cycles: c.takeCycles()}
	}

	if c.waiting {
		if c.nmiLine || c.irqLine || c.nmiPending {
			c.waiting = false
		} else {
			return StepResult{Cycles: 8}
		}
		return StepResult{Cycles: c.takeCycles()}
	}

	opcode, cost := c.bus.Read(c.PB, c.PC)
	c.addCycles(cost)
	c.PC++

	inst := c.instructions[opcode]
	c.execute(opcode, inst)

	return StepResult{Cycles: c.takeCycles(), Stopped: c.stopped}
}

func (c *CPU) takeCycles() uint64 {
	v := c.cycles
	c.cycles = 0
	return v
}

func (c *CPU) addCycles(n int) { c.cycles += uint64(n) }

// serviceInterrupts vectors through NMI/IRQ if pending, after the
// current instruction boundary (spec.md §4.3).
func (c *CPU) serviceInterrupts() bool {
	if c.nmiPending {
		c.nmiPending = false
		c.waiting = false
		c.vector(0xFFEA, 0xFFFA, false)
		return true
	}
	if c.irqLine && !c.I {
		c.waiting = false
		c.vector(0xFFEE, 0xFFFE, false)
		return true
	}
	return false
}

func (c *CPU) vector(nativeVec, emuVec uint16, brk bool) {
	c.pushWord(c.PC)
	if !c.E {
		c.push(c.PB)
	}
	c.pushStatus(brk)
	c.I = true
	c.DFlag = false
	c.PB = 0
	target := emuVec
	if !c.E {
		target = nativeVec
	}
	lo, _ := c.bus.Read(0x00, target)
	hi, _ := c.bus.Read(0x00, target+1)
	c.PC = uint16(lo) | uint16(hi)<<8
	c.addCycles(7)
}

// --- stack helpers ---

func (c *CPU) stackWrap(addr uint16) uint16 {
	if c.E {
		return 0x0100 | (addr & 0x00FF)
	}
	return addr
}

func (c *CPU) push(v byte) {
	c.bus.Write(0x00, c.stackWrap(c.S), v)
	c.addCycles(CycleGeneric)
	c.S--
	if c.E {
		c.S = 0x0100 | (c.S & 0x00FF)
	}
}

func (c *CPU) pop() byte {
	c.S++
	if c.E {
		c.S = 0x0100 | (c.S & 0x00FF)
	}
	v, _ := c.bus.Read(0x00, c.stackWrap(c.S))
	c.addCycles(CycleGeneric)
	return v
}

func (c *CPU) pushWord(v uint16) {
	c.push(byte(v >> 8))
	c.push(byte(v))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return lo | hi<<8
}

// CycleGeneric is the nominal internal-cycle cost used for stack pushes
// and other non-bus-timed internal operations (spec.md §9 Open
// Questions: treated as a constant fast-internal-access cost, not
// FastROM-dependent).
const CycleGeneric = 6

func (c *CPU) statusByte() byte {
	var p byte
	if c.N {
		p |= flagN
	}
	if c.V {
		p |= flagV
	}
	if c.E {
		p |= flagM // bit5 always set (unused bit reads 1) in emulation
	} else {
		if c.M {
			p |= flagM
		}
		if c.XFlag {
			p |= flagX
		}
	}
	if c.DFlag {
		p |= flagD
	}
	if c.I {
		p |= flagI
	}
	if c.Z {
		p |= flagZ
	}
	if c.C {
		p |= flagC
	}
	return p
}

func (c *CPU) pushStatus(brk bool) {
	p := c.statusByte()
	if c.E {
		if brk {
			p |= flagX // B flag occupies bit4 in emulation-mode pushes
		} else {
			p &^= flagX
		}
	}
	c.push(p)
}

func (c *CPU) setStatusByte(p byte) {
	c.N = p&flagN != 0
	c.V = p&flagV != 0
	if !c.E {
		wasX := c.XFlag
		c.M = p&flagM != 0
		c.XFlag = p&flagX != 0
		if c.XFlag && !wasX {
			c.X &= 0x00FF
			c.Y &= 0x00FF
		}
	}
	c.DFlag = p&flagD != 0
	c.I = p&flagI != 0
	c.Z = p&flagZ != 0
	c.C = p&flagC != 0
}

func (c *CPU) setZN(value uint32, width int) {
	if width == 8 {
		c.Z = byte(value) == 0
		c.N = value&0x80 != 0
	} else {
		c.Z = uint16(value) == 0
		c.N = value&0x8000 != 0
	}
}

// String renders a compact register dump, useful for trace logging.
func (c *CPU) String() string {
	return fmt.Sprintf("PB=%02X PC=%04X A=%04X X=%04X Y=%04X S=%04X D=%04X DB=%02X P=%02X E=%v",
		c.PB, c.PC, c.A, c.X, c.Y, c.S, c.D, c.DB, c.statusByte(), c.E)
}
