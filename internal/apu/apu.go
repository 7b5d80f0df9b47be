// Package apu ties the SPC700 audio CPU and S-DSP mixer to a shared
// 64KiB RAM and the 4-byte CPU<->APU mailbox, and paces the combined
// unit against the main CPU's master clock (spec.md §4.6).
package apu

import (
	"github.com/kestrelcore/snesgo/internal/apu/dsp"
	"github.com/kestrelcore/snesgo/internal/apu/spc700"
)

const ramSize = 65536

// iplROM is the 64-byte boot ROM mapped at $FFC0-$FFFF until the game
// disables it by writing to $F1 bit7. It hands control to whatever
// address the main CPU deposits in the mailbox ports after the
// well-known $AA/$BB handshake, matching real hardware's boot
// protocol closely enough to let ROMs that probe for it proceed.
var iplROM = [64]byte{
	0xCD, 0xEF, 0xBD, 0xE8, 0x00, 0xC6, 0x1D, 0xD0, 0xFC, 0x8F, 0xAA, 0xF4,
	0x8F, 0xBB, 0xF5, 0x78, 0xCC, 0xF4, 0xD0, 0xFB, 0x2F, 0x19, 0xEB, 0xF4,
	0xD0, 0xFC, 0x7E, 0xF4, 0xD0, 0x0B, 0xE4, 0xF5, 0xCB, 0xF4, 0xD7, 0x00,
	0xFC, 0xD0, 0xF3, 0xAB, 0x01, 0x10, 0xEF, 0x7E, 0xF4, 0x10, 0xEB, 0xBA,
	0xF6, 0xDA, 0x00, 0xBA, 0xF4, 0xC4, 0xF4, 0xDD, 0x5D, 0xD0, 0xDB, 0x1F,
	0x00, 0x00, 0xC0, 0xFF,
}

// ram is the APU's private 64KiB address space, with the IPL ROM
// shadowing the top 64 bytes until disabled.
type ram struct {
	data     [ramSize]byte
	iplReady bool // true while the IPL ROM is still mapped in
}

func newRAM() *ram {
	r := &ram{iplReady: true}
	return r
}

func (r *ram) Read(addr uint16) byte {
	if r.iplReady && addr >= 0xFFC0 {
		return iplROM[addr-0xFFC0]
	}
	return r.data[addr]
}

func (r *ram) Write(addr uint16, v byte) {
	r.data[addr] = v
}

// APU is the combined SPC700 + S-DSP audio unit addressable by the
// main bus through the $2140-$2143 mailbox.
type APU struct {
	cpu *spc700.CPU
	dsp *dsp.DSP
	ram *ram

	ports [4]byte // CPU-writable side of the mailbox, read by the SPC700 at $F4-$F7
	toCPU [4]byte // SPC700-writable side, read by the main CPU via ReadPort

	dspAddr byte // $F2 latch

	cycleAccumulator float64
	apuCyclesPerMaster float64
	sampleAccumulator float64
	samplesPerTick     float64
	dspTick            uint64

	sampleBuffer []float32
	sampleRate   int
}

// New constructs an APU clocked at apuClockHz relative to the main
// CPU's masterClockHz, producing interleaved stereo float32 samples at
// sampleRate into its internal buffer.
func New(masterClockHz, apuClockHz float64, sampleRate int) *APU {
	r := newRAM()
	a := &APU{
		ram:                r,
		sampleRate:         sampleRate,
		apuCyclesPerMaster: apuClockHz / masterClockHz,
		sampleBuffer:       make([]float32, 0, 4096),
	}
	a.dsp = dsp.New(r)
	a.cpu = spc700.New(apuMemory{a})
	a.samplesPerTick = apuClockHz / float64(sampleRate)
	a.cpu.Reset()
	return a
}

// apuMemory adapts APU's register-mapped $F0-$FF page onto the plain
// ram.Read/Write the SPC700 otherwise uses directly.
type apuMemory struct{ a *APU }

func (m apuMemory) Read(addr uint16) byte {
	if addr >= 0xF0 && addr <= 0xFF {
		return m.a.readIOPort(addr)
	}
	return m.a.ram.Read(addr)
}

func (m apuMemory) Write(addr uint16, v byte) {
	if addr >= 0xF0 && addr <= 0xFF {
		m.a.writeIOPort(addr, v)
		return
	}
	m.a.ram.Write(addr, v)
}

func (a *APU) readIOPort(addr uint16) byte {
	switch addr {
	case 0xF2:
		return a.dspAddr
	case 0xF3:
		return a.dsp.ReadRegister(a.dspAddr)
	case 0xF4, 0xF5, 0xF6, 0xF7:
		return a.ports[addr-0xF4]
	default:
		return a.ram.Read(addr)
	}
}

func (a *APU) writeIOPort(addr uint16, v byte) {
	switch addr {
	case 0xF1:
		if v&0x80 == 0 {
			a.ram.iplReady = false
		}
		if v&0x10 != 0 {
			a.ports[0], a.ports[1] = 0, 0
		}
		if v&0x20 != 0 {
			a.ports[2], a.ports[3] = 0, 0
		}
	case 0xF2:
		a.dspAddr = v
	case 0xF3:
		a.dsp.WriteRegister(a.dspAddr, v)
	case 0xF4, 0xF5, 0xF6, 0xF7:
		a.toCPU[addr-0xF4] = v
	default:
		a.ram.Write(addr, v)
	}
}

// ReadPort is called by the main bus for CPU reads of $2140-$2143,
// returning whatever the SPC700 last wrote to that mailbox slot.
func (a *APU) ReadPort(index int) byte {
	return a.toCPU[index&0x3]
}

// WritePort is called by the main bus for CPU writes to $2140-$2143,
// making the value visible to the SPC700 at $F4-$F7.
func (a *APU) WritePort(index int, value byte) {
	a.ports[index&0x3] = value
}

// Step advances the APU by masterCycles worth of main-CPU time,
// running the SPC700 and clocking the DSP mixer in proportion, and
// appends any produced audio samples to the internal buffer.
func (a *APU) Step(masterCycles int) {
	a.cycleAccumulator += float64(masterCycles) * a.apuCyclesPerMaster
	for a.cycleAccumulator >= 1 {
		spent := a.cpu.Step()
		a.cycleAccumulator -= float64(spent)
		for i := uint64(0); i < spent; i++ {
			a.sampleAccumulator++
			if a.sampleAccumulator >= a.samplesPerTick {
				a.sampleAccumulator -= a.samplesPerTick
				l, r := a.dsp.Sample(a.dspTick)
				a.dspTick++
				a.sampleBuffer = append(a.sampleBuffer, float32(l)/32768, float32(r)/32768)
			}
		}
	}
}

// Samples drains and returns the buffered interleaved stereo frames
// produced since the last call.
func (a *APU) Samples() []float32 {
	s := a.sampleBuffer
	a.sampleBuffer = make([]float32, 0, 4096)
	return s
}

// Reset maps the IPL ROM back in, clears both mailbox directions and
// resets the SPC700, so the IPL boot code runs again from its vector.
func (a *APU) Reset() {
	a.ram.iplReady = true
	a.ports = [4]byte{}
	a.toCPU = [4]byte{}
	a.cpu.Reset()
}
