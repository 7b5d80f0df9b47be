package cpu

// execute dispatches a fetched opcode to its handler. Addressing-mode
// operands (when the instruction has one) are resolved inside each
// handler via c.resolve, since the width to fetch at depends on the
// instruction (A-width vs X/Y-width vs fixed 8-bit).
func (c *CPU) execute(opcode byte, inst Instruction) {
	switch inst.Name {
	case "BRK":
		c.doBRK()
	case "COP":
		c.doCOP()
	case "WDM":
		c.fetch8()
	case "NOP":

	case "CLC":
		c.C = false
	case "SEC":
		c.C = true
	case "CLI":
		c.I = false
	case "SEI":
		c.I = true
	case "CLD":
		c.DFlag = false
	case "SED":
		c.DFlag = true
	case "CLV":
		c.V = false
	case "XCE":
		c.doXCE()
	case "REP":
		c.setStatusByte(c.statusByte() &^ c.fetch8())
	case "SEP":
		c.setStatusByte(c.statusByte() | c.fetch8())

	case "TAX", "TAY", "TXA", "TYA", "TXY", "TYX", "TSX", "TXS", "TCD", "TDC", "TCS", "TSC":
		c.doTransfer(inst.Name)

	case "PHA", "PHX", "PHY", "PHP", "PHB", "PHD", "PHK":
		c.doPush(inst.Name)
	case "PLA", "PLX", "PLY", "PLP", "PLB", "PLD":
		c.doPull(inst.Name)

	case "INX", "INY", "DEX", "DEY":
		c.doIncDecReg(inst.Name)
	case "INC":
		c.doIncDecMem(inst, 1)
	case "DEC":
		c.doIncDecMem(inst, -1)

	case "LDA", "LDX", "LDY":
		c.doLoad(inst.Name, inst)
	case "STA", "STX", "STY":
		c.doStore(inst.Name, inst)
	case "STZ":
		c.doSTZ(inst)

	case "ADC":
		c.doADC(inst)
	case "SBC":
		c.doSBC(inst)

	case "AND", "ORA", "EOR":
		c.doLogic(inst.Name, inst)
	case "BIT":
		c.doBIT(inst)
	case "TSB":
		c.doTSB(inst)
	case "TRB":
		c.doTRB(inst)

	case "ASL", "LSR", "ROL", "ROR":
		c.doShift(inst.Name, inst)

	case "CMP":
		c.doCompareA(inst)
	case "CPX":
		c.doCompareReg(&c.X, inst)
	case "CPY":
		c.doCompareReg(&c.Y, inst)

	case "BPL", "BMI", "BVC", "BVS", "BCC", "BCS", "BNE", "BEQ", "BRA":
		c.doBranch(inst.Name)
	case "BRL":
		op := c.resolve(ModeRelativeLong, 0)
		c.PC = op.offset

	case "JMP":
		c.doJMP(inst)
	case "JML":
		c.doJML()
	case "JSR":
		c.doJSR(inst)
	case "JSL":
		c.doJSL()
	case "RTS":
		c.doRTS()
	case "RTL":
		c.doRTL()
	case "RTI":
		c.doRTI()

	case "PEA":
		c.pushWord(c.fetch16())
	case "PEI":
		dp := c.directPageBase(c.fetch8())
		lo := c.readBus8(0, dp)
		hi := c.readBus8(0, dp+1)
		c.pushWord(uint16(lo) | uint16(hi)<<8)
	case "PER":
		disp := int16(c.fetch16())
		c.pushWord(uint16(int32(c.PC) + int32(disp)))

	case "MVN":
		c.doMVx(true)
	case "MVP":
		c.doMVx(false)

	case "WAI":
		c.waiting = true
	case "STP":
		c.stopped = true
	case "XBA":
		c.doXBA()
	}
}

func (c *CPU) doXCE() {
	oldE := c.E
	c.E = c.C
	c.C = oldE
	if c.E {
		c.M, c.XFlag = true, true
		c.X &= 0x00FF
		c.Y &= 0x00FF
		c.S = 0x0100 | (c.S & 0x00FF)
	}
}

func (c *CPU) transferToA(value uint16) {
	w := c.widthA()
	v := uint32(value)
	if w == 8 {
		v &= 0xFF
	}
	c.writeOperand(operand{isAccum: true}, w, v)
	c.setZN(v, w)
}

func (c *CPU) transferToX(value uint16) {
	w := c.widthXY()
	v := value
	if w == 8 {
		v &= 0x00FF
	}
	c.X = v
	c.setZN(uint32(v), w)
}

func (c *CPU) transferToY(value uint16) {
	w := c.widthXY()
	v := value
	if w == 8 {
		v &= 0x00FF
	}
	c.Y = v
	c.setZN(uint32(v), w)
}

func (c *CPU) doTransfer(name string) {
	switch name {
	case "TAX":
		c.transferToX(c.A)
	case "TAY":
		c.transferToY(c.A)
	case "TXA":
		c.transferToA(c.X)
	case "TYA":
		c.transferToA(c.Y)
	case "TXY":
		c.transferToY(c.X)
	case "TYX":
		c.transferToX(c.Y)
	case "TSX":
		c.transferToX(c.S)
	case "TXS":
		if c.E {
			c.S = 0x0100 | (c.X & 0x00FF)
		} else {
			c.S = c.X
		}
	case "TCD":
		c.D = c.A
		c.setZN(uint32(c.D), 16)
	case "TDC":
		c.A = c.D
		c.setZN(uint32(c.A), 16)
	case "TCS":
		if c.E {
			c.S = 0x0100 | (c.A & 0x00FF)
		} else {
			c.S = c.A
		}
	case "TSC":
		c.A = c.S
		c.setZN(uint32(c.A), 16)
	}
}

func (c *CPU) doPush(name string) {
	switch name {
	case "PHA":
		if c.widthA() == 8 {
			c.push(byte(c.A))
		} else {
			c.pushWord(c.A)
		}
	case "PHX":
		if c.widthXY() == 8 {
			c.push(byte(c.X))
		} else {
			c.pushWord(c.X)
		}
	case "PHY":
		if c.widthXY() == 8 {
			c.push(byte(c.Y))
		} else {
			c.pushWord(c.Y)
		}
	case "PHP":
		c.pushStatus(false)
	case "PHB":
		c.push(c.DB)
	case "PHD":
		c.pushWord(c.D)
	case "PHK":
		c.push(c.PB)
	}
}

func (c *CPU) doPull(name string) {
	switch name {
	case "PLA":
		w := c.widthA()
		var v uint32
		if w == 8 {
			v = uint32(c.pop())
		} else {
			v = uint32(c.popWord())
		}
		c.writeOperand(operand{isAccum: true}, w, v)
		c.setZN(v, w)
	case "PLX":
		w := c.widthXY()
		var v uint16
		if w == 8 {
			v = uint16(c.pop())
		} else {
			v = c.popWord()
		}
		c.X = v
		c.setZN(uint32(v), w)
	case "PLY":
		w := c.widthXY()
		var v uint16
		if w == 8 {
			v = uint16(c.pop())
		} else {
			v = c.popWord()
		}
		c.Y = v
		c.setZN(uint32(v), w)
	case "PLP":
		c.setStatusByte(c.pop())
	case "PLB":
		c.DB = c.pop()
		c.setZN(uint32(c.DB), 8)
	case "PLD":
		c.D = c.popWord()
		c.setZN(uint32(c.D), 16)
	}
}

func incWidth(v uint16, delta int, width int) uint16 {
	if width == 8 {
		return uint16(byte(int(byte(v)) + delta))
	}
	return uint16(int32(v) + int32(delta))
}

func (c *CPU) doIncDecReg(name string) {
	w := c.widthXY()
	switch name {
	case "INX":
		c.X = incWidth(c.X, 1, w)
		c.setZN(uint32(c.X), w)
	case "INY":
		c.Y = incWidth(c.Y, 1, w)
		c.setZN(uint32(c.Y), w)
	case "DEX":
		c.X = incWidth(c.X, -1, w)
		c.setZN(uint32(c.X), w)
	case "DEY":
		c.Y = incWidth(c.Y, -1, w)
		c.setZN(uint32(c.Y), w)
	}
}

func (c *CPU) doIncDecMem(inst Instruction, delta int) {
	w := c.widthA()
	op := c.resolve(inst.Mode, w)
	v := c.readOperand(op, w)
	nv := uint32(incWidth(uint16(v), delta, w))
	c.writeOperand(op, w, nv)
	c.setZN(nv, w)
	c.addCycles(2)
}

func (c *CPU) doLoad(name string, inst Instruction) {
	switch name {
	case "LDA":
		w := c.widthA()
		op := c.resolve(inst.Mode, w)
		v := c.readOperand(op, w)
		c.writeOperand(operand{isAccum: true}, w, v)
		c.setZN(v, w)
	case "LDX":
		w := c.widthXY()
		op := c.resolve(inst.Mode, w)
		v := c.readOperand(op, w)
		c.X = uint16(v)
		c.setZN(v, w)
	case "LDY":
		w := c.widthXY()
		op := c.resolve(inst.Mode, w)
		v := c.readOperand(op, w)
		c.Y = uint16(v)
		c.setZN(v, w)
	}
}

func (c *CPU) doStore(name string, inst Instruction) {
	switch name {
	case "STA":
		w := c.widthA()
		op := c.resolve(inst.Mode, w)
		c.writeOperand(op, w, uint32(c.A))
	case "STX":
		w := c.widthXY()
		op := c.resolve(inst.Mode, w)
		c.writeOperand(op, w, uint32(c.X))
	case "STY":
		w := c.widthXY()
		op := c.resolve(inst.Mode, w)
		c.writeOperand(op, w, uint32(c.Y))
	}
}

func (c *CPU) doSTZ(inst Instruction) {
	w := c.widthA()
	op := c.resolve(inst.Mode, w)
	c.writeOperand(op, w, 0)
}

func (c *CPU) doLogic(name string, inst Instruction) {
	w := c.widthA()
	op := c.resolve(inst.Mode, w)
	v := c.readOperand(op, w)
	a := c.readOperand(operand{isAccum: true}, w)
	var r uint32
	switch name {
	case "AND":
		r = a & v
	case "ORA":
		r = a | v
	case "EOR":
		r = a ^ v
	}
	c.writeOperand(operand{isAccum: true}, w, r)
	c.setZN(r, w)
}

func (c *CPU) doBIT(inst Instruction) {
	w := c.widthA()
	op := c.resolve(inst.Mode, w)
	v := c.readOperand(op, w)
	a := c.readOperand(operand{isAccum: true}, w)
	r := a & v
	if w == 8 {
		c.Z = byte(r) == 0
	} else {
		c.Z = uint16(r) == 0
	}
	if !op.isImm {
		if w == 8 {
			c.N = v&0x80 != 0
			c.V = v&0x40 != 0
		} else {
			c.N = v&0x8000 != 0
			c.V = v&0x4000 != 0
		}
	}
}

func (c *CPU) doTSB(inst Instruction) {
	w := c.widthA()
	op := c.resolve(inst.Mode, w)
	v := c.readOperand(op, w)
	a := c.readOperand(operand{isAccum: true}, w)
	if w == 8 {
		c.Z = byte(a&v) == 0
	} else {
		c.Z = uint16(a&v) == 0
	}
	c.writeOperand(op, w, v|a)
}

func (c *CPU) doTRB(inst Instruction) {
	w := c.widthA()
	op := c.resolve(inst.Mode, w)
	v := c.readOperand(op, w)
	a := c.readOperand(operand{isAccum: true}, w)
	if w == 8 {
		c.Z = byte(a&v) == 0
	} else {
		c.Z = uint16(a&v) == 0
	}
	c.writeOperand(op, w, v&^a)
}

func (c *CPU) doShift(name string, inst Instruction) {
	w := c.widthA()
	op := c.resolve(inst.Mode, w)
	v := c.readOperand(op, w)
	msb := msbFor(w)
	var r uint32
	var carryOut bool
	switch name {
	case "ASL":
		carryOut = v&msb != 0
		r = (v << 1) & maskFor(w)
	case "LSR":
		carryOut = v&1 != 0
		r = v >> 1
	case "ROL":
		carryOut = v&msb != 0
		r = (v << 1) & maskFor(w)
		if c.C {
			r |= 1
		}
	case "ROR":
		carryOut = v&1 != 0
		r = v >> 1
		if c.C {
			r |= msb
		}
	}
	c.C = carryOut
	c.writeOperand(op, w, r)
	c.setZN(r, w)
	c.addCycles(2)
}

func (c *CPU) doCompareA(inst Instruction) {
	w := c.widthA()
	op := c.resolve(inst.Mode, w)
	v := c.readOperand(op, w)
	a := c.readOperand(operand{isAccum: true}, w)
	c.compare(a, v, w)
}

func (c *CPU) doCompareReg(reg *uint16, inst Instruction) {
	w := c.widthXY()
	op := c.resolve(inst.Mode, w)
	v := c.readOperand(op, w)
	c.compare(uint32(*reg), v, w)
}

func (c *CPU) doBranch(name string) {
	op := c.resolve(ModeRelative, 0)
	var taken bool
	switch name {
	case "BPL":
		taken = !c.N
	case "BMI":
		taken = c.N
	case "BVC":
		taken = !c.V
	case "BVS":
		taken = c.V
	case "BCC":
		taken = !c.C
	case "BCS":
		taken = c.C
	case "BNE":
		taken = !c.Z
	case "BEQ":
		taken = c.Z
	case "BRA":
		taken = true
	}
	if taken {
		c.addCycles(1)
		if c.E && (c.PC&0xFF00) != (op.offset&0xFF00) {
			c.addCycles(1)
		}
		c.PC = op.offset
	}
}

func (c *CPU) doJMP(inst Instruction) {
	switch inst.Mode {
	case ModeAbsolute:
		c.PC = c.fetch16()
	case ModeAbsoluteLong:
		bank, off := c.fetch24AsBankOffset()
		c.PB = bank
		c.PC = off
	case ModeAbsoluteIndirect:
		ptr := c.fetch16()
		lo := c.readBus8(0, ptr)
		hi := c.readBus8(0, ptr+1)
		c.PC = uint16(lo) | uint16(hi)<<8
	case ModeAbsoluteIndexedIndirect:
		ptr := c.fetch16() + c.X
		lo := c.readBus8(c.PB, ptr)
		hi := c.readBus8(c.PB, ptr+1)
		c.PC = uint16(lo) | uint16(hi)<<8
	}
}

func (c *CPU) doJML() {
	ptr := c.fetch16()
	lo := c.readBus8(0, ptr)
	mid := c.readBus8(0, ptr+1)
	hi := c.readBus8(0, ptr+2)
	c.PB = hi
	c.PC = uint16(lo) | uint16(mid)<<8
}

func (c *CPU) doJSR(inst Instruction) {
	switch inst.Mode {
	case ModeAbsolute:
		off := c.fetch16()
		c.pushWord(c.PC - 1)
		c.PC = off
	case ModeAbsoluteIndexedIndirect:
		base := c.fetch16()
		c.pushWord(c.PC - 1)
		ptr := base + c.X
		lo := c.readBus8(c.PB, ptr)
		hi := c.readBus8(c.PB, ptr+1)
		c.PC = uint16(lo) | uint16(hi)<<8
	}
}

func (c *CPU) doJSL() {
	bank, off := c.fetch24AsBankOffset()
	c.push(c.PB)
	c.pushWord(c.PC - 1)
	c.PB = bank
	c.PC = off
}

func (c *CPU) doRTS() {
	addr := c.popWord()
	c.PC = addr + 1
}

func (c *CPU) doRTL() {
	addr := c.popWord()
	c.PB = c.pop()
	c.PC = addr + 1
}

func (c *CPU) doRTI() {
	p := c.pop()
	c.setStatusByte(p)
	c.PC = c.popWord()
	if !c.E {
		c.PB = c.pop()
	}
}

// doMVx executes one byte of a block move and leaves PC pointing back at
// the opcode (rewinding past the two bank-operand bytes) until the
// 16-bit count in A is exhausted, so the instruction re-enters on the
// next Step call. A holds count-1 for the whole move, independent of
// the M flag.
func (c *CPU) doMVx(isMVN bool) {
	dbank := c.fetch8()
	sbank := c.fetch8()
	c.DB = dbank

	v := c.readBus8(sbank, c.X)
	c.writeBus8(dbank, c.Y, v)
	c.addCycles(2)

	if isMVN {
		c.X++
		c.Y++
	} else {
		c.X--
		c.Y--
	}
	if c.widthXY() == 8 {
		c.X &= 0x00FF
		c.Y &= 0x00FF
	}

	if c.A == 0 {
		c.A = 0xFFFF
		return
	}
	c.A--
	c.PC -= 3
}

func (c *CPU) doXBA() {
	lo := byte(c.A)
	hi := byte(c.A >> 8)
	c.A = uint16(lo)<<8 | uint16(hi)
	c.setZN(uint32(hi), 8)
}

func (c *CPU) doBRK() {
	c.fetch8()
	c.vector(0xFFE6, 0xFFFE, true)
}

func (c *CPU) doCOP() {
	c.fetch8()
	c.vector(0xFFE4, 0xFFF4, false)
}
