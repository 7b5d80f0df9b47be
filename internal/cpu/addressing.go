package cpu

// operand is the resolved target of an addressing mode: either a bus
// location (bank:offset) or an immediate/accumulator value fetched
// inline.
type operand struct {
	bank    uint8
	offset  uint16
	isAccum bool
	isImm   bool
	imm     uint32
}

func (c *CPU) fetch8() byte {
	v, cost := c.bus.Read(c.PB, c.PC)
	c.addCycles(cost)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return lo | hi<<8
}

func (c *CPU) readBus8(bank uint8, offset uint16) byte {
	v, cost := c.bus.Read(bank, offset)
	c.addCycles(cost)
	return v
}

func (c *CPU) writeBus8(bank uint8, offset uint16, value byte) {
	cost := c.bus.Write(bank, offset, value)
	c.addCycles(cost)
}

// directPageBase charges the direct-page low-byte-nonzero cycle penalty
// (spec.md §4.3) and returns the bank-0 base offset for direct-page
// addressing, which always targets bank 0 regardless of DB.
func (c *CPU) directPageBase(disp byte) uint16 {
	if c.D&0x00FF != 0 {
		c.addCycles(1)
	}
	return c.D + uint16(disp)
}

// resolve computes the operand for mode, fetching any instruction bytes
// it needs. widthHint selects the size of #immediate operands.
func (c *CPU) resolve(mode AddrMode, widthHint int) operand {
	switch mode {
	case ModeImplied, ModeStack:
		return operand{}

	case ModeAccumulator:
		return operand{isAccum: true}

	case ModeImmediateA:
		return c.resolveImmediate(c.widthA())
	case ModeImmediateXY:
		return c.resolveImmediate(c.widthXY())
	case ModeImmediate8:
		return c.resolveImmediate(8)

	case ModeDirect:
		off := c.directPageBase(c.fetch8())
		return operand{bank: 0, offset: off}

	case ModeDirectX:
		off := c.directPageBase(c.fetch8()) + c.X
		return operand{bank: 0, offset: off}

	case ModeDirectY:
		off := c.directPageBase(c.fetch8()) + c.Y
		return operand{bank: 0, offset: off}

	case ModeDirectIndirect:
		dp := c.directPageBase(c.fetch8())
		lo := c.readBus8(0, dp)
		hi := c.readBus8(0, dp+1)
		return operand{bank: c.DB, offset: uint16(lo) | uint16(hi)<<8}

	case ModeDirectIndirectLong:
		dp := c.directPageBase(c.fetch8())
		lo := c.readBus8(0, dp)
		mid := c.readBus8(0, dp+1)
		hi := c.readBus8(0, dp+2)
		return operand{bank: hi, offset: uint16(lo) | uint16(mid)<<8}

	case ModeDirectIndexedInd:
		dp := c.directPageBase(c.fetch8()) + c.X
		lo := c.readBus8(0, dp)
		hi := c.readBus8(0, dp+1)
		return operand{bank: c.DB, offset: uint16(lo) | uint16(hi)<<8}

	case ModeDirectIndInd:
		dp := c.directPageBase(c.fetch8())
		lo := c.readBus8(0, dp)
		hi := c.readBus8(0, dp+1)
		base := uint16(lo) | uint16(hi)<<8
		return operand{bank: c.DB, offset: base + c.Y}

	case ModeDirectIndLongInd:
		dp := c.directPageBase(c.fetch8())
		lo := c.readBus8(0, dp)
		mid := c.readBus8(0, dp+1)
		hi := c.readBus8(0, dp+2)
		base := uint32(lo) | uint32(mid)<<8 | uint32(hi)<<16
		eff := (base + uint32(c.Y)) & 0xFFFFFF
		return operand{bank: uint8(eff >> 16), offset: uint16(eff)}

	case ModeAbsolute:
		off := c.fetch16()
		return operand{bank: c.DB, offset: off}

	case ModeAbsoluteX:
		off := c.fetch16() + c.X
		return operand{bank: c.DB, offset: off}

	case ModeAbsoluteY:
		off := c.fetch16() + c.Y
		return operand{bank: c.DB, offset: off}

	case ModeAbsoluteLong:
		hi, off := c.fetch24AsBankOffset()
		return operand{bank: hi, offset: off}

	case ModeAbsoluteLongX:
		hi, off := c.fetch24AsBankOffset()
		eff := (uint32(hi)<<16 | uint32(off)) + uint32(c.X)
		eff &= 0xFFFFFF
		return operand{bank: uint8(eff >> 16), offset: uint16(eff)}

	case ModeStackRelative:
		off := c.S + uint16(c.fetch8())
		return operand{bank: 0, offset: off}

	case ModeStackRelIndIndexed:
		sr := c.S + uint16(c.fetch8())
		lo := c.readBus8(0, sr)
		hi := c.readBus8(0, sr+1)
		base := uint16(lo) | uint16(hi)<<8
		return operand{bank: c.DB, offset: base + c.Y}

	case ModeAbsoluteIndirect:
		ptr := c.fetch16()
		lo := c.readBus8(0, ptr)
		hi := c.readBus8(0, ptr+1)
		return operand{bank: c.PB, offset: uint16(lo) | uint16(hi)<<8}

	case ModeAbsoluteIndirectLong:
		ptr := c.fetch16()
		lo := c.readBus8(0, ptr)
		mid := c.readBus8(0, ptr+1)
		hi := c.readBus8(0, ptr+2)
		return operand{bank: hi, offset: uint16(lo) | uint16(mid)<<8}

	case ModeAbsoluteIndexedIndirect:
		ptr := c.fetch16() + c.X
		lo := c.readBus8(c.PB, ptr)
		hi := c.readBus8(c.PB, ptr+1)
		return operand{bank: c.PB, offset: uint16(lo) | uint16(hi)<<8}

	case ModeRelative:
		disp := int8(c.fetch8())
		target := uint16(int32(c.PC) + int32(disp))
		return operand{bank: c.PB, offset: target}

	case ModeRelativeLong:
		disp := int16(c.fetch16())
		target := uint16(int32(c.PC) + int32(disp))
		return operand{bank: c.PB, offset: target}

	default:
		return operand{}
	}
}

func (c *CPU) fetch24AsBankOffset() (uint8, uint16) {
	lo := c.fetch8()
	mid := c.fetch8()
	hi := c.fetch8()
	return hi, uint16(lo) | uint16(mid)<<8
}

func (c *CPU) resolveImmediate(width int) operand {
	if width == 8 {
		return operand{isImm: true, imm: uint32(c.fetch8())}
	}
	return operand{isImm: true, imm: uint32(c.fetch16())}
}

// readOperand fetches the operand's value at the given width (8 or 16).
func (c *CPU) readOperand(op operand, width int) uint32 {
	if op.isImm {
		return op.imm
	}
	if op.isAccum {
		if width == 8 {
			return uint32(byte(c.A))
		}
		return uint32(c.A)
	}
	lo := c.readBus8(op.bank, op.offset)
	if width == 8 {
		return uint32(lo)
	}
	hi := c.readBus8(op.bank, op.offset+1)
	return uint32(lo) | uint32(hi)<<8
}

// writeOperand stores value into the operand's target at the given width.
func (c *CPU) writeOperand(op operand, width int, value uint32) {
	if op.isAccum {
		if width == 8 {
			c.A = (c.A &^ 0x00FF) | uint16(value&0xFF)
		} else {
			c.A = uint16(value)
		}
		return
	}
	c.writeBus8(op.bank, op.offset, byte(value))
	if width == 16 {
		c.writeBus8(op.bank, op.offset+1, byte(value>>8))
	}
}
