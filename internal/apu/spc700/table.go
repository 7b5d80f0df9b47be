package spc700

// buildInstructionTable wires all 256 opcode slots to their handlers,
// following the SPC700's canonical layout (spec.md §4.6): each of the
// six arithmetic/logic mnemonics (OR, AND, EOR, CMP, ADC, SBC) spans
// a block of addressing-mode variants, interleaved with direct-page bit
// opcodes, branches, and the stack/control instructions.
func (c *CPU) buildInstructionTable() {
	t := &c.instructions

	// aluOp wires one ALU mnemonic's full addressing-mode row, matching
	// the fixed offsets the real opcode map uses relative to its base.
	aluOp := func(base byte, op func(a, v byte) byte) {
		t[base+0x04] = func(c *CPU) { c.A = op(c.A, c.read8(c.dpAddr(c.fetch8()))) }
		t[base+0x05] = func(c *CPU) { c.A = op(c.A, c.read8(c.absAddr())) }
		t[base+0x06] = func(c *CPU) { c.A = op(c.A, c.read8(c.indirectXAddr())) }
		t[base+0x07] = func(c *CPU) { c.A = op(c.A, c.read8(c.indexedIndirectAddr())) }
		t[base+0x08] = func(c *CPU) { c.A = op(c.A, c.fetch8()) }
		t[base+0x09] = func(c *CPU) {
			src := c.dpAddr(c.fetch8())
			dst := c.dpAddr(c.fetch8())
			c.write8(dst, op(c.read8(dst), c.read8(src)))
		}
		t[base+0x14] = func(c *CPU) { c.A = op(c.A, c.read8(c.dpXAddr())) }
		t[base+0x15] = func(c *CPU) { c.A = op(c.A, c.read8(c.absXAddr())) }
		t[base+0x16] = func(c *CPU) { c.A = op(c.A, c.read8(c.absYAddr())) }
		t[base+0x17] = func(c *CPU) { c.A = op(c.A, c.read8(c.indirectIndexedAddr())) }
		t[base+0x18] = func(c *CPU) {
			v := c.fetch8()
			addr := c.dpAddr(c.fetch8())
			c.write8(addr, op(c.read8(addr), v))
		}
		t[base+0x19] = func(c *CPU) {
			x, y := c.indirectXAddr(), c.indirectYAddr()
			c.write8(x, op(c.read8(x), c.read8(y)))
		}
	}
	aluOp(0x00, c.or)
	aluOp(0x20, c.and)
	aluOp(0x40, c.eor)
	aluOp(0x80, c.adc)
	aluOp(0xA0, c.sbc)
	aluOp(0x60, func(a, v byte) byte { c.cmp(a, v); return a })
	// CMP's dp,dp / dp,#imm / (X),(Y) forms compare-and-discard; they
	// must not write the result back to memory like the other ALU ops.
	t[0x69] = func(c *CPU) {
		src := c.dpAddr(c.fetch8())
		dst := c.dpAddr(c.fetch8())
		c.cmp(c.read8(dst), c.read8(src))
	}
	t[0x78] = func(c *CPU) {
		v := c.fetch8()
		addr := c.dpAddr(c.fetch8())
		c.cmp(c.read8(addr), v)
	}
	t[0x79] = func(c *CPU) {
		x, y := c.indirectXAddr(), c.indirectYAddr()
		c.cmp(c.read8(x), c.read8(y))
	}

	// SET1/CLR1 d.bit and BBS/BBC are laid out every 0x10 opcodes.
	for bit := uint(0); bit < 8; bit++ {
		bit := bit
		t[byte(bit)<<5|0x02] = func(c *CPU) { c.doSET1(bit) }
		t[byte(bit)<<5|0x12] = func(c *CPU) { c.doCLR1(bit) }
		t[byte(bit)<<5|0x03] = func(c *CPU) { c.branchIf(c.testBit(bit, true)) }
		t[byte(bit)<<5|0x13] = func(c *CPU) { c.branchIf(c.testBit(bit, false)) }
	}

	t[0x00] = func(c *CPU) { c.addCycles(2) } // NOP
	for i := byte(0); i < 16; i++ {
		i := i
		t[i<<4|0x01] = func(c *CPU) { c.doTCALL(i) }
	}

	t[0x0A] = func(c *CPU) { c.opOR1(false) }
	t[0x2A] = func(c *CPU) { c.opOR1(true) }
	t[0x4A] = func(c *CPU) { c.opAND1(false) }
	t[0x6A] = func(c *CPU) { c.opAND1(true) }
	t[0x8A] = func(c *CPU) { c.opEOR1() }
	t[0xAA] = func(c *CPU) { c.opMOV1Load() }
	t[0xCA] = func(c *CPU) { c.opMOV1Store() }
	t[0xEA] = func(c *CPU) { c.opNOT1() }

	t[0x0B] = c.shiftDP(c.asl)
	t[0x0C] = c.shiftAbs(c.asl)
	t[0x1B] = c.shiftDPX(c.asl)
	t[0x1C] = func(c *CPU) { c.A = c.asl(c.A) }
	t[0x2B] = c.shiftDP(c.rol)
	t[0x2C] = c.shiftAbs(c.rol)
	t[0x3B] = c.shiftDPX(c.rol)
	t[0x3C] = func(c *CPU) { c.A = c.rol(c.A) }
	t[0x4B] = c.shiftDP(c.lsr)
	t[0x4C] = c.shiftAbs(c.lsr)
	t[0x5B] = c.shiftDPX(c.lsr)
	t[0x5C] = func(c *CPU) { c.A = c.lsr(c.A) }
	t[0x6B] = c.shiftDP(c.ror)
	t[0x6C] = c.shiftAbs(c.ror)
	t[0x7B] = c.shiftDPX(c.ror)
	t[0x7C] = func(c *CPU) { c.A = c.ror(c.A) }

	t[0x0D] = func(c *CPU) { c.push8(c.psw()) }
	t[0x2D] = func(c *CPU) { c.push8(c.A) }
	t[0x4D] = func(c *CPU) { c.push8(c.X) }
	t[0x6D] = func(c *CPU) { c.push8(c.Y) }
	t[0x8E] = func(c *CPU) { c.setPSW(c.pop8()) }
	t[0xAE] = func(c *CPU) { c.A = c.pop8() }
	t[0xCE] = func(c *CPU) { c.X = c.pop8() }
	t[0xEE] = func(c *CPU) { c.Y = c.pop8() }

	t[0x0E] = func(c *CPU) { c.opTSET1() }
	t[0x4E] = func(c *CPU) { c.opTCLR1() }
	t[0x0F] = func(c *CPU) { c.doBRK() }

	t[0x10] = c.branchRel(func(c *CPU) bool { return !c.N })
	t[0x30] = c.branchRel(func(c *CPU) bool { return c.N })
	t[0x50] = c.branchRel(func(c *CPU) bool { return !c.V })
	t[0x70] = c.branchRel(func(c *CPU) bool { return c.V })
	t[0x90] = c.branchRel(func(c *CPU) bool { return !c.C })
	t[0xB0] = c.branchRel(func(c *CPU) bool { return c.C })
	t[0xD0] = c.branchRel(func(c *CPU) bool { return !c.Z })
	t[0xF0] = c.branchRel(func(c *CPU) bool { return c.Z })
	t[0x2F] = c.branchRel(func(c *CPU) bool { return true })

	t[0x1A] = func(c *CPU) { c.doDECW() }
	t[0x3A] = func(c *CPU) { c.doINCW() }
	t[0x5A] = func(c *CPU) { c.doCMPW() }
	t[0x7A] = func(c *CPU) { c.doADDW() }
	t[0x9A] = func(c *CPU) { c.doSUBW() }
	t[0xBA] = func(c *CPU) { c.doMOVWLoad() }
	t[0xDA] = func(c *CPU) { c.doMOVWStore() }

	t[0x1D] = func(c *CPU) { c.X = c.dec8(c.X) }
	t[0x3D] = func(c *CPU) { c.X = c.inc8(c.X) }
	t[0xDC] = func(c *CPU) { c.Y = c.dec8(c.Y) }
	t[0xFC] = func(c *CPU) { c.Y = c.inc8(c.Y) }
	t[0x9C] = func(c *CPU) { c.A = c.dec8(c.A) }
	t[0xBC] = func(c *CPU) { c.A = c.inc8(c.A) }
	t[0x8B] = func(c *CPU) { a := c.dpAddr(c.fetch8()); c.write8(a, c.dec8(c.read8(a))) }
	t[0x8C] = func(c *CPU) { a := c.absAddr(); c.write8(a, c.dec8(c.read8(a))) }
	t[0x9B] = func(c *CPU) { a := c.dpXAddr(); c.write8(a, c.dec8(c.read8(a))) }
	t[0xAB] = func(c *CPU) { a := c.dpAddr(c.fetch8()); c.write8(a, c.inc8(c.read8(a))) }
	t[0xAC] = func(c *CPU) { a := c.absAddr(); c.write8(a, c.inc8(c.read8(a))) }
	t[0xBB] = func(c *CPU) { a := c.dpXAddr(); c.write8(a, c.inc8(c.read8(a))) }

	t[0x1E] = func(c *CPU) { c.cmp(c.X, c.read8(c.absAddr())) }
	t[0x3E] = func(c *CPU) { c.cmp(c.X, c.read8(c.dpAddr(c.fetch8()))) }
	t[0x5E] = func(c *CPU) { c.cmp(c.Y, c.read8(c.absAddr())) }
	t[0x7E] = func(c *CPU) { c.cmp(c.Y, c.read8(c.dpAddr(c.fetch8()))) }
	t[0xC8] = func(c *CPU) { c.cmp(c.X, c.fetch8()) }
	t[0xAD] = func(c *CPU) { c.cmp(c.Y, c.fetch8()) }

	t[0x1F] = func(c *CPU) {
		ptr := c.absXAddr()
		lo := uint16(c.bus.Read(ptr))
		hi := uint16(c.bus.Read(ptr + 1))
		c.PC = lo | hi<<8
	}
	t[0x5F] = func(c *CPU) { c.PC = c.absAddr() }
	t[0x3F] = func(c *CPU) { addr := c.absAddr(); c.push16(c.PC); c.PC = addr }
	t[0x4F] = func(c *CPU) { u := c.fetch8(); c.push16(c.PC); c.PC = 0xFF00 | uint16(u) }
	t[0x6F] = func(c *CPU) { c.PC = c.pop16() }
	t[0x7F] = func(c *CPU) { c.setPSW(c.pop8()); c.PC = c.pop16() }

	t[0x20] = func(c *CPU) { c.P = false }
	t[0x40] = func(c *CPU) { c.P = true }
	t[0x60] = func(c *CPU) { c.C = false }
	t[0x80] = func(c *CPU) { c.C = true }
	t[0xED] = func(c *CPU) { c.C = !c.C }
	t[0xE0] = func(c *CPU) { c.V = false; c.H = false }
	t[0xA0] = func(c *CPU) { c.I = true }
	t[0xC0] = func(c *CPU) { c.I = false }

	t[0x2E] = func(c *CPU) { c.doCBNE(c.dpAddr(c.fetch8())) }
	t[0xDE] = func(c *CPU) { c.doCBNE(c.dpXAddr()) }
	t[0x6E] = func(c *CPU) { c.doDBNZDP() }
	t[0xFE] = func(c *CPU) { c.doDBNZY() }

	t[0x5D] = func(c *CPU) { c.X = c.A; c.setZN8(c.X) }
	t[0x7D] = func(c *CPU) { c.A = c.X; c.setZN8(c.A) }
	t[0xDD] = func(c *CPU) { c.A = c.Y; c.setZN8(c.A) }
	t[0xFD] = func(c *CPU) { c.Y = c.A; c.setZN8(c.Y) }
	t[0x9D] = func(c *CPU) { c.X = c.SP; c.setZN8(c.X) }
	t[0xBD] = func(c *CPU) { c.SP = c.X }

	t[0x8D] = func(c *CPU) { c.Y = c.fetch8(); c.setZN8(c.Y) }
	t[0xCD] = func(c *CPU) { c.X = c.fetch8(); c.setZN8(c.X) }
	t[0xE8] = func(c *CPU) { c.A = c.fetch8(); c.setZN8(c.A) }
	t[0x8F] = func(c *CPU) {
		v := c.fetch8()
		addr := c.dpAddr(c.fetch8())
		c.write8(addr, v)
	}

	movStoreA := func(addrFn func(*CPU) uint16) func(*CPU) {
		return func(c *CPU) { c.write8(addrFn(c), c.A) }
	}
	t[0xC4] = movStoreA(func(c *CPU) uint16 { return c.dpAddr(c.fetch8()) })
	t[0xC5] = movStoreA((*CPU).absAddr)
	t[0xC6] = movStoreA((*CPU).indirectXAddr)
	t[0xC7] = movStoreA((*CPU).indexedIndirectAddr)
	t[0xD4] = movStoreA((*CPU).dpXAddr)
	t[0xD5] = movStoreA((*CPU).absXAddr)
	t[0xD6] = movStoreA((*CPU).absYAddr)
	t[0xD7] = movStoreA((*CPU).indirectIndexedAddr)
	t[0xAF] = func(c *CPU) { c.write8(c.indirectXAddr(), c.A); c.X++ }
	t[0xBF] = func(c *CPU) { c.A = c.read8(c.indirectXAddr()); c.X++; c.setZN8(c.A) }

	movLoadA := func(addrFn func(*CPU) uint16) func(*CPU) {
		return func(c *CPU) { c.A = c.read8(addrFn(c)); c.setZN8(c.A) }
	}
	t[0xE4] = movLoadA(func(c *CPU) uint16 { return c.dpAddr(c.fetch8()) })
	t[0xE5] = movLoadA((*CPU).absAddr)
	t[0xE6] = movLoadA((*CPU).indirectXAddr)
	t[0xE7] = movLoadA((*CPU).indexedIndirectAddr)
	t[0xF4] = movLoadA((*CPU).dpXAddr)
	t[0xF5] = movLoadA((*CPU).absXAddr)
	t[0xF6] = movLoadA((*CPU).absYAddr)
	t[0xF7] = movLoadA((*CPU).indirectIndexedAddr)

	t[0xC9] = func(c *CPU) { c.write8(c.absAddr(), c.X) }
	t[0xCB] = func(c *CPU) { c.write8(c.dpAddr(c.fetch8()), c.Y) }
	t[0xCC] = func(c *CPU) { c.write8(c.absAddr(), c.Y) }
	t[0xD8] = func(c *CPU) { c.write8(c.dpAddr(c.fetch8()), c.X) }
	t[0xD9] = func(c *CPU) { c.write8(c.dpYAddr(), c.X) }
	t[0xDB] = func(c *CPU) { c.write8(c.dpXAddr(), c.Y) }
	t[0xE9] = func(c *CPU) { c.X = c.read8(c.absAddr()); c.setZN8(c.X) }
	t[0xEB] = func(c *CPU) { c.Y = c.read8(c.dpAddr(c.fetch8())); c.setZN8(c.Y) }
	t[0xEC] = func(c *CPU) { c.Y = c.read8(c.absAddr()); c.setZN8(c.Y) }
	t[0xF8] = func(c *CPU) { c.X = c.read8(c.dpAddr(c.fetch8())); c.setZN8(c.X) }
	t[0xF9] = func(c *CPU) { c.X = c.read8(c.dpYAddr()); c.setZN8(c.X) }
	t[0xFA] = func(c *CPU) {
		src := c.dpAddr(c.fetch8())
		dst := c.dpAddr(c.fetch8())
		c.write8(dst, c.read8(src))
	}

	t[0x9E] = func(c *CPU) { c.doDIV() }
	t[0xCF] = func(c *CPU) { c.doMUL() }
	t[0x9F] = func(c *CPU) { c.A = c.xcn(c.A) }
	t[0xDF] = func(c *CPU) { c.daa() }
	t[0xBE] = func(c *CPU) { c.das() }
	t[0xEF] = func(c *CPU) { c.waiting = true }
	t[0xFF] = func(c *CPU) { c.stopped = true }

	for i := range t {
		if t[i] == nil {
			t[i] = func(c *CPU) { c.addCycles(2) }
		}
	}
}
