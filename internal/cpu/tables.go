package cpu

// buildInstructionTable populates the 256 opcode slots with their
// mnemonic and addressing mode, per the standard 65C816 instruction
// set layout.
func (c *CPU) buildInstructionTable() {
	set := func(op byte, name string, mode AddrMode) {
		c.instructions[op] = Instruction{Name: name, Mode: mode}
	}

	set(0x00, "BRK", ModeImmediate8)
	set(0x01, "ORA", ModeDirectIndexedInd)
	set(0x02, "COP", ModeImmediate8)
	set(0x03, "ORA", ModeStackRelative)
	set(0x04, "TSB", ModeDirect)
	set(0x05, "ORA", ModeDirect)
	set(0x06, "ASL", ModeDirect)
	set(0x07, "ORA", ModeDirectIndirectLong)
	set(0x08, "PHP", ModeStack)
	set(0x09, "ORA", ModeImmediateA)
	set(0x0A, "ASL", ModeAccumulator)
	set(0x0B, "PHD", ModeStack)
	set(0x0C, "TSB", ModeAbsolute)
	set(0x0D, "ORA", ModeAbsolute)
	set(0x0E, "ASL", ModeAbsolute)
	set(0x0F, "ORA", ModeAbsoluteLong)

	set(0x10, "BPL", ModeRelative)
	set(0x11, "ORA", ModeDirectIndInd)
	set(0x12, "ORA", ModeDirectIndirect)
	set(0x13, "ORA", ModeStackRelIndIndexed)
	set(0x14, "TRB", ModeDirect)
	set(0x15, "ORA", ModeDirectX)
	set(0x16, "ASL", ModeDirectX)
	set(0x17, "ORA", ModeDirectIndLongInd)
	set(0x18, "CLC", ModeImplied)
	set(0x19, "ORA", ModeAbsoluteY)
	set(0x1A, "INC", ModeAccumulator)
	set(0x1B, "TCS", ModeImplied)
	set(0x1C, "TRB", ModeAbsolute)
	set(0x1D, "ORA", ModeAbsoluteX)
	set(0x1E, "ASL", ModeAbsoluteX)
	set(0x1F, "ORA", ModeAbsoluteLongX)

	set(0x20, "JSR", ModeAbsolute)
	set(0x21, "AND", ModeDirectIndexedInd)
	set(0x22, "JSL", ModeAbsoluteLong)
	set(0x23, "AND", ModeStackRelative)
	set(0x24, "BIT", ModeDirect)
	set(0x25, "AND", ModeDirect)
	set(0x26, "ROL", ModeDirect)
	set(0x27, "AND", ModeDirectIndirectLong)
	set(0x28, "PLP", ModeStack)
	set(0x29, "AND", ModeImmediateA)
	set(0x2A, "ROL", ModeAccumulator)
	set(0x2B, "PLD", ModeStack)
	set(0x2C, "BIT", ModeAbsolute)
	set(0x2D, "AND", ModeAbsolute)
	set(0x2E, "ROL", ModeAbsolute)
	set(0x2F, "AND", ModeAbsoluteLong)

	set(0x30, "BMI", ModeRelative)
	set(0x31, "AND", ModeDirectIndInd)
	set(0x32, "AND", ModeDirectIndirect)
	set(0x33, "AND", ModeStackRelIndIndexed)
	set(0x34, "BIT", ModeDirectX)
	set(0x35, "AND", ModeDirectX)
	set(0x36, "ROL", ModeDirectX)
	set(0x37, "AND", ModeDirectIndLongInd)
	set(0x38, "SEC", ModeImplied)
	set(0x39, "AND", ModeAbsoluteY)
	set(0x3A, "DEC", ModeAccumulator)
	set(0x3B, "TSC", ModeImplied)
	set(0x3C, "BIT", ModeAbsoluteX)
	set(0x3D, "AND", ModeAbsoluteX)
	set(0x3E, "ROL", ModeAbsoluteX)
	set(0x3F, "AND", ModeAbsoluteLongX)

	set(0x40, "RTI", ModeStack)
	set(0x41, "EOR", ModeDirectIndexedInd)
	set(0x42, "WDM", ModeImmediate8)
	set(0x43, "EOR", ModeStackRelative)
	set(0x44, "MVP", ModeBlockMove)
	set(0x45, "EOR", ModeDirect)
	set(0x46, "LSR", ModeDirect)
	set(0x47, "EOR", ModeDirectIndirectLong)
	set(0x48, "PHA", ModeStack)
	set(0x49, "EOR", ModeImmediateA)
	set(0x4A, "LSR", ModeAccumulator)
	set(0x4B, "PHK", ModeStack)
	set(0x4C, "JMP", ModeAbsolute)
	set(0x4D, "EOR", ModeAbsolute)
	set(0x4E, "LSR", ModeAbsolute)
	set(0x4F, "EOR", ModeAbsoluteLong)

	set(0x50, "BVC", ModeRelative)
	set(0x51, "EOR", ModeDirectIndInd)
	set(0x52, "EOR", ModeDirectIndirect)
	set(0x53, "EOR", ModeStackRelIndIndexed)
	set(0x54, "MVN", ModeBlockMove)
	set(0x55, "EOR", ModeDirectX)
	set(0x56, "LSR", ModeDirectX)
	set(0x57, "EOR", ModeDirectIndLongInd)
	set(0x58, "CLI", ModeImplied)
	set(0x59, "EOR", ModeAbsoluteY)
	set(0x5A, "PHY", ModeStack)
	set(0x5B, "TCD", ModeImplied)
	set(0x5C, "JMP", ModeAbsoluteLong)
	set(0x5D, "EOR", ModeAbsoluteX)
	set(0x5E, "LSR", ModeAbsoluteX)
	set(0x5F, "EOR", ModeAbsoluteLongX)

	set(0x60, "RTS", ModeStack)
	set(0x61, "ADC", ModeDirectIndexedInd)
	set(0x62, "PER", ModeRelativeLong)
	set(0x63, "ADC", ModeStackRelative)
	set(0x64, "STZ", ModeDirect)
	set(0x65, "ADC", ModeDirect)
	set(0x66, "ROR", ModeDirect)
	set(0x67, "ADC", ModeDirectIndirectLong)
	set(0x68, "PLA", ModeStack)
	set(0x69, "ADC", ModeImmediateA)
	set(0x6A, "ROR", ModeAccumulator)
	set(0x6B, "RTL", ModeStack)
	set(0x6C, "JMP", ModeAbsoluteIndirect)
	set(0x6D, "ADC", ModeAbsolute)
	set(0x6E, "ROR", ModeAbsolute)
	set(0x6F, "ADC", ModeAbsoluteLong)

	set(0x70, "BVS", ModeRelative)
	set(0x71, "ADC", ModeDirectIndInd)
	set(0x72, "ADC", ModeDirectIndirect)
	set(0x73, "ADC", ModeStackRelIndIndexed)
	set(0x74, "STZ", ModeDirectX)
	set(0x75, "ADC", ModeDirectX)
	set(0x76, "ROR", ModeDirectX)
	set(0x77, "ADC", ModeDirectIndLongInd)
	set(0x78, "SEI", ModeImplied)
	set(0x79, "ADC", ModeAbsoluteY)
	set(0x7A, "PLY", ModeStack)
	set(0x7B, "TDC", ModeImplied)
	set(0x7C, "JMP", ModeAbsoluteIndexedIndirect)
	set(0x7D, "ADC", ModeAbsoluteX)
	set(0x7E, "ROR", ModeAbsoluteX)
	set(0x7F, "ADC", ModeAbsoluteLongX)

	set(0x80, "BRA", ModeRelative)
	set(0x81, "STA", ModeDirectIndexedInd)
	set(0x82, "BRL", ModeRelativeLong)
	set(0x83, "STA", ModeStackRelative)
	set(0x84, "STY", ModeDirect)
	set(0x85, "STA", ModeDirect)
	set(0x86, "STX", ModeDirect)
	set(0x87, "STA", ModeDirectIndirectLong)
	set(0x88, "DEY", ModeImplied)
	set(0x89, "BIT", ModeImmediateA)
	set(0x8A, "TXA", ModeImplied)
	set(0x8B, "PHB", ModeStack)
	set(0x8C, "STY", ModeAbsolute)
	set(0x8D, "STA", ModeAbsolute)
	set(0x8E, "STX", ModeAbsolute)
	set(0x8F, "STA", ModeAbsoluteLong)

	set(0x90, "BCC", ModeRelative)
	set(0x91, "STA", ModeDirectIndInd)
	set(0x92, "STA", ModeDirectIndirect)
	set(0x93, "STA", ModeStackRelIndIndexed)
	set(0x94, "STY", ModeDirectX)
	set(0x95, "STA", ModeDirectX)
	set(0x96, "STX", ModeDirectY)
	set(0x97, "STA", ModeDirectIndLongInd)
	set(0x98, "TYA", ModeImplied)
	set(0x99, "STA", ModeAbsoluteY)
	set(0x9A, "TXS", ModeImplied)
	set(0x9B, "TXY", ModeImplied)
	set(0x9C, "STZ", ModeAbsolute)
	set(0x9D, "STA", ModeAbsoluteX)
	set(0x9E, "STZ", ModeAbsoluteX)
	set(0x9F, "STA", ModeAbsoluteLongX)

	set(0xA0, "LDY", ModeImmediateXY)
	set(0xA1, "LDA", ModeDirectIndexedInd)
	set(0xA2, "LDX", ModeImmediateXY)
	set(0xA3, "LDA", ModeStackRelative)
	set(0xA4, "LDY", ModeDirect)
	set(0xA5, "LDA", ModeDirect)
	set(0xA6, "LDX", ModeDirect)
	set(0xA7, "LDA", ModeDirectIndirectLong)
	set(0xA8, "TAY", ModeImplied)
	set(0xA9, "LDA", ModeImmediateA)
	set(0xAA, "TAX", ModeImplied)
	set(0xAB, "PLB", ModeStack)
	set(0xAC, "LDY", ModeAbsolute)
	set(0xAD, "LDA", ModeAbsolute)
	set(0xAE, "LDX", ModeAbsolute)
	set(0xAF, "LDA", ModeAbsoluteLong)

	set(0xB0, "BCS", ModeRelative)
	set(0xB1, "LDA", ModeDirectIndInd)
	set(0xB2, "LDA", ModeDirectIndirect)
	set(0xB3, "LDA", ModeStackRelIndIndexed)
	set(0xB4, "LDY", ModeDirectX)
	set(0xB5, "LDA", ModeDirectX)
	set(0xB6, "LDX", ModeDirectY)
	set(0xB7, "LDA", ModeDirectIndLongInd)
	set(0xB8, "CLV", ModeImplied)
	set(0xB9, "LDA", ModeAbsoluteY)
	set(0xBA, "TSX", ModeImplied)
	set(0xBB, "TYX", ModeImplied)
	set(0xBC, "LDY", ModeAbsoluteX)
	set(0xBD, "LDA", ModeAbsoluteX)
	set(0xBE, "LDX", ModeAbsoluteY)
	set(0xBF, "LDA", ModeAbsoluteLongX)

	set(0xC0, "CPY", ModeImmediateXY)
	set(0xC1, "CMP", ModeDirectIndexedInd)
	set(0xC2, "REP", ModeImmediate8)
	set(0xC3, "CMP", ModeStackRelative)
	set(0xC4, "CPY", ModeDirect)
	set(0xC5, "CMP", ModeDirect)
	set(0xC6, "DEC", ModeDirect)
	set(0xC7, "CMP", ModeDirectIndirectLong)
	set(0xC8, "INY", ModeImplied)
	set(0xC9, "CMP", ModeImmediateA)
	set(0xCA, "DEX", ModeImplied)
	set(0xCB, "WAI", ModeImplied)
	set(0xCC, "CPY", ModeAbsolute)
	set(0xCD, "CMP", ModeAbsolute)
	set(0xCE, "DEC", ModeAbsolute)
	set(0xCF, "CMP", ModeAbsoluteLong)

	set(0xD0, "BNE", ModeRelative)
	set(0xD1, "CMP", ModeDirectIndInd)
	set(0xD2, "CMP", ModeDirectIndirect)
	set(0xD3, "CMP", ModeStackRelIndIndexed)
	set(0xD4, "PEI", ModeDirect)
	set(0xD5, "CMP", ModeDirectX)
	set(0xD6, "DEC", ModeDirectX)
	set(0xD7, "CMP", ModeDirectIndLongInd)
	set(0xD8, "CLD", ModeImplied)
	set(0xD9, "CMP", ModeAbsoluteY)
	set(0xDA, "PHX", ModeStack)
	set(0xDB, "STP", ModeImplied)
	set(0xDC, "JML", ModeAbsoluteIndirectLong)
	set(0xDD, "CMP", ModeAbsoluteX)
	set(0xDE, "DEC", ModeAbsoluteX)
	set(0xDF, "CMP", ModeAbsoluteLongX)

	set(0xE0, "CPX", ModeImmediateXY)
	set(0xE1, "SBC", ModeDirectIndexedInd)
	set(0xE2, "SEP", ModeImmediate8)
	set(0xE3, "SBC", ModeStackRelative)
	set(0xE4, "CPX", ModeDirect)
	set(0xE5, "SBC", ModeDirect)
	set(0xE6, "INC", ModeDirect)
	set(0xE7, "SBC", ModeDirectIndirectLong)
	set(0xE8, "INX", ModeImplied)
	set(0xE9, "SBC", ModeImmediateA)
	set(0xEA, "NOP", ModeImplied)
	set(0xEB, "XBA", ModeImplied)
	set(0xEC, "CPX", ModeAbsolute)
	set(0xED, "SBC", ModeAbsolute)
	set(0xEE, "INC", ModeAbsolute)
	set(0xEF, "SBC", ModeAbsoluteLong)

	set(0xF0, "BEQ", ModeRelative)
	set(0xF1, "SBC", ModeDirectIndInd)
	set(0xF2, "SBC", ModeDirectIndirect)
	set(0xF3, "SBC", ModeStackRelIndIndexed)
	set(0xF4, "PEA", ModeAbsolute)
	set(0xF5, "SBC", ModeDirectX)
	set(0xF6, "INC", ModeDirectX)
	set(0xF7, "SBC", ModeDirectIndLongInd)
	set(0xF8, "SED", ModeImplied)
	set(0xF9, "SBC", ModeAbsoluteY)
	set(0xFA, "PLX", ModeStack)
	set(0xFB, "XCE", ModeImplied)
	set(0xFC, "JSR", ModeAbsoluteIndexedIndirect)
	set(0xFD, "SBC", ModeAbsoluteX)
	set(0xFE, "INC", ModeAbsoluteX)
	set(0xFF, "SBC", ModeAbsoluteLongX)
}
