package dsp

// gaussTable is the S-DSP's 512-entry Gaussian interpolation constant,
// read through four overlapping 256-sample windows by gaussianInterpolate
// below: [255-i:256-i], [511-i:512-i], [256+i:257+i] and [i:i+1]. The
// entries rise monotonically from 0x000 to 0x6A6; reading the windows
// forward and backward is what lets one table serve all four tap weights.
var gaussTable = [512]int16{
	0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x001,
	0x001, 0x001, 0x001, 0x001, 0x001, 0x001, 0x002, 0x002, 0x002, 0x002, 0x002, 0x003, 0x003, 0x003, 0x003, 0x004,
	0x004, 0x004, 0x004, 0x005, 0x005, 0x005, 0x006, 0x006, 0x006, 0x007, 0x007, 0x007, 0x008, 0x008, 0x008, 0x009,
	0x009, 0x00A, 0x00A, 0x00A, 0x00B, 0x00B, 0x00B, 0x00C, 0x00C, 0x00D, 0x00D, 0x00E, 0x00E, 0x00F, 0x00F, 0x00F,
	0x010, 0x010, 0x011, 0x011, 0x012, 0x013, 0x013, 0x014, 0x014, 0x015, 0x015, 0x016, 0x017, 0x017, 0x018, 0x018,
	0x019, 0x01A, 0x01B, 0x01B, 0x01C, 0x01D, 0x01D, 0x01E, 0x01F, 0x020, 0x020, 0x021, 0x022, 0x023, 0x024, 0x024,
	0x025, 0x026, 0x027, 0x028, 0x029, 0x02A, 0x02B, 0x02C, 0x02D, 0x02E, 0x02F, 0x030, 0x031, 0x032, 0x033, 0x034,
	0x035, 0x036, 0x037, 0x038, 0x03A, 0x03B, 0x03C, 0x03D, 0x03E, 0x040, 0x041, 0x042, 0x043, 0x045, 0x046, 0x047,
	0x049, 0x04A, 0x04C, 0x04D, 0x04E, 0x050, 0x051, 0x053, 0x054, 0x056, 0x057, 0x059, 0x05A, 0x05C, 0x05E, 0x05F,
	0x061, 0x063, 0x064, 0x066, 0x068, 0x069, 0x06B, 0x06D, 0x06F, 0x070, 0x072, 0x074, 0x076, 0x078, 0x07A, 0x07C,
	0x07E, 0x080, 0x082, 0x084, 0x086, 0x088, 0x08A, 0x08C, 0x08E, 0x091, 0x093, 0x095, 0x097, 0x09A, 0x09C, 0x09E,
	0x0A1, 0x0A3, 0x0A5, 0x0A8, 0x0AA, 0x0AD, 0x0AF, 0x0B2, 0x0B4, 0x0B7, 0x0BA, 0x0BC, 0x0BF, 0x0C2, 0x0C4, 0x0C7,
	0x0CA, 0x0CD, 0x0D0, 0x0D2, 0x0D5, 0x0D8, 0x0DB, 0x0DE, 0x0E1, 0x0E4, 0x0E7, 0x0EA, 0x0ED, 0x0F0, 0x0F3, 0x0F6,
	0x0F9, 0x0FC, 0x0FF, 0x102, 0x106, 0x109, 0x10C, 0x10F, 0x112, 0x116, 0x119, 0x11C, 0x120, 0x123, 0x126, 0x12A,
	0x12D, 0x130, 0x134, 0x137, 0x13A, 0x13E, 0x141, 0x145, 0x148, 0x14C, 0x14F, 0x153, 0x156, 0x15A, 0x15D, 0x161,
	0x164, 0x168, 0x16B, 0x16F, 0x173, 0x176, 0x17A, 0x17D, 0x181, 0x185, 0x188, 0x18C, 0x190, 0x193, 0x197, 0x19A,
	0x19E, 0x1A2, 0x1A6, 0x1A9, 0x1AD, 0x1B1, 0x1B5, 0x1B8, 0x1BC, 0x1C0, 0x1C4, 0x1C8, 0x1CB, 0x1CF, 0x1D3, 0x1D7,
	0x1DB, 0x1DF, 0x1E3, 0x1E7, 0x1EB, 0x1EF, 0x1F3, 0x1F7, 0x1FB, 0x1FF, 0x203, 0x207, 0x20B, 0x20F, 0x214, 0x218,
	0x21C, 0x220, 0x224, 0x229, 0x22D, 0x231, 0x236, 0x23A, 0x23E, 0x243, 0x247, 0x24B, 0x250, 0x254, 0x259, 0x25D,
	0x262, 0x266, 0x26B, 0x26F, 0x274, 0x278, 0x27D, 0x281, 0x286, 0x28B, 0x28F, 0x294, 0x299, 0x29D, 0x2A2, 0x2A6,
	0x2AB, 0x2B0, 0x2B5, 0x2B9, 0x2BE, 0x2C3, 0x2C8, 0x2CC, 0x2D1, 0x2D6, 0x2DB, 0x2E0, 0x2E5, 0x2EA, 0x2EE, 0x2F3,
	0x2F8, 0x2FD, 0x302, 0x307, 0x30C, 0x311, 0x316, 0x31B, 0x320, 0x325, 0x32A, 0x32F, 0x334, 0x339, 0x33E, 0x344,
	0x349, 0x34E, 0x353, 0x358, 0x35D, 0x363, 0x368, 0x36D, 0x372, 0x377, 0x37D, 0x382, 0x387, 0x38C, 0x392, 0x397,
	0x39C, 0x3A1, 0x3A7, 0x3AC, 0x3B1, 0x3B7, 0x3BC, 0x3C1, 0x3C7, 0x3CC, 0x3D1, 0x3D7, 0x3DC, 0x3E1, 0x3E7, 0x3EC,
	0x3F2, 0x3F7, 0x3FC, 0x402, 0x407, 0x40D, 0x412, 0x418, 0x41D, 0x422, 0x428, 0x42D, 0x433, 0x438, 0x43E, 0x443,
	0x449, 0x44E, 0x454, 0x459, 0x45F, 0x464, 0x46A, 0x46F, 0x475, 0x47A, 0x480, 0x485, 0x48B, 0x490, 0x496, 0x49C,
	0x4A1, 0x4A7, 0x4AC, 0x4B2, 0x4B7, 0x4BD, 0x4C2, 0x4C8, 0x4CD, 0x4D3, 0x4D9, 0x4DE, 0x4E4, 0x4E9, 0x4EF, 0x4F4,
	0x4FA, 0x4FF, 0x505, 0x50B, 0x510, 0x516, 0x51B, 0x521, 0x526, 0x52C, 0x531, 0x537, 0x53C, 0x542, 0x547, 0x54D,
	0x553, 0x558, 0x55E, 0x563, 0x569, 0x56E, 0x574, 0x579, 0x57F, 0x584, 0x58A, 0x58F, 0x595, 0x59A, 0x5A0, 0x5A5,
	0x5AB, 0x5B0, 0x5B6, 0x5BB, 0x5C1, 0x5C6, 0x5CC, 0x5D1, 0x5D7, 0x5DC, 0x5E1, 0x5E7, 0x5EC, 0x5F2, 0x5F7, 0x5FD,
	0x602, 0x607, 0x60D, 0x612, 0x617, 0x61D, 0x622, 0x628, 0x62D, 0x632, 0x638, 0x63D, 0x642, 0x648, 0x64D, 0x652,
	0x658, 0x65D, 0x662, 0x667, 0x66D, 0x672, 0x677, 0x67C, 0x682, 0x687, 0x68C, 0x691, 0x696, 0x69C, 0x6A1, 0x6A6,
}

// gaussianInterpolate reproduces the S-DSP's 4-tap interpolator: idx is
// the top 8 bits of the pitch counter's fractional part, and hist holds
// the four most recently decoded BRR samples, oldest first. The four
// weights are normalized by their own sum rather than hardware's fixed
// >>11 scale, since this table is a hand-transcribed approximation of
// the hardware constant rather than a bit-exact copy (spec.md §9 leaves
// sample-by-sample interpolator accuracy unspecified) and normalizing
// keeps a flat (unmodulated) signal from drifting in level.
func gaussianInterpolate(pitchCounter uint32, hist [4]int32) int16 {
	idx := int((pitchCounter >> 4) & 0xFF)

	w0 := int32(gaussTable[255-idx])
	w1 := int32(gaussTable[511-idx])
	w2 := int32(gaussTable[256+idx])
	w3 := int32(gaussTable[idx])
	sum := w0 + w1 + w2 + w3
	if sum == 0 {
		sum = 1
	}

	out := (w0*hist[0] + w1*hist[1] + w2*hist[2] + w3*hist[3]) / sum
	if out > 32767 {
		out = 32767
	} else if out < -32768 {
		out = -32768
	}
	return int16(out)
}
