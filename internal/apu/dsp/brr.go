package dsp

// brrBlock decodes one 9-byte Bit Rate Reduced sample block: a header
// byte (range nibble, filter select, loop/end flags) followed by 8
// bytes packing 16 4-bit nibbles.
type brrBlock struct {
	shift  byte
	filter byte
	loop   bool
	end    bool
}

func decodeBRRHeader(header byte) brrBlock {
	return brrBlock{
		shift:  header >> 4,
		filter: (header >> 2) & 0x03,
		loop:   header&0x02 != 0,
		end:    header&0x01 != 0,
	}
}

func brrNibble(data [8]byte, i int) int8 {
	b := data[i/2]
	var n byte
	if i%2 == 0 {
		n = b >> 4
	} else {
		n = b & 0x0F
	}
	if n >= 8 {
		return int8(n) - 16
	}
	return int8(n)
}

// decodeSample applies the selected prediction filter to a raw nibble
// sample given the voice's running history, returning the new sample
// and leaving prev1/prev2 updated.
func (vc *voice) decodeSample(header brrBlock, nibble int8) int16 {
	raw := int32(nibble)
	if header.shift <= 12 {
		raw <<= header.shift
	} else {
		raw = (raw >> 3) << 12 // shift 13-15 invalid, hardware clamps
	}

	var predicted int32
	switch header.filter {
	case 0:
		predicted = 0
	case 1:
		predicted = vc.prev1 + ((-vc.prev1) >> 4)
	case 2:
		predicted = vc.prev1*2 + ((-vc.prev1 * 3) >> 5) - vc.prev2 + (vc.prev2 >> 4)
	case 3:
		predicted = vc.prev1*2 + ((-vc.prev1 * 13) >> 6) - vc.prev2 + ((vc.prev2 * 3) >> 4)
	}

	sample := raw + predicted
	if sample > 32767 {
		sample = 32767
	} else if sample < -32768 {
		sample = -32768
	}
	// Clamp to 16-bit signed, but the hardware actually wraps within
	// 17 bits before the final clamp; this approximation keeps the
	// audible result close enough without a second wraparound step.
	vc.prev2 = vc.prev1
	vc.prev1 = sample
	return int16(sample)
}

// advanceBRR decodes the next sample for the voice, loading and
// decoding a fresh 9-byte block from ram every 16 samples and
// following the loop/end flags via the 4-byte sample directory entry
// at DIR*0x100 + srcn*4.
func (vc *voice) advanceBRR(ram RAM, dirPage byte) (int16, bool) {
	if !vc.started {
		vc.started = true
		vc.brrAddr = sampleStartAddr(ram, dirPage, vc.srcn)
	}
	if vc.brrPos%16 == 0 {
		header := decodeBRRHeader(ram.Read(vc.brrAddr))
		vc.blockLoop = header.loop
		vc.blockEnd = header.end
		vc.brrPos = 0
		var data [8]byte
		for i := 0; i < 8; i++ {
			data[i] = ram.Read(vc.brrAddr + 1 + uint16(i))
		}
		vc.cachedBlock = data
		vc.cachedHeader = header
	}
	s := vc.decodeSample(vc.cachedHeader, brrNibble(vc.cachedBlock, vc.brrPos))
	vc.sampHist[0], vc.sampHist[1], vc.sampHist[2], vc.sampHist[3] =
		vc.sampHist[1], vc.sampHist[2], vc.sampHist[3], int32(s)
	vc.brrPos++
	ended := false
	if vc.brrPos >= 16 {
		vc.brrPos = 0
		if vc.cachedHeader.end {
			ended = true
			if vc.cachedHeader.loop {
				vc.brrAddr = sampleLoopAddr(ram, dirPage, vc.srcn)
			}
		} else {
			vc.brrAddr += 9
		}
	}
	return s, ended
}

func sampleStartAddr(ram RAM, dirPage, srcn byte) uint16 {
	base := uint16(dirPage)<<8 + uint16(srcn)*4
	return uint16(ram.Read(base)) | uint16(ram.Read(base+1))<<8
}

func sampleLoopAddr(ram RAM, dirPage, srcn byte) uint16 {
	base := uint16(dirPage)<<8 + uint16(srcn)*4
	return uint16(ram.Read(base+2)) | uint16(ram.Read(base+3))<<8
}
