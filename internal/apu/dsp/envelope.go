package dsp

// adsrRateTable converts a 5-bit ADSR/GAIN rate index into the number
// of sample ticks between envelope steps, per the documented SPC700
// rate table (coarse approximation preserving relative rate ordering).
var adsrRateTable = [32]int{
	0, 2048, 1536, 1280, 1024, 768, 640, 512,
	384, 320, 256, 192, 160, 128, 96, 80,
	64, 48, 40, 32, 24, 20, 16, 12,
	10, 8, 6, 4, 3, 2, 1, 0,
}

const envelopeMax = 0x7FF

// keyEventPeriod is the number of 32kHz DSP sample ticks between 64Hz
// boundaries: KON/KOF only take effect on these ticks, not immediately
// when the register write latches them.
const keyEventPeriod = 500

func (vc *voice) stepEnvelope(tick uint64) {
	if tick%keyEventPeriod == 0 {
		if vc.keyOn {
			vc.keyOn = false
			vc.phase = phaseAttack
			vc.envelope = 0
			vc.brrPos = 0
			vc.blockEnd = false
			vc.started = false
			vc.prev1 = 0
			vc.prev2 = 0
		}
		if vc.keyOff {
			vc.keyOff = false
			vc.phase = phaseRelease
		}
	}

	if vc.useADSR {
		vc.stepADSR(tick)
	} else {
		vc.stepGain(tick)
	}
}

func (vc *voice) stepADSR(tick uint64) {
	switch vc.phase {
	case phaseOff:
		return
	case phaseAttack:
		rate := uint(vc.attackRate)*2 + 1
		// Rate index 31 (attackRate 15) has no period in the table: real
		// hardware steps it every sample rather than on some divisor, so
		// it can't be gated behind rateDue like every other rate.
		due := rate == 31 || rateDue(tick, adsrRateTable[rate])
		step := int32(32)
		if rate == 31 {
			step = 1024
		}
		if due {
			vc.envelope += step
			if vc.envelope >= envelopeMax {
				vc.envelope = envelopeMax
				vc.phase = phaseDecay
			}
		}
	case phaseDecay:
		rate := uint(vc.decayRate)*2 + 16
		if rateDue(tick, adsrRateTable[rate]) {
			vc.envelope -= ((vc.envelope - 1) >> 8) + 1
			if vc.envelope <= 0 {
				vc.envelope = 0
			}
			sustThreshold := int32(vc.sustLevel+1) * 0x100
			if vc.envelope <= sustThreshold {
				vc.phase = phaseSustain
			}
		}
	case phaseSustain:
		if vc.sustRate != 0 && rateDue(tick, adsrRateTable[vc.sustRate]) {
			vc.envelope -= ((vc.envelope - 1) >> 8) + 1
			if vc.envelope <= 0 {
				vc.envelope = 0
				vc.phase = phaseOff
			}
		}
	case phaseRelease:
		vc.envelope -= 8
		if vc.envelope <= 0 {
			vc.envelope = 0
			vc.phase = phaseOff
		}
	}
}

func (vc *voice) stepGain(tick uint64) {
	if vc.phase == phaseOff {
		vc.phase = phaseSustain
	}
	switch vc.gainMode {
	case 0: // direct
		vc.envelope = int32(vc.gainParam) * 0x10
	case 1: // linear decrease
		if rateDue(tick, adsrRateTable[vc.gainParam]) {
			vc.envelope -= 32
			if vc.envelope < 0 {
				vc.envelope = 0
			}
		}
	case 2: // exponential decrease
		if rateDue(tick, adsrRateTable[vc.gainParam]) {
			vc.envelope -= ((vc.envelope - 1) >> 8) + 1
			if vc.envelope < 0 {
				vc.envelope = 0
			}
		}
	case 3: // linear increase
		if rateDue(tick, adsrRateTable[vc.gainParam]) {
			vc.envelope += 32
			if vc.envelope > envelopeMax {
				vc.envelope = envelopeMax
			}
		}
	}
}

func rateDue(tick uint64, period int) bool {
	if period <= 0 {
		return false
	}
	return tick%uint64(period) == 0
}
