package dsp

const sampleRateTicks = 32 // one DSP sample every 32 APU cycles (~32kHz)

// noiseRateTable maps the 5-bit FLG noise-clock field to a tick period,
// coarser at the low end to match the documented noise generator rates.
var noiseRateTable = adsrRateTable

// Sample advances every voice by one output sample and returns the
// mixed stereo frame after main volume scaling and the echo unit.
func (d *DSP) Sample(tick uint64) (int16, int16) {
	if d.flags&0x80 != 0 { // soft reset
		return 0, 0
	}

	if rateDue(tick, noiseRateTable[d.flags&0x1F]) {
		d.stepNoise()
	}

	var mixL, mixR int32
	var echoInL, echoInR int32
	for i := range d.voices {
		vc := &d.voices[i]
		vc.stepEnvelope(tick)
		d.stepVoicePitch(vc)

		env := vc.envelope >> 4
		if env > 0x7F {
			env = 0x7F
		}
		sample := int32(vc.outSample)
		if vc.noiseEnable {
			sample = int32(int16(d.noiseLFSR))
		}
		scaled := sample * env / 0x80

		l := scaled * int32(vc.volL) / 0x80
		r := scaled * int32(vc.volR) / 0x80
		mixL += l
		mixR += r
		if vc.echoEnable {
			echoInL += l
			echoInR += r
		}
		if d.flags&0x40 != 0 { // mute
			mixL, mixR = 0, 0
		}
	}

	mixL = mixL * int32(d.mainVolL) / 0x80
	mixR = mixR * int32(d.mainVolR) / 0x80

	echoOutL, echoOutR := d.processEcho(tick, echoInL, echoInR)
	outL := clampSample(mixL + echoOutL*int32(d.echoVolL)/0x80)
	outR := clampSample(mixR + echoOutR*int32(d.echoVolR)/0x80)
	return outL, outR
}

// stepVoicePitch accumulates the voice's 14-bit pitch value into its
// resampling counter, decoding a fresh BRR sample each time the
// counter crosses a full output-sample boundary, then resamples the
// last four decoded samples through the Gaussian interpolator using
// the counter's fractional remainder. Pitch modulation (PMON) scales
// the effective pitch by a fixed 3/4; the previous voice's output does
// not enter into it.
func (d *DSP) stepVoicePitch(vc *voice) {
	pitch := uint32(vc.pitch)
	if vc.pitchModEnable {
		// Voices are processed independently in this mixer, so the
		// factor is a constant 3/4 rather than one taken from the
		// previous voice's output.
		pitch = pitch * 3 / 4
	}
	vc.pitchCounter += pitch
	for vc.pitchCounter >= 0x1000 {
		vc.pitchCounter -= 0x1000
		vc.advanceBRR(d.ram, d.dir) // pushes the new sample into vc.sampHist
	}
	vc.outSample = gaussianInterpolate(vc.pitchCounter, vc.sampHist)
}

func (d *DSP) stepNoise() {
	bit := (d.noiseLFSR ^ (d.noiseLFSR >> 1)) & 1
	d.noiseLFSR = (d.noiseLFSR >> 1) | (bit << 14)
}

func clampSample(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// processEcho reads the echo ring buffer at ESA/EDL, mixes in the
// current input through the 8-tap FIR filter, applies feedback, and
// writes the result back, per spec.md §4.6's echo unit.
func (d *DSP) processEcho(tick uint64, inL, inR int32) (int32, int32) {
	if d.flags&0x20 != 0 { // echo disabled
		return 0, 0
	}

	bufLen := uint32(d.edl) * 0x800
	if bufLen == 0 {
		bufLen = 4
	}
	base := uint32(d.esa) << 8
	addr := uint16(base + uint32(d.echoBufPos)%bufLen)

	rawL := int16(uint16(d.ram.Read(addr)) | uint16(d.ram.Read(addr+1))<<8)
	rawR := int16(uint16(d.ram.Read(addr+2)) | uint16(d.ram.Read(addr+3))<<8)

	var firL, firR int32
	d.echoHistory[7] = [2]int32{int32(rawL), int32(rawR)}
	for i, tap := range d.fir {
		firL += int32(tap) * d.echoHistory[i][0]
		firR += int32(tap) * d.echoHistory[i][1]
	}
	firL >>= 7
	firR >>= 7
	for i := 0; i < 7; i++ {
		d.echoHistory[i] = d.echoHistory[i+1]
	}

	newL := clampSample(inL + firL*int32(d.efb)/0x80)
	newR := clampSample(inR + firR*int32(d.efb)/0x80)
	d.ram.Write(addr, byte(newL))
	d.ram.Write(addr+1, byte(newL>>8))
	d.ram.Write(addr+2, byte(newR))
	d.ram.Write(addr+3, byte(newR>>8))

	d.echoBufPos = uint16((uint32(d.echoBufPos) + 4) % bufLen)
	d.lastEchoL, d.lastEchoR = firL, firR
	return firL, firR
}
