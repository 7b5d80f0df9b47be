// Package dsp implements the SNES S-DSP: an 8-voice BRR sample player
// with ADSR/GAIN envelopes, pitch modulation, noise, panning, and an
// echo unit with an 8-tap FIR filter (spec.md §4.6).
package dsp

// RAM is the 64KiB APU address space the DSP samples BRR data and the
// echo buffer from; it is the same memory the SPC700 CPU executes
// against.
type RAM interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

const numVoices = 8

// adsrPhase enumerates a voice's envelope phase.
type adsrPhase int

const (
	phaseOff adsrPhase = iota
	phaseAttack
	phaseDecay
	phaseSustain
	phaseRelease
)

type voice struct {
	volL, volR int8
	pitch      uint16 // 14-bit, 1.0 = 0x1000

	srcn byte // sample source entry index into the DIR table

	gainMode   byte // 0 = direct gain byte, else curve selector
	gainParam  byte
	useADSR    bool
	attackRate byte
	decayRate  byte
	sustRate   byte
	sustLevel  byte

	keyOn, keyOff bool

	envelope int32 // 0-0x7FF internal envelope level
	phase    adsrPhase

	// BRR decode state
	brrAddr      uint16 // current block address in RAM
	brrPos       int    // sample position within the 16-sample block
	blockEnd     bool
	blockLoop    bool
	prev1, prev2 int32 // BRR predictor history
	cachedBlock  [8]byte
	cachedHeader brrBlock
	started      bool

	pitchCounter uint32
	sampHist     [4]int32 // last 4 decoded BRR samples, oldest first, for gaussianInterpolate
	outSample    int16

	echoEnable bool
	noiseEnable bool
	pitchModEnable bool
}

// DSP is the S-DSP register file and per-sample mixer.
type DSP struct {
	ram RAM

	voices [numVoices]voice

	mainVolL, mainVolR int8
	echoVolL, echoVolR int8

	konLatch, koffLatch byte
	flags               byte // FLG: bit7 soft reset, bit6 mute, bit5 echo disable, bits0-4 noise clock
	endx                byte

	efb byte // echo feedback
	esa byte // echo region start page
	edl byte // echo delay, 0-15 (x 2KiB)
	fir [8]int8

	non byte // noise enable bitmask
	pmon byte // pitch modulation enable bitmask
	eon byte // echo enable bitmask

	dir byte // sample directory page

	noiseLFSR uint16

	echoBufPos  uint16
	echoHistory [8][2]int32 // per-tap FIR delay line, [tap][L/R]
	lastEchoL, lastEchoR int32
}

// New constructs a DSP with its sample directory reading from ram.
func New(ram RAM) *DSP {
	d := &DSP{ram: ram}
	d.noiseLFSR = 0x4000
	return d
}

// ReadRegister reads one of the 128 DSP registers ($00-$7F address
// space addressed separately from the CPU's memory map via $F2/$F3).
func (d *DSP) ReadRegister(addr byte) byte {
	if addr < 0x80 && addr&0x0F <= 0x09 && addr>>4 < numVoices {
		return d.readVoiceRegister(int(addr>>4), addr&0x0F)
	}
	switch addr {
	case 0x0C:
		return byte(d.mainVolL)
	case 0x1C:
		return byte(d.mainVolR)
	case 0x2C:
		return byte(d.echoVolL)
	case 0x3C:
		return byte(d.echoVolR)
	case 0x4C:
		return d.konLatch
	case 0x5C:
		return d.koffLatch
	case 0x6C:
		return d.flags
	case 0x7C:
		return d.endx
	case 0x0D:
		return d.efb
	case 0x2D:
		return d.pmon
	case 0x3D:
		return d.non
	case 0x4D:
		return d.eon
	case 0x5D:
		return d.dir
	case 0x6D:
		return d.esa
	case 0x7D:
		return d.edl
	}
	if addr >= 0x0F && addr <= 0x7F && addr%0x10 == 0x0F {
		return byte(d.fir[addr/0x10])
	}
	return 0
}

// WriteRegister writes one of the 128 DSP registers.
func (d *DSP) WriteRegister(addr, v byte) {
	if addr < 0x80 && addr&0x0F <= 0x09 && addr>>4 < numVoices {
		d.writeVoiceRegister(int(addr>>4), addr&0x0F, v)
		return
	}
	switch addr {
	case 0x0C:
		d.mainVolL = int8(v)
	case 0x1C:
		d.mainVolR = int8(v)
	case 0x2C:
		d.echoVolL = int8(v)
	case 0x3C:
		d.echoVolR = int8(v)
	case 0x4C:
		d.konLatch = v
		for i := 0; i < numVoices; i++ {
			if v&(1<<uint(i)) != 0 {
				d.voices[i].keyOn = true
			}
		}
	case 0x5C:
		d.koffLatch = v
		for i := 0; i < numVoices; i++ {
			if v&(1<<uint(i)) != 0 {
				d.voices[i].keyOff = true
			}
		}
	case 0x6C:
		d.flags = v
		if v&0x80 != 0 {
			d.endx = 0
		}
	case 0x7C:
		// ENDX is read-only; writes are ignored by real hardware.
	case 0x0D:
		d.efb = v
	case 0x2D:
		d.pmon = v
		for i := 0; i < numVoices; i++ {
			d.voices[i].pitchModEnable = v&(1<<uint(i)) != 0
		}
	case 0x3D:
		d.non = v
		for i := 0; i < numVoices; i++ {
			d.voices[i].noiseEnable = v&(1<<uint(i)) != 0
		}
	case 0x4D:
		d.eon = v
		for i := 0; i < numVoices; i++ {
			d.voices[i].echoEnable = v&(1<<uint(i)) != 0
		}
	case 0x5D:
		d.dir = v
	case 0x6D:
		d.esa = v
	case 0x7D:
		d.edl = v & 0x0F
	default:
		if addr <= 0x7F && addr%0x10 == 0x0F {
			d.fir[addr/0x10] = int8(v)
		}
	}
}

func (d *DSP) readVoiceRegister(v int, reg byte) byte {
	vc := &d.voices[v]
	switch reg {
	case 0x00:
		return byte(vc.volL)
	case 0x01:
		return byte(vc.volR)
	case 0x02:
		return byte(vc.pitch)
	case 0x03:
		return byte(vc.pitch >> 8)
	case 0x04:
		return vc.srcn
	case 0x05:
		return vc.adsr1()
	case 0x06:
		return vc.adsr2()
	case 0x07:
		return vc.gainByte()
	case 0x08:
		return byte(vc.envelope >> 4)
	case 0x09:
		return byte(vc.outSample >> 8)
	}
	return 0
}

func (d *DSP) writeVoiceRegister(v int, reg byte, val byte) {
	vc := &d.voices[v]
	switch reg {
	case 0x00:
		vc.volL = int8(val)
	case 0x01:
		vc.volR = int8(val)
	case 0x02:
		vc.pitch = (vc.pitch &^ 0x00FF) | uint16(val)
	case 0x03:
		vc.pitch = (vc.pitch & 0x00FF) | uint16(val&0x3F)<<8
	case 0x04:
		vc.srcn = val
	case 0x05:
		vc.setADSR1(val)
	case 0x06:
		vc.setADSR2(val)
	case 0x07:
		vc.setGain(val)
	}
}

func (vc *voice) adsr1() byte {
	v := byte(0)
	if vc.useADSR {
		v |= 0x80
	}
	v |= vc.decayRate << 4 & 0x70
	v |= vc.attackRate & 0x0F
	return v
}

func (vc *voice) setADSR1(v byte) {
	vc.useADSR = v&0x80 != 0
	vc.decayRate = (v >> 4) & 0x07
	vc.attackRate = v & 0x0F
}

func (vc *voice) adsr2() byte {
	return vc.sustLevel<<5&0xE0 | vc.sustRate&0x1F
}

func (vc *voice) setADSR2(v byte) {
	vc.sustLevel = (v >> 5) & 0x07
	vc.sustRate = v & 0x1F
}

func (vc *voice) gainByte() byte {
	if !vc.useADSR {
		return 0x80 | vc.gainParam
	}
	return 0
}

func (vc *voice) setGain(v byte) {
	if v&0x80 == 0 {
		vc.gainMode = 0
		vc.gainParam = v & 0x7F
	} else {
		vc.gainMode = (v >> 5) & 0x03
		vc.gainParam = v & 0x1F
	}
}
