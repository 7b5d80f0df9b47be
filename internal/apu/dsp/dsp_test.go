package dsp

import "testing"

type fakeRAM struct {
	mem [65536]byte
}

func (r *fakeRAM) Read(addr uint16) byte     { return r.mem[addr] }
func (r *fakeRAM) Write(addr uint16, v byte) { r.mem[addr] = v }

func newTestDSP() (*DSP, *fakeRAM) {
	ram := &fakeRAM{}
	return New(ram), ram
}

func TestVoiceVolumePitchRegisterRoundTrip(t *testing.T) {
	d, _ := newTestDSP()
	d.WriteRegister(0x00, 0x40) // voice 0 VOLL
	d.WriteRegister(0x01, 0xC0) // voice 0 VOLR (negative as int8)
	d.WriteRegister(0x02, 0x34) // PITCHL
	d.WriteRegister(0x03, 0x17) // PITCHH (top 2 bits masked off)
	d.WriteRegister(0x04, 0x05) // SRCN

	if v := d.ReadRegister(0x00); v != 0x40 {
		t.Errorf("VOLL = %#02x, want 0x40", v)
	}
	if v := d.ReadRegister(0x01); v != 0xC0 {
		t.Errorf("VOLR = %#02x, want 0xC0", v)
	}
	if got := d.voices[0].pitch; got != 0x1734 {
		t.Errorf("pitch = %#04x, want 0x1734", got)
	}
	if got := d.voices[0].srcn; got != 0x05 {
		t.Errorf("srcn = %#02x, want 0x05", got)
	}
}

func TestADSRRegisterRoundTrip(t *testing.T) {
	d, _ := newTestDSP()
	d.WriteRegister(0x05, 0x8F) // ADSR1: enable, decay=0, attack=0x0F
	d.WriteRegister(0x06, 0xA5) // ADSR2: sustain level=5, sustain rate=5

	vc := &d.voices[0]
	if !vc.useADSR || vc.attackRate != 0x0F || vc.decayRate != 0 {
		t.Fatalf("ADSR1 decode wrong: useADSR=%v attack=%d decay=%d", vc.useADSR, vc.attackRate, vc.decayRate)
	}
	if vc.sustLevel != 5 || vc.sustRate != 5 {
		t.Fatalf("ADSR2 decode wrong: sustLevel=%d sustRate=%d", vc.sustLevel, vc.sustRate)
	}
	if got := d.ReadRegister(0x05); got != 0x8F {
		t.Errorf("ADSR1 readback = %#02x, want 0x8F", got)
	}
	if got := d.ReadRegister(0x06); got != 0xA5 {
		t.Errorf("ADSR2 readback = %#02x, want 0xA5", got)
	}
}

func TestGlobalVolumeAndFIRRegisters(t *testing.T) {
	d, _ := newTestDSP()
	d.WriteRegister(0x0C, 0x60) // MVOLL
	d.WriteRegister(0x1C, 0x9A) // MVOLR (negative as int8)
	d.WriteRegister(0x2C, 0x10) // EVOLL
	d.WriteRegister(0x3C, 0x20) // EVOLR
	d.WriteRegister(0x0F, 0x7F) // FIR tap 0
	d.WriteRegister(0x1F, 0x81) // FIR tap 1

	if d.ReadRegister(0x0C) != 0x60 || d.ReadRegister(0x1C) != 0x9A {
		t.Fatalf("main volume readback wrong: L=%#02x R=%#02x", d.ReadRegister(0x0C), d.ReadRegister(0x1C))
	}
	if d.ReadRegister(0x2C) != 0x10 || d.ReadRegister(0x3C) != 0x20 {
		t.Fatalf("echo volume readback wrong")
	}
	if d.fir[0] != 0x7F || d.fir[1] != -127 { // 0x81 as int8
		t.Fatalf("FIR taps wrong: tap0=%d tap1=%d", d.fir[0], d.fir[1])
	}
	if got := d.ReadRegister(0x0F); got != 0x7F {
		t.Errorf("FIR tap0 readback = %#02x, want 0x7F", got)
	}
}

func TestKeyOnKeyOffSetsPerVoiceFlags(t *testing.T) {
	d, _ := newTestDSP()
	d.WriteRegister(0x4C, 0x05) // KON voices 0 and 2
	if !d.voices[0].keyOn || !d.voices[2].keyOn {
		t.Fatalf("KON did not set voices 0/2: v0=%v v2=%v", d.voices[0].keyOn, d.voices[2].keyOn)
	}
	if d.voices[1].keyOn {
		t.Fatalf("KON incorrectly set voice 1")
	}

	d.WriteRegister(0x5C, 0x02) // KOFF voice 1
	if !d.voices[1].keyOff {
		t.Fatalf("KOFF did not set voice 1")
	}
}

func TestFLGSoftResetClearsENDX(t *testing.T) {
	d, _ := newTestDSP()
	d.endx = 0xFF
	d.WriteRegister(0x6C, 0x80) // FLG bit7: soft reset
	if d.endx != 0 {
		t.Fatalf("ENDX = %#02x after soft reset, want 0", d.endx)
	}
	if got := d.ReadRegister(0x6C); got != 0x80 {
		t.Errorf("FLG readback = %#02x, want 0x80", got)
	}
}

func TestENDXIsReadOnly(t *testing.T) {
	d, _ := newTestDSP()
	d.endx = 0x3C
	d.WriteRegister(0x7C, 0xFF)
	if d.endx != 0x3C {
		t.Fatalf("ENDX mutated by write: %#02x, want unchanged 0x3C", d.endx)
	}
}

// buildBRRBlock writes a single filter-0 BRR block with the given shift,
// end/loop flags and 16 signed 4-bit nibble samples at addr.
func buildBRRBlock(ram *fakeRAM, addr uint16, shift byte, nibbles [16]int8, end, loop bool) {
	header := shift << 4
	if loop {
		header |= 0x02
	}
	if end {
		header |= 0x01
	}
	ram.mem[addr] = header
	for i := 0; i < 8; i++ {
		hi := byte(nibbles[i*2]) & 0x0F
		lo := byte(nibbles[i*2+1]) & 0x0F
		ram.mem[addr+1+uint16(i)] = hi<<4 | lo
	}
}

func TestBRRDecodeFilter0AppliesShift(t *testing.T) {
	d, ram := newTestDSP()

	// Sample directory at page 0: entry 0 starts at $0100, loops to itself.
	ram.mem[0x0000] = 0x00
	ram.mem[0x0001] = 0x01
	ram.mem[0x0002] = 0x00
	ram.mem[0x0003] = 0x01

	var nibbles [16]int8
	nibbles[0] = 3 // 3 << shift(2) = 12
	nibbles[1] = -1
	buildBRRBlock(ram, 0x0100, 2, nibbles, true, true)

	vc := &d.voices[0]
	vc.srcn = 0
	s, ended := vc.advanceBRR(ram, d.dir)
	if s != 12 {
		t.Fatalf("first decoded sample = %d, want 12 (3<<2, filter 0 predicts 0)", s)
	}
	if ended {
		t.Fatalf("ended should only be true after all 16 samples of the block are consumed")
	}

	s2, _ := vc.advanceBRR(ram, d.dir)
	if s2 != -4 {
		t.Fatalf("second decoded sample = %d, want -4 (-1<<2)", s2)
	}
}

func TestBRRLoopsToLoopAddressOnBlockEnd(t *testing.T) {
	d, ram := newTestDSP()

	ram.mem[0x0000] = 0x00
	ram.mem[0x0001] = 0x02 // start at $0200
	ram.mem[0x0002] = 0x00
	ram.mem[0x0003] = 0x02 // loop address also $0200 (one-block loop)

	var nibbles [16]int8
	nibbles[0] = 5
	buildBRRBlock(ram, 0x0200, 0, nibbles, true, true)

	vc := &d.voices[0]
	vc.srcn = 0
	for i := 0; i < 15; i++ {
		vc.advanceBRR(ram, d.dir)
	}
	_, ended := vc.advanceBRR(ram, d.dir)
	if !ended {
		t.Fatalf("expected ended=true on the 16th sample of an end-flagged block")
	}
	if vc.brrAddr != 0x0200 {
		t.Fatalf("brrAddr after loop = %#04x, want 0x0200", vc.brrAddr)
	}

	// Next sample must decode from the looped block's data, not garbage.
	s, _ := vc.advanceBRR(ram, d.dir)
	if s != 5 {
		t.Fatalf("looped sample = %d, want 5 (filter 0, shift 0)", s)
	}
}

func TestADSRAttackReachesDecayPhase(t *testing.T) {
	d, _ := newTestDSP()
	vc := &d.voices[0]
	vc.useADSR = true
	vc.attackRate = 0x0F // rate index 31: instant-attack step of 1024 every tick
	vc.keyOn = true

	vc.stepEnvelope(0)
	if vc.phase != phaseAttack {
		t.Fatalf("phase after key-on = %v, want phaseAttack", vc.phase)
	}

	var tick uint64
	for i := 0; i < 4 && vc.phase == phaseAttack; i++ {
		tick++
		vc.stepEnvelope(tick)
	}
	if vc.phase != phaseDecay {
		t.Fatalf("phase after full-speed attack = %v, want phaseDecay (envelope=%d)", vc.phase, vc.envelope)
	}
}

func TestKeyOffMovesToReleasePhase(t *testing.T) {
	d, _ := newTestDSP()
	vc := &d.voices[0]
	vc.useADSR = true
	vc.phase = phaseSustain
	vc.envelope = 0x400
	vc.keyOff = true

	vc.stepEnvelope(0)
	if vc.phase != phaseRelease {
		t.Fatalf("phase after key-off = %v, want phaseRelease", vc.phase)
	}
	prev := vc.envelope
	vc.stepEnvelope(1)
	if vc.envelope != prev-8 {
		t.Fatalf("release envelope = %d, want %d (linear -8/tick)", vc.envelope, prev-8)
	}
}

func TestKeyOnLatchesOnlyAt64HzBoundary(t *testing.T) {
	d, _ := newTestDSP()
	vc := &d.voices[0]
	vc.useADSR = true
	vc.phase = phaseSustain
	vc.keyOn = true

	vc.stepEnvelope(1) // not a 64Hz boundary tick (500 ticks per boundary)
	if vc.phase != phaseSustain {
		t.Fatalf("phase changed before the next 64Hz boundary: %v", vc.phase)
	}
	if !vc.keyOn {
		t.Fatalf("keyOn should remain latched until the boundary")
	}

	vc.stepEnvelope(500)
	if vc.phase != phaseAttack {
		t.Fatalf("phase after reaching the 64Hz boundary = %v, want phaseAttack", vc.phase)
	}
	if vc.keyOn {
		t.Fatalf("keyOn should be consumed once applied")
	}
}

func TestGaussianInterpolateFlatSignalPassesThrough(t *testing.T) {
	hist := [4]int32{1000, 1000, 1000, 1000}
	for _, pc := range []uint32{0x000, 0x400, 0x800, 0xC00, 0xFFF} {
		got := gaussianInterpolate(pc, hist)
		if got < 990 || got > 1010 {
			t.Fatalf("gaussianInterpolate(%#x, flat 1000) = %d, want close to 1000", pc, got)
		}
	}
}

func TestGaussianInterpolateWeightsFavorNearerSamples(t *testing.T) {
	hist := [4]int32{0, 0, 0, 10000}
	early := gaussianInterpolate(0x000, hist)
	late := gaussianInterpolate(0xFF0, hist)
	if late <= early {
		t.Fatalf("interpolated output should weight hist[3] more as the fraction approaches 1: early=%d late=%d", early, late)
	}
}

func TestDirectGainSetsEnvelopeImmediately(t *testing.T) {
	d, _ := newTestDSP()
	vc := &d.voices[0]
	vc.useADSR = false
	vc.setGain(0x20) // direct mode, param 0x20
	vc.stepEnvelope(0)
	if vc.envelope != 0x20*0x10 {
		t.Fatalf("direct gain envelope = %#x, want %#x", vc.envelope, 0x20*0x10)
	}
}

func TestEchoWritesBackFilteredSampleToRingBuffer(t *testing.T) {
	d, ram := newTestDSP()
	d.esa = 0x10   // echo region at $1000
	d.edl = 1      // 2KiB ring buffer
	d.fir[0] = 127 // pass the oldest tap through near-unity after >>7
	d.efb = 0

	// Seed the ring buffer with a known 16-bit stereo sample.
	addr := uint16(0x1000)
	ram.mem[addr] = 0x00
	ram.mem[addr+1] = 0x10 // rawL = 0x1000
	ram.mem[addr+2] = 0x00
	ram.mem[addr+3] = 0x08 // rawR = 0x0800

	_, _ = d.processEcho(0, 0, 0)

	gotL := int16(uint16(ram.mem[addr]) | uint16(ram.mem[addr+1])<<8)
	gotR := int16(uint16(ram.mem[addr+2]) | uint16(ram.mem[addr+3])<<8)
	if gotL == 0x1000 && gotR == 0x0800 {
		t.Fatalf("ring buffer unchanged after processEcho, expected FIR output written back")
	}
}

func TestEchoDisabledReturnsSilence(t *testing.T) {
	d, _ := newTestDSP()
	d.flags = 0x20 // echo disable
	l, r := d.processEcho(0, 500, 500)
	if l != 0 || r != 0 {
		t.Fatalf("processEcho with echo disabled = (%d,%d), want (0,0)", l, r)
	}
}

func TestSampleProducesSilenceOnSoftReset(t *testing.T) {
	d, _ := newTestDSP()
	d.flags = 0x80
	l, r := d.Sample(0)
	if l != 0 || r != 0 {
		t.Fatalf("Sample during soft reset = (%d,%d), want (0,0)", l, r)
	}
}
