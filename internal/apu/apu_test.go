package apu

import "testing"

func TestIPLROMShadowsTopOfRAMUntilDisabled(t *testing.T) {
	a := New(21477270.0, 1024000.0, 32000)

	if got := a.ram.Read(0xFFC0); got != iplROM[0] {
		t.Fatalf("IPL ROM not mapped at $FFC0: got %#02x, want %#02x", got, iplROM[0])
	}

	a.ram.data[0xFFC0] = 0x99 // underlying RAM write should be shadowed while IPL is active
	if got := a.ram.Read(0xFFC0); got != iplROM[0] {
		t.Fatalf("IPL ROM still expected at $FFC0 after RAM write: got %#02x", got)
	}

	a.writeIOPort(0xF1, 0x00) // bit7 clear disables the IPL mapping
	if got := a.ram.Read(0xFFC0); got != 0x99 {
		t.Fatalf("RAM not exposed at $FFC0 after disabling IPL: got %#02x, want 0x99", got)
	}
}

func TestF1Bit4And5ClearMailboxPairs(t *testing.T) {
	a := New(21477270.0, 1024000.0, 32000)
	a.ports = [4]byte{0x11, 0x22, 0x33, 0x44}

	a.writeIOPort(0xF1, 0x10) // clear ports 0-1
	if a.ports[0] != 0 || a.ports[1] != 0 {
		t.Fatalf("ports 0-1 = %#02x,%#02x, want cleared", a.ports[0], a.ports[1])
	}
	if a.ports[2] != 0x33 || a.ports[3] != 0x44 {
		t.Fatalf("ports 2-3 changed unexpectedly: %#02x,%#02x", a.ports[2], a.ports[3])
	}

	a.ports = [4]byte{0x11, 0x22, 0x33, 0x44}
	a.writeIOPort(0xF1, 0x20) // clear ports 2-3
	if a.ports[2] != 0 || a.ports[3] != 0 {
		t.Fatalf("ports 2-3 = %#02x,%#02x, want cleared", a.ports[2], a.ports[3])
	}
}

func TestMailboxRoundTripBothDirections(t *testing.T) {
	a := New(21477270.0, 1024000.0, 32000)

	// Main CPU -> SPC700 direction: WritePort is the bus-facing entry
	// point, readIOPort($F4-$F7) is what the SPC700 program sees.
	a.WritePort(0, 0xAA)
	if got := a.readIOPort(0xF4); got != 0xAA {
		t.Fatalf("SPC700 side of port 0 = %#02x, want 0xAA", got)
	}

	// SPC700 -> main CPU direction: writeIOPort is what SPC700 code
	// does, ReadPort is the bus-facing entry point.
	a.writeIOPort(0xF5, 0xBB)
	if got := a.ReadPort(1); got != 0xBB {
		t.Fatalf("main CPU side of port 1 = %#02x, want 0xBB", got)
	}
}

func TestDSPRegisterPortRoundTrip(t *testing.T) {
	a := New(21477270.0, 1024000.0, 32000)

	a.writeIOPort(0xF2, 0x0C) // select MVOLL
	a.writeIOPort(0xF3, 0x55)
	if got := a.dsp.ReadRegister(0x0C); got != 0x55 {
		t.Fatalf("DSP register 0x0C via $F2/$F3 = %#02x, want 0x55", got)
	}

	a.writeIOPort(0xF2, 0x0C)
	if got := a.readIOPort(0xF3); got != 0x55 {
		t.Fatalf("$F3 readback via dspAddr latch = %#02x, want 0x55", got)
	}
}

func TestApuMemoryRoutesIOPageAndPlainRAM(t *testing.T) {
	a := New(21477270.0, 1024000.0, 32000)
	mem := apuMemory{a}

	mem.Write(0x0010, 0x42)
	if got := mem.Read(0x0010); got != 0x42 {
		t.Fatalf("plain RAM byte = %#02x, want 0x42", got)
	}

	mem.Write(0xF4, 0x77)
	if got := a.toCPU[0]; got != 0x77 {
		t.Fatalf("write to $F4 did not land in toCPU[0]: %#02x", got)
	}
}

func TestResetReenablesIPLAndClearsMailbox(t *testing.T) {
	a := New(21477270.0, 1024000.0, 32000)
	a.writeIOPort(0xF1, 0x00) // disable IPL
	a.ports = [4]byte{1, 2, 3, 4}
	a.toCPU = [4]byte{5, 6, 7, 8}

	a.Reset()

	if !a.ram.iplReady {
		t.Fatalf("IPL not re-enabled after Reset")
	}
	if a.ports != ([4]byte{}) || a.toCPU != ([4]byte{}) {
		t.Fatalf("mailbox not cleared after Reset: ports=%v toCPU=%v", a.ports, a.toCPU)
	}
}

func TestStepProducesBufferedSamplesOverManyCycles(t *testing.T) {
	a := New(21477270.0, 1024000.0, 32000)

	// Enough master cycles to drain several SPC700 instructions and
	// cross at least one DSP sample-rate tick boundary.
	for i := 0; i < 2000; i++ {
		a.Step(100)
	}

	samples := a.Samples()
	if len(samples) == 0 {
		t.Fatalf("expected at least one buffered stereo sample after sustained Step calls")
	}
	if len(samples)%2 != 0 {
		t.Fatalf("sample buffer length %d is not a multiple of 2 (interleaved stereo)", len(samples))
	}

	// Samples() drains the buffer.
	if again := a.Samples(); len(again) != 0 {
		t.Fatalf("Samples() did not drain the buffer, got %d left over", len(again))
	}
}
