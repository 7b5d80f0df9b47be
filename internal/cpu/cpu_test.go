package cpu

import "testing"

// testBus is a flat 24-bit address space (256 banks x 64KiB) sized for
// unit tests; real memory mapping is internal/bus's job.
type testBus struct {
	mem [256 * 65536]byte
}

func (b *testBus) Read(bank uint8, offset uint16) (byte, int) {
	return b.mem[uint32(bank)<<16|uint32(offset)], 6
}

func (b *testBus) Write(bank uint8, offset uint16, value byte) int {
	b.mem[uint32(bank)<<16|uint32(offset)] = value
	return 6
}

func (b *testBus) setResetVector(addr uint16) {
	b.mem[0xFFFC] = byte(addr)
	b.mem[0xFFFD] = byte(addr >> 8)
}

func (b *testBus) load(bank uint8, offset uint16, code ...byte) {
	for i, v := range code {
		b.mem[uint32(bank)<<16|uint32(offset)+uint32(i)] = v
	}
}

func newTestCPU() (*CPU, *testBus) {
	bus := &testBus{}
	c := New(bus)
	return c, bus
}

func stepN(c *CPU, n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}

func TestResetVector(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	c.Reset()
	if c.PC != 0x8000 || c.PB != 0x00 || !c.E || c.S != 0x01FF || c.D != 0x0000 || c.DB != 0x00 {
		t.Fatalf("reset state = PC=%#04x PB=%#02x E=%v S=%#04x D=%#04x DB=%#02x", c.PC, c.PB, c.E, c.S, c.D, c.DB)
	}
}

func TestCLCThenXCE(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.load(0x00, 0x8000, 0x18, 0xFB, 0xE2, 0x30) // CLC; XCE; SEP #$30
	c.Reset()
	stepN(c, 2)
	if c.E {
		t.Fatalf("expected E=0 after CLC;XCE, got E=1")
	}
	if !c.C {
		t.Fatalf("expected C=1 after CLC;XCE (old E moved into C), got C=0")
	}
	c.Step()
	if !c.M || !c.XFlag {
		t.Fatalf("SEP #$30 should force M=1 X=1, got M=%v X=%v", c.M, c.XFlag)
	}
}

func TestBCDAdc(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.load(0x00, 0x8000, 0x69, 0x01) // ADC #$01
	c.Reset()
	c.DFlag = true
	c.M = true
	c.A = 0x09
	c.C = false
	c.Step()
	if c.A != 0x10 {
		t.Fatalf("BCD ADC result A=%#04x, want $10", c.A)
	}
	if c.C {
		t.Fatalf("BCD ADC carry = true, want false")
	}
	if c.Z {
		t.Fatalf("BCD ADC zero flag = true, want false")
	}
	if c.N {
		t.Fatalf("BCD ADC negative flag = true, want false")
	}
}

// TestBCDAdcOverflowReflectsPostCorrection pins the 65C816's decimal-mode
// quirk: $50 + $50 binary-adds to a pre-correction byte of $A0 (negative),
// but the BCD correction wraps it to $00 with carry out, which is not a
// signed overflow. V must follow the corrected result, not the binary one.
func TestBCDAdcOverflowReflectsPostCorrection(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.load(0x00, 0x8000, 0x69, 0x50) // ADC #$50
	c.Reset()
	c.DFlag = true
	c.M = true
	c.A = 0x50
	c.C = false
	c.Step()
	if c.A != 0x00 {
		t.Fatalf("BCD ADC result A=%#04x, want $00", c.A)
	}
	if !c.C {
		t.Fatalf("BCD ADC carry = false, want true")
	}
	if c.V {
		t.Fatalf("BCD ADC overflow = true, want false (post-correction result is not negative)")
	}
}

func TestLDASTAAbsolute(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.load(0x00, 0x8000, 0xA9, 0x42, 0x8D, 0x00, 0x10) // LDA #$42; STA $1000
	c.Reset()
	c.M = true
	stepN(c, 2)
	if v := bus.mem[0x001000]; v != 0x42 {
		t.Fatalf("STA absolute wrote %#02x, want $42", v)
	}
}

func TestDirectPageIndexedIndirect(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.mem[0x0005] = 0x00 // pointer low at DP $04+X($01) = $05
	bus.mem[0x0006] = 0x20
	bus.mem[0x002000] = 0x99 // DB=0, pointer resolves to bank 0 offset $2000
	bus.load(0x00, 0x8000, 0xA2, 0x01, 0xA1, 0x04) // LDX #$01; LDA ($04,X)
	c.Reset()
	c.M, c.XFlag = true, true
	stepN(c, 2)
	if c.A&0xFF != 0x99 {
		t.Fatalf("LDA (d,x) = %#04x, want $99", c.A)
	}
}

func TestMVNBlockMove(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.mem[0x010000] = 0x11
	bus.mem[0x010001] = 0x22
	bus.load(0x00, 0x8000, 0x54, 0x02, 0x01) // MVN dbank=$02 sbank=$01
	c.Reset()
	c.A = 0x0001 // move 2 bytes
	c.X = 0x0000
	c.Y = 0x0000
	c.Step() // first byte
	if c.PC != 0x8000 {
		t.Fatalf("MVN should rewind PC to retry, got PC=%#04x", c.PC)
	}
	c.Step() // second byte, completes
	if bus.mem[0x020000] != 0x11 || bus.mem[0x020001] != 0x22 {
		t.Fatalf("MVN did not copy both bytes: %#02x %#02x", bus.mem[0x020000], bus.mem[0x020001])
	}
	if c.X != 0x0002 || c.Y != 0x0002 {
		t.Fatalf("MVN should advance X/Y by 2, got X=%#04x Y=%#04x", c.X, c.Y)
	}
}

func TestJSRRTS(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.load(0x00, 0x8000, 0x20, 0x00, 0x90) // JSR $9000
	bus.load(0x00, 0x9000, 0x60)             // RTS
	c.Reset()
	c.Step() // JSR
	if c.PC != 0x9000 {
		t.Fatalf("JSR did not jump, PC=%#04x", c.PC)
	}
	c.Step() // RTS
	if c.PC != 0x8003 {
		t.Fatalf("RTS returned to %#04x, want $8003", c.PC)
	}
}

func TestNMIVectorsOnPending(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.mem[0xFFEA] = 0x00
	bus.mem[0xFFEB] = 0x90
	bus.load(0x00, 0x8000, 0xEA) // NOP
	c.Reset()
	c.E = false
	c.RequestNMI()
	c.Step()
	if c.PC != 0x9000 {
		t.Fatalf("NMI did not vector, PC=%#04x", c.PC)
	}
	if !c.I {
		t.Fatalf("NMI service should set I flag")
	}
}

func TestWAIWakesOnIRQ(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.load(0x00, 0x8000, 0xCB) // WAI
	c.Reset()
	c.Step()
	if !c.waiting {
		t.Fatalf("WAI should suspend the CPU")
	}
	r := c.Step()
	if r.Cycles != 8 {
		t.Fatalf("idle WAI step should report the HV-sample cycle cost")
	}
	c.SetIRQ(true)
	c.I = false
	c.Step()
	if c.waiting {
		t.Fatalf("WAI should resume once IRQ is asserted")
	}
}

func TestCompareImmediateEqual(t *testing.T) {
	c, bus := newTestCPU()
	bus.setResetVector(0x8000)
	bus.load(0x00, 0x8000, 0xA9, 0x05, 0xC9, 0x05) // LDA #$05; CMP #$05
	c.Reset()
	c.M = true
	stepN(c, 2)
	if !c.Z || !c.C {
		t.Fatalf("CMP equal should set Z and C, got Z=%v C=%v", c.Z, c.C)
	}
}
