package bus

import "testing"

func TestWRAMMirrorReadWrite(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.Write(0x00, 0x0010, 0xAB)
	v, cost := b.Read(0x00, 0x0010)
	if v != 0xAB {
		t.Fatalf("WRAM mirror read = %#02x, want $AB", v)
	}
	if cost != CycleSlow {
		t.Fatalf("WRAM mirror cost = %d, want %d", cost, CycleSlow)
	}

	v2, _ := b.Read(0x7E, 0x0010)
	if v2 != 0xAB {
		t.Fatalf("flat WRAM read = %#02x, want $AB (mirror of low 8KiB)", v2)
	}
}

func TestAccessSpeedTable(t *testing.T) {
	cases := []struct {
		bank, want uint8
		offset     uint16
		fast       bool
		cost       int
	}{
		{bank: 0x00, offset: 0x0000, cost: CycleSlow},
		{bank: 0x00, offset: 0x2100, cost: CycleFast},
		{bank: 0x00, offset: 0x4016, cost: CycleXSlow},
		{bank: 0x00, offset: 0x4200, cost: CycleFast},
		{bank: 0x00, offset: 0x6000, cost: CycleSlow},
		{bank: 0x00, offset: 0x8000, fast: false, cost: CycleSlow},
		{bank: 0x80, offset: 0x8000, fast: true, cost: CycleFast},
		{bank: 0x80, offset: 0x8000, fast: false, cost: CycleSlow},
		{bank: 0x40, offset: 0x8000, fast: true, cost: CycleSlow},
		{bank: 0xC0, offset: 0x8000, fast: true, cost: CycleFast},
	}
	for _, c := range cases {
		got := cyclesFor(c.bank, c.offset, c.fast)
		if got != c.cost {
			t.Errorf("cyclesFor(%#02x,%#04x,fast=%v) = %d, want %d", c.bank, c.offset, c.fast, got, c.cost)
		}
	}
}

func TestFastROMToggle(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	if b.FastROM() {
		t.Fatalf("FastROM should start disabled")
	}
	b.Write(0x00, 0x420D, 0x01)
	if !b.FastROM() {
		t.Fatalf("FastROM should be enabled after writing $420D=1")
	}
}

func TestPPUAndAPUPortDelegation(t *testing.T) {
	b, _, ppu, apu, _, _ := newTestBus()
	b.Write(0x00, 0x2105, 0x09)
	if ppu.regs[0x2105&0x3F] != 0x09 {
		t.Fatalf("PPU register write not delegated")
	}
	b.Write(0x00, 0x2140, 0xAA)
	if apu.ports[0] != 0xAA {
		t.Fatalf("APU port write not delegated")
	}
	v, _ := b.Read(0x00, 0x2140)
	if v != 0xAA {
		t.Fatalf("APU port read = %#02x, want $AA", v)
	}
}

func TestWRAMDataPortAutoIncrement(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.Write(0x00, 0x2181, 0x00)
	b.Write(0x00, 0x2182, 0x00)
	b.Write(0x00, 0x2183, 0x00)
	b.Write(0x00, 0x2180, 0x11)
	b.Write(0x00, 0x2180, 0x22)

	v0, _ := b.Read(0x7E, 0x0000)
	v1, _ := b.Read(0x7E, 0x0001)
	if v0 != 0x11 || v1 != 0x22 {
		t.Fatalf("WRAM port writes = %#02x,%#02x, want $11,$22", v0, v1)
	}
}

func TestNMIEnableWhilePending(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.SetVBlankNMI(true)
	b.Write(0x00, 0x4200, 0x81)
	if !b.TakePendingNMIOnEnable() {
		t.Fatalf("enabling NMI while pending should fire immediately")
	}
	if b.TakePendingNMIOnEnable() {
		t.Fatalf("pending flag should be consumed once")
	}
}

func TestRDNMIReadClears(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.SetVBlankNMI(true)
	v, _ := b.Read(0x00, 0x4210)
	if v&0x80 == 0 {
		t.Fatalf("RDNMI should report NMI occurred")
	}
	v2, _ := b.Read(0x00, 0x4210)
	if v2&0x80 != 0 {
		t.Fatalf("RDNMI should clear on read")
	}
}

func TestSRAMReadWrite(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.Write(0x70, 0x0000, 0x55)
	v, cost := b.Read(0x70, 0x0000)
	if v != 0x55 {
		t.Fatalf("SRAM read = %#02x, want $55", v)
	}
	if cost != CycleSlow {
		t.Fatalf("SRAM cost = %d, want %d", cost, CycleSlow)
	}
}

func TestOpenBusLatch(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.Write(0x00, 0x0000, 0x77)
	b.Read(0x00, 0x0000)
	if b.OpenBus() != 0x77 {
		t.Fatalf("open bus = %#02x, want $77", b.OpenBus())
	}
}

func TestHardwareMultiply(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.Write(0x00, 0x4202, 200) // WRMPYA
	b.Write(0x00, 0x4203, 3)   // WRMPYB, triggers

	lo, _ := b.Read(0x00, 0x4216)
	hi, _ := b.Read(0x00, 0x4217)
	product := uint16(lo) | uint16(hi)<<8
	if product != 600 {
		t.Fatalf("RDMPY = %d, want 600", product)
	}
}

func TestHardwareDivide(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.Write(0x00, 0x4204, 100) // WRDIVL
	b.Write(0x00, 0x4205, 0)   // WRDIVH, dividend = 100
	b.Write(0x00, 0x4206, 7)   // WRDIVB, triggers

	qlo, _ := b.Read(0x00, 0x4214)
	qhi, _ := b.Read(0x00, 0x4215)
	quotient := uint16(qlo) | uint16(qhi)<<8
	if quotient != 14 {
		t.Fatalf("RDDIV = %d, want 14", quotient)
	}

	rlo, _ := b.Read(0x00, 0x4216)
	rhi, _ := b.Read(0x00, 0x4217)
	remainder := uint16(rlo) | uint16(rhi)<<8
	if remainder != 2 {
		t.Fatalf("RDMPY = %d, want 2", remainder)
	}
}

func TestHardwareDivideByZero(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.Write(0x00, 0x4204, 0x34)
	b.Write(0x00, 0x4205, 0x12)
	b.Write(0x00, 0x4206, 0)

	qlo, _ := b.Read(0x00, 0x4214)
	qhi, _ := b.Read(0x00, 0x4215)
	if uint16(qlo)|uint16(qhi)<<8 != 0xFFFF {
		t.Fatalf("RDDIV on divide-by-zero should be $FFFF")
	}

	rlo, _ := b.Read(0x00, 0x4216)
	rhi, _ := b.Read(0x00, 0x4217)
	if uint16(rlo)|uint16(rhi)<<8 != 0x1234 {
		t.Fatalf("RDMPY on divide-by-zero should equal the dividend")
	}
}
