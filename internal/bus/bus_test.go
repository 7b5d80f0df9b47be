package bus

type fakeCart struct {
	rom  []byte
	sram []byte
}

func (f *fakeCart) TranslateROM(bank uint8, offset uint16) (int, bool) {
	if offset < 0x8000 {
		return 0, false
	}
	idx := int(bank&^0x80)*0x8000 + int(offset&0x7FFF)
	if idx >= len(f.rom) {
		return 0, false
	}
	return idx, true
}

func (f *fakeCart) TranslateSRAM(bank uint8, offset uint16) (int, bool) {
	b := bank &^ 0x80
	if b < 0x70 || b > 0x7D || offset >= 0x8000 || len(f.sram) == 0 {
		return 0, false
	}
	idx := int(b-0x70)*0x8000 + int(offset)
	return idx % len(f.sram), true
}

func (f *fakeCart) ReadAt(idx int) byte        { return f.rom[idx] }
func (f *fakeCart) ReadSRAM(idx int) byte      { return f.sram[idx] }
func (f *fakeCart) WriteSRAM(idx int, v byte)  { f.sram[idx] = v }

type fakePPU struct {
	regs [64]byte
}

func (p *fakePPU) ReadRegister(addr uint16) byte  { return p.regs[addr&0x3F] }
func (p *fakePPU) WriteRegister(addr uint16, v byte) { p.regs[addr&0x3F] = v }

type fakeAPU struct {
	ports [4]byte
}

func (a *fakeAPU) ReadPort(i int) byte      { return a.ports[i] }
func (a *fakeAPU) WritePort(i int, v byte)  { a.ports[i] = v }

type fakeDMA struct {
	triggered    byte
	hdmaEnable   byte
	regs         [128]byte
}

func (d *fakeDMA) ReadRegister(addr uint16) byte     { return d.regs[addr-0x4300] }
func (d *fakeDMA) WriteRegister(addr uint16, v byte) { d.regs[addr-0x4300] = v }
func (d *fakeDMA) TriggerGeneralDMA(mask byte)       { d.triggered = mask }
func (d *fakeDMA) SetHDMAEnable(mask byte)           { d.hdmaEnable = mask }

type fakeInput struct {
	autoData [4]uint16
	regs     [2]byte
}

func (i *fakeInput) ReadRegister(addr uint16) byte     { return i.regs[addr-0x4016] }
func (i *fakeInput) WriteRegister(addr uint16, v byte) { i.regs[addr-0x4016] = v }
func (i *fakeInput) AutoReadData(port int) uint16      { return i.autoData[port] }

func newTestBus() (*Bus, *fakeCart, *fakePPU, *fakeAPU, *fakeDMA, *fakeInput) {
	cart := &fakeCart{rom: make([]byte, 0x8000), sram: make([]byte, 0x800)}
	ppu := &fakePPU{}
	apu := &fakeAPU{}
	dma := &fakeDMA{}
	input := &fakeInput{}
	b := New(cart, ppu, apu, dma, input)
	return b, cart, ppu, apu, dma, input
}
