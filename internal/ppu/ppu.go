// Package ppu implements the SNES Picture Processing Unit: the
// scanline-synchronous background/sprite renderer across BG modes 0-7,
// Mode 7 affine transform, windows, and color math (spec.md §4.5).
package ppu

// ScreenWidth and ScreenHeight are the visible SNES framebuffer
// dimensions (the extra two rows of overscan are not exposed here).
const (
	ScreenWidth  = 256
	ScreenHeight = 224
)

const (
	vramSize  = 64 * 1024 // 32K words
	cgramSize = 512       // 256 BGR555 colors, 2 bytes each
	oamSize   = 544        // 512-byte low table + 32-byte high table
)

// bgLayer holds one background layer's scroll/tilemap/tile-data config.
type bgLayer struct {
	hOfs, vOfs uint16 // BGxHOFS/BGxVOFS, 13-bit
	scAddr     uint16 // tilemap base address in VRAM words, from BGxSC bits 2-7
	scSize     uint8  // BGxSC bits 0-1: 0=32x32,1=64x32,2=32x64,3=64x64
	nbaAddr    uint16 // tile data base address in VRAM words, from BGxNBAx
	mosaic     bool
}

// PPU is the SNES picture processing unit.
type PPU struct {
	// $2100 INIDISP
	forceBlank bool
	brightness uint8 // 0-15

	// $2101 OBSEL
	objBaseAddr  uint16
	objGapAddr   uint16
	objSizeSel   uint8

	bg        [4]bgLayer
	bgMode    uint8 // $2105 bits 0-2
	bg3Prio   bool  // $2105 bit 3
	mosaicSize uint8
	mosaicEnable [4]bool

	// $210B/$210C NBA already folded into bg[i].nbaAddr

	// VRAM access ($2115-2119)
	vramIncHigh  bool
	vramIncStep  uint16
	vramRemap    uint8
	vramAddr     uint16
	vramReadBuf  uint16

	// Mode 7 ($211A-2120)
	m7Flip       [2]bool
	m7ScreenOver bool // $211A bit6: wrap (false) or apply a fill behavior (true) out of bounds
	m7Char0Fill  bool // $211A bit7, only meaningful when m7ScreenOver: character 0's graphics (true) or transparent (false)
	m7A, m7B, m7C, m7D int16
	m7X, m7Y     int16
	m7Latch      byte
	scrollLatch  byte

	// CGRAM access ($2121-2122, $213B)
	cgAddr    uint8
	cgHighByte bool
	cgLowLatch byte

	// Windows ($2123-212B). Index 0-3 = BG1-4, index 4 = OBJ.
	w1Left, w1Right uint8
	w2Left, w2Right uint8
	win1Enable, win1Invert [5]bool
	win2Enable, win2Invert [5]bool
	winLogic    [5]uint8 // BG1-4, OBJ combine op: 0=OR,1=AND,2=XOR,3=XNOR
	colWinLogic uint8    // color-window combine op (CGWSEL bits 6-7 consumer)

	// Screen designation ($212C-212D main/sub screen enable)
	mainScreen uint8
	subScreen  uint8
	// $212E/$212F window mask enable for main/sub screens
	mainWindowMask uint8
	subWindowMask  uint8

	// Color math ($2130-2132)
	colorMathMask   uint8 // CGWSEL
	colorMathEnable uint8 // CGADSUB bits 0-5 (which layers participate)
	colorMathSub    bool  // CGADSUB bit7: subtract instead of add
	colorMathHalf   bool  // CGADSUB bit6
	fixedColor      [3]uint8 // B,G,R accumulated via COLDATA writes

	// $2133 SETINI
	interlace   bool
	objInterlace bool
	overscan    bool
	pseudoHires bool
	extBG       bool

	// Counters and latches
	scanline int
	dot      int
	oddFrame bool

	hCount uint16
	vCount uint16
	hLatched, vLatched bool

	vblank bool
	hblank bool

	vram  [vramSize]byte
	cgram [cgramSize]byte
	oam   [oamSize]byte
	oamAddr uint16
	oamLowLatch byte

	frame [ScreenWidth * ScreenHeight]uint32

	nmiCallback   func()
	frameComplete func([]uint32)
}

// New constructs a PPU with all VRAM/CGRAM/OAM contents zeroed.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// SetNMICallback installs the V-blank NMI edge notifier, invoked once
// per frame when the PPU enters V-blank (scanline 225 on NTSC timing).
func (p *PPU) SetNMICallback(fn func()) { p.nmiCallback = fn }

// SetFrameCompleteCallback installs the callback invoked with the
// finished frame buffer once rendering reaches the last scanline.
func (p *PPU) SetFrameCompleteCallback(fn func([]uint32)) { p.frameComplete = fn }

// Reset clears all PPU register and counter state. VRAM/CGRAM/OAM
// contents are preserved across a soft reset on real hardware but this
// emulator clears them too since nothing seeds them except CPU writes.
func (p *PPU) Reset() {
	*p = PPU{nmiCallback: p.nmiCallback, frameComplete: p.frameComplete}
	p.forceBlank = true
	p.scanline = 0
	p.dot = 0
}

// InVBlank reports whether the PPU is currently past the last visible
// scanline (used by the bus/scheduler to drive NMI and $4212 bit7).
func (p *PPU) InVBlank() bool { return p.vblank }

// Frame returns the completed frame buffer as packed 0xRRGGBB pixels.
func (p *PPU) Frame() []uint32 { return p.frame[:] }
