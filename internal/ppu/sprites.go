package ppu

// spriteSizes maps OBSEL's size-select field to the (small, large)
// sprite dimensions in pixels.
var spriteSizes = [8][2]int{
	{8, 16}, {8, 32}, {8, 64}, {16, 32},
	{16, 64}, {32, 64}, {16, 32}, {16, 32},
}

type spriteAttrs struct {
	x          int
	y          int
	tile       uint16
	palette    uint8
	priority   uint8
	flipX      bool
	flipY      bool
	large      bool
}

func (p *PPU) readSpriteAttrs(i int) spriteAttrs {
	base := i * 4
	y := int(p.oam[base+1])
	tileLow := p.oam[base+2]
	attr := p.oam[base+3]

	highByte := p.oam[512+i/4]
	shift := uint((i % 4) * 2)
	xHighBit := highByte >> shift & 0x01
	large := highByte>>shift&0x02 != 0

	xLow := int(p.oam[base])
	x := xLow | int(xHighBit)<<8
	if x >= 256 {
		x -= 512
	}

	return spriteAttrs{
		x:        x,
		y:        y,
		tile:     uint16(tileLow) | uint16(attr&0x01)<<8,
		palette:  (attr >> 1) & 0x07,
		priority: (attr >> 4) & 0x03,
		flipX:    attr&0x40 != 0,
		flipY:    attr&0x80 != 0,
		large:    large,
	}
}

// spritePixel is one dot's resolved topmost sprite pixel.
type spritePixel struct {
	idx  byte
	pal  uint8
	prio uint8
	ok   bool
}

// spritePixelsOnLine evaluates all 128 OAM entries against scanline y
// and returns, for each of the 256 dots, the topmost opaque sprite
// pixel's (paletteIndex, paletteGroup, priority) or ok=false. Real
// hardware caps this at 32 sprites and 34 tiles per line and sets the
// overflow flags in STAT77; this implementation renders every
// intersecting sprite since dropped sprites aren't externally
// observable beyond those flags.
func (p *PPU) spritePixelsOnLine(y int) [ScreenWidth]spritePixel {
	var line [ScreenWidth]spritePixel

	dims := spriteSizes[p.objSizeSel]

	for i := 127; i >= 0; i-- {
		s := p.readSpriteAttrs(i)
		size := dims[0]
		if s.large {
			size = dims[1]
		}
		rowInSprite := y - s.y
		if s.y > 240 {
			rowInSprite = y - (s.y - 256)
		}
		if rowInSprite < 0 || rowInSprite >= size {
			continue
		}
		if s.flipY {
			rowInSprite = size - 1 - rowInSprite
		}
		tileRow := rowInSprite / 8
		py := rowInSprite % 8

		tilesAcross := size / 8
		for tx := 0; tx < tilesAcross; tx++ {
			screenX := s.x + tx*8
			col := tx
			if s.flipX {
				col = tilesAcross - 1 - tx
			}
			tileIdx := p.objTileAddr(s.tile, tileRow, col)
			for px := 0; px < 8; px++ {
				dotX := screenX + px
				if dotX < 0 || dotX >= ScreenWidth {
					continue
				}
				samplePx := px
				if s.flipX {
					samplePx = 7 - px
				}
				idx := p.tilePixel(tileIdx, 4, samplePx, py)
				if idx == 0 {
					continue
				}
				line[dotX] = spritePixel{idx: idx, pal: s.palette, prio: s.priority, ok: true}
			}
		}
	}
	return line
}

// objTileAddr computes the VRAM word address of the tile at
// (tileRow, tileCol) within a sprite's 16x16-tile sheet, honoring the
// OBSEL base/gap split between the first 256 tiles and the second.
func (p *PPU) objTileAddr(baseTile uint16, tileRow, tileCol int) uint16 {
	tile := (baseTile + uint16(tileRow)*16 + uint16(tileCol)) & 0x1FF
	base := p.objBaseAddr
	if tile >= 256 {
		base = p.objGapAddr
	}
	return base + (tile&0xFF)*16
}
