package ppu

// mode7Pixel computes the source tile map / tile data pixel sampled at
// screen coordinate (x, y) under the Mode 7 affine transform (spec.md
// §4.5 Mode 7). Mode 7 VRAM is organized as 128x128 tiles of 8x8 pixels,
// tile map and pixel data interleaved byte-by-byte in the low/high
// bytes of each VRAM word.
func (p *PPU) mode7Pixel(x, y int) (paletteIdx byte, tileIdx byte) {
	cx, cy := int32(p.m7X), int32(p.m7Y)
	// BG1HOFS/VOFS ($210D/$210E) double as M7HOFS/M7VOFS on real
	// hardware; reinterpret their 13-bit latched value as signed.
	ox, oy := int32(sign13(p.bg[0].hOfs)), int32(sign13(p.bg[0].vOfs))
	sx, sy := int32(x), int32(y)

	dx := (sx + ox - cx)
	dy := (sy + oy - cy)

	a, b, c, d := int32(p.m7A), int32(p.m7B), int32(p.m7C), int32(p.m7D)

	screenX := (a*dx + b*dy) >> 8
	screenY := (c*dx + d*dy) >> 8
	screenX += cx
	screenY += cy

	const mapSize = 1024 // 128 tiles * 8 px
	outside := screenX < 0 || screenX >= mapSize || screenY < 0 || screenY >= mapSize
	if outside {
		switch {
		case !p.m7ScreenOver:
			screenX &= mapSize - 1
			screenY &= mapSize - 1
		case p.m7Char0Fill:
			px, py := screenX&7, screenY&7
			pixelAddr := uint16(py*8 + px)
			return p.vram[pixelAddr*2+1], 0
		default:
			return 0, 0 // transparent
		}
	}

	if p.m7Flip[0] {
		screenX = mapSize - 1 - screenX
	}
	if p.m7Flip[1] {
		screenY = mapSize - 1 - screenY
	}

	tileX, tileY := screenX/8, screenY/8
	px, py := screenX%8, screenY%8

	mapAddr := uint16(tileY*128+tileX) * 2
	tileIdx = p.vram[mapAddr]

	pixelAddr := uint16(tileIdx)*64 + uint16(py*8+px)
	paletteIdx = p.vram[pixelAddr*2+1]
	return paletteIdx, tileIdx
}

func sign13(v uint16) int16 {
	v &= 0x1FFF
	if v&0x1000 != 0 {
		return int16(v) - 0x2000
	}
	return int16(v)
}
