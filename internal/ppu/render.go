package ppu

// layerPixel is one layer's resolved pixel at a given dot: a palette
// index (0 = transparent) plus the information needed to look up its
// CGRAM color and compositing priority.
type layerPixel struct {
	idx      byte
	palGroup uint8
	bpp      int
	priority bool
	ok       bool
}

// renderScanline fills the frame buffer row for p.scanline using the
// currently configured background mode, sprites, windows and color
// math. Called once per visible scanline from Tick.
func (p *PPU) renderScanline() {
	y := p.scanline
	if y < 0 || y >= ScreenHeight {
		return
	}
	if p.forceBlank {
		for x := 0; x < ScreenWidth; x++ {
			p.frame[y*ScreenWidth+x] = 0
		}
		return
	}

	sprites := p.spritePixelsOnLine(y)

	bgPixels := [4][ScreenWidth]layerPixel{}
	numBG := numLayersForMode(p.bgMode)
	for layer := 0; layer < numBG; layer++ {
		if p.bgMode == 7 && layer == 0 {
			bgPixels[layer] = p.renderMode7Line(y)
			continue
		}
		bgPixels[layer] = p.renderBGLine(layer, y)
	}

	for x := 0; x < ScreenWidth; x++ {
		mainColor, mainIsBG := p.resolveTopPixel(p.mainScreen, bgPixels, sprites, x, numBG, true)
		useColorMath := p.shouldApplyColorMath(x, mainIsBG)

		final := mainColor
		if useColorMath {
			subColor, _ := p.resolveTopPixel(p.subScreen, bgPixels, sprites, x, numBG, false)
			useFixed := p.colorMathMask&0x02 == 0
			final = p.colorMath(mainColor, subColor, useFixed)
		}
		final = applyBrightness(final, p.brightness)
		p.frame[y*ScreenWidth+x] = final
	}
}

func numLayersForMode(mode uint8) int {
	switch mode {
	case 0:
		return 4
	case 1, 2, 3, 4, 5, 6:
		return 3
	case 7:
		return 1
	}
	return 0
}

// renderBGLine decodes one tile-based background layer's pixels for
// scanline y.
func (p *PPU) renderBGLine(layer int, y int) [ScreenWidth]layerPixel {
	var row [ScreenWidth]layerPixel
	bpp := bppForMode(p.bgMode, layer)
	if bpp == 0 {
		return row
	}
	bg := &p.bg[layer]
	scrolledY := (y + int(bg.vOfs)) & 0x3FF
	tileRow := scrolledY / 8
	py := scrolledY % 8

	for x := 0; x < ScreenWidth; x++ {
		scrolledX := (x + int(bg.hOfs)) & 0x3FF
		tileCol := scrolledX / 8
		px := scrolledX % 8

		word := p.tilemapWord(bg, tileCol, tileRow)
		entry := decodeTilemapEntry(word)

		samplePx, samplePy := px, py
		if entry.flipX {
			samplePx = 7 - px
		}
		if entry.flipY {
			samplePy = 7 - py
		}

		tileWords := uint16(bpp) * 4
		tileBase := bg.nbaAddr + entry.tileIndex*tileWords
		idx := p.tilePixel(tileBase, bpp, samplePx, samplePy)

		row[x] = layerPixel{
			idx:      idx,
			palGroup: entry.palette,
			bpp:      bpp,
			priority: entry.priority,
			ok:       idx != 0,
		}
	}
	return row
}

func (p *PPU) renderMode7Line(y int) [ScreenWidth]layerPixel {
	var row [ScreenWidth]layerPixel
	for x := 0; x < ScreenWidth; x++ {
		idx, _ := p.mode7Pixel(x, y)
		row[x] = layerPixel{idx: idx, bpp: 8, ok: idx != 0}
	}
	return row
}

// bgColor resolves a background layerPixel to its CGRAM color.
func (p *PPU) bgColor(layer int, lp layerPixel) uint32 {
	if lp.bpp == 8 {
		return p.cgramColor(lp.idx)
	}
	groupSize := byte(1) << uint(lp.bpp)
	cgIdx := lp.palGroup*groupSize + lp.idx
	return p.cgramColor(cgIdx)
}

func (p *PPU) spriteColor(sp spritePixel) uint32 {
	cgIdx := 128 + sp.pal*16 + sp.idx
	return p.cgramColor(cgIdx)
}

// resolveTopPixel walks the priority order for the given screen
// designation mask (mainScreen or subScreen) and returns the topmost
// opaque pixel's color, or the backdrop color (CGRAM entry 0) if none.
func (p *PPU) resolveTopPixel(mask uint8, bg [4][ScreenWidth]layerPixel, sprites [ScreenWidth]spritePixel, x, numBG int, forMain bool) (uint32, bool) {
	order := priorityOrderForMode(p.bgMode, p.bg3Prio)
	for _, e := range order {
		if e.isSprite {
			if mask&0x10 == 0 {
				continue
			}
			sp := sprites[x]
			if !sp.ok || int(sp.prio) != e.prio {
				continue
			}
			if p.windowExcludes(4, x, forMain) {
				continue
			}
			return p.spriteColor(sp), false
		}
		if e.layer >= numBG || mask&(1<<uint(e.layer)) == 0 {
			continue
		}
		lp := bg[e.layer][x]
		if !lp.ok || lp.priority != (e.prio == 1) {
			continue
		}
		if p.windowExcludes(e.layer, x, forMain) {
			continue
		}
		return p.bgColor(e.layer, lp), true
	}
	return p.cgramColor(0), false
}

func (p *PPU) windowExcludes(layer, x int, forMain bool) bool {
	maskReg := p.mainWindowMask
	if !forMain {
		maskReg = p.subWindowMask
	}
	if maskReg&(1<<uint(layer)) == 0 {
		return false
	}
	return p.windowMasked(layer, x)
}

func (p *PPU) shouldApplyColorMath(x int, mainIsBG bool) bool {
	if p.colorMathEnable == 0 {
		return false
	}
	if p.colorMathMask&0x20 != 0 && p.windowMasked(4, x) {
		return false
	}
	return true
}

type priorityEntry struct {
	layer    int
	prio     int
	isSprite bool
}

// priorityOrderForMode returns the front-to-back compositing order for
// a background mode, highest priority first. This follows the common
// per-mode priority table (sprite priorities interleaved with BG
// layers at 4 levels: 3 highest, 0 lowest).
func priorityOrderForMode(mode uint8, bg3Prio bool) []priorityEntry {
	switch mode {
	case 0:
		return []priorityEntry{
			{isSprite: true, prio: 3},
			{layer: 0, prio: 1},
			{layer: 1, prio: 1},
			{isSprite: true, prio: 2},
			{layer: 2, prio: 1},
			{layer: 3, prio: 1},
			{isSprite: true, prio: 1},
			{layer: 0, prio: 0},
			{layer: 1, prio: 0},
			{isSprite: true, prio: 0},
			{layer: 2, prio: 0},
			{layer: 3, prio: 0},
		}
	case 1:
		if bg3Prio {
			return []priorityEntry{
				{layer: 2, prio: 1},
				{isSprite: true, prio: 3},
				{layer: 0, prio: 1},
				{layer: 1, prio: 1},
				{isSprite: true, prio: 2},
				{layer: 0, prio: 0},
				{layer: 1, prio: 0},
				{isSprite: true, prio: 1},
				{isSprite: true, prio: 0},
				{layer: 2, prio: 0},
			}
		}
		return []priorityEntry{
			{isSprite: true, prio: 3},
			{layer: 0, prio: 1},
			{layer: 1, prio: 1},
			{isSprite: true, prio: 2},
			{layer: 2, prio: 1},
			{isSprite: true, prio: 1},
			{layer: 0, prio: 0},
			{layer: 1, prio: 0},
			{isSprite: true, prio: 0},
			{layer: 2, prio: 0},
		}
	default:
		return []priorityEntry{
			{isSprite: true, prio: 3},
			{layer: 0, prio: 1},
			{isSprite: true, prio: 2},
			{layer: 1, prio: 1},
			{isSprite: true, prio: 1},
			{layer: 0, prio: 0},
			{isSprite: true, prio: 0},
			{layer: 1, prio: 0},
		}
	}
}
