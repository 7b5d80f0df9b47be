package ppu

// Timing constants for NTSC output (spec.md §4.5/§4.7). PAL timing
// (312 lines) is not modeled; the scheduler only drives NTSC carts in
// this implementation.
const (
	dotsPerScanline   = 341
	scanlinesPerFrame = 262
	cyclesPerDot      = 4
	vblankStartLine   = 225
)

// Tick advances the PPU by masterCycles master cycles, rendering
// scanlines and firing the NMI/frame-complete callbacks as the dot and
// scanline counters cross their boundaries. The scheduler calls this
// once per CPU/DMA step with the cycles just consumed.
func (p *PPU) Tick(masterCycles int) {
	for masterCycles > 0 {
		step := cyclesPerDot
		if step > masterCycles {
			step = masterCycles
		}
		masterCycles -= step
		// p.dot counts master cycles into the current scanline.
		p.dot += step
		if p.dot < dotsPerScanline*cyclesPerDot {
			continue
		}
		p.dot -= dotsPerScanline * cyclesPerDot
		p.advanceScanline()
	}
}

func (p *PPU) advanceScanline() {
	if p.scanline < ScreenHeight {
		p.renderScanline()
	}
	p.scanline++

	if p.scanline == vblankStartLine {
		p.vblank = true
		if p.frameComplete != nil {
			p.frameComplete(p.frame[:])
		}
		if p.nmiCallback != nil {
			p.nmiCallback()
		}
	}

	if p.scanline >= scanlinesPerFrame {
		p.scanline = 0
		p.vblank = false
		p.oddFrame = !p.oddFrame
	}
}

// Scanline reports the current scanline number, used by the scheduler
// to drive HDMA's per-line slot and the H/V IRQ comparator.
func (p *PPU) Scanline() int { return p.scanline }

// Dot reports the current horizontal dot position.
func (p *PPU) Dot() int { return p.dot / cyclesPerDot }
