package ppu

// windowMasked reports whether dot x falls inside layer's combined
// window region (spec.md §4.5 Windows), honoring each of window 1 and
// window 2's independent enable/invert bits and the layer's configured
// combine logic when both windows are active.
func (p *PPU) windowMasked(layer int, x int) bool {
	in1, use1 := p.win1Enable[layer], p.win1Enable[layer]
	if use1 {
		in1 = inWindow(x, p.w1Left, p.w1Right)
		if p.win1Invert[layer] {
			in1 = !in1
		}
	}
	in2, use2 := false, p.win2Enable[layer]
	if use2 {
		in2 = inWindow(x, p.w2Left, p.w2Right)
		if p.win2Invert[layer] {
			in2 = !in2
		}
	}

	switch {
	case use1 && use2:
		return combine(p.winLogic[layer], in1, in2)
	case use1:
		return in1
	case use2:
		return in2
	default:
		return false
	}
}

func inWindow(x int, left, right byte) bool {
	return x >= int(left) && x <= int(right)
}

func combine(op uint8, a, b bool) bool {
	switch op {
	case 0:
		return a || b
	case 1:
		return a && b
	case 2:
		return a != b
	default: // XNOR
		return a == b
	}
}
