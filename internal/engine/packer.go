package engine

// packer keeps the free space of one sheet as a list of rectangles.
// In maximal mode every free rectangle overlapping a placement is split
// into up to four maximal strips. In guillotine mode only the chosen
// rectangle is split, by one straight through-cut, so the layout can be
// cut on a panel saw.
type packer struct {
	freeRects  []rect
	kerf       float64
	guillotine bool
}

type rect struct {
	x, y, w, h float64
}

const tolerance = 0.001

func newPacker(initial rect, kerf float64, guillotine bool) *packer {
	p := &packer{kerf: kerf, guillotine: guillotine}
	if initial.w > 0 && initial.h > 0 {
		p.freeRects = []rect{initial}
	}
	return p
}

// insert places a w×h piece using Best Area Fit and returns its position.
func (p *packer) insert(w, h float64) (bool, float64, float64) {
	idx := p.bestIndex(w, h)
	if idx < 0 {
		return false, 0, 0
	}
	chosen := p.freeRects[idx]
	placed := rect{x: chosen.x, y: chosen.y, w: w + p.kerf, h: h + p.kerf}
	if p.guillotine {
		p.splitGuillotine(idx, placed)
	} else {
		p.splitAroundPlacement(placed)
	}
	return true, chosen.x, chosen.y
}

// bestFit returns the leftover area of the best rectangle for w×h without
// placing anything, or -1 when nothing fits.
func (p *packer) bestFit(w, h float64) float64 {
	idx := p.bestIndex(w, h)
	if idx < 0 {
		return -1
	}
	r := p.freeRects[idx]
	return r.w*r.h - w*h
}

func (p *packer) bestIndex(w, h float64) int {
	if w <= 0 || h <= 0 {
		return -1
	}
	wk, hk := w+p.kerf, h+p.kerf
	best := -1
	bestFit := 0.0
	for i, r := range p.freeRects {
		if wk <= r.w+tolerance && hk <= r.h+tolerance {
			fit := r.w*r.h - w*h
			if best < 0 || fit < bestFit {
				best, bestFit = i, fit
			}
		}
	}
	return best
}

// splitGuillotine replaces the chosen rectangle by the two pieces left over
// after cutting the placement out. The cut runs along the shorter leftover
// so the larger remainder stays in one piece.
func (p *packer) splitGuillotine(idx int, placed rect) {
	r := p.freeRects[idx]
	p.freeRects = append(p.freeRects[:idx], p.freeRects[idx+1:]...)

	rightW := r.w - placed.w
	bottomH := r.h - placed.h
	var right, bottom rect
	if rightW < bottomH {
		// horizontal cut first: bottom strip spans the full width
		right = rect{x: r.x + placed.w, y: r.y, w: rightW, h: placed.h}
		bottom = rect{x: r.x, y: r.y + placed.h, w: r.w, h: bottomH}
	} else {
		right = rect{x: r.x + placed.w, y: r.y, w: rightW, h: r.h}
		bottom = rect{x: r.x, y: r.y + placed.h, w: placed.w, h: bottomH}
	}
	for _, nr := range []rect{right, bottom} {
		if nr.w > tolerance && nr.h > tolerance {
			p.freeRects = append(p.freeRects, nr)
		}
	}
}

// splitAroundPlacement removes all free rects that overlap the placed rect
// and replaces each with its maximal non-overlapping strips.
func (p *packer) splitAroundPlacement(placed rect) {
	var newRects []rect
	for _, r := range p.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}
		if placed.x > r.x+tolerance {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		if placed.x+placed.w < r.x+r.w-tolerance {
			newRects = append(newRects, rect{x: placed.x + placed.w, y: r.y, w: (r.x + r.w) - (placed.x + placed.w), h: r.h})
		}
		if placed.y > r.y+tolerance {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		if placed.y+placed.h < r.y+r.h-tolerance {
			newRects = append(newRects, rect{x: r.x, y: placed.y + placed.h, w: r.w, h: (r.y + r.h) - (placed.y + placed.h)})
		}
	}
	p.freeRects = pruneContained(newRects)
}

// rectsOverlap reports whether two rectangles overlap, not just touch.
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w-tolerance && a.x+a.w > b.x+tolerance &&
		a.y < b.y+b.h-tolerance && a.y+a.h > b.y+tolerance
}

// pruneContained removes any rect that is fully contained within another.
// Of two identical rects the first is kept.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if containsRect(a, b) && j > i {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+tolerance && outer.y <= inner.y+tolerance &&
		outer.x+outer.w >= inner.x+inner.w-tolerance &&
		outer.y+outer.h >= inner.y+inner.h-tolerance
}
