// Package engine nests cut-list parts onto stock sheets.
package engine

import (
	"sort"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// Optimizer runs the 2D bin-packing algorithm.
type Optimizer struct {
	Settings model.CutSettings
}

func New(settings model.CutSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize lays parts out on stock sheets. Parts are only placed on stock
// of the same material code; a part or stock without a code matches any.
func (o *Optimizer) Optimize(parts []model.Part, stocks []model.StockSheet) model.OptimizeResult {
	combined := model.OptimizeResult{Sheets: []model.SheetResult{}, UnplacedParts: []model.Part{}}
	for _, g := range groupByMaterial(parts, stocks) {
		res := o.optimizeGroup(g.parts, g.stocks)
		combined.Sheets = append(combined.Sheets, res.Sheets...)
		combined.UnplacedParts = append(combined.UnplacedParts, res.UnplacedParts...)
	}
	return combined
}

type materialGroup struct {
	material string
	parts    []model.Part
	stocks   []model.StockSheet
}

// groupByMaterial splits parts and stocks by material code, in code order.
// Stocks without a code are shared by every group; parts without a code
// form their own group over all stocks.
func groupByMaterial(parts []model.Part, stocks []model.StockSheet) []materialGroup {
	codes := map[string]bool{}
	for _, p := range parts {
		if p.Material != "" {
			codes[p.Material] = true
		}
	}
	if len(codes) == 0 {
		return []materialGroup{{parts: parts, stocks: stocks}}
	}
	materials := make([]string, 0, len(codes))
	for m := range codes {
		materials = append(materials, m)
	}
	sort.Strings(materials)

	var universal []model.StockSheet
	for _, s := range stocks {
		if s.Material == "" {
			universal = append(universal, s)
		}
	}

	groups := make([]materialGroup, 0, len(materials)+1)
	for _, mat := range materials {
		g := materialGroup{material: mat}
		for _, p := range parts {
			if p.Material == mat {
				g.parts = append(g.parts, p)
			}
		}
		for _, s := range stocks {
			if s.Material == mat {
				g.stocks = append(g.stocks, s)
			}
		}
		g.stocks = append(g.stocks, universal...)
		groups = append(groups, g)
	}

	var loose []model.Part
	for _, p := range parts {
		if p.Material == "" {
			loose = append(loose, p)
		}
	}
	if len(loose) > 0 {
		groups = append(groups, materialGroup{parts: loose, stocks: stocks})
	}
	return groups
}

func (o *Optimizer) optimizeGroup(parts []model.Part, stocks []model.StockSheet) model.OptimizeResult {
	// One entry per physical piece
	var expanded []model.Part
	for _, p := range parts {
		for i := 0; i < p.Count; i++ {
			cp := p
			cp.Count = 1
			expanded = append(expanded, cp)
		}
	}

	// Largest first; ties by id keep the layout deterministic.
	sort.SliceStable(expanded, func(i, j int) bool {
		ai := expanded[i].Width * expanded[i].Height
		aj := expanded[j].Width * expanded[j].Height
		if ai != aj {
			return ai > aj
		}
		return expanded[i].ID < expanded[j].ID
	})

	var pool []model.StockSheet
	for _, s := range stocks {
		for i := 0; i < s.Quantity; i++ {
			cp := s
			cp.Quantity = 1
			pool = append(pool, cp)
		}
	}

	result := model.OptimizeResult{}
	remaining := expanded
	for len(remaining) > 0 && len(pool) > 0 {
		idx := o.selectBestStock(pool, remaining)
		if idx < 0 {
			break
		}
		stock := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)

		sheet, unplaced := o.packSheetBestStrategy(stock, remaining)
		if len(sheet.Placements) == 0 {
			break
		}
		result.Sheets = append(result.Sheets, sheet)
		remaining = unplaced
	}
	result.UnplacedParts = remaining
	return result
}

// rotationStrategy controls how parts are turned during packing.
type rotationStrategy int

const (
	rotBestFit    rotationStrategy = iota // compare both orientations, pick the tighter fit
	rotAllNormal                          // normal orientation, rotated only as fallback
	rotAllRotated                         // rotated orientation, normal only as fallback
)

// packSheetBestStrategy tries every rotation strategy and keeps the one that
// places the most parts, then the most efficient.
func (o *Optimizer) packSheetBestStrategy(stock model.StockSheet, parts []model.Part) (model.SheetResult, []model.Part) {
	strategies := []rotationStrategy{rotBestFit}
	if o.Settings.AllowRotation {
		strategies = append(strategies, rotAllNormal, rotAllRotated)
	}

	var bestSheet model.SheetResult
	var bestUnplaced []model.Part
	bestPlaced := -1
	for _, strat := range strategies {
		sheet, unplaced := o.packSheet(stock, parts, strat)
		placed := len(sheet.Placements)
		if placed > bestPlaced || (placed == bestPlaced && placed > 0 && sheet.Efficiency() > bestSheet.Efficiency()) {
			bestPlaced = placed
			bestSheet = sheet
			bestUnplaced = unplaced
		}
	}
	return bestSheet, bestUnplaced
}

func (o *Optimizer) usableRect(stock model.StockSheet) rect {
	t := o.Settings.EdgeTrim
	return rect{x: t, y: t, w: stock.Width - 2*t, h: stock.Height - 2*t}
}

// packSheet packs parts into a single stock sheet.
func (o *Optimizer) packSheet(stock model.StockSheet, parts []model.Part, strategy rotationStrategy) (model.SheetResult, []model.Part) {
	sheet := model.SheetResult{Stock: stock}
	var unplaced []model.Part
	pk := newPacker(o.usableRect(stock), o.Settings.KerfWidth, o.Settings.GuillotineOnly)

	for _, part := range parts {
		canRotate := o.Settings.AllowRotation && part.Width != part.Height

		orientations := []bool{false}
		switch {
		case !canRotate:
		case strategy == rotAllRotated:
			orientations = []bool{true, false}
		case strategy == rotAllNormal:
			orientations = []bool{false, true}
		default:
			normalFit := pk.bestFit(part.Width, part.Height)
			rotatedFit := pk.bestFit(part.Height, part.Width)
			if rotatedFit >= 0 && (normalFit < 0 || rotatedFit < normalFit) {
				orientations = []bool{true, false}
			} else {
				orientations = []bool{false, true}
			}
		}

		placed := false
		for _, rotated := range orientations {
			w, h := part.Width, part.Height
			if rotated {
				w, h = h, w
			}
			if ok, x, y := pk.insert(w, h); ok {
				sheet.Placements = append(sheet.Placements, model.Placement{Part: part, X: x, Y: y, Rotated: rotated})
				placed = true
				break
			}
		}
		if !placed {
			unplaced = append(unplaced, part)
		}
	}
	return sheet, unplaced
}

// selectBestStock picks the sheet for the remaining parts. Among sheets that
// can hold the largest part it trial-packs each distinct size and returns
// the one with the highest efficiency.
func (o *Optimizer) selectBestStock(stocks []model.StockSheet, parts []model.Part) int {
	if len(stocks) == 0 || len(parts) == 0 {
		return -1
	}

	largest := parts[0]
	for _, p := range parts[1:] {
		if p.Width*p.Height > largest.Width*largest.Height {
			largest = p
		}
	}

	kerf := o.Settings.KerfWidth
	var candidates []int
	for i, s := range stocks {
		u := o.usableRect(s)
		fitsNormal := largest.Width+kerf <= u.w+tolerance && largest.Height+kerf <= u.h+tolerance
		fitsRotated := o.Settings.AllowRotation &&
			largest.Height+kerf <= u.w+tolerance && largest.Width+kerf <= u.h+tolerance
		if fitsNormal || fitsRotated {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	type stockKey struct{ w, h float64 }
	seen := map[stockKey]bool{}
	bestIdx := -1
	bestScore := -1.0
	for _, idx := range candidates {
		s := stocks[idx]
		key := stockKey{s.Width, s.Height}
		if seen[key] {
			continue
		}
		seen[key] = true

		sheet, _ := o.packSheet(s, parts, rotAllNormal)
		if sheet.TotalArea() == 0 {
			continue
		}
		if score := sheet.UsedArea() / sheet.TotalArea(); score > bestScore {
			bestScore = score
			bestIdx = idx
		}
	}
	if bestIdx < 0 {
		return candidates[0]
	}
	return bestIdx
}
