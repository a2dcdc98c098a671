package engine

import (
	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/model"
)

// MaterialPlan compares the area estimate of one material line with the
// number of sheets the nesting actually consumed.
type MaterialPlan struct {
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Estimated  int     `json:"estimated"`
	Nested     int     `json:"nested"`
	Efficiency float64 `json:"efficiency"` // percent over the nested sheets
}

// Plan is the nested layout of a cut list.
type Plan struct {
	Result    model.OptimizeResult `json:"result"`
	Materials []MaterialPlan       `json:"materials"`
}

// Shortfall reports whether any material needs more sheets than the area
// estimate, or some part could not be placed at all.
func (p Plan) Shortfall() bool {
	if len(p.Result.UnplacedParts) > 0 {
		return true
	}
	for _, m := range p.Materials {
		if m.Nested > m.Estimated {
			return true
		}
	}
	return false
}

// PlanCutList nests every part of the cut list on the sheet format of its
// material line. Each line is offered one sheet per part so that only
// parts larger than the sheet end up unplaced.
func PlanCutList(cl cutlist.CutList, settings model.CutSettings) Plan {
	var stocks []model.StockSheet
	seen := map[string]bool{}
	for _, m := range cl.Materials {
		if seen[m.Code] {
			continue
		}
		seen[m.Code] = true
		qty := 0
		for _, p := range cl.Parts {
			if p.Material == m.Code {
				qty += p.Count
			}
		}
		if qty == 0 {
			continue
		}
		s := model.NewStockSheet(m.Type, m.Code, m.Width, m.Height, qty)
		s.Thickness = m.Thickness
		stocks = append(stocks, s)
	}

	res := New(settings).Optimize(cl.Parts, stocks)

	used := res.SheetsByMaterial()
	plan := Plan{Result: res}
	for _, m := range cl.Materials {
		if m.Count == 0 && used[m.Code] == 0 {
			continue
		}
		var usedArea, totalArea float64
		for _, s := range res.Sheets {
			if s.Stock.Material == m.Code {
				usedArea += s.UsedArea()
				totalArea += s.TotalArea()
			}
		}
		mp := MaterialPlan{
			Code:      m.Code,
			Type:      m.Type,
			Estimated: m.Count,
			Nested:    used[m.Code],
		}
		if totalArea > 0 {
			mp.Efficiency = usedArea / totalArea * 100
		}
		plan.Materials = append(plan.Materials, mp)
		// the shared-code line already carries the sheets
		used[m.Code] = 0
	}
	return plan
}
