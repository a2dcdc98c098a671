package model

import "math"

// BandingRun is the edge tape one cut-list row consumes.
type BandingRun struct {
	PartID      int     `json:"part_id"`
	Description string  `json:"description"`
	Edges       EdgeSet `json:"edges"`
	Pieces      int     `json:"pieces"`
	PerPieceMM  float64 `json:"per_piece_mm"`
}

// TotalMM is the tape for every piece of the row.
func (r BandingRun) TotalMM() float64 {
	return r.PerPieceMM * float64(r.Pieces)
}

// BandingOrder is the edge tape to buy for a set of parts.
type BandingOrder struct {
	Runs         []BandingRun `json:"runs"`
	LengthM      float64      `json:"length_m"`
	WastePercent float64      `json:"waste_percent"`
	OrderM       float64      `json:"order_m"` // with waste, whole millimetres
	Pieces       int          `json:"pieces"`
	Edges        int          `json:"edges"`
}

// OrderBanding collects the banded rows of parts and sizes the tape order,
// adding wastePercent for trimming.
func OrderBanding(parts []Part, wastePercent float64) BandingOrder {
	order := BandingOrder{Runs: []BandingRun{}, WastePercent: wastePercent}
	var totalMM float64
	for _, p := range parts {
		if !p.EdgeBanding.HasAny() || p.Count <= 0 {
			continue
		}
		run := BandingRun{
			PartID:      p.ID,
			Description: p.Description,
			Edges:       p.EdgeBanding,
			Pieces:      p.Count,
			PerPieceMM:  p.BandingLength(),
		}
		order.Runs = append(order.Runs, run)
		totalMM += run.TotalMM()
		order.Pieces += p.Count
		order.Edges += p.EdgeBanding.EdgeCount() * p.Count
	}
	order.LengthM = totalMM / 1000
	order.OrderM = math.Ceil(totalMM*(1+wastePercent/100)) / 1000
	return order
}
