package model

import "math"

// SheetEstimate is the area-based sheet count for one material.
type SheetEstimate struct {
	PartArea          float64 `json:"part_area"`           // m²
	SheetArea         float64 `json:"sheet_area"`          // m²
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // fractional sheets
	SheetsNeeded      int     `json:"sheets_needed"`       // ceiling of exact
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // including waste factor
	WastePercent      float64 `json:"waste_percent"`
}

// EstimateSheets computes how many sheets of sheetW×sheetH mm cover
// partArea m². It ignores nesting losses, so it can understate the real
// count; the nesting planner gives the true figure.
func EstimateSheets(partArea, sheetW, sheetH, wastePercent float64) SheetEstimate {
	sheetArea := sheetW * sheetH / 1_000_000
	if sheetArea <= 0 || math.IsNaN(partArea) || partArea <= 0 {
		return SheetEstimate{
			PartArea:     math.Max(partArea, 0),
			SheetArea:    math.Max(sheetArea, 0),
			WastePercent: wastePercent,
		}
	}

	exact := partArea / sheetArea
	minSheets := int(math.Ceil(exact))

	withWaste := int(math.Ceil(exact * (1.0 + wastePercent/100.0)))
	if withWaste < minSheets {
		withWaste = minSheets
	}

	return SheetEstimate{
		PartArea:          partArea,
		SheetArea:         sheetArea,
		SheetsNeededExact: exact,
		SheetsNeeded:      minSheets,
		SheetsWithWaste:   withWaste,
		WastePercent:      wastePercent,
	}
}
