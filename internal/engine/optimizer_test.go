package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/model"
)

func defaultTestSettings() model.CutSettings {
	s := model.DefaultSettings()
	// Simplify for testing: no edge trim, no kerf
	s.EdgeTrim = 0
	s.KerfWidth = 0
	s.GuillotineOnly = false
	return s
}

func part(id int, material string, w, h float64, count int) model.Part {
	return model.Part{ID: id, Material: material, Width: w, Height: h, Count: count, Description: "test"}
}

// assertValidLayout checks that no two placements overlap and that every
// placement stays inside the trimmed sheet.
func assertValidLayout(t *testing.T, sheet model.SheetResult, settings model.CutSettings) {
	t.Helper()
	trim := settings.EdgeTrim
	for i, a := range sheet.Placements {
		assert.GreaterOrEqual(t, a.X, trim-tolerance)
		assert.GreaterOrEqual(t, a.Y, trim-tolerance)
		assert.LessOrEqual(t, a.X+a.PlacedWidth(), sheet.Stock.Width-trim+tolerance)
		assert.LessOrEqual(t, a.Y+a.PlacedHeight(), sheet.Stock.Height-trim+tolerance)
		for _, b := range sheet.Placements[i+1:] {
			ra := rect{x: a.X, y: a.Y, w: a.PlacedWidth(), h: a.PlacedHeight()}
			rb := rect{x: b.X, y: b.Y, w: b.PlacedWidth(), h: b.PlacedHeight()}
			assert.False(t, rectsOverlap(ra, rb), "placements %d and %d overlap", a.Part.ID, b.Part.ID)
		}
	}
}

func TestOptimize_SingleStockSinglePart(t *testing.T) {
	opt := New(defaultTestSettings())
	parts := []model.Part{part(1, "", 500, 300, 1)}
	stocks := []model.StockSheet{model.NewStockSheet("Sheet", "", 1000, 600, 1)}

	result := opt.Optimize(parts, stocks)

	require.Len(t, result.Sheets, 1)
	assert.Len(t, result.UnplacedParts, 0)
	require.Len(t, result.Sheets[0].Placements, 1)
	p := result.Sheets[0].Placements[0]
	assert.Equal(t, 1, p.Part.ID)
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 0.0, p.Y)
}

func TestOptimize_MultipleStockSizes_SelectsSmallestAdequate(t *testing.T) {
	opt := New(defaultTestSettings())
	parts := []model.Part{
		part(1, "", 400, 200, 1),
		part(2, "", 300, 200, 1),
	}
	stocks := []model.StockSheet{
		model.NewStockSheet("Large", "", 2440, 1220, 2),
		model.NewStockSheet("Small", "", 1220, 610, 2),
	}

	result := opt.Optimize(parts, stocks)

	require.Len(t, result.UnplacedParts, 0)
	require.Len(t, result.Sheets, 1)
	assert.Equal(t, 1220.0, result.Sheets[0].Stock.Width, "should use the small sheet")
	assert.Equal(t, 610.0, result.Sheets[0].Stock.Height)
}

func TestOptimize_LargePartForcesLargeSheet(t *testing.T) {
	opt := New(defaultTestSettings())
	parts := []model.Part{part(1, "", 2000, 1000, 1)}
	stocks := []model.StockSheet{
		model.NewStockSheet("Small", "", 1220, 610, 1),
		model.NewStockSheet("Large", "", 2440, 1220, 1),
	}

	result := opt.Optimize(parts, stocks)

	require.Len(t, result.UnplacedParts, 0)
	require.Len(t, result.Sheets, 1)
	assert.Equal(t, 2440.0, result.Sheets[0].Stock.Width)
}

func TestOptimize_AllPartsUnplaceable(t *testing.T) {
	opt := New(defaultTestSettings())
	parts := []model.Part{part(1, "", 3000, 3000, 1)}
	stocks := []model.StockSheet{model.NewStockSheet("Sheet", "", 1000, 600, 1)}

	result := opt.Optimize(parts, stocks)

	assert.Len(t, result.Sheets, 0)
	assert.Len(t, result.UnplacedParts, 1)
}

func TestOptimize_EmptyInputs(t *testing.T) {
	opt := New(defaultTestSettings())

	result := opt.Optimize(nil, nil)
	assert.Len(t, result.Sheets, 0)
	assert.Len(t, result.UnplacedParts, 0)

	result = opt.Optimize([]model.Part{part(1, "", 100, 100, 2)}, nil)
	assert.Len(t, result.UnplacedParts, 2)
}

func TestOptimize_CountExpansion(t *testing.T) {
	opt := New(defaultTestSettings())
	parts := []model.Part{part(1, "", 100, 100, 4)}
	stocks := []model.StockSheet{model.NewStockSheet("Sheet", "", 1000, 1000, 1)}

	result := opt.Optimize(parts, stocks)

	require.Len(t, result.Sheets, 1)
	assert.Len(t, result.Sheets[0].Placements, 4)
	for _, p := range result.Sheets[0].Placements {
		assert.Equal(t, 1, p.Part.Count)
	}
	assertValidLayout(t, result.Sheets[0], opt.Settings)
}

func TestOptimize_StockPoolDepletion(t *testing.T) {
	opt := New(defaultTestSettings())
	parts := []model.Part{part(1, "", 900, 500, 3)}
	stocks := []model.StockSheet{model.NewStockSheet("Sheet", "", 1000, 600, 2)}

	result := opt.Optimize(parts, stocks)

	assert.Len(t, result.Sheets, 2)
	assert.Len(t, result.UnplacedParts, 1)
}

func TestOptimize_WithKerfAndEdgeTrim(t *testing.T) {
	s := defaultTestSettings()
	s.KerfWidth = 4
	s.EdgeTrim = 10
	opt := New(s)
	stocks := []model.StockSheet{model.NewStockSheet("Sheet", "", 1000, 600, 1)}

	// 980×580 fills the trimmed sheet exactly and leaves no room for the kerf
	result := opt.Optimize([]model.Part{part(1, "", 980, 580, 1)}, stocks)
	assert.Len(t, result.UnplacedParts, 1)

	result = opt.Optimize([]model.Part{part(1, "", 976, 576, 1)}, stocks)
	require.Len(t, result.Sheets, 1)
	p := result.Sheets[0].Placements[0]
	assert.Equal(t, 10.0, p.X)
	assert.Equal(t, 10.0, p.Y)
}

func TestOptimize_Rotation(t *testing.T) {
	s := defaultTestSettings()
	parts := []model.Part{part(1, "", 500, 900, 1)}
	stocks := []model.StockSheet{model.NewStockSheet("Sheet", "", 1000, 600, 1)}

	result := New(s).Optimize(parts, stocks)
	require.Len(t, result.Sheets, 1)
	assert.True(t, result.Sheets[0].Placements[0].Rotated)
	assert.Equal(t, 900.0, result.Sheets[0].Placements[0].PlacedWidth())

	s.AllowRotation = false
	result = New(s).Optimize(parts, stocks)
	assert.Len(t, result.Sheets, 0)
	assert.Len(t, result.UnplacedParts, 1)
}

func TestOptimize_Efficiency(t *testing.T) {
	opt := New(defaultTestSettings())
	parts := []model.Part{part(1, "", 500, 600, 1)}
	stocks := []model.StockSheet{model.NewStockSheet("Sheet", "", 1000, 600, 1)}

	result := opt.Optimize(parts, stocks)

	require.Len(t, result.Sheets, 1)
	assert.InDelta(t, 50.0, result.Sheets[0].Efficiency(), 1e-9)
	assert.InDelta(t, 50.0, result.TotalEfficiency(), 1e-9)
}

func TestGuillotineLayoutIsValid(t *testing.T) {
	s := model.DefaultSettings()
	opt := New(s)
	parts := []model.Part{
		part(1, "", 600, 400, 3),
		part(2, "", 300, 250, 5),
		part(3, "", 1200, 150, 2),
		part(4, "", 90, 90, 7),
	}
	stocks := []model.StockSheet{model.NewStockSheet("Sheet", "", 2750, 1830, 2)}

	result := opt.Optimize(parts, stocks)

	require.Len(t, result.UnplacedParts, 0)
	for _, sheet := range result.Sheets {
		assertValidLayout(t, sheet, s)
	}
}

func TestSelectBestStock_NoCandidates(t *testing.T) {
	opt := New(defaultTestSettings())
	stocks := []model.StockSheet{model.NewStockSheet("Sheet", "", 100, 100, 1)}
	assert.Equal(t, -1, opt.selectBestStock(stocks, []model.Part{part(1, "", 500, 500, 1)}))
}

func TestSelectBestStock_EmptyInputs(t *testing.T) {
	opt := New(defaultTestSettings())
	assert.Equal(t, -1, opt.selectBestStock(nil, []model.Part{part(1, "", 10, 10, 1)}))
	assert.Equal(t, -1, opt.selectBestStock([]model.StockSheet{model.NewStockSheet("S", "", 10, 10, 1)}, nil))
}

func TestGroupByMaterial_NoMaterials(t *testing.T) {
	parts := []model.Part{part(1, "", 100, 100, 1)}
	stocks := []model.StockSheet{model.NewStockSheet("S", "", 1000, 1000, 1)}

	groups := groupByMaterial(parts, stocks)

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].parts, 1)
	assert.Len(t, groups[0].stocks, 1)
}

func TestGroupByMaterial_MultipleMaterials(t *testing.T) {
	parts := []model.Part{
		part(1, "W1000_9", 100, 100, 1),
		part(2, "U780_9", 100, 100, 1),
		part(3, "", 100, 100, 1),
	}
	stocks := []model.StockSheet{
		model.NewStockSheet("Board", "U780_9", 1000, 1000, 1),
		model.NewStockSheet("Back", "W1000_9", 1000, 1000, 1),
		model.NewStockSheet("Any", "", 1000, 1000, 1),
	}

	groups := groupByMaterial(parts, stocks)

	require.Len(t, groups, 3)
	assert.Equal(t, "U780_9", groups[0].material)
	assert.Len(t, groups[0].stocks, 2, "own stock plus the universal one")
	assert.Equal(t, "W1000_9", groups[1].material)
	assert.Equal(t, "", groups[2].material)
	assert.Len(t, groups[2].stocks, 3)
}

func TestOptimize_MultiMaterial_SeparatePlacement(t *testing.T) {
	opt := New(defaultTestSettings())
	parts := []model.Part{
		part(1, "U780_9", 400, 400, 1),
		part(2, "W1000_9", 400, 400, 1),
	}
	stocks := []model.StockSheet{
		model.NewStockSheet("Board", "U780_9", 1000, 1000, 1),
		model.NewStockSheet("Back", "W1000_9", 1000, 1000, 1),
	}

	result := opt.Optimize(parts, stocks)

	require.Len(t, result.UnplacedParts, 0)
	require.Len(t, result.Sheets, 2)
	for _, sheet := range result.Sheets {
		for _, p := range sheet.Placements {
			assert.Equal(t, sheet.Stock.Material, p.Part.Material)
		}
	}
	assert.Equal(t, map[string]int{"U780_9": 1, "W1000_9": 1}, result.SheetsByMaterial())
}

func TestOptimize_MultiMaterial_WrongMaterialNotUsed(t *testing.T) {
	opt := New(defaultTestSettings())
	parts := []model.Part{part(1, "H1334_9", 100, 100, 1)}
	stocks := []model.StockSheet{model.NewStockSheet("Board", "U780_9", 1000, 1000, 1)}

	result := opt.Optimize(parts, stocks)

	assert.Len(t, result.Sheets, 0)
	assert.Len(t, result.UnplacedParts, 1)
}

func TestPlanCutList_Closet(t *testing.T) {
	cl := cutlist.Generate(cutlist.Request{
		Type:       model.TypeCloset,
		Dimensions: model.Dimensions{Width: 80, Height: 180, Depth: 30},
		HasDoors:   true,
		ShelfCount: 4,
	})

	plan := PlanCutList(cl, model.DefaultSettings())

	assert.Len(t, plan.Result.UnplacedParts, 0)
	require.Len(t, plan.Materials, 3)
	for _, m := range plan.Materials {
		assert.Equal(t, 1, m.Estimated, m.Code)
		assert.Equal(t, 1, m.Nested, m.Code)
		assert.Greater(t, m.Efficiency, 0.0)
	}
	assert.False(t, plan.Shortfall())

	placed := 0
	for _, sheet := range plan.Result.Sheets {
		placed += len(sheet.Placements)
		assertValidLayout(t, sheet, model.DefaultSettings())
	}
	assert.Equal(t, 2+2+4+1+2, placed)
}

func TestPlanCutList_SharedCodes(t *testing.T) {
	cl := cutlist.Generate(cutlist.Request{
		Type:             model.TypeCloset,
		Dimensions:       model.Dimensions{Width: 80, Height: 180, Depth: 30},
		HasDoors:         true,
		MaterialCode:     "U780_9",
		DoorMaterialCode: "U780_9",
	})

	plan := PlanCutList(cl, model.DefaultSettings())

	assert.Len(t, plan.Result.UnplacedParts, 0)
	nested := 0
	for _, m := range plan.Materials {
		nested += m.Nested
	}
	assert.Equal(t, len(plan.Result.Sheets), nested)
}

func TestPlanShortfall(t *testing.T) {
	p := Plan{Materials: []MaterialPlan{{Code: "A", Estimated: 1, Nested: 2}}}
	assert.True(t, p.Shortfall())

	p = Plan{Result: model.OptimizeResult{UnplacedParts: []model.Part{part(1, "", 1, 1, 1)}}}
	assert.True(t, p.Shortfall())

	assert.False(t, Plan{}.Shortfall())
}
