package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FurniCraft/internal/model"
)

func closetInput() Input {
	return Input{
		Type:           model.TypeCloset,
		Dimensions:     model.Dimensions{Width: 80, Height: 180, Depth: 30},
		MaterialFactor: 1.0,
		FinishFactor:   1.0,
		PatternFactor:  1.0,
	}
}

func TestDefaultClosetPrice(t *testing.T) {
	res := Compute(closetInput())
	// 199 base + 0.432 m³ × 1000 + 20 banding
	assert.Equal(t, 651.0, res.Total)
	assert.Equal(t, 199.0, res.Breakdown.Base)
	assert.InDelta(t, 432.0, res.Breakdown.Volume, 1e-9)
	assert.Equal(t, 20.0, res.Breakdown.EdgeBanding)
}

func TestSmallCarcassPrice(t *testing.T) {
	in := closetInput()
	in.Dimensions = model.Dimensions{Width: 8, Height: 180, Depth: 30}
	// 199 + 43.2 + 20
	assert.Equal(t, 262.2, Compute(in).Total)
}

func TestBasePrices(t *testing.T) {
	assert.Equal(t, 199.0, BasePrice(model.TypeCloset))
	assert.Equal(t, 299.0, BasePrice(model.TypeTable))
	assert.Equal(t, 249.0, BasePrice(model.TypeCabinet))
	assert.Equal(t, 279.0, BasePrice(model.TypeDesk))
	assert.Equal(t, 349.0, BasePrice(model.TypeSideboard))
	assert.Equal(t, 199.0, BasePrice(model.TypeBookshelf))
	assert.Equal(t, 199.0, BasePrice("unknown"))
}

func TestShelfAndStripIncrements(t *testing.T) {
	for _, strategy := range []Strategy{MultiplyVolumeTerm, MultiplyTotal} {
		in := closetInput()
		in.Strategy = strategy
		in.MaterialFactor = 1.3
		base := Compute(in).Total

		in.ShelfCount = 1
		assert.InDelta(t, base+15, Compute(in).Total, 1e-9, strategy)
		in.ShelfCount = 2
		assert.InDelta(t, base+30, Compute(in).Total, 1e-9, strategy)

		in.HasMountingStrip = true
		assert.InDelta(t, base+55, Compute(in).Total, 1e-9, strategy)
	}
}

func TestDoorsCost(t *testing.T) {
	doors := []model.CompartmentDoor{
		{Type: model.CompartmentDoorDouble},
		{Type: model.CompartmentDoorNone},
		{Type: model.CompartmentDoorSingleLeft},
		{Type: model.CompartmentDoorSingleRight},
	}
	assert.Equal(t, 180.0, DoorsCost(doors))

	in := closetInput()
	in.CompartmentDoors = doors
	base := Compute(in).Total
	in.HasDoors = true
	assert.InDelta(t, base+180, Compute(in).Total, 1e-9)
}

func TestDividersAndWhiteEdges(t *testing.T) {
	in := closetInput()
	base := Compute(in).Total
	in.ColumnCount = 2
	in.HasWhiteEdges = true
	assert.InDelta(t, base+40+20, Compute(in).Total, 1e-9)
}

func TestPatternStrategies(t *testing.T) {
	in := closetInput()
	in.PatternFactor = 1.5

	in.Strategy = MultiplyVolumeTerm
	assert.Equal(t, 199+648+20.0, Compute(in).Total)

	in.Strategy = MultiplyTotal
	assert.Equal(t, 651.0, Compute(in).Total, "non-premium pattern leaves the total alone")

	in.PatternPremium = true
	res := Compute(in)
	assert.Equal(t, 976.5, res.Total)
	assert.Equal(t, 1.5, res.Breakdown.Multiplier)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, MultiplyVolumeTerm, s)

	s, err = ParseStrategy("multiplyTotal")
	require.NoError(t, err)
	assert.Equal(t, MultiplyTotal, s)

	_, err = ParseStrategy("double")
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.24, Round(1.235))
	assert.Equal(t, 262.2, Round(262.19999999))
}

func TestForConfiguration(t *testing.T) {
	c := model.NewConfiguration(model.TypeCloset)
	c.Material = model.MaterialSelection{Category: model.CategorySolidWood, Option: "walnut", Finish: "glossy"}
	in := InputFor(c, MultiplyVolumeTerm)
	assert.Equal(t, 2.0, in.MaterialFactor)
	assert.Equal(t, 1.2, in.FinishFactor)
	assert.Equal(t, 1.0, in.PatternFactor)

	// 199 + 432 × 2.0 × 1.2 + 20
	assert.InDelta(t, 1255.8, ForConfiguration(c, MultiplyVolumeTerm).Total, 1e-9)

	c.Material = model.MaterialSelection{Category: model.CategoryMDF, Option: "white-matte", Finish: "glossy"}
	assert.Equal(t, 1.0, InputFor(c, MultiplyVolumeTerm).FinishFactor)

	p := model.Pattern{ID: "x", IsPremium: true}
	c.SetPattern(&p)
	in = InputFor(c, MultiplyTotal)
	assert.Equal(t, PremiumDefaultFactor, in.PatternFactor)
	assert.True(t, in.PatternPremium)
}
