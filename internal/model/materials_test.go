package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectedColorFallbacks(t *testing.T) {
	assert.Equal(t, "#5C4033", SelectedColor(MaterialSelection{Category: CategorySolidWood, Option: "walnut"}))
	assert.Equal(t, DefaultColor, SelectedColor(MaterialSelection{Category: "glass", Option: "clear"}))
	assert.Equal(t, DefaultColor, SelectedColor(MaterialSelection{Category: CategoryMDF, Option: "pink"}))
}

func TestSelectedColorPatternWins(t *testing.T) {
	p := Pattern{ID: "walnut-classic", ColorHex: "#123456"}
	sel := MaterialSelection{Category: CategoryMDF, Option: "white-matte", Pattern: &p}
	assert.Equal(t, "#123456", SelectedColor(sel))

	p.ColorHex = ""
	assert.Equal(t, "#F5F5F5", SelectedColor(sel))
}

func TestPriceFactors(t *testing.T) {
	assert.Equal(t, 1.3, SelectedPriceFactor(MaterialSelection{Category: CategoryPremiumDecor, Option: "black"}))
	assert.Equal(t, 1.0, SelectedPriceFactor(MaterialSelection{Category: "unknown", Option: "black"}))

	assert.Equal(t, 1.2, SelectedFinishFactor(MaterialSelection{Category: CategorySolidWood, Finish: "glossy"}))
	assert.Equal(t, 1.0, SelectedFinishFactor(MaterialSelection{Category: CategoryMDF, Finish: "glossy"}))
	assert.Equal(t, 1.0, SelectedFinishFactor(MaterialSelection{Category: CategorySolidWood, Finish: "waxed"}))
}

func TestPatternNormalized(t *testing.T) {
	p := Pattern{ID: "x", FinishType: "  Marble "}.Normalized()
	assert.Equal(t, "marble", p.FinishType)
	assert.Equal(t, 1.0, p.TextureRepeatX)

	assert.Equal(t, "solid", Pattern{ID: "y"}.Normalized().FinishType)
	assert.Equal(t, 1.0, Pattern{}.EffectivePriceFactor())
}
