package finish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FurniCraft/internal/model"
)

func TestResolveTable(t *testing.T) {
	cases := map[Type]Properties{
		Solid:    {Roughness: 0.5, NormalScale: 1, EnvMapIntensity: 1},
		Glossy:   {Roughness: 0.1, Metalness: 0.2, Clearcoat: 0.8, ClearcoatRoughness: 0.1, NormalScale: 1, EnvMapIntensity: 1.5},
		Matte:    {Roughness: 0.9, NormalScale: 1, EnvMapIntensity: 1},
		Oiled:    {Roughness: 0.5, Clearcoat: 0.2, NormalScale: 1, EnvMapIntensity: 1},
		Brushed:  {Roughness: 0.3, Metalness: 0.6, NormalScale: 0.7, EnvMapIntensity: 1},
		Polished: {Roughness: 0.1, Clearcoat: 0.9, ClearcoatRoughness: 0.05, NormalScale: 1, EnvMapIntensity: 2},
		Natural:  {Roughness: 0.7, NormalScale: 1, EnvMapIntensity: 1},
		Wood:     {Roughness: 0.7, NormalScale: 0.5, EnvMapIntensity: 1},
		Marble:   {Roughness: 0.2, Metalness: 0.1, Clearcoat: 0.8, ClearcoatRoughness: 0.1, NormalScale: 1, EnvMapIntensity: 1.5},
		Metal:    {Roughness: 0.2, Metalness: 0.8, NormalScale: 1, EnvMapIntensity: 2},
		Fabric:   {Roughness: 0.9, NormalScale: 1, EnvMapIntensity: 1},
		Concrete: {Roughness: 0.8, Metalness: 0.1, NormalScale: 1, EnvMapIntensity: 1},
		Laminate: {Roughness: 0.4, Clearcoat: 0.3, NormalScale: 1, EnvMapIntensity: 1},
		Veneer:   {Roughness: 0.6, Clearcoat: 0.3, NormalScale: 1, EnvMapIntensity: 1},
	}
	require.Len(t, cases, len(All))
	for ft, want := range cases {
		assert.Equal(t, want, Resolve(ft), string(ft))
	}
}

func TestUnknownFallsBackToSolid(t *testing.T) {
	assert.Equal(t, Resolve(Solid), Resolve("velvet"))
	assert.Equal(t, Solid, Parse("velvet"))
	assert.Equal(t, Solid, Parse(""))
	assert.Equal(t, Marble, Parse(" MARBLE "))
	assert.Equal(t, Resolve(Metal), ResolveName("Metal"))
}

func TestPhysical(t *testing.T) {
	assert.True(t, Resolve(Glossy).Physical())
	assert.False(t, Resolve(Matte).Physical())
}

func TestForSelectionFlatColour(t *testing.T) {
	a := ForSelection(model.MaterialSelection{Category: model.CategoryMDF, Option: "grey-matte"})
	assert.Equal(t, "#AAAAAA", a.Color)
	assert.Nil(t, a.Texture)
	assert.Equal(t, Solid, a.Finish)

	a = ForSelection(model.MaterialSelection{Category: model.CategorySolidWood, Option: "oak", Finish: "oiled"})
	assert.Equal(t, Oiled, a.Finish)
	assert.Equal(t, 0.2, a.Properties.Clearcoat)
}

func TestForSelectionPattern(t *testing.T) {
	p := model.Pattern{ID: "m", FinishType: "marble", ColorHex: "#F5F5F5", TextureURL: "https://cdn/marble.jpg", TextureRepeatX: 2}
	a := ForSelection(model.MaterialSelection{Category: model.CategoryMDF, Option: "grey-matte", Pattern: &p})
	assert.Equal(t, "#F5F5F5", a.Color)
	assert.Equal(t, Marble, a.Finish)
	require.NotNil(t, a.Texture)
	assert.Equal(t, "https://cdn/marble.jpg", a.Texture.ColorURL)
	assert.Equal(t, 2.0, a.Texture.RepeatX)
	assert.Equal(t, 1.0, a.Texture.RepeatY)
}
