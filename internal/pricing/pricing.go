// Package pricing computes the retail price of a configuration.
package pricing

import (
	"fmt"
	"math"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// Strategy decides where a pattern's price factor enters the formula.
type Strategy string

const (
	// MultiplyVolumeTerm scales only the material volume term.
	MultiplyVolumeTerm Strategy = "multiplyVolumeTerm"
	// MultiplyTotal scales the whole subtotal, and only for premium patterns.
	MultiplyTotal Strategy = "multiplyTotal"
)

// ParseStrategy maps a config string to a Strategy, defaulting to
// MultiplyVolumeTerm.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", MultiplyVolumeTerm:
		return MultiplyVolumeTerm, nil
	case MultiplyTotal:
		return MultiplyTotal, nil
	}
	return MultiplyVolumeTerm, fmt.Errorf("unknown pricing strategy %q", s)
}

const (
	DefaultBasePrice    = 199.0
	DoubleDoorPrice     = 80.0
	SingleDoorPrice     = 50.0
	ShelfPrice          = 15.0
	MountingStripPrice  = 25.0
	DividerPrice        = 20.0
	EdgeBandingPrice    = 20.0
	WhiteEdgeBandingFee = 40.0
	// VolumeRate is the price per cubic metre at factor 1.0.
	VolumeRate = 1000.0
)

var basePrices = map[model.FurnitureType]float64{
	model.TypeCloset:    199,
	model.TypeTable:     299,
	model.TypeCabinet:   249,
	model.TypeDesk:      279,
	model.TypeSideboard: 349,
}

// BasePrice returns the starting price of a furniture type.
func BasePrice(t model.FurnitureType) float64 {
	if p, ok := basePrices[t]; ok {
		return p
	}
	return DefaultBasePrice
}

// Input carries every pricing parameter.
type Input struct {
	Type             model.FurnitureType     `json:"furniture_type"`
	Dimensions       model.Dimensions        `json:"dimensions"`
	MaterialFactor   float64                 `json:"material_factor"`
	FinishFactor     float64                 `json:"finish_factor"`
	PatternFactor    float64                 `json:"pattern_factor"`
	PatternPremium   bool                    `json:"pattern_premium"`
	HasDoors         bool                    `json:"has_doors"`
	CompartmentDoors []model.CompartmentDoor `json:"compartment_doors"`
	ShelfCount       int                     `json:"shelf_count"`
	HasMountingStrip bool                    `json:"has_mounting_strip"`
	ColumnCount      int                     `json:"column_count"`
	HasWhiteEdges    bool                    `json:"has_white_edges"`
	Strategy         Strategy                `json:"strategy"`
}

// Breakdown itemises the price.
type Breakdown struct {
	Base          float64 `json:"base"`
	Volume        float64 `json:"volume"`
	Doors         float64 `json:"doors"`
	Shelves       float64 `json:"shelves"`
	MountingStrip float64 `json:"mounting_strip"`
	Dividers      float64 `json:"dividers"`
	EdgeBanding   float64 `json:"edge_banding"`
	Subtotal      float64 `json:"subtotal"`
	Multiplier    float64 `json:"multiplier"` // applied to the subtotal
}

// Result is the rounded price and how it was reached.
type Result struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}

func factor(f float64) float64 {
	if f <= 0 || math.IsNaN(f) {
		return 1
	}
	return f
}

// DoorsCost prices the compartment doors: 80 per double, 50 per other
// non-empty layout.
func DoorsCost(doors []model.CompartmentDoor) float64 {
	var total float64
	for _, d := range doors {
		switch d.Type {
		case model.CompartmentDoorNone, "":
		case model.CompartmentDoorDouble:
			total += DoubleDoorPrice
		default:
			total += SingleDoorPrice
		}
	}
	return total
}

// Compute prices a configuration, rounded to cents.
func Compute(in Input) Result {
	strategy := in.Strategy
	if strategy == "" {
		strategy = MultiplyVolumeTerm
	}

	volumeFactor := factor(in.MaterialFactor) * factor(in.FinishFactor)
	multiplier := 1.0
	switch strategy {
	case MultiplyTotal:
		if in.PatternPremium {
			multiplier = factor(in.PatternFactor)
		}
	default:
		volumeFactor *= factor(in.PatternFactor)
	}

	b := Breakdown{
		Base:       BasePrice(in.Type),
		Volume:     in.Dimensions.Volume() * VolumeRate * volumeFactor,
		Shelves:    float64(max(in.ShelfCount, 0)) * ShelfPrice,
		Dividers:   float64(max(in.ColumnCount, 0)) * DividerPrice,
		Multiplier: multiplier,
	}
	if in.HasDoors {
		b.Doors = DoorsCost(in.CompartmentDoors)
	}
	if in.HasMountingStrip {
		b.MountingStrip = MountingStripPrice
	}
	b.EdgeBanding = EdgeBandingPrice
	if in.HasWhiteEdges {
		b.EdgeBanding = WhiteEdgeBandingFee
	}
	b.Subtotal = b.Base + b.Volume + b.Doors + b.Shelves + b.MountingStrip + b.Dividers + b.EdgeBanding

	return Result{
		Total:     Round(b.Subtotal * multiplier),
		Breakdown: b,
	}
}

// Round rounds to two decimals, halves away from zero.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// InputFor derives the pricing input from a live configuration. The finish
// factor only applies to solid wood; a selected pattern supplies the
// pattern factor.
func InputFor(c model.Configuration, strategy Strategy) Input {
	in := Input{
		Type:             c.Type,
		Dimensions:       c.Dimensions,
		MaterialFactor:   model.SelectedPriceFactor(c.Material),
		FinishFactor:     model.SelectedFinishFactor(c.Material),
		PatternFactor:    1,
		HasDoors:         c.Options.HasDoors,
		CompartmentDoors: c.Options.CompartmentDoors,
		ShelfCount:       c.Options.ShelfCount,
		HasMountingStrip: c.Options.HasMountingStrip,
		ColumnCount:      c.Options.ColumnCount,
		HasWhiteEdges:    c.HasWhiteEdges,
		Strategy:         strategy,
	}
	if p := c.Material.Pattern; p != nil {
		in.PatternFactor = p.PriceFactor
		in.PatternPremium = p.IsPremium
		if strategy == MultiplyTotal && p.PriceFactor <= 0 {
			in.PatternFactor = PremiumDefaultFactor
		}
	}
	return in
}

// PremiumDefaultFactor is used for premium patterns without a price factor.
const PremiumDefaultFactor = 1.2

// ForConfiguration prices a live configuration.
func ForConfiguration(c model.Configuration, strategy Strategy) Result {
	return Compute(InputFor(c, strategy))
}
