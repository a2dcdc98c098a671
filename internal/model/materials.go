package model

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultColor is used when a material lookup fails.
const DefaultColor = "#FFFFFF"

// MaterialOption is one colour within a material category.
type MaterialOption struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	PriceFactor float64 `json:"price_factor"`
}

// MaterialCategory groups options of the same board type.
type MaterialCategory struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Options []MaterialOption `json:"options"`
}

// FindOption returns the option with the given id, or nil.
func (c MaterialCategory) FindOption(id string) *MaterialOption {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i]
		}
	}
	return nil
}

const (
	CategoryPremiumDecor = "premium-decor"
	CategoryMDF          = "mdf"
	CategorySolidWood    = "solid-wood"
	CategoryPlywood      = "plywood"
)

// MaterialCategories is the built-in material catalogue.
var MaterialCategories = []MaterialCategory{
	{
		ID:   CategoryPremiumDecor,
		Name: "Premium Decor",
		Options: []MaterialOption{
			{ID: "white", Name: "White", Color: "#FFFFFF", PriceFactor: 1.2},
			{ID: "grey", Name: "Grey", Color: "#CCCCCC", PriceFactor: 1.2},
			{ID: "black", Name: "Black", Color: "#222222", PriceFactor: 1.3},
			{ID: "beige", Name: "Beige", Color: "#E8D0A9", PriceFactor: 1.2},
		},
	},
	{
		ID:   CategoryMDF,
		Name: "MDF",
		Options: []MaterialOption{
			{ID: "white-matte", Name: "White Matte", Color: "#F5F5F5", PriceFactor: 1.0},
			{ID: "grey-matte", Name: "Grey Matte", Color: "#AAAAAA", PriceFactor: 1.0},
			{ID: "black-matte", Name: "Black Matte", Color: "#333333", PriceFactor: 1.1},
			{ID: "beige-matte", Name: "Beige Matte", Color: "#D9C9B6", PriceFactor: 1.0},
		},
	},
	{
		ID:   CategorySolidWood,
		Name: "Solid Wood",
		Options: []MaterialOption{
			{ID: "oak", Name: "Oak", Color: "#D4BE9C", PriceFactor: 1.8},
			{ID: "walnut", Name: "Walnut", Color: "#5C4033", PriceFactor: 2.0},
			{ID: "maple", Name: "Maple", Color: "#F0E0C0", PriceFactor: 1.7},
			{ID: "beech", Name: "Beech", Color: "#C19A6B", PriceFactor: 1.6},
		},
	},
	{
		ID:   CategoryPlywood,
		Name: "Plywood",
		Options: []MaterialOption{
			{ID: "birch-natural", Name: "Birch Natural", Color: "#F5DEB3", PriceFactor: 1.4},
			{ID: "birch-white", Name: "Birch White", Color: "#F8F8F8", PriceFactor: 1.5},
			{ID: "birch-grey", Name: "Birch Grey", Color: "#B0B0B0", PriceFactor: 1.5},
			{ID: "birch-black", Name: "Birch Black", Color: "#2A2A2A", PriceFactor: 1.6},
		},
	},
}

// FindCategory returns the category with the given id, or nil.
func FindCategory(id string) *MaterialCategory {
	for i := range MaterialCategories {
		if MaterialCategories[i].ID == id {
			return &MaterialCategories[i]
		}
	}
	return nil
}

// WoodFinish is a surface treatment priced on solid wood.
type WoodFinish struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PriceFactor float64 `json:"price_factor"`
}

// WoodFinishes lists the finishes offered for solid wood.
var WoodFinishes = []WoodFinish{
	{ID: "natural", Name: "Natural", PriceFactor: 1.0},
	{ID: "matte", Name: "Matte", PriceFactor: 1.1},
	{ID: "glossy", Name: "Glossy", PriceFactor: 1.2},
	{ID: "oiled", Name: "Oiled", PriceFactor: 1.15},
}

// WoodFinishFactor returns the price factor of a finish id, 1.0 when unknown.
func WoodFinishFactor(id string) float64 {
	for _, f := range WoodFinishes {
		if f.ID == id {
			return f.PriceFactor
		}
	}
	return 1.0
}

// Pattern is a decorative surface from the pattern catalogue.
type Pattern struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	FinishType     string    `json:"finish_type"`
	ColorHex       string    `json:"color_hex,omitempty"`
	PriceFactor    float64   `json:"price_factor"`
	IsPremium      bool      `json:"is_premium"`
	TextureURL     string    `json:"texture_url,omitempty"`
	NormalMapURL   string    `json:"normal_map_url,omitempty"`
	RoughnessURL   string    `json:"roughness_map_url,omitempty"`
	ThumbnailURL   string    `json:"thumbnail_url,omitempty"`
	ThicknessMM    float64   `json:"thickness_mm,omitempty"`
	LengthCM       float64   `json:"length_cm,omitempty"`
	WidthCM        float64   `json:"width_cm,omitempty"`
	TextureRepeatX float64   `json:"texture_repeat_x,omitempty"`
	TextureRepeatY float64   `json:"texture_repeat_y,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewPattern creates a pattern with a fresh id.
func NewPattern(name, finishType, color string, priceFactor float64) Pattern {
	return Pattern{
		ID:          uuid.New().String()[:8],
		Name:        name,
		FinishType:  finishType,
		ColorHex:    color,
		PriceFactor: priceFactor,
		CreatedAt:   time.Now().UTC(),
	}
}

// Normalized fills in defaults for fields the catalogue may leave empty.
func (p Pattern) Normalized() Pattern {
	p.FinishType = strings.ToLower(strings.TrimSpace(p.FinishType))
	if p.FinishType == "" {
		p.FinishType = "solid"
	}
	if p.TextureRepeatX <= 0 {
		p.TextureRepeatX = 1
	}
	if p.TextureRepeatY <= 0 {
		p.TextureRepeatY = 1
	}
	return p
}

// EffectivePriceFactor returns the price factor, 1.0 when unset.
func (p Pattern) EffectivePriceFactor() float64 {
	if p.PriceFactor <= 0 {
		return 1.0
	}
	return p.PriceFactor
}

// SortPatterns orders patterns by name.
func SortPatterns(ps []Pattern) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
}

// MaterialSelection is the user's choice of surface.
type MaterialSelection struct {
	Category  string   `json:"material_category"`
	Option    string   `json:"material_option"`
	Finish    string   `json:"finish"`
	PatternID string   `json:"pattern_id,omitempty"`
	Pattern   *Pattern `json:"-"`
}

// DefaultMaterialSelection returns white premium decor with a natural finish.
func DefaultMaterialSelection() MaterialSelection {
	return MaterialSelection{Category: CategoryPremiumDecor, Option: "white", Finish: "natural"}
}

// SelectedColor returns the display colour of the selection. A pattern
// colour wins over the category option.
func SelectedColor(sel MaterialSelection) string {
	if sel.Pattern != nil && sel.Pattern.ColorHex != "" {
		return sel.Pattern.ColorHex
	}
	cat := FindCategory(sel.Category)
	if cat == nil {
		return DefaultColor
	}
	opt := cat.FindOption(sel.Option)
	if opt == nil {
		return DefaultColor
	}
	return opt.Color
}

// SelectedPriceFactor returns the material multiplier of the selection,
// 1.0 when the category or option is unknown.
func SelectedPriceFactor(sel MaterialSelection) float64 {
	cat := FindCategory(sel.Category)
	if cat == nil {
		return 1.0
	}
	opt := cat.FindOption(sel.Option)
	if opt == nil {
		return 1.0
	}
	return opt.PriceFactor
}

// SelectedFinishFactor returns the finish multiplier. Finishes are only
// priced on solid wood.
func SelectedFinishFactor(sel MaterialSelection) float64 {
	if sel.Category != CategorySolidWood {
		return 1.0
	}
	return WoodFinishFactor(sel.Finish)
}
