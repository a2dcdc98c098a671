package model

import (
	"fmt"
	"math"
	"strings"
)

// FurnitureType identifies which geometry family a configuration builds.
type FurnitureType string

const (
	TypeCloset    FurnitureType = "closet"
	TypeTable     FurnitureType = "table"
	TypeCabinet   FurnitureType = "cabinet"
	TypeDesk      FurnitureType = "desk"
	TypeSideboard FurnitureType = "sideboard"
	TypeBookshelf FurnitureType = "bookshelf" // legacy, rendered as a closet carcass
)

// FurnitureTypes lists the selectable types in display order.
var FurnitureTypes = []FurnitureType{TypeCloset, TypeTable, TypeCabinet, TypeDesk, TypeSideboard}

// ParseFurnitureType maps a free-form name onto a FurnitureType.
// Unknown names are kept verbatim; downstream resolvers treat them as carcasses.
func ParseFurnitureType(s string) FurnitureType {
	return FurnitureType(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether t is one of the named furniture types.
func (t FurnitureType) Known() bool {
	switch t {
	case TypeCloset, TypeTable, TypeCabinet, TypeDesk, TypeSideboard, TypeBookshelf:
		return true
	}
	return false
}

// IsCarcass reports whether t is built as a box of panels.
// Anything that is not a table or desk is a carcass.
func (t FurnitureType) IsCarcass() bool {
	return t != TypeTable && t != TypeDesk
}

// HasDoorsOption reports whether doors can be configured for t.
func (t FurnitureType) HasDoorsOption() bool { return t.IsCarcass() }

// HasShelvesOption reports whether shelves can be configured for t.
func (t FurnitureType) HasShelvesOption() bool { return t.IsCarcass() }

// HasColumnsOption reports whether vertical dividers can be configured for t.
func (t FurnitureType) HasColumnsOption() bool { return t.IsCarcass() }

// Label returns a human readable name.
func (t FurnitureType) Label() string {
	if t == "" {
		return "Furniture"
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Dimensions are the outer measurements of a piece in centimetres.
type Dimensions struct {
	Width  float64 `json:"width"`  // cm
	Height float64 `json:"height"` // cm
	Depth  float64 `json:"depth"`  // cm
}

// Meters converts the dimensions to metres.
func (d Dimensions) Meters() (w, h, depth float64) {
	return d.Width / 100, d.Height / 100, d.Depth / 100
}

// Millimeters converts the dimensions to millimetres.
func (d Dimensions) Millimeters() (w, h, depth float64) {
	return d.Width * 10, d.Height * 10, d.Depth * 10
}

// Volume returns the bounding volume in cubic metres.
func (d Dimensions) Volume() float64 {
	return d.Width * d.Height * d.Depth / 1_000_000
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g cm", d.Width, d.Height, d.Depth)
}

// DefaultDimensions returns the starting size for a furniture type.
func DefaultDimensions(t FurnitureType) Dimensions {
	switch t {
	case TypeTable:
		return Dimensions{Width: 120, Height: 75, Depth: 80}
	case TypeCabinet:
		return Dimensions{Width: 100, Height: 90, Depth: 45}
	case TypeDesk:
		return Dimensions{Width: 140, Height: 75, Depth: 60}
	case TypeSideboard:
		return Dimensions{Width: 160, Height: 80, Depth: 40}
	default:
		return Dimensions{Width: 80, Height: 180, Depth: 30}
	}
}

// ColumnPitch is the minimum width in cm each additional compartment needs.
const ColumnPitch = 30.0

// MaxColumns returns how many vertical dividers fit into a carcass of the
// given width in cm.
func MaxColumns(widthCm float64) int {
	if math.IsNaN(widthCm) || widthCm <= 0 {
		return 0
	}
	n := int(math.Floor(widthCm/ColumnPitch)) - 1
	if n < 0 {
		return 0
	}
	return n
}

// ClampColumns limits n to the valid range for the given width.
func ClampColumns(n int, widthCm float64) int {
	if n < 0 {
		return 0
	}
	if max := MaxColumns(widthCm); n > max {
		return max
	}
	return n
}
