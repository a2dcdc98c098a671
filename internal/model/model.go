package model

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Edge is a single banded edge of a fabrication part.
type Edge uint8

const (
	EdgeTop Edge = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
	EdgeFront
	EdgeBack
)

var edgeNames = []struct {
	edge  Edge
	name  string
	short string
}{
	{EdgeTop, "top", "T"},
	{EdgeBottom, "bottom", "B"},
	{EdgeLeft, "left", "L"},
	{EdgeRight, "right", "R"},
	{EdgeFront, "front", "F"},
	{EdgeBack, "back", "K"},
}

// EdgeSet is the set of edges that receive banding.
type EdgeSet uint8

// Edges builds an EdgeSet from individual edges.
func Edges(edges ...Edge) EdgeSet {
	var s EdgeSet
	for _, e := range edges {
		s |= EdgeSet(e)
	}
	return s
}

// Has reports whether e is banded.
func (s EdgeSet) Has(e Edge) bool { return s&EdgeSet(e) != 0 }

// HasAny reports whether any edge is banded.
func (s EdgeSet) HasAny() bool { return s != 0 }

// EdgeCount returns the number of banded edges.
func (s EdgeSet) EdgeCount() int {
	n := 0
	for _, en := range edgeNames {
		if s.Has(en.edge) {
			n++
		}
	}
	return n
}

// Names returns the banded edge names in a fixed order.
func (s EdgeSet) Names() []string {
	names := []string{}
	for _, en := range edgeNames {
		if s.Has(en.edge) {
			names = append(names, en.name)
		}
	}
	return names
}

// String returns a compact form such as "T+B+F".
func (s EdgeSet) String() string {
	var parts []string
	for _, en := range edgeNames {
		if s.Has(en.edge) {
			parts = append(parts, en.short)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// LinearLength returns the banding length in mm for one piece of size w×h.
// Top and bottom run along the width, left and right along the height.
// Front and back are the long visible edges: along the width on horizontal
// panels and along the height on vertical ones.
func (s EdgeSet) LinearLength(w, h float64, o Orientation) float64 {
	var total float64
	if s.Has(EdgeTop) {
		total += w
	}
	if s.Has(EdgeBottom) {
		total += w
	}
	if s.Has(EdgeLeft) {
		total += h
	}
	if s.Has(EdgeRight) {
		total += h
	}
	frontLen := h
	if o == OrientationHorizontal {
		frontLen = w
	}
	if s.Has(EdgeFront) {
		total += frontLen
	}
	if s.Has(EdgeBack) {
		total += frontLen
	}
	return total
}

func (s EdgeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *EdgeSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out EdgeSet
	for _, n := range names {
		for _, en := range edgeNames {
			if strings.EqualFold(n, en.name) {
				out |= EdgeSet(en.edge)
			}
		}
	}
	*s = out
	return nil
}

// Orientation tells how a panel sits in the assembled piece.
type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
	OrientationFacing     Orientation = "facing" // doors and back panels
)

// HoleKind names the drilling operation for a hole.
type HoleKind string

const (
	HoleEuroScrew HoleKind = "euro-screw"
	HoleEdge      HoleKind = "edge"
	HoleHinge     HoleKind = "hinge"
)

// Hole is a drilling position on a part face, in mm from the part origin.
type Hole struct {
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	Kind HoleKind `json:"kind,omitempty"`
}

// Part is a rectangular piece to be cut from sheet stock.
type Part struct {
	ID          int         `json:"id"`
	Material    string      `json:"material"`
	Width       float64     `json:"width"`     // mm
	Height      float64     `json:"height"`    // mm
	Thickness   float64     `json:"thickness"` // mm
	EdgeBanding EdgeSet     `json:"edge_banding"`
	Count       int         `json:"count"`
	Description string      `json:"description"`
	Holes       []Hole      `json:"holes,omitempty"`
	Orientation Orientation `json:"orientation,omitempty"`
}

// Area returns the face area of one piece in m².
func (p Part) Area() float64 {
	return p.Width * p.Height / 1_000_000
}

// BandingLength returns the banded edge length of one piece in mm.
func (p Part) BandingLength() float64 {
	return p.EdgeBanding.LinearLength(p.Width, p.Height, p.Orientation)
}

// StockSheet represents an available sheet of material to cut from.
type StockSheet struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Material  string  `json:"material"`
	Width     float64 `json:"width"`     // mm
	Height    float64 `json:"height"`    // mm
	Thickness float64 `json:"thickness"` // mm
	Quantity  int     `json:"quantity"`
}

func NewStockSheet(label, material string, w, h float64, qty int) StockSheet {
	return StockSheet{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Material: material,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// CutSettings holds the sheet nesting configuration.
type CutSettings struct {
	KerfWidth      float64 `json:"kerf_width"`      // Blade width in mm
	EdgeTrim       float64 `json:"edge_trim"`       // Trim around sheet edges in mm
	GuillotineOnly bool    `json:"guillotine_only"` // Restrict to panel-saw cuts
	AllowRotation  bool    `json:"allow_rotation"`  // Decors without grain may be turned 90°
}

func DefaultSettings() CutSettings {
	return CutSettings{
		KerfWidth:      4.0,
		EdgeTrim:       10.0,
		GuillotineOnly: true,
		AllowRotation:  true,
	}
}

// Placement represents a single part placed on a stock sheet.
type Placement struct {
	Part    Part    `json:"part"`
	X       float64 `json:"x"`       // Position from left edge (mm)
	Y       float64 `json:"y"`       // Position from top edge (mm)
	Rotated bool    `json:"rotated"` // Whether part was rotated 90°
}

// PlacedWidth returns the effective width considering rotation.
func (p Placement) PlacedWidth() float64 {
	if p.Rotated {
		return p.Part.Height
	}
	return p.Part.Width
}

// PlacedHeight returns the effective height considering rotation.
func (p Placement) PlacedHeight() float64 {
	if p.Rotated {
		return p.Part.Width
	}
	return p.Part.Height
}

// SheetResult represents one stock sheet with its placed parts.
type SheetResult struct {
	Stock      StockSheet  `json:"stock"`
	Placements []Placement `json:"placements"`
}

// UsedArea returns the total area used by placed parts in mm².
func (sr SheetResult) UsedArea() float64 {
	var total float64
	for _, p := range sr.Placements {
		total += p.PlacedWidth() * p.PlacedHeight()
	}
	return total
}

// TotalArea returns the stock sheet area in mm².
func (sr SheetResult) TotalArea() float64 {
	return sr.Stock.Width * sr.Stock.Height
}

// Efficiency returns the usage percentage.
func (sr SheetResult) Efficiency() float64 {
	ta := sr.TotalArea()
	if ta == 0 {
		return 0
	}
	return (sr.UsedArea() / ta) * 100.0
}

// OptimizeResult holds the nesting plan for one cut list.
type OptimizeResult struct {
	Sheets        []SheetResult `json:"sheets"`
	UnplacedParts []Part        `json:"unplaced_parts"`
}

// TotalEfficiency returns overall material usage percentage.
func (or OptimizeResult) TotalEfficiency() float64 {
	var usedArea, totalArea float64
	for _, s := range or.Sheets {
		usedArea += s.UsedArea()
		totalArea += s.TotalArea()
	}
	if totalArea == 0 {
		return 0
	}
	return (usedArea / totalArea) * 100.0
}

// SheetsByMaterial counts the sheets used per material code.
func (or OptimizeResult) SheetsByMaterial() map[string]int {
	out := map[string]int{}
	for _, s := range or.Sheets {
		out[s.Stock.Material]++
	}
	return out
}
