// Package cutlist derives the fabrication parts, sheet purchase and
// hardware of a carcass from its outer dimensions.
package cutlist

import (
	"math"

	"github.com/piwi3910/FurniCraft/internal/model"
)

const (
	DefaultMaterialCode     = "U780_9"
	DefaultDoorMaterialCode = "H1334_9"
	DefaultBackPanelCode    = "W1000_9"

	// Shelves and dividers sit this far behind the front edge, mm.
	ShelfSetback = 10.0
	// The back panel overlaps the carcass opening on each axis by this much, mm.
	BackPanelOversize = 10.0
	// Door leaves are this much smaller than their opening on each axis, mm.
	DoorGap = 4.0

	HardwareEuroScrews = "Euro screws"
	HardwareDoorHinges = "Door hinges"

	MaterialTypeDoor = "Laminated Particle Board (LDSB) - doors"
)

// Request carries the inputs of Generate.
type Request struct {
	Type             model.FurnitureType `json:"furniture_type"`
	Dimensions       model.Dimensions    `json:"dimensions"` // cm
	HasDoors         bool                `json:"has_doors"`
	ShelfCount       int                 `json:"shelf_count"`
	ColumnCount      int                 `json:"column_count"`
	MaterialCode     string              `json:"material_code"`
	DoorMaterialCode string              `json:"door_material_code"`
	BackPanelCode    string              `json:"back_panel_code"`
}

// RequestFor builds a request from a live configuration and material codes.
func RequestFor(c model.Configuration, cfg model.AppConfig) Request {
	return Request{
		Type:             c.Type,
		Dimensions:       c.Dimensions,
		HasDoors:         c.Options.HasDoors,
		ShelfCount:       c.Options.ShelfCount,
		ColumnCount:      c.Options.ColumnCount,
		MaterialCode:     cfg.MaterialCode,
		DoorMaterialCode: cfg.DoorMaterialCode,
		BackPanelCode:    cfg.BackPanelCode,
	}
}

// Options control stock thicknesses and sheet formats.
type Options struct {
	Thickness  model.ThicknessModel
	BoardSheet model.SheetPreset
	BackSheet  model.SheetPreset
}

// DefaultOptions returns 16 mm LDSB on 2750×1830 sheets and 3 mm DVP backs
// on 2745×1700 sheets.
func DefaultOptions() Options {
	return Options{
		Thickness:  model.DefaultThicknessModel(),
		BoardSheet: model.StandardBoardSheet(),
		BackSheet:  model.StandardBackSheet(),
	}
}

// MaterialSheet is one material line of the purchase list.
type MaterialSheet struct {
	Type      string  `json:"type"`
	Code      string  `json:"code"`
	Width     float64 `json:"width"`     // mm, one sheet
	Height    float64 `json:"height"`    // mm, one sheet
	Thickness float64 `json:"thickness"` // mm
	Count     int     `json:"count"`     // sheets to buy
	Area      float64 `json:"area"`      // m² of parts cut from this material
}

// Hardware is a fitting and how many are needed.
type Hardware struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CutList is the full fabrication output.
type CutList struct {
	FurnitureType    model.FurnitureType `json:"furniture_type"`
	Materials        []MaterialSheet     `json:"materials"`
	Parts            []model.Part        `json:"parts"`
	Hardware         []Hardware          `json:"hardware"`
	TotalArea        float64             `json:"total_area"`         // m²
	TotalEdgeBanding float64             `json:"total_edge_banding"` // m
}

// Generate builds the cut list with the default stock.
func Generate(req Request) CutList {
	return GenerateWith(req, DefaultOptions())
}

// GenerateWith builds the cut list. Non-carcass types get the same carcass
// breakdown. Degenerate dimensions produce zero or negative sized parts
// rather than an error.
func GenerateWith(req Request, opts Options) CutList {
	if req.MaterialCode == "" {
		req.MaterialCode = DefaultMaterialCode
	}
	if req.DoorMaterialCode == "" {
		req.DoorMaterialCode = DefaultDoorMaterialCode
	}
	if req.BackPanelCode == "" {
		req.BackPanelCode = DefaultBackPanelCode
	}
	if req.ShelfCount < 0 {
		req.ShelfCount = 0
	}
	if req.ColumnCount < 0 {
		req.ColumnCount = 0
	}

	b := newBuilder(req, opts)
	b.sides()
	b.topAndBottom()
	b.shelves()
	b.dividers()
	b.backPanel()
	if req.HasDoors {
		b.doors()
	}
	return b.finish()
}

type builder struct {
	req  Request
	opts Options

	width, height, depth float64 // mm
	board, back          float64 // mm
	innerWidth           float64
	innerHeight          float64

	parts  []model.Part
	screws int
	hinges int
	nextID int
}

func newBuilder(req Request, opts Options) *builder {
	w, h, d := req.Dimensions.Millimeters()
	board := opts.Thickness.CutListBoardMM
	return &builder{
		req:         req,
		opts:        opts,
		width:       w,
		height:      h,
		depth:       d,
		board:       board,
		back:        opts.Thickness.CutListBackMM,
		innerWidth:  w - 2*board,
		innerHeight: h - 2*board,
		nextID:      1,
	}
}

func (b *builder) add(p model.Part) {
	if p.Count <= 0 {
		return
	}
	p.ID = b.nextID
	b.nextID++
	b.parts = append(b.parts, p)
}

func (b *builder) sides() {
	d, h := b.depth, b.height
	b.add(model.Part{
		Material:    b.req.MaterialCode,
		Width:       d,
		Height:      h,
		Thickness:   b.board,
		EdgeBanding: model.Edges(model.EdgeTop, model.EdgeBottom, model.EdgeFront, model.EdgeBack),
		Count:       2,
		Description: "Side panel",
		Orientation: model.OrientationVertical,
		Holes: []model.Hole{
			{X: 32, Y: 32, Kind: model.HoleEuroScrew},
			{X: 32, Y: h - 32, Kind: model.HoleEuroScrew},
			{X: d - 32, Y: 32, Kind: model.HoleEuroScrew},
			{X: d - 32, Y: h - 32, Kind: model.HoleEuroScrew},
		},
	})
	b.screws += 2 * 4
}

func (b *builder) topAndBottom() {
	iw := b.innerWidth
	b.add(model.Part{
		Material:    b.req.MaterialCode,
		Width:       iw,
		Height:      b.depth,
		Thickness:   b.board,
		EdgeBanding: model.Edges(model.EdgeFront, model.EdgeBack),
		Count:       2,
		Description: "Top/Bottom panel",
		Orientation: model.OrientationHorizontal,
		Holes: []model.Hole{
			{X: 70, Y: 32, Kind: model.HoleEdge},
			{X: iw - 70, Y: 32, Kind: model.HoleEdge},
		},
	})
	b.screws += 2 * 2
}

func (b *builder) shelves() {
	n := b.req.ShelfCount * (b.req.ColumnCount + 1)
	if n == 0 {
		return
	}
	b.add(model.Part{
		Material:    b.req.MaterialCode,
		Width:       b.innerWidth / float64(b.req.ColumnCount+1),
		Height:      b.depth - ShelfSetback,
		Thickness:   b.board,
		EdgeBanding: model.Edges(model.EdgeFront),
		Count:       n,
		Description: "Shelf",
		Orientation: model.OrientationHorizontal,
	})
	b.screws += 2 * n
}

func (b *builder) dividers() {
	n := b.req.ColumnCount
	if n == 0 {
		return
	}
	b.add(model.Part{
		Material:    b.req.MaterialCode,
		Width:       b.depth - ShelfSetback,
		Height:      b.innerHeight,
		Thickness:   b.board,
		EdgeBanding: model.Edges(model.EdgeFront, model.EdgeTop, model.EdgeBottom),
		Count:       n,
		Description: "Vertical divider",
		Orientation: model.OrientationVertical,
	})
	b.screws += 2 * n
}

func (b *builder) backPanel() {
	b.add(model.Part{
		Material:    b.req.BackPanelCode,
		Width:       b.innerWidth + BackPanelOversize,
		Height:      b.innerHeight + BackPanelOversize,
		Thickness:   b.back,
		Count:       1,
		Description: "Back panel",
		Orientation: model.OrientationFacing,
	})
}

// DoorCount returns how many door leaves the cut list orders.
func DoorCount(columnCount int) int {
	if columnCount > 0 {
		return columnCount + 1
	}
	return 2
}

func (b *builder) doors() {
	n := DoorCount(b.req.ColumnCount)
	ih := b.innerHeight
	b.add(model.Part{
		Material:    b.req.DoorMaterialCode,
		Width:       b.innerWidth/float64(n) - DoorGap,
		Height:      ih - DoorGap,
		Thickness:   b.board,
		EdgeBanding: model.Edges(model.EdgeTop, model.EdgeBottom, model.EdgeLeft, model.EdgeRight),
		Count:       n,
		Description: "Door",
		Orientation: model.OrientationFacing,
		Holes: []model.Hole{
			{X: 100, Y: 21, Kind: model.HoleHinge},
			{X: 100, Y: ih - 100, Kind: model.HoleHinge},
		},
	})
	b.hinges += 2 * n
}

func (b *builder) finish() CutList {
	areas := map[string]float64{}
	var banding float64
	for _, p := range b.parts {
		areas[p.Material] += p.Area() * float64(p.Count)
		banding += p.BandingLength() * float64(p.Count)
	}

	board := b.opts.BoardSheet
	back := b.opts.BackSheet
	materials := []MaterialSheet{
		sheetLine(board.MaterialType, b.req.MaterialCode, board, b.board, areas[b.req.MaterialCode]),
	}
	if b.req.HasDoors {
		materials = append(materials,
			sheetLine(MaterialTypeDoor, b.req.DoorMaterialCode, board, b.board, areas[b.req.DoorMaterialCode]))
	}
	materials = append(materials,
		sheetLine(back.MaterialType, b.req.BackPanelCode, back, b.back, areas[b.req.BackPanelCode]))

	// Codes may coincide; each material line then carries the shared area
	// once and the others none.
	seen := map[string]bool{}
	for i := range materials {
		if seen[materials[i].Code] {
			materials[i].Area = 0
			materials[i].Count = 0
		}
		seen[materials[i].Code] = true
	}

	var total float64
	for _, m := range materials {
		total += m.Area
	}

	hardware := []Hardware{{Type: HardwareEuroScrews, Count: b.screws}}
	if b.hinges > 0 {
		hardware = append(hardware, Hardware{Type: HardwareDoorHinges, Count: b.hinges})
	}

	parts := b.parts
	if parts == nil {
		parts = []model.Part{}
	}
	return CutList{
		FurnitureType:    b.req.Type,
		Materials:        materials,
		Parts:            parts,
		Hardware:         hardware,
		TotalArea:        total,
		TotalEdgeBanding: banding / 1000,
	}
}

func sheetLine(materialType, code string, sheet model.SheetPreset, thickness, area float64) MaterialSheet {
	est := model.EstimateSheets(area, sheet.Width, sheet.Height, 0)
	return MaterialSheet{
		Type:      materialType,
		Code:      code,
		Width:     sheet.Width,
		Height:    sheet.Height,
		Thickness: thickness,
		Count:     est.SheetsNeeded,
		Area:      math.Max(area, 0),
	}
}
