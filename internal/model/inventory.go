package model

import "github.com/google/uuid"

// SheetKind separates carcass board from thin back-panel stock.
type SheetKind string

const (
	SheetBoard SheetKind = "board"
	SheetBack  SheetKind = "back"
)

// SheetPreset is a purchasable sheet format.
type SheetPreset struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Kind          SheetKind `json:"kind"`
	MaterialType  string    `json:"material_type"`
	Width         float64   `json:"width"`     // mm
	Height        float64   `json:"height"`    // mm
	Thickness     float64   `json:"thickness"` // mm
	PricePerSheet float64   `json:"price_per_sheet"`
}

// NewSheetPreset creates a new SheetPreset with a generated ID.
func NewSheetPreset(name string, kind SheetKind, materialType string, width, height, thickness float64) SheetPreset {
	return SheetPreset{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Kind:         kind,
		MaterialType: materialType,
		Width:        width,
		Height:       height,
		Thickness:    thickness,
	}
}

// Area returns the sheet area in m².
func (sp SheetPreset) Area() float64 {
	return sp.Width * sp.Height / 1_000_000
}

// ToStockSheet converts the preset into stock of the given material code.
func (sp SheetPreset) ToStockSheet(materialCode string, qty int) StockSheet {
	s := NewStockSheet(sp.Name, materialCode, sp.Width, sp.Height, qty)
	s.Thickness = sp.Thickness
	return s
}

const (
	MaterialTypeLDSB = "Laminated Particle Board (LDSB)"
	MaterialTypeDVP  = "Particle Board (DVP)"
)

// StandardBoardSheet is the default carcass sheet.
func StandardBoardSheet() SheetPreset {
	return NewSheetPreset("LDSB 2750x1830", SheetBoard, MaterialTypeLDSB, 2750, 1830, 16)
}

// StandardBackSheet is the default back panel sheet.
func StandardBackSheet() SheetPreset {
	return NewSheetPreset("DVP 2745x1700", SheetBack, MaterialTypeDVP, 2745, 1700, 3)
}

// Inventory holds the sheet formats available to the cut list.
type Inventory struct {
	Sheets []SheetPreset `json:"sheets"`
}

// DefaultInventory returns the standard sheet formats.
func DefaultInventory() Inventory {
	return Inventory{
		Sheets: []SheetPreset{
			StandardBoardSheet(),
			StandardBackSheet(),
			NewSheetPreset("LDSB 2800x2070", SheetBoard, MaterialTypeLDSB, 2800, 2070, 18),
			NewSheetPreset("MDF 2800x2070", SheetBoard, "MDF", 2800, 2070, 18),
			NewSheetPreset("HDF 2800x2070", SheetBack, "HDF", 2800, 2070, 3),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *SheetPreset {
	for i := range inv.Sheets {
		if inv.Sheets[i].ID == id {
			return &inv.Sheets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindByName(name string) *SheetPreset {
	for i := range inv.Sheets {
		if inv.Sheets[i].Name == name {
			return &inv.Sheets[i]
		}
	}
	return nil
}

// FirstOfKind returns the first preset of the given kind, or nil.
func (inv *Inventory) FirstOfKind(kind SheetKind) *SheetPreset {
	for i := range inv.Sheets {
		if inv.Sheets[i].Kind == kind {
			return &inv.Sheets[i]
		}
	}
	return nil
}

// Names returns a list of preset names.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.Sheets))
	for i, s := range inv.Sheets {
		names[i] = s.Name
	}
	return names
}
