package model

// DoorConfig selects one or two doors for a carcass without dividers.
type DoorConfig string

const (
	DoorsOne DoorConfig = "one"
	DoorsTwo DoorConfig = "two"
)

// DoorDirection is the hinge side of a single full-width door.
type DoorDirection string

const (
	HingeLeft  DoorDirection = "left"
	HingeRight DoorDirection = "right"
)

// CompartmentDoorType is the door layout of one compartment.
type CompartmentDoorType string

const (
	CompartmentDoorNone        CompartmentDoorType = "none"
	CompartmentDoorSingleLeft  CompartmentDoorType = "single-left"
	CompartmentDoorSingleRight CompartmentDoorType = "single-right"
	CompartmentDoorDouble      CompartmentDoorType = "double"
)

// Valid reports whether the door type is one of the known layouts.
func (t CompartmentDoorType) Valid() bool {
	switch t {
	case CompartmentDoorNone, CompartmentDoorSingleLeft, CompartmentDoorSingleRight, CompartmentDoorDouble:
		return true
	}
	return false
}

// Leaves returns the number of door leaves the layout produces.
func (t CompartmentDoorType) Leaves() int {
	switch t {
	case CompartmentDoorSingleLeft, CompartmentDoorSingleRight:
		return 1
	case CompartmentDoorDouble:
		return 2
	default:
		return 0
	}
}

// CompartmentDoor configures the door of a single compartment.
type CompartmentDoor struct {
	Type CompartmentDoorType `json:"type"`
}

// BackPanelConfig describes how the back panel is mounted.
type BackPanelConfig struct {
	Inset     bool    `json:"inset"`
	Thickness float64 `json:"thickness"` // m
	NoOffset  bool    `json:"noOffset"`
}

// DefaultBackPanelConfig returns a flush 18 mm back panel.
func DefaultBackPanelConfig() BackPanelConfig {
	return BackPanelConfig{Inset: false, Thickness: 0.018, NoOffset: false}
}

// StructuralOptions are the carcass-level choices that drive geometry,
// cut list and price.
type StructuralOptions struct {
	ShelfCount       int               `json:"shelf_count"`
	ColumnCount      int               `json:"column_count"`
	HasDoors         bool              `json:"has_doors"`
	DoorConfig       DoorConfig        `json:"door_config"`
	DoorDirection    DoorDirection     `json:"door_direction"`
	CompartmentDoors []CompartmentDoor `json:"compartment_doors"`
	HasMountingStrip bool              `json:"has_mounting_strip"`
	BackPanel        BackPanelConfig   `json:"back_panel_config"`
}

// DefaultStructuralOptions returns the options a new configuration starts with.
func DefaultStructuralOptions() StructuralOptions {
	return StructuralOptions{
		ShelfCount:       0,
		ColumnCount:      0,
		HasDoors:         false,
		DoorConfig:       DoorsOne,
		DoorDirection:    HingeLeft,
		CompartmentDoors: []CompartmentDoor{{Type: CompartmentDoorNone}},
		BackPanel:        DefaultBackPanelConfig(),
	}
}

// CompartmentDoorAt returns the door layout of compartment i, treating
// missing entries as no door.
func (o StructuralOptions) CompartmentDoorAt(i int) CompartmentDoorType {
	if i < 0 || i >= len(o.CompartmentDoors) {
		return CompartmentDoorNone
	}
	if o.CompartmentDoors[i].Type == "" {
		return CompartmentDoorNone
	}
	return o.CompartmentDoors[i].Type
}

// ReconcileCompartmentDoors returns a door list with exactly compartments
// entries. Existing entries keep their index; new ones are "none".
// The input slice is never modified or aliased.
func ReconcileCompartmentDoors(doors []CompartmentDoor, compartments int) []CompartmentDoor {
	if compartments < 0 {
		compartments = 0
	}
	out := make([]CompartmentDoor, compartments)
	for i := range out {
		if i < len(doors) && doors[i].Type != "" {
			out[i] = doors[i]
		} else {
			out[i] = CompartmentDoor{Type: CompartmentDoorNone}
		}
	}
	return out
}
