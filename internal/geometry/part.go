// Package geometry turns a furniture configuration into positioned boxes
// for a renderer. All output is in metres with the origin at the floor
// centre, +X right, +Y up and +Z towards the viewer.
package geometry

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// Kind classifies a render part.
type Kind string

const (
	KindSide          Kind = "side"
	KindTop           Kind = "top"
	KindBottom        Kind = "bottom"
	KindBack          Kind = "back"
	KindNotchFill     Kind = "notch-fill"
	KindShelf         Kind = "shelf"
	KindDivider       Kind = "divider"
	KindMountingStrip Kind = "mounting-strip"
	KindDoor          Kind = "door"
	KindTabletop      Kind = "tabletop"
	KindLeg           Kind = "leg"
)

// HingeSide is the vertical edge a door leaf rotates about.
type HingeSide string

const (
	HingeLeft  HingeSide = "left"
	HingeRight HingeSide = "right"
)

// DoorHinge describes how a door leaf swings.
type DoorHinge struct {
	Side HingeSide `json:"side"`
	// Pivot is the hinge axis position; the leaf rotates about +Y through it.
	Pivot r3.Vec `json:"pivot"`
	// HandleOffset is the handle centre relative to the leaf centre.
	HandleOffset r3.Vec `json:"handle_offset"`
	HandleSize   r3.Vec `json:"handle_size"`
	HandleColor  string `json:"handle_color"`
}

// RenderPart is one axis-aligned box of the assembled piece.
type RenderPart struct {
	ID          string     `json:"id"`
	Kind        Kind       `json:"kind"`
	Position    r3.Vec     `json:"position"` // centre
	Size        r3.Vec     `json:"size"`
	EdgeRadius  float64    `json:"edge_radius"`
	Color       string     `json:"color"`
	Compartment int        `json:"compartment"` // -1 when not tied to a compartment
	Door        *DoorHinge `json:"door,omitempty"`
}

// Min returns the corner with the smallest coordinates.
func (p RenderPart) Min() r3.Vec {
	return r3.Sub(p.Position, r3.Scale(0.5, p.Size))
}

// Max returns the corner with the largest coordinates.
func (p RenderPart) Max() r3.Vec {
	return r3.Add(p.Position, r3.Scale(0.5, p.Size))
}

// CountKind returns how many parts are of kind k.
func CountKind(parts []RenderPart, k Kind) int {
	n := 0
	for _, p := range parts {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// FilterKind returns the parts of kind k in output order.
func FilterKind(parts []RenderPart, k Kind) []RenderPart {
	out := []RenderPart{}
	for _, p := range parts {
		if p.Kind == k {
			out = append(out, p)
		}
	}
	return out
}

// Doors returns the door leaves.
func Doors(parts []RenderPart) []RenderPart {
	return FilterKind(parts, KindDoor)
}

// FindByID returns the part with the given id.
func FindByID(parts []RenderPart, id string) (RenderPart, bool) {
	for _, p := range parts {
		if p.ID == id {
			return p, true
		}
	}
	return RenderPart{}, false
}

// IDs returns the sorted part ids.
func IDs(parts []RenderPart) []string {
	ids := make([]string, len(parts))
	for i, p := range parts {
		ids[i] = p.ID
	}
	sort.Strings(ids)
	return ids
}

// Input is everything the resolver needs.
type Input struct {
	Type       model.FurnitureType
	Dimensions model.Dimensions // cm
	Options    model.StructuralOptions
	Color      string
	// PanelThicknessMM overrides the panel thickness, typically from the
	// selected pattern. Zero means default.
	PanelThicknessMM float64
	// Thickness supplies the render thicknesses. Zero fields fall back to
	// the package defaults.
	Thickness model.ThicknessModel
}

// InputFor builds the resolver input from a live configuration and the
// configured render thicknesses.
func InputFor(c model.Configuration, tm model.ThicknessModel) Input {
	in := Input{
		Type:       c.Type,
		Dimensions: c.Dimensions,
		Options:    c.Options,
		Color:      model.SelectedColor(c.Material),
		Thickness:  tm,
	}
	if c.Material.Pattern != nil {
		in.PanelThicknessMM = c.Material.Pattern.ThicknessMM
	}
	return in
}
