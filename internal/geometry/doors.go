package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// Compartment is the open space between two vertical panels, in metres
// along X.
type Compartment struct {
	Index int     `json:"index"`
	Left  float64 `json:"left"`  // inner face of the left boundary panel
	Right float64 `json:"right"` // inner face of the right boundary panel
	Width float64 `json:"width"`
}

// Center returns the x coordinate of the compartment centre.
func (c Compartment) Center() float64 { return (c.Left + c.Right) / 2 }

// Compartments splits a carcass of outer width w and panel thickness t into
// columns+1 equal compartments separated by columns dividers of thickness t.
// The first runs from the left side panel to the first divider, middle ones
// between dividers and the last to the right side panel, so the widths plus
// all panel thicknesses add up to w.
func Compartments(w, t float64, columns int) []Compartment {
	if columns < 0 {
		columns = 0
	}
	n := columns + 1
	width := (w - 2*t - float64(columns)*t) / float64(n)
	comps := make([]Compartment, n)
	left := -w/2 + t
	for i := range comps {
		comps[i] = Compartment{Index: i, Left: left, Right: left + width, Width: width}
		left += width + t
	}
	return comps
}

type leafSpec struct {
	id      string
	left    float64 // x of the leaf's left edge
	width   float64
	height  float64
	centerY float64
	side    HingeSide
	comp    int
}

func (c carcass) doors(opts model.StructuralOptions, color string) []RenderPart {
	var leaves []leafSpec
	if opts.ColumnCount <= 0 {
		full := leafSpec{left: -c.w / 2, width: c.w, height: c.h, centerY: c.h / 2, comp: -1}
		if opts.DoorConfig == model.DoorsTwo {
			l, r := full, full
			l.id, l.width, l.side = "door-left", c.w/2, HingeLeft
			r.id, r.left, r.width, r.side = "door-right", 0, c.w/2, HingeRight
			leaves = append(leaves, l, r)
		} else {
			full.id = "door"
			full.side = HingeLeft
			if opts.DoorDirection == model.HingeRight {
				full.side = HingeRight
			}
			leaves = append(leaves, full)
		}
	} else {
		h := c.h - 2*c.t
		for _, comp := range c.comps {
			base := leafSpec{left: comp.Left, width: comp.Width, height: h, centerY: c.h / 2, comp: comp.Index}
			prefix := fmt.Sprintf("door-c%d", comp.Index+1)
			switch opts.CompartmentDoorAt(comp.Index) {
			case model.CompartmentDoorSingleLeft:
				base.id, base.side = prefix, HingeLeft
				leaves = append(leaves, base)
			case model.CompartmentDoorSingleRight:
				base.id, base.side = prefix, HingeRight
				leaves = append(leaves, base)
			case model.CompartmentDoorDouble:
				l, r := base, base
				l.id, l.width, l.side = prefix+"-left", comp.Width/2, HingeLeft
				r.id, r.left, r.width, r.side = prefix+"-right", comp.Left+comp.Width/2, comp.Width/2, HingeRight
				leaves = append(leaves, l, r)
			}
		}
	}

	z := c.d/2 + DoorOutset
	parts := make([]RenderPart, 0, len(leaves))
	for _, l := range leaves {
		center := r3.Vec{X: l.left + l.width/2, Y: l.centerY, Z: z}
		pivotX := l.left
		handleX := l.width/2 - HandleMargin
		if l.side == HingeRight {
			pivotX = l.left + l.width
			handleX = -handleX
		}
		parts = append(parts, RenderPart{
			ID:          l.id,
			Kind:        KindDoor,
			Position:    center,
			Size:        r3.Vec{X: l.width, Y: l.height, Z: DoorThickness},
			EdgeRadius:  EdgeRadius,
			Color:       color,
			Compartment: l.comp,
			Door: &DoorHinge{
				Side:         l.side,
				Pivot:        r3.Vec{X: pivotX, Y: l.centerY, Z: z},
				HandleOffset: r3.Vec{X: handleX, Y: 0, Z: DoorThickness/2 + HandleDepth/2},
				HandleSize:   r3.Vec{X: HandleWidth, Y: HandleHeight, Z: HandleDepth},
				HandleColor:  HandleColor,
			},
		})
	}
	return parts
}
