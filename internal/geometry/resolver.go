package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// Dimensions below are metres.
const (
	DefaultPanelThickness = 0.018
	TablePanelThickness   = 0.020
	EdgeRadius            = 0.001

	InsetBackThickness = 0.008
	InsetBackOffset    = 0.016
	InsetBackExtension = 0.006

	MountingStripWidth  = 0.01
	MountingStripMargin = 0.05 // top and bottom clearance
	MountingStripInset  = 0.05 // depth reduction
	MountingStripColor  = "#444444"

	DoorThickness = 0.02
	DoorOutset    = 0.01

	HandleWidth  = 0.01
	HandleHeight = 0.05
	HandleDepth  = 0.02
	HandleMargin = 0.05 // from the free edge of the leaf
	HandleColor  = "#888888"

	LegSize = 0.05
)

// PanelThickness returns the panel thickness in metres for the input. A
// pattern thickness wins over the configured render thickness, which wins
// over the package defaults. Only tables use the thicker top.
func PanelThickness(in Input) float64 {
	if in.PanelThicknessMM > 0 {
		return in.PanelThicknessMM / 1000
	}
	if in.Type == model.TypeTable {
		if in.Thickness.RenderTableMM > 0 {
			return in.Thickness.RenderTableMM / 1000
		}
		return TablePanelThickness
	}
	if in.Thickness.RenderPanelMM > 0 {
		return in.Thickness.RenderPanelMM / 1000
	}
	return DefaultPanelThickness
}

// InsetBackPanelThickness returns the thickness in metres of an inset back.
func InsetBackPanelThickness(in Input) float64 {
	if in.Thickness.RenderInsetBackMM > 0 {
		return in.Thickness.RenderInsetBackMM / 1000
	}
	return InsetBackThickness
}

// Resolve computes the render parts for a configuration. It is a pure
// function: equal inputs give equal output, in the same order.
func Resolve(in Input) []RenderPart {
	if in.Color == "" {
		in.Color = model.DefaultColor
	}
	if in.Type.IsCarcass() {
		return resolveCarcass(in)
	}
	return resolveTable(in)
}

func resolveTable(in Input) []RenderPart {
	w, h, d := in.Dimensions.Meters()
	t := PanelThickness(in)

	parts := []RenderPart{{
		ID:          "tabletop",
		Kind:        KindTabletop,
		Position:    r3.Vec{X: 0, Y: h - t/2, Z: 0},
		Size:        r3.Vec{X: w, Y: t, Z: d},
		EdgeRadius:  EdgeRadius,
		Color:       in.Color,
		Compartment: -1,
	}}

	legH := h - t
	x := w/2 - LegSize/2
	z := d/2 - LegSize/2
	corners := []struct {
		id   string
		x, z float64
	}{
		{"leg-front-left", -x, z},
		{"leg-front-right", x, z},
		{"leg-back-left", -x, -z},
		{"leg-back-right", x, -z},
	}
	for _, c := range corners {
		parts = append(parts, RenderPart{
			ID:          c.id,
			Kind:        KindLeg,
			Position:    r3.Vec{X: c.x, Y: legH / 2, Z: c.z},
			Size:        r3.Vec{X: LegSize, Y: legH, Z: LegSize},
			EdgeRadius:  EdgeRadius,
			Color:       in.Color,
			Compartment: -1,
		})
	}
	return parts
}

// carcass holds the derived measurements shared by the carcass builders.
type carcass struct {
	w, h, d float64
	t       float64

	backT      float64
	backOffset float64 // recess of the back panel's rear face
	inset      bool

	innerDepth float64 // depth of top, bottom, shelves and dividers
	innerZ     float64 // z centre of those panels
	comps      []Compartment
}

func newCarcass(in Input) carcass {
	w, h, d := in.Dimensions.Meters()
	t := PanelThickness(in)
	c := carcass{w: w, h: h, d: d, t: t, inset: in.Options.BackPanel.Inset}

	if c.inset {
		c.backT = InsetBackPanelThickness(in)
		if !in.Options.BackPanel.NoOffset {
			c.backOffset = InsetBackOffset
		}
	} else {
		c.backT = t
		if in.Options.BackPanel.Thickness > 0 {
			c.backT = in.Options.BackPanel.Thickness
		}
	}
	c.innerDepth = d - c.backOffset - c.backT
	c.innerZ = d/2 - c.innerDepth/2
	c.comps = Compartments(w, t, in.Options.ColumnCount)
	return c
}

func (c carcass) part(id string, kind Kind, pos, size r3.Vec, color string) RenderPart {
	return RenderPart{
		ID:          id,
		Kind:        kind,
		Position:    pos,
		Size:        size,
		EdgeRadius:  EdgeRadius,
		Color:       color,
		Compartment: -1,
	}
}

func resolveCarcass(in Input) []RenderPart {
	c := newCarcass(in)
	opts := in.Options
	var parts []RenderPart

	// Sides
	sideX := c.w/2 - c.t/2
	parts = append(parts,
		c.part("side-left", KindSide, r3.Vec{X: -sideX, Y: c.h / 2}, r3.Vec{X: c.t, Y: c.h, Z: c.d}, in.Color),
		c.part("side-right", KindSide, r3.Vec{X: sideX, Y: c.h / 2}, r3.Vec{X: c.t, Y: c.h, Z: c.d}, in.Color),
	)

	// Back
	backW := c.w - 2*c.t
	if c.inset {
		backW += 2 * InsetBackExtension
	}
	back := c.part("back", KindBack,
		r3.Vec{X: 0, Y: c.h / 2, Z: -c.d/2 + c.backOffset + c.backT/2},
		r3.Vec{X: backW, Y: c.h, Z: c.backT}, in.Color)
	back.EdgeRadius = 0
	parts = append(parts, back)

	// Notch fills close the gap the recessed back leaves in the side panels.
	if c.inset {
		fillD := c.d - c.backOffset
		fillX := c.w/2 - c.t + InsetBackExtension/2
		fillZ := c.backOffset / 2
		for _, side := range []struct {
			id string
			x  float64
		}{{"notch-left", -fillX}, {"notch-right", fillX}} {
			p := c.part(side.id, KindNotchFill, r3.Vec{X: side.x, Y: c.h / 2, Z: fillZ},
				r3.Vec{X: InsetBackExtension, Y: c.h, Z: fillD}, in.Color)
			p.EdgeRadius = 0
			parts = append(parts, p)
		}
	}

	// Top and bottom
	innerW := c.w - 2*c.t
	parts = append(parts,
		c.part("top", KindTop, r3.Vec{X: 0, Y: c.h - c.t/2, Z: c.innerZ}, r3.Vec{X: innerW, Y: c.t, Z: c.innerDepth}, in.Color),
		c.part("bottom", KindBottom, r3.Vec{X: 0, Y: c.t / 2, Z: c.innerZ}, r3.Vec{X: innerW, Y: c.t, Z: c.innerDepth}, in.Color),
	)

	parts = append(parts, c.shelves(opts.ShelfCount, in.Color)...)
	parts = append(parts, c.dividers(in.Color)...)

	if opts.HasMountingStrip {
		parts = append(parts, c.mountingStrips()...)
	}
	if opts.HasDoors {
		parts = append(parts, c.doors(opts, in.Color)...)
	}
	return parts
}

// shelves spaces n shelves evenly between the bottom and top panels, one per
// compartment per level.
func (c carcass) shelves(n int, color string) []RenderPart {
	if n <= 0 {
		return nil
	}
	spacing := (c.h - 2*c.t) / float64(n+1)
	var parts []RenderPart
	for i := 1; i <= n; i++ {
		y := c.t + float64(i)*spacing
		if len(c.comps) == 1 {
			parts = append(parts, c.part(fmt.Sprintf("shelf-%d", i), KindShelf,
				r3.Vec{X: 0, Y: y, Z: c.innerZ}, r3.Vec{X: c.w - 2*c.t, Y: c.t, Z: c.innerDepth}, color))
			continue
		}
		for _, comp := range c.comps {
			p := c.part(fmt.Sprintf("shelf-%d-c%d", i, comp.Index+1), KindShelf,
				r3.Vec{X: comp.Center(), Y: y, Z: c.innerZ}, r3.Vec{X: comp.Width, Y: c.t, Z: c.innerDepth}, color)
			p.Compartment = comp.Index
			parts = append(parts, p)
		}
	}
	return parts
}

func (c carcass) dividers(color string) []RenderPart {
	var parts []RenderPart
	for i := 0; i+1 < len(c.comps); i++ {
		x := c.comps[i].Right + c.t/2
		parts = append(parts, c.part(fmt.Sprintf("divider-%d", i+1), KindDivider,
			r3.Vec{X: x, Y: c.h / 2, Z: c.innerZ}, r3.Vec{X: c.t, Y: c.h - 2*c.t, Z: c.innerDepth}, color))
	}
	return parts
}

func (c carcass) mountingStrips() []RenderPart {
	x := c.w/2 - c.t - MountingStripWidth/2
	size := r3.Vec{X: MountingStripWidth, Y: c.h - 2*MountingStripMargin, Z: c.d - MountingStripInset}
	var parts []RenderPart
	for _, s := range []struct {
		id string
		x  float64
	}{{"strip-left", -x}, {"strip-right", x}} {
		p := c.part(s.id, KindMountingStrip, r3.Vec{X: s.x, Y: c.h / 2, Z: 0}, size, MountingStripColor)
		p.EdgeRadius = 0
		parts = append(parts, p)
	}
	return parts
}
