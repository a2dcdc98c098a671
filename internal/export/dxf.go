package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/model"
)

// DXF layer names.
const (
	LayerOutline = "OUTLINE"
	LayerHoles   = "DRILL"

	// partSpacing separates the part outlines along the X axis, mm.
	partSpacing = 50.0
	// EuroScrewDiameter is the drill size marked for confirmat holes, mm.
	EuroScrewDiameter = 5.0
)

// ExportDXF writes one outline per cut-list row, laid out left to right,
// with the drill holes of each part on their own layer.
func ExportDXF(path string, cl cutlist.CutList) error {
	if len(cl.Parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerOutline, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add outline layer: %w", err)
	}
	if _, err := d.AddLayer(LayerHoles, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add drill layer: %w", err)
	}

	x := 0.0
	for _, p := range cl.Parts {
		if p.Width <= 0 || p.Height <= 0 {
			continue
		}
		if err := drawPart(d, p, x); err != nil {
			return fmt.Errorf("failed to draw part %d: %w", p.ID, err)
		}
		x += p.Width + partSpacing
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

func drawPart(d *drawing.Drawing, p model.Part, x0 float64) error {
	if err := d.ChangeLayer(LayerOutline); err != nil {
		return err
	}
	corners := [][2]float64{
		{x0, 0},
		{x0 + p.Width, 0},
		{x0 + p.Width, p.Height},
		{x0, p.Height},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}

	if len(p.Holes) == 0 {
		return nil
	}
	if err := d.ChangeLayer(LayerHoles); err != nil {
		return err
	}
	for _, h := range p.Holes {
		if _, err := d.Circle(x0+h.X, h.Y, 0, EuroScrewDiameter/2); err != nil {
			return err
		}
	}
	return nil
}
