package export

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/engine"
)

// Workbook sheet names.
const (
	SheetParts     = "Parts"
	SheetMaterials = "Materials"
	SheetHardware  = "Hardware"
	SheetNesting   = "Nesting"
)

// ExportXLSX writes the cut list workbook to a file.
func ExportXLSX(path string, cl cutlist.CutList, plan engine.Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	if err := WriteXLSX(f, cl, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteXLSX writes a workbook with one sheet each for parts, materials,
// hardware and the nested placements.
func WriteXLSX(w io.Writer, cl cutlist.CutList, plan engine.Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	partRows := [][]interface{}{{"No", "Description", "Width (mm)", "Height (mm)", "Thickness (mm)", "Qty", "Material", "Edge banding", "Banding (mm)"}}
	for _, p := range cl.Parts {
		partRows = append(partRows, []interface{}{
			p.ID, p.Description, p.Width, p.Height, p.Thickness, p.Count, p.Material,
			p.EdgeBanding.String(), p.BandingLength() * float64(p.Count),
		})
	}

	materialRows := [][]interface{}{{"Material", "Code", "Sheet width (mm)", "Sheet height (mm)", "Thickness (mm)", "Sheets", "Area (m²)", "Nested sheets"}}
	nested := map[string]int{}
	for _, m := range plan.Materials {
		nested[m.Code] = m.Nested
	}
	for _, m := range cl.Materials {
		n := nested[m.Code]
		// shared codes report the nested count on their first line only
		delete(nested, m.Code)
		materialRows = append(materialRows, []interface{}{m.Type, m.Code, m.Width, m.Height, m.Thickness, m.Count, m.Area, n})
	}
	materialRows = append(materialRows,
		[]interface{}{},
		[]interface{}{"Total material area (m²)", cl.TotalArea},
		[]interface{}{"Total edge banding (m)", cl.TotalEdgeBanding},
	)

	hardwareRows := [][]interface{}{{"Fitting", "Count"}}
	for _, h := range cl.Hardware {
		hardwareRows = append(hardwareRows, []interface{}{h.Type, h.Count})
	}

	nestingRows := [][]interface{}{{"Sheet", "Material", "No", "Description", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Rotated"}}
	for i, s := range plan.Result.Sheets {
		for _, p := range s.Placements {
			nestingRows = append(nestingRows, []interface{}{
				i + 1, s.Stock.Material, p.Part.ID, p.Part.Description,
				p.X, p.Y, p.PlacedWidth(), p.PlacedHeight(), p.Rotated,
			})
		}
	}
	for _, p := range plan.Result.UnplacedParts {
		nestingRows = append(nestingRows, []interface{}{"unplaced", p.Material, p.ID, p.Description, "", "", p.Width, p.Height, ""})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetParts, partRows},
		{SheetMaterials, materialRows},
		{SheetHardware, hardwareRows},
		{SheetNesting, nestingRows},
	}

	// The default "Sheet1" becomes the parts sheet.
	if err := f.SetSheetName("Sheet1", SheetParts); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for i, s := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("failed to add sheet %s: %w", s.name, err)
			}
		}
		if err := writeRows(f, s.name, s.rows, header); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
		lastCol, _, err := excelize.SplitCellName(last)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
			return fmt.Errorf("failed to size %s columns: %w", sheet, err)
		}
	}
	return nil
}
