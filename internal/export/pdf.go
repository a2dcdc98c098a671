// Package export renders cut lists and their nesting plans to PDF, label
// sheets, spreadsheets and DXF drawings.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/engine"
	"github.com/piwi3910/FurniCraft/internal/model"
)

// partColor represents an RGB color for a placed part.
type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 6.0
)

// ExportPDF writes the cut list and its nesting plan to a PDF file.
func ExportPDF(path string, cl cutlist.CutList, plan engine.Plan, settings model.CutSettings) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PDF: %w", err)
	}
	if err := WritePDF(f, cl, plan, settings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePDF renders a cut-list page, one page per nested sheet and a
// summary page.
func WritePDF(w io.Writer, cl cutlist.CutList, plan engine.Plan, settings model.CutSettings) error {
	if len(cl.Parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderCutListPage(pdf, cl)

	for i, sheet := range plan.Result.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, sheet, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, cl, plan, settings)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// renderCutListPage draws the purchase list, the part table and hardware.
func renderCutListPage(pdf *fpdf.Fpdf, cl cutlist.CutList) {
	furniture := string(cl.FurnitureType)
	if furniture == "" {
		furniture = "furniture"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut List: "+furniture, "", 0, "L", false, 0, "")

	y := marginTop + 14
	y = drawTable(pdf, y, "Materials",
		[]float64{80, 30, 50, 25, 20, 30},
		[]string{"Material", "Code", "Sheet", "Thickness", "Sheets", "Area"},
		materialRows(cl))

	y += 4
	y = drawTable(pdf, y, "Parts",
		[]float64{12, 60, 60, 15, 35, 45},
		[]string{"No", "Description", "Size (mm)", "Qty", "Material", "Edge banding"},
		partRows(cl))

	y += 4
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Hardware", "", 0, "L", false, 0, "")
	y += 7
	pdf.SetFont("Helvetica", "", 9)
	for _, h := range cl.Hardware {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(120, 5, fmt.Sprintf("%s - %d pcs.", h.Type, h.Count), "", 0, "L", false, 0, "")
		y += 5
	}

	y += 3
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft, y)
	total := fmt.Sprintf("Total material area: %.3f m²   Total edge banding: %.2f m", cl.TotalArea, cl.TotalEdgeBanding)
	pdf.CellFormat(200, 5, pdf.UnicodeTranslatorFromDescriptor("")(total), "", 0, "L", false, 0, "")
}

func materialRows(cl cutlist.CutList) [][]string {
	rows := make([][]string, 0, len(cl.Materials))
	for _, m := range cl.Materials {
		rows = append(rows, []string{
			m.Type,
			m.Code,
			fmt.Sprintf("%.0f x %.0f mm", m.Width, m.Height),
			fmt.Sprintf("%.0f mm", m.Thickness),
			strconv.Itoa(m.Count),
			fmt.Sprintf("%.3f m2", m.Area),
		})
	}
	return rows
}

func partRows(cl cutlist.CutList) [][]string {
	rows := make([][]string, 0, len(cl.Parts))
	for _, p := range cl.Parts {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Description,
			fmt.Sprintf("%.0f x %.0f x %.0f", p.Width, p.Height, p.Thickness),
			strconv.Itoa(p.Count),
			p.Material,
			p.EdgeBanding.String(),
		})
	}
	return rows
}

// drawTable draws a titled table with a shaded header row and returns the
// y position below it. Rows that would run off the page are dropped.
func drawTable(pdf *fpdf.Fpdf, y float64, title string, widths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if y+rowHeight > pageHeight-marginBottom {
			break
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(widths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			x += widths[j]
		}
		y += rowHeight
	}
	return y
}

// renderSheetPage draws a single nested sheet on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.SheetResult, sheetNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s %s (%.0f x %.0f mm)", sheetNum, sheet.Stock.Label, sheet.Stock.Material, sheet.Stock.Width, sheet.Stock.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Used area: %s mm2 | Total area: %s mm2 | Efficiency: %.1f%%",
		len(sheet.Placements), humanize.Commaf(math.Round(sheet.UsedArea())),
		humanize.Commaf(math.Round(sheet.TotalArea())), sheet.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	if sheet.Stock.Width <= 0 || sheet.Stock.Height <= 0 {
		return
	}
	scale := math.Min(drawWidth/sheet.Stock.Width, drawHeight/sheet.Stock.Height)

	canvasW := sheet.Stock.Width * scale
	canvasH := sheet.Stock.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Board background
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range sheet.Placements {
		col := partColors[i%len(partColors)]
		pw := p.PlacedWidth() * scale
		ph := p.PlacedHeight() * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		drawHoles(pdf, p, scale, px, py)

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := fmt.Sprintf("No%d", p.Part.ID)
			dims := fmt.Sprintf("%.0fx%.0f", p.Part.Width, p.Part.Height)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sheet.Stock, offsetX, offsetY, canvasW, canvasH)
	drawPartsLegend(pdf, sheet, offsetY+canvasH+5)
}

// holePosition maps a hole from part coordinates to sheet coordinates
// relative to the placement origin. Rotated parts are turned clockwise.
func holePosition(p model.Placement, h model.Hole) (float64, float64) {
	if p.Rotated {
		return p.Part.Height - h.Y, h.X
	}
	return h.X, h.Y
}

func drawHoles(pdf *fpdf.Fpdf, p model.Placement, scale, px, py float64) {
	if len(p.Part.Holes) == 0 {
		return
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.1)
	r := math.Max(0.4, 3.5*scale)
	for _, h := range p.Part.Holes {
		hx, hy := holePosition(p, h)
		pdf.Circle(px+hx*scale, py+hy*scale, r, "D")
	}
}

// drawDimensionAnnotations adds width and height labels outside the sheet.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, stock model.StockSheet, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", stock.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", stock.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPartsLegend renders a compact legend of placed parts below the sheet.
func drawPartsLegend(pdf *fpdf.Fpdf, sheet model.SheetResult, startY float64) {
	if len(sheet.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Parts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range sheet.Placements {
		col := partColors[i%len(partColors)]
		label := fmt.Sprintf("No%d %s (%.0fx%.0f)", p.Part.ID, p.Part.Description, p.Part.Width, p.Part.Height)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage compares the area estimate with the nested sheet count
// and lists the nesting settings.
func renderSummaryPage(pdf *fpdf.Fpdf, cl cutlist.CutList, plan engine.Plan, settings model.CutSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Nesting Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	summaryItems := []struct {
		label string
		value string
	}{
		{"Total Sheets Used", strconv.Itoa(len(plan.Result.Sheets))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", plan.Result.TotalEfficiency())},
		{"Total Parts Placed", strconv.Itoa(countParts(plan.Result))},
		{"Unplaced Parts", strconv.Itoa(len(plan.Result.UnplacedParts))},
		{"Total Edge Banding", fmt.Sprintf("%.2f m", cl.TotalEdgeBanding)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	rows := make([][]string, 0, len(plan.Materials))
	for _, m := range plan.Materials {
		rows = append(rows, []string{
			m.Code,
			m.Type,
			strconv.Itoa(m.Estimated),
			strconv.Itoa(m.Nested),
			fmt.Sprintf("%.1f%%", m.Efficiency),
		})
	}
	y = drawTable(pdf, y, "Sheets per Material",
		[]float64{30, 90, 35, 35, 35},
		[]string{"Code", "Material", "Estimated", "Nested", "Efficiency"},
		rows)

	if len(plan.Result.UnplacedParts) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Parts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, part := range plan.Result.UnplacedParts {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- No%d %s: %.0f x %.0f mm", part.ID, part.Description, part.Width, part.Height)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cut Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Kerf Width", fmt.Sprintf("%.1f mm", settings.KerfWidth)},
		{"Edge Trim", fmt.Sprintf("%.1f mm", settings.EdgeTrim)},
		{"Guillotine Cuts", yesNo(settings.GuillotineOnly)},
		{"Rotation Allowed", yesNo(settings.AllowRotation)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by FurniCraft", "", 0, "C", false, 0, "")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// countParts returns the total number of placed parts across all sheets.
func countParts(result model.OptimizeResult) int {
	total := 0
	for _, s := range result.Sheets {
		total += len(s.Placements)
	}
	return total
}
