package cutlist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// Summary aggregates figures for reports.
type Summary struct {
	PartRows   int                  `json:"part_rows"`
	PieceCount int                  `json:"piece_count"`
	SheetCount int                  `json:"sheet_count"`
	Banding    model.BandingOrder   `json:"banding"`
	Thickness  model.ThicknessModel `json:"thickness"`
}

// Summarize computes the report summary with the given banding waste.
func (cl CutList) Summarize(bandingWaste float64, tm model.ThicknessModel) Summary {
	s := Summary{
		PartRows:  len(cl.Parts),
		Banding:   model.OrderBanding(cl.Parts, bandingWaste),
		Thickness: tm,
	}
	for _, p := range cl.Parts {
		s.PieceCount += p.Count
	}
	for _, m := range cl.Materials {
		s.SheetCount += m.Count
	}
	return s
}

// HardwareCount returns the count of a hardware type, 0 when absent.
func (cl CutList) HardwareCount(hwType string) int {
	for _, h := range cl.Hardware {
		if h.Type == hwType {
			return h.Count
		}
	}
	return 0
}

// Filename is the download name of the text export.
func Filename(t model.FurnitureType) string {
	name := string(t)
	if name == "" {
		name = "furniture"
	}
	return name + "-cut-list.txt"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteText writes the plain-text cut list specification.
func WriteText(w io.Writer, cl CutList) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "CUT LIST SPECIFICATION\n\n")

	fmt.Fprint(bw, "MATERIALS:\n")
	for _, m := range cl.Materials {
		fmt.Fprintf(bw, "%s %sx%sx%s (%s) - %d pcs. (%.3f m²)\n",
			m.Type, num(m.Width), num(m.Height), num(m.Thickness), m.Code, m.Count, m.Area)
	}

	fmt.Fprint(bw, "\nHARDWARE:\n")
	for _, h := range cl.Hardware {
		fmt.Fprintf(bw, "%s - %d pcs.\n", h.Type, h.Count)
	}

	fmt.Fprint(bw, "\nPARTS:\n")
	for _, p := range cl.Parts {
		fmt.Fprintf(bw, "No%d - %s x %s (%s) - %d pcs.\n", p.ID, num(p.Width), num(p.Height), p.Description, p.Count)
	}

	fmt.Fprint(bw, "\nSUMMARY:\n")
	fmt.Fprintf(bw, "Total material area: %.3f m²\n", cl.TotalArea)
	fmt.Fprintf(bw, "Total edge banding: %.2f m\n", cl.TotalEdgeBanding)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write cut list: %w", err)
	}
	return nil
}

// Text returns the plain-text cut list specification.
func Text(cl CutList) string {
	var sb strings.Builder
	_ = WriteText(&sb, cl)
	return sb.String()
}
