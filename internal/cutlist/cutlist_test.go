package cutlist

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FurniCraft/internal/model"
)

func closetRequest(doors bool, shelves, columns int) Request {
	return Request{
		Type:             model.TypeCloset,
		Dimensions:       model.Dimensions{Width: 80, Height: 180, Depth: 30},
		HasDoors:         doors,
		ShelfCount:       shelves,
		ColumnCount:      columns,
		MaterialCode:     "U780_9",
		DoorMaterialCode: "H1334_9",
		BackPanelCode:    "W1000_9",
	}
}

func findPart(t *testing.T, cl CutList, desc string) model.Part {
	t.Helper()
	for _, p := range cl.Parts {
		if p.Description == desc {
			return p
		}
	}
	t.Fatalf("part %q not found", desc)
	return model.Part{}
}

func TestClosetHardware(t *testing.T) {
	cl := Generate(closetRequest(true, 4, 0))
	assert.Equal(t, 20, cl.HardwareCount(HardwareEuroScrews))
	assert.Equal(t, 4, cl.HardwareCount(HardwareDoorHinges))

	noDoors := Generate(closetRequest(false, 4, 0))
	assert.Equal(t, 0, noDoors.HardwareCount(HardwareDoorHinges))
	assert.Len(t, noDoors.Hardware, 1)
}

func TestClosetParts(t *testing.T) {
	cl := Generate(closetRequest(true, 4, 0))
	require.Len(t, cl.Parts, 5)

	side := findPart(t, cl, "Side panel")
	assert.Equal(t, 300.0, side.Width)
	assert.Equal(t, 1800.0, side.Height)
	assert.Equal(t, 16.0, side.Thickness)
	assert.Equal(t, 2, side.Count)
	assert.Len(t, side.Holes, 4)
	assert.Equal(t, model.Hole{X: 268, Y: 1768, Kind: model.HoleEuroScrew}, side.Holes[3])

	tb := findPart(t, cl, "Top/Bottom panel")
	assert.Equal(t, 768.0, tb.Width)
	assert.Equal(t, 698.0, tb.Holes[1].X)

	shelf := findPart(t, cl, "Shelf")
	assert.Equal(t, 4, shelf.Count)
	assert.Equal(t, 290.0, shelf.Height)

	back := findPart(t, cl, "Back panel")
	assert.Equal(t, "W1000_9", back.Material)
	assert.Equal(t, 778.0, back.Width)
	assert.Equal(t, 1778.0, back.Height)
	assert.Equal(t, 3.0, back.Thickness)
	assert.False(t, back.EdgeBanding.HasAny())

	door := findPart(t, cl, "Door")
	assert.Equal(t, "H1334_9", door.Material)
	assert.Equal(t, 2, door.Count)
	assert.Equal(t, 380.0, door.Width)
	assert.Equal(t, 1764.0, door.Height)
	assert.Equal(t, 4, door.EdgeBanding.EdgeCount())

	for i, p := range cl.Parts {
		assert.Equal(t, i+1, p.ID)
	}
}

func TestTotalsAndSheets(t *testing.T) {
	cl := Generate(closetRequest(true, 4, 0))
	require.Len(t, cl.Materials, 3)

	board, doors, back := cl.Materials[0], cl.Materials[1], cl.Materials[2]
	assert.Equal(t, "U780_9", board.Code)
	assert.InDelta(t, 2.43168, board.Area, 1e-9)
	assert.Equal(t, 1, board.Count)
	assert.Equal(t, "H1334_9", doors.Code)
	assert.InDelta(t, 1.34064, doors.Area, 1e-9)
	assert.Equal(t, "W1000_9", back.Code)
	assert.InDelta(t, 1.383284, back.Area, 1e-9)
	assert.Equal(t, 2745.0, back.Width)

	assert.InDelta(t, 5.155604, cl.TotalArea, 1e-9)
	assert.InDelta(t, 23.12, cl.TotalEdgeBanding, 1e-9)
}

func TestAreaConservation(t *testing.T) {
	for _, doors := range []bool{false, true} {
		for shelves := 0; shelves <= 6; shelves += 3 {
			for cols := 0; cols <= 4; cols++ {
				req := closetRequest(doors, shelves, cols)
				req.Dimensions.Width = 160
				cl := Generate(req)
				var sum float64
				for _, m := range cl.Materials {
					sum += m.Area
				}
				assert.InDelta(t, sum, cl.TotalArea, 1e-9)

				var partArea float64
				for _, p := range cl.Parts {
					partArea += p.Area() * float64(p.Count)
				}
				assert.InDelta(t, partArea, cl.TotalArea, 1e-9)
			}
		}
	}
}

func TestSheetCountIsCeilOfArea(t *testing.T) {
	req := closetRequest(false, 10, 4)
	req.Dimensions = model.Dimensions{Width: 240, Height: 240, Depth: 60}
	cl := Generate(req)
	board := cl.Materials[0]
	sheet := 2750.0 * 1830 / 1e6
	assert.Greater(t, board.Area, sheet)
	assert.Equal(t, int(board.Area/sheet)+1, board.Count)
}

func TestColumnsShelvesAndDividers(t *testing.T) {
	cl := Generate(closetRequest(true, 2, 1))
	shelf := findPart(t, cl, "Shelf")
	assert.Equal(t, 4, shelf.Count)
	assert.Equal(t, 384.0, shelf.Width)

	div := findPart(t, cl, "Vertical divider")
	assert.Equal(t, 1, div.Count)
	assert.Equal(t, 290.0, div.Width)
	assert.Equal(t, 1768.0, div.Height)
	// front along the height plus top and bottom along the depth
	assert.Equal(t, 1768.0+2*290, div.BandingLength())

	door := findPart(t, cl, "Door")
	assert.Equal(t, 2, door.Count)
	assert.Equal(t, 8+4+8+2, cl.HardwareCount(HardwareEuroScrews))
}

func TestDoorCount(t *testing.T) {
	assert.Equal(t, 2, DoorCount(0))
	assert.Equal(t, 2, DoorCount(1))
	assert.Equal(t, 4, DoorCount(3))
}

func TestDefaultsAndDegenerateInput(t *testing.T) {
	cl := Generate(Request{Type: model.TypeCabinet, Dimensions: model.Dimensions{}, ShelfCount: -3, ColumnCount: -1})
	assert.Equal(t, DefaultMaterialCode, cl.Materials[0].Code)
	assert.Equal(t, DefaultBackPanelCode, cl.Materials[1].Code)
	assert.Equal(t, 0, cl.Materials[0].Count)
	assert.NotPanics(t, func() { Text(cl) })
}

func TestSharedCodesAreNotDoubleCounted(t *testing.T) {
	req := closetRequest(true, 0, 0)
	req.DoorMaterialCode = req.MaterialCode
	cl := Generate(req)
	var sum float64
	for _, m := range cl.Materials {
		sum += m.Area
	}
	assert.InDelta(t, sum, cl.TotalArea, 1e-9)
	assert.Equal(t, 0.0, cl.Materials[1].Area)
}

func TestTextExport(t *testing.T) {
	cl := Generate(closetRequest(true, 4, 0))
	text := Text(cl)

	assert.True(t, strings.HasPrefix(text, "CUT LIST SPECIFICATION\n\nMATERIALS:\n"))
	assert.Contains(t, text, "Laminated Particle Board (LDSB) 2750x1830x16 (U780_9) - 1 pcs. (2.432 m²)\n")
	assert.Contains(t, text, "Particle Board (DVP) 2745x1700x3 (W1000_9) - 1 pcs. (1.383 m²)\n")
	assert.Contains(t, text, "\nHARDWARE:\nEuro screws - 20 pcs.\nDoor hinges - 4 pcs.\n")
	assert.Contains(t, text, "\nPARTS:\nNo1 - 300 x 1800 (Side panel) - 2 pcs.\n")
	assert.Contains(t, text, "No2 - 768 x 300 (Top/Bottom panel) - 2 pcs.\n")
	assert.Contains(t, text, "No3 - 768 x 290 (Shelf) - 4 pcs.\n")
	assert.Contains(t, text, "No4 - 778 x 1778 (Back panel) - 1 pcs.\n")
	assert.Contains(t, text, "No5 - 380 x 1764 (Door) - 2 pcs.\n")

	// every physical piece is accounted for in the parts block
	pieces := 0
	for _, m := range regexp.MustCompile(`(?m)^No\d+ - .* - (\d+) pcs\.$`).FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		pieces += n
	}
	assert.Equal(t, 11, pieces)
	assert.True(t, strings.HasSuffix(text, "SUMMARY:\nTotal material area: 5.156 m²\nTotal edge banding: 23.12 m\n"))

	assert.Equal(t, "closet-cut-list.txt", Filename(model.TypeCloset))
	assert.Equal(t, "furniture-cut-list.txt", Filename(""))
}

func TestSummarize(t *testing.T) {
	cl := Generate(closetRequest(true, 4, 0))
	s := cl.Summarize(0, model.DefaultThicknessModel())
	assert.Equal(t, 5, s.PartRows)
	assert.Equal(t, 2+2+4+1+2, s.PieceCount)
	assert.Equal(t, 3, s.SheetCount)
	assert.InDelta(t, cl.TotalEdgeBanding, s.Banding.LengthM, 1e-9)
	assert.Len(t, s.Banding.Runs, 4)
	assert.Equal(t, 10, s.Banding.Pieces)
}

func TestRequestFor(t *testing.T) {
	c := model.NewConfiguration(model.TypeSideboard)
	c.SetColumnCount(2)
	c.Options.HasDoors = true
	req := RequestFor(c, model.DefaultAppConfig())
	assert.Equal(t, 2, req.ColumnCount)
	assert.True(t, req.HasDoors)
	assert.Equal(t, "H1334_9", req.DoorMaterialCode)
}
