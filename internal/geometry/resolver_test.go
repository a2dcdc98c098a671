package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FurniCraft/internal/model"
)

const eps = 1e-9

func closetInput(shelves, columns int) Input {
	opts := model.DefaultStructuralOptions()
	opts.ShelfCount = shelves
	opts.ColumnCount = columns
	opts.CompartmentDoors = model.ReconcileCompartmentDoors(nil, columns+1)
	return Input{
		Type:       model.TypeCloset,
		Dimensions: model.Dimensions{Width: 80, Height: 180, Depth: 30},
		Options:    opts,
		Color:      "#FFFFFF",
	}
}

func TestClosetPartInventory(t *testing.T) {
	parts := Resolve(closetInput(4, 0))

	assert.Equal(t, 2, CountKind(parts, KindSide))
	assert.Equal(t, 1, CountKind(parts, KindTop))
	assert.Equal(t, 1, CountKind(parts, KindBottom))
	assert.Equal(t, 1, CountKind(parts, KindBack))
	assert.Equal(t, 4, CountKind(parts, KindShelf))
	assert.Equal(t, 0, CountKind(parts, KindDivider))
	assert.Equal(t, 0, CountKind(parts, KindDoor))
	assert.Len(t, parts, 9)

	in := closetInput(4, 0)
	in.Options.HasDoors = true
	in.Options.DoorConfig = model.DoorsTwo
	parts = Resolve(in)
	assert.Len(t, parts, 11)
	assert.Equal(t, 2, CountKind(parts, KindDoor))
}

func TestResolveIsDeterministic(t *testing.T) {
	in := closetInput(3, 1)
	in.Options.HasDoors = true
	in.Options.HasMountingStrip = true
	in.Options.BackPanel.Inset = true
	in.Options.CompartmentDoors = []model.CompartmentDoor{{Type: model.CompartmentDoorDouble}, {Type: model.CompartmentDoorSingleRight}}

	assert.Equal(t, Resolve(in), Resolve(in))
}

func TestPartIDsAreUnique(t *testing.T) {
	in := closetInput(2, 2)
	in.Dimensions.Width = 120
	in.Options.HasDoors = true
	in.Options.HasMountingStrip = true
	in.Options.BackPanel.Inset = true
	in.Options.CompartmentDoors = []model.CompartmentDoor{
		{Type: model.CompartmentDoorDouble},
		{Type: model.CompartmentDoorSingleLeft},
		{Type: model.CompartmentDoorDouble},
	}
	parts := Resolve(in)
	seen := map[string]bool{}
	for _, p := range parts {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestCompartmentWidthsAddUp(t *testing.T) {
	const thickness = 0.018
	for _, w := range []float64{0.3, 0.8, 1.2, 1.6, 2.4} {
		for k := 0; k <= 6; k++ {
			comps := Compartments(w, thickness, k)
			require.Len(t, comps, k+1)
			sum := 0.0
			for _, c := range comps {
				sum += c.Width
			}
			total := sum + float64(k)*thickness + 2*thickness
			assert.InDelta(t, w, total, eps, "w=%g k=%d", w, k)
			assert.InDelta(t, w/2-thickness, comps[k].Right, eps)
		}
	}
}

func TestCompartmentsMatchDividers(t *testing.T) {
	in := closetInput(0, 2)
	in.Dimensions.Width = 120
	parts := Resolve(in)
	dividers := FilterKind(parts, KindDivider)
	require.Len(t, dividers, 2)

	comps := Compartments(1.2, DefaultPanelThickness, 2)
	for i, d := range dividers {
		assert.InDelta(t, comps[i].Right, d.Min().X, eps)
		assert.InDelta(t, comps[i+1].Left, d.Max().X, eps)
		assert.InDelta(t, 1.8-2*DefaultPanelThickness, d.Size.Y, eps)
	}
}

func TestShelfSpacing(t *testing.T) {
	for _, n := range []int{1, 2, 4, 9, 40} {
		parts := Resolve(closetInput(n, 0))
		shelves := FilterKind(parts, KindShelf)
		require.Len(t, shelves, n)

		top, _ := FindByID(parts, "top")
		bottom, _ := FindByID(parts, "bottom")
		floor := bottom.Max().Y
		ceiling := top.Min().Y

		gap := shelves[0].Position.Y - floor
		for i, s := range shelves {
			assert.Greater(t, s.Position.Y, floor)
			assert.Less(t, s.Position.Y, ceiling)
			if i > 0 {
				assert.Greater(t, s.Position.Y, shelves[i-1].Position.Y)
				assert.InDelta(t, gap, s.Position.Y-shelves[i-1].Position.Y, eps)
			}
		}
		assert.InDelta(t, gap, ceiling-shelves[n-1].Position.Y, eps)
	}
}

func TestShelvesPerCompartment(t *testing.T) {
	in := closetInput(3, 1)
	parts := Resolve(in)
	shelves := FilterKind(parts, KindShelf)
	require.Len(t, shelves, 6)
	comps := Compartments(0.8, DefaultPanelThickness, 1)
	for _, s := range shelves {
		assert.InDelta(t, comps[s.Compartment].Width, s.Size.X, eps)
		assert.InDelta(t, comps[s.Compartment].Center(), s.Position.X, eps)
	}
}

func TestBackPanelInset(t *testing.T) {
	flush := Resolve(closetInput(0, 0))
	in := closetInput(0, 0)
	in.Options.BackPanel.Inset = true
	inset := Resolve(in)

	fb, ok := FindByID(flush, "back")
	require.True(t, ok)
	ib, ok := FindByID(inset, "back")
	require.True(t, ok)

	assert.InDelta(t, 0.018, fb.Size.Z, eps)
	assert.InDelta(t, 0.008, ib.Size.Z, eps)
	assert.InDelta(t, -0.15, fb.Min().Z, eps)
	assert.InDelta(t, 0.016, ib.Min().Z-fb.Min().Z, eps)
	assert.InDelta(t, fb.Size.X+2*InsetBackExtension, ib.Size.X, eps)

	assert.Equal(t, 0, CountKind(flush, KindNotchFill))
	assert.Equal(t, 2, CountKind(inset, KindNotchFill))

	in.Options.BackPanel.NoOffset = true
	noOffset, _ := FindByID(Resolve(in), "back")
	assert.InDelta(t, fb.Min().Z, noOffset.Min().Z, eps)
}

func TestTopBottomMeetBackPanel(t *testing.T) {
	for _, inset := range []bool{false, true} {
		in := closetInput(1, 0)
		in.Options.BackPanel.Inset = inset
		parts := Resolve(in)
		back, _ := FindByID(parts, "back")
		for _, id := range []string{"top", "bottom", "shelf-1"} {
			p, ok := FindByID(parts, id)
			require.True(t, ok, id)
			assert.InDelta(t, 0.15, p.Max().Z, eps, id)
			assert.InDelta(t, back.Max().Z, p.Min().Z, eps, id)
		}
	}
}

func TestDoorLeafCounts(t *testing.T) {
	in := closetInput(0, 0)
	in.Options.HasDoors = true

	in.Options.DoorConfig = model.DoorsTwo
	doors := Doors(Resolve(in))
	require.Len(t, doors, 2)
	assert.Equal(t, HingeLeft, doors[0].Door.Side)
	assert.InDelta(t, -0.4, doors[0].Door.Pivot.X, eps)
	assert.Equal(t, HingeRight, doors[1].Door.Side)
	assert.InDelta(t, 0.4, doors[1].Door.Pivot.X, eps)

	in.Options.DoorConfig = model.DoorsOne
	in.Options.DoorDirection = model.HingeRight
	doors = Doors(Resolve(in))
	require.Len(t, doors, 1)
	assert.InDelta(t, 0.8, doors[0].Size.X, eps)
	assert.Equal(t, HingeRight, doors[0].Door.Side)
	assert.InDelta(t, 0.4, doors[0].Door.Pivot.X, eps)
	assert.Less(t, doors[0].Door.HandleOffset.X, 0.0)

	in = closetInput(0, 3)
	in.Dimensions.Width = 120
	in.Options.HasDoors = true
	in.Options.CompartmentDoors = []model.CompartmentDoor{
		{Type: model.CompartmentDoorDouble},
		{Type: model.CompartmentDoorNone},
		{Type: model.CompartmentDoorSingleLeft},
		{Type: model.CompartmentDoorSingleRight},
	}
	doors = Doors(Resolve(in))
	require.Len(t, doors, 4)
	comps := Compartments(1.2, DefaultPanelThickness, 3)
	assert.InDelta(t, comps[0].Left, doors[0].Door.Pivot.X, eps)
	assert.InDelta(t, comps[0].Right, doors[1].Door.Pivot.X, eps)
	assert.InDelta(t, comps[2].Left, doors[2].Door.Pivot.X, eps)
	assert.InDelta(t, comps[3].Right, doors[3].Door.Pivot.X, eps)
	for _, d := range doors {
		assert.InDelta(t, 1.8-2*DefaultPanelThickness, d.Size.Y, eps)
		assert.InDelta(t, 0.15+DoorOutset, d.Position.Z, eps)
	}
}

func TestMissingCompartmentDoorsAreTolerated(t *testing.T) {
	in := closetInput(0, 1)
	in.Options.HasDoors = true
	in.Options.CompartmentDoors = nil
	assert.Empty(t, Doors(Resolve(in)))
}

func TestMountingStrips(t *testing.T) {
	in := closetInput(0, 0)
	in.Options.HasMountingStrip = true
	strips := FilterKind(Resolve(in), KindMountingStrip)
	require.Len(t, strips, 2)
	for _, s := range strips {
		assert.Equal(t, MountingStripColor, s.Color)
		assert.InDelta(t, 0.05, s.Min().Y, eps)
		assert.InDelta(t, 1.75, s.Max().Y, eps)
	}
	assert.InDelta(t, -0.4+DefaultPanelThickness, strips[0].Min().X, eps)
}

func TestTableGeometry(t *testing.T) {
	parts := Resolve(Input{Type: model.TypeTable, Dimensions: model.Dimensions{Width: 120, Height: 75, Depth: 80}})
	require.Len(t, parts, 5)
	top := parts[0]
	assert.Equal(t, KindTabletop, top.Kind)
	assert.InDelta(t, 0.02, top.Size.Y, eps)
	assert.InDelta(t, 0.75, top.Max().Y, eps)
	assert.Equal(t, model.DefaultColor, top.Color)

	for _, leg := range FilterKind(parts, KindLeg) {
		assert.InDelta(t, 0.73, leg.Size.Y, eps)
		assert.InDelta(t, 0.0, leg.Min().Y, eps)
		assert.InDelta(t, 0.6, math.Abs(leg.Position.X)+LegSize/2, eps)
		assert.InDelta(t, 0.4, math.Abs(leg.Position.Z)+LegSize/2, eps)
	}
}

func TestPatternThicknessOverrides(t *testing.T) {
	in := closetInput(0, 0)
	in.PanelThicknessMM = 25
	parts := Resolve(in)
	side, _ := FindByID(parts, "side-left")
	assert.InDelta(t, 0.025, side.Size.X, eps)

	// the standard back keeps its configured thickness
	back, _ := FindByID(parts, "back")
	assert.InDelta(t, model.DefaultBackPanelConfig().Thickness, back.Size.Z, eps)
}

func TestDegenerateInputsDoNotPanic(t *testing.T) {
	in := closetInput(5, 10)
	in.Dimensions = model.Dimensions{Width: 10, Height: 1, Depth: 0}
	in.Options.HasDoors = true
	in.Options.HasMountingStrip = true
	assert.NotPanics(t, func() { Resolve(in) })

	assert.NotPanics(t, func() { Resolve(Input{Type: "wardrobe"}) })
}

func TestInputFor(t *testing.T) {
	cfg := model.NewConfiguration(model.TypeCloset)
	p := model.Pattern{ID: "p", ColorHex: "#010203", ThicknessMM: 22}
	cfg.SetPattern(&p)
	tm := model.DefaultThicknessModel()
	in := InputFor(cfg, tm)
	assert.Equal(t, "#010203", in.Color)
	assert.Equal(t, 22.0, in.PanelThicknessMM)
	assert.Equal(t, tm, in.Thickness)
}

func TestConfiguredRenderThickness(t *testing.T) {
	tm := model.DefaultThicknessModel()
	tm.RenderPanelMM = 16
	tm.RenderTableMM = 25
	tm.RenderInsetBackMM = 5

	in := closetInput(1, 0)
	in.Thickness = tm
	in.Options.BackPanel.Inset = true
	parts := Resolve(in)
	side, _ := FindByID(parts, "side-left")
	assert.InDelta(t, 0.016, side.Size.X, eps)
	back, _ := FindByID(parts, "back")
	assert.InDelta(t, 0.005, back.Size.Z, eps)

	// the rendered panel now matches the board the cut list orders
	assert.Equal(t, 0.0, tm.BoardDiscrepancyMM())
	assert.InDelta(t, tm.CutListBoardMM/1000, side.Size.X, eps)

	// a pattern thickness still wins
	in.PanelThicknessMM = 22
	side, _ = FindByID(Resolve(in), "side-left")
	assert.InDelta(t, 0.022, side.Size.X, eps)

	table := Input{Type: model.TypeTable, Dimensions: model.Dimensions{Width: 120, Height: 75, Depth: 80}, Thickness: tm}
	assert.InDelta(t, 0.025, Resolve(table)[0].Size.Y, eps)
}

func TestDeskTopUsesPanelThickness(t *testing.T) {
	desk := Input{Type: model.TypeDesk, Dimensions: model.Dimensions{Width: 140, Height: 75, Depth: 60}}
	assert.Equal(t, DefaultPanelThickness, PanelThickness(desk))
	top := Resolve(desk)[0]
	assert.Equal(t, KindTabletop, top.Kind)
	assert.InDelta(t, 0.018, top.Size.Y, eps)
	assert.InDelta(t, 0.75, top.Max().Y, eps)

	assert.Equal(t, TablePanelThickness, PanelThickness(Input{Type: model.TypeTable}))
}
