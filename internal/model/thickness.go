package model

// ThicknessModel records the panel thicknesses used by the renderer and by
// the cut list. The two have never agreed: the 3D model draws 18 mm panels
// while the cut list specifies 16 mm board.
type ThicknessModel struct {
	RenderPanelMM     float64 `json:"render_panel_mm"`
	RenderTableMM     float64 `json:"render_table_mm"`
	RenderInsetBackMM float64 `json:"render_inset_back_mm"`
	CutListBoardMM    float64 `json:"cut_list_board_mm"`
	CutListBackMM     float64 `json:"cut_list_back_mm"`
}

// DefaultThicknessModel returns the thicknesses in production use.
func DefaultThicknessModel() ThicknessModel {
	return ThicknessModel{
		RenderPanelMM:     18,
		RenderTableMM:     20,
		RenderInsetBackMM: 8,
		CutListBoardMM:    16,
		CutListBackMM:     3,
	}
}

// BoardDiscrepancyMM is how much thicker the rendered carcass panel is than
// the board the cut list orders.
func (t ThicknessModel) BoardDiscrepancyMM() float64 {
	return t.RenderPanelMM - t.CutListBoardMM
}

// BackDiscrepancyMM is the same comparison for inset back panels.
func (t ThicknessModel) BackDiscrepancyMM() float64 {
	return t.RenderInsetBackMM - t.CutListBackMM
}
