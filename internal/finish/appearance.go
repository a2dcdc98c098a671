package finish

import "github.com/piwi3910/FurniCraft/internal/model"

// Texture references the image maps of a pattern. URLs are passed through
// untouched; loading them is the renderer's business.
type Texture struct {
	ColorURL     string  `json:"color_url"`
	NormalURL    string  `json:"normal_url,omitempty"`
	RoughnessURL string  `json:"roughness_url,omitempty"`
	RepeatX      float64 `json:"repeat_x"`
	RepeatY      float64 `json:"repeat_y"`
}

// Appearance is everything the renderer needs to shade a panel.
type Appearance struct {
	Color      string     `json:"color"`
	Finish     Type       `json:"finish"`
	Texture    *Texture   `json:"texture,omitempty"`
	Properties Properties `json:"properties"`
}

// ForSelection resolves the appearance of a material selection. A missing or
// not yet loaded pattern gives a flat colour from the category table.
func ForSelection(sel model.MaterialSelection) Appearance {
	a := Appearance{
		Color:  model.SelectedColor(sel),
		Finish: Solid,
	}
	if p := sel.Pattern; p != nil {
		n := p.Normalized()
		a.Finish = Parse(n.FinishType)
		if n.TextureURL != "" {
			a.Texture = &Texture{
				ColorURL:     n.TextureURL,
				NormalURL:    n.NormalMapURL,
				RoughnessURL: n.RoughnessURL,
				RepeatX:      n.TextureRepeatX,
				RepeatY:      n.TextureRepeatY,
			}
		}
	} else if sel.Category == model.CategorySolidWood {
		a.Finish = Parse(sel.Finish)
	}
	a.Properties = Resolve(a.Finish)
	return a
}
