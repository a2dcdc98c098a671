// Package finish maps surface finish names to physically based material
// parameters for the renderer.
package finish

import "strings"

// Type is a closed set of surface finishes.
type Type string

const (
	Solid    Type = "solid"
	Wood     Type = "wood"
	Marble   Type = "marble"
	Metal    Type = "metal"
	Fabric   Type = "fabric"
	Concrete Type = "concrete"
	Laminate Type = "laminate"
	Veneer   Type = "veneer"
	Glossy   Type = "glossy"
	Matte    Type = "matte"
	Oiled    Type = "oiled"
	Brushed  Type = "brushed"
	Polished Type = "polished"
	Natural  Type = "natural"
)

// All lists every finish type.
var All = []Type{Solid, Wood, Marble, Metal, Fabric, Concrete, Laminate, Veneer, Glossy, Matte, Oiled, Brushed, Polished, Natural}

// Parse converts a catalogue string to a Type. Unknown names are Solid.
func Parse(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All {
		if t == known {
			return t
		}
	}
	return Solid
}

// Properties are the material parameters the renderer consumes.
type Properties struct {
	Roughness          float64 `json:"roughness"`
	Metalness          float64 `json:"metalness"`
	Clearcoat          float64 `json:"clearcoat"`
	ClearcoatRoughness float64 `json:"clearcoat_roughness"`
	NormalScale        float64 `json:"normal_scale"`
	EnvMapIntensity    float64 `json:"env_map_intensity"`
}

// Physical reports whether the finish needs a clearcoat-capable material.
func (p Properties) Physical() bool {
	return p.Clearcoat > 0
}

func solid() Properties {
	return Properties{
		Roughness:       0.5,
		Metalness:       0,
		NormalScale:     1,
		EnvMapIntensity: 1,
	}
}

// Resolve returns the material parameters for t.
func Resolve(t Type) Properties {
	p := solid()
	switch t {
	case Glossy:
		p.Roughness, p.Metalness = 0.1, 0.2
		p.Clearcoat, p.ClearcoatRoughness = 0.8, 0.1
		p.EnvMapIntensity = 1.5
	case Matte:
		p.Roughness, p.Metalness = 0.9, 0
	case Oiled:
		p.Roughness = 0.5
		p.Clearcoat = 0.2
	case Brushed:
		p.Roughness, p.Metalness = 0.3, 0.6
		p.NormalScale = 0.7
	case Polished:
		p.Roughness = 0.1
		p.Clearcoat, p.ClearcoatRoughness = 0.9, 0.05
		p.EnvMapIntensity = 2.0
	case Natural:
		p.Roughness, p.Metalness = 0.7, 0
	case Wood:
		p.Roughness, p.Metalness = 0.7, 0
		p.NormalScale = 0.5
	case Marble:
		p.Roughness, p.Metalness = 0.2, 0.1
		p.Clearcoat, p.ClearcoatRoughness = 0.8, 0.1
		p.EnvMapIntensity = 1.5
	case Metal:
		p.Roughness, p.Metalness = 0.2, 0.8
		p.EnvMapIntensity = 2.0
	case Fabric:
		p.Roughness, p.Metalness = 0.9, 0
	case Concrete:
		p.Roughness, p.Metalness = 0.8, 0.1
	case Laminate:
		p.Roughness, p.Metalness = 0.4, 0
		p.Clearcoat = 0.3
	case Veneer:
		p.Roughness, p.Metalness = 0.6, 0
		p.Clearcoat = 0.3
	case Solid:
	default:
	}
	return p
}

// ResolveName is Resolve(Parse(s)).
func ResolveName(s string) Properties {
	return Resolve(Parse(s))
}
