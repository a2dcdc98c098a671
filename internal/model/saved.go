package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SavedConfiguration is the persisted form of a Configuration.
// Field names match the configurations table.
type SavedConfiguration struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	Name             string            `json:"name"`
	FurnitureType    FurnitureType     `json:"furniture_type"`
	Dimensions       Dimensions        `json:"dimensions"`
	MaterialCategory string            `json:"material_category"`
	MaterialOption   string            `json:"material_option"`
	PatternID        string            `json:"pattern_id,omitempty"`
	Finish           string            `json:"finish"`
	HasDoors         bool              `json:"has_doors"`
	ShelfCount       int               `json:"shelf_count"`
	DoorConfig       DoorConfig        `json:"door_config"`
	DoorDirection    DoorDirection     `json:"door_direction"`
	HasMountingStrip bool              `json:"has_mounting_strip"`
	ColumnCount      int               `json:"column_count"`
	CompartmentDoors []CompartmentDoor `json:"compartment_doors"`
	BackPanelConfig  BackPanelConfig   `json:"back_panel_config"`
	HasWhiteEdges    bool              `json:"has_white_edges"`
	ThumbnailURL     string            `json:"thumbnail_url,omitempty"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        string            `json:"updated_at"`
}

// Current captures the live configuration under a name, ready to persist.
func Current(c Configuration, name string) SavedConfiguration {
	now := time.Now().UTC().Format(time.RFC3339)
	doors := make([]CompartmentDoor, len(c.Options.CompartmentDoors))
	copy(doors, c.Options.CompartmentDoors)
	return SavedConfiguration{
		ID:               uuid.New().String()[:8],
		Name:             name,
		FurnitureType:    c.Type,
		Dimensions:       c.Dimensions,
		MaterialCategory: c.Material.Category,
		MaterialOption:   c.Material.Option,
		PatternID:        c.Material.PatternID,
		Finish:           c.Material.Finish,
		HasDoors:         c.Options.HasDoors,
		ShelfCount:       c.Options.ShelfCount,
		DoorConfig:       c.Options.DoorConfig,
		DoorDirection:    c.Options.DoorDirection,
		HasMountingStrip: c.Options.HasMountingStrip,
		ColumnCount:      c.Options.ColumnCount,
		CompartmentDoors: doors,
		BackPanelConfig:  c.Options.BackPanel,
		HasWhiteEdges:    c.HasWhiteEdges,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Load rebuilds the live configuration. The pattern itself is not resolved;
// callers look PatternID up in the catalogue.
func (s SavedConfiguration) Load() Configuration {
	doors := make([]CompartmentDoor, len(s.CompartmentDoors))
	copy(doors, s.CompartmentDoors)
	return Configuration{
		Type:       s.FurnitureType,
		Dimensions: s.Dimensions,
		Options: StructuralOptions{
			ShelfCount:       s.ShelfCount,
			ColumnCount:      s.ColumnCount,
			HasDoors:         s.HasDoors,
			DoorConfig:       s.DoorConfig,
			DoorDirection:    s.DoorDirection,
			CompartmentDoors: doors,
			HasMountingStrip: s.HasMountingStrip,
			BackPanel:        s.BackPanelConfig,
		},
		Material: MaterialSelection{
			Category:  s.MaterialCategory,
			Option:    s.MaterialOption,
			Finish:    s.Finish,
			PatternID: s.PatternID,
		},
		HasWhiteEdges: s.HasWhiteEdges,
	}
}

// Gallery holds a user's saved configurations.
type Gallery struct {
	Configurations []SavedConfiguration `json:"configurations"`
}

// NewGallery creates an empty gallery.
func NewGallery() Gallery {
	return Gallery{Configurations: []SavedConfiguration{}}
}

// Add appends a configuration, replacing an existing one with the same ID.
func (g *Gallery) Add(c SavedConfiguration) {
	for i := range g.Configurations {
		if g.Configurations[i].ID == c.ID {
			g.Configurations[i] = c
			return
		}
	}
	g.Configurations = append(g.Configurations, c)
}

// Remove removes a configuration by ID. Returns true if found and removed.
func (g *Gallery) Remove(id string) bool {
	for i, c := range g.Configurations {
		if c.ID == id {
			g.Configurations = append(g.Configurations[:i], g.Configurations[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the configuration with the given ID, or nil.
func (g *Gallery) FindByID(id string) *SavedConfiguration {
	for i := range g.Configurations {
		if g.Configurations[i].ID == id {
			return &g.Configurations[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first configuration with the given name, or nil.
func (g *Gallery) FindByName(name string) *SavedConfiguration {
	for i := range g.Configurations {
		if g.Configurations[i].Name == name {
			return &g.Configurations[i]
		}
	}
	return nil
}

// Names returns the configuration names in gallery order.
func (g *Gallery) Names() []string {
	names := make([]string, len(g.Configurations))
	for i, c := range g.Configurations {
		names[i] = c.Name
	}
	return names
}

// Newest returns the configurations sorted by creation time, newest first.
func (g *Gallery) Newest() []SavedConfiguration {
	out := make([]SavedConfiguration, len(g.Configurations))
	copy(out, g.Configurations)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}
