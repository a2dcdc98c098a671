package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// DefaultGalleryPath returns the default file path for locally saved
// configurations, ~/.furnicraft/gallery.json.
func DefaultGalleryPath() string {
	return filepath.Join(DefaultConfigDir(), "gallery.json")
}

// SaveGallery writes the gallery to the specified JSON file.
func SaveGallery(path string, g model.Gallery) error {
	return writeJSON(path, g)
}

// LoadGallery reads the gallery from the specified JSON file.
// If the file does not exist, it returns an empty gallery.
func LoadGallery(path string) (model.Gallery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewGallery(), nil
		}
		return model.Gallery{}, err
	}
	var g model.Gallery
	if err := json.Unmarshal(data, &g); err != nil {
		return model.Gallery{}, err
	}
	if g.Configurations == nil {
		g.Configurations = []model.SavedConfiguration{}
	}
	return g, nil
}
