package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/model"
)

// DefaultInventoryPath returns the default file path for the sheet presets.
// This is located at ~/.furnicraft/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	if inv.Sheets == nil {
		inv.Sheets = []model.SheetPreset{}
	}
	return inv, nil
}

// ImportInventory merges the presets of another inventory file into
// existing. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return mergeInventory(existing, imported), nil
}

func mergeInventory(existing, imported model.Inventory) model.Inventory {
	ids := make(map[string]bool, len(existing.Sheets))
	for _, s := range existing.Sheets {
		ids[s.ID] = true
	}
	for _, s := range imported.Sheets {
		if !ids[s.ID] {
			existing.Sheets = append(existing.Sheets, s)
			ids[s.ID] = true
		}
	}
	return existing
}

// CutListOptions builds cut-list stock options from the inventory. The
// first board and back presets replace the standard sheet formats.
func CutListOptions(inv model.Inventory, tm model.ThicknessModel) cutlist.Options {
	opts := cutlist.DefaultOptions()
	opts.Thickness = tm
	if p := inv.FirstOfKind(model.SheetBoard); p != nil {
		opts.BoardSheet = *p
	}
	if p := inv.FirstOfKind(model.SheetBack); p != nil {
		opts.BackSheet = *p
	}
	return opts
}
