package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/FurniCraft/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".furnicraft" {
		t.Errorf("expected parent dir .furnicraft, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_inventory.json")

	inv := model.Inventory{
		Sheets: []model.SheetPreset{
			model.NewSheetPreset("Oak veneer 2500x1250", model.SheetBoard, "Veneered MDF", 2500, 1250, 19),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(loaded.Sheets))
	}
	s := loaded.Sheets[0]
	if s.Name != "Oak veneer 2500x1250" {
		t.Errorf("expected name 'Oak veneer 2500x1250', got %q", s.Name)
	}
	if s.Kind != model.SheetBoard || s.Thickness != 19 {
		t.Errorf("unexpected preset %+v", s)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	defaults := model.DefaultInventory()
	if len(inv.Sheets) != len(defaults.Sheets) {
		t.Errorf("expected %d default sheets, got %d", len(defaults.Sheets), len(inv.Sheets))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("default inventory file was not created")
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{invalid json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportInventorySkipsDuplicates(t *testing.T) {
	existing := model.Inventory{Sheets: []model.SheetPreset{
		{ID: "s1", Name: "Board A", Kind: model.SheetBoard},
	}}
	imported := model.Inventory{Sheets: []model.SheetPreset{
		{ID: "s1", Name: "Board A copy", Kind: model.SheetBoard},
		{ID: "s2", Name: "Back B", Kind: model.SheetBack},
	}}
	data, err := json.Marshal(imported)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Sheets) != 2 {
		t.Fatalf("expected 2 sheets after merge, got %d", len(merged.Sheets))
	}
	if merged.Sheets[0].Name != "Board A" {
		t.Errorf("existing preset should win, got %q", merged.Sheets[0].Name)
	}
	if merged.Sheets[1].ID != "s2" {
		t.Errorf("expected s2 appended, got %s", merged.Sheets[1].ID)
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(got.Sheets) != len(existing.Sheets) {
		t.Error("existing inventory should be returned unchanged")
	}
}

func TestCutListOptions(t *testing.T) {
	tm := model.DefaultThicknessModel()
	tm.CutListBoardMM = 18

	inv := model.Inventory{Sheets: []model.SheetPreset{
		{ID: "b", Name: "Big board", Kind: model.SheetBoard, Width: 2800, Height: 2070, Thickness: 18},
	}}
	opts := CutListOptions(inv, tm)
	if opts.BoardSheet.Width != 2800 {
		t.Errorf("expected board sheet from inventory, got width %f", opts.BoardSheet.Width)
	}
	if opts.BackSheet.Width != 2745 {
		t.Errorf("expected standard back sheet, got width %f", opts.BackSheet.Width)
	}
	if opts.Thickness.CutListBoardMM != 18 {
		t.Errorf("expected thickness model to be carried, got %f", opts.Thickness.CutListBoardMM)
	}
}
