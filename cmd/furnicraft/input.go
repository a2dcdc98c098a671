package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/piwi3910/FurniCraft/internal/catalog"
	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/model"
	"github.com/piwi3910/FurniCraft/internal/project"
	"github.com/piwi3910/FurniCraft/internal/store"
)

// settingsFlags locate the persisted settings files.
type settingsFlags struct {
	appConfigPath string
	galleryPath   string
	inventoryPath string
	patternsPath  string
	dbPath        string
	verbose       bool
}

func (f *settingsFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.appConfigPath, "app-config", project.DefaultConfigPath(), "application settings file")
	fs.StringVar(&f.galleryPath, "gallery", project.DefaultGalleryPath(), "local gallery file")
	fs.StringVar(&f.inventoryPath, "inventory", "", "sheet preset file (default: standard sheets)")
	fs.StringVar(&f.patternsPath, "patterns", project.DefaultPatternsPath(), "local pattern library file")
	fs.StringVar(&f.dbPath, "db", "", "SQLite pattern catalogue (overrides -patterns)")
	fs.BoolVar(&f.verbose, "v", false, "verbose logging")
}

// configFlags describe the piece of furniture to work on.
type configFlags struct {
	settingsFlags

	configFile       string
	galleryID        string
	furnitureType    string
	width            float64
	height           float64
	depth            float64
	shelves          int
	columns          int
	doors            bool
	doorConfig       string
	doorDirection    string
	compartmentDoors string
	mountingStrip    bool
	insetBack        bool
	whiteEdges       bool
	category         string
	option           string
	finish           string
	pattern          string
}

func (f *configFlags) register(fs *flag.FlagSet) {
	f.settingsFlags.register(fs)
	fs.StringVar(&f.configFile, "config", "", "saved configuration JSON file")
	fs.StringVar(&f.galleryID, "id", "", "load a configuration from the gallery by id or name")
	fs.StringVar(&f.furnitureType, "type", string(model.TypeCloset), "furniture type: closet|table|cabinet|desk|sideboard")
	fs.Float64Var(&f.width, "w", 0, "width in cm")
	fs.Float64Var(&f.height, "h", 0, "height in cm")
	fs.Float64Var(&f.depth, "d", 0, "depth in cm")
	fs.IntVar(&f.shelves, "shelves", 0, "shelves per compartment")
	fs.IntVar(&f.columns, "columns", 0, "vertical dividers")
	fs.BoolVar(&f.doors, "doors", false, "fit doors")
	fs.StringVar(&f.doorConfig, "door-config", string(model.DoorsOne), "door leaves without dividers: one|two")
	fs.StringVar(&f.doorDirection, "door-direction", string(model.HingeLeft), "hinge side of a single door: left|right")
	fs.StringVar(&f.compartmentDoors, "compartment-doors", "", "comma separated door per compartment: none|single-left|single-right|double")
	fs.BoolVar(&f.mountingStrip, "mounting-strip", false, "add wall mounting strips")
	fs.BoolVar(&f.insetBack, "inset-back", false, "inset the back panel")
	fs.BoolVar(&f.whiteEdges, "white-edges", false, "white edge banding")
	fs.StringVar(&f.category, "material", "", "material category id")
	fs.StringVar(&f.option, "option", "", "material option id")
	fs.StringVar(&f.finish, "finish", "", "wood finish id")
	fs.StringVar(&f.pattern, "pattern", "", "pattern id")
}

// env is the shared state of a command run.
type env struct {
	cfg     model.AppConfig
	logger  *slog.Logger
	catalog *catalog.Service
	client  catalog.Client
	db      *sql.DB
	cutOpts cutlist.Options
	close   func()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openEnv loads settings, sheet presets and the pattern catalogue.
func openEnv(ctx context.Context, f settingsFlags, stderr io.Writer) (*env, error) {
	logger := newLogger(stderr, f.verbose)

	cfg, err := project.LoadAppConfig(f.appConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	cfg.ApplyEnv()
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}

	tm := cfg.Thickness
	logger.Debug("panel thickness model",
		"render_panel_mm", tm.RenderPanelMM,
		"cut_list_board_mm", tm.CutListBoardMM,
		"board_discrepancy_mm", tm.BoardDiscrepancyMM(),
		"back_discrepancy_mm", tm.BackDiscrepancyMM(),
	)

	e := &env{cfg: cfg, logger: logger, close: func() {}}

	e.cutOpts = cutlist.DefaultOptions()
	e.cutOpts.Thickness = tm
	if f.inventoryPath != "" {
		inv, err := project.LoadInventory(f.inventoryPath)
		if err != nil {
			return nil, fmt.Errorf("load sheet presets: %w", err)
		}
		e.cutOpts = project.CutListOptions(inv, tm)
	}

	if f.dbPath != "" {
		db, err := store.OpenAndMigrate(ctx, f.dbPath)
		if err != nil {
			return nil, err
		}
		e.db = db
		e.client = store.NewPatternStore(db)
		e.close = func() { db.Close() }
	} else {
		lib, err := project.OpenPatternLibrary(f.patternsPath)
		if err != nil {
			return nil, fmt.Errorf("open pattern library: %w", err)
		}
		e.client = lib
	}

	opts := catalog.DefaultOptions()
	opts.Logger = logger
	if cfg.CatalogTimeoutSeconds > 0 {
		opts.Timeout = time.Duration(cfg.CatalogTimeoutSeconds) * time.Second
	}
	if cfg.CatalogRetries >= 0 {
		opts.Retries = cfg.CatalogRetries
	}
	e.catalog = catalog.NewService(e.client, opts)
	return e, nil
}

// readSaved reads a SavedConfiguration JSON file.
func readSaved(path string) (model.SavedConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SavedConfiguration{}, err
	}
	var saved model.SavedConfiguration
	if err := json.Unmarshal(data, &saved); err != nil {
		return model.SavedConfiguration{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if saved.FurnitureType == "" {
		saved.FurnitureType = model.TypeCloset
	}
	return saved, nil
}

func parseCompartmentDoors(s string) ([]model.CompartmentDoor, error) {
	var doors []model.CompartmentDoor
	for _, part := range strings.Split(s, ",") {
		t := model.CompartmentDoorType(strings.TrimSpace(part))
		if !t.Valid() {
			return nil, fmt.Errorf("unknown compartment door %q", part)
		}
		doors = append(doors, model.CompartmentDoor{Type: t})
	}
	return doors, nil
}

// configuration builds the live configuration from a file, the gallery or
// the flags. Flags given explicitly override loaded values.
func (f *configFlags) configuration(ctx context.Context, fs *flag.FlagSet, e *env) (model.Configuration, string, error) {
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var c model.Configuration
	name := ""
	switch {
	case f.configFile != "":
		saved, err := readSaved(f.configFile)
		if err != nil {
			return c, "", err
		}
		c, name = saved.Load(), saved.Name
	case f.galleryID != "":
		g, err := project.LoadGallery(f.galleryPath)
		if err != nil {
			return c, "", fmt.Errorf("load gallery: %w", err)
		}
		saved := g.FindByID(f.galleryID)
		if saved == nil {
			saved = g.FindByName(f.galleryID)
		}
		if saved == nil {
			return c, "", fmt.Errorf("configuration %q not found in gallery", f.galleryID)
		}
		c, name = saved.Load(), saved.Name
	default:
		c = model.NewConfiguration(model.ParseFurnitureType(f.furnitureType))
	}
	if c.Dimensions == (model.Dimensions{}) {
		c.Dimensions = model.DefaultDimensions(c.Type)
	}

	if set["type"] && (f.configFile != "" || f.galleryID != "") {
		c.SetType(model.ParseFurnitureType(f.furnitureType))
	}
	d := c.Dimensions
	if set["w"] {
		d.Width = f.width
	}
	if set["h"] {
		d.Height = f.height
	}
	if set["d"] {
		d.Depth = f.depth
	}
	c.SetDimensions(d)
	if set["shelves"] {
		c.SetShelfCount(f.shelves)
	}
	if set["columns"] {
		c.SetColumnCount(f.columns)
	}
	if set["doors"] {
		c.Options.HasDoors = f.doors
	}
	if set["door-config"] {
		c.Options.DoorConfig = model.DoorConfig(f.doorConfig)
	}
	if set["door-direction"] {
		c.Options.DoorDirection = model.DoorDirection(f.doorDirection)
	}
	if set["compartment-doors"] {
		doors, err := parseCompartmentDoors(f.compartmentDoors)
		if err != nil {
			return c, "", err
		}
		c.Options.CompartmentDoors = doors
	}
	if set["mounting-strip"] {
		c.Options.HasMountingStrip = f.mountingStrip
	}
	if set["inset-back"] {
		c.Options.BackPanel.Inset = f.insetBack
	}
	if set["white-edges"] {
		c.HasWhiteEdges = f.whiteEdges
	}
	if set["material"] {
		c.Material.Category = f.category
	}
	if set["option"] {
		c.Material.Option = f.option
	}
	if set["finish"] {
		c.Material.Finish = f.finish
	}
	if set["pattern"] {
		c.Material.PatternID = f.pattern
	}

	c.Normalize()
	if err := c.Validate(); err != nil {
		return c, "", fmt.Errorf("invalid configuration: %w", err)
	}
	e.catalog.ResolveSelection(ctx, &c.Material)
	if c.Material.PatternID != "" && c.Material.Pattern == nil {
		e.logger.Warn("pattern not found, using flat colour", "pattern", c.Material.PatternID)
	}
	return c, name, nil
}
