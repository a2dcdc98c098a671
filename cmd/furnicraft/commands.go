package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/engine"
	"github.com/piwi3910/FurniCraft/internal/export"
	"github.com/piwi3910/FurniCraft/internal/finish"
	"github.com/piwi3910/FurniCraft/internal/geometry"
	"github.com/piwi3910/FurniCraft/internal/importer"
	"github.com/piwi3910/FurniCraft/internal/model"
	"github.com/piwi3910/FurniCraft/internal/pricing"
	"github.com/piwi3910/FurniCraft/internal/project"
	"github.com/piwi3910/FurniCraft/internal/server"
	"github.com/piwi3910/FurniCraft/internal/store"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// session is a configuration command ready to run.
type session struct {
	*env
	flags  *configFlags
	config model.Configuration
	name   string
}

// setup parses a configuration command's flags and loads its environment.
func setup(ctx context.Context, name string, args []string, stderr io.Writer, extra func(fs *flag.FlagSet)) (*session, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cf := &configFlags{}
	cf.register(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	e, err := openEnv(ctx, cf.settingsFlags, stderr)
	if err != nil {
		return nil, err
	}
	c, cfgName, err := cf.configuration(ctx, fs, e)
	if err != nil {
		e.close()
		return nil, err
	}
	return &session{env: e, flags: cf, config: c, name: cfgName}, nil
}

func runGeometry(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	e, err := setup(ctx, "geometry", args, stderr, nil)
	if err != nil {
		return err
	}
	defer e.close()
	c := e.config

	in := geometry.InputFor(c, e.cfg.Thickness)
	parts := geometry.Resolve(in)
	e.logger.Debug("geometry resolved", "type", c.Type, "parts", len(parts))
	return writeJSON(stdout, struct {
		PanelThickness float64               `json:"panel_thickness"`
		Appearance     finish.Appearance     `json:"appearance"`
		Parts          []geometry.RenderPart `json:"parts"`
	}{geometry.PanelThickness(in), finish.ForSelection(c.Material), parts})
}

func runPrice(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var asJSON bool
	e, err := setup(ctx, "price", args, stderr, func(fs *flag.FlagSet) {
		fs.BoolVar(&asJSON, "json", false, "print JSON")
	})
	if err != nil {
		return err
	}
	defer e.close()
	c := e.config

	strategy, err := pricing.ParseStrategy(e.cfg.PricingStrategy)
	if err != nil {
		e.logger.Warn("unknown pricing strategy, using default", "strategy", e.cfg.PricingStrategy)
	}
	res := pricing.ForConfiguration(c, strategy)
	if asJSON {
		return writeJSON(stdout, res)
	}

	b := res.Breakdown
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s %s\n", c.Type.Label(), c.Dimensions)
	fmt.Fprintf(tw, "Base\t%s\n", money(b.Base))
	fmt.Fprintf(tw, "Volume\t%s\n", money(b.Volume))
	fmt.Fprintf(tw, "Doors\t%s\n", money(b.Doors))
	fmt.Fprintf(tw, "Shelves\t%s\n", money(b.Shelves))
	fmt.Fprintf(tw, "Mounting strip\t%s\n", money(b.MountingStrip))
	fmt.Fprintf(tw, "Dividers\t%s\n", money(b.Dividers))
	fmt.Fprintf(tw, "Edge banding\t%s\n", money(b.EdgeBanding))
	if b.Multiplier != 1 {
		fmt.Fprintf(tw, "Premium multiplier\tx%g\n", b.Multiplier)
	}
	fmt.Fprintf(tw, "Total\t%s\n", money(res.Total))
	return tw.Flush()
}

func money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// fileFormats are the -format values that always write a file, with the
// extension of their default output name.
var fileFormats = map[string]string{
	"pdf":    ".pdf",
	"xlsx":   ".xlsx",
	"dxf":    ".dxf",
	"labels": ".pdf",
}

func runCutList(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var format, out string
	e, err := setup(ctx, "cutlist", args, stderr, func(fs *flag.FlagSet) {
		fs.StringVar(&format, "format", "text", "output format: text|json|pdf|xlsx|dxf|labels")
		fs.StringVar(&out, "o", "", "output file (default: stdout for text and json)")
	})
	if err != nil {
		return err
	}
	defer e.close()
	c := e.config

	cl := cutlist.GenerateWith(cutlist.RequestFor(c, e.cfg), e.cutOpts)
	settings := model.DefaultSettings()
	e.cfg.ApplyToSettings(&settings)

	format = strings.ToLower(format)
	if ext, ok := fileFormats[format]; ok && out == "" {
		out = strings.TrimSuffix(cutlist.Filename(c.Type), ".txt") + ext
		if format == "labels" {
			out = strings.TrimSuffix(out, ext) + "-labels" + ext
		}
	}

	var plan engine.Plan
	if format != "text" && format != "dxf" {
		plan = engine.PlanCutList(cl, settings)
		if plan.Shortfall() {
			e.logger.Warn("nested layout needs more sheets than the area estimate")
		}
	}

	switch format {
	case "text":
		if out == "" {
			return cutlist.WriteText(stdout, cl)
		}
		return writeFile(out, func(w io.Writer) error { return cutlist.WriteText(w, cl) })
	case "json":
		payload := struct {
			CutList cutlist.CutList       `json:"cut_list"`
			Summary cutlist.Summary       `json:"summary"`
			Nesting []engine.MaterialPlan `json:"nesting"`
		}{cl, cl.Summarize(e.cfg.BandingWaste, e.cutOpts.Thickness), plan.Materials}
		if out == "" {
			return writeJSON(stdout, payload)
		}
		return writeFile(out, func(w io.Writer) error { return writeJSON(w, payload) })
	case "pdf":
		err = export.ExportPDF(out, cl, plan, settings)
	case "xlsx":
		err = export.ExportXLSX(out, cl, plan)
	case "dxf":
		err = export.ExportDXF(out, cl)
	case "labels":
		err = export.ExportLabels(out, plan.Result)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	return reportFile(stdout, out)
}

func writeFile(path string, fn func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func reportFile(w io.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	return nil
}

func runSave(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var name string
	e, err := setup(ctx, "save", args, stderr, func(fs *flag.FlagSet) {
		fs.StringVar(&name, "name", "", "name to save under (default: the loaded name)")
	})
	if err != nil {
		return err
	}
	defer e.close()

	if name == "" {
		name = e.name
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("a -name is required")
	}

	g, err := project.LoadGallery(e.flags.galleryPath)
	if err != nil {
		return fmt.Errorf("load gallery: %w", err)
	}
	saved := model.Current(e.config, name)
	if existing := g.FindByName(name); existing != nil {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
	}
	g.Add(saved)
	if err := project.SaveGallery(e.flags.galleryPath, g); err != nil {
		return fmt.Errorf("save gallery: %w", err)
	}

	project.AddRecentConfiguration(&e.cfg, saved.ID)
	if err := project.SaveAppConfig(e.flags.appConfigPath, e.cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	e.logger.Debug("configuration saved", "id", saved.ID, "gallery", e.flags.galleryPath)
	fmt.Fprintf(stdout, "saved %q as %s\n", name, saved.ID)
	return nil
}

func runGallery(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gallery", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("gallery", project.DefaultGalleryPath(), "local gallery file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	g, err := project.LoadGallery(*path)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSIZE\tCREATED")
	for _, c := range g.Newest() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.FurnitureType, c.Dimensions, c.CreatedAt)
	}
	return tw.Flush()
}

func runImportPatterns(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("import-patterns", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sf settingsFlags
	sf.register(fs)
	dryRun := fs.Bool("dry-run", false, "parse only, store nothing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: furnicraft import-patterns [flags] <file.csv|file.xlsx>")
	}

	e, err := openEnv(ctx, sf, stderr)
	if err != nil {
		return err
	}
	defer e.close()

	result := importer.ImportFile(fs.Arg(0))
	for _, w := range result.Warnings {
		e.logger.Warn(w)
	}
	for _, msg := range result.Errors {
		e.logger.Error(msg)
	}
	if len(result.Patterns) == 0 {
		return fmt.Errorf("no patterns imported from %s", fs.Arg(0))
	}
	if *dryRun {
		fmt.Fprintf(stdout, "parsed %d patterns\n", len(result.Patterns))
		return nil
	}

	saved, err := importer.Save(ctx, e.client, result.Patterns)
	fmt.Fprintf(stdout, "imported %d of %d patterns\n", saved, len(result.Patterns))
	return err
}

func runBackup(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sf settingsFlags
	sf.register(fs)
	out := fs.String("o", "furnicraft-backup.json", "backup file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := project.LoadAppConfig(sf.appConfigPath)
	if err != nil {
		return err
	}
	inv := model.DefaultInventory()
	if sf.inventoryPath != "" {
		if inv, err = project.LoadInventory(sf.inventoryPath); err != nil {
			return err
		}
	}
	g, err := project.LoadGallery(sf.galleryPath)
	if err != nil {
		return err
	}
	if err := project.ExportAllData(*out, cfg, inv, g); err != nil {
		return err
	}
	return reportFile(stdout, *out)
}

func runRestore(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sf settingsFlags
	sf.register(fs)
	in := fs.String("i", "", "backup file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("-i is required")
	}

	backup, err := project.ImportAllData(*in)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(sf.appConfigPath, backup.Config); err != nil {
		return err
	}
	if err := project.SaveGallery(sf.galleryPath, backup.Gallery); err != nil {
		return err
	}
	invPath := sf.inventoryPath
	if invPath == "" {
		invPath = project.DefaultInventoryPath()
	}
	if err := project.SaveInventory(invPath, backup.Inventory); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "restored backup from %s (%d configurations, %d sheet presets)\n",
		backup.CreatedAt, len(backup.Gallery.Configurations), len(backup.Inventory.Sheets))
	return nil
}

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sf settingsFlags
	sf.register(fs)
	addr := fs.String("addr", "", "listen address (default from settings)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := project.LoadAppConfig(sf.appConfigPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if sf.dbPath == "" {
		// the API always serves the SQLite catalogue
		sf.dbPath = cfg.DBPath
	}

	e, err := openEnv(ctx, sf, stderr)
	if err != nil {
		return err
	}
	defer e.close()

	listen := e.cfg.ListenAddr
	if *addr != "" {
		listen = *addr
	}
	srv := server.New(server.Options{
		Catalog:        e.catalog,
		Configurations: store.NewConfigurationStore(e.db),
		Config:         e.cfg,
		CutList:        e.cutOpts,
		Logger:         e.logger,
	})
	err = srv.ListenAndServe(ctx, listen)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
