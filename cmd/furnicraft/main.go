// FurniCraft: parametric furniture configurator
//
// Resolves the 3D part layout, cut list and price of a configured piece of
// furniture, and serves the same operations over a JSON API.
//
// Build:
//   go build -o furnicraft ./cmd/furnicraft
//
// Examples:
//   furnicraft price -type closet -w 80 -h 180 -d 30 -shelves 4
//   furnicraft cutlist -config wardrobe.json -format pdf -o wardrobe.pdf
//   furnicraft serve

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: furnicraft <command> [flags]

commands:
  geometry         print the resolved render parts as JSON
  price            print the price and its breakdown
  cutlist          write the cut list (-format text|json|pdf|xlsx|dxf|labels)
  save             store the configuration in the local gallery
  gallery          list the local gallery, newest first
  import-patterns  import a pattern catalogue from CSV or XLSX
  backup           export settings, sheet presets and gallery to one file
  restore          restore a backup file
  serve            run the HTTP API

Run "furnicraft <command> -help" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("missing command")
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "geometry":
		return runGeometry(ctx, rest, stdout, stderr)
	case "price":
		return runPrice(ctx, rest, stdout, stderr)
	case "cutlist":
		return runCutList(ctx, rest, stdout, stderr)
	case "save":
		return runSave(ctx, rest, stdout, stderr)
	case "gallery":
		return runGallery(rest, stdout, stderr)
	case "import-patterns":
		return runImportPatterns(ctx, rest, stdout, stderr)
	case "backup":
		return runBackup(rest, stdout, stderr)
	case "restore":
		return runRestore(rest, stdout, stderr)
	case "serve":
		return runServe(ctx, rest, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
