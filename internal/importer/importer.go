// Package importer reads pattern catalogues from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"github.com/piwi3910/FurniCraft/internal/catalog"
	"github.com/piwi3910/FurniCraft/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Patterns []model.Pattern
	Errors   []string
	Warnings []string
}

// ColumnMapping maps pattern fields to their indices in the data.
// Unmapped columns are -1.
type ColumnMapping struct {
	ID          int
	Name        int
	Finish      int
	Color       int
	PriceFactor int
	Premium     int
	Thickness   int
	Length      int
	Width       int
	Texture     int
	Thumbnail   int
}

func emptyMapping() ColumnMapping {
	return ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
}

// positionalMapping is used for files without a header row:
// Name, Finish, Color, Price factor, Premium.
func positionalMapping() ColumnMapping {
	m := emptyMapping()
	m.Name, m.Finish, m.Color, m.PriceFactor, m.Premium = 0, 1, 2, 3, 4
	return m
}

type columnRole struct {
	aliases []string
	field   func(m *ColumnMapping) *int
}

// columnRoles lists accepted header aliases (all lowercase) in match order.
var columnRoles = []columnRole{
	{[]string{"id", "pattern id", "code", "sku"}, func(m *ColumnMapping) *int { return &m.ID }},
	{[]string{"name", "pattern", "pattern name", "label", "decor"}, func(m *ColumnMapping) *int { return &m.Name }},
	{[]string{"finish", "finish type", "finish_type", "surface"}, func(m *ColumnMapping) *int { return &m.Finish }},
	{[]string{"color", "colour", "color hex", "color_hex", "hex"}, func(m *ColumnMapping) *int { return &m.Color }},
	{[]string{"price factor", "price_factor", "factor", "multiplier"}, func(m *ColumnMapping) *int { return &m.PriceFactor }},
	{[]string{"premium", "is premium", "is_premium"}, func(m *ColumnMapping) *int { return &m.Premium }},
	{[]string{"thickness", "thickness mm", "thickness_mm", "t"}, func(m *ColumnMapping) *int { return &m.Thickness }},
	{[]string{"length", "length cm", "length_cm", "l"}, func(m *ColumnMapping) *int { return &m.Length }},
	{[]string{"width", "width cm", "width_cm", "w"}, func(m *ColumnMapping) *int { return &m.Width }},
	{[]string{"texture", "texture url", "texture_url"}, func(m *ColumnMapping) *int { return &m.Texture }},
	{[]string{"thumbnail", "thumbnail url", "thumbnail_url", "preview"}, func(m *ColumnMapping) *int { return &m.Thumbnail }},
}

// DetectCSVDelimiter determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the
// most consistent multi-column rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := emptyMapping()
	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, role := range columnRoles {
			if !containsString(role.aliases, normalized) {
				continue
			}
			isHeader = true
			if idx := role.field(&mapping); *idx == -1 {
				*idx = i
			}
			break
		}
	}
	if !isHeader {
		return positionalMapping(), false
	}
	return mapping, true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// parseBool accepts yes/no style flags.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x":
		return true, true
	case "", "no", "n", "false", "0", "-":
		return false, true
	default:
		return false, false
	}
}

// normalizeColor returns "#RRGGBB" for a 6-digit hex value with or
// without the leading '#'.
func normalizeColor(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(s, 16, 32); err != nil {
		return "", false
	}
	return "#" + strings.ToUpper(s), true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// optionalFloat parses a non-negative number from an optional column.
func optionalFloat(row []string, idx int, field, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, ""
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || v < 0 {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s)
	}
	return v, ""
}

// parseRow extracts a Pattern from a row using the given column mapping.
// Returns the pattern, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Pattern, string, []string) {
	var warnings []string

	name := getCell(row, mapping.Name)
	if name == "" {
		return model.Pattern{}, fmt.Sprintf("%s: Missing pattern name", rowLabel), nil
	}

	p := model.Pattern{
		ID:           getCell(row, mapping.ID),
		Name:         name,
		FinishType:   getCell(row, mapping.Finish),
		PriceFactor:  1.0,
		TextureURL:   getCell(row, mapping.Texture),
		ThumbnailURL: getCell(row, mapping.Thumbnail),
	}

	if s := getCell(row, mapping.PriceFactor); s != "" {
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return model.Pattern{}, fmt.Sprintf("%s: Invalid price factor '%s'", rowLabel, s), nil
		}
		if f <= 0 {
			return model.Pattern{}, fmt.Sprintf("%s: Price factor must be positive", rowLabel), nil
		}
		p.PriceFactor = f
	}

	if s := getCell(row, mapping.Color); s != "" {
		if c, ok := normalizeColor(s); ok {
			p.ColorHex = c
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid color '%s', ignored", rowLabel, s))
		}
	}

	if s := getCell(row, mapping.Premium); s != "" {
		premium, ok := parseBool(s)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown premium flag '%s', defaulting to no", rowLabel, s))
		}
		p.IsPremium = premium
	}

	var errMsg string
	if p.ThicknessMM, errMsg = optionalFloat(row, mapping.Thickness, "thickness", rowLabel); errMsg != "" {
		return model.Pattern{}, errMsg, nil
	}
	if p.LengthCM, errMsg = optionalFloat(row, mapping.Length, "length", rowLabel); errMsg != "" {
		return model.Pattern{}, errMsg, nil
	}
	if p.WidthCM, errMsg = optionalFloat(row, mapping.Width, "width", rowLabel); errMsg != "" {
		return model.Pattern{}, errMsg, nil
	}

	return p.Normalized(), "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports patterns from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports patterns from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports patterns from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}
	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension: .xlsx and .xlsm go through
// Excel, everything else is read as CSV.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Name == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Name")
			return result
		}
	} else if s := getCell(rows[0], mapping.PriceFactor); s != "" {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			// unrecognized header; keep the positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := map[string]bool{}
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		p, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		if p.ID != "" {
			if seen[p.ID] {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate id '%s', row skipped", rowLabel, p.ID))
				continue
			}
			seen[p.ID] = true
		}
		result.Patterns = append(result.Patterns, p)
	}

	return result
}

// Save inserts every imported pattern through the catalogue client. It
// keeps going after a failed insert and returns the number stored together
// with all insert errors combined.
func Save(ctx context.Context, client catalog.Client, patterns []model.Pattern) (int, error) {
	var errs error
	saved := 0
	for _, p := range patterns {
		if _, err := client.InsertPattern(ctx, p); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("pattern %q: %w", p.Name, err))
			continue
		}
		saved++
	}
	return saved, errs
}
