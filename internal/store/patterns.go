package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/FurniCraft/internal/catalog"
	"github.com/piwi3910/FurniCraft/internal/model"
)

// PatternStore is the SQLite backing of the pattern catalogue.
type PatternStore struct {
	db *sql.DB
}

var _ catalog.Client = (*PatternStore)(nil)

func NewPatternStore(db *sql.DB) *PatternStore {
	return &PatternStore{db: db}
}

const patternColumns = `id, name, finish_type, color_hex, price_factor, is_premium,
	texture_url, normal_map_url, roughness_map_url, thumbnail_url,
	thickness_mm, length_cm, width_cm, texture_repeat_x, texture_repeat_y, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPattern(row rowScanner) (model.Pattern, error) {
	var p model.Pattern
	var created string
	err := row.Scan(&p.ID, &p.Name, &p.FinishType, &p.ColorHex, &p.PriceFactor, &p.IsPremium,
		&p.TextureURL, &p.NormalMapURL, &p.RoughnessURL, &p.ThumbnailURL,
		&p.ThicknessMM, &p.LengthCM, &p.WidthCM, &p.TextureRepeatX, &p.TextureRepeatY, &created)
	if err != nil {
		return model.Pattern{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		p.CreatedAt = t
	}
	return p, nil
}

// ListPatterns returns all patterns ordered by name.
func (s *PatternStore) ListPatterns(ctx context.Context) ([]model.Pattern, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+patternColumns+` FROM patterns ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query patterns: %w", err)
	}
	defer rows.Close()

	out := []model.Pattern{}
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pattern: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patterns: %w", err)
	}
	return out, nil
}

// GetPattern returns one pattern, or catalog.ErrNotFound.
func (s *PatternStore) GetPattern(ctx context.Context, id string) (model.Pattern, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+patternColumns+` FROM patterns WHERE id = ?`, id)
	p, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Pattern{}, fmt.Errorf("pattern %s: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return model.Pattern{}, fmt.Errorf("get pattern %s: %w", id, err)
	}
	return p, nil
}

// InsertPattern stores a pattern, assigning an id and creation time when
// missing. An existing id is overwritten.
func (s *PatternStore) InsertPattern(ctx context.Context, p model.Pattern) (model.Pattern, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()[:8]
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p = p.Normalized()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO patterns (`+patternColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			finish_type = excluded.finish_type,
			color_hex = excluded.color_hex,
			price_factor = excluded.price_factor,
			is_premium = excluded.is_premium,
			texture_url = excluded.texture_url,
			normal_map_url = excluded.normal_map_url,
			roughness_map_url = excluded.roughness_map_url,
			thumbnail_url = excluded.thumbnail_url,
			thickness_mm = excluded.thickness_mm,
			length_cm = excluded.length_cm,
			width_cm = excluded.width_cm,
			texture_repeat_x = excluded.texture_repeat_x,
			texture_repeat_y = excluded.texture_repeat_y`,
		p.ID, p.Name, p.FinishType, p.ColorHex, p.PriceFactor, p.IsPremium,
		p.TextureURL, p.NormalMapURL, p.RoughnessURL, p.ThumbnailURL,
		p.ThicknessMM, p.LengthCM, p.WidthCM, p.TextureRepeatX, p.TextureRepeatY,
		p.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return model.Pattern{}, fmt.Errorf("insert pattern %q: %w", p.Name, err)
	}
	return p, nil
}

// DeletePattern removes a pattern. Missing ids are not an error.
func (s *PatternStore) DeletePattern(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM patterns WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete pattern %s: %w", id, err)
	}
	return nil
}
