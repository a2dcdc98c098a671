package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// ConfigurationStore keeps saved configurations per user.
type ConfigurationStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewConfigurationStore(db *sql.DB) *ConfigurationStore {
	return &ConfigurationStore{db: db, now: time.Now}
}

// Save stores c for userID, creating an id and timestamps when missing.
// Saving over another user's configuration fails with ErrNotFound.
func (s *ConfigurationStore) Save(ctx context.Context, userID string, c model.SavedConfiguration) (model.SavedConfiguration, error) {
	if userID == "" {
		return model.SavedConfiguration{}, ErrUnauthenticated
	}
	if c.Name == "" {
		return model.SavedConfiguration{}, fmt.Errorf("configuration name is required")
	}
	now := s.now().UTC().Format(time.RFC3339Nano)
	if c.ID == "" {
		c.ID = uuid.New().String()[:8]
	}
	if c.CreatedAt == "" {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	c.UserID = userID
	if c.CompartmentDoors == nil {
		c.CompartmentDoors = []model.CompartmentDoor{}
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return model.SavedConfiguration{}, fmt.Errorf("failed to marshal configuration: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO furniture_configurations (id, user_id, name, furniture_type, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			furniture_type = excluded.furniture_type,
			payload = excluded.payload,
			updated_at = excluded.updated_at
		WHERE furniture_configurations.user_id = excluded.user_id`,
		c.ID, userID, c.Name, string(c.FurnitureType), string(payload), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return model.SavedConfiguration{}, fmt.Errorf("save configuration %q: %w", c.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.SavedConfiguration{}, ErrNotFound
	}
	return c, nil
}

func decodeConfiguration(payload string) (model.SavedConfiguration, error) {
	var c model.SavedConfiguration
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return model.SavedConfiguration{}, fmt.Errorf("failed to parse stored configuration: %w", err)
	}
	return c, nil
}

// ListByUser returns a user's configurations, newest first.
func (s *ConfigurationStore) ListByUser(ctx context.Context, userID string) ([]model.SavedConfiguration, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM furniture_configurations
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query configurations: %w", err)
	}
	defer rows.Close()

	out := []model.SavedConfiguration{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan configuration: %w", err)
		}
		c, err := decodeConfiguration(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate configurations: %w", err)
	}
	return out, nil
}

// Get returns one configuration by id.
func (s *ConfigurationStore) Get(ctx context.Context, id string) (model.SavedConfiguration, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM furniture_configurations WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SavedConfiguration{}, ErrNotFound
	}
	if err != nil {
		return model.SavedConfiguration{}, fmt.Errorf("get configuration %s: %w", id, err)
	}
	return decodeConfiguration(payload)
}

// Delete removes a configuration owned by userID.
func (s *ConfigurationStore) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM furniture_configurations WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete configuration %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete configuration %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
