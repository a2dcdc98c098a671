// Package catalog serves decorative patterns from an injected backing store
// and falls back to a fixed set when the store is slow, failing or empty.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// ErrNotFound is returned by clients when a pattern id does not exist.
var ErrNotFound = errors.New("pattern not found")

// Client is the backing pattern store.
type Client interface {
	ListPatterns(ctx context.Context) ([]model.Pattern, error)
	GetPattern(ctx context.Context, id string) (model.Pattern, error)
	InsertPattern(ctx context.Context, p model.Pattern) (model.Pattern, error)
}

const (
	DefaultTimeout    = 5 * time.Second
	DefaultRetries    = 1
	DefaultRetryDelay = 200 * time.Millisecond
)

// Options configure a Service.
type Options struct {
	// Timeout bounds each catalogue call including retries.
	Timeout time.Duration
	// Retries is the number of extra attempts after a failed call.
	Retries    int
	RetryDelay time.Duration
	// Fallback is served when the store cannot answer.
	Fallback []model.Pattern
	Logger   *slog.Logger
}

// DefaultOptions returns a five second timeout, one retry and the
// built-in fallback patterns.
func DefaultOptions() Options {
	return Options{
		Timeout:    DefaultTimeout,
		Retries:    DefaultRetries,
		RetryDelay: DefaultRetryDelay,
		Fallback:   FallbackPatterns(),
	}
}

// FallbackPatterns returns the four patterns served without a store.
func FallbackPatterns() []model.Pattern {
	return []model.Pattern{
		{ID: "oak-natural", Name: "Oak Natural", FinishType: "natural", ColorHex: "#D4B48C", PriceFactor: 1.0},
		{ID: "walnut-classic", Name: "Walnut Classic", FinishType: "oiled", ColorHex: "#5C4033", PriceFactor: 1.2},
		{ID: "white-marble", Name: "White Marble", FinishType: "glossy", ColorHex: "#F5F5F5", PriceFactor: 1.5, IsPremium: true},
		{ID: "concrete-grey", Name: "Concrete Grey", FinishType: "matte", ColorHex: "#B0B0B0", PriceFactor: 1.1},
	}
}

// Service answers pattern queries. It never fails a read: errors, timeouts
// and empty results are logged and the fallback set is served instead.
type Service struct {
	client Client
	opts   Options
	log    *slog.Logger
}

// NewService wraps client. A nil client serves only the fallback set.
func NewService(client Client, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Fallback == nil {
		opts.Fallback = FallbackPatterns()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{client: client, opts: opts, log: log.With("component", "catalog")}
}

// call runs fn with retries under the service timeout. The result is
// abandoned if fn ignores cancellation and overruns the deadline.
func call[T any](ctx context.Context, s *Service, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		backoff := retry.WithMaxRetries(uint64(s.opts.Retries), retry.NewConstant(s.opts.RetryDelay))
		v, err := retry.DoValue(ctx, backoff, func(ctx context.Context) (T, error) {
			v, err := fn(ctx)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return v, retry.RetryableError(err)
			}
			return v, err
		})
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("catalog request: %w", ctx.Err())
	}
}

func (s *Service) fallback() []model.Pattern {
	out := make([]model.Pattern, len(s.opts.Fallback))
	for i, p := range s.opts.Fallback {
		out[i] = p.Normalized()
	}
	model.SortPatterns(out)
	return out
}

// GetAllPatterns returns every pattern ordered by name.
func (s *Service) GetAllPatterns(ctx context.Context) []model.Pattern {
	if s.client == nil {
		return s.fallback()
	}
	patterns, err := call(ctx, s, s.client.ListPatterns)
	if err != nil {
		s.log.Warn("pattern list failed, serving fallback", "error", err)
		return s.fallback()
	}
	if len(patterns) == 0 {
		s.log.Warn("pattern catalogue is empty, serving fallback")
		return s.fallback()
	}
	out := make([]model.Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = p.Normalized()
	}
	model.SortPatterns(out)
	s.log.Debug("patterns fetched", "count", len(out))
	return out
}

// GetPatternByID returns a pattern or nil. Fallback ids are answered
// without asking the store.
func (s *Service) GetPatternByID(ctx context.Context, id string) *model.Pattern {
	for _, p := range s.opts.Fallback {
		if p.ID == id {
			n := p.Normalized()
			return &n
		}
	}
	if s.client == nil || id == "" {
		return nil
	}
	p, err := call(ctx, s, func(ctx context.Context) (model.Pattern, error) {
		return s.client.GetPattern(ctx, id)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Debug("pattern not found", "id", id)
		} else {
			s.log.Warn("pattern lookup failed", "id", id, "error", err)
		}
		return nil
	}
	n := p.Normalized()
	return &n
}

// PatternsByFinish returns the patterns of one finish type.
func (s *Service) PatternsByFinish(ctx context.Context, finish string) []model.Pattern {
	out := []model.Pattern{}
	for _, p := range s.GetAllPatterns(ctx) {
		if p.FinishType == finish {
			out = append(out, p)
		}
	}
	return out
}

// Finishes lists the distinct finish types in order of first appearance.
func (s *Service) Finishes(ctx context.Context) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range s.GetAllPatterns(ctx) {
		if !seen[p.FinishType] {
			seen[p.FinishType] = true
			out = append(out, p.FinishType)
		}
	}
	return out
}

// Category groups the patterns of one finish type.
type Category struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Patterns    []model.Pattern `json:"patterns"`
}

var categoryNames = map[string]string{
	"solid":    "Solid Colors",
	"wood":     "Wood Patterns",
	"marble":   "Marble Patterns",
	"fabric":   "Fabric Textures",
	"metal":    "Metal Finishes",
	"laminate": "Laminates",
	"veneer":   "Veneers",
	"concrete": "Concrete",
	"natural":  "Natural Wood",
	"oiled":    "Oiled Wood",
	"glossy":   "Glossy Finish",
	"matte":    "Matte Finish",
}

var categoryDescriptions = map[string]string{
	"solid":    "Simple, elegant solid colors for a clean look",
	"wood":     "Natural wood patterns with various grains and tones",
	"marble":   "Luxurious marble patterns for a sophisticated appearance",
	"fabric":   "Textured fabric finishes for a warm, comfortable feel",
	"metal":    "Modern metal finishes for an industrial or contemporary style",
	"laminate": "Durable laminate surfaces with a variety of patterns",
	"veneer":   "Real wood veneers for an authentic wood appearance",
	"concrete": "Contemporary concrete finishes for an industrial look",
	"natural":  "Natural wood with minimal treatment",
	"oiled":    "Wood treated with oil for a rich, warm finish",
	"glossy":   "High-shine reflective finish",
	"matte":    "Non-reflective finish with a subtle texture",
}

// CategoryName returns the display name of a finish type, or the id itself.
func CategoryName(id string) string {
	if n, ok := categoryNames[id]; ok {
		return n
	}
	return id
}

// Categories groups all patterns by finish type, sorted by id.
func (s *Service) Categories(ctx context.Context) []Category {
	groups := map[string][]model.Pattern{}
	for _, p := range s.GetAllPatterns(ctx) {
		groups[p.FinishType] = append(groups[p.FinishType], p)
	}
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, Category{
			ID:          id,
			Name:        CategoryName(id),
			Description: categoryDescriptions[id],
			Patterns:    groups[id],
		})
	}
	return out
}

// AddPattern stores a new pattern. Unlike reads, failures are returned.
func (s *Service) AddPattern(ctx context.Context, p model.Pattern) (model.Pattern, error) {
	if s.client == nil {
		return model.Pattern{}, fmt.Errorf("no pattern store configured")
	}
	if p.Name == "" {
		return model.Pattern{}, fmt.Errorf("pattern name is required")
	}
	p = p.Normalized()
	saved, err := call(ctx, s, func(ctx context.Context) (model.Pattern, error) {
		return s.client.InsertPattern(ctx, p)
	})
	if err != nil {
		return model.Pattern{}, fmt.Errorf("failed to add pattern %q: %w", p.Name, err)
	}
	s.log.Info("pattern added", "id", saved.ID, "name", saved.Name)
	return saved, nil
}

// ResolveSelection attaches the pattern named by the selection's PatternID.
// An unknown id leaves Pattern nil so the category colour applies.
func (s *Service) ResolveSelection(ctx context.Context, sel *model.MaterialSelection) {
	sel.Pattern = nil
	if sel.PatternID == "" {
		return
	}
	sel.Pattern = s.GetPatternByID(ctx, sel.PatternID)
}
