package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/engine"
	"github.com/piwi3910/FurniCraft/internal/finish"
	"github.com/piwi3910/FurniCraft/internal/geometry"
	"github.com/piwi3910/FurniCraft/internal/model"
	"github.com/piwi3910/FurniCraft/internal/pricing"
	"github.com/piwi3910/FurniCraft/internal/store"
)

// loadConfiguration turns a request body into a normalized live
// configuration with its pattern resolved. Missing type and dimensions take
// the closet defaults.
func (s *Server) loadConfiguration(ctx context.Context, saved model.SavedConfiguration) (model.Configuration, error) {
	saved.FurnitureType = model.ParseFurnitureType(string(saved.FurnitureType))
	if saved.FurnitureType == "" {
		saved.FurnitureType = model.TypeCloset
	}
	c := saved.Load()
	if c.Dimensions == (model.Dimensions{}) {
		c.Dimensions = model.DefaultDimensions(c.Type)
	}
	if c.Material.Category == "" {
		def := model.DefaultMaterialSelection()
		c.Material.Category, c.Material.Option = def.Category, def.Option
		if c.Material.Finish == "" {
			c.Material.Finish = def.Finish
		}
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return c, err
	}
	s.catalog.ResolveSelection(ctx, &c.Material)
	return c, nil
}

// decodeConfiguration reads and loads the request body, writing a 400 on
// failure.
func (s *Server) decodeConfiguration(w http.ResponseWriter, r *http.Request) (model.SavedConfiguration, model.Configuration, bool) {
	var saved model.SavedConfiguration
	if err := decodeJSON(r, &saved); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return saved, model.Configuration{}, false
	}
	c, err := s.loadConfiguration(r.Context(), saved)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return saved, c, false
	}
	return saved, c, true
}

type geometryResponse struct {
	PanelThickness float64               `json:"panel_thickness"` // metres
	Appearance     finish.Appearance     `json:"appearance"`
	Parts          []geometry.RenderPart `json:"parts"`
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.decodeConfiguration(w, r)
	if !ok {
		return
	}
	in := geometry.InputFor(c, s.cfg.Thickness)
	writeJSON(w, http.StatusOK, geometryResponse{
		PanelThickness: geometry.PanelThickness(in),
		Appearance:     finish.ForSelection(c.Material),
		Parts:          geometry.Resolve(in),
	})
}

type priceResponse struct {
	Strategy pricing.Strategy `json:"strategy"`
	pricing.Result
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.decodeConfiguration(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, priceResponse{
		Strategy: s.strategy,
		Result:   pricing.ForConfiguration(c, s.strategy),
	})
}

type cutListResponse struct {
	CutList cutlist.CutList       `json:"cut_list"`
	Summary cutlist.Summary       `json:"summary"`
	Nesting []engine.MaterialPlan `json:"nesting"`
}

func (s *Server) buildCutList(c model.Configuration) cutlist.CutList {
	return cutlist.GenerateWith(cutlist.RequestFor(c, s.cfg), s.cutOpts)
}

func (s *Server) cutSettings() model.CutSettings {
	settings := model.DefaultSettings()
	if s.cfg.DefaultKerfWidth > 0 {
		s.cfg.ApplyToSettings(&settings)
	}
	return settings
}

func (s *Server) handleCutList(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.decodeConfiguration(w, r)
	if !ok {
		return
	}
	cl := s.buildCutList(c)
	plan := engine.PlanCutList(cl, s.cutSettings())
	if plan.Shortfall() {
		s.logger.Debug("nesting needs more sheets than estimated", "type", c.Type)
	}
	writeJSON(w, http.StatusOK, cutListResponse{
		CutList: cl,
		Summary: cl.Summarize(s.cfg.BandingWaste, s.cutOpts.Thickness),
		Nesting: plan.Materials,
	})
}

func (s *Server) handleCutListText(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.decodeConfiguration(w, r)
	if !ok {
		return
	}
	cl := s.buildCutList(c)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cutlist.Filename(c.Type)))
	if err := cutlist.WriteText(w, cl); err != nil {
		s.logger.Error("write cut list", "error", err)
	}
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	saved, c, ok := s.decodeConfiguration(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, normalizedSaved(saved, c))
}

// normalizedSaved rebuilds the persisted form from c, keeping the identity
// fields of the request.
func normalizedSaved(in model.SavedConfiguration, c model.Configuration) model.SavedConfiguration {
	out := model.Current(c, in.Name)
	out.ID = in.ID
	out.UserID = in.UserID
	out.ThumbnailURL = in.ThumbnailURL
	if in.CreatedAt != "" {
		out.CreatedAt = in.CreatedAt
	}
	if in.UpdatedAt != "" {
		out.UpdatedAt = in.UpdatedAt
	}
	return out
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	if f := strings.TrimSpace(r.URL.Query().Get("finish")); f != "" {
		writeJSON(w, http.StatusOK, s.catalog.PatternsByFinish(r.Context(), f))
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.GetAllPatterns(r.Context()))
}

func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	p := s.catalog.GetPatternByID(r.Context(), chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "pattern not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Categories(r.Context()))
}

type finishResponse struct {
	Finish     finish.Type       `json:"finish"`
	Physical   bool              `json:"physical"`
	Properties finish.Properties `json:"properties"`
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	t := finish.Parse(chi.URLParam(r, "finish"))
	props := finish.Resolve(t)
	writeJSON(w, http.StatusOK, finishResponse{Finish: t, Physical: props.Physical(), Properties: props})
}

func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(UserHeader))
}

// writeStoreError maps repository errors onto status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("configuration store", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.configs == nil {
		writeError(w, http.StatusServiceUnavailable, "configuration storage is not configured")
		return false
	}
	return true
}

func (s *Server) handleListConfigurations(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	list, err := s.configs.ListByUser(r.Context(), userID(r))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSaveConfiguration(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	uid := userID(r)
	if uid == "" {
		s.writeStoreError(w, store.ErrUnauthenticated)
		return
	}
	saved, c, ok := s.decodeConfiguration(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(saved.Name) == "" {
		writeError(w, http.StatusBadRequest, "configuration name is required")
		return
	}
	out := normalizedSaved(saved, c)
	if saved.ID == "" {
		// store assigns the id and timestamps
		out.ID = ""
		out.CreatedAt = ""
	}
	stored, err := s.configs.Save(r.Context(), uid, out)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("configuration saved", "id", stored.ID, "user", uid)
	status := http.StatusOK
	if saved.ID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, stored)
}

func (s *Server) handleGetConfiguration(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	uid := userID(r)
	if uid == "" {
		s.writeStoreError(w, store.ErrUnauthenticated)
		return
	}
	c, err := s.configs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if c.UserID != uid {
		s.writeStoreError(w, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.configs.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
