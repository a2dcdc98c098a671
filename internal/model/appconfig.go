package model

import (
	"os"
	"strconv"
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Cut list material codes
	MaterialCode     string `json:"material_code"`
	DoorMaterialCode string `json:"door_material_code"`
	BackPanelCode    string `json:"back_panel_code"`

	// Nesting defaults
	DefaultKerfWidth float64 `json:"default_kerf_width"`
	DefaultEdgeTrim  float64 `json:"default_edge_trim"`
	BandingWaste     float64 `json:"banding_waste"` // percent

	Thickness ThicknessModel `json:"thickness"`

	// Pricing
	PricingStrategy string `json:"pricing_strategy"` // "multiplyVolumeTerm" or "multiplyTotal"

	// Pattern catalogue
	DBPath                string `json:"db_path"`
	CatalogTimeoutSeconds int    `json:"catalog_timeout_seconds"`
	CatalogRetries        int    `json:"catalog_retries"`

	// HTTP server
	ListenAddr string `json:"listen_addr"`

	RecentConfigurations []string `json:"recent_configurations"`
}

// DefaultAppConfig returns an AppConfig populated with the production defaults.
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		MaterialCode:          "U780_9",
		DoorMaterialCode:      "H1334_9",
		BackPanelCode:         "W1000_9",
		DefaultKerfWidth:      defaults.KerfWidth,
		DefaultEdgeTrim:       defaults.EdgeTrim,
		BandingWaste:          10,
		Thickness:             DefaultThicknessModel(),
		PricingStrategy:       "multiplyVolumeTerm",
		DBPath:                "furnicraft.db",
		CatalogTimeoutSeconds: 5,
		CatalogRetries:        1,
		ListenAddr:            ":8080",
		RecentConfigurations:  []string{},
	}
}

// ApplyToSettings copies the nesting defaults into a CutSettings struct.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	s.KerfWidth = c.DefaultKerfWidth
	s.EdgeTrim = c.DefaultEdgeTrim
}

// ApplyEnv overrides fields from FURNICRAFT_* environment variables.
func (c *AppConfig) ApplyEnv() {
	if v := os.Getenv("FURNICRAFT_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("FURNICRAFT_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("FURNICRAFT_PRICING_STRATEGY"); v != "" {
		c.PricingStrategy = v
	}
	if v := os.Getenv("FURNICRAFT_CATALOG_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.CatalogTimeoutSeconds = n
		}
	}
}
