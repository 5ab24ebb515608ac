package tui

import (
	"errors"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driving"
)

// Ports bundles everything the TUI needs from the core. The browser is
// the only mutation surface; geometry is static page data for the plan
// view.
type Ports struct {
	// Browser is the filter engine driving port.
	Browser driving.Browser

	// Settings are the resolved application settings.
	Settings *domain.AppSettings

	// Geometries is the site-plan geometry, joined by record identifier.
	// May be empty when no coordinates dataset is configured.
	Geometries []domain.Geometry

	// Page names this page instance for handoff URLs.
	Page string
}

// Validate checks that the required ports are present.
func (p *Ports) Validate() error {
	if p == nil || p.Browser == nil {
		return errors.New("browser port is required")
	}
	if p.Settings == nil {
		return errors.New("settings are required")
	}
	return nil
}
