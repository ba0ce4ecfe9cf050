package config

import (
	"github.com/cardatelier/cardforge/cardforge"
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Config      *cardforge.Config
	Debug       bool
	Environment string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *cardforge.Config, debug bool) *WebAppConfig {
	environment := "production"
	if debug {
		environment = "development"
	}

	return &WebAppConfig{
		Config:      cfg,
		Debug:       debug,
		Environment: environment,
	}
}

// GetDatabaseConfig returns the database configuration
func (w *WebAppConfig) GetDatabaseConfig() cardforge.DBConfig {
	return w.Config.DB
}

// GetWebConfig returns the web configuration
func (w *WebAppConfig) GetWebConfig() cardforge.WebConfig {
	return w.Config.Web
}

// GetRendererConfig returns the rendering service configuration
func (w *WebAppConfig) GetRendererConfig() cardforge.RendererConfig {
	return w.Config.Renderer
}

// GetSpacesConfig returns the spaces configuration
func (w *WebAppConfig) GetSpacesConfig() cardforge.SpacesConfig {
	return w.Config.Spaces
}

// GetLogConfig returns the log configuration
func (w *WebAppConfig) GetLogConfig() cardforge.LogConfig {
	return w.Config.Log
}

// SessionKey returns the secret used to sign session cookies.
func (w *WebAppConfig) SessionKey() string {
	return w.Config.Auth.SessionSecret
}
