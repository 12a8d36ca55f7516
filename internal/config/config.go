package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"rorkforge/internal/events"
	"rorkforge/internal/export"
	"rorkforge/internal/surface"
)

// Config holds application configuration.
type Config struct {
	Export  ExportConfig
	Preview PreviewConfig
	Session SessionConfig
	Shell   ShellConfig
}

// ExportConfig is the static manifest metadata.
type ExportConfig struct {
	Ext       string
	Deps      []string
	Framework string
	Style     string
}

// PreviewConfig seeds the preview surface.
type PreviewConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	MainURL    string `mapstructure:"main_url"`
	DefaultURL string `mapstructure:"default_url"`
	// HostURL is the address of the hosting page; its staging query
	// parameter, when present, overrides DefaultURL.
	HostURL string `mapstructure:"host_url"`
}

// SessionConfig controls the editing session.
type SessionConfig struct {
	Document     string
	Watch        bool
	Checkpoint   string
	HistoryLimit int `mapstructure:"history_limit"`
}

type ShellConfig struct {
	DefaultPage string `mapstructure:"default_page"`
}

// Load reads configuration from file and env. Env var overrides use prefix RORKFORGE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	def := export.DefaultOptions()
	v.SetDefault("export.ext", def.Ext)
	v.SetDefault("export.deps", def.Deps)
	v.SetDefault("export.framework", def.Framework)
	v.SetDefault("export.style", def.Style)
	v.SetDefault("preview.base_url", "https://vercel-preview.example/")
	v.SetDefault("preview.main_url", "")
	v.SetDefault("preview.default_url", "")
	v.SetDefault("preview.host_url", "")
	v.SetDefault("session.document", "")
	v.SetDefault("session.watch", false)
	v.SetDefault("session.checkpoint", "@every 30s")
	v.SetDefault("session.history_limit", 40)
	v.SetDefault("shell.default_page", string(events.PageVision))

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("RORKFORGE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "rorkforge"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RORKFORGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := events.ParsePageKey(c.Shell.DefaultPage); err != nil {
		return Config{}, fmt.Errorf("shell.default_page: %w", err)
	}
	return c, nil
}

// ExportOptions converts the export section to exporter options.
func (c Config) ExportOptions() export.Options {
	return export.Options{
		Ext:       c.Export.Ext,
		Deps:      c.Export.Deps,
		Framework: c.Export.Framework,
		Style:     c.Export.Style,
	}
}

// InitialStaging returns the staging target the preview starts with: the
// host address's staging parameter if present, else the configured default.
func (c Config) InitialStaging() string {
	if s, ok := surface.StagingFromURL(c.Preview.HostURL); ok {
		return s
	}
	return c.Preview.DefaultURL
}
