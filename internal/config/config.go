package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working and XDG config directories.
const FileName = ".ctsreport.yaml"

// Constants for default values.
const (
	DefaultOutDir    = "cts_report"
	DefaultPageSize  = 100
	DefaultTitle     = "Vulkan CTS Report"
	DefaultTheme     = "default"
	DefaultFormat    = "auto"
	DefaultTop       = 5
	DefaultMaxFailed = 20
)

// AppConfig represents the contents of .ctsreport.yaml.
type AppConfig struct {
	OutDir    string `yaml:"out_dir"`
	PageSize  int    `yaml:"page_size"`
	Title     string `yaml:"title"`
	Theme     string `yaml:"theme"`
	Format    string `yaml:"format"`
	Top       int    `yaml:"top"`
	MaxFailed int    `yaml:"max_failed"`
	NoColor   bool   `yaml:"no_color"`
	Debug     bool   `yaml:"debug"`
}

// Defaults returns the hardcoded configuration.
func Defaults() *AppConfig {
	return &AppConfig{
		OutDir:    DefaultOutDir,
		PageSize:  DefaultPageSize,
		Title:     DefaultTitle,
		Theme:     DefaultTheme,
		Format:    DefaultFormat,
		Top:       DefaultTop,
		MaxFailed: DefaultMaxFailed,
	}
}

// LoadConfig loads the YAML configuration on top of Defaults.
// explicit is the --config value; when empty the file is searched for.
// Returns the config and the path it was read from ("" for defaults only).
func LoadConfig(explicit string, log zerolog.Logger) (*AppConfig, string, error) {
	appCfg := Defaults()

	configPath := explicit
	if configPath == "" {
		configPath = getConfigPath(log)
	}
	if configPath == "" {
		log.Debug().Msg("no config file found, using defaults")
		return appCfg, "", nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if explicit != "" {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Msgf("error reading config file %s: %v. Using defaults.", configPath, err)
		}
		return appCfg, "", nil
	}

	var fileCfg AppConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		log.Warn().Msgf("error parsing config file %s: %v. Using defaults.", configPath, err)
		return appCfg, "", nil
	}

	merge(appCfg, &fileCfg)
	log.Debug().Str("path", configPath).Msg("loaded config")
	return appCfg, configPath, nil
}

// merge copies the non-zero fields of src onto dst.
func merge(dst, src *AppConfig) {
	if src.OutDir != "" {
		dst.OutDir = src.OutDir
	}
	if src.PageSize != 0 {
		dst.PageSize = src.PageSize
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Top != 0 {
		dst.Top = src.Top
	}
	if src.MaxFailed != 0 {
		dst.MaxFailed = src.MaxFailed
	}
	dst.NoColor = dst.NoColor || src.NoColor
	dst.Debug = dst.Debug || src.Debug
}

// getConfigPath checks the local directory first, then the user config dir.
func getConfigPath(log zerolog.Logger) string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		log.Debug().Err(err).Msg("user config dir unavailable")
		return ""
	}
	xdgPath := filepath.Join(configHome, "ctsreport", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
