package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/rs/zerolog"
)

// Formats lists the accepted --format values.
var Formats = []string{"auto", "terminal", "llm", "json"}

// Themes lists the accepted theme names.
var Themes = []string{"default", "orca", "mono"}

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ConfigPath string
	OutDir     string
	PageSize   int
	Title      string
	Theme      string
	Format     string
	Top        int
	Debug      bool

	// Flags to track if they were explicitly set by the user
	OutDirSet   bool
	PageSizeSet bool
	TitleSet    bool
	ThemeSet    bool
	FormatSet   bool
	TopSet      bool
	DebugSet    bool
}

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	OutDir    string
	PageSize  int
	Title     string
	Theme     string
	Format    string
	Top       int
	MaxFailed int
	NoColor   bool
	Debug     bool

	// Resolution metadata (for debugging)
	ConfigPath     string // file the YAML layer came from, "" if none
	OutDirSource   string // "cli", "env", "file", "default"
	PageSizeSource string
	ThemeSource    string
}

// ResolveConfig resolves configuration from all sources with explicit priority order.
// Warnings about the config file are written to log.
func ResolveConfig(cliFlags CliFlags, log zerolog.Logger) (*ResolvedConfig, error) {
	appCfg, path, err := LoadConfig(cliFlags.ConfigPath, log)
	if err != nil {
		return nil, err
	}

	fileSource := "default"
	if path != "" {
		fileSource = "file"
	}
	resolved := &ResolvedConfig{
		OutDir:         appCfg.OutDir,
		PageSize:       appCfg.PageSize,
		Title:          appCfg.Title,
		Theme:          appCfg.Theme,
		Format:         appCfg.Format,
		Top:            appCfg.Top,
		MaxFailed:      appCfg.MaxFailed,
		NoColor:        appCfg.NoColor,
		Debug:          appCfg.Debug,
		ConfigPath:     path,
		OutDirSource:   fileSource,
		PageSizeSource: fileSource,
		ThemeSource:    fileSource,
	}

	// OutDir: CLI > ENV > file > default
	if cliFlags.OutDirSet {
		resolved.OutDir, resolved.OutDirSource = cliFlags.OutDir, "cli"
	} else if v := os.Getenv("CTSREPORT_OUT_DIR"); v != "" {
		resolved.OutDir, resolved.OutDirSource = v, "env"
	}

	// PageSize: CLI > ENV > file > default
	if cliFlags.PageSizeSet {
		resolved.PageSize, resolved.PageSizeSource = cliFlags.PageSize, "cli"
	} else if v := os.Getenv("CTSREPORT_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warn().Msgf("ignoring CTSREPORT_PAGE_SIZE=%q: not a number", v)
		} else {
			resolved.PageSize, resolved.PageSizeSource = n, "env"
		}
	}
	if resolved.PageSize <= 0 {
		resolved.PageSize = DefaultPageSize
	}

	// Theme: CLI > ENV > file > default; NO_COLOR forces mono
	if cliFlags.ThemeSet {
		resolved.Theme, resolved.ThemeSource = cliFlags.Theme, "cli"
	} else if v := os.Getenv("CTSREPORT_THEME"); v != "" {
		resolved.Theme, resolved.ThemeSource = v, "env"
	}
	if os.Getenv("NO_COLOR") != "" {
		resolved.NoColor = true
	}
	if !slices.Contains(Themes, resolved.Theme) {
		log.Warn().Msgf("unknown theme %q, using %s", resolved.Theme, DefaultTheme)
		resolved.Theme, resolved.ThemeSource = DefaultTheme, "default"
	}
	if resolved.NoColor {
		resolved.Theme = "mono"
	}

	if cliFlags.TitleSet {
		resolved.Title = cliFlags.Title
	}
	if cliFlags.FormatSet {
		resolved.Format = cliFlags.Format
	}
	if cliFlags.TopSet {
		resolved.Top = cliFlags.Top
	}

	// Debug: CLI > ENV > file
	if cliFlags.DebugSet {
		resolved.Debug = cliFlags.Debug
	} else if os.Getenv("CTSREPORT_DEBUG") != "" {
		resolved.Debug = true
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

func validateResolvedConfig(cfg *ResolvedConfig) error {
	if !slices.Contains(Formats, cfg.Format) {
		return fmt.Errorf("invalid format value: %s (must be: auto, terminal, llm, json)", cfg.Format)
	}
	if cfg.OutDir == "" {
		return fmt.Errorf("out_dir cannot be empty")
	}
	if cfg.Top < 0 {
		return fmt.Errorf("top must not be negative, got: %d", cfg.Top)
	}
	return nil
}
