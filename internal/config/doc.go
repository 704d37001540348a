// Package config handles configuration loading and merging for ctsreport.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--out-dir, --page-size, --title, --theme, --format, --top, --debug)
//  2. Environment variables (CTSREPORT_OUT_DIR, CTSREPORT_PAGE_SIZE, CTSREPORT_THEME,
//     NO_COLOR, CTSREPORT_DEBUG)
//  3. YAML config file (--config, else .ctsreport.yaml in the working directory,
//     else ~/.config/ctsreport/.ctsreport.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - OutDir: directory that receives paginated report pages (default cts_report)
//   - PageSize: records per page; values <= 0 fall back to 100
//   - Theme: terminal summary theme (default, orca, mono)
//   - Format: summary format (auto, terminal, llm, json)
//   - NoColor: forces the mono theme
//
// An unreadable or malformed YAML file is reported as a warning and defaults
// are used. A file named explicitly with --config must exist.
package config
