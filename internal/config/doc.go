// Package config handles configuration loading and merging for mpfmt.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--theme, --format, --debug, --raw, --settings)
//  2. Environment variables (MPFMT_THEME, MPFMT_FORMAT, MPFMT_DEBUG, NO_COLOR)
//  3. YAML config file (.mpfmt.yaml in local directory or ~/.config/mpfmt/.mpfmt.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # Key Configuration Options
//
//   - Theme: terminal theme (default, orca, mono)
//   - Format: output mode (auto, terminal, plain, json)
//   - Sources: order in which acquisition sources are tried (sheet, stdin, clipboard)
//   - CopyFeedback: how long copy feedback stays visible in the viewer
//   - ReadyInterval / ReadyTimeout: polling window used by --wait
//   - SettingsPath / HostPattern: location of the enabled switch and the URL
//     pattern live consumers must match
//
// # Environment Variables
//
//   - MPFMT_THEME, MPFMT_FORMAT: override theme and output mode
//   - MPFMT_DEBUG: set to "true" or "1" to enable debug logging
//   - NO_COLOR: any non-empty value forces the mono theme
package config
