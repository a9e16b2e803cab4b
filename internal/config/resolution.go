package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Theme names understood by the terminal renderer.
var validThemes = []string{"default", "orca", "mono"}

// Output formats.
var validFormats = []string{"auto", "terminal", "plain", "json"}

// Acquisition source names.
var validSources = []string{"sheet", "stdin", "clipboard"}

// CliFlags captures command line values and whether each was set explicitly.
type CliFlags struct {
	Theme        string
	ThemeSet     bool
	Format       string
	FormatSet    bool
	Debug        bool
	DebugSet     bool
	ShowRaw      bool
	ShowRawSet   bool
	SettingsPath string
	SettingsSet  bool
	Sources      []string
	SourcesSet   bool
}

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	Theme         string
	Format        string
	Sources       []string
	ShowRaw       bool
	NoColor       bool
	Debug         bool
	CopyFeedback  time.Duration
	ReadyInterval time.Duration
	ReadyTimeout  time.Duration
	SettingsPath  string
	HostPattern   string

	// Resolution metadata (for debugging)
	ThemeSource  string // "cli", "env", "no-color", "file"
	FormatSource string // "cli", "env", "file"
	DebugSource  string // "cli", "env", "file"
}

// ResolveConfig resolves configuration with the order
// CLI > environment > file > defaults.
func ResolveConfig(cli CliFlags, log *zap.Logger) (*ResolvedConfig, error) {
	return resolve(cli, LoadConfig(log))
}

func resolve(cli CliFlags, appCfg *AppConfig) (*ResolvedConfig, error) {
	resolved := &ResolvedConfig{
		Theme:         appCfg.Theme,
		Format:        appCfg.Format,
		Sources:       appCfg.Sources,
		ShowRaw:       appCfg.ShowRaw,
		Debug:         appCfg.Debug,
		CopyFeedback:  appCfg.CopyFeedback,
		ReadyInterval: appCfg.ReadyInterval,
		ReadyTimeout:  appCfg.ReadyTimeout,
		SettingsPath:  appCfg.SettingsPath,
		HostPattern:   appCfg.HostPattern,
		ThemeSource:   "file",
		FormatSource:  "file",
		DebugSource:   "file",
	}

	// Theme: CLI > MPFMT_THEME > NO_COLOR > file.
	switch {
	case cli.ThemeSet:
		resolved.Theme, resolved.ThemeSource = cli.Theme, "cli"
	case os.Getenv("MPFMT_THEME") != "":
		resolved.Theme, resolved.ThemeSource = os.Getenv("MPFMT_THEME"), "env"
	}
	if os.Getenv("NO_COLOR") != "" {
		resolved.NoColor = true
		if resolved.ThemeSource != "cli" {
			resolved.Theme, resolved.ThemeSource = "mono", "no-color"
		}
	}

	if cli.FormatSet {
		resolved.Format, resolved.FormatSource = cli.Format, "cli"
	} else if env := os.Getenv("MPFMT_FORMAT"); env != "" {
		resolved.Format, resolved.FormatSource = env, "env"
	}

	if cli.DebugSet {
		resolved.Debug, resolved.DebugSource = cli.Debug, "cli"
	} else if env := getEnvBool("MPFMT_DEBUG"); env != nil {
		resolved.Debug, resolved.DebugSource = *env, "env"
	}

	if cli.ShowRawSet {
		resolved.ShowRaw = cli.ShowRaw
	}
	if cli.SettingsSet {
		resolved.SettingsPath = cli.SettingsPath
	}
	if cli.SourcesSet {
		resolved.Sources = cli.Sources
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

// getEnvBool reads the first set variable among keys as a boolean.
// Returns nil if none are set.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
		// Any other non-empty value counts as true, like NO_COLOR.
		t := true
		return &t
	}
	return nil
}

func validateResolvedConfig(cfg *ResolvedConfig) error {
	if !contains(validThemes, cfg.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %s)", cfg.Theme, strings.Join(validThemes, ", "))
	}
	if !contains(validFormats, cfg.Format) {
		return fmt.Errorf("unknown format %q (want one of %s)", cfg.Format, strings.Join(validFormats, ", "))
	}
	for _, s := range cfg.Sources {
		if !contains(validSources, s) {
			return fmt.Errorf("unknown source %q (want one of %s)", s, strings.Join(validSources, ", "))
		}
	}
	if cfg.CopyFeedback <= 0 {
		return fmt.Errorf("copy_feedback must be positive, got %s", cfg.CopyFeedback)
	}
	if cfg.ReadyInterval <= 0 {
		return fmt.Errorf("ready_interval must be positive, got %s", cfg.ReadyInterval)
	}
	if cfg.ReadyTimeout < cfg.ReadyInterval {
		return fmt.Errorf("ready_timeout %s is shorter than ready_interval %s", cfg.ReadyTimeout, cfg.ReadyInterval)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
