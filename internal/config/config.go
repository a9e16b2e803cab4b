package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// AppConfig represents the application's configuration from .mpfmt.yaml.
type AppConfig struct {
	Theme         string        `yaml:"theme"`
	Format        string        `yaml:"format"`
	Sources       []string      `yaml:"sources"`
	ShowRaw       bool          `yaml:"show_raw"`
	CopyFeedback  time.Duration `yaml:"copy_feedback"`
	ReadyInterval time.Duration `yaml:"ready_interval"`
	ReadyTimeout  time.Duration `yaml:"ready_timeout"`
	SettingsPath  string        `yaml:"settings_path"`
	HostPattern   string        `yaml:"host_pattern"`
	Debug         bool          `yaml:"debug"`
}

// Constants for default values.
const (
	DefaultTheme         = "default"
	DefaultFormat        = "auto"
	DefaultCopyFeedback  = 2 * time.Second
	DefaultReadyInterval = time.Second
	DefaultReadyTimeout  = 30 * time.Second
	DefaultHostPattern   = "https://docs.google.com/spreadsheets/*"

	configFileName = ".mpfmt.yaml"
)

// DefaultSources is the acquisition order when none is configured.
var DefaultSources = []string{"sheet", "stdin", "clipboard"}

// Defaults returns the hardcoded configuration.
func Defaults() *AppConfig {
	return &AppConfig{
		Theme:         DefaultTheme,
		Format:        DefaultFormat,
		Sources:       append([]string(nil), DefaultSources...),
		CopyFeedback:  DefaultCopyFeedback,
		ReadyInterval: DefaultReadyInterval,
		ReadyTimeout:  DefaultReadyTimeout,
		HostPattern:   DefaultHostPattern,
	}
}

// LoadConfig loads .mpfmt.yaml on top of the defaults. A missing file is not
// an error; an unreadable or malformed one is logged and ignored.
func LoadConfig(log *zap.Logger) *AppConfig {
	if log == nil {
		log = zap.NewNop()
	}
	appCfg := Defaults()

	configPath := getConfigPath()
	if configPath == "" {
		log.Debug("no config file found, using defaults")
		return appCfg
	}

	fileCfg, err := readConfigFile(configPath)
	if err != nil {
		log.Warn("ignoring config file", zap.String("path", configPath), zap.Error(err))
		return appCfg
	}
	mergeFile(appCfg, fileCfg)
	log.Debug("loaded config", zap.String("path", configPath), zap.String("theme", appCfg.Theme))
	return appCfg
}

func readConfigFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fileCfg AppConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fileCfg, nil
}

// mergeFile copies every value the file sets onto base.
func mergeFile(base, file *AppConfig) {
	if file.Theme != "" {
		base.Theme = file.Theme
	}
	if file.Format != "" {
		base.Format = file.Format
	}
	if len(file.Sources) > 0 {
		base.Sources = file.Sources
	}
	base.ShowRaw = file.ShowRaw
	if file.CopyFeedback > 0 {
		base.CopyFeedback = file.CopyFeedback
	}
	if file.ReadyInterval > 0 {
		base.ReadyInterval = file.ReadyInterval
	}
	if file.ReadyTimeout > 0 {
		base.ReadyTimeout = file.ReadyTimeout
	}
	if file.SettingsPath != "" {
		base.SettingsPath = file.SettingsPath
	}
	if file.HostPattern != "" {
		base.HostPattern = file.HostPattern
	}
	base.Debug = file.Debug
}

// getConfigPath tries to find the .mpfmt.yaml configuration file.
// It checks local directory first, then XDG UserConfigDir (if valid).
func getConfigPath() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "mpfmt", configFileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	} else if !errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return ""
}
