// Package settings holds the single enabled/disabled switch that decides
// whether the formatter affordance is offered at all, and notifies live
// consumers when it changes.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/mpfmt/internal/message"
)

// DefaultHostPattern matches the spreadsheet application consumers run in.
const DefaultHostPattern = "https://docs.google.com/spreadsheets/*"

// Observer is a live consumer of toggle notifications.
type Observer interface {
	// Location is the URL the consumer runs at; only consumers matching
	// the host pattern are notified.
	Location() string
	Notify(message.Toggled) error
}

// Consumer adapts a function to Observer.
type Consumer struct {
	URL string
	Fn  func(message.Toggled) error
}

func (c Consumer) Location() string { return c.URL }

func (c Consumer) Notify(m message.Toggled) error { return c.Fn(m) }

type fileData struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Store is an explicit handle on the settings file. It is safe for
// concurrent use.
type Store struct {
	path        string
	hostPattern string
	log         *zap.Logger

	writeMu sync.Mutex // serialises Set and Toggle

	mu        sync.Mutex
	enabled   bool
	observers map[int]Observer
	nextID    int
}

// DefaultPath returns $XDG_CONFIG_HOME/mpfmt/settings.yaml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("settings: locating config dir: %w", err)
	}
	return filepath.Join(dir, "mpfmt", "settings.yaml"), nil
}

// Open loads the store at path. A missing file means enabled.
func Open(path, hostPattern string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if hostPattern == "" {
		hostPattern = DefaultHostPattern
	}
	s := &Store{
		path:        path,
		hostPattern: hostPattern,
		log:         log.Named("settings"),
		enabled:     true,
		observers:   make(map[int]Observer),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Enabled reports the current state.
func (s *Store) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Load re-reads the file.
func (s *Store) Load() error {
	_, err := s.reload()
	return err
}

func (s *Store) reload() (changed bool, err error) {
	enabled, err := readFile(s.path)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	changed = s.enabled != enabled
	s.enabled = enabled
	s.mu.Unlock()
	return changed, nil
}

func readFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("settings: reading %s: %w", path, err)
	}
	var fd fileData
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return false, fmt.Errorf("settings: parsing %s: %w", path, err)
	}
	if fd.Enabled == nil {
		return true, nil
	}
	return *fd.Enabled, nil
}

// Set saves the new state and broadcasts it to matching observers.
func (s *Store) Set(enabled bool) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.set(enabled)
}

func (s *Store) set(enabled bool) error {
	if err := s.save(enabled); err != nil {
		return err
	}
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
	s.log.Debug("saved enabled state", zap.Bool("enabled", enabled), zap.String("path", s.path))

	s.Broadcast(enabled)
	return nil
}

// Toggle flips the state and returns the new value.
func (s *Store) Toggle() (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	next := !s.Enabled()
	return next, s.set(next)
}

func (s *Store) save(enabled bool) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("settings: creating dir: %w", err)
	}
	data, err := yaml.Marshal(fileData{Enabled: &enabled})
	if err != nil {
		return fmt.Errorf("settings: encoding: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("settings: writing: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: writing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: writing: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: replacing %s: %w", s.path, err)
	}
	return nil
}

// Subscribe registers o and returns a function that removes it.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Broadcast sends a toggled message to every observer whose location
// matches the host pattern. Delivery failures are logged and skipped.
// It returns the number of observers that accepted the message.
func (s *Store) Broadcast(enabled bool) int {
	s.mu.Lock()
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	targets := make([]Observer, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, s.observers[id])
	}
	s.mu.Unlock()

	msg := message.NewToggled(enabled)
	delivered := 0
	matched := 0
	for _, o := range targets {
		if !MatchURL(s.hostPattern, o.Location()) {
			continue
		}
		matched++
		if err := o.Notify(msg); err != nil {
			s.log.Info("could not notify consumer", zap.String("url", o.Location()), zap.Error(err))
			continue
		}
		delivered++
	}
	s.log.Debug("broadcast toggle", zap.Bool("enabled", enabled), zap.Int("consumers", matched), zap.Int("delivered", delivered))
	return delivered
}

// Confirmation is the text shown after the switch changes.
func Confirmation(enabled bool) string {
	if enabled {
		return "Formatter enabled! Open views pick up the change; run mpfmt again to format a cell."
	}
	return "Formatter disabled. Open views will close and mpfmt will refuse to format."
}

// Status is the one-line state description.
func Status(enabled bool) string {
	if enabled {
		return "mpfmt is enabled"
	}
	return "mpfmt is disabled"
}

// MatchURL matches url against a pattern in which '*' stands for any run
// of characters.
func MatchURL(pattern, url string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == url
	}
	if !strings.HasPrefix(url, parts[0]) {
		return false
	}
	rest := url[len(parts[0]):]
	last := parts[len(parts)-1]
	for _, p := range parts[1 : len(parts)-1] {
		i := strings.Index(rest, p)
		if i < 0 {
			return false
		}
		rest = rest[i+len(p):]
	}
	return strings.HasSuffix(rest, last)
}
