package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	got := LoadConfig(zap.NewNop())
	if diff := cmp.Diff(Defaults(), got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_LocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	yaml := `theme: orca
format: plain
sources: [stdin, clipboard]
show_raw: true
copy_feedback: 500ms
ready_interval: 250ms
ready_timeout: 5s
host_pattern: "https://example.com/*"
`
	if err := os.WriteFile(filepath.Join(dir, ".mpfmt.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	want := &AppConfig{
		Theme:         "orca",
		Format:        "plain",
		Sources:       []string{"stdin", "clipboard"},
		ShowRaw:       true,
		CopyFeedback:  500 * time.Millisecond,
		ReadyInterval: 250 * time.Millisecond,
		ReadyTimeout:  5 * time.Second,
		HostPattern:   "https://example.com/*",
	}
	if diff := cmp.Diff(want, LoadConfig(nil)); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_XDGFile(t *testing.T) {
	t.Chdir(t.TempDir())
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	if err := os.MkdirAll(filepath.Join(xdg, "mpfmt"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(xdg, "mpfmt", ".mpfmt.yaml"), []byte("theme: mono\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := LoadConfig(nil).Theme; got != "mono" {
		t.Errorf("Theme = %q, want mono", got)
	}
}

func TestLoadConfig_MalformedFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := os.WriteFile(filepath.Join(dir, ".mpfmt.yaml"), []byte("theme: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Defaults(), LoadConfig(nil)); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}
