package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dkoosis/mpfmt/internal/message"
)

const sheetURL = "https://docs.google.com/spreadsheets/d/abc/edit"

type recorder struct {
	mu   sync.Mutex
	url  string
	got  []message.Toggled
	fail bool
}

func (r *recorder) Location() string { return r.url }

func (r *recorder) Notify(m message.Toggled) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("consumer not loaded")
	}
	r.got = append(r.got, m)
	return nil
}

func (r *recorder) messages() []message.Toggled {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]message.Toggled(nil), r.got...)
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "mpfmt", "settings.yaml"), "", zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestOpen_DefaultsToEnabled(t *testing.T) {
	s := openTemp(t)
	assert.True(t, s.Enabled())
}

func TestOpen_MissingKeyDefaultsToEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("# nothing here\n"), 0o600))

	s, err := Open(path, "", nil)
	require.NoError(t, err)
	assert.True(t, s.Enabled())
}

func TestOpen_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enabled: [\n"), 0o600))

	_, err := Open(path, "", nil)
	assert.Error(t, err)
}

func TestSet_PersistsAcrossOpen(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.Set(false))
	assert.False(t, s.Enabled())

	again, err := Open(s.Path(), "", nil)
	require.NoError(t, err)
	assert.False(t, again.Enabled())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "enabled: false\n", string(data))
}

func TestToggle(t *testing.T) {
	s := openTemp(t)
	v, err := s.Toggle()
	require.NoError(t, err)
	assert.False(t, v)
	v, err = s.Toggle()
	require.NoError(t, err)
	assert.True(t, v)
}

func TestToggle_Concurrent(t *testing.T) {
	s := openTemp(t)

	const n = 10
	results := make(chan bool, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.Toggle()
			assert.NoError(t, err)
			results <- v
		}()
	}
	wg.Wait()
	close(results)

	disabled := 0
	for v := range results {
		if !v {
			disabled++
		}
	}
	assert.Equal(t, n/2, disabled, "every toggle must flip the state it observed")
	assert.True(t, s.Enabled())

	reopened, err := Open(s.Path(), "", zap.NewNop())
	require.NoError(t, err)
	assert.True(t, reopened.Enabled())
}

func TestBroadcast_OnlyMatchingConsumers(t *testing.T) {
	s := openTemp(t)
	sheet := &recorder{url: sheetURL}
	other := &recorder{url: "https://example.com/"}
	s.Subscribe(sheet)
	s.Subscribe(other)

	require.NoError(t, s.Set(false))

	assert.Equal(t, []message.Toggled{{Type: "toggled", Enabled: false}}, sheet.messages())
	assert.Empty(t, other.messages())
}

func TestBroadcast_FailureIsNotFatal(t *testing.T) {
	s := openTemp(t)
	broken := &recorder{url: sheetURL, fail: true}
	ok := &recorder{url: sheetURL}
	s.Subscribe(broken)
	s.Subscribe(ok)

	require.NoError(t, s.Set(false))
	assert.Len(t, ok.messages(), 1)
	assert.Equal(t, 1, s.Broadcast(true))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := openTemp(t)
	r := &recorder{url: sheetURL}
	unsubscribe := s.Subscribe(r)
	unsubscribe()

	require.NoError(t, s.Set(false))
	assert.Empty(t, r.messages())
}

func TestMatchURL(t *testing.T) {
	assert.True(t, MatchURL(DefaultHostPattern, sheetURL))
	assert.True(t, MatchURL(DefaultHostPattern, "https://docs.google.com/spreadsheets/"))
	assert.False(t, MatchURL(DefaultHostPattern, "https://docs.google.com/document/d/1"))
	assert.True(t, MatchURL("*", "anything"))
	assert.True(t, MatchURL("https://*.test/*/edit", "https://a.test/x/y/edit"))
	assert.False(t, MatchURL("https://*.test/*/edit", "https://a.test/x/y/view"))
	assert.True(t, MatchURL("exact", "exact"))
	assert.False(t, MatchURL("exact", "exactly"))
}

func TestConfirmationAndStatusDiffer(t *testing.T) {
	assert.NotEqual(t, Confirmation(true), Confirmation(false))
	assert.Equal(t, "mpfmt is enabled", Status(true))
	assert.Equal(t, "mpfmt is disabled", Status(false))
}

func TestWatch_BroadcastsExternalChange(t *testing.T) {
	s := openTemp(t)
	r := &recorder{url: sheetURL}
	s.Subscribe(r)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	other, err := Open(s.Path(), "", nil)
	require.NoError(t, err)

	// The watcher registers asynchronously; keep rewriting until it notices.
	require.Eventually(t, func() bool {
		_ = other.Set(false)
		return len(r.messages()) > 0
	}, 5*time.Second, 50*time.Millisecond)

	assert.False(t, s.Enabled())
	assert.False(t, r.messages()[0].Enabled)

	cancel()
	require.NoError(t, <-done)
}
