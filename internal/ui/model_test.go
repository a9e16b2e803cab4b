package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/mpfmt/internal/clip"
	"github.com/dkoosis/mpfmt/internal/message"
	"github.com/dkoosis/mpfmt/pkg/render"
)

const mpv1Cell = `{"v":"1","tid":"UA-12345-1","cid":"555","t":"pageview","cd1":"member"}`

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, w clip.Writer) Model {
	t.Helper()
	m := New(Options{Theme: render.MonoTheme(), Writer: w, FeedbackDelay: time.Millisecond})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, message.NewDataReady(mpv1Cell))
	return m
}

func TestModel_LoadedHandshake(t *testing.T) {
	calls := 0
	m := New(Options{
		Theme: render.MonoTheme(),
		OnLoaded: func() tea.Msg {
			calls++
			return message.NewDataReady(mpv1Cell)
		},
	})

	initMsg := m.Init()()
	m, cmd := update(t, m, initMsg)
	require.NotNil(t, cmd)
	dataMsg := cmd()
	assert.Equal(t, 1, calls)
	assert.IsType(t, message.DataReady{}, dataMsg)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.View(), "Waiting for cell data")

	m, _ = update(t, m, dataMsg)
	view := m.View()
	assert.Contains(t, view, "MPV1")
	assert.Contains(t, view, "General Parameters")
	assert.Contains(t, view, "c: Copy Query String")
}

func TestModel_IgnoresRepeatedData(t *testing.T) {
	m := loaded(t, func(string) error { return nil })
	m, _ = update(t, m, message.NewDataReady("not json"))

	assert.NotContains(t, m.View(), "Invalid JSON data")
	assert.Contains(t, m.View(), "MPV1")
}

func TestModel_CopyFeedback(t *testing.T) {
	var copied []string
	m := loaded(t, func(s string) error {
		copied = append(copied, s)
		return nil
	})

	m, cmd := update(t, m, key("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"v=1&tid=UA-12345-1&cid=555&t=pageview&cd1=member"}, copied)
	assert.Equal(t, "Copied!", m.CopyText())

	m, _ = update(t, m, cmd())
	assert.Equal(t, "Copy Query String", m.CopyText())
}

func TestModel_CopyFailureDoesNotBlock(t *testing.T) {
	fail := true
	m := loaded(t, func(string) error {
		if fail {
			return errors.New("no display")
		}
		return nil
	})

	m, cmd := update(t, m, key("c"))
	assert.Equal(t, "Copy Failed", m.CopyText())
	assert.ErrorIs(t, m.Err(), clip.ErrClipboard)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "Copy Query String", m.CopyText())

	fail = false
	m, _ = update(t, m, key("c"))
	assert.Equal(t, "Copied!", m.CopyText())
}

func TestModel_StaleResetKeepsNewerFeedback(t *testing.T) {
	m := loaded(t, func(string) error { return nil })

	m, first := update(t, m, key("c"))
	m, _ = update(t, m, key("c"))
	m, _ = update(t, m, first())
	assert.Equal(t, "Copied!", m.CopyText())
}

func TestModel_ErrorHasNoCopy(t *testing.T) {
	m := New(Options{Theme: render.MonoTheme()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, message.NewDataReady(`{"foo":"bar"}`))

	assert.Contains(t, m.View(), "Unable to detect Measurement Protocol version. Data format not recognized.")
	assert.Equal(t, "", m.CopyText())
	_, cmd := update(t, m, key("c"))
	assert.Nil(t, cmd)
}

func TestModel_ToggleRaw(t *testing.T) {
	m := loaded(t, nil)
	assert.NotContains(t, m.View(), "Raw Data")

	m, _ = update(t, m, key("r"))
	assert.Contains(t, m.View(), "Raw Data")
}

func TestModel_DisableCloses(t *testing.T) {
	m := loaded(t, nil)

	m, cmd := update(t, m, message.NewToggled(true))
	assert.False(t, m.Closed())
	assert.Nil(t, cmd)

	m, cmd = update(t, m, message.NewToggled(false))
	assert.True(t, m.Closed())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t, nil)
	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyEsc}} {
		_, cmd := update(t, m, k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}
