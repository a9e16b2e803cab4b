// Package ui is the interactive viewer: the formatted groups in a scrolling
// viewport with a copy key and transient copy feedback.
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/dkoosis/mpfmt/internal/clip"
	"github.com/dkoosis/mpfmt/internal/message"
	"github.com/dkoosis/mpfmt/pkg/format"
	"github.com/dkoosis/mpfmt/pkg/mapper"
	"github.com/dkoosis/mpfmt/pkg/pattern"
	"github.com/dkoosis/mpfmt/pkg/render"
)

// chrome is the number of lines used by the header and footer.
const chrome = 3

// Options configures a viewer.
type Options struct {
	Theme         render.Theme
	ShowRaw       bool
	Writer        clip.Writer
	FeedbackDelay time.Duration
	Log           *zap.Logger

	// OnLoaded is called once the viewer has loaded. The message it returns,
	// normally a message.DataReady, is delivered to the viewer.
	OnLoaded func() tea.Msg
}

type loadedMsg struct{}

type resetMsg struct{ seq int }

// Model is the bubbletea model for the viewer.
type Model struct {
	opts     Options
	viewport viewport.Model
	width    int
	ready    bool // window size known
	received bool // data-ready handled
	closed   bool // disabled while open

	raw      string
	showRaw  bool
	patterns []pattern.Pattern
	export   *pattern.Export
	button   *clip.Button
	lastErr  error
}

// New creates a viewer that waits for a DataReady message.
func New(opts Options) Model {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.FeedbackDelay <= 0 {
		opts.FeedbackDelay = clip.FeedbackDelay
	}
	vp := viewport.New(0, 0)
	return Model{opts: opts, viewport: vp, showRaw: opts.ShowRaw}
}

// Init signals that the viewer has loaded.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return loadedMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if m.opts.OnLoaded == nil {
			return m, nil
		}
		return m, m.opts.OnLoaded

	case message.DataReady:
		if m.received {
			m.opts.Log.Debug("ignoring repeated data-ready")
			return m, nil
		}
		m.received = true
		m.load(msg.Data)
		return m, nil

	case message.Toggled:
		if !msg.Enabled {
			m.closed = true
			return m, tea.Quit
		}
		return m, nil

	case resetMsg:
		if m.button != nil {
			m.button.Reset(msg.seq)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "c":
			return m, m.copyExport()
		case "r":
			m.showRaw = !m.showRaw
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) load(raw string) {
	m.raw = raw
	res, err := format.Format(raw)
	if err != nil {
		m.opts.Log.Debug("format failed", zap.Error(err))
		m.lastErr = err
		m.patterns = mapper.FromError(raw, err, mapper.Options{})
		m.refresh()
		return
	}
	m.patterns = mapper.FromResult(raw, res, mapper.Options{})
	for _, p := range m.patterns {
		if e, ok := p.(*pattern.Export); ok {
			m.export = e
			m.button = clip.NewButton(e.CopyLabel, m.opts.Writer)
		}
	}
	m.refresh()
}

func (m *Model) copyExport() tea.Cmd {
	if m.button == nil || m.export == nil {
		return nil
	}
	seq, err := m.button.Press(m.export.Copy)
	if err != nil {
		m.lastErr = err
		m.opts.Log.Warn("copy failed", zap.Error(err))
	}
	return tea.Tick(m.opts.FeedbackDelay, func(time.Time) tea.Msg { return resetMsg{seq: seq} })
}

func (m *Model) refresh() {
	if !m.received {
		return
	}
	patterns := m.patterns
	if m.showRaw {
		patterns = append([]pattern.Pattern{&pattern.Raw{Text: m.raw}}, patterns...)
	}
	m.viewport.SetContent(render.NewTerminal(m.opts.Theme, m.width).Render(patterns))
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if !m.received {
		return "Waiting for cell data..."
	}

	title := m.opts.Theme.Title.Render("mpfmt")
	var help []string
	if m.button != nil {
		help = append(help, "c: "+m.button.Text())
	}
	help = append(help, "r: raw", "q: quit")
	footer := m.opts.Theme.Muted.Render(strings.Join(help, "  "+m.opts.Theme.Icons.Bullet+"  "))

	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), "", footer)
}

// Closed reports whether the viewer quit because the formatter was disabled.
func (m Model) Closed() bool { return m.closed }

// CopyText is the current copy affordance label, or "" when nothing can be
// copied.
func (m Model) CopyText() string {
	if m.button == nil {
		return ""
	}
	return m.button.Text()
}

// Err returns the last formatting or clipboard error.
func (m Model) Err() error { return m.lastErr }
