package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkoosis/mpfmt/internal/acquire"
	"github.com/dkoosis/mpfmt/internal/clip"
	"github.com/dkoosis/mpfmt/internal/message"
	"github.com/dkoosis/mpfmt/internal/settings"
	"github.com/dkoosis/mpfmt/internal/ui"
	"github.com/dkoosis/mpfmt/pkg/render"
)

// viewLocation is where the viewer registers as a settings consumer.
const viewLocation = "https://docs.google.com/spreadsheets/mpfmt/view"

func (a *app) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [payload]",
		Short: "Open the interactive viewer with copy support",
		Long: `view shows the formatted payload in a scrolling viewer.

Keys:
  c        copy the export (query string or JSON)
  r        show or hide the raw cell text
  q, esc   quit

The viewer closes when the formatter is disabled from another terminal.`,
		Args: cobra.ArbitraryArgs,
		RunE: a.runView,
	}
}

func (a *app) runView(cmd *cobra.Command, args []string) error {
	store, err := a.requireEnabled()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model := ui.New(ui.Options{
		Theme:         render.ThemeByName(a.cfg.Theme),
		ShowRaw:       a.cfg.ShowRaw,
		Writer:        clip.System(a.stderr),
		FeedbackDelay: a.cfg.CopyFeedback,
		Log:           a.log,
		OnLoaded: func() tea.Msg {
			text, err := a.acquireText(ctx, args)
			if err != nil && !errors.Is(err, acquire.ErrNoSelection) {
				a.log.Warn("acquiring cell text", zap.Error(err))
			}
			return message.NewDataReady(text)
		},
	})
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(a.stdout), tea.WithAltScreen())

	unsubscribe := store.Subscribe(settings.Consumer{
		URL: viewLocation,
		Fn: func(m message.Toggled) error {
			go p.Send(m)
			return nil
		},
	})
	defer unsubscribe()
	go func() {
		if err := store.Watch(ctx); err != nil {
			a.log.Warn("settings watcher stopped", zap.Error(err))
		}
	}()

	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return exitWith(exitUsage, fmt.Errorf("viewer: %w", err))
	}
	if m, ok := final.(ui.Model); ok && m.Closed() {
		fmt.Fprintln(a.stderr, settings.Status(false))
		return exitWith(exitDisabled, nil)
	}
	return nil
}
