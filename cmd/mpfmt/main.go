// mpfmt formats Google Analytics Measurement Protocol payloads copied out of
// a spreadsheet cell.
//
// Usage:
//
//	mpfmt '{"v":"1","tid":"UA-1","cid":"555"}'
//	pbpaste | mpfmt --format plain
//	mpfmt --sheet export.csv --cell B7 --copy
//	mpfmt view --sheet export.csv --cell B7
//	mpfmt settings disable
//
// Input is taken from a literal argument, or from the configured sources in
// order (sheet cell, stdin, clipboard).
//
// Output modes (auto-detected):
//
//	terminal  styled output (default when TTY)
//	plain     no ANSI codes (default when piped)
//	json      structured JSON for automation
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dkoosis/mpfmt/internal/acquire"
	"github.com/dkoosis/mpfmt/internal/clip"
	"github.com/dkoosis/mpfmt/internal/config"
	"github.com/dkoosis/mpfmt/internal/logging"
	"github.com/dkoosis/mpfmt/internal/ready"
	"github.com/dkoosis/mpfmt/internal/settings"
	"github.com/dkoosis/mpfmt/internal/version"
	"github.com/dkoosis/mpfmt/pkg/format"
	"github.com/dkoosis/mpfmt/pkg/mapper"
	"github.com/dkoosis/mpfmt/pkg/pattern"
	"github.com/dkoosis/mpfmt/pkg/render"
)

// Exit codes.
const (
	exitOK       = 0
	exitPayload  = 1 // payload error shown to the user
	exitUsage    = 2 // usage or I/O error
	exitDisabled = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := runContext(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return runContext(context.Background(), args, stdin, stdout, stderr)
}

func runContext(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, log: zap.NewNop()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	_ = a.log.Sync()
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "mpfmt: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "mpfmt: %v\n", err)
	return exitUsage
}

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error // printed to stderr when non-nil
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func exitWith(code int, err error) error { return &exitError{code: code, err: err} }

type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	flags   config.CliFlags
	sheet   string
	cell    string
	wait    bool
	copyOut bool
	cfg     *config.ResolvedConfig
	log     *zap.Logger
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mpfmt [payload]",
		Short: "Format Measurement Protocol payloads from a spreadsheet cell",
		Long: `mpfmt reads the text of a selected spreadsheet cell, detects whether it is a
Measurement Protocol v1 (Universal Analytics) or v2 (GA4) payload, and renders
its parameters in labelled groups together with a copyable export: a
URL-encoded query string for MPv1, pretty-printed JSON for MPv2.`,
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: a.runFormat,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.Theme, "theme", config.DefaultTheme, "Theme: default, orca, mono")
	pf.StringVar(&a.flags.Format, "format", config.DefaultFormat, "Output format: auto, terminal, plain, json")
	pf.BoolVar(&a.flags.Debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&a.flags.ShowRaw, "raw", false, "Show the raw cell text above the groups")
	pf.StringVar(&a.flags.SettingsPath, "settings", "", "Settings file (default $XDG_CONFIG_HOME/mpfmt/settings.yaml)")

	addSourceFlags := func(cmd *cobra.Command) {
		f := cmd.Flags()
		f.StringSliceVar(&a.flags.Sources, "source", nil, "Sources to try in order: sheet, stdin, clipboard")
		f.StringVar(&a.sheet, "sheet", "", "CSV or TSV export of the sheet")
		f.StringVar(&a.cell, "cell", "A1", "Selected cell in A1 notation")
		f.BoolVar(&a.wait, "wait", false, "Wait for the sheet file to appear")
	}
	addSourceFlags(root)
	root.Flags().BoolVar(&a.copyOut, "copy", false, "Copy the export to the clipboard")

	view := a.viewCommand()
	addSourceFlags(view)
	root.AddCommand(view, a.settingsCommand())
	return root
}

// setup resolves configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	a.flags.ThemeSet = changed("theme")
	a.flags.FormatSet = changed("format")
	a.flags.DebugSet = changed("debug")
	a.flags.ShowRawSet = changed("raw")
	a.flags.SettingsSet = changed("settings")
	a.flags.SourcesSet = changed("source")

	// Debug logging for config loading itself follows the env var only.
	bootstrap := logging.New(a.stderr, os.Getenv("MPFMT_DEBUG") != "" || a.flags.Debug)
	cfg, err := config.ResolveConfig(a.flags, bootstrap)
	if err != nil {
		return exitWith(exitUsage, err)
	}
	a.cfg = cfg
	a.log = logging.New(a.stderr, cfg.Debug)
	a.log.Debug("resolved config",
		zap.String("theme", cfg.Theme), zap.String("theme_source", cfg.ThemeSource),
		zap.String("format", cfg.Format), zap.String("format_source", cfg.FormatSource),
		zap.Strings("sources", cfg.Sources))
	return nil
}

func (a *app) openSettings() (*settings.Store, error) {
	path := a.cfg.SettingsPath
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return settings.Open(path, a.cfg.HostPattern, a.log)
}

// requireEnabled returns an exit error when the formatter is switched off.
func (a *app) requireEnabled() (*settings.Store, error) {
	store, err := a.openSettings()
	if err != nil {
		return nil, exitWith(exitUsage, err)
	}
	if !store.Enabled() {
		fmt.Fprintln(a.stderr, settings.Status(false))
		return nil, exitWith(exitDisabled, nil)
	}
	return store, nil
}

// source builds the acquisition chain from arguments, flags and config.
func (a *app) source(args []string) (acquire.Source, error) {
	if len(args) > 0 {
		return acquire.Literal(strings.Join(args, " ")), nil
	}
	var chain acquire.Chain
	for _, name := range a.cfg.Sources {
		switch name {
		case "sheet":
			if a.sheet == "" {
				continue
			}
			addr, err := acquire.ParseAddress(a.cell)
			if err != nil {
				return nil, err
			}
			chain = append(chain, acquire.SheetCell{Path: a.sheet, Cell: addr})
		case "stdin":
			if isTTYReader(a.stdin) {
				continue
			}
			chain = append(chain, &acquire.Reader{R: a.stdin, Desc: "stdin"})
		case "clipboard":
			chain = append(chain, acquire.Clipboard{})
		}
	}
	return chain, nil
}

// waitForSheet polls for the sheet file when --wait is set.
func (a *app) waitForSheet(ctx context.Context) error {
	if !a.wait || a.sheet == "" {
		return nil
	}
	cell := acquire.SheetCell{Path: a.sheet}
	a.log.Debug("waiting for sheet", zap.String("path", a.sheet), zap.Duration("timeout", a.cfg.ReadyTimeout))
	err := ready.Poll(ctx, a.cfg.ReadyInterval, a.cfg.ReadyTimeout, cell.Exists)
	if errors.Is(err, ready.ErrTimeout) {
		return fmt.Errorf("sheet %s did not appear within %s", a.sheet, a.cfg.ReadyTimeout)
	}
	return err
}

func (a *app) acquireText(ctx context.Context, args []string) (string, error) {
	src, err := a.source(args)
	if err != nil {
		return "", exitWith(exitUsage, err)
	}
	if err := a.waitForSheet(ctx); err != nil {
		return "", exitWith(exitUsage, err)
	}
	text, err := acquire.Acquire(ctx, src)
	if err != nil && !errors.Is(err, acquire.ErrNoSelection) {
		return "", exitWith(exitUsage, err)
	}
	a.log.Debug("acquired cell text", zap.String("source", src.Name()), zap.Int("bytes", len(text)))
	return text, err
}

func (a *app) runFormat(cmd *cobra.Command, args []string) error {
	if _, err := a.requireEnabled(); err != nil {
		return err
	}
	ctx := cmd.Context()
	opts := mapper.Options{ShowRaw: a.cfg.ShowRaw}

	var patterns []pattern.Pattern
	var res *format.Result
	text, err := a.acquireText(ctx, args)
	if err == nil {
		res, err = format.Format(text)
	}
	var ee *exitError
	switch {
	case errors.As(err, &ee):
		return err
	case err != nil:
		a.log.Debug("formatting failed", zap.Error(err))
		patterns = mapper.FromError(text, err, opts)
	default:
		patterns = mapper.FromResult(text, res, opts)
	}

	width, _ := termSize(a.stdout)
	theme := render.ThemeByName(a.cfg.Theme)
	r := render.ForFormat(a.cfg.Format, isTTYWriter(a.stdout), theme, width)
	fmt.Fprint(a.stdout, r.Render(patterns))

	if res != nil && a.copyOut {
		a.copyExport(res.Export)
	}
	if code := exitCode(patterns); code != exitOK {
		return exitWith(code, nil)
	}
	return nil
}

func (a *app) copyExport(e format.Export) {
	b := clip.NewButton(e.CopyLabel, clip.System(a.stderr))
	if _, err := b.Press(e.Copy); err != nil {
		a.log.Warn("copy failed", zap.Error(err))
	}
	fmt.Fprintln(a.stderr, b.Text())
}

// exitCode returns 1 when an error pattern was rendered.
func exitCode(patterns []pattern.Pattern) int {
	for _, p := range patterns {
		if _, ok := p.(*pattern.Error); ok {
			return exitPayload
		}
	}
	return exitOK
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isTTYReader reports whether r is an interactive terminal.
func isTTYReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}
