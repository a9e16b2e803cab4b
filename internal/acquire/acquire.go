// Package acquire reads the text of the currently selected cell from
// whatever the host environment offers: a sheet export, the clipboard,
// stdin or a literal argument.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrNoSelection means no source produced usable text.
var ErrNoSelection = errors.New("acquire: no selected cell text")

// Source yields the selected text. ok is false when the source has nothing
// usable; that case is not an error.
type Source interface {
	Name() string
	SelectedText(ctx context.Context) (text string, ok bool, err error)
}

// Acquire returns the first usable text from src, or ErrNoSelection.
func Acquire(ctx context.Context, src Source) (string, error) {
	text, ok, err := src.SelectedText(ctx)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", src.Name(), err)
	}
	if !ok {
		return "", ErrNoSelection
	}
	return text, nil
}

// Chain tries each source in order and returns the first usable text.
// A failing source is skipped when a later one succeeds.
type Chain []Source

func (c Chain) Name() string {
	names := make([]string, 0, len(c))
	for _, s := range c {
		names = append(names, s.Name())
	}
	return strings.Join(names, ",")
}

func (c Chain) SelectedText(ctx context.Context) (string, bool, error) {
	var errs []error
	for _, s := range c {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		text, ok, err := s.SelectedText(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		if ok {
			return text, true, nil
		}
	}
	return "", false, errors.Join(errs...)
}

// Literal is text passed directly, e.g. as a command line argument.
type Literal string

func (Literal) Name() string { return "literal" }

func (l Literal) SelectedText(context.Context) (string, bool, error) {
	return usable(string(l))
}

// Reader reads the whole of r once. Subsequent calls return nothing.
type Reader struct {
	R    io.Reader
	Desc string
	done bool
}

func (r *Reader) Name() string {
	if r.Desc != "" {
		return r.Desc
	}
	return "reader"
}

func (r *Reader) SelectedText(context.Context) (string, bool, error) {
	if r.R == nil || r.done {
		return "", false, nil
	}
	r.done = true
	b, err := io.ReadAll(r.R)
	if err != nil {
		return "", false, err
	}
	return usable(string(b))
}

// clipboardReadAll is a package-level variable to allow mocking in tests.
var clipboardReadAll = clipboard.ReadAll

// Clipboard reads the system clipboard.
type Clipboard struct{}

func (Clipboard) Name() string { return "clipboard" }

func (Clipboard) SelectedText(context.Context) (string, bool, error) {
	if clipboard.Unsupported {
		return "", false, nil
	}
	text, err := clipboardReadAll()
	if err != nil {
		return "", false, err
	}
	return usable(text)
}

// usable trims the surrounding newline a cell copy usually carries and
// rejects whitespace-only text.
func usable(s string) (string, bool, error) {
	s = strings.TrimRight(s, "\r\n")
	if strings.TrimSpace(s) == "" {
		return "", false, nil
	}
	return s, true, nil
}
