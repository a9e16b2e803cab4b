// Package mapper converts formatter results and failures to output patterns.
package mapper

import (
	"errors"

	"github.com/dkoosis/mpfmt/internal/acquire"
	"github.com/dkoosis/mpfmt/pkg/format"
	"github.com/dkoosis/mpfmt/pkg/pattern"
	"github.com/dkoosis/mpfmt/pkg/payload"
)

// User-facing messages, one per failure class.
const (
	MsgNoSelection  = "Please select a cell with MP data"
	MsgParse        = "Invalid JSON data. Please ensure the cell contains valid MP data."
	MsgUnrecognized = "Unable to detect Measurement Protocol version. Data format not recognized."
)

// Options controls optional patterns.
type Options struct {
	ShowRaw bool // prepend the raw cell text
}

// FromResult converts a formatting result into patterns:
// Raw (optional) + Badge + one FieldGroup per group + Export.
func FromResult(raw string, res *format.Result, opts Options) []pattern.Pattern {
	patterns := make([]pattern.Pattern, 0, len(res.Groups)+3)
	if opts.ShowRaw {
		patterns = append(patterns, &pattern.Raw{Text: raw})
	}
	patterns = append(patterns, &pattern.Badge{Protocol: res.Kind.String(), Text: res.Kind.Badge()})

	for _, g := range res.Groups {
		patterns = append(patterns, fieldGroup(g))
	}

	if res.Export.Copy != "" || res.Export.Display != "" {
		patterns = append(patterns, &pattern.Export{
			Kind:      string(res.Export.Kind),
			Title:     res.Export.Title,
			Display:   res.Export.Display,
			Copy:      res.Export.Copy,
			CopyLabel: res.Export.CopyLabel,
		})
	}
	return patterns
}

// FromError converts a pipeline failure into patterns. The raw text is kept
// when requested so the user can see what was read.
func FromError(raw string, err error, opts Options) []pattern.Pattern {
	var patterns []pattern.Pattern
	if opts.ShowRaw && raw != "" {
		patterns = append(patterns, &pattern.Raw{Text: raw})
	}
	kind, msg := Classify(err)
	return append(patterns, &pattern.Error{Kind: kind, Message: msg})
}

// Classify maps an error to its user-facing kind and message.
func Classify(err error) (pattern.ErrorKind, string) {
	switch {
	case errors.Is(err, acquire.ErrNoSelection), errors.Is(err, payload.ErrEmpty):
		return pattern.ErrorNoSelection, MsgNoSelection
	case errors.Is(err, payload.ErrParse):
		return pattern.ErrorParse, MsgParse
	case errors.Is(err, format.ErrUnrecognized):
		return pattern.ErrorUnrecognized, MsgUnrecognized
	default:
		return pattern.ErrorInternal, "Processing error: " + err.Error()
	}
}

func fieldGroup(g format.FieldGroup) *pattern.FieldGroup {
	out := &pattern.FieldGroup{Title: g.Title, Rows: rows(g.Fields)}
	for _, ev := range g.Events {
		out.Blocks = append(out.Blocks, pattern.Block{Label: ev.Label, Rows: rows(ev.Params)})
	}
	return out
}

func rows(fields []format.Field) []pattern.Row {
	if len(fields) == 0 {
		return nil
	}
	out := make([]pattern.Row, 0, len(fields))
	for _, f := range fields {
		out = append(out, pattern.Row{Key: f.DisplayName, Value: f.Value, JSON: f.Structured})
	}
	return out
}
