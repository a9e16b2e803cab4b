package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/mpfmt/pkg/pattern"
)

// Plain renders patterns as plain text with no ANSI codes. Headings are
// upper-cased so sections stay visible without styling.
type Plain struct {
	upper cases.Caser
}

// NewPlain creates a plain text renderer.
func NewPlain() *Plain {
	return &Plain{upper: cases.Upper(language.Und)}
}

// Render formats all patterns as plain text.
func (p *Plain) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, pat := range patterns {
		if s := p.renderOne(pat); s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (p *Plain) renderOne(pat pattern.Pattern) string {
	var sb strings.Builder
	switch v := pat.(type) {
	case *pattern.Badge:
		sb.WriteString("[" + v.Text + "]\n")
	case *pattern.Raw:
		sb.WriteString(p.heading("Raw Data"))
		sb.WriteString(v.Text + "\n")
	case *pattern.FieldGroup:
		sb.WriteString(p.heading(v.Title))
		writePlainRows(&sb, v.Rows, "  ")
		for _, b := range v.Blocks {
			sb.WriteString("  " + b.Label + "\n")
			writePlainRows(&sb, b.Rows, "    ")
		}
	case *pattern.Export:
		sb.WriteString(p.heading(v.Title))
		sb.WriteString(v.Display + "\n")
	case *pattern.Error:
		sb.WriteString("ERROR: " + v.Message + "\n")
	}
	return sb.String()
}

func (p *Plain) heading(s string) string {
	return p.upper.String(s) + "\n"
}

func writePlainRows(sb *strings.Builder, rows []pattern.Row, indent string) {
	keyWidth := 0
	for _, r := range rows {
		if !r.JSON {
			keyWidth = max(keyWidth, min(runewidth.StringWidth(r.Key), maxKeyWidth))
		}
	}
	for _, r := range rows {
		if r.JSON {
			sb.WriteString(indent + r.Key + ":\n")
			for _, line := range strings.Split(r.Value, "\n") {
				sb.WriteString(indent + "  " + line + "\n")
			}
			continue
		}
		sb.WriteString(indent + padRight(r.Key, keyWidth) + "  " + r.Value + "\n")
	}
}
