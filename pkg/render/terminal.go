package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/mpfmt/pkg/pattern"
)

const maxKeyWidth = 40

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		s := t.renderOne(p)
		if s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Badge:
		return t.theme.BadgeStyle(v.Protocol).Render(v.Text) + "\n"
	case *pattern.Raw:
		return t.renderRaw(v)
	case *pattern.FieldGroup:
		return t.renderGroup(v)
	case *pattern.Export:
		return t.renderExport(v)
	case *pattern.Error:
		return t.theme.Error.Render(t.theme.Icons.Fail+" "+v.Message) + "\n"
	default:
		return ""
	}
}

func (t *Terminal) renderRaw(r *pattern.Raw) string {
	var sb strings.Builder
	sb.WriteString(t.theme.Title.Render("Raw Data"))
	sb.WriteString("\n")
	for _, line := range strings.Split(r.Text, "\n") {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderGroup(g *pattern.FieldGroup) string {
	var sb strings.Builder
	sb.WriteString(t.theme.Title.Render(g.Title))
	sb.WriteString("\n")
	t.writeRows(&sb, g.Rows, "  ")
	for _, b := range g.Blocks {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Title.Render(b.Label))
		sb.WriteString("\n")
		t.writeRows(&sb, b.Rows, "    ")
	}
	return sb.String()
}

func (t *Terminal) writeRows(sb *strings.Builder, rows []pattern.Row, indent string) {
	keyWidth := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Key); w > keyWidth {
			keyWidth = w
		}
	}
	if keyWidth > maxKeyWidth {
		keyWidth = maxKeyWidth
	}

	for _, r := range rows {
		key := runewidth.Truncate(r.Key, maxKeyWidth, "...")
		sb.WriteString(indent)
		if r.JSON {
			sb.WriteString(t.theme.Key.Render(key + ":"))
			sb.WriteString("\n")
			for _, line := range strings.Split(r.Value, "\n") {
				sb.WriteString(indent + "  ")
				sb.WriteString(t.theme.JSON.Render(line))
				sb.WriteString("\n")
			}
			continue
		}
		sb.WriteString(t.theme.Key.Render(padRight(key, keyWidth)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Value.Render(r.Value))
		sb.WriteString("\n")
	}
}

func (t *Terminal) renderExport(e *pattern.Export) string {
	var sb strings.Builder
	sb.WriteString(t.theme.Title.Render(e.Title))
	sb.WriteString("\n")
	for _, line := range strings.Split(e.Display, "\n") {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if e.CopyLabel != "" {
		sb.WriteString(t.theme.Muted.Render(t.theme.Icons.Copy + " " + e.CopyLabel))
		sb.WriteString("\n")
	}
	return sb.String()
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
