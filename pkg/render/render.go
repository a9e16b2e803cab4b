// Package render provides output renderers for mpfmt's patterns.
package render

import "github.com/dkoosis/mpfmt/pkg/pattern"

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// ForFormat picks a renderer for an output format name. "auto" resolves to
// the terminal renderer on a TTY and plain text otherwise.
func ForFormat(format string, isTTY bool, theme Theme, width int) Renderer {
	switch format {
	case "json":
		return NewJSON()
	case "plain":
		return NewPlain()
	case "terminal":
		return NewTerminal(theme, width)
	default:
		if isTTY {
			return NewTerminal(theme, width)
		}
		return NewPlain()
	}
}
