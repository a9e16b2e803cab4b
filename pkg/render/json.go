package render

import (
	"encoding/json"
	"strings"

	"github.com/dkoosis/mpfmt/pkg/pattern"
)

// JSON renders patterns as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonOutput is the top-level JSON structure. Protocol, Copy and Error
// repeat the badge, export and error patterns at top level.
type jsonOutput struct {
	Version  string        `json:"version"`
	Protocol string        `json:"protocol,omitempty"`
	Copy     string        `json:"copy,omitempty"`
	Error    string        `json:"error,omitempty"`
	Patterns []jsonPattern `json:"patterns"`
}

type jsonPattern struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Render formats all patterns as JSON.
func (j *JSON) Render(patterns []pattern.Pattern) string {
	out := jsonOutput{
		Version:  "1.0",
		Patterns: make([]jsonPattern, 0, len(patterns)),
	}
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Badge:
			out.Protocol = v.Protocol
		case *pattern.Export:
			out.Copy = v.Copy
		case *pattern.Error:
			out.Error = v.Message
		}
		out.Patterns = append(out.Patterns, jsonPattern{
			Type: string(p.Type()),
			Data: p,
		})
	}

	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return sb.String()
}
