// Package pattern defines the semantic data types for mpfmt's output.
// Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of output pattern.
type PatternType string

const (
	PatternTypeBadge  PatternType = "badge"
	PatternTypeRaw    PatternType = "raw"
	PatternTypeGroup  PatternType = "field-group"
	PatternTypeExport PatternType = "export"
	PatternTypeError  PatternType = "error"
)

// Pattern is the interface all output patterns implement.
// Patterns hold data; renderers decide how to present it.
type Pattern interface {
	Type() PatternType
}
