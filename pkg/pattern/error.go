package pattern

// ErrorKind names the user-facing failure classes.
type ErrorKind string

const (
	ErrorNoSelection  ErrorKind = "no-selection"
	ErrorParse        ErrorKind = "parse"
	ErrorUnrecognized ErrorKind = "unrecognized"
	ErrorInternal     ErrorKind = "internal"
)

// Error is a message shown instead of formatted output.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Type() PatternType { return PatternTypeError }
