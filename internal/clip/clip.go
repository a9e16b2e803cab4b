// Package clip writes export strings to the clipboard and tracks the
// transient feedback shown on the copy affordance.
package clip

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrClipboard wraps every failed copy.
var ErrClipboard = errors.New("clipboard write failed")

// FeedbackDelay is how long "Copied!" or "Copy Failed" stays visible.
const FeedbackDelay = 2 * time.Second

// Writer puts text on a clipboard.
type Writer func(text string) error

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// System returns the default writer: the native clipboard when one is
// available, otherwise an OSC 52 escape sequence written to tty.
func System(tty io.Writer) Writer {
	if tty == nil {
		tty = os.Stderr
	}
	return func(text string) error {
		if !clipboard.Unsupported {
			return clipboardWriteAll(text)
		}
		_, err := osc52.New(text).WriteTo(tty)
		return err
	}
}

// State is the visible state of a copy button.
type State int

const (
	Idle State = iota
	Copied
	Failed
)

// Button is a copy affordance. Each press bumps a sequence number so that a
// stale reset from an earlier press does not cut the newer feedback short.
type Button struct {
	Label string
	write Writer
	state State
	seq   int
}

// NewButton returns an idle button writing through w.
func NewButton(label string, w Writer) *Button {
	return &Button{Label: label, write: w}
}

// Press copies text and returns the press sequence number to pass to Reset
// after FeedbackDelay. A failure is reported but never blocks later presses.
func (b *Button) Press(text string) (int, error) {
	b.seq++
	if b.write == nil {
		b.state = Failed
		return b.seq, fmt.Errorf("%w: no clipboard writer", ErrClipboard)
	}
	if err := b.write(text); err != nil {
		b.state = Failed
		return b.seq, fmt.Errorf("%w: %w", ErrClipboard, err)
	}
	b.state = Copied
	return b.seq, nil
}

// Reset returns the button to idle if seq is the latest press.
func (b *Button) Reset(seq int) {
	if seq == b.seq {
		b.state = Idle
	}
}

// State returns the current state.
func (b *Button) State() State { return b.state }

// Text is the label to display for the current state.
func (b *Button) Text() string {
	switch b.state {
	case Copied:
		return "Copied!"
	case Failed:
		return "Copy Failed"
	default:
		return b.Label
	}
}
