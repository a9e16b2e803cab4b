// Package format is the classifier and formatter core: it turns the raw text
// of a cell into categorised field groups plus a copyable export string.
//
// The pipeline is parse → detect → group → export. Every stage is a pure
// function of its input; nothing is retained between calls.
package format

import (
	"errors"
	"fmt"

	"github.com/dkoosis/mpfmt/internal/detect"
	"github.com/dkoosis/mpfmt/pkg/payload"
)

// ErrUnrecognized is returned for valid JSON that matches neither protocol.
var ErrUnrecognized = errors.New("format: unrecognized payload shape")

// JSONIndent is the indentation used for structured values and the MPv2 export.
const JSONIndent = "    "

// Field is one display row.
type Field struct {
	Key         string
	DisplayName string
	Value       string
	// Structured is set when Value holds pretty-printed JSON.
	Structured bool
	// Missing is set when the record had no value for a required field.
	Missing bool
}

// EventBlock is one MPv2 event inside the events group.
type EventBlock struct {
	Index  int // 1-based
	Name   string
	Label  string
	Params []Field
}

// FieldGroup is a titled bucket of rows. Events is only used by the MPv2
// events group.
type FieldGroup struct {
	Title  string
	Fields []Field
	Events []EventBlock
}

// Len returns the number of display rows in the group.
func (g FieldGroup) Len() int {
	n := len(g.Fields)
	for _, e := range g.Events {
		n += len(e.Params)
	}
	return n
}

// ExportKind identifies the serialised form offered for copying.
type ExportKind string

const (
	ExportQueryString ExportKind = "query-string"
	ExportJSON        ExportKind = "json"
)

// Export is the copyable form of a record. Display is what is shown on
// screen; Copy is what goes to the clipboard.
type Export struct {
	Kind      ExportKind
	Title     string
	Display   string
	Copy      string
	CopyLabel string
}

// Result is the full output of one formatting pass.
type Result struct {
	Kind   detect.Kind
	Record payload.Value
	Groups []FieldGroup
	Export Export
}

// Format parses raw, classifies it and builds groups and export.
// Errors are payload.ErrEmpty, a *payload.ParseError or ErrUnrecognized.
func Format(raw string) (*Result, error) {
	v, err := payload.Parse(raw)
	if err != nil {
		return nil, err
	}
	return FormatValue(v)
}

// FormatValue runs the pipeline on an already parsed value.
func FormatValue(v payload.Value) (*Result, error) {
	kind := detect.Protocol(v)
	obj, _ := payload.AsObject(v)

	res := &Result{Kind: kind, Record: v}
	switch kind {
	case detect.MPv1:
		res.Groups = FormatMPv1(obj)
		q := QueryString(obj)
		res.Export = Export{
			Kind:      ExportQueryString,
			Title:     "URL-Encoded Query String",
			Display:   q.Lines,
			Copy:      q.Copy,
			CopyLabel: "Copy Query String",
		}
	case detect.MPv2:
		res.Groups = FormatMPv2(obj)
		j := FormattedJSON(obj)
		res.Export = Export{
			Kind:      ExportJSON,
			Title:     "Formatted JSON",
			Display:   j,
			Copy:      j,
			CopyLabel: "Copy Formatted JSON",
		}
	default:
		return nil, fmt.Errorf("%w: expected v/tid/cid or client_id with events", ErrUnrecognized)
	}
	return res, nil
}

// valueField renders a record value into a row.
func valueField(key, display string, v payload.Value) Field {
	f := Field{Key: key, DisplayName: display}
	switch {
	case v == nil:
		f.Missing = true
	case payload.IsStructured(v):
		f.Value = payload.MarshalIndent(v, JSONIndent)
		f.Structured = true
	default:
		f.Value = v.String()
	}
	return f
}
