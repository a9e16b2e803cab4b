// Package message defines the notifications passed between the settings
// toggle, the acquisition side and the presentation surface.
package message

import (
	"encoding/json"
	"fmt"
)

// Message types on the wire.
const (
	TypeToggled   = "toggled"
	TypeDataReady = "data-ready"
)

// Message is implemented by every notification.
type Message interface {
	MessageType() string
}

// Toggled announces a change of the enabled setting.
type Toggled struct {
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
}

// NewToggled builds a toggled message.
func NewToggled(enabled bool) Toggled {
	return Toggled{Type: TypeToggled, Enabled: enabled}
}

func (Toggled) MessageType() string { return TypeToggled }

// DataReady carries the raw cell text to a presentation surface that has
// finished loading.
type DataReady struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// NewDataReady builds a data-ready message.
func NewDataReady(data string) DataReady {
	return DataReady{Type: TypeDataReady, Data: data}
}

func (DataReady) MessageType() string { return TypeDataReady }

// Encode marshals m with its type tag set.
func Encode(m Message) ([]byte, error) {
	switch v := m.(type) {
	case Toggled:
		v.Type = TypeToggled
		return json.Marshal(v)
	case DataReady:
		v.Type = TypeDataReady
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("message: cannot encode %T", m)
	}
}

// Decode unmarshals a message, dispatching on its type field.
func Decode(data []byte) (Message, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	switch probe.Type {
	case TypeToggled:
		var m Toggled
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("message: decoding %s: %w", probe.Type, err)
		}
		return m, nil
	case TypeDataReady:
		var m DataReady
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("message: decoding %s: %w", probe.Type, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("message: unknown type %q", probe.Type)
	}
}
