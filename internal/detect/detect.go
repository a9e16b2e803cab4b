// Package detect classifies a parsed payload as one of the Measurement
// Protocol shapes.
package detect

import (
	"strings"

	"github.com/dkoosis/mpfmt/pkg/payload"
)

// Kind represents a recognized payload protocol.
type Kind int

const (
	Unrecognized Kind = iota
	MPv1              // Universal Analytics hit, flat key/value parameters
	MPv2              // GA4 Measurement Protocol request with an events array
)

func (k Kind) String() string {
	switch k {
	case MPv1:
		return "MPv1"
	case MPv2:
		return "MPv2"
	default:
		return "Unrecognized"
	}
}

// Badge is the short label shown next to the formatted output.
func (k Kind) Badge() string {
	return strings.ToUpper(k.String())
}

// Protocol returns the protocol kind of v. The checks run in priority order:
// a record that looks like both versions is MPv1.
func Protocol(v payload.Value) Kind {
	obj, ok := payload.AsObject(v)
	if !ok {
		return Unrecognized
	}
	if isMPv1(obj) {
		return MPv1
	}
	if isMPv2(obj) {
		return MPv2
	}
	return Unrecognized
}

func isMPv1(obj *payload.Object) bool {
	if v, ok := obj.Get("v"); ok {
		if s, isStr := v.(payload.String); isStr && s == "1" {
			return true
		}
	}
	return obj.Has("tid") || obj.Has("cid")
}

func isMPv2(obj *payload.Object) bool {
	if !obj.Has("client_id") {
		return false
	}
	events, ok := obj.Get("events")
	if !ok {
		return false
	}
	_, isArr := payload.AsArray(events)
	return isArr
}
