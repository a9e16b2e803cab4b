package format

import (
	"regexp"
)

// Category is an MPv1 parameter bucket. Categories are listed in display order.
type Category int

const (
	General Category = iota
	Hit
	CustomDimensions
	Ecommerce
	Other
)

// Categories lists every MPv1 bucket in display order.
var Categories = []Category{General, Hit, CustomDimensions, Ecommerce, Other}

func (c Category) String() string {
	switch c {
	case General:
		return "General Parameters"
	case Hit:
		return "Hit Parameters"
	case CustomDimensions:
		return "Custom Dimensions"
	case Ecommerce:
		return "Enhanced Ecommerce"
	default:
		return "Other Parameters"
	}
}

var (
	generalParams = set("v", "tid", "cid", "t", "dl", "dt", "dh", "dp")
	hitParams     = set("ec", "ea", "el", "ev", "ni", "ti", "tr", "tt", "ts", "pa")

	customDimensionRe = regexp.MustCompile(`^cd(\d+)$`)
	productFieldRe    = regexp.MustCompile(`^pr\d+`)
	contentGroupRe    = regexp.MustCompile(`^cg(\d+)$`)
)

var paramNames = map[string]string{
	"v":   "Protocol Version",
	"tid": "Tracking ID",
	"cid": "Client ID",
	"t":   "Hit Type",
	"ec":  "Event Category",
	"ea":  "Event Action",
	"el":  "Event Label",
	"ev":  "Event Value",
	"ni":  "Non-Interaction",
	"ti":  "Transaction ID",
	"tr":  "Transaction Revenue",
	"tt":  "Transaction Tax",
	"ts":  "Transaction Shipping",
	"pa":  "Product Action",
	"dl":  "Document Location",
	"dt":  "Document Title",
	"dh":  "Document Hostname",
	"dp":  "Document Path",
	"cu":  "Currency",
	"z":   "Cache Buster",
}

func set(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

// Categorize returns the bucket for an MPv1 parameter key. First match wins.
func Categorize(key string) Category {
	if _, ok := generalParams[key]; ok {
		return General
	}
	if _, ok := hitParams[key]; ok {
		return Hit
	}
	if customDimensionRe.MatchString(key) {
		return CustomDimensions
	}
	if productFieldRe.MatchString(key) {
		return Ecommerce
	}
	return Other
}

// DisplayName expands a parameter key into "key (Description)" when the key
// is known or follows one of the indexed patterns, and returns key otherwise.
func DisplayName(key string) string {
	if m := customDimensionRe.FindStringSubmatch(key); m != nil {
		return key + " (Custom Dimension " + m[1] + ")"
	}
	if productFieldRe.MatchString(key) {
		return key + " (Product Field)"
	}
	if m := contentGroupRe.FindStringSubmatch(key); m != nil {
		return key + " (Content Group " + m[1] + ")"
	}
	if desc, ok := paramNames[key]; ok {
		return key + " (" + desc + ")"
	}
	return key
}
