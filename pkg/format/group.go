package format

import (
	"fmt"
	"strconv"

	"github.com/dkoosis/mpfmt/pkg/payload"
)

// FormatMPv1 buckets every parameter of an MPv1 hit. Groups keep the fixed
// category order, fields keep record order, and empty groups are dropped.
func FormatMPv1(obj *payload.Object) []FieldGroup {
	buckets := make(map[Category][]Field, len(Categories))
	for _, m := range obj.Members() {
		c := Categorize(m.Key)
		buckets[c] = append(buckets[c], valueField(m.Key, DisplayName(m.Key), m.Value))
	}

	groups := make([]FieldGroup, 0, len(buckets))
	for _, c := range Categories {
		if fields := buckets[c]; len(fields) > 0 {
			groups = append(groups, FieldGroup{Title: c.String(), Fields: fields})
		}
	}
	return groups
}

const notAvailable = "N/A"

// FormatMPv2 builds the client information group followed by one events
// group when the request carries at least one event.
func FormatMPv2(obj *payload.Object) []FieldGroup {
	client := FieldGroup{
		Title: "Client Information",
		Fields: []Field{
			valueField("client_id", "Client ID", get(obj, "client_id")),
			valueField("user_id", "User ID", orNA(get(obj, "user_id"))),
			valueField("timestamp_micros", "Timestamp (microseconds)", get(obj, "timestamp_micros")),
			valueField("gtm_info", "GTM Info", orNA(get(obj, "gtm_info"))),
		},
	}
	groups := []FieldGroup{client}

	events, _ := payload.AsArray(get(obj, "events"))
	if len(events) == 0 {
		return groups
	}

	eg := FieldGroup{Title: fmt.Sprintf("Events (%d)", len(events))}
	for i, ev := range events {
		eg.Events = append(eg.Events, eventBlock(i+1, ev))
	}
	return append(groups, eg)
}

func eventBlock(index int, ev payload.Value) EventBlock {
	obj, _ := payload.AsObject(ev)
	name := "(unnamed)"
	if n := get(obj, "name"); n != nil {
		name = n.String()
	}
	b := EventBlock{
		Index: index,
		Name:  name,
		Label: fmt.Sprintf("Event %d: %s", index, name),
	}

	switch params := get(obj, "params").(type) {
	case *payload.Object:
		for _, m := range params.Members() {
			b.Params = append(b.Params, valueField(m.Key, m.Key, m.Value))
		}
	case payload.Array:
		for i, v := range params {
			k := strconv.Itoa(i)
			b.Params = append(b.Params, valueField(k, k, v))
		}
	}
	return b
}

func get(obj *payload.Object, key string) payload.Value {
	v, _ := obj.Get(key)
	return v
}

// orNA substitutes "N/A" for absent or falsy optional values.
func orNA(v payload.Value) payload.Value {
	if truthy(v) {
		return v
	}
	return payload.String(notAvailable)
}

func truthy(v payload.Value) bool {
	switch t := v.(type) {
	case nil, payload.Null:
		return false
	case payload.Bool:
		return bool(t)
	case payload.String:
		return t != ""
	case payload.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		return err != nil || f != 0
	default:
		return true
	}
}
