// Package payload turns the raw text of a spreadsheet cell into an ordered
// JSON value tree. Member order is kept exactly as written so that grouping,
// query-string export and pretty printing all follow the source document.
package payload

import (
	"bytes"
	"strconv"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is one node of a parsed payload. The concrete types are Null, Bool,
// Number, String, Array and *Object.
type Value interface {
	Kind() Kind
	// String returns the natural string form: strings unquoted, numbers as
	// their literal, containers as compact JSON.
	String() string
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number keeps the literal text of a JSON number so 9.99 stays "9.99".
type Number string

// String is a decoded JSON string.
type String string

// Array is an ordered JSON array.
type Array []Value

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object that remembers member order.
type Object struct {
	members []Member
	index   map[string]int
}

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (*Object) Kind() Kind {
	return KindObject
}

func (Null) String() string     { return "null" }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }
func (n Number) String() string { return string(n) }
func (s String) String() string { return string(s) }

func (a Array) String() string {
	var buf bytes.Buffer
	writeCompact(&buf, a)
	return buf.String()
}

func (o *Object) String() string {
	var buf bytes.Buffer
	writeCompact(&buf, o)
	return buf.String()
}

// NewObject builds an object from members in order. A repeated key replaces
// the earlier value but keeps the earlier position.
func NewObject(members ...Member) *Object {
	o := &Object{index: make(map[string]int, len(members))}
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Set adds or replaces a member.
func (o *Object) Set(key string, v Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Has reports whether key is present, whatever its value.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Members returns the members in document order. The slice must not be modified.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}

// Keys returns member keys in document order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for _, m := range o.Members() {
		keys = append(keys, m.Key)
	}
	return keys
}

// AsObject returns v as an object when it is one.
func AsObject(v Value) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok && o != nil
}

// AsArray returns v as an array when it is one.
func AsArray(v Value) (Array, bool) {
	a, ok := v.(Array)
	return a, ok
}

// IsStructured reports whether v is an object or array.
func IsStructured(v Value) bool {
	if v == nil {
		return false
	}
	k := v.Kind()
	return k == KindObject || k == KindArray
}

// Equal reports whether a and b are structurally equal. Object member order
// is significant.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		bm := bv.Members()
		for i, m := range av.Members() {
			if m.Key != bm[i].Key || !Equal(m.Value, bm[i].Value) {
				return false
			}
		}
		return true
	default:
		return a.String() == b.String()
	}
}
