package payload

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// MarshalIndent renders v as indented JSON, one member per line, keeping
// member order and number literals. Empty containers render as {} and [].
func MarshalIndent(v Value, indent string) string {
	var buf bytes.Buffer
	writeIndent(&buf, v, indent, 0)
	return buf.String()
}

// MarshalCompact renders v as JSON without insignificant whitespace.
func MarshalCompact(v Value) string {
	var buf bytes.Buffer
	writeCompact(&buf, v)
	return buf.String()
}

func writeIndent(buf *bytes.Buffer, v Value, indent string, depth int) {
	switch t := v.(type) {
	case *Object:
		if t.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, m := range t.Members() {
			buf.WriteString(strings.Repeat(indent, depth+1))
			writeString(buf, m.Key)
			buf.WriteString(": ")
			writeIndent(buf, m.Value, indent, depth+1)
			if i < t.Len()-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(indent, depth))
		buf.WriteByte('}')
	case Array:
		if len(t) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, e := range t {
			buf.WriteString(strings.Repeat(indent, depth+1))
			writeIndent(buf, e, indent, depth+1)
			if i < len(t)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(indent, depth))
		buf.WriteByte(']')
	default:
		writeScalar(buf, v)
	}
}

func writeCompact(buf *bytes.Buffer, v Value) {
	switch t := v.(type) {
	case *Object:
		buf.WriteByte('{')
		for i, m := range t.Members() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, m.Key)
			buf.WriteByte(':')
			writeCompact(buf, m.Value)
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCompact(buf, e)
		}
		buf.WriteByte(']')
	default:
		writeScalar(buf, v)
	}
}

func writeScalar(buf *bytes.Buffer, v Value) {
	switch t := v.(type) {
	case String:
		writeString(buf, string(t))
	case nil:
		buf.WriteString("null")
	default:
		buf.WriteString(v.String())
	}
}

// writeString quotes s the way JSON.stringify does: no HTML escaping, and
// U+2028/U+2029 are written raw.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for {
		i := strings.IndexAny(s, "\u2028\u2029")
		if i < 0 {
			writeEscaped(buf, s)
			break
		}
		writeEscaped(buf, s[:i])
		_, size := utf8.DecodeRuneInString(s[i:])
		buf.WriteString(s[i : i+size])
		s = s[i+size:]
	}
	buf.WriteByte('"')
}

// writeEscaped writes the escaped body of s without surrounding quotes.
func writeEscaped(buf *bytes.Buffer, s string) {
	if s == "" {
		return
	}
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	quoted := bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'})
	buf.Write(quoted[1 : len(quoted)-1])
}
