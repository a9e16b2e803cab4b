package format

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dkoosis/mpfmt/pkg/payload"
)

// QueryExport holds the two renderings of an MPv1 query string.
type QueryExport struct {
	Pairs []string // encoded key=value pairs, record order
	Lines string   // pairs joined by newlines, for display
	Copy  string   // pairs joined by '&', for the clipboard
}

// QueryString percent-encodes every member of obj, in record order and
// regardless of category. Structured values are encoded from compact JSON.
func QueryString(obj *payload.Object) QueryExport {
	pairs := make([]string, 0, obj.Len())
	for _, m := range obj.Members() {
		var val string
		if payload.IsStructured(m.Value) {
			val = payload.MarshalCompact(m.Value)
		} else {
			val = m.Value.String()
		}
		pairs = append(pairs, EncodeURIComponent(m.Key)+"="+EncodeURIComponent(val))
	}
	return QueryExport{
		Pairs: pairs,
		Lines: strings.Join(pairs, "\n"),
		Copy:  strings.Join(pairs, "&"),
	}
}

// QueryPair is one decoded key/value pair.
type QueryPair struct {
	Key   string
	Value string
}

// ParseQueryString decodes an ampersand-joined query string produced by
// QueryString, keeping pair order and duplicates.
func ParseQueryString(s string) ([]QueryPair, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "&")
	pairs := make([]QueryPair, 0, len(parts))
	for _, part := range parts {
		k, v, _ := strings.Cut(part, "=")
		key, err := url.PathUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("decoding key %q: %w", k, err)
		}
		val, err := url.PathUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("decoding value of %q: %w", key, err)
		}
		pairs = append(pairs, QueryPair{Key: key, Value: val})
	}
	return pairs, nil
}

// FormattedJSON serialises v with four-space indentation, keeping member
// order and number literals.
func FormattedJSON(v payload.Value) string {
	return payload.MarshalIndent(v, JSONIndent)
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent escapes s like the browser function of the same name:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
func EncodeURIComponent(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
