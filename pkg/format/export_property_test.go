package format

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dkoosis/mpfmt/pkg/payload"
)

// TestProperty_QueryStringRoundTrip checks that decoding the copied query
// string yields the record pairs and that re-encoding reproduces it.
func TestProperty_QueryStringRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(copy) reconstructs record pairs", prop.ForAll(
		func(keys, values []string) bool {
			obj := payload.NewObject()
			for i, k := range keys {
				obj.Set(k, payload.String(values[i%len(values)]))
			}
			q := QueryString(obj)

			pairs, err := ParseQueryString(q.Copy)
			if err != nil || len(pairs) != obj.Len() {
				return false
			}
			reencoded := make([]string, 0, len(pairs))
			for i, m := range obj.Members() {
				if pairs[i].Key != m.Key || pairs[i].Value != m.Value.String() {
					return false
				}
				reencoded = append(reencoded, EncodeURIComponent(pairs[i].Key)+"="+EncodeURIComponent(pairs[i].Value))
			}
			return strings.Join(reencoded, "&") == q.Copy &&
				strings.ReplaceAll(q.Lines, "\n", "&") == q.Copy
		},
		gen.SliceOfN(5, gen.AnyString()).SuchThat(func(ks []string) bool {
			for _, k := range ks {
				if k == "" {
					return false
				}
			}
			return true
		}),
		gen.SliceOfN(3, gen.AnyString()),
	))

	properties.TestingRun(t)
}

// TestProperty_FormattedJSONRoundTrip checks that the pretty-printed export
// parses back into a structurally equal record.
func TestProperty_FormattedJSONRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("parse(FormattedJSON(r)) == r", prop.ForAll(
		func(names []string, values []string, nums []int64) bool {
			events := payload.Array{}
			for i, n := range names {
				params := payload.NewObject(
					payload.Member{Key: "label", Value: payload.String(values[i%len(values)])},
					payload.Member{Key: "count", Value: payload.Number(strconv.FormatInt(nums[i%len(nums)], 10))},
					payload.Member{Key: "nested", Value: payload.Array{payload.Bool(i%2 == 0), payload.Null{}}},
				)
				events = append(events, payload.NewObject(
					payload.Member{Key: "name", Value: payload.String(n)},
					payload.Member{Key: "params", Value: params},
				))
			}
			record := payload.NewObject(
				payload.Member{Key: "client_id", Value: payload.String("c")},
				payload.Member{Key: "events", Value: events},
			)

			back, err := payload.Parse(FormattedJSON(record))
			return err == nil && payload.Equal(record, back)
		},
		gen.SliceOf(gen.AnyString()),
		gen.SliceOfN(2, gen.AnyString()),
		gen.SliceOfN(2, gen.Int64()),
	))

	properties.TestingRun(t)
}
