package mapper

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/mpfmt/internal/acquire"
	"github.com/dkoosis/mpfmt/pkg/format"
	"github.com/dkoosis/mpfmt/pkg/pattern"
)

func TestFromResult_MPv1(t *testing.T) {
	raw := `{"v":"1","tid":"UA-123","cid":"abc","ec":"video","ea":"play"}`
	res, err := format.Format(raw)
	require.NoError(t, err)

	patterns := FromResult(raw, res, Options{})
	require.Len(t, patterns, 4)

	badge, ok := patterns[0].(*pattern.Badge)
	require.True(t, ok, "expected Badge, got %T", patterns[0])
	assert.Equal(t, "MPV1", badge.Text)

	general, ok := patterns[1].(*pattern.FieldGroup)
	require.True(t, ok)
	want := []pattern.Row{
		{Key: "v (Protocol Version)", Value: "1"},
		{Key: "tid (Tracking ID)", Value: "UA-123"},
		{Key: "cid (Client ID)", Value: "abc"},
	}
	if diff := cmp.Diff(want, general.Rows); diff != "" {
		t.Errorf("general rows mismatch (-want +got):\n%s", diff)
	}

	export, ok := patterns[3].(*pattern.Export)
	require.True(t, ok)
	assert.Equal(t, "query-string", export.Kind)
	assert.Equal(t, "v=1&tid=UA-123&cid=abc&ec=video&ea=play", export.Copy)
}

func TestFromResult_MPv2EventsBecomeBlocks(t *testing.T) {
	raw := `{"client_id":"c1","events":[{"name":"purchase","params":{"value":9.99}}]}`
	res, err := format.Format(raw)
	require.NoError(t, err)

	patterns := FromResult(raw, res, Options{ShowRaw: true})
	require.Len(t, patterns, 5)

	rawPattern, ok := patterns[0].(*pattern.Raw)
	require.True(t, ok)
	assert.Equal(t, raw, rawPattern.Text)

	events, ok := patterns[3].(*pattern.FieldGroup)
	require.True(t, ok)
	assert.Equal(t, "Events (1)", events.Title)
	assert.Empty(t, events.Rows)
	require.Len(t, events.Blocks, 1)
	assert.Equal(t, "Event 1: purchase", events.Blocks[0].Label)
	assert.Equal(t, []pattern.Row{{Key: "value", Value: "9.99"}}, events.Blocks[0].Rows)
}

func TestFromError_DistinctMessages(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
		kind pattern.ErrorKind
		msg  string
	}{
		{"no selection", "", acquire.ErrNoSelection, pattern.ErrorNoSelection, MsgNoSelection},
		{"parse", "not json", mustErr(format.Format("not json")), pattern.ErrorParse, MsgParse},
		{"unrecognized", `{"foo":"bar"}`, mustErr(format.Format(`{"foo":"bar"}`)), pattern.ErrorUnrecognized, MsgUnrecognized},
		{"internal", "x", fmt.Errorf("boom"), pattern.ErrorInternal, "Processing error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns := FromError(tt.raw, tt.err, Options{})
			require.Len(t, patterns, 1)
			e, ok := patterns[0].(*pattern.Error)
			require.True(t, ok)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.msg, e.Message)
		})
	}

	assert.NotEqual(t, MsgNoSelection, MsgParse)
	assert.NotEqual(t, MsgParse, MsgUnrecognized)
}

func TestFromError_KeepsRawWhenRequested(t *testing.T) {
	patterns := FromError("not json", mustErr(format.Format("not json")), Options{ShowRaw: true})
	require.Len(t, patterns, 2)
	_, ok := patterns[0].(*pattern.Raw)
	assert.True(t, ok)
}

func mustErr(_ *format.Result, err error) error {
	return err
}
