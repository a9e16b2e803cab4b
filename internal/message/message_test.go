package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_WireShape(t *testing.T) {
	b, err := Encode(Toggled{Enabled: false})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"toggled","enabled":false}`, string(b))

	b, err = Encode(NewDataReady(`{"v":"1"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"data-ready","data":"{\"v\":\"1\"}"}`, string(b))
}

func TestDecode_Dispatch(t *testing.T) {
	m, err := Decode([]byte(`{"type":"toggled","enabled":true}`))
	require.NoError(t, err)
	assert.Equal(t, NewToggled(true), m)

	m, err = Decode([]byte(`{"type":"data-ready","data":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, NewDataReady("x"), m)
}

func TestDecode_Errors(t *testing.T) {
	for _, in := range []string{`{"type":"other"}`, `nope`, `{"type":"toggled","enabled":"yes"}`} {
		_, err := Decode([]byte(in))
		assert.Error(t, err, in)
	}
}
