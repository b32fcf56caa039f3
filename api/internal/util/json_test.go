package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	v, err := DecodeJSON(`{"total": 12.50, "id": 12345678901234567890, "items": ["a"]}`)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("12.50"), m["total"])
	assert.Equal(t, json.Number("12345678901234567890"), m["id"])
	assert.Equal(t, []any{"a"}, m["items"])

	v, err = DecodeJSON(" [1, 2] \n")
	require.NoError(t, err)
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, v)
}

func TestDecodeJSON_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"not json",
		`{"a": 1`,
		`{"a": 1} trailing`,
		`{"a": 1}{"b": 2}`,
		`{"a": NaN}`,
		`{"a": Infinity}`,
	} {
		_, err := DecodeJSON(in)
		assert.Error(t, err, "input %q", in)
	}
}
