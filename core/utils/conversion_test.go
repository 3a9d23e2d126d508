package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int
		ok   bool
	}{
		{"Int", 4, 4, true},
		{"Uint64", uint64(7), 7, true},
		{"Int64", int64(-2), -2, true},
		{"Float64", float64(3), 3, true},
		{"FractionalFloat64", 1.5, 1, false},
		{"FractionalFloat32", float32(2.25), 2, false},
		{"NumericString", "12", 12, true},
		{"Text", "abc", 0, false},
		{"Nil", nil, 0, false},
		{"Map", map[string]any{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.val)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ToStrings([]any{"a", 1, "b"}))
	assert.Equal(t, []string{"x"}, ToStrings([]string{"x"}))
	assert.Nil(t, ToStrings("single"))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "7", ToString(7))
	assert.Equal(t, "raw", ToString([]byte("raw")))
}
