package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"material name", "M400-50A", ID("M400-50A")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}

	// Distinct names hash to distinct IDs in practice.
	assert.NotEqual(t, ID("M400-50A"), ID("M800-50A"))
}

func TestSumMatchesID(t *testing.T) {
	assert.Equal(t, ID("steel"), Sum([]byte("steel")))
	assert.NotEqual(t, Sum([]byte("steel")), Sum([]byte("steel ")))
}

func BenchmarkID(b *testing.B) {
	for b.Loop() {
		ID("M400-50A")
	}
}
