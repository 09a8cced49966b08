package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"Acme", "acme", 1}, // case-sensitive
		{"café", "cafe", 1}, // runes, not bytes
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, editDistance([]rune(tt.a), []rune(tt.b)))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.InDelta(t, 4.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 20.0/21.0, Similarity("acme traders pvt ltd", "acme traders pvt. ltd"), 1e-9)
}

func TestSimilarityProperties(t *testing.T) {
	words := []string{"", "a", "acme", "acme traders", "globex corporation", "zenith exports", "ünïcode"}
	for _, a := range words {
		assert.Equal(t, 1.0, Similarity(a, a), "similarity(%q,%q) must be 1", a, a)
		for _, b := range words {
			s := Similarity(a, b)
			assert.Equal(t, s, Similarity(b, a), "similarity must be symmetric for %q,%q", a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}
