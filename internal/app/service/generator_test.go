package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLength(t *testing.T) {
	gen := NewRandomIDGenerator()

	id, err := gen.Generate()
	require.NoError(t, err)
	assert.Len(t, id, shortIDLength)
}

func TestGenerateAlphabet(t *testing.T) {
	gen := NewRandomIDGenerator()

	for i := 0; i < 100; i++ {
		id, err := gen.Generate()
		require.NoError(t, err)

		for _, c := range id {
			assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q in %q", c, id)
		}
	}
}

func TestGenerateNoImmediateCollisions(t *testing.T) {
	gen := NewRandomIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := gen.Generate()
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %q after %d generations", id, i)
		seen[id] = true
	}
}
