package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_LengthAndAlphabet(t *testing.T) {
	gen := NewCodeGenerator()

	for i := 0; i < 200; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Len(t, code, codeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, ch), "unexpected character %q in code %q", ch, code)
		}
	}
}

func TestCodeGenerator_ExcludesAmbiguousCharacters(t *testing.T) {
	for _, ch := range "01IiOo" {
		assert.NotContains(t, codeAlphabet, string(ch))
	}
	assert.Len(t, codeAlphabet, 32)
}

func TestCodeGenerator_CodesVary(t *testing.T) {
	gen := NewCodeGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %q after %d draws", code, i)
		seen[code] = true
	}
}
