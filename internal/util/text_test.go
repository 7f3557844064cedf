package util

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"terminators", "Water evaporates. It rises!  Then rains? yes", []string{"Water evaporates.", "It rises!", "Then rains?", "yes"}},
		{"no space after dot", "Version 1.5 is out. Done", []string{"Version 1.5 is out.", "Done"}},
		{"newlines joined", "Line one\nline two. Next", []string{"Line one line two.", "Next"}},
		{"crlf", "First.\r\nSecond.", []string{"First.", "Second."}},
		{"blank", "   \n ", []string{}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.input))
		})
	}
}

func TestExtractWords(t *testing.T) {
	assert.Equal(t, []string{"water", "cycle", "really"}, ExtractWords("The water-cycle is fun, REALLY!"))
	assert.Empty(t, ExtractWords("a an the of"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("", 5))
	assert.Equal(t, "abc", Truncate("abc", 4))
	assert.Equal(t, "abcd", Truncate("abcd", 4))
	assert.Equal(t, "abc...", Truncate("abcdef", 4))
	assert.Equal(t, "ab...", Truncate("ab cdef", 4))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "hé", TruncateRunes("héllo", 2))
	assert.Equal(t, "héllo", TruncateRunes("héllo", 10))
	assert.Equal(t, "", TruncateRunes("héllo", 0))
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, `a &amp; &lt;b&gt; &quot;c&quot; 'd'`, EscapeHTML(`a & <b> "c" 'd'`))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "watercycle2", Normalize("Water-Cycle 2!"))
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Evaporation", CapitalizeFirst("evaporation"))
	assert.Equal(t, "Été", CapitalizeFirst("été"))
	assert.Equal(t, "", CapitalizeFirst(""))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpaces("a  b\t\nc"))
}

func TestShuffleKeepsInput(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	out := Shuffle(rand.New(rand.NewSource(7)), in)

	assert.ElementsMatch(t, in, out)
	assert.Equal(t, []string{"a", "b", "c", "d"}, in)
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("content missing")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, "content missing", err.Error())
}
