package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for textutil:
// - TitleCase capitalises each letter run and lower-cases the remainder
// - CleanConstant strips prefixes and underscores
// - SplitLines handles CRLF, lone CR, BOM and a trailing newline
// - Hash is stable and Truncate only shortens long strings

func TestTitleCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"BULBASAUR", "Bulbasaur"},
		{"MR MIME", "Mr Mime"},
		{"HO-OH", "Ho-Oh"},
		{"PORYGON2", "Porygon2"},
		{"2ND FORM", "2Nd Form"},
		{"", ""},
		{"already Title", "Already Title"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.in))
		})
	}
}

func TestCleanConstant(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Fighting", CleanConstant("TYPE_FIGHTING", "TYPE_"))
	assert.Equal(t, "Swift Swim", CleanConstant("ABILITY_SWIFT_SWIM", "ABILITY_"))
	assert.Equal(t, "Raichu Alola", CleanConstant("SPECIES_RAICHU_ALOLA", "SPECIES_"))
	assert.Equal(t, "Plain Value", CleanConstant("PLAIN_VALUE", ""))
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "", "b"}, SplitLines("\uFEFFa\r\n\r\nb\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\rb"))
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"", "x"}, SplitLines("\nx"))
}

func TestHashAndTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Hash("abc"), Hash("abc"))
	assert.NotEqual(t, Hash("abc"), Hash("abd"))
	assert.Len(t, Hash(""), 64)

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
}
