package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	cases := map[string]string{
		"Occasion Wear 2026":  "occasion-wear-2026",
		"  Bridal & Formal  ": "bridal-formal",
		"Déjà":                "dj",
		"a---b":               "a-b",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Generate(in), "Generate(%q)", in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "bridalwear", Normalize("Bridal Wear"))
	assert.Equal(t, "bridalwear", Normalize("  BRIDAL\tWEAR\n"))
	assert.Equal(t, "", Normalize("   "))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("Bridal Wear", "Bridal Wear", "bridal-wear"))
	assert.True(t, Matches("bridalwear", "Bridal Wear", "bridal-wear"))
	assert.True(t, Matches("BRIDAL-WEAR", "Something Else", "bridal-wear"))
	assert.False(t, Matches("Casual", "Bridal Wear", "bridal-wear"))
	assert.False(t, Matches("", "Bridal Wear", "bridal-wear"), "empty labels never match")
}
