package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Punctuation stripped",
			input: "Diamond Ring!",
			want:  "diamond-ring",
		},
		{
			name:  "Already a slug",
			input: "diamond-ring",
			want:  "diamond-ring",
		},
		{
			name:  "Multiple spaces collapsed",
			input: "Gold   Eternity   Band",
			want:  "gold-eternity-band",
		},
		{
			name:  "Leading and trailing hyphens trimmed",
			input: "--Solitaire--",
			want:  "solitaire",
		},
		{
			name:  "Mixed case with symbols",
			input: "18ct White Gold & Platinum",
			want:  "18ct-white-gold-platinum",
		},
		{
			name:  "Empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	inputs := []string{"Diamond Ring!", "Vintage Halo Engagement Ring", "Men's Signet"}
	for _, input := range inputs {
		once := GenerateSlug(input)
		assert.Equal(t, once, GenerateSlug(once))
	}
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("Diamond Ring", "rings")

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "RIN", parts[0])
	assert.Equal(t, "DIAMO", parts[1])
	assert.Len(t, parts[2], 6)
}

func TestGenerateSKUShortInputs(t *testing.T) {
	sku := GenerateSKU("X", "er")

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "ER", parts[0])
	assert.Equal(t, "X", parts[1])
}

func TestGenerateSKUStripsSymbols(t *testing.T) {
	// Only the first five name characters are kept before stripping
	sku := GenerateSKU("A&B C", "necklaces")

	parts := strings.Split(sku, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "NEC", parts[0])
	assert.Equal(t, "ABC", parts[1])
}

func TestHashTokenBasic(t *testing.T) {
	hash := HashToken("some-opaque-token")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken("some-opaque-token"))
	assert.NotEqual(t, hash, HashToken("another-token"))
}
