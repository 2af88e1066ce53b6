package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"maria", "maria", 0},
		{"kitten", "sitting", 3},
		{"ab", "ba", 1},
		{"marai", "maria", 1},
		{"jose", "josue", 1},
		{"joão", "joao", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("ana", "ana"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 0.8, Similarity("maria", "marai"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("joão", "joao"), 1e-9)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"maria", "da", "silva"}, Tokens("  Maria \t da   SILVA "))
	assert.Empty(t, Tokens("   "))
}

func TestNamesSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "Maria Silva", "Maria Silva", true},
		{"case and spacing", "  maria   SILVA", "Maria Silva", true},
		{"extra surname", "Maria Silva", "Maria Silva Souza", true},
		{"surname in different position", "Maria Souza Silva", "Maria Silva", true},
		{"typo in given name", "Jose Santos", "Josue Santos", true},
		{"transposed letters", "Marai Silva", "Maria Silva", true},
		{"different given name", "Mario Silva", "Pedro Silva", false},
		{"different surname", "Maria Souza", "Maria Silva", false},
		{"single tokens", "Maria", "maria", true},
		{"single against full", "Maria", "Maria Silva", false},
		{"empty", "", "Maria", false},
		{"whitespace only", "   ", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NamesSimilar(tt.a, tt.b, DefaultThreshold))
		})
	}
}

func TestNamesSimilar_Symmetric(t *testing.T) {
	names := []string{
		"Maria Silva", "Maria Silva Souza", "Marai Silva", "Jose Santos",
		"Josue Santos", "Ana", "ana paula", "Paulo Ana", "", "João Pedro Alves",
	}
	for _, threshold := range []float64{0, 0.5, 0.8, 1} {
		for _, a := range names {
			for _, b := range names {
				assert.Equal(t, NamesSimilar(a, b, threshold), NamesSimilar(b, a, threshold),
					"threshold=%v a=%q b=%q", threshold, a, b)
			}
		}
	}
}
