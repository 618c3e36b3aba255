package prompt_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alkime/jailu/internal/prompt"
	"github.com/stretchr/testify/assert"
)

// mockGenerator implements prompt.Generator for testing.
type mockGenerator struct {
	result     string
	err        error
	called     bool
	userPrompt string
}

func (m *mockGenerator) Generate(_ context.Context, _, userPrompt string) (string, error) {
	m.called = true
	m.userPrompt = userPrompt
	return m.result, m.err
}

func TestDescribeTone_UsesGeneratedDescription(t *testing.T) {
	generated := "**MISSION** : " + strings.Repeat("Tu es un professeur bienveillant. ", 5)
	gen := &mockGenerator{result: "  " + generated + "\n"}

	got := prompt.DescribeTone(context.Background(), gen, "Professeur bienveillant")

	assert.True(t, gen.called)
	assert.Contains(t, gen.userPrompt, `"Professeur bienveillant"`)
	assert.Equal(t, strings.TrimSpace(generated), got)
}

func TestDescribeTone_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *mockGenerator
	}{
		{name: "generation error", gen: &mockGenerator{err: errors.New("generation failed")}},
		{name: "too short", gen: &mockGenerator{result: "**MISSION** : court"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prompt.DescribeTone(context.Background(), tt.gen, "Ami rigolo")

			assert.Equal(t, prompt.FallbackDescription("Ami rigolo"), got)
		})
	}
}

func TestFallbackDescription_KeywordSelection(t *testing.T) {
	tests := []struct {
		name     string
		toneName string
		marker   string
	}{
		{name: "expert", toneName: "Expert accessible", marker: "expert professionnel"},
		{name: "friend", toneName: "Ami rigolo", marker: "de façon détendue"},
		{name: "funny", toneName: "Super Fun", marker: "amusante et mémorable"},
		{name: "generic", toneName: "Pirate", marker: "spécialiste de l'analyse juridique"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prompt.FallbackDescription(tt.toneName)

			assert.True(t, strings.HasPrefix(got, "**MISSION** :"))
			assert.Contains(t, got, tt.marker)
			assert.Contains(t, got, tt.toneName)
			assert.NotContains(t, got, "%!")
		})
	}
}
