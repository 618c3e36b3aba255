package locale_test

import (
	"testing"

	"github.com/alkime/jailu/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		want  locale.Language
		found bool
	}{
		{name: "french", code: "fr", want: locale.French, found: true},
		{name: "english upper case", code: " EN ", want: locale.English, found: true},
		{name: "unknown", code: "de", found: false},
		{name: "empty", code: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := locale.Lookup(tt.code)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLookupOrDefault(t *testing.T) {
	assert.Equal(t, locale.French, locale.LookupOrDefault("xx"))
	assert.Equal(t, locale.English, locale.LookupOrDefault("en"))
}

func TestLanguages_ExactlyTwo(t *testing.T) {
	langs := locale.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, locale.Default(), langs[0])
}

func TestMessages_Formatting(t *testing.T) {
	fr := locale.French.Messages()
	en := locale.English.Messages()

	assert.Equal(t, "Réessayer (2 tentatives restantes)", fr.RetryAction(2))
	assert.Equal(t, "Retry (1 attempts remaining)", en.RetryAction(1))
	assert.Equal(t, "Automatic attempt #2/3", en.AutomaticAttempt(2, 3))
	assert.Contains(t, en.FileTooLarge("big.pdf"), "big.pdf")
	assert.Contains(t, fr.FileUnsupported("exe"), "exe")
	assert.NotEmpty(t, fr.Loading)
	assert.Len(t, en.Loading, len(fr.Loading))
}
