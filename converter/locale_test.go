package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"":      "",
		"en":    "en",
		"ES":    "es",
		"es-ES": "es",
		"pt_BR": "pt",
		" ca ":  "ca",
	}
	for input, want := range tests {
		assert.Equal(t, want, NormalizeLanguage(input), "input %q", input)
	}
}

func TestDefaultLocalization(t *testing.T) {
	loc := DefaultLocalization()
	require.NotNil(t, loc)

	assert.Same(t, loc, DefaultLocalization())
	assert.Contains(t, loc.Languages(), BaseLanguage)
	assert.True(t, loc.Has("es"))
	assert.True(t, loc.Has("ES-es"))
	assert.False(t, loc.Has("xx"))

	assert.Equal(t, "Show Feedback", loc.Caption("en", CaptionFeedback))
	assert.Equal(t, "Mostrar retroalimentación", loc.Caption("es", CaptionFeedback))
	assert.Equal(t, "Mostrar retroalimentación", loc.Caption("ES", CaptionFeedback))
	assert.Equal(t, "Show solution", loc.Caption("xx", CaptionSolution), "unmapped language falls back to en")
	assert.Equal(t, "Show solution", loc.Caption("", CaptionSolution))
	assert.Equal(t, "unknownKey", loc.Caption("en", "unknownKey"))
}

func TestParseLocalization(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		loc, err := ParseLocalization([]byte("en:\n  feedback: Feedback\nes-ES:\n  feedback: Retro\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "es"}, loc.Languages())
		assert.Equal(t, "Retro", loc.Caption("es", CaptionFeedback))
		assert.Equal(t, CaptionSolution, loc.Caption("es", CaptionSolution), "key missing everywhere")
	})

	t.Run("missing base language", func(t *testing.T) {
		_, err := ParseLocalization([]byte("es:\n  feedback: Retro\n"))
		require.Error(t, err)
		assert.Equal(t, `locales must define base language "en"`, err.Error())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseLocalization([]byte("en: [unterminated"))
		require.Error(t, err)
	})
}
