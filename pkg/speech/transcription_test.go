package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocaleFromDetected(t *testing.T) {
	t.Run("detected names resolve to request codes", func(t *testing.T) {
		cases := map[string]string{
			"english":   "en",
			"English":   "en",
			" Hindi ":   "hi",
			"bengali":   "bn",
			"tamil":     "ta",
			"malayalam": "ml",
		}
		for name, want := range cases {
			assert.Equal(t, want, LocaleFromDetected(name), "language %q", name)
		}
	})

	t.Run("codes pass through unchanged", func(t *testing.T) {
		assert.Equal(t, "hi", LocaleFromDetected("hi"))
		assert.Equal(t, "en", LocaleFromDetected("EN"))
	})

	t.Run("unknown names resolve to empty for the caller fallback", func(t *testing.T) {
		assert.Equal(t, "", LocaleFromDetected("klingon"))
		assert.Equal(t, "", LocaleFromDetected(""))
	})
}
