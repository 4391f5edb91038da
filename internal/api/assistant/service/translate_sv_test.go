package assistantService

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YojanaSetu/internal/api/assistant"
)

func TestSetLanguage(t *testing.T) {
	t.Run("active language is written immediately", func(t *testing.T) {
		h := newAssistantHarness()
		id := h.createSession(t)

		resp, err := h.svc.SetLanguage(context.Background(), id, "Hindi")
		require.NoError(t, err)
		assert.Equal(t, "Hindi", resp.ActiveLanguage)
		assert.Equal(t, "Hindi", h.store.mustGet(t, id).ActiveLanguage)
	})

	t.Run("same language is a no-op", func(t *testing.T) {
		h := newAssistantHarness()
		id := h.createSession(t)

		resp, err := h.svc.SetLanguage(context.Background(), id, DefaultLanguage)
		require.NoError(t, err)
		assert.Equal(t, DefaultLanguage, resp.ActiveLanguage)
		assert.Zero(t, h.translate.calls)
	})

	t.Run("unknown session", func(t *testing.T) {
		h := newAssistantHarness()
		_, err := h.svc.SetLanguage(context.Background(), "missing", "Hindi")
		assert.ErrorIs(t, err, assistant.ErrSessionNotFound)
	})

	t.Run("debounced batch eventually rewrites the transcript", func(t *testing.T) {
		h := newAssistantHarness()
		id := h.createSession(t)

		_, err := h.svc.SetLanguage(context.Background(), id, "Hindi")
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			session := h.store.mustGet(t, id)
			return session.Messages[0].DisplayContent == "[hi] "+session.Messages[0].OriginalContent
		}, 3*time.Second, 50*time.Millisecond)
	})
}

func TestTranslateTranscript(t *testing.T) {
	t.Run("rewrites display content and keeps originals", func(t *testing.T) {
		h := newAssistantHarness()
		svc := h.svc.(*assistantService)
		id := h.createSession(t)

		session := h.store.mustGet(t, id)
		session.ActiveLanguage = "Hindi"
		require.NoError(t, h.store.SaveSession(context.Background(), session))

		svc.translateTranscript(context.Background(), id, "Hindi")

		session = h.store.mustGet(t, id)
		original := session.Messages[0].OriginalContent
		assert.Equal(t, "[hi] "+original, session.Messages[0].DisplayContent)
		assert.Equal(t, original, session.Messages[0].OriginalContent)
		assert.Equal(t, "hi", h.translate.lastCode)
	})

	t.Run("stale batch is skipped", func(t *testing.T) {
		h := newAssistantHarness()
		svc := h.svc.(*assistantService)
		id := h.createSession(t)

		session := h.store.mustGet(t, id)
		session.ActiveLanguage = "Tamil"
		require.NoError(t, h.store.SaveSession(context.Background(), session))

		// Batch issued for Hindi while the session already moved to Tamil.
		svc.translateTranscript(context.Background(), id, "Hindi")

		assert.Zero(t, h.translate.calls)
		session = h.store.mustGet(t, id)
		assert.Equal(t, session.Messages[0].OriginalContent, session.Messages[0].DisplayContent)
	})

	t.Run("batch failure leaves previous display content", func(t *testing.T) {
		h := newAssistantHarness()
		svc := h.svc.(*assistantService)
		h.translate.err = assert.AnError
		id := h.createSession(t)

		session := h.store.mustGet(t, id)
		session.ActiveLanguage = "Hindi"
		require.NoError(t, h.store.SaveSession(context.Background(), session))

		svc.translateTranscript(context.Background(), id, "Hindi")

		session = h.store.mustGet(t, id)
		assert.Equal(t, session.Messages[0].OriginalContent, session.Messages[0].DisplayContent)
	})

	t.Run("switching back to the default restores originals without calls", func(t *testing.T) {
		h := newAssistantHarness()
		svc := h.svc.(*assistantService)
		id := h.createSession(t)

		session := h.store.mustGet(t, id)
		session.Messages[0].DisplayContent = "some stale translation"
		require.NoError(t, h.store.SaveSession(context.Background(), session))

		svc.translateTranscript(context.Background(), id, DefaultLanguage)

		assert.Zero(t, h.translate.calls)
		session = h.store.mustGet(t, id)
		assert.Equal(t, session.Messages[0].OriginalContent, session.Messages[0].DisplayContent)
	})

	t.Run("vanished session aborts the batch quietly", func(t *testing.T) {
		h := newAssistantHarness()
		svc := h.svc.(*assistantService)

		svc.translateTranscript(context.Background(), "missing", "Hindi")
		assert.Zero(t, h.translate.calls)
	})
}

func TestTranslateMessages(t *testing.T) {
	h := newAssistantHarness()
	svc := h.svc.(*assistantService)
	id := h.createSession(t)

	t.Run("short fragments pass through untranslated", func(t *testing.T) {
		_, err := h.svc.SendMessage(context.Background(), id, "ok")
		require.NoError(t, err)
		session := h.store.mustGet(t, id)

		translated, err := svc.translateMessages(context.Background(), session.Messages, "Hindi")
		require.NoError(t, err)

		for _, m := range session.Messages {
			if len([]rune(m.OriginalContent)) < minTranslateLen {
				assert.Equal(t, m.OriginalContent, translated[m.ID])
			} else {
				assert.Equal(t, "[hi] "+m.OriginalContent, translated[m.ID])
			}
		}
	})
}

func TestLanguageTable(t *testing.T) {
	assert.Equal(t, "hi", translateCode("Hindi"))
	assert.Equal(t, "en", translateCode("Klingon"))
	assert.Equal(t, "ta", localeForLanguage("Tamil"))
	assert.Equal(t, defaultLocale, localeForLanguage(""))
}
