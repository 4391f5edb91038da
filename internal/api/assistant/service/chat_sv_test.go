package assistantService

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YojanaSetu/internal/api/assistant"
	"YojanaSetu/internal/api/scheme"
	schemeRepository "YojanaSetu/internal/api/scheme/repository"
	"YojanaSetu/internal/entity"
	"YojanaSetu/pkg/gemini"
	redisPkg "YojanaSetu/pkg/redis"
)

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]entity.ChatSession
	saveErr  error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]entity.ChatSession{}}
}

func (f *fakeSessionStore) GetSession(ctx context.Context, sessionID string) (entity.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sessionID]
	if !ok {
		return entity.ChatSession{}, redisPkg.ErrSessionNotFound
	}
	session.Messages = append([]entity.ChatMessage(nil), session.Messages...)
	return session, nil
}

func (f *fakeSessionStore) SaveSession(ctx context.Context, session entity.ChatSession) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	session.Messages = append([]entity.ChatMessage(nil), session.Messages...)
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionStore) mustGet(t *testing.T, sessionID string) entity.ChatSession {
	t.Helper()
	session, err := f.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	return session
}

type fakeGemini struct {
	mu            sync.Mutex
	reply         string
	err           error
	calls         int
	lastHistory   []gemini.HistoryEntry
	lastText      string
	lastGrounding string
	lastHint      string
}

func (f *fakeGemini) Complete(ctx context.Context, history []gemini.HistoryEntry, newText, groundingContext, languageHint string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastHistory = history
	f.lastText = newText
	f.lastGrounding = groundingContext
	f.lastHint = languageHint
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeTranscriber struct {
	mu         sync.Mutex
	locale     string
	localeErr  error
	transcript string
	err        error
	delay      time.Duration
	calls      int
	lastLocale string
}

func (f *fakeTranscriber) DetectLocale(ctx context.Context, audio []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locale, f.localeErr
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, localeHint string) (string, error) {
	f.mu.Lock()
	delay := f.delay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastLocale = localeHint
	return f.transcript, f.err
}

type fakeTranslator struct {
	mu        sync.Mutex
	err       error
	calls     int
	lastCode  string
	translate func(text string) string
}

func (f *fakeTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastCode = targetLanguage
	if f.err != nil {
		return "", f.err
	}
	if f.translate != nil {
		return f.translate(text), nil
	}
	return "[" + targetLanguage + "] " + text, nil
}

type fakeCatalogue struct {
	schemes []entity.Scheme
	err     error
}

func (f *fakeCatalogue) GetAllSchemes(ctx context.Context) ([]entity.Scheme, error) {
	return f.schemes, f.err
}

func (f *fakeCatalogue) GetSchemeByID(ctx context.Context, id string) (entity.Scheme, error) {
	return entity.Scheme{}, scheme.ErrSchemeNotFound
}

func (f *fakeCatalogue) GetFAQsBySchemeID(ctx context.Context, schemeID string) ([]entity.SchemeFAQ, error) {
	return nil, nil
}

type fakeCatalogueRepo struct {
	catalogue *fakeCatalogue
}

func (f *fakeCatalogueRepo) NewClient(tx bool) (schemeRepository.Client, error) {
	return schemeRepository.Client{
		Schemes:  f.catalogue,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeIDGen struct {
	mu sync.Mutex
	n  int
}

func (f *fakeIDGen) NewULIDFromTimestamp(t time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return fmt.Sprintf("msg-%04d", f.n), nil
}

func (f *fakeIDGen) ValidateAudioFile(file *multipart.FileHeader) error {
	return nil
}

type assistantHarness struct {
	svc       IAssistantService
	store     *fakeSessionStore
	model     *fakeGemini
	stt       *fakeTranscriber
	translate *fakeTranslator
	catalogue *fakeCatalogue
}

func newAssistantHarness() *assistantHarness {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := newFakeSessionStore()
	model := &fakeGemini{reply: "Here is what I found."}
	stt := &fakeTranscriber{locale: "en", transcript: "what schemes help farmers"}
	translator := &fakeTranslator{}
	catalogue := &fakeCatalogue{schemes: []entity.Scheme{{
		ID:          "scheme-farmer",
		Title:       "Kisan Credit Support",
		Category:    "Agriculture",
		Description: "Credit assistance for farmers",
		Eligibility: "farmers with landholding up to 2 hectares",
		Benefits:    "subsidized credit",
	}}}

	return &assistantHarness{
		svc: New(
			log,
			store,
			model,
			stt,
			translator,
			nil,
			nil,
			&fakeCatalogueRepo{catalogue: catalogue},
			&fakeIDGen{},
		),
		store:     store,
		model:     model,
		stt:       stt,
		translate: translator,
		catalogue: catalogue,
	}
}

func (h *assistantHarness) createSession(t *testing.T) string {
	t.Helper()
	resp, err := h.svc.CreateSession(context.Background(), "user-1")
	require.NoError(t, err)
	return resp.ID
}

func TestCreateSession(t *testing.T) {
	h := newAssistantHarness()

	resp, err := h.svc.CreateSession(context.Background(), "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, DefaultLanguage, resp.ActiveLanguage)
	assert.False(t, resp.IsResponsePending)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, entity.RoleAssistant, resp.Messages[0].Role)
	assert.True(t, resp.Messages[0].IsWelcome)
}

func TestGetSession(t *testing.T) {
	h := newAssistantHarness()

	t.Run("unknown session", func(t *testing.T) {
		_, err := h.svc.GetSession(context.Background(), "missing")
		assert.ErrorIs(t, err, assistant.ErrSessionNotFound)
	})

	t.Run("existing session round trips", func(t *testing.T) {
		id := h.createSession(t)
		resp, err := h.svc.GetSession(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, resp.ID)
	})
}

func TestDeleteSession(t *testing.T) {
	h := newAssistantHarness()
	id := h.createSession(t)

	require.NoError(t, h.svc.DeleteSession(context.Background(), id))

	_, err := h.svc.GetSession(context.Background(), id)
	assert.ErrorIs(t, err, assistant.ErrSessionNotFound)

	assert.ErrorIs(t, h.svc.DeleteSession(context.Background(), id), assistant.ErrSessionNotFound)
}

func TestSendMessage(t *testing.T) {
	t.Run("appends user and assistant turns", func(t *testing.T) {
		h := newAssistantHarness()
		id := h.createSession(t)

		resp, err := h.svc.SendMessage(context.Background(), id, "Which schemes help farmers?")
		require.NoError(t, err)

		require.Len(t, resp.Messages, 3)
		assert.Equal(t, entity.RoleUser, resp.Messages[1].Role)
		assert.Equal(t, "Which schemes help farmers?", resp.Messages[1].Content)
		assert.Equal(t, entity.RoleAssistant, resp.Messages[2].Role)
		assert.Equal(t, "Here is what I found.", resp.Messages[2].Content)
		assert.False(t, resp.IsResponsePending)
	})

	t.Run("blank input is a no-op", func(t *testing.T) {
		h := newAssistantHarness()
		id := h.createSession(t)

		resp, err := h.svc.SendMessage(context.Background(), id, "   ")
		require.NoError(t, err)
		assert.Len(t, resp.Messages, 1)
		assert.Zero(t, h.model.calls)
	})

	t.Run("grounding context carries the scheme catalogue", func(t *testing.T) {
		h := newAssistantHarness()
		id := h.createSession(t)

		_, err := h.svc.SendMessage(context.Background(), id, "help")
		require.NoError(t, err)

		assert.Contains(t, h.model.lastGrounding, "Kisan Credit Support")
		assert.Contains(t, h.model.lastGrounding, "farmers with landholding")
	})

	t.Run("empty catalogue still reaches the model", func(t *testing.T) {
		h := newAssistantHarness()
		h.catalogue.schemes = nil
		id := h.createSession(t)

		resp, err := h.svc.SendMessage(context.Background(), id, "anything for students?")
		require.NoError(t, err)

		assert.Equal(t, 1, h.model.calls)
		assert.Equal(t, "", h.model.lastGrounding)
		assert.Equal(t, "Here is what I found.", resp.Messages[len(resp.Messages)-1].Content)
	})

	t.Run("catalogue failure degrades to no grounding", func(t *testing.T) {
		h := newAssistantHarness()
		h.catalogue.err = assert.AnError
		id := h.createSession(t)

		_, err := h.svc.SendMessage(context.Background(), id, "help")
		require.NoError(t, err)
		assert.Equal(t, 1, h.model.calls)
		assert.Equal(t, "", h.model.lastGrounding)
	})

	t.Run("model failure degrades to an apology", func(t *testing.T) {
		h := newAssistantHarness()
		h.model.err = assert.AnError
		id := h.createSession(t)

		resp, err := h.svc.SendMessage(context.Background(), id, "help")
		require.NoError(t, err)

		last := resp.Messages[len(resp.Messages)-1]
		assert.Equal(t, apologyMessage, last.Content)
		assert.False(t, resp.IsResponsePending)

		// The user's text survived the failed turn.
		assert.Equal(t, "help", resp.Messages[len(resp.Messages)-2].Content)
	})

	t.Run("refused while a response is pending", func(t *testing.T) {
		h := newAssistantHarness()
		id := h.createSession(t)

		session := h.store.mustGet(t, id)
		session.IsResponsePending = true
		require.NoError(t, h.store.SaveSession(context.Background(), session))

		_, err := h.svc.SendMessage(context.Background(), id, "another question")
		assert.ErrorIs(t, err, assistant.ErrResponsePending)
		assert.Zero(t, h.model.calls)
	})

	t.Run("stale pending flag from a dead turn is reclaimed", func(t *testing.T) {
		h := newAssistantHarness()
		id := h.createSession(t)

		session := h.store.mustGet(t, id)
		session.IsResponsePending = true
		session.LastActivity = time.Now().Add(-2 * pendingTurnTimeout)
		require.NoError(t, h.store.SaveSession(context.Background(), session))

		resp, err := h.svc.SendMessage(context.Background(), id, "still there?")
		require.NoError(t, err)
		assert.False(t, resp.IsResponsePending)
		assert.Equal(t, "Here is what I found.", resp.Messages[len(resp.Messages)-1].Content)
	})

	t.Run("language hint follows the active language", func(t *testing.T) {
		h := newAssistantHarness()
		id := h.createSession(t)

		_, err := h.svc.SendMessage(context.Background(), id, "first")
		require.NoError(t, err)
		assert.Equal(t, "", h.model.lastHint)

		session := h.store.mustGet(t, id)
		session.ActiveLanguage = "Hindi"
		require.NoError(t, h.store.SaveSession(context.Background(), session))

		_, err = h.svc.SendMessage(context.Background(), id, "second")
		require.NoError(t, err)
		assert.Equal(t, "Hindi", h.model.lastHint)
	})

	t.Run("unknown session", func(t *testing.T) {
		h := newAssistantHarness()
		_, err := h.svc.SendMessage(context.Background(), "missing", "hello")
		assert.ErrorIs(t, err, assistant.ErrSessionNotFound)
	})
}

func TestHistoryFromSession(t *testing.T) {
	h := newAssistantHarness()
	svc := h.svc.(*assistantService)

	msg := func(role, content string, welcome bool) entity.ChatMessage {
		return entity.ChatMessage{Role: role, OriginalContent: content, DisplayContent: content, IsWelcome: welcome}
	}

	t.Run("welcome message is excluded", func(t *testing.T) {
		session := entity.ChatSession{Messages: []entity.ChatMessage{
			msg(entity.RoleAssistant, "welcome", true),
			msg(entity.RoleUser, "hi", false),
			msg(entity.RoleAssistant, "hello", false),
		}}

		history := svc.historyFromSession(session)
		require.Len(t, history, 2)
		assert.Equal(t, "user", history[0].Role)
		assert.Equal(t, "hi", history[0].Content)
		assert.Equal(t, "model", history[1].Role)
	})

	t.Run("consecutive same-role turns collapse to the latest", func(t *testing.T) {
		session := entity.ChatSession{Messages: []entity.ChatMessage{
			msg(entity.RoleUser, "first question", false),
			msg(entity.RoleAssistant, "answer", false),
			msg(entity.RoleAssistant, "capture notice", false),
			msg(entity.RoleUser, "second question", false),
		}}

		history := svc.historyFromSession(session)
		require.Len(t, history, 3)
		assert.Equal(t, "capture notice", history[1].Content)
		assert.Equal(t, "second question", history[2].Content)
	})

	t.Run("leading model turns are dropped", func(t *testing.T) {
		session := entity.ChatSession{Messages: []entity.ChatMessage{
			msg(entity.RoleAssistant, "stray notice", false),
			msg(entity.RoleUser, "hi", false),
		}}

		history := svc.historyFromSession(session)
		require.Len(t, history, 1)
		assert.Equal(t, "user", history[0].Role)
	})

	t.Run("alternation holds for any stored transcript", func(t *testing.T) {
		session := entity.ChatSession{Messages: []entity.ChatMessage{
			msg(entity.RoleAssistant, "w", true),
			msg(entity.RoleAssistant, "notice", false),
			msg(entity.RoleUser, "a", false),
			msg(entity.RoleUser, "b", false),
			msg(entity.RoleAssistant, "c", false),
		}}

		history := svc.historyFromSession(session)
		require.NotEmpty(t, history)
		assert.Equal(t, "user", history[0].Role)
		for i := 1; i < len(history); i++ {
			assert.NotEqual(t, history[i-1].Role, history[i].Role)
		}
	})
}
