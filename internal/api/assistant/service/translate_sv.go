package assistantService

import (
	"time"

	"YojanaSetu/internal/api/assistant"
	"YojanaSetu/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// SetLanguage switches the display language for a session. The active
// language is written immediately so new replies honour it; rewriting the
// existing transcript is debounced, and the eventual batch is tagged with
// the language it was issued for so a stale batch never clobbers a newer
// switch.
func (s *assistantService) SetLanguage(ctx context.Context, sessionID, language string) (*assistant.SessionResponse, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.ActiveLanguage == language {
		return assistant.MakeSessionResponse(session), nil
	}

	session.ActiveLanguage = language
	session.LastActivity = time.Now()
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.scheduleTranslation(sessionID, language)

	return assistant.MakeSessionResponse(session), nil
}

func (s *assistantService) scheduleTranslation(sessionID, language string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.pending[sessionID]; ok {
		timer.Stop()
	}
	s.pending[sessionID] = time.AfterFunc(languageDebounce, func() {
		s.mu.Lock()
		delete(s.pending, sessionID)
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		s.translateTranscript(ctx, sessionID, language)
	})
}

// translateTranscript rewrites displayContent for every message in the
// session. Originals are never touched: switching back to the default
// language just restores them verbatim with no service call.
func (s *assistantService) translateTranscript(ctx context.Context, sessionID, target string) {
	lock := s.turnLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Session gone before translation batch ran")
		return
	}
	if session.ActiveLanguage != target {
		return
	}

	translated, err := s.translateMessages(ctx, session.Messages, target)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"language":   target,
			"error":      err.Error(),
			"operation":  "translate_transcript",
		}).Error("Translation batch failed, keeping previous display content")
		return
	}

	// The batch may have raced a newer language switch; re-read and only
	// apply when the tag still matches.
	session, err = s.loadSession(ctx, sessionID)
	if err != nil || session.ActiveLanguage != target {
		return
	}

	for i := range session.Messages {
		if text, ok := translated[session.Messages[i].ID]; ok {
			session.Messages[i].DisplayContent = text
		}
	}
	session.LastActivity = time.Now()

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to save translated transcript")
	}
}

// translateMessages resolves the full batch before anything is written, so
// a partial failure leaves the session exactly as it was.
func (s *assistantService) translateMessages(ctx context.Context, messages []entity.ChatMessage, target string) (map[string]string, error) {
	translated := make(map[string]string, len(messages))
	for _, m := range messages {
		if target == DefaultLanguage {
			translated[m.ID] = m.OriginalContent
			continue
		}
		if len([]rune(m.OriginalContent)) < minTranslateLen {
			translated[m.ID] = m.OriginalContent
			continue
		}
		text, err := s.translator.Translate(ctx, m.OriginalContent, translateCode(target))
		if err != nil {
			return nil, err
		}
		translated[m.ID] = text
	}
	return translated, nil
}
