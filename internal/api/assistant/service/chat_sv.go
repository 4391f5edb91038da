package assistantService

import (
	"errors"
	"strings"
	"time"

	"YojanaSetu/internal/api/assistant"
	"YojanaSetu/internal/entity"
	"YojanaSetu/pkg/gemini"
	redisPkg "YojanaSetu/pkg/redis"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	welcomeMessage = "Namaste! I am Yojana Mitra, your guide to government welfare schemes. " +
		"Ask me about any scheme, your eligibility, or how to apply."

	apologyMessage = "Sorry, I am having trouble answering right now. Please try again in a moment."
)

func (s *assistantService) CreateSession(ctx context.Context, userID string) (*assistant.SessionResponse, error) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := entity.ChatSession{
		ID:             id,
		UserID:         userID,
		ActiveLanguage: DefaultLanguage,
		CreatedAt:      now,
		LastActivity:   now,
	}
	session.Messages = append(session.Messages, s.newMessage(entity.RoleAssistant, welcomeMessage, true))

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Failed to create chat session")
		return nil, err
	}

	return assistant.MakeSessionResponse(session), nil
}

func (s *assistantService) GetSession(ctx context.Context, sessionID string) (*assistant.SessionResponse, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return assistant.MakeSessionResponse(session), nil
}

// DeleteSession is the restart path: the whole conversation goes, there is
// no partial reset.
func (s *assistantService) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := s.loadSession(ctx, sessionID); err != nil {
		return err
	}
	return s.sessions.DeleteSession(ctx, sessionID)
}

// SendMessage runs one chat turn. The user message is persisted before the
// model is called so a crash mid-turn never loses what the user typed. Model
// failures degrade to a canned apology and are never returned to the caller.
func (s *assistantService) SendMessage(ctx context.Context, sessionID, text string) (*assistant.SessionResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.GetSession(ctx, sessionID)
	}

	lock := s.turnLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsResponsePending {
		if time.Since(session.LastActivity) < pendingTurnTimeout {
			return nil, assistant.ErrResponsePending
		}
		s.log.WithFields(logrus.Fields{
			"session_id":    sessionID,
			"last_activity": session.LastActivity,
		}).Warn("Reclaiming stale pending flag from an unfinished turn")
		session.IsResponsePending = false
	}

	history := s.historyFromSession(session)

	session.Messages = append(session.Messages, s.newMessage(entity.RoleUser, text, false))
	session.IsResponsePending = true
	session.LastActivity = time.Now()
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	grounding, err := s.buildGroundingContext(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to load schemes for grounding context, answering without it")
		grounding = ""
	}

	languageHint := ""
	if session.ActiveLanguage != DefaultLanguage {
		languageHint = session.ActiveLanguage
	}

	reply, err := s.gemini.Complete(ctx, history, text, grounding, languageHint)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
			"operation":  "gemini_complete",
		}).Error("Model completion failed")
		reply = apologyMessage
	}

	session.Messages = append(session.Messages, s.newMessage(entity.RoleAssistant, reply, false))
	session.IsResponsePending = false
	session.LastActivity = time.Now()
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return assistant.MakeSessionResponse(session), nil
}

func (s *assistantService) loadSession(ctx context.Context, sessionID string) (entity.ChatSession, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if errors.Is(err, redisPkg.ErrSessionNotFound) {
		return entity.ChatSession{}, assistant.ErrSessionNotFound
	} else if err != nil {
		return entity.ChatSession{}, err
	}
	return session, nil
}

func (s *assistantService) newMessage(role, content string, welcome bool) entity.ChatMessage {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		id = time.Now().Format("20060102150405.000000000")
	}
	return entity.ChatMessage{
		ID:              id,
		Role:            role,
		DisplayContent:  content,
		OriginalContent: content,
		IsWelcome:       welcome,
		CreatedAt:       time.Now(),
	}
}

// historyFromSession turns stored messages into model history. The synthetic
// welcome message is skipped, consecutive same-role entries collapse to the
// latest one, and leading non-user entries are dropped; Gemini rejects a
// history that does not start with a user turn and alternate strictly.
func (s *assistantService) historyFromSession(session entity.ChatSession) []gemini.HistoryEntry {
	var history []gemini.HistoryEntry
	for _, m := range session.Messages {
		if m.IsWelcome {
			continue
		}
		role := "user"
		if m.Role == entity.RoleAssistant {
			role = "model"
		}
		if len(history) > 0 && history[len(history)-1].Role == role {
			history[len(history)-1].Content = m.OriginalContent
			continue
		}
		history = append(history, gemini.HistoryEntry{Role: role, Content: m.OriginalContent})
	}
	for len(history) > 0 && history[0].Role != "user" {
		history = history[1:]
	}
	return history
}

// buildGroundingContext flattens every known scheme into a text block the
// model can cite from. The catalogue is small enough that sending all of it
// beats retrieval tricks.
func (s *assistantService) buildGroundingContext(ctx context.Context) (string, error) {
	repo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		return "", err
	}

	schemes, err := repo.Schemes.GetAllSchemes(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, sc := range schemes {
		b.WriteString("Scheme: " + sc.Title + "\n")
		b.WriteString("Category: " + sc.Category + "\n")
		b.WriteString("Description: " + sc.Description + "\n")
		b.WriteString("Eligibility: " + sc.Eligibility + "\n")
		b.WriteString("Benefits: " + sc.Benefits + "\n")
		b.WriteString("How to apply: " + sc.ApplicationProcess + "\n\n")
	}
	return b.String(), nil
}
