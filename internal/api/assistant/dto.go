package assistant

import (
	"time"

	"YojanaSetu/internal/entity"
)

type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	IsWelcome bool      `json:"is_welcome,omitempty"`
	AudioURL  string    `json:"audio_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionResponse struct {
	ID                string            `json:"id"`
	Messages          []MessageResponse `json:"messages"`
	IsResponsePending bool              `json:"is_response_pending"`
	ActiveLanguage    string            `json:"active_language"`
	CreatedAt         time.Time         `json:"created_at"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type SetLanguageRequest struct {
	Language string `json:"language" validate:"required"`
}

// CaptureEvent is pushed over the voice websocket as the recording state
// machine advances. Message is set on events that append to the chat.
type CaptureEvent struct {
	Type       string           `json:"type"`
	State      string           `json:"state,omitempty"`
	Transcript string           `json:"transcript,omitempty"`
	Message    *MessageResponse `json:"message,omitempty"`
	Error      string           `json:"error,omitempty"`
}

const (
	EventState      = "state"
	EventTranscript = "transcript"
	EventMessage    = "message"
	EventError      = "error"
	EventDone       = "done"
)

func MakeMessageResponse(m entity.ChatMessage) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Role:      m.Role,
		Content:   m.DisplayContent,
		IsWelcome: m.IsWelcome,
		CreatedAt: m.CreatedAt,
	}
}

func MakeSessionResponse(s entity.ChatSession) *SessionResponse {
	messages := make([]MessageResponse, 0, len(s.Messages))
	for _, m := range s.Messages {
		messages = append(messages, MakeMessageResponse(m))
	}
	return &SessionResponse{
		ID:                s.ID,
		Messages:          messages,
		IsResponsePending: s.IsResponsePending,
		ActiveLanguage:    s.ActiveLanguage,
		CreatedAt:         s.CreatedAt,
	}
}
