package entity

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage keeps two content fields: OriginalContent is written once at
// creation and never touched again; DisplayContent is what the translation
// overlay rewrites and must always be re-derivable from OriginalContent plus
// the session's active language.
type ChatMessage struct {
	ID              string    `json:"id"`
	Role            string    `json:"role"`
	DisplayContent  string    `json:"display_content"`
	OriginalContent string    `json:"original_content"`
	IsWelcome       bool      `json:"is_welcome,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ChatSession is transient, kept in Redis with a TTL and never written to
// Postgres. Messages are append-only; a restart deletes the whole session.
type ChatSession struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	Messages          []ChatMessage `json:"messages"`
	IsResponsePending bool          `json:"is_response_pending"`
	ActiveLanguage    string        `json:"active_language"`
	CreatedAt         time.Time     `json:"created_at"`
	LastActivity      time.Time     `json:"last_activity"`
}

// Recording capture states, one capture per session at a time.
type RecordingState string

const (
	RecordingIdle       RecordingState = "idle"
	RecordingCapturing  RecordingState = "capturing"
	RecordingProcessing RecordingState = "processing"
)
