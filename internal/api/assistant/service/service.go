package assistantService

import (
	"context"
	"sync"
	"time"

	"YojanaSetu/internal/api/assistant"
	schemeRepository "YojanaSetu/internal/api/scheme/repository"
	"YojanaSetu/pkg/gemini"
	redisPkg "YojanaSetu/pkg/redis"
	"YojanaSetu/pkg/s3"
	"YojanaSetu/pkg/speech"
	"YojanaSetu/pkg/translate"
	"YojanaSetu/pkg/utils"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLanguage is the language the model answers in when nothing
	// else is selected. Original message content is always stored in it.
	DefaultLanguage = "English"

	recordingCeiling = 10 * time.Second
	minAudioBytes    = 1024
	minTranslateLen  = 3
	languageDebounce = 400 * time.Millisecond

	// pendingTurnTimeout bounds how long a stored pending flag is trusted.
	// A turn that failed to clear it (crash, lost write) would otherwise
	// refuse every later message until the session TTL expires. Longer than
	// the 60s model-call deadline so a live turn is never reclaimed.
	pendingTurnTimeout = 90 * time.Second
)

type IAssistantService interface {
	CreateSession(ctx context.Context, userID string) (*assistant.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*assistant.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SendMessage(ctx context.Context, sessionID, text string) (*assistant.SessionResponse, error)

	SetLanguage(ctx context.Context, sessionID, language string) (*assistant.SessionResponse, error)

	StartCapture(ctx context.Context, sessionID string) (<-chan assistant.CaptureEvent, error)
	PushChunk(sessionID string, chunk []byte) error
	StopCapture(sessionID string) error
	AbortCapture(ctx context.Context, sessionID, reason string) error
	VoiceTurn(ctx context.Context, sessionID string, audio []byte) (*assistant.SessionResponse, error)

	AudioURL(filename string) (string, error)
}

type assistantService struct {
	log        *logrus.Logger
	sessions   redisPkg.ISessionStore
	gemini     gemini.IGemini
	transcribe speech.ITranscriber
	translator translate.ITranslator
	tts        *speech.TTSService
	s3         s3.ItfS3
	schemeRepo schemeRepository.Repository
	utils      utils.IUtils

	mu       sync.Mutex
	turns    map[string]*sync.Mutex
	captures map[string]*recordingSession
	pending  map[string]*time.Timer
}

func New(
	log *logrus.Logger,
	sessions redisPkg.ISessionStore,
	geminiClient gemini.IGemini,
	transcriber speech.ITranscriber,
	translator translate.ITranslator,
	tts *speech.TTSService,
	s3Client s3.ItfS3,
	schemeRepo schemeRepository.Repository,
	utils utils.IUtils,
) IAssistantService {
	return &assistantService{
		log:        log,
		sessions:   sessions,
		gemini:     geminiClient,
		transcribe: transcriber,
		translator: translator,
		tts:        tts,
		s3:         s3Client,
		schemeRepo: schemeRepo,
		utils:      utils,
		turns:      make(map[string]*sync.Mutex),
		captures:   make(map[string]*recordingSession),
		pending:    make(map[string]*time.Timer),
	}
}

// turnLock serializes chat turns for one session. The pending flag in the
// stored session covers readers; this covers concurrent writers in-process.
func (s *assistantService) turnLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.turns[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.turns[sessionID] = lock
	}
	return lock
}
