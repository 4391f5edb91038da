package assistantService

import (
	"bytes"
	"strings"
	"sync"
	"time"

	"YojanaSetu/internal/api/assistant"
	"YojanaSetu/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	micDeniedMessage        = "I could not access your microphone. Please allow microphone access and try again."
	noSpeechMessage         = "No speech detected. Please try recording again."
	emptyTranscriptMessage  = "I could not detect any speech in that recording. Please try again."
	transcribeFailedMessage = "I could not understand that. Please try again."
)

// recordingSession is one voice capture in flight. It moves
// Idle -> Capturing -> Processing -> Idle; entries in the captures map only
// exist between Start and the end of Processing, so Idle is represented by
// absence.
type recordingSession struct {
	sessionID string

	mu      sync.Mutex
	state   entity.RecordingState
	buffer  bytes.Buffer
	ceiling *time.Timer
	events  chan assistant.CaptureEvent
}

func (r *recordingSession) emit(event assistant.CaptureEvent) {
	select {
	case r.events <- event:
	default:
		// A slow websocket reader must not stall the state machine.
	}
}

// StartCapture opens a capture for the session and arms the hard recording
// ceiling. A second capture for the same session is refused until the first
// one finishes.
func (s *assistantService) StartCapture(ctx context.Context, sessionID string) (<-chan assistant.CaptureEvent, error) {
	if _, err := s.loadSession(ctx, sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, exists := s.captures[sessionID]; exists {
		s.mu.Unlock()
		return nil, assistant.ErrCaptureActive
	}

	rec := &recordingSession{
		sessionID: sessionID,
		state:     entity.RecordingCapturing,
		events:    make(chan assistant.CaptureEvent, 16),
	}
	rec.ceiling = time.AfterFunc(recordingCeiling, func() {
		if err := s.finalizeCapture(sessionID); err != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": sessionID,
				"error":      err.Error(),
			}).Debug("Recording ceiling fired after capture already finished")
		}
	})
	s.captures[sessionID] = rec
	s.mu.Unlock()

	rec.emit(assistant.CaptureEvent{Type: assistant.EventState, State: string(entity.RecordingCapturing)})
	return rec.events, nil
}

func (s *assistantService) PushChunk(sessionID string, chunk []byte) error {
	s.mu.Lock()
	rec, ok := s.captures[sessionID]
	s.mu.Unlock()
	if !ok {
		return assistant.ErrNoActiveCapture
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.state != entity.RecordingCapturing {
		return assistant.ErrNoActiveCapture
	}
	rec.buffer.Write(chunk)
	return nil
}

func (s *assistantService) StopCapture(sessionID string) error {
	return s.finalizeCapture(sessionID)
}

// AbortCapture handles the client reporting it never got a microphone. The
// capture (if any) is torn down and the corrective message lands in the
// transcript like any other assistant turn. A capture that already moved to
// Processing owns its event channel until the processing leg finishes, so an
// abort arriving after stop or the ceiling is refused instead of torn down.
func (s *assistantService) AbortCapture(ctx context.Context, sessionID, reason string) error {
	s.mu.Lock()
	rec, ok := s.captures[sessionID]
	if ok {
		rec.mu.Lock()
		if rec.state != entity.RecordingCapturing {
			rec.mu.Unlock()
			s.mu.Unlock()
			return assistant.ErrNoActiveCapture
		}
		rec.state = entity.RecordingIdle
		rec.ceiling.Stop()
		rec.mu.Unlock()
		delete(s.captures, sessionID)
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"reason":     reason,
	}).Warn("Voice capture aborted")

	msg, err := s.appendAssistantNotice(ctx, sessionID, micDeniedMessage)
	if err != nil {
		return err
	}
	if ok {
		rec.emit(assistant.CaptureEvent{Type: assistant.EventMessage, Message: msg})
		rec.emit(assistant.CaptureEvent{Type: assistant.EventState, State: string(entity.RecordingIdle)})
		rec.emit(assistant.CaptureEvent{Type: assistant.EventDone})
		close(rec.events)
	}
	return nil
}

// finalizeCapture moves Capturing to Processing exactly once, whether the
// trigger was a manual stop or the ceiling timer. The race between the two
// is settled by the state check.
func (s *assistantService) finalizeCapture(sessionID string) error {
	s.mu.Lock()
	rec, ok := s.captures[sessionID]
	s.mu.Unlock()
	if !ok {
		return assistant.ErrNoActiveCapture
	}

	rec.mu.Lock()
	if rec.state != entity.RecordingCapturing {
		rec.mu.Unlock()
		return assistant.ErrNoActiveCapture
	}
	rec.state = entity.RecordingProcessing
	rec.ceiling.Stop()
	audio := make([]byte, rec.buffer.Len())
	copy(audio, rec.buffer.Bytes())
	rec.buffer.Reset()
	rec.mu.Unlock()

	rec.emit(assistant.CaptureEvent{Type: assistant.EventState, State: string(entity.RecordingProcessing)})

	go s.processCapture(rec, audio)
	return nil
}

// processCapture runs the Processing leg. Every path out of here releases
// the capture and returns the machine to Idle; the audio buffer never
// survives an exit.
func (s *assistantService) processCapture(rec *recordingSession, audio []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	defer func() {
		s.mu.Lock()
		delete(s.captures, rec.sessionID)
		s.mu.Unlock()

		rec.mu.Lock()
		rec.state = entity.RecordingIdle
		rec.mu.Unlock()

		rec.emit(assistant.CaptureEvent{Type: assistant.EventState, State: string(entity.RecordingIdle)})
		rec.emit(assistant.CaptureEvent{Type: assistant.EventDone})
		close(rec.events)
	}()

	if len(audio) < minAudioBytes {
		s.emitNotice(ctx, rec, noSpeechMessage)
		return
	}

	session, err := s.loadSession(ctx, rec.sessionID)
	if err != nil {
		rec.emit(assistant.CaptureEvent{Type: assistant.EventError, Error: err.Error()})
		return
	}

	locale, err := s.transcribe.DetectLocale(ctx, audio)
	if err != nil || locale == "" {
		locale = localeForLanguage(session.ActiveLanguage)
		s.log.WithFields(logrus.Fields{
			"session_id": rec.sessionID,
			"fallback":   locale,
		}).Info("Locale detection failed, using display-language fallback")
	}

	transcript, err := s.transcribe.Transcribe(ctx, audio, locale)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": rec.sessionID,
			"error":      err.Error(),
			"operation":  "transcribe",
		}).Error("Transcription failed")
		s.emitNotice(ctx, rec, transcribeFailedMessage)
		return
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		s.emitNotice(ctx, rec, emptyTranscriptMessage)
		return
	}

	rec.emit(assistant.CaptureEvent{Type: assistant.EventTranscript, Transcript: transcript})

	resp, err := s.SendMessage(ctx, rec.sessionID, transcript)
	if err != nil {
		rec.emit(assistant.CaptureEvent{Type: assistant.EventError, Error: err.Error()})
		return
	}

	// Push the two messages this turn produced; the caller already saw the
	// transcript, but message IDs only exist after the append.
	if n := len(resp.Messages); n >= 2 {
		userMsg := resp.Messages[n-2]
		assistantMsg := resp.Messages[n-1]
		rec.emit(assistant.CaptureEvent{Type: assistant.EventMessage, Message: &userMsg})

		assistantMsg.AudioURL = s.synthesizeReply(rec.sessionID, assistantMsg.Content)
		rec.emit(assistant.CaptureEvent{Type: assistant.EventMessage, Message: &assistantMsg})
	}
}

func (s *assistantService) emitNotice(ctx context.Context, rec *recordingSession, text string) {
	msg, err := s.appendAssistantNotice(ctx, rec.sessionID, text)
	if err != nil {
		rec.emit(assistant.CaptureEvent{Type: assistant.EventError, Error: err.Error()})
		return
	}
	rec.emit(assistant.CaptureEvent{Type: assistant.EventMessage, Message: msg})
}

// appendAssistantNotice adds a synthetic assistant message outside the model
// turn flow, for capture failures the user needs to hear about.
func (s *assistantService) appendAssistantNotice(ctx context.Context, sessionID, text string) (*assistant.MessageResponse, error) {
	lock := s.turnLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	message := s.newMessage(entity.RoleAssistant, text, false)
	session.Messages = append(session.Messages, message)
	session.LastActivity = time.Now()
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	resp := assistant.MakeMessageResponse(message)
	return &resp, nil
}

// synthesizeReply voices the assistant's answer and parks the mp3 in S3.
// Optional end to end: any failure just means a text-only reply.
func (s *assistantService) synthesizeReply(sessionID, text string) string {
	if s.tts == nil || s.s3 == nil {
		return ""
	}

	audio, err := s.tts.GenerateAudio(text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
			"operation":  "tts",
		}).Warn("Speech synthesis failed")
		return ""
	}

	location, err := s.s3.UploadAudio(audio, "mp3")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
			"operation":  "upload_audio",
		}).Warn("Audio upload failed")
		return ""
	}
	return location
}

// VoiceTurn is the one-shot variant of the capture pipeline: the whole blob
// arrives at once instead of streaming over a socket. Same thresholds, same
// fallback messages, same handoff into the chat turn.
func (s *assistantService) VoiceTurn(ctx context.Context, sessionID string, audio []byte) (*assistant.SessionResponse, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(audio) < minAudioBytes {
		if _, err := s.appendAssistantNotice(ctx, sessionID, noSpeechMessage); err != nil {
			return nil, err
		}
		return s.GetSession(ctx, sessionID)
	}

	locale, err := s.transcribe.DetectLocale(ctx, audio)
	if err != nil || locale == "" {
		locale = localeForLanguage(session.ActiveLanguage)
	}

	transcript, err := s.transcribe.Transcribe(ctx, audio, locale)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
			"operation":  "transcribe",
		}).Error("Transcription failed")
		if _, err := s.appendAssistantNotice(ctx, sessionID, transcribeFailedMessage); err != nil {
			return nil, err
		}
		return s.GetSession(ctx, sessionID)
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		if _, err := s.appendAssistantNotice(ctx, sessionID, emptyTranscriptMessage); err != nil {
			return nil, err
		}
		return s.GetSession(ctx, sessionID)
	}

	return s.SendMessage(ctx, sessionID, transcript)
}

// AudioURL resolves a stored audio object to a presigned link.
func (s *assistantService) AudioURL(filename string) (string, error) {
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		return "", assistant.ErrAudioNotFound
	}

	url, err := s.s3.PresignUrl("assistant-audio/" + filename)
	if err != nil {
		return "", assistant.ErrAudioNotFound
	}
	return url, nil
}
