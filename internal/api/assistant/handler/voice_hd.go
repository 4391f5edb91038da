package assistantHandler

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"YojanaSetu/internal/api/assistant"
	contextPkg "YojanaSetu/pkg/context"
	"YojanaSetu/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

// HandleVoiceTurn accepts a complete audio blob as multipart and runs one
// voice turn synchronously. The websocket stream remains the primary path;
// this covers clients that record first and upload after.
func (h *AssistantHandler) HandleVoiceTurn(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Params("id")
	if sessionID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("session id is required"), ctx.Path())
	}

	file, err := ctx.FormFile("audio")
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("audio file is required"), ctx.Path())
	}

	if err := h.utils.ValidateAudioFile(file); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	fileContent, err := file.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
	}
	defer fileContent.Close()

	audio, err := io.ReadAll(fileContent)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
	}

	response, err := h.assistantService.VoiceTurn(c, sessionID, audio)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "voice_turn")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

type voiceControl struct {
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}

// handleVoiceWebSocket drives the capture state machine from the socket:
// text frames carry control messages (start/stop/mic errors), binary frames
// carry audio chunks, and capture events stream back as JSON.
func (h *AssistantHandler) handleVoiceWebSocket(c *websocket.Conn) {
	sessionID := c.Params("id")

	h.log.Infof("Voice capture socket connected for session %s", sessionID)
	defer h.log.Infof("Voice capture socket closed for session %s", sessionID)

	var writeMu sync.Mutex
	writeJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			return err
		}
		return c.WriteJSON(v)
	}

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	var drained sync.WaitGroup
	maxReadTimeout := 60 * time.Second

	// Whatever closes the socket, the capture must not survive it.
	defer func() {
		if err := h.assistantService.StopCapture(sessionID); err == nil {
			h.log.Infof("Finalized dangling capture for session %s", sessionID)
		}
		drained.Wait()
	}()

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Voice WebSocket error: %v", err)
			}
			break
		}

		switch messageType {
		case websocket.BinaryMessage:
			if err := h.assistantService.PushChunk(sessionID, message); err != nil {
				if writeErr := writeJSON(assistant.CaptureEvent{
					Type:  assistant.EventError,
					Error: err.Error(),
				}); writeErr != nil {
					h.log.Errorf("Error sending error response: %v", writeErr)
					return
				}
			}

		case websocket.TextMessage:
			var control voiceControl
			if err := json.Unmarshal(message, &control); err != nil {
				h.log.Warnf("Malformed voice control message: %v", err)
				continue
			}

			switch control.Type {
			case "start":
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				events, err := h.assistantService.StartCapture(ctx, sessionID)
				cancel()
				if err != nil {
					if writeErr := writeJSON(assistant.CaptureEvent{
						Type:  assistant.EventError,
						Error: err.Error(),
					}); writeErr != nil {
						return
					}
					continue
				}

				drained.Add(1)
				go func() {
					defer drained.Done()
					for event := range events {
						if err := writeJSON(event); err != nil {
							h.log.Errorf("Error writing capture event: %v", err)
							// Keep draining so the state machine can finish.
						}
					}
				}()

			case "stop":
				if err := h.assistantService.StopCapture(sessionID); err != nil {
					if writeErr := writeJSON(assistant.CaptureEvent{
						Type:  assistant.EventError,
						Error: err.Error(),
					}); writeErr != nil {
						return
					}
				}

			case "mic_denied", "mic_error":
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				err := h.assistantService.AbortCapture(ctx, sessionID, control.Type)
				cancel()
				if err != nil && !errors.Is(err, assistant.ErrNoActiveCapture) {
					h.log.Errorf("Error aborting capture: %v", err)
				}

			default:
				h.log.Warnf("Unknown voice control type: %s", control.Type)
			}

		default:
			h.log.Warnf("Received unexpected message type: %d", messageType)
		}
	}
}
