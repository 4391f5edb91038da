package assistant

import "YojanaSetu/pkg/response"

var (
	ErrSessionNotFound = response.NewError(404, "chat session not found or expired")
	ErrResponsePending = response.NewError(409, "a response is still being generated")
	ErrCaptureActive   = response.NewError(409, "a voice capture is already in progress")
	ErrNoActiveCapture = response.NewError(409, "no voice capture in progress")
	ErrAudioNotFound   = response.NewError(404, "audio file not found")
)
