package speech

import (
	"bytes"
	"context"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type ITranscriber interface {
	Transcribe(ctx context.Context, audio []byte, localeHint string) (string, error)
	DetectLocale(ctx context.Context, audio []byte) (string, error)
}

type transcriptionService struct {
	client *openai.Client
	model  string
}

func NewTranscriptionService() ITranscriber {
	apiKey := os.Getenv("OPENAI_API_KEY")
	return &transcriptionService{
		client: openai.NewClient(apiKey),
		model:  openai.Whisper1,
	}
}

func (t *transcriptionService) Transcribe(ctx context.Context, audio []byte, localeHint string) (string, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		Reader:   bytes.NewReader(audio),
		FilePath: "capture.webm",
		Language: localeHint,
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}

// DetectLocale lets the model pick the language itself and reports what it
// chose. The transcript from this pass is discarded; callers re-transcribe
// with the resolved locale.
func (t *transcriptionService) DetectLocale(ctx context.Context, audio []byte) (string, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		Reader:   bytes.NewReader(audio),
		FilePath: "capture.webm",
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", err
	}

	return LocaleFromDetected(resp.Language), nil
}

// detectedLanguageCodes maps the spelled-out language names verbose JSON
// responses report ("english", "hindi") to ISO-639-1 codes; the Language
// field on a transcription request only accepts the codes.
var detectedLanguageCodes = map[string]string{
	"english":   "en",
	"hindi":     "hi",
	"bengali":   "bn",
	"tamil":     "ta",
	"telugu":    "te",
	"marathi":   "mr",
	"gujarati":  "gu",
	"kannada":   "kn",
	"malayalam": "ml",
	"punjabi":   "pa",
	"urdu":      "ur",
	"nepali":    "ne",
	"assamese":  "as",
}

// LocaleFromDetected resolves a detected language name to the code the
// transcription request accepts. Unknown names resolve to empty so callers
// fall back to the display-language locale instead of sending a value the
// service rejects.
func LocaleFromDetected(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if code, ok := detectedLanguageCodes[language]; ok {
		return code
	}
	for _, code := range detectedLanguageCodes {
		if language == code {
			return language
		}
	}
	return ""
}
