package gemini

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type HistoryEntry struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

type IGemini interface {
	Complete(ctx context.Context, history []HistoryEntry, newText string, groundingContext string, languageHint string) (string, error)
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

// Complete runs one chat turn. History must already alternate user/model
// starting with a user entry; the API rejects anything else, so callers
// normalize before handing it over.
func (g *geminiClient) Complete(
	ctx context.Context,
	history []HistoryEntry,
	newText string,
	groundingContext string,
	languageHint string,
) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(buildSystemPrompt(groundingContext, languageHint))},
	}

	chat := model.StartChat()
	for _, entry := range history {
		chat.History = append(chat.History, &genai.Content{
			Role:  entry.Role,
			Parts: []genai.Part{genai.Text(entry.Content)},
		})
	}

	res, err := chat.SendMessage(ctx, genai.Text(newText))
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return string(text), nil
}

func buildSystemPrompt(groundingContext string, languageHint string) string {
	var sb strings.Builder

	if languageHint != "" {
		sb.WriteString("Respond only in ")
		sb.WriteString(languageHint)
		sb.WriteString(", using its native script.\n\n")
	}

	sb.WriteString("You are Yojana Mitra, an assistant that answers questions about government welfare schemes. ")
	sb.WriteString("Answer only from the scheme information below. Keep answers short and practical. ")
	sb.WriteString("If the information is not in the scheme data, say you do not know.\n\n")
	sb.WriteString("Scheme information:\n")
	sb.WriteString(groundingContext)

	return sb.String()
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
