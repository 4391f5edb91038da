package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type ITranslator interface {
	Translate(ctx context.Context, text string, targetLanguage string) (string, error)
}

type translateClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func New() ITranslator {
	return &translateClient{
		apiKey:   os.Getenv("TRANSLATE_API_KEY"),
		endpoint: "https://translation.googleapis.com/language/translate/v2",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (t *translateClient) Translate(ctx context.Context, text string, targetLanguage string) (string, error) {
	requestBody := map[string]interface{}{
		"q":      text,
		"target": targetLanguage,
		"format": "text",
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", t.endpoint, t.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Data.Translations) == 0 {
		return "", errors.New("empty translation response")
	}

	return parsed.Data.Translations[0].TranslatedText, nil
}
