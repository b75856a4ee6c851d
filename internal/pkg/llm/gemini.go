package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/examgen/examgen_go_server/config"
)

// GeminiClient implements Client on top of the Google Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient builds a Gemini-backed client. A missing API key yields
// a client whose calls fail with ErrNoContent instead of a construction
// error, so the server can start without generation configured.
func NewGeminiClient(ctx context.Context, cfg *config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		log.Println("Gemini API key is not set; question generation will be unavailable")
		return &GeminiClient{}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-1.5-flash-8b"
	}

	return &GeminiClient{model: client.GenerativeModel(modelName)}, nil
}

// Complete sends the prompt and concatenates the text parts of the first
// candidate.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.model == nil {
		return "", ErrNoContent
	}
	if prompt == "" {
		return "", ErrNoContent
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoContent
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", ErrNoContent
	}
	return sb.String(), nil
}
