package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/cardstack/cardstack-api/internal/config"
)

// Model abstracts the chat-completion call so the runner can be tested
// against a fake.
type Model interface {
	GenerateContent(
		ctx context.Context,
		contents []*genai.Content,
		cfg *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// geminiModel calls the Gemini API.
type geminiModel struct {
	client *genai.Client
	name   string
}

var _ Model = (*geminiModel)(nil)

// NewGeminiModel creates a Model backed by the Gemini API.
func NewGeminiModel(ctx context.Context, cfg config.AssistantConfig) (Model, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiModel{client: client, name: cfg.ModelName}, nil
}

func (m *geminiModel) GenerateContent(
	ctx context.Context,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	return m.client.Models.GenerateContent(ctx, m.name, contents, cfg)
}
