package assistant

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	logx "github.com/aubri61/inventoria-ai/pkg/logger"
)

// GeneratorConfig holds the Gemini model settings, sourced from environment
// variables at startup. An empty APIKey puts the assistant in demo mode.
type GeneratorConfig struct {
	APIKey      string  `envconfig:"GEMINI_API_KEY"`
	BaseURL     string  `envconfig:"GEMINI_BASE_URL"`
	Model       string  `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	MaxTokens   int     `envconfig:"GEMINI_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"GEMINI_TEMPERATURE" default:"0.4"`
}

// NewGeminiGenerator creates the chat model used for answer generation.
func NewGeminiGenerator(ctx context.Context, cfg GeneratorConfig) (*gemini.ChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating response model")
		return nil, fmt.Errorf("error creating response model: %w", err)
	}

	return chatModel, nil
}
