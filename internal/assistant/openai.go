package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/automat-io/automat/internal/models"
)

const (
	// DefaultModel is used when settings name no model.
	DefaultModel = "gemini-3-flash-preview"

	// DefaultBaseURL is the OpenAI-compatible endpoint of the hosted model.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
// Requests are never retried.
type OpenAIClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient creates a client from AI settings.
func NewOpenAIClient(cfg models.AIConfig) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingCredential
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)

	return &OpenAIClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Model returns the model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// GenerateScript implements ScriptGenerator.
func (c *OpenAIClient) GenerateScript(ctx context.Context, description string) (string, error) {
	return c.complete(ctx, scriptPrompt(description))
}

// Analyze implements Analyzer.
func (c *OpenAIClient) Analyze(ctx context.Context, message string) (string, error) {
	return c.complete(ctx, analysisPrompt(message))
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

var _ Client = (*OpenAIClient)(nil)
