package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4o-mini"

// ErrNoChoices is returned when the provider answers without any completion
var ErrNoChoices = errors.New("llm: provider returned no choices")

// Params generation parameters for one completion
type Params struct {
	Temperature float32
	MaxTokens   int
}

// Completion text plus the token usage reported by the provider
type Completion struct {
	Content     string
	TotalTokens int
}

// Client text-generation provider
type Client interface {
	Complete(ctx context.Context, system, user string, params Params) (*Completion, error)
}

// Config OpenAI connection settings
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIClient chat-completion backed Client
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIClient creates a client; an empty API key is an error
func NewOpenAIClient(cfg Config, log zerolog.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: OpenAI API key not configured")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
		log.Warn().Msg("OpenAI model not set, defaulting to " + DefaultModel)
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	log.Info().Str("model", model).Msg("Initializing OpenAI client")
	return &OpenAIClient{
		client: openai.NewClientWithConfig(oc),
		model:  model,
		log:    log,
	}, nil
}

// Model returns the configured model name
func (o *OpenAIClient) Model() string {
	return o.model
}

// Complete sends a system persona plus one user prompt
func (o *OpenAIClient) Complete(ctx context.Context, system, user string, params Params) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		o.log.Error().Err(err).Str("model", o.model).Msg("OpenAI API call failed")
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	o.log.Debug().
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Int("tokens", resp.Usage.TotalTokens).
		Msg("Received response from OpenAI")

	return &Completion{
		Content:     resp.Choices[0].Message.Content,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}
