package llm

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/KushalZanzari/Echo-AI/internal/config"
	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

// Client sends chat completions to an OpenAI-compatible endpoint and maps
// failures to tagged CallErrors at the boundary: an error body from the
// upstream API is an application error, anything else is a connection
// failure.
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

// New creates a completion client from the LLM configuration.
func New(cfg config.LLMConfig, log *zap.Logger) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout(),
		log:     log,
	}
}

// Complete sends the request's messages, prefixed with the mode's system
// prompt, and returns the assistant text.
func (c *Client) Complete(ctx context.Context, req *domain.CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)

	if sys := SystemPrompt(req.Mode, req.Files); sys != "" {
		messages = append(messages, openai.SystemMessage(sys))
	}

	for _, m := range req.Messages {
		switch m.Role {
		case domain.RoleAssistant, domain.RoleAI:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	})
	if err != nil {
		return "", c.classify(err)
	}

	if len(completion.Choices) == 0 {
		return "", domain.ApplicationError("Failed to fetch response from AI", "no choices returned")
	}

	c.log.Debug("completion received",
		zap.String("model", c.model),
		zap.String("mode", req.Mode),
		zap.Int("message_count", len(messages)),
	)
	return completion.Choices[0].Message.Content, nil
}

func (c *Client) classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		details := apiErr.Message
		if details == "" {
			details = err.Error()
		}
		c.log.Warn("upstream API error",
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", details),
		)
		return domain.ApplicationError("Failed to fetch response from AI", details)
	}
	return domain.ConnectionError(err.Error())
}
