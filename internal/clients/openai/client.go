package openai

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"

	"github.com/yungbote/videosage-backend/internal/pkg/ctxutil"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
)

// Client is the generative-text backend: one prompt in, one completion
// out. Calls are synchronous and bounded by a request timeout; the SDK
// retries transient failures (429/5xx, network timeouts) with backoff
// before the error surfaces.
type Client interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}

type client struct {
	log   *logger.Logger
	api   openaiclient.Client
	model string

	requestTimeout time.Duration
}

func NewClient(log *logger.Logger) (Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	timeoutSec := 180
	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxRetries := 4
	if v := os.Getenv("OPENAI_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(maxRetries),
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, openaioption.WithBaseURL(baseURL))
	}

	return &client{
		log:            log.With("service", "OpenAIClient"),
		api:            openaiclient.NewClient(opts...),
		model:          model,
		requestTimeout: time.Duration(timeoutSec) * time.Second,
	}, nil
}

func (c *client) Complete(ctx context.Context, system string, user string) (string, error) {
	ctx = ctxutil.Default(ctx)
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	messages := []openaiclient.ChatCompletionMessageParamUnion{}
	if strings.TrimSpace(system) != "" {
		messages = append(messages, openaiclient.SystemMessage(system))
	}
	messages = append(messages, openaiclient.UserMessage(user))

	started := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model:    openaiclient.ChatModel(c.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion: empty response")
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("openai completion: empty message content")
	}

	c.log.Debug("completion ok", "model", c.model, "elapsed", time.Since(started).String(), "chars", len(text))
	return text, nil
}
