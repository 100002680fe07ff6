package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bujinkan-tools/densho/internal/core/domain"
	"github.com/bujinkan-tools/densho/internal/infrastructure/resilience"
)

const systemPrompt = "You are a precise assistant for Bujinkan curriculum questions."

// Client generates answers through an OpenAI-compatible chat-completions
// endpoint. Local gateways (Ollama, vLLM) speak the same dialect, so the
// base URL decides where generation runs.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, apiKey, model string, timeout time.Duration, exec *resilience.Executor) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		exec:       exec,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

func (c *Client) Generate(ctx context.Context, prompt string, params domain.GenerationParams) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "generate", fmt.Errorf("empty prompt"))
	}

	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}

	var response chatResponse
	err := c.exec.Execute(ctx, "generate", func(ctx context.Context) error {
		return c.postJSON(ctx, "/chat/completions", request, &response, "generate")
	}, classifyGenerateError)
	if err != nil {
		return "", wrapGenerateError("generate", err)
	}

	if len(response.Choices) == 0 {
		return "", domain.WrapError(domain.ErrGeneration, "generate", fmt.Errorf("response has no choices"))
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
