package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// chatMessage is one turn in an OpenAI-style chat completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// chatClient speaks the OpenAI-compatible chat-completions wire format used
// by Groq, OpenRouter, and Ollama's compatibility endpoint.
type chatClient struct {
	id     string
	name   string
	model  string
	apiKey func() string // consulted at invocation time
	http   *resty.Client
}

func newChatClient(id, name, baseURL, model string, apiKey func() string) *chatClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")

	return &chatClient{
		id:     id,
		name:   name,
		model:  model,
		apiKey: apiKey,
		http:   client,
	}
}

func (c *chatClient) ID() string   { return c.id }
func (c *chatClient) Name() string { return c.name }

func (c *chatClient) Generate(ctx context.Context, req Request) (*GenerationResult, error) {
	key := c.apiKey()
	if key == "" {
		return nil, &ProviderError{Provider: c.id, Err: ErrMissingCredential}
	}

	body := chatRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
	}

	var out chatResponse
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(key).
		SetBody(body).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return nil, &ProviderError{Provider: c.id, Err: err}
	}
	if resp.IsError() {
		return nil, &ProviderError{
			Provider: c.id,
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), truncate(resp.String(), 200)),
		}
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return nil, &ProviderError{Provider: c.id, Err: ErrEmptyResponse}
	}

	result := &GenerationResult{
		Content:      out.Choices[0].Message.Content,
		Provider:     c.id,
		ProviderName: c.name,
		Model:        firstNonEmpty(out.Model, c.model),
		Duration:     time.Since(start),
	}
	if out.Usage != nil {
		result.Usage = &Usage{
			PromptTokens:     out.Usage.PromptTokens,
			CompletionTokens: out.Usage.CompletionTokens,
			TotalTokens:      out.Usage.TotalTokens,
		}
	}
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
