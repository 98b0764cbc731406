package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// geminiClient speaks the Google Generative Language generateContent format.
type geminiClient struct {
	model  string
	apiKey func() string
	http   *resty.Client
}

func newGeminiClient(model string, apiKey func() string) *geminiClient {
	return &geminiClient{
		model:  model,
		apiKey: apiKey,
		http: resty.New().
			SetBaseURL(geminiBaseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

func (g *geminiClient) ID() string   { return "gemini" }
func (g *geminiClient) Name() string { return "Google Gemini" }

func (g *geminiClient) Generate(ctx context.Context, req Request) (*GenerationResult, error) {
	key := g.apiKey()
	if key == "" {
		return nil, &ProviderError{Provider: g.ID(), Err: ErrMissingCredential}
	}

	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}},
		},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	body.GenerationConfig.Temperature = req.Temperature
	body.GenerationConfig.MaxOutputTokens = req.MaxTokens

	var out geminiResponse
	start := time.Now()
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParam("key", key).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", g.model))
	if err != nil {
		return nil, &ProviderError{Provider: g.ID(), Err: err}
	}
	if resp.IsError() {
		return nil, &ProviderError{
			Provider: g.ID(),
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), truncate(resp.String(), 200)),
		}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, &ProviderError{Provider: g.ID(), Err: ErrEmptyResponse}
	}

	var content string
	for _, part := range out.Candidates[0].Content.Parts {
		content += part.Text
	}
	if content == "" {
		return nil, &ProviderError{Provider: g.ID(), Err: ErrEmptyResponse}
	}

	result := &GenerationResult{
		Content:      content,
		Provider:     g.ID(),
		ProviderName: g.Name(),
		Model:        g.model,
		Duration:     time.Since(start),
	}
	if out.UsageMetadata != nil {
		result.Usage = &Usage{
			PromptTokens:     out.UsageMetadata.PromptTokenCount,
			CompletionTokens: out.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      out.UsageMetadata.TotalTokenCount,
		}
	}
	return result, nil
}
