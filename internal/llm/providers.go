package llm

// Default models mirror the backends this tool was tuned against. Each is
// overridable through configuration.
const (
	DefaultGroqModel       = "llama-3.1-8b-instant"
	DefaultOpenRouterModel = "google/gemini-2.0-flash-exp:free"
	DefaultGeminiModel     = "gemini-2.0-flash-exp"
	DefaultOllamaModel     = "llama3.1"
)

// ProviderModels carries per-provider model overrides; zero values fall back
// to the defaults above.
type ProviderModels struct {
	Groq       string
	OpenRouter string
	Gemini     string
	Ollama     string
}

// NewGroqProvider builds the Groq backend.
func NewGroqProvider(creds *Credentials, model string) Provider {
	if model == "" {
		model = DefaultGroqModel
	}
	return newChatClient("groq", "Groq", "https://api.groq.com/openai/v1", model,
		func() string { return creds.GroqAPIKey })
}

// NewOpenRouterProvider builds the OpenRouter backend.
func NewOpenRouterProvider(creds *Credentials, model string) Provider {
	if model == "" {
		model = DefaultOpenRouterModel
	}
	return newChatClient("openrouter", "OpenRouter", "https://openrouter.ai/api/v1", model,
		func() string { return creds.OpenRouterAPIKey })
}

// NewGeminiProvider builds the Google Gemini backend.
func NewGeminiProvider(creds *Credentials, model string) Provider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return newGeminiClient(model, func() string { return creds.GoogleAPIKey })
}

// NewOllamaProvider builds the local Ollama backend through its
// OpenAI-compatible endpoint. No API key is required; the placeholder token
// satisfies clients that insist on an Authorization header.
func NewOllamaProvider(creds *Credentials, model string) Provider {
	if model == "" {
		model = DefaultOllamaModel
	}
	return newChatClient("ollama", "Ollama (Local)", creds.OllamaHost+"/v1", model,
		func() string { return "ollama" })
}

// DefaultProviders returns every supported provider in default priority
// order: Groq, OpenRouter, Gemini, Ollama.
func DefaultProviders(creds *Credentials, models ProviderModels) []Provider {
	return []Provider{
		NewGroqProvider(creds, models.Groq),
		NewOpenRouterProvider(creds, models.OpenRouter),
		NewGeminiProvider(creds, models.Gemini),
		NewOllamaProvider(creds, models.Ollama),
	}
}
