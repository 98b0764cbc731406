package llm

import "github.com/kelseyhightower/envconfig"

// Credentials carries every provider access credential as explicit state.
// They are populated once at the process edge and handed to provider
// constructors, so nothing deeper reads ambient environment variables.
type Credentials struct {
	GroqAPIKey       string `envconfig:"GROQ_API_KEY"`
	OpenRouterAPIKey string `envconfig:"OPENROUTER_API_KEY"`
	GoogleAPIKey     string `envconfig:"GOOGLE_API_KEY"`
	OllamaHost       string `envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
}

// CredentialsFromEnv reads provider credentials from the environment.
func CredentialsFromEnv() (*Credentials, error) {
	var c Credentials
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
