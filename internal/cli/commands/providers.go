package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blueprint-lang/blueprint/internal/cli/config"
	"github.com/blueprint-lang/blueprint/internal/llm"
)

var providersNoColor bool

// NewProvidersCommand creates the providers command
func NewProvidersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List generation backends in invocation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			creds, err := llm.CredentialsFromEnv()
			if err != nil {
				return err
			}

			okColor := color.New(color.FgGreen)
			missingColor := color.New(color.FgYellow)
			if providersNoColor {
				okColor.DisableColor()
				missingColor.DisableColor()
			}

			for i, p := range buildProviders(cfg, creds) {
				if hasCredential(p.ID(), creds) {
					okColor.Printf("%d. %s (%s) - configured\n", i+1, p.Name(), p.ID())
				} else {
					missingColor.Printf("%d. %s (%s) - missing credential\n", i+1, p.Name(), p.ID())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&providersNoColor, "no-color", false, "Disable colored output")

	return cmd
}

// hasCredential reports whether the provider's credential is present. Ollama
// needs no API key; its host always has a default.
func hasCredential(id string, creds *llm.Credentials) bool {
	switch id {
	case "groq":
		return creds.GroqAPIKey != ""
	case "openrouter":
		return creds.OpenRouterAPIKey != ""
	case "gemini":
		return creds.GoogleAPIKey != ""
	case "ollama":
		return creds.OllamaHost != ""
	default:
		return false
	}
}
