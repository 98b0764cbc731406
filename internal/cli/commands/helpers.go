package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/blueprint-lang/blueprint/internal/cli/config"
	"github.com/blueprint-lang/blueprint/internal/cli/ui"
	"github.com/blueprint-lang/blueprint/internal/compile"
	"github.com/blueprint-lang/blueprint/internal/llm"
	"github.com/blueprint-lang/blueprint/internal/sanitize"
	"github.com/blueprint-lang/blueprint/internal/schema"
)

// buildProviders assembles providers in the configured priority order.
// Unknown ids were already rejected by config validation.
func buildProviders(cfg *config.Config, creds *llm.Credentials) []llm.Provider {
	models := llm.ProviderModels{
		Groq:       cfg.Providers.Models.Groq,
		OpenRouter: cfg.Providers.Models.OpenRouter,
		Gemini:     cfg.Providers.Models.Gemini,
		Ollama:     cfg.Providers.Models.Ollama,
	}

	byID := make(map[string]llm.Provider)
	for _, p := range llm.DefaultProviders(creds, models) {
		byID[p.ID()] = p
	}

	providers := make([]llm.Provider, 0, len(cfg.Providers.Order))
	for _, id := range cfg.Providers.Order {
		if p, ok := byID[id]; ok {
			providers = append(providers, p)
		}
	}
	return providers
}

// ErrReported marks a failure whose diagnostic was already rendered; the
// entry point exits nonzero without printing it a second time.
var ErrReported = errors.New("error already reported")

// printCompileError renders the compilation failure taxonomy with
// suggestions where the error carries enough context.
func printCompileError(err error, noColor bool) {
	var exhausted *llm.AllProvidersExhaustedError
	if errors.As(err, &exhausted) {
		failures := make([]string, 0, len(exhausted.Failures))
		for _, f := range exhausted.Failures {
			failures = append(failures, fmt.Sprintf("%s: %s", f.Provider, f.Reason))
		}
		fmt.Fprint(os.Stderr, ui.ProvidersExhaustedError(failures, noColor))
		return
	}

	var malformed *sanitize.MalformedResponseError
	if errors.As(err, &malformed) {
		ui.WriteError(os.Stderr, ui.ErrorOptions{
			Context: "MALFORMED RESPONSE",
			Problem: "the backend's output could not be repaired into valid YAML",
			NoColor: noColor,
		})
		for _, stage := range malformed.Stages {
			fmt.Fprintf(os.Stderr, "   after %s:\n%s\n", stage.Name, indent(stage.Text, "      "))
		}
		return
	}

	var unknown *schema.UnknownEntityReferenceError
	if errors.As(err, &unknown) {
		fmt.Fprint(os.Stderr, ui.UnknownModuleError(unknown.Reference, unknown.Declared, noColor))
		return
	}

	var conflict *schema.RelationConflictError
	if errors.As(err, &conflict) {
		ui.WriteError(os.Stderr, ui.ErrorOptions{
			Context: "RELATION CONFLICT",
			Problem: conflict.Error(),
			NoColor: noColor,
		})
		return
	}

	ui.WriteError(os.Stderr, ui.ErrorOptions{
		Problem: err.Error(),
		NoColor: noColor,
	})
}

// writeBlueprint serializes the validated blueprint to disk.
func writeBlueprint(result *compile.Result, path string) error {
	out, err := schema.Encode(result.Blueprint)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write blueprint: %w", err)
	}
	return nil
}

// printRelations lists every resolved edge, flagging inferred ones.
func printRelations(result *compile.Result, noColor bool) {
	titleColor := color.New(color.FgCyan, color.Bold)
	dimColor := color.New(color.Faint)
	if noColor {
		titleColor.DisableColor()
		dimColor.DisableColor()
	}

	titleColor.Println("\nResolved relations:")
	for _, key := range result.Graph.Pairs() {
		for _, e := range result.Graph.Edges(key) {
			line := fmt.Sprintf("  %s -[%s]-> %s via %q",
				e.From, e.Relation.Kind, e.To, e.Relation.Field)
			if e.Relation.InverseField != "" {
				line += fmt.Sprintf(" (inverse %q)", e.Relation.InverseField)
			}
			if e.Inferred() {
				dimColor.Println(line + "  [inferred]")
			} else {
				fmt.Println(line)
			}
		}
	}
}

func indent(s, prefix string) string {
	if s == "" {
		return s
	}
	return prefix + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n"+prefix)
}
