package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Context      string
	Problem      string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help
// commands.
//
// Example output:
//
//	✗ UNKNOWN MODULE: Pst
//	   Did you mean: Post, User?
//
//	   → Validate a blueprint: blueprint validate blueprint.yaml
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	headerColor := color.New(color.FgRed, color.Bold)
	if opts.NoColor {
		headerColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "✗ %s: %s\n", strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "✗ %s\n", opts.Problem)
	}

	if len(opts.Suggestions) > 0 {
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// UnknownModuleError renders a dangling relation target with close-match
// suggestions from the declared module names.
func UnknownModuleError(reference string, declared []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context:     "UNKNOWN MODULE",
		Problem:     fmt.Sprintf("a relation references module '%s', which is not declared", reference),
		Suggestions: FindSimilar(reference, declared, nil),
		HelpCommands: []string{
			"Validate a blueprint: blueprint validate blueprint.yaml",
		},
		NoColor: noColor,
	})
}

// ProvidersExhaustedError renders the ordered per-provider failure list.
func ProvidersExhaustedError(failures []string, noColor bool) string {
	var b strings.Builder
	b.WriteString(FormatError(ErrorOptions{
		Context: "GENERATION FAILED",
		Problem: "every configured provider failed",
		HelpCommands: []string{
			"Set GROQ_API_KEY, OPENROUTER_API_KEY, or GOOGLE_API_KEY",
			"Or install Ollama locally (http://localhost:11434)",
		},
		NoColor: noColor,
	}))
	for _, f := range failures {
		fmt.Fprintf(&b, "   %s\n", f)
	}
	return b.String()
}
