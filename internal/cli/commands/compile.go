package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blueprint-lang/blueprint/internal/cli/config"
	"github.com/blueprint-lang/blueprint/internal/cli/ui"
	"github.com/blueprint-lang/blueprint/internal/compile"
	"github.com/blueprint-lang/blueprint/internal/llm"
	"github.com/blueprint-lang/blueprint/internal/logging"
)

var (
	compileOutput      string
	compileModel       string
	compileShow        bool
	compileVerbose     bool
	compileInteractive bool
	compileNoColor     bool
)

// NewCompileCommand creates the compile command
func NewCompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [description]",
		Short: "Compile an application description into a validated blueprint",
		Long: `Generate a YAML blueprint from a natural-language application description.

The compile process:
  1. Generation - ask the first healthy backend for a candidate schema
  2. Sanitization - repair fences, control characters, and truncation
  3. Decoding - parse the candidate into typed modules
  4. Resolution - validate relations and infer inverse metadata`,
		Example: `  # Compile a description
  blueprint compile "a blog with users, posts, and comments"

  # Prefer a specific backend
  blueprint compile -m groq "a pet store with owners and pets"

  # Write the blueprint somewhere else and show resolved relations
  blueprint compile -b ./schemas/blog.yaml --show "a simple blog"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}

	cmd.Flags().StringVarP(&compileOutput, "blueprint", "b", "", "Output blueprint path (default: ./blueprint.yaml)")
	cmd.Flags().StringVarP(&compileModel, "model", "m", "", "Preferred provider (groq, openrouter, gemini, ollama)")
	cmd.Flags().BoolVar(&compileShow, "show", false, "Print resolved relations after compiling")
	cmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "Show detailed progress output")
	cmd.Flags().BoolVarP(&compileInteractive, "interactive", "i", false, "Prompt for the description")
	cmd.Flags().BoolVar(&compileNoColor, "no-color", false, "Disable colored output")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	description, err := resolveDescription(args)
	if err != nil {
		return err
	}
	if description == "" {
		return fmt.Errorf("no description given - pass one as an argument or use --interactive")
	}

	outputPath := compileOutput
	if outputPath == "" {
		outputPath = cfg.Output.Blueprint
	}

	logLevel := cfg.Log.Level
	if compileVerbose {
		logLevel = "debug"
	}
	logger, err := logging.New(logging.Config{Level: logLevel, Development: compileVerbose})
	if err != nil {
		return err
	}
	defer logger.Sync()

	creds, err := llm.CredentialsFromEnv()
	if err != nil {
		return err
	}

	orchestrator := llm.NewOrchestrator(
		buildProviders(cfg, creds),
		llm.WithTimeout(time.Duration(cfg.Providers.TimeoutSeconds)*time.Second),
		llm.WithLogger(logger),
	)
	compiler := compile.New(orchestrator, logger)

	spinner := ui.NewSpinner(os.Stderr, ui.SpinnerOptions{
		Message: "Generating blueprint...",
		NoColor: compileNoColor,
	})
	spinner.Start()

	result, err := compiler.Compile(cmd.Context(), description, compileModel)
	if err != nil {
		spinner.Stop()
		printCompileError(err, compileNoColor)
		return ErrReported
	}
	spinner.Stop()

	printGenerationStats(result.Generation)

	if err := writeBlueprint(result, outputPath); err != nil {
		return err
	}
	ui.WriteSuccess(os.Stdout, fmt.Sprintf("Blueprint saved to %s", outputPath), compileNoColor)

	if compileShow {
		printRelations(result, compileNoColor)
	}
	return nil
}

// resolveDescription takes the description from the argument list or, with
// --interactive, from a prompt.
func resolveDescription(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !compileInteractive {
		return "", nil
	}

	var description string
	prompt := &survey.Input{
		Message: "Describe the application to generate:",
	}
	if err := survey.AskOne(prompt, &description, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return description, nil
}

func printGenerationStats(gen *llm.GenerationResult) {
	infoColor := color.New(color.FgCyan)
	if compileNoColor {
		infoColor.DisableColor()
	}
	infoColor.Printf("Provider: %s (%s)\n", gen.ProviderName, gen.Model)
	infoColor.Printf("Time: %.2fs\n", gen.Duration.Seconds())
	if gen.Usage != nil && gen.Usage.TotalTokens > 0 {
		infoColor.Printf("Tokens: %d (in: %d, out: %d)\n",
			gen.Usage.TotalTokens, gen.Usage.PromptTokens, gen.Usage.CompletionTokens)
	}
}
