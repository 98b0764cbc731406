package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blueprint-lang/blueprint/internal/cli/ui"
	"github.com/blueprint-lang/blueprint/internal/compile"
)

var (
	validateShow    bool
	validateNoColor bool
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate an existing blueprint file",
		Long: `Run the sanitizer, decoder, and relation resolver over an existing
blueprint file without calling any generation backend.`,
		Example: `  # Validate the default blueprint
  blueprint validate

  # Validate a specific file and show resolved relations
  blueprint validate ./schemas/blog.yaml --show`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().BoolVar(&validateShow, "show", false, "Print resolved relations")
	cmd.Flags().BoolVar(&validateNoColor, "no-color", false, "Disable colored output")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := "./blueprint.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read blueprint: %w", err)
	}

	result, err := compile.Validate(string(raw))
	if err != nil {
		printCompileError(err, validateNoColor)
		return ErrReported
	}

	infoColor := color.New(color.FgCyan)
	if validateNoColor {
		infoColor.DisableColor()
	}
	ui.WriteSuccess(os.Stdout, fmt.Sprintf("%s is valid", path), validateNoColor)
	infoColor.Printf("Modules: %d, relations: %d\n",
		len(result.Blueprint.Modules), result.Graph.Len())

	if validateShow {
		printRelations(result, validateNoColor)
	}
	return nil
}
