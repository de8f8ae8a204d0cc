package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	mcperrors "github.com/mcpdock/mcpdock/internal/errors"
	"github.com/mcpdock/mcpdock/internal/mcp/parser"
	"github.com/mcpdock/mcpdock/internal/paths"
	"github.com/mcpdock/mcpdock/internal/resolver"
)

var (
	convertInput  string
	convertOutput string
)

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "",
		fmt.Sprintf("source config path (default %q)", paths.DefaultConvertInput))
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "",
		fmt.Sprintf("target config path (default %q)", paths.DefaultConvertOutput))
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Rewrite npx dispatches to direct binary calls",
	Long: `Convert rewrites a config so that servers launched through npx call
the installed package's binary directly. The package identifier and the -y
auto-confirm flag are removed from the argument list; everything else is
passed through.

The binary name is discovered by querying npm's global root and reading the
installed package's manifest. Entries whose binary cannot be discovered are
kept as npx dispatches with a warning; this never fails the run.

A config without an mcpServers key is copied through unchanged.

Examples:
  # Use the default container paths
  mcpdock convert

  # Explicit paths
  mcpdock convert -i ./config.json -o ./converted.json`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, _ []string) error {
	input := convertInput
	if input == "" {
		input = toolConfig().Convert.Input
	}
	if input == "" {
		input = paths.DefaultConvertInput
	}
	output := convertOutput
	if output == "" {
		output = toolConfig().Convert.Output
	}
	if output == "" {
		output = paths.DefaultConvertOutput
	}

	return convertConfig(cmd.OutOrStdout(), resolver.NewDynamic(slog.Default()), input, output)
}

// convertConfig is the testable core of the convert command; the resolver
// and writer are injected.
func convertConfig(w io.Writer, dyn *resolver.Dynamic, input, output string) error {
	cfg, err := parser.ParseFile(input)
	if err != nil {
		if errors.Is(err, mcperrors.ErrInputMissing) {
			fmt.Fprintf(os.Stderr, "Error: %s not found\n", input)
			return mcperrors.NewUserError(err, "Check the --input path")
		}
		return mcperrors.NewUserError(err, "Fix the config file syntax")
	}

	converted := dyn.Rewrite(cfg)

	if err := parser.WriteFile(output, converted); err != nil {
		return mcperrors.NewSystemError(err, "Check the --output path is writable")
	}

	fmt.Fprintf(w, "Successfully converted config and saved to %s\n", output)
	return nil
}
