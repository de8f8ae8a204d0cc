package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpdock/mcpdock/internal/dockerfile"
	mcperrors "github.com/mcpdock/mcpdock/internal/errors"
	"github.com/mcpdock/mcpdock/internal/mcp/parser"
	"github.com/mcpdock/mcpdock/internal/paths"
	"github.com/mcpdock/mcpdock/internal/resolver"
)

// Extraction strategy names accepted by --strategy.
const (
	strategyPatterns = "patterns"
	strategyTable    = "table"
)

var (
	generateConfig   string
	generateTemplate string
	generateOutput   string
	generateStrategy string
)

func init() {
	generateCmd.Flags().StringVar(&generateConfig, "config", "",
		fmt.Sprintf("source config path (default %q)", paths.DefaultGenerateConfig))
	generateCmd.Flags().StringVar(&generateTemplate, "template", "",
		fmt.Sprintf("Dockerfile template path (default %q)", paths.DefaultGenerateTemplate))
	generateCmd.Flags().StringVar(&generateOutput, "output", "",
		fmt.Sprintf("generated Dockerfile path (default %q)", paths.DefaultGenerateOutput))
	generateCmd.Flags().StringVar(&generateStrategy, "strategy", strategyPatterns,
		"package extraction strategy: patterns, table")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Dockerfile from a template and config",
	Long: `Generate derives the packages a config's servers need and renders a
Dockerfile from a template. The template is plain text with one recognized
placeholder; the placeholder line is replaced by the install commands, or
removed entirely when the config implies no packages.

Two extraction strategies exist and are never combined:

  patterns  recognize the npx/uvx argument conventions and python -m
            (default)
  table     map well-known server binaries to their packages

Examples:
  mcpdock generate
  mcpdock generate --strategy table --output Dockerfile.out`,
	RunE: runGenerate,
}

// newExtractor maps a strategy name to its implementation.
func newExtractor(name string, log *slog.Logger) (resolver.Extractor, error) {
	switch name {
	case strategyPatterns:
		return &resolver.Patterns{Log: log}, nil
	case strategyTable:
		return &resolver.Table{Log: log}, nil
	default:
		return nil, mcperrors.NewUserError(
			fmt.Errorf("unknown strategy %q (valid: %s, %s)", name, strategyPatterns, strategyTable),
			"Run 'mcpdock generate --help' to see valid strategies")
	}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	configPath := generateConfig
	if configPath == "" {
		configPath = toolConfig().Generate.Config
	}
	if configPath == "" {
		configPath = paths.DefaultGenerateConfig
	}
	templatePath := generateTemplate
	if templatePath == "" {
		templatePath = toolConfig().Generate.Template
	}
	if templatePath == "" {
		templatePath = paths.DefaultGenerateTemplate
	}
	outputPath := generateOutput
	if outputPath == "" {
		outputPath = toolConfig().Generate.Output
	}
	if outputPath == "" {
		outputPath = paths.DefaultGenerateOutput
	}

	extractor, err := newExtractor(generateStrategy, slog.Default())
	if err != nil {
		return err
	}

	return generateDockerfile(cmd.OutOrStdout(), extractor, configPath, templatePath, outputPath)
}

// generateDockerfile is the testable core of the generate command.
func generateDockerfile(w io.Writer, extractor resolver.Extractor, configPath, templatePath, outputPath string) error {
	cfg, err := parser.ParseFile(configPath)
	if err != nil {
		if errors.Is(err, mcperrors.ErrInputMissing) {
			return mcperrors.NewUserError(err, "Check the --config path")
		}
		return mcperrors.NewUserError(err, "Fix the config file syntax")
	}

	set := extractor.Extract(cfg)

	if err := dockerfile.RenderFile(templatePath, outputPath, set.InstallPlan()); err != nil {
		if errors.Is(err, mcperrors.ErrInputMissing) {
			return mcperrors.NewUserError(err, "Check the --template path")
		}
		return mcperrors.NewSystemError(err, "Check the --output path is writable")
	}

	names := make([]string, 0, set.Len())
	for _, ref := range set.All() {
		names = append(names, ref.Name)
	}
	fmt.Fprintf(w, "Generating %s with packages: %s\n", outputPath, strings.Join(names, " "))
	fmt.Fprintf(w, "Successfully generated %s\n", outputPath)
	return nil
}
