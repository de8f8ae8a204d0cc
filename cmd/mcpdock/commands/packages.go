package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	mcperrors "github.com/mcpdock/mcpdock/internal/errors"
	"github.com/mcpdock/mcpdock/internal/mcp/parser"
	"github.com/mcpdock/mcpdock/internal/paths"
	"github.com/mcpdock/mcpdock/internal/resolver"
	"github.com/mcpdock/mcpdock/internal/translate"
	"github.com/mcpdock/mcpdock/pkg/fileutil"
)

var (
	packagesConfig   string
	packagesStrategy string
	packagesFormat   string
	packagesOutput   string
)

func init() {
	packagesCmd.Flags().StringVar(&packagesConfig, "config", "",
		fmt.Sprintf("source config path (default %q)", paths.DefaultGenerateConfig))
	packagesCmd.Flags().StringVar(&packagesStrategy, "strategy", strategyPatterns,
		"package extraction strategy: patterns, table")
	packagesCmd.Flags().StringVar(&packagesFormat, "format", "text",
		"output format: text, json, yaml, toml")
	packagesCmd.Flags().StringVarP(&packagesOutput, "output", "o", "",
		"write output to file instead of stdout")
	rootCmd.AddCommand(packagesCmd)
}

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Show the install plan a config implies",
	Long: `Packages prints the deduplicated set of packages the config's
servers need, grouped by ecosystem and sorted for deterministic output.

Examples:
  mcpdock packages
  mcpdock packages --format json
  mcpdock packages --strategy table --format yaml -o plan.yaml`,
	RunE: runPackages,
}

// packagesDoc is the serializable shape of the install plan.
type packagesDoc struct {
	NPM []string `json:"npm"`
	Pip []string `json:"pip"`
	UV  []string `json:"uv"`
}

func runPackages(cmd *cobra.Command, _ []string) error {
	configPath := packagesConfig
	if configPath == "" {
		configPath = toolConfig().Generate.Config
	}
	if configPath == "" {
		configPath = paths.DefaultGenerateConfig
	}

	extractor, err := newExtractor(packagesStrategy, slog.Default())
	if err != nil {
		return err
	}

	return listPackages(cmd.OutOrStdout(), extractor, configPath, packagesFormat, packagesOutput)
}

// listPackages is the testable core of the packages command.
func listPackages(w io.Writer, extractor resolver.Extractor, configPath, format, outputPath string) error {
	cfg, err := parser.ParseFile(configPath)
	if err != nil {
		if errors.Is(err, mcperrors.ErrInputMissing) {
			return mcperrors.NewUserError(err, "Check the --config path")
		}
		return mcperrors.NewUserError(err, "Fix the config file syntax")
	}

	set := extractor.Extract(cfg)

	data, err := renderPackages(set, format)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := fileutil.AtomicWriteFile(outputPath, data, 0o644); err != nil {
			return mcperrors.NewSystemError(err, "Check the --output path is writable")
		}
		return nil
	}

	_, err = w.Write(data)
	return err
}

func renderPackages(set *resolver.Set, format string) ([]byte, error) {
	if format == "text" {
		var b strings.Builder
		for _, line := range set.InstallPlan() {
			b.WriteString(strings.TrimPrefix(line, " && "))
			b.WriteByte('\n')
		}
		return []byte(b.String()), nil
	}

	doc := packagesDoc{
		NPM: set.Sorted(resolver.NPM),
		Pip: set.Sorted(resolver.Pip),
		UV:  set.Sorted(resolver.UV),
	}
	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, mcperrors.NewSystemError(err, "")
	}

	switch format {
	case "json":
		return append(jsonData, '\n'), nil
	case "yaml":
		out, err := translate.JSONToYAML(jsonData)
		if err != nil {
			return nil, mcperrors.NewSystemError(err, "")
		}
		return out, nil
	case "toml":
		out, err := translate.JSONToTOML(jsonData)
		if err != nil {
			return nil, mcperrors.NewSystemError(err, "")
		}
		return out, nil
	default:
		return nil, mcperrors.NewUserError(
			fmt.Errorf("unknown format %q (valid: text, json, yaml, toml)", format),
			"Run 'mcpdock packages --help' to see valid formats")
	}
}
