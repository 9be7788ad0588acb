package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wozhendeai/grip/config"
	"github.com/wozhendeai/grip/internal/adapter/analyzer"
	"github.com/wozhendeai/grip/internal/adapter/fs"
	"github.com/wozhendeai/grip/internal/usecase"
)

var (
	docsFormat     string
	docsOutput     string
	docsAll        bool
	docsRoutesOnly bool
)

var docsCmd = &cobra.Command{
	Use:   "docs [path]",
	Short: "Document API routes, SSR pages, and query functions",
	Long: `Generate documentation for the server side of the project: API routes
with their HTTP methods and descriptions, and optionally the server-rendered
pages and query functions they rely on.

Examples:
  grip docs                       # Markdown route listing to stdout
  grip docs --all -o API.md       # Full documentation to a file
  grip docs --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringVar(&docsFormat, "format", "markdown", "output format: markdown or json")
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "output file (default is stdout)")
	docsCmd.Flags().BoolVar(&docsAll, "all", false, "include SSR pages and the query inventory")
	docsCmd.Flags().BoolVar(&docsRoutesOnly, "routes-only", false, "only document API routes")
}

func runDocs(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()
	uc := newDocsUseCase(cfg)

	docs, err := uc.Generate(root, docsAll && !docsRoutesOnly)
	if err != nil {
		return err
	}

	var output string
	switch docsFormat {
	case "markdown":
		output = usecase.RenderDocsMarkdown(docs)
	case "json":
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return err
		}
		output = string(data) + "\n"
	default:
		return fmt.Errorf("unknown format %q (want markdown or json)", docsFormat)
	}

	if docsOutput != "" {
		if err := os.WriteFile(docsOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", docsOutput, err)
		}
		fmt.Printf("Written to %s\n", docsOutput)
		return nil
	}

	fmt.Print(output)
	return nil
}

func newDocsUseCase(cfg *config.Config) *usecase.DocsUseCase {
	layout := fs.NewLayout(cfg.Layout, cfg.Scan.Excludes)
	extractor := analyzer.NewUsageExtractor(cfg.Scan.ImportPrefix, cfg.Scan.Match == config.MatchReference)
	return usecase.NewDocsUseCase(
		layout,
		fs.Reader{},
		extractor,
		analyzer.NewRouteScanner(extractor),
		analyzer.NewBoundaryParser(),
		cfg.Layout.AppDir,
		cfg.Layout.APIDir,
		cfg.Scan.ImportPrefix,
	)
}
