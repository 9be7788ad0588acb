package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/wozhendeai/grip/config"
	"github.com/wozhendeai/grip/internal/adapter/analyzer"
	"github.com/wozhendeai/grip/internal/adapter/fs"
	"github.com/wozhendeai/grip/internal/adapter/rewrite"
	"github.com/wozhendeai/grip/internal/usecase"
)

var (
	sweepApply bool
	sweepJSON  bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [path]",
	Short: "Find and remove unused query functions",
	Long: `Scan every consumer file for query-layer usage, resolve barrel
re-exports, and report query functions that nothing calls.

The default is a dry run: nothing is modified until --apply is given.

Examples:
  grip sweep                  # Preview unused functions
  grip sweep --apply          # Delete them
  grip sweep /path/to/project --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().BoolVar(&sweepApply, "apply", false, "delete unused functions instead of only reporting them")
	sweepCmd.Flags().BoolVar(&sweepJSON, "json", false, "output the report as JSON")
}

func runSweep(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()
	uc := newSweepUseCase(cfg)

	var progress usecase.ProgressFunc
	if !sweepJSON {
		progress = newProgress("Scanning")
	}

	result, err := uc.Sweep(root, sweepApply, progress)
	if err != nil {
		if errors.Is(err, usecase.ErrQueriesDirMissing) {
			return fmt.Errorf("precondition failed: %w", err)
		}
		return err
	}

	report := &result.Report
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if sweepJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(usecase.RenderSweepText(report))
		if result.FilesRewritten > 0 {
			fmt.Printf("Rewrote %d files.\n", result.FilesRewritten)
		}
	}

	if report.UnusedCount() > 0 {
		exitCode = ExitUnusedFound
	}
	return nil
}

func newSweepUseCase(cfg *config.Config) *usecase.SweepUseCase {
	layout := fs.NewLayout(cfg.Layout, cfg.Scan.Excludes)
	extractor := analyzer.NewUsageExtractor(cfg.Scan.ImportPrefix, cfg.Scan.Match == config.MatchReference)
	return usecase.NewSweepUseCase(
		layout,
		fs.Reader{},
		extractor,
		analyzer.NewReexportResolver(),
		analyzer.NewBoundaryParser(),
		rewrite.New(),
	)
}

func resolveRoot(args []string) (string, error) {
	root := GetRootDir()
	if len(args) > 0 {
		var err error
		root, err = filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return root, nil
}

// newProgress lazily builds a progress bar once the total is known, the same
// shape the scan loop reports through.
func newProgress(label string) usecase.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(processed, total int, currentFile string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]"+label+"[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(processed)
	}
}
