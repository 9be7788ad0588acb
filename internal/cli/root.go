package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wozhendeai/grip/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string

	exitCode int
)

// Exit codes reported by Execute. A sweep that finds unused functions exits
// with ExitUnusedFound so CI can gate on dead code without parsing output.
const (
	ExitClean       = 0
	ExitError       = 1
	ExitUnusedFound = 2
)

var rootCmd = &cobra.Command{
	Use:   "grip",
	Short: "grip - keep the data access layer free of dead query functions",
	Long: `grip statically analyzes a Next.js-style source tree to find exported
query functions that no page, route, server action, server component, or
library utility ever calls, and removes them on request.

Example usage:
  grip sweep            # Report unused query functions (dry run)
  grip sweep --apply    # Actually delete them
  grip docs --all       # Document routes, SSR pages, and queries`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
	os.Exit(exitCode)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./grip.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "project root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
