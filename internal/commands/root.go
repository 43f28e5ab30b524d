// Package commands provides the CLI for the portfolio.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shyamraj/portfolio/internal/config"
)

var (
	// Global flags
	configFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with an AI message refiner",
	Long: `portfolio serves a single-page developer portfolio whose contact section
turns a rough draft into a polished message through a remote refine function.

Examples:
  portfolio                             Serve the site (same as "serve")
  portfolio serve --with-function       Serve the site and the refine function
  portfolio tui                         Browse the portfolio in the terminal
  portfolio refine "want to talk?"      Refine a single draft
  cat draft.txt | portfolio refine      Read the draft from stdin
  portfolio config init                 Write portfolio.yml with the defaults`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "portfolio %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return runServe(cmd.Context(), false)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(refineCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config named by --config. Validation is left to the
// caller so flags can adjust the result first.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
