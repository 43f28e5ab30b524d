package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shyamraj/portfolio/internal/config"
)

var forceInitFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the portfolio config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write the default settings to the file named by --config so they can be
edited. An existing file is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(configFlag, forceInitFlag, cmd.OutOrStdout())
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceInitFlag, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

func initConfig(path string, force bool, out io.Writer) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite it", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote default config to %s\n", path)
	return nil
}
