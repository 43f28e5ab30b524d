package commands

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shyamraj/portfolio/internal/content"
	"github.com/shyamraj/portfolio/internal/refiner"
	"github.com/shyamraj/portfolio/internal/tui"
)

var tuiLogFlag string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the portfolio in the terminal",
	Long: `Browse the portfolio in an interactive terminal view.

Keys:
  ↑/↓, pgup/pgdown  Scroll
  m                 Toggle the menu, then 1-4 to jump
  tab               Switch between the page and the refiner draft
  ctrl+s            Refine the draft
  ctrl+y            Copy the refined message
  q, ctrl+c         Quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("tui needs an interactive terminal; use \"portfolio refine\" in scripts")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		c, err := content.Load(cfg.Content.File)
		if err != nil {
			return err
		}

		// Diagnostics would corrupt the screen; send them to a file.
		f, err := tea.LogToFile(tuiLogFlag, "portfolio")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()

		sess, err := refiner.NewSession(buildRefiner(cfg),
			refiner.WithClipboard(refiner.SystemClipboard{}),
			refiner.WithRecipient(cfg.Refiner.FallbackRecipient),
		)
		if err != nil {
			return err
		}
		defer sess.Close()

		return tui.Run(cmd.Context(), c, sess)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFlag, "log-file", "portfolio-tui.log", "Where to write diagnostics while the TUI runs")
}
