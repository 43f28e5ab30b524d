package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shyamraj/portfolio/internal/config"
	"github.com/shyamraj/portfolio/internal/refiner"
)

var (
	refineFileFlag string
	refineCopyFlag bool
)

var refineCmd = &cobra.Command{
	Use:   "refine [draft]",
	Short: "Refine a single draft message",
	Long: `Refine a draft through the configured refine function and print the result.
When the function cannot be reached the offline template is printed instead.

The draft is read from the argument, from --file, or from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stat, _ := os.Stdin.Stat()
		hasStdin := stat != nil && (stat.Mode()&os.ModeCharDevice) == 0

		draft, err := readDraft(args, refineFileFlag, os.Stdin, hasStdin)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		copyResult := refineCopyFlag
		if !cmd.Flags().Changed("copy") {
			copyResult = cfg.Refiner.CopyToClipboard && refiner.ClipboardAvailable()
		}
		return runRefine(cmd.Context(), cfg, buildRefiner(cfg), refiner.SystemClipboard{},
			draft, copyResult, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	refineCmd.Flags().StringVarP(&refineFileFlag, "file", "f", "", "Read the draft from a file")
	refineCmd.Flags().BoolVar(&refineCopyFlag, "copy", false, "Copy the result to the clipboard (default from refiner.copy_to_clipboard)")
}

// readDraft picks the draft source: file first, then piped stdin, then the
// positional argument.
func readDraft(args []string, file string, stdin io.Reader, hasStdin bool) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
	if hasStdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return "", refiner.ErrEmptyDraft
}

// runRefine drives one refiner session to completion. Notices go to errOut,
// the message to out.
func runRefine(ctx context.Context, cfg *config.Config, r refiner.Refiner, clip refiner.Clipboard,
	draft string, copyResult bool, out, errOut io.Writer) error {
	sess, err := refiner.NewSession(r,
		refiner.WithClipboard(clip),
		refiner.WithRecipient(cfg.Refiner.FallbackRecipient),
	)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.SetDraft(strings.TrimRight(draft, "\r\n"))
	outcome, err := sess.Refine(ctx)
	if err == nil {
		fmt.Fprintln(out, outcome.Text)
		if copyResult {
			if cerr := sess.Copy(); cerr != nil {
				log.Printf("Error copying refined message: %v", cerr)
			}
		}
	}
	for _, n := range sess.Notices() {
		fmt.Fprintln(errOut, n.Text)
	}
	return err
}
