package cmd

import (
	"fmt"

	"ewintr.nl/captionsbot/fetcher"
	"ewintr.nl/captionsbot/process"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var suffixCommitCmd = &cobra.Command{
	Use:   "suffix-commit",
	Short: "Print the issues closed by the caption files about to be committed",
	Long: `Prints the numbers of the issues related to the caption files that were
added or modified, ready to be appended to the commit message, like:
 Closes #229. Closes #184.`,
	Example: `  git commit -m "Add captions$(captionsbot suffix-commit)"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		copyTrailer, _ := cmd.Flags().GetBool("copy")

		dir, err := captionsDir()
		if err != nil {
			return err
		}
		format, err := captionFormat()
		if err != nil {
			return err
		}
		captions, err := fetcher.StagedCaptions(ctx, fetcher.ExecRunner{}, dir, format)
		if err != nil {
			return err
		}
		if len(captions) == 0 {
			logger.Debug("no caption files to commit")
			return nil
		}

		gh, err := newGitHub()
		if err != nil {
			return err
		}
		issues, err := gh.Issues(ctx)
		if err != nil {
			return err
		}

		trailer := process.FormatCloses(process.ClosedIssues(captions, issues))
		fmt.Fprint(cmd.OutOrStdout(), trailer)
		if copyTrailer && trailer != "" {
			if err := clipboard.WriteAll(trailer); err != nil {
				return fmt.Errorf("copying trailer to clipboard: %w", err)
			}
			logger.Info("trailer copied to clipboard", slog.String("trailer", trailer))
		}
		return nil
	},
}

func init() {
	suffixCommitCmd.Flags().String("directory", "", "Directory holding the caption files (default from config)")
	suffixCommitCmd.Flags().String("extension", "", "Extension of the caption files: vtt, srt or sbv (default from config)")
	suffixCommitCmd.Flags().Bool("copy", false, "Also copy the trailer to the clipboard")
	rootCmd.AddCommand(suffixCommitCmd)
}
