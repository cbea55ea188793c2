package cmd

import (
	"fmt"

	"ewintr.nl/captionsbot/fetcher"
	"ewintr.nl/captionsbot/model"
	"ewintr.nl/captionsbot/process"
	"ewintr.nl/captionsbot/tracker"
	"github.com/spf13/cobra"
)

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Move the cards of downloaded captions to the approved column",
	Long: `Moves the card of every issue whose caption was published and then
downloaded again to the last column of the board.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dryRun, _ := cmd.Flags().GetBool("dry-run")

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
			return nil
		}

		gh, err := newGitHub()
		if err != nil {
			return err
		}
		journal, closeJournal, err := newJournal()
		if err != nil {
			return err
		}
		defer closeJournal()

		issues, err := gh.Issues(ctx)
		if err != nil {
			return err
		}
		approver := process.NewApprover(tracker.NewProjectsV1(gh), model.DefaultBoard(), journal, gh.Repository(), dryRun, logger)
		approvals, err := approver.Approve(ctx, captions, issues)
		for _, a := range approvals {
			fmt.Fprintf(cmd.OutOrStdout(), "Moved card %d of #%d to column %d\n", a.Card, a.Issue, a.Column)
		}
		return err
	},
}

func init() {
	approveCmd.Flags().String("directory", "", "Directory holding the caption files (default from config)")
	approveCmd.Flags().String("extension", "", "Extension of the caption files: vtt, srt or sbv (default from config)")
	approveCmd.Flags().Bool("dry-run", false, "Show the moves without making them")
	rootCmd.AddCommand(approveCmd)
}
