package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"ewintr.nl/captionsbot/fetcher"
	"ewintr.nl/captionsbot/model"
	"ewintr.nl/captionsbot/process"
	"ewintr.nl/captionsbot/tracker"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var createIssuesCmd = &cobra.Command{
	Use:   "create-issues",
	Short: "Create an issue per language for each new video of the channel",
	Example: `  # Issues for the videos of the last two hours
  captionsbot create-issues

  # Issues for specific videos, in french and english only
  captionsbot create-issues --videos dQw4w9WgXcQ --languages fr,en

  # See what would be created
  captionsbot create-issues --since 1440 --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		videoArgs, _ := cmd.Flags().GetStringSlice("videos")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		langs, err := model.SelectLanguages(model.DefaultLanguages(), cfg.Languages)
		if err != nil {
			return err
		}
		yt, err := newYoutube(ctx)
		if err != nil {
			return err
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

		creator := process.NewIssueCreator(gh, tracker.NewProjectsV1(gh), journal, gh.Repository(), dryRun, logger)
		run := func(ids []model.YoutubeVideoID) error {
			return createIssues(ctx, cmd.OutOrStdout(), yt, gh, creator, ids, langs, dryRun)
		}

		switch {
		case len(videoArgs) > 0:
			ids, err := parseVideoIDs(videoArgs)
			if err != nil {
				return err
			}
			return run(ids)
		case cfg.Source == "miniflux":
			reader := fetcher.NewMiniflux(fetcher.MinifluxInfo{Endpoint: cfg.MinifluxEndpoint, ApiKey: cfg.MinifluxAPIKey})
			return fromFeed(reader, dryRun, run)
		default:
			logger.Info("collecting latest videos", slog.String("channel", cfg.Channel), slog.String("source", cfg.Source))
			ids, err := videoSource(yt).Latest(ctx)
			if err != nil {
				return err
			}
			return inBatches(ids, run)
		}
	},
}

// inBatches hands the ids to run in slices the videos endpoint accepts.
func inBatches(ids []model.YoutubeVideoID, run func([]model.YoutubeVideoID) error) error {
	if len(ids) == 0 {
		logger.Info("no new videos")
		return nil
	}
	for start := 0; start < len(ids); start += fetcher.MaxResults {
		if err := run(ids[start:min(start+fetcher.MaxResults, len(ids))]); err != nil {
			return err
		}
	}
	return nil
}

// fromFeed creates the issues for the unread videos of the feed reader. The
// entries of a batch are marked read once the batch went through, entries
// that are no video right away. A dry run marks nothing.
func fromFeed(reader fetcher.FeedReader, dryRun bool, run func([]model.YoutubeVideoID) error) error {
	entries, err := reader.Unread()
	if err != nil {
		return fmt.Errorf("read feed entries: %w", err)
	}

	var videos []model.FeedEntry
	for _, e := range entries {
		if e.IsVideo() {
			videos = append(videos, e)
			continue
		}
		if !dryRun {
			markRead(reader, e)
		}
	}
	if len(videos) == 0 {
		logger.Info("no new videos")
		return nil
	}

	for start := 0; start < len(videos); start += fetcher.MaxResults {
		batch := videos[start:min(start+fetcher.MaxResults, len(videos))]
		ids := make([]model.YoutubeVideoID, 0, len(batch))
		for _, e := range batch {
			ids = append(ids, e.YoutubeID)
		}
		if err := run(ids); err != nil {
			return err
		}
		if dryRun {
			continue
		}
		for _, e := range batch {
			markRead(reader, e)
		}
	}
	return nil
}

func markRead(reader fetcher.FeedReader, e model.FeedEntry) {
	if err := reader.MarkRead(e.EntryID); err != nil {
		logger.Error("could not mark entry as read", slog.Int64("entry", e.EntryID), slog.String("error", err.Error()))
	}
}

func videoSource(yt *fetcher.Youtube) fetcher.VideoSource {
	since := time.Duration(cfg.SinceMinutes) * time.Minute
	channel := model.YoutubeChannelID(cfg.Channel)
	if cfg.Source == "rss" {
		return fetcher.NewRSS(channel, since)
	}
	search := fetcher.NewChannelSearch(yt, channel, since)
	search.Max = int64(cfg.MaxVideos)
	return search
}

type videoLister interface {
	Videos(ctx context.Context, ids []model.YoutubeVideoID) ([]model.Video, error)
}

type issueLister interface {
	Issues(ctx context.Context) ([]model.Issue, error)
}

func createIssues(ctx context.Context, out io.Writer, yt videoLister, gh issueLister, creator *process.IssueCreator, ids []model.YoutubeVideoID, langs []model.Language, dryRun bool) error {
	videos, err := yt.Videos(ctx, ids)
	if err != nil {
		return err
	}
	logger.Info("found videos", slog.Int("count", len(videos)))

	issues, err := gh.Issues(ctx)
	if err != nil {
		return err
	}

	res, err := creator.CreateMissing(ctx, videos, langs, issues)
	for _, issue := range res.Created {
		if dryRun {
			fmt.Fprintf(out, "Would create %s\n", issue.Title)
			continue
		}
		fmt.Fprintf(out, "Created #%d %s\n", issue.Number, issue.Title)
	}
	for _, f := range res.CardFailures {
		fmt.Fprintf(out, "No card for #%d: %v\n", f.Issue.Number, f.Err)
	}
	if err != nil {
		return err
	}
	logger.Info("done", slog.Int("created", len(res.Created)), slog.Int("skipped", res.Skipped), slog.Int("live", len(res.Live)))

	return nil
}

func init() {
	createIssuesCmd.Flags().String("channel", "", "Identifier of the YouTube channel publishing the videos")
	createIssuesCmd.Flags().StringSlice("videos", nil, "Identifiers of the videos to create issues for, at most 50. The channel is ignored then")
	createIssuesCmd.Flags().StringSlice("languages", nil, "Languages to create issues for (default from config)")
	createIssuesCmd.Flags().Int("since", 120, "Look for videos published in the last minutes")
	createIssuesCmd.Flags().Int("max", 10, "Maximum number of videos to look for")
	createIssuesCmd.Flags().String("source", "search", "Where to look for new videos: search, rss or miniflux")
	createIssuesCmd.Flags().Bool("dry-run", false, "Show the issues without creating them")
	rootCmd.AddCommand(createIssuesCmd)
}
