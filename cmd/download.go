package cmd

import (
	"context"
	"fmt"
	"os"

	"ewintr.nl/captionsbot/fetcher"
	"ewintr.nl/captionsbot/model"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Back up the caption files of the channel",
	Long: `Downloads the published caption tracks of every video of the channel, or
of the given videos only, into <directory>/<year>/.

Downloading captions requires OAuth credentials of the channel owner in
client-secrets.json. On first use a link is shown to authorize the bot.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		videoArgs, _ := cmd.Flags().GetStringSlice("videos")

		format, err := captionFormat()
		if err != nil {
			return err
		}
		yt, err := newOAuthYoutube(ctx)
		if err != nil {
			return err
		}

		var videos []model.Video
		if len(videoArgs) > 0 {
			ids, err := parseVideoIDs(videoArgs)
			if err != nil {
				return err
			}
			if videos, err = yt.Videos(ctx, ids); err != nil {
				return err
			}
			if len(videos) != len(ids) {
				return fmt.Errorf("could only retrieve %d out of the %d videos, check the ids", len(videos), len(ids))
			}
		} else {
			logger.Info("collecting videos of channel", slog.String("channel", cfg.Channel))
			if videos, err = channelVideos(ctx, yt, model.YoutubeChannelID(cfg.Channel)); err != nil {
				return err
			}
		}
		logger.Info("found videos", slog.Int("count", len(videos)))

		downloader := fetcher.NewDownloader(yt, cfg.CaptionsDir, format, logger)
		bar := newBar(len(videos), "downloading captions")
		count := 0
		for _, video := range videos {
			paths, err := downloader.Video(ctx, video)
			count += len(paths)
			if err != nil {
				return err
			}
			bar.Add(1)
		}
		bar.Finish()
		fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d caption files.\n", count)
		return nil
	},
}

// channelVideos walks the whole upload history of a channel.
func channelVideos(ctx context.Context, yt *fetcher.Youtube, channel model.YoutubeChannelID) ([]model.Video, error) {
	var (
		videos []model.Video
		token  string
	)
	for {
		ids, next, err := yt.SearchPage(ctx, channel, token)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			page, err := yt.Videos(ctx, ids)
			if err != nil {
				return nil, err
			}
			videos = append(videos, page...)
		}
		if next == "" {
			return videos, nil
		}
		token = next
	}
}

// newBar shows progress on stderr when it is a terminal.
func newBar(total int, description string) *progressbar.ProgressBar {
	if !isatty.IsTerminal(os.Stderr.Fd()) || cfg.Verbose {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func init() {
	downloadCmd.Flags().String("channel", "", "Identifier of the YouTube channel publishing the videos")
	downloadCmd.Flags().StringSlice("videos", nil, "Identifiers of the videos to back up, at most 50. The channel is ignored then")
	downloadCmd.Flags().String("directory", "", "Directory to store the caption files in (default from config)")
	downloadCmd.Flags().String("extension", "", "Format of the caption files: vtt, srt or sbv (default from config)")
	rootCmd.AddCommand(downloadCmd)
}
