package fetcher

import (
	"context"

	"ewintr.nl/captionsbot/model"
	"golang.org/x/exp/slog"
)

type CaptionSource interface {
	Captions(ctx context.Context, videoID model.YoutubeVideoID) ([]model.Caption, error)
	Download(ctx context.Context, captionID string, format model.CaptionFormat) (string, error)
}

// Downloader backs up the caption tracks of videos into a directory.
type Downloader struct {
	source CaptionSource
	dir    string
	format model.CaptionFormat
	logger *slog.Logger
}

func NewDownloader(source CaptionSource, dir string, format model.CaptionFormat, logger *slog.Logger) *Downloader {
	return &Downloader{
		source: source,
		dir:    dir,
		format: format,
		logger: logger,
	}
}

// Video downloads the captions of a video and returns the paths written.
// Tracks whose stored copy has the same last update are not downloaded again.
func (d *Downloader) Video(ctx context.Context, video model.Video) ([]string, error) {
	captions, err := d.source.Captions(ctx, video.ID)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, caption := range captions {
		path := CaptionPath(d.dir, video, caption, d.format)
		if stored, err := ReadCaptionFile(path); err == nil && stored.LastUpdated.Equal(caption.LastUpdated) {
			d.logger.Debug("caption unchanged", slog.String("path", path))
			continue
		}

		payload, err := d.source.Download(ctx, caption.ID, d.format)
		if err != nil {
			return paths, err
		}
		written, err := WriteCaptionFile(d.dir, video, caption, d.format, payload)
		if err != nil {
			return paths, err
		}
		d.logger.Info("retrieved caption", slog.String("path", written))
		paths = append(paths, written)
	}

	return paths, nil
}
