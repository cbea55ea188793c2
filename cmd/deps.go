package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ewintr.nl/captionsbot/config"
	"ewintr.nl/captionsbot/fetcher"
	"ewintr.nl/captionsbot/model"
	"ewintr.nl/captionsbot/storage"
	"ewintr.nl/captionsbot/tracker"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func newGitHub() (*tracker.GitHub, error) {
	token, err := cfg.Secret(config.GitHubKey)
	if err != nil {
		return nil, err
	}
	return tracker.NewGitHub(cfg.Repository, token)
}

// newYoutube returns a client authenticated with the public API key, enough
// for everything but downloading captions.
func newYoutube(ctx context.Context) (*fetcher.Youtube, error) {
	key, err := cfg.Secret(config.YoutubeKey)
	if err != nil {
		return nil, err
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return fetcher.NewYoutube(svc), nil
}

// newOAuthYoutube returns a client acting on behalf of the channel owner.
func newOAuthYoutube(ctx context.Context) (*fetcher.Youtube, error) {
	secrets, err := cfg.Secret(config.ClientSecrets)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, err
	}
	client, err := fetcher.OAuthClient(ctx, []byte(secrets), cfg.SecretPath(config.OAuthToken), os.Stdin, os.Stderr)
	if err != nil {
		return nil, err
	}
	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return fetcher.NewYoutube(svc), nil
}

// newJournal returns the postgres journal when a dsn is configured.
func newJournal() (storage.Journal, func(), error) {
	if cfg.PostgresDSN == "" {
		return storage.Nop{}, func() {}, nil
	}
	pg, err := storage.OpenPostgres(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	return pg, func() {
		if err := pg.Close(); err != nil {
			logger.Error("could not close journal", slog.String("error", err.Error()))
		}
	}, nil
}

func captionFormat() (model.CaptionFormat, error) {
	format, ok := model.ParseCaptionFormat(cfg.Extension)
	if !ok {
		return "", fmt.Errorf("unsupported extension %q, use one of %v", cfg.Extension, model.CaptionFormats)
	}
	return format, nil
}

func captionsDir() (string, error) {
	info, err := os.Stat(cfg.CaptionsDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("no directory at %q, tweak --directory?", cfg.CaptionsDir)
	}
	return cfg.CaptionsDir, nil
}

// parseVideoIDs accepts bare ids and watch urls.
func parseVideoIDs(args []string) ([]model.YoutubeVideoID, error) {
	if len(args) > fetcher.MaxResults {
		return nil, fmt.Errorf("%w: got %d, at most %d are allowed", fetcher.ErrTooManyVideos, len(args), fetcher.MaxResults)
	}
	ids := make([]model.YoutubeVideoID, 0, len(args))
	for _, a := range args {
		id := strings.TrimPrefix(strings.TrimSpace(a), model.WatchURL)
		if id == "" {
			return nil, fmt.Errorf("empty video id")
		}
		ids = append(ids, model.YoutubeVideoID(id))
	}
	return ids, nil
}
