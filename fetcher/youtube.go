package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"ewintr.nl/captionsbot/model"
	"google.golang.org/api/youtube/v3"
)

// MaxResults is the highest page size and id count the Data API accepts.
const MaxResults = 50

var ErrTooManyVideos = errors.New("too many video ids")

type Youtube struct {
	Client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{Client: client}
}

// Search returns the ids of the latest videos of a channel, newest first.
func (y *Youtube) Search(ctx context.Context, channelID model.YoutubeChannelID, publishedAfter time.Time, max int64) ([]model.YoutubeVideoID, error) {
	if max < 1 || max > MaxResults {
		return nil, fmt.Errorf("%w: cannot search for %d results, max is %d", ErrTooManyVideos, max, MaxResults)
	}
	call := y.Client.Search.
		List([]string{"id"}).
		MaxResults(max).
		Type("video").
		Order("date").
		ChannelId(string(channelID)).
		Context(ctx)
	if !publishedAfter.IsZero() {
		call.PublishedAfter(publishedAfter.UTC().Format(time.RFC3339))
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search channel %s: %w", channelID, err)
	}

	return searchIDs(response), nil
}

// SearchPage returns one page of all the videos of a channel, and the token
// of the next page, empty on the last one.
func (y *Youtube) SearchPage(ctx context.Context, channelID model.YoutubeChannelID, pageToken string) ([]model.YoutubeVideoID, string, error) {
	call := y.Client.Search.
		List([]string{"id"}).
		MaxResults(MaxResults).
		Type("video").
		Order("date").
		ChannelId(string(channelID)).
		Context(ctx)

	if pageToken != "" {
		call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("search channel %s: %w", channelID, err)
	}

	return searchIDs(response), response.NextPageToken, nil
}

func searchIDs(response *youtube.SearchListResponse) []model.YoutubeVideoID {
	ids := make([]model.YoutubeVideoID, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		ids = append(ids, model.YoutubeVideoID(item.Id.VideoId))
	}
	return ids
}

// Videos fetches the metadata of at most MaxResults videos, in the order the
// API returns them. Unknown ids are left out.
func (y *Youtube) Videos(ctx context.Context, ytIDs []model.YoutubeVideoID) ([]model.Video, error) {
	if len(ytIDs) > MaxResults {
		return nil, fmt.Errorf("%w: got %d, max is %d", ErrTooManyVideos, len(ytIDs), MaxResults)
	}
	if len(ytIDs) == 0 {
		return []model.Video{}, nil
	}

	strIDs := make([]string, len(ytIDs))
	for i, id := range ytIDs {
		strIDs[i] = string(id)
	}
	call := y.Client.Videos.
		List([]string{"snippet", "contentDetails"}).
		Id(strings.Join(strIDs, ",")).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	videos := make([]model.Video, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		duration := ""
		if item.ContentDetails != nil {
			duration = item.ContentDetails.Duration
		}
		video, err := model.ParseVideo(item.Id, item.Snippet.Title, item.Snippet.PublishedAt, duration)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	return videos, nil
}

// Captions lists the published, human made caption tracks of a video.
// Automatic speech recognition tracks and drafts are left out.
func (y *Youtube) Captions(ctx context.Context, videoID model.YoutubeVideoID) ([]model.Caption, error) {
	response, err := y.Client.Captions.
		List([]string{"snippet"}, string(videoID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list captions of %s: %w", videoID, err)
	}

	captions := make([]model.Caption, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.TrackKind != "standard" || item.Snippet.IsDraft {
			continue
		}
		caption := model.Caption{
			ID:       item.Id,
			VideoID:  videoID,
			Language: item.Snippet.Language,
		}
		if item.Snippet.LastUpdated != "" {
			at, err := time.Parse(time.RFC3339, item.Snippet.LastUpdated)
			if err != nil {
				return nil, fmt.Errorf("caption %s: invalid last update %q: %w", item.Id, item.Snippet.LastUpdated, err)
			}
			caption.LastUpdated = at
		}
		captions = append(captions, caption)
	}

	return captions, nil
}

// Download fetches the content of a caption track. This requires an OAuth
// authorized client.
func (y *Youtube) Download(ctx context.Context, captionID string, format model.CaptionFormat) (string, error) {
	resp, err := y.Client.Captions.
		Download(captionID).
		Tfmt(string(format)).
		Context(ctx).
		Download()
	if err != nil {
		return "", fmt.Errorf("download caption %s: %w", captionID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read caption %s: %w", captionID, err)
	}

	return string(body), nil
}
