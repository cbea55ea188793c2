package fetcher

import (
	"context"
	"time"

	"ewintr.nl/captionsbot/model"
)

// VideoSource finds the ids of recently published videos.
type VideoSource interface {
	Latest(ctx context.Context) ([]model.YoutubeVideoID, error)
}

// ChannelSearch finds recent videos with the search endpoint of the Data API.
// It costs quota, but sees videos the moment they are published.
type ChannelSearch struct {
	Youtube   *Youtube
	ChannelID model.YoutubeChannelID
	Since     time.Duration
	Max       int64
	now       func() time.Time
}

func NewChannelSearch(yt *Youtube, channelID model.YoutubeChannelID, since time.Duration) *ChannelSearch {
	return &ChannelSearch{
		Youtube:   yt,
		ChannelID: channelID,
		Since:     since,
		Max:       10,
		now:       time.Now,
	}
}

func (cs *ChannelSearch) Latest(ctx context.Context) ([]model.YoutubeVideoID, error) {
	return cs.Youtube.Search(ctx, cs.ChannelID, cs.now().Add(-cs.Since), cs.Max)
}
