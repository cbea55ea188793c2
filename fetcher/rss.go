package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"ewintr.nl/captionsbot/model"
	"github.com/mmcdole/gofeed"
)

const ChannelFeedURL = "https://www.youtube.com/feeds/videos.xml"

// RSS finds recent videos in the public Atom feed of a channel, which does
// not cost any API quota.
type RSS struct {
	FeedURL   string
	ChannelID model.YoutubeChannelID
	Since     time.Duration
	parser    *gofeed.Parser
	now       func() time.Time
}

func NewRSS(channelID model.YoutubeChannelID, since time.Duration) *RSS {
	return &RSS{
		FeedURL:   ChannelFeedURL,
		ChannelID: channelID,
		Since:     since,
		parser:    gofeed.NewParser(),
		now:       time.Now,
	}
}

func (r *RSS) Latest(ctx context.Context) ([]model.YoutubeVideoID, error) {
	feedURL := r.FeedURL + "?channel_id=" + url.QueryEscape(string(r.ChannelID))
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("read feed of channel %s: %w", r.ChannelID, err)
	}

	after := r.now().Add(-r.Since)
	ids := []model.YoutubeVideoID{}
	for _, item := range feed.Items {
		if r.Since > 0 && item.PublishedParsed != nil && item.PublishedParsed.Before(after) {
			continue
		}
		if id := itemVideoID(item); id != "" {
			ids = append(ids, id)
		}
		if len(ids) == MaxResults {
			break
		}
	}

	return ids, nil
}

func itemVideoID(item *gofeed.Item) model.YoutubeVideoID {
	if yt, ok := item.Extensions["yt"]; ok {
		if vals := yt["videoId"]; len(vals) > 0 && vals[0].Value != "" {
			return model.YoutubeVideoID(vals[0].Value)
		}
	}
	return model.YoutubeVideoID(strings.TrimPrefix(item.Link, model.WatchURL))
}
