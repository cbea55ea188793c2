package fetcher

import (
	"strings"

	"ewintr.nl/captionsbot/model"
	"miniflux.app/client"
)

type MinifluxInfo struct {
	Endpoint string
	ApiKey   string
}

// Miniflux reads new videos from the YouTube channel feeds a miniflux
// instance is subscribed to.
type Miniflux struct {
	client *client.Client
}

func NewMiniflux(mflInfo MinifluxInfo) *Miniflux {
	return &Miniflux{
		client: client.New(mflInfo.Endpoint, mflInfo.ApiKey),
	}
}

// Unread returns all unread entries. Entries that do not link a YouTube video
// are returned too, without YoutubeID, so they can be marked read.
func (m *Miniflux) Unread() ([]model.FeedEntry, error) {
	result, err := m.client.Entries(&client.Filter{Status: "unread"})
	if err != nil {
		return []model.FeedEntry{}, err
	}

	entries := []model.FeedEntry{}
	for _, entry := range result.Entries {
		fe := model.FeedEntry{
			EntryID: entry.ID,
			FeedID:  entry.FeedID,
		}
		if strings.HasPrefix(entry.URL, model.WatchURL) {
			fe.YoutubeID = model.YoutubeVideoID(strings.TrimPrefix(entry.URL, model.WatchURL))
		}
		if entry.Feed != nil {
			if channel, ok := strings.CutPrefix(entry.Feed.FeedURL, ChannelFeedURL+"?channel_id="); ok {
				fe.YoutubeChannelID = model.YoutubeChannelID(channel)
			}
		}
		entries = append(entries, fe)
	}

	return entries, nil
}

func (m *Miniflux) MarkRead(entryID int64) error {
	if err := m.client.UpdateEntries([]int64{entryID}, "read"); err != nil {
		return err
	}

	return nil
}
