package model

// FeedEntry is an unread item of a feed reader. YoutubeID is empty when the
// entry does not point to a YouTube video.
type FeedEntry struct {
	EntryID          int64
	FeedID           int64
	YoutubeID        YoutubeVideoID
	YoutubeChannelID YoutubeChannelID
}

func (fe FeedEntry) IsVideo() bool {
	return fe.YoutubeID != ""
}
