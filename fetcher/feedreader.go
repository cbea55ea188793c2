package fetcher

import "ewintr.nl/captionsbot/model"

type FeedReader interface {
	Unread() ([]model.FeedEntry, error)
	MarkRead(entryID int64) error
}
