package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"ewintr.nl/captionsbot/model"
	"golang.org/x/exp/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard))
}

func video(id, title string, minutes int) model.Video {
	v := model.Video{
		ID:          model.YoutubeVideoID(id),
		Title:       title,
		PublishedAt: time.Date(2017, 4, 3, 18, 0, 0, 0, time.UTC),
	}
	if minutes > 0 {
		d := time.Duration(minutes) * time.Minute
		v.Duration = &d
	}
	return v
}

type fakeTracker struct {
	issues     []model.Issue
	created    []model.Issue
	cards      map[int64][]model.Card
	placed     []int64
	moved      map[int64]int64
	calls      []string
	failCards  bool
	failCreate bool
}

func newFakeTracker(issues ...model.Issue) *fakeTracker {
	return &fakeTracker{
		issues: issues,
		cards:  map[int64][]model.Card{},
		moved:  map[int64]int64{},
	}
}

func (f *fakeTracker) CreateIssue(_ context.Context, title, body string, labels []string) (model.Issue, error) {
	if f.failCreate {
		return model.Issue{}, errors.New("boom")
	}
	number := len(f.issues) + len(f.created) + 100
	issue := model.Issue{ID: int64(number) * 1000, Number: number, Title: title, Body: body, Labels: labels}
	f.created = append(f.created, issue)
	f.calls = append(f.calls, "create "+title)
	return issue, nil
}

func (f *fakeTracker) CreateCard(_ context.Context, column int64, issueID int64) (model.Card, error) {
	if f.failCards {
		return model.Card{}, errors.New("preview api gone")
	}
	f.placed = append(f.placed, column)
	return model.Card{ID: issueID + 1, ColumnID: column}, nil
}

func (f *fakeTracker) Issue(_ context.Context, number int) (model.Issue, error) {
	for _, issue := range f.issues {
		if issue.Number == number {
			return issue, nil
		}
	}
	return model.Issue{}, fmt.Errorf("issue #%d not found", number)
}

func (f *fakeTracker) AddLabel(_ context.Context, number int, label string) error {
	f.calls = append(f.calls, fmt.Sprintf("add #%d %s", number, label))
	return nil
}

func (f *fakeTracker) RemoveLabel(_ context.Context, number int, label string) error {
	f.calls = append(f.calls, fmt.Sprintf("remove #%d %s", number, label))
	return nil
}

func (f *fakeTracker) ListCards(_ context.Context, column int64) ([]model.Card, error) {
	return f.cards[column], nil
}

func (f *fakeTracker) MoveCard(_ context.Context, card int64, column int64) error {
	f.moved[card] = column
	return nil
}
