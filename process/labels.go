package process

import (
	"context"
	"fmt"
	"slices"

	"ewintr.nl/captionsbot/model"
	"ewintr.nl/captionsbot/storage"
	"golang.org/x/exp/slog"
)

// Blacklist holds issue numbers the webhook never touches.
var Blacklist = []int{1}

type Delta struct {
	Remove []string
	Add    []string
}

func (d Delta) Empty() bool {
	return len(d.Remove) == 0 && len(d.Add) == 0
}

// LabelDelta computes the label changes for an issue whose card landed in
// column. Every stage owning the column must be labelled, every other stage
// must not.
func LabelDelta(board model.Board, column int64, current []string) Delta {
	var d Delta
	for _, stage := range board {
		has := slices.Contains(current, stage.Label)
		want := stage.HasColumn(column)
		switch {
		case want && !has:
			d.Add = append(d.Add, stage.Label)
		case !want && has:
			d.Remove = append(d.Remove, stage.Label)
		}
	}
	return d
}

type IssueLabels interface {
	Issue(ctx context.Context, number int) (model.Issue, error)
	AddLabel(ctx context.Context, number int, label string) error
	RemoveLabel(ctx context.Context, number int, label string) error
}

type CardMove struct {
	Action     string
	CardID     int64
	ColumnID   int64
	ContentURL string
}

func (m CardMove) Card() model.Card {
	return model.Card{ID: m.CardID, ColumnID: m.ColumnID, ContentURL: m.ContentURL}
}

type Labeller struct {
	issues     IssueLabels
	board      model.Board
	journal    storage.Journal
	repository string
	logger     *slog.Logger
}

func NewLabeller(issues IssueLabels, board model.Board, journal storage.Journal, repository string, logger *slog.Logger) *Labeller {
	if journal == nil {
		journal = storage.Nop{}
	}
	return &Labeller{
		issues:     issues,
		board:      board,
		journal:    journal,
		repository: repository,
		logger:     logger,
	}
}

// CardMoved brings the labels of the issue behind a moved card in line with
// the stage of its new column. Removals go first.
func (l *Labeller) CardMoved(ctx context.Context, move CardMove) (Delta, error) {
	if move.Action != "moved" {
		return Delta{}, nil
	}
	number, ok := move.Card().IssueNumber()
	if !ok {
		l.logger.Warn("no issue number in card content url", slog.Int64("card", move.CardID), slog.String("url", move.ContentURL))
		return Delta{}, nil
	}
	if slices.Contains(Blacklist, number) {
		return Delta{}, nil
	}
	l.logger.Info("card moved", slog.Int64("card", move.CardID), slog.Int("issue", number), slog.Int64("column", move.ColumnID))

	issue, err := l.issues.Issue(ctx, number)
	if err != nil {
		return Delta{}, fmt.Errorf("get issue #%d: %w", number, err)
	}

	delta := LabelDelta(l.board, move.ColumnID, issue.Labels)
	for _, label := range delta.Remove {
		if err := l.issues.RemoveLabel(ctx, number, label); err != nil {
			return delta, fmt.Errorf("remove label %q from issue #%d: %w", label, number, err)
		}
		l.logger.Info("removed label", slog.String("label", label), slog.Int("issue", number))
	}
	for _, label := range delta.Add {
		if err := l.issues.AddLabel(ctx, number, label); err != nil {
			return delta, fmt.Errorf("add label %q to issue #%d: %w", label, number, err)
		}
		l.logger.Info("added label", slog.String("label", label), slog.Int("issue", number))
	}

	if !delta.Empty() {
		detail := fmt.Sprintf("column %d: -%v +%v", move.ColumnID, delta.Remove, delta.Add)
		if err := l.journal.Record(ctx, storage.NewEntry(storage.KindLabelsChanged, l.repository, number, detail)); err != nil {
			l.logger.Error("could not write journal", slog.String("error", err.Error()))
		}
	}

	return delta, nil
}
