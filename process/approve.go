package process

import (
	"context"
	"fmt"

	"ewintr.nl/captionsbot/model"
	"ewintr.nl/captionsbot/storage"
	"golang.org/x/exp/slog"
)

type CardMover interface {
	ListCards(ctx context.Context, column int64) ([]model.Card, error)
	MoveCard(ctx context.Context, card int64, column int64) error
}

type Approval struct {
	Issue  int
	Card   int64
	Column int64
}

type Approver struct {
	cards      CardMover
	board      model.Board
	journal    storage.Journal
	repository string
	dryRun     bool
	logger     *slog.Logger
}

func NewApprover(cards CardMover, board model.Board, journal storage.Journal, repository string, dryRun bool, logger *slog.Logger) *Approver {
	if journal == nil {
		journal = storage.Nop{}
	}
	return &Approver{
		cards:      cards,
		board:      board,
		journal:    journal,
		repository: repository,
		dryRun:     dryRun,
		logger:     logger,
	}
}

// Approve moves the cards of the issues matching the captions to the
// approval column of their language. Issues without a card on the pending
// columns are reported and skipped.
func (a *Approver) Approve(ctx context.Context, captions []model.Caption, issues []model.Issue) ([]Approval, error) {
	cards, err := a.pendingCards(ctx)
	if err != nil {
		return nil, err
	}

	approvals := []Approval{}
	done := map[int]bool{}
	for _, caption := range captions {
		issue, ok := MatchIssue(caption, issues)
		if !ok || done[issue.Number] {
			continue
		}
		done[issue.Number] = true

		lang := caption.NormalizedLanguage()
		column, ok := a.board.Approval(lang)
		if !ok {
			a.logger.Warn("unsupported language", slog.Int("issue", issue.Number), slog.String("language", lang))
			continue
		}
		card, ok := cards[issue.Number]
		if !ok {
			a.logger.Warn("issue has no pending card", slog.Int("issue", issue.Number))
			continue
		}

		approval := Approval{Issue: issue.Number, Card: card.ID, Column: column}
		if a.dryRun {
			a.logger.Info("would move card", slog.Int64("card", card.ID), slog.Int64("column", column))
			approvals = append(approvals, approval)
			continue
		}
		if err := a.cards.MoveCard(ctx, card.ID, column); err != nil {
			return approvals, fmt.Errorf("move card %d of issue #%d: %w", card.ID, issue.Number, err)
		}
		a.logger.Info("moved card", slog.Int64("card", card.ID), slog.Int("issue", issue.Number), slog.Int64("column", column))
		if err := a.journal.Record(ctx, storage.NewEntry(storage.KindCardMoved, a.repository, issue.Number, fmt.Sprintf("card %d to column %d", card.ID, column))); err != nil {
			a.logger.Error("could not write journal", slog.String("error", err.Error()))
		}
		approvals = append(approvals, approval)
	}

	return approvals, nil
}

// pendingCards indexes the cards of all but the last stage by issue number.
func (a *Approver) pendingCards(ctx context.Context) (map[int]model.Card, error) {
	cards := map[int]model.Card{}
	for _, column := range a.board.Pending() {
		list, err := a.cards.ListCards(ctx, column)
		if err != nil {
			return nil, fmt.Errorf("list cards of column %d: %w", column, err)
		}
		for _, card := range list {
			number, ok := card.IssueNumber()
			if !ok {
				a.logger.Warn("card has unparsable content url", slog.Int64("card", card.ID), slog.String("url", card.ContentURL))
				continue
			}
			cards[number] = card
		}
	}

	return cards, nil
}
