package process

import (
	"context"
	"fmt"

	"ewintr.nl/captionsbot/model"
	"ewintr.nl/captionsbot/storage"
	"golang.org/x/exp/slog"
)

type IssueWriter interface {
	CreateIssue(ctx context.Context, title, body string, labels []string) (model.Issue, error)
}

type CardPlacer interface {
	CreateCard(ctx context.Context, column int64, issueID int64) (model.Card, error)
}

type CardFailure struct {
	Issue model.Issue
	Err   error
}

type Result struct {
	Created      []model.Issue
	Skipped      int
	Live         []model.Video
	CardFailures []CardFailure
}

type IssueCreator struct {
	issues     IssueWriter
	cards      CardPlacer
	journal    storage.Journal
	repository string
	dryRun     bool
	logger     *slog.Logger
}

func NewIssueCreator(issues IssueWriter, cards CardPlacer, journal storage.Journal, repository string, dryRun bool, logger *slog.Logger) *IssueCreator {
	if journal == nil {
		journal = storage.Nop{}
	}
	return &IssueCreator{
		issues:     issues,
		cards:      cards,
		journal:    journal,
		repository: repository,
		dryRun:     dryRun,
		logger:     logger,
	}
}

// CreateMissing opens one issue for every (video, language) pair that has no
// issue with the exact same title yet. Live videos are left out until they
// have a duration. A failed card placement does not undo the issue.
func (ic *IssueCreator) CreateMissing(ctx context.Context, videos []model.Video, languages []model.Language, issues []model.Issue) (Result, error) {
	titles := make(map[string]bool, len(issues))
	for _, issue := range issues {
		titles[issue.Title] = true
	}

	var res Result
	for _, video := range videos {
		if video.IsLive() {
			ic.logger.Info("skipping live video", slog.String("video", video.String()))
			res.Live = append(res.Live, video)
			continue
		}

		for _, lang := range languages {
			title := lang.IssueTitle(video)
			if titles[title] {
				ic.logger.Debug("issue already exists", slog.String("title", title))
				res.Skipped++
				continue
			}

			body, err := lang.IssueBody(video)
			if err != nil {
				return res, fmt.Errorf("render body for %s: %w", title, err)
			}
			labels := []string{lang.Label, model.InitialStageLabel}

			if ic.dryRun {
				ic.logger.Info("would create issue", slog.String("title", title))
				res.Created = append(res.Created, model.Issue{Title: title, Body: body, Labels: labels})
				titles[title] = true
				continue
			}

			issue, err := ic.issues.CreateIssue(ctx, title, body, labels)
			if err != nil {
				return res, fmt.Errorf("create issue %q: %w", title, err)
			}
			titles[title] = true
			res.Created = append(res.Created, issue)
			ic.logger.Info("created issue", slog.Int("number", issue.Number), slog.String("title", title))
			ic.record(ctx, storage.NewEntry(storage.KindIssueCreated, ic.repository, issue.Number, title))

			card, err := ic.cards.CreateCard(ctx, lang.Column, issue.ID)
			if err != nil {
				ic.logger.Error("could not place card", slog.Int("number", issue.Number), slog.String("error", err.Error()))
				res.CardFailures = append(res.CardFailures, CardFailure{Issue: issue, Err: err})
				continue
			}
			ic.logger.Debug("placed card", slog.Int64("card", card.ID), slog.Int64("column", lang.Column))
		}
	}

	return res, nil
}

func (ic *IssueCreator) record(ctx context.Context, entry storage.Entry) {
	if err := ic.journal.Record(ctx, entry); err != nil {
		ic.logger.Error("could not write journal", slog.String("error", err.Error()))
	}
}
