package tracker

import (
	"context"
	"strconv"

	"ewintr.nl/captionsbot/model"
)

// Board is the seam around the project board API. Only the card operations
// the workflow needs are exposed, so the board implementation can change
// without touching the reconciliation.
type Board interface {
	ListCards(ctx context.Context, column int64) ([]model.Card, error)
	CreateCard(ctx context.Context, column int64, issueID int64) (model.Card, error)
	MoveCard(ctx context.Context, card int64, column int64) error
}

// ProjectsPreviewAccept is the media type of the classic projects API, which
// only ever shipped as a preview.
const ProjectsPreviewAccept = "application/vnd.github.inertia-preview+json"

// ProjectsV1 implements Board on top of the classic projects API.
type ProjectsV1 struct {
	gh *GitHub
}

func NewProjectsV1(gh *GitHub) *ProjectsV1 {
	return &ProjectsV1{gh: gh}
}

type ghCard struct {
	ID         int64  `json:"id"`
	ContentURL string `json:"content_url"`
	ColumnURL  string `json:"column_url"`
}

func (p *ProjectsV1) ListCards(ctx context.Context, column int64) ([]model.Card, error) {
	cards := []model.Card{}
	for page := 1; ; page++ {
		var result []ghCard
		resp, err := p.gh.http.R().
			SetContext(ctx).
			SetHeader("Accept", ProjectsPreviewAccept).
			SetPathParam("column", strconv.FormatInt(column, 10)).
			SetQueryParams(map[string]string{
				"per_page": strconv.Itoa(perPage),
				"page":     strconv.Itoa(page),
			}).
			SetResult(&result).
			Get("/projects/columns/{column}/cards")
		if err := check(resp, err); err != nil {
			return nil, err
		}

		for _, c := range result {
			cards = append(cards, model.Card{ID: c.ID, ColumnID: column, ContentURL: c.ContentURL})
		}
		if len(result) < perPage {
			return cards, nil
		}
	}
}

func (p *ProjectsV1) CreateCard(ctx context.Context, column int64, issueID int64) (model.Card, error) {
	if err := p.gh.limiter.Wait(ctx); err != nil {
		return model.Card{}, err
	}
	var result ghCard
	resp, err := p.gh.http.R().
		SetContext(ctx).
		SetHeader("Accept", ProjectsPreviewAccept).
		SetPathParam("column", strconv.FormatInt(column, 10)).
		SetBody(map[string]any{
			"content_id":   issueID,
			"content_type": "Issue",
		}).
		SetResult(&result).
		Post("/projects/columns/{column}/cards")
	if err := check(resp, err); err != nil {
		return model.Card{}, err
	}

	return model.Card{ID: result.ID, ColumnID: column, ContentURL: result.ContentURL}, nil
}

func (p *ProjectsV1) MoveCard(ctx context.Context, card int64, column int64) error {
	if err := p.gh.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := p.gh.http.R().
		SetContext(ctx).
		SetHeader("Accept", ProjectsPreviewAccept).
		SetPathParam("card", strconv.FormatInt(card, 10)).
		SetBody(map[string]any{
			"position":  "top",
			"column_id": column,
		}).
		Post("/projects/columns/cards/{card}/moves")
	return check(resp, err)
}
