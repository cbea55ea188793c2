// Package tracker talks to the GitHub issue tracker of the subtitles
// repository.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ewintr.nl/captionsbot/model"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.github.com"
	perPage        = 100
)

var ErrNotFound = errors.New("not found")

// APIError is a non successful response of the GitHub API.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github %s %s: %d; body: %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

// ContentCreationLimit paces mutating requests to the 80 per minute GitHub
// allows for content creation.
func ContentCreationLimit() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/80), 1)
}

type GitHub struct {
	http    *resty.Client
	owner   string
	repo    string
	limiter *rate.Limiter
}

type Option func(*GitHub)

func WithBaseURL(url string) Option {
	return func(g *GitHub) {
		g.http.SetBaseURL(url)
	}
}

func WithLimiter(l *rate.Limiter) Option {
	return func(g *GitHub) {
		g.limiter = l
	}
}

// NewGitHub returns a client for the repository "owner/name".
func NewGitHub(repository, token string, opts ...Option) (*GitHub, error) {
	owner, repo, err := SplitRepository(repository)
	if err != nil {
		return nil, err
	}
	c := resty.New().
		SetTimeout(30*time.Second).
		SetBaseURL(DefaultBaseURL).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("User-Agent", "captionsbot")
	if token != "" {
		c.SetAuthScheme("token").SetAuthToken(token)
	}
	g := &GitHub{
		http:    c,
		owner:   owner,
		repo:    repo,
		limiter: ContentCreationLimit(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GitHub) Repository() string {
	return g.owner + "/" + g.repo
}

type ghLabel struct {
	Name string `json:"name"`
}

type ghIssue struct {
	ID          int64     `json:"id"`
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Labels      []ghLabel `json:"labels"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

func (i ghIssue) toModel() model.Issue {
	labels := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		labels = append(labels, l.Name)
	}
	return model.Issue{
		ID:     i.ID,
		Number: i.Number,
		Title:  i.Title,
		Body:   i.Body,
		Labels: labels,
	}
}

// Issues lists all open issues of the repository. Pull requests, which the
// API returns as issues too, are left out.
func (g *GitHub) Issues(ctx context.Context) ([]model.Issue, error) {
	issues := []model.Issue{}
	for page := 1; ; page++ {
		var result []ghIssue
		resp, err := g.http.R().
			SetContext(ctx).
			SetPathParams(map[string]string{"owner": g.owner, "repo": g.repo}).
			SetQueryParams(map[string]string{
				"state":    "open",
				"per_page": strconv.Itoa(perPage),
				"page":     strconv.Itoa(page),
			}).
			SetResult(&result).
			Get("/repos/{owner}/{repo}/issues")
		if err := check(resp, err); err != nil {
			return nil, err
		}

		for _, i := range result {
			if i.PullRequest != nil {
				continue
			}
			issues = append(issues, i.toModel())
		}
		if len(result) < perPage {
			return issues, nil
		}
	}
}

func (g *GitHub) Issue(ctx context.Context, number int) (model.Issue, error) {
	var result ghIssue
	resp, err := g.http.R().
		SetContext(ctx).
		SetPathParams(g.issueParams(number)).
		SetResult(&result).
		Get("/repos/{owner}/{repo}/issues/{number}")
	if err := check(resp, err); err != nil {
		return model.Issue{}, err
	}

	return result.toModel(), nil
}

func (g *GitHub) CreateIssue(ctx context.Context, title, body string, labels []string) (model.Issue, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return model.Issue{}, err
	}
	var result ghIssue
	resp, err := g.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"owner": g.owner, "repo": g.repo}).
		SetBody(map[string]any{
			"title":  title,
			"body":   body,
			"labels": labels,
		}).
		SetResult(&result).
		Post("/repos/{owner}/{repo}/issues")
	if err := check(resp, err); err != nil {
		return model.Issue{}, err
	}

	return result.toModel(), nil
}

func (g *GitHub) AddLabel(ctx context.Context, number int, label string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := g.http.R().
		SetContext(ctx).
		SetPathParams(g.issueParams(number)).
		SetBody(map[string][]string{"labels": {label}}).
		Post("/repos/{owner}/{repo}/issues/{number}/labels")
	return check(resp, err)
}

func (g *GitHub) RemoveLabel(ctx context.Context, number int, label string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	params := g.issueParams(number)
	params["label"] = label
	resp, err := g.http.R().
		SetContext(ctx).
		SetPathParams(params).
		Delete("/repos/{owner}/{repo}/issues/{number}/labels/{label}")
	return check(resp, err)
}

func (g *GitHub) issueParams(number int) map[string]string {
	return map[string]string{
		"owner":  g.owner,
		"repo":   g.repo,
		"number": strconv.Itoa(number),
	}
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &APIError{
			Method: resp.Request.Method,
			Path:   resp.Request.URL,
			Status: resp.StatusCode(),
			Body:   resp.String(),
		}
	}
	return nil
}
