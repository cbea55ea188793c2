package model

import (
	"regexp"
	"strconv"
)

// Issue is a tracking issue on GitHub. ID is the global database id used by
// project cards, Number the per-repository one used everywhere else.
type Issue struct {
	ID     int64
	Number int
	Title  string
	Body   string
	Labels []string
}

func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// Card is a project board card. ContentURL points to the API url of the
// issue it wraps and is empty for standalone note cards.
type Card struct {
	ID         int64
	ColumnID   int64
	ContentURL string
}

var trailingNumber = regexp.MustCompile(`([0-9]+)$`)

// IssueNumber extracts the issue number from the card content url.
func (c Card) IssueNumber() (int, bool) {
	m := trailingNumber.FindStringSubmatch(c.ContentURL)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
