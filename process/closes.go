package process

import (
	"fmt"
	"regexp"
	"strings"

	"ewintr.nl/captionsbot/model"
)

var watchURLRegexp = regexp.MustCompile(`https://www\.youtube\.com/watch\?v=([a-zA-Z0-9._-]+)`)

// bodyVideoID returns the id of the first video linked in an issue body.
func bodyVideoID(body string) (model.YoutubeVideoID, bool) {
	m := watchURLRegexp.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return model.YoutubeVideoID(m[1]), true
}

// MatchIssue finds the issue tracking the caption: its body links the
// caption's video and its title carries the caption's language.
func MatchIssue(caption model.Caption, issues []model.Issue) (model.Issue, bool) {
	prefix := model.IssueTitlePrefix(caption.NormalizedLanguage())
	for _, issue := range issues {
		id, ok := bodyVideoID(issue.Body)
		if !ok || id != caption.VideoID {
			continue
		}
		if strings.HasPrefix(issue.Title, prefix) {
			return issue, true
		}
	}

	return model.Issue{}, false
}

// ClosedIssues lists the numbers of the issues closed by the captions, in
// caption order and without duplicates.
func ClosedIssues(captions []model.Caption, issues []model.Issue) []int {
	seen := map[int]bool{}
	numbers := []int{}
	for _, caption := range captions {
		issue, ok := MatchIssue(caption, issues)
		if !ok || seen[issue.Number] {
			continue
		}
		seen[issue.Number] = true
		numbers = append(numbers, issue.Number)
	}

	return numbers
}

func FormatCloses(numbers []int) string {
	var b strings.Builder
	for _, n := range numbers {
		fmt.Fprintf(&b, " Closes #%d.", n)
	}
	return b.String()
}
