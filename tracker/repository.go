package tracker

import (
	"fmt"
	"regexp"
)

var repositoryName = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)

// SplitRepository validates an "owner/name" repository identifier.
func SplitRepository(repository string) (string, string, error) {
	m := repositoryName.FindStringSubmatch(repository)
	if m == nil {
		return "", "", fmt.Errorf("invalid repository %q, expected OWNER/NAME", repository)
	}
	return m[1], m[2], nil
}
