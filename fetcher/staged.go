package fetcher

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"ewintr.nl/captionsbot/model"
)

// CommandRunner executes external commands in a directory
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

type ExecRunner struct{}

func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

var (
	gitAddLine = regexp.MustCompile(`(?m)^add '(.+)'$`)
	yearFile   = regexp.MustCompile(`([0-9]+)/([^/]+)$`)
)

// StagedCaptions returns the caption files in dir that git would add, which
// are the ones downloaded or changed since the last commit.
func StagedCaptions(ctx context.Context, runner CommandRunner, dir string, format model.CaptionFormat) ([]model.Caption, error) {
	out, err := runner.Run(ctx, dir, "git", "add", "-n", ".")
	if err != nil {
		return nil, fmt.Errorf("list staged files in %s: %w", dir, err)
	}

	var captions []model.Caption
	for _, m := range gitAddLine.FindAllStringSubmatch(string(out), -1) {
		gitPath := m[1]
		if !strings.HasSuffix(gitPath, "."+string(format)) {
			continue
		}
		// git may prefix the path, but it always ends with the year
		// directory and the file name
		ym := yearFile.FindStringSubmatch(gitPath)
		if ym == nil {
			return nil, fmt.Errorf("bad caption path %q", gitPath)
		}
		caption, err := ReadCaptionFile(filepath.Join(dir, ym[1], ym[2]))
		if err != nil {
			return nil, err
		}
		captions = append(captions, caption)
	}

	return captions, nil
}
