package fetcher

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"ewintr.nl/captionsbot/model"
)

var ErrMissingHeader = errors.New("missing caption header")

var headerLine = regexp.MustCompile(`^(\w+): +(.+)$`)

// ReadCaptionFile reads the metadata header of a downloaded caption file. The
// header is made of "Key: value" lines and ends at the first blank line.
func ReadCaptionFile(path string) (model.Caption, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Caption{}, err
	}
	defer f.Close()

	metas := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		if m := headerLine.FindStringSubmatch(line); m != nil {
			metas[m[1]] = strings.TrimSpace(m[2])
		}
	}
	if err := scanner.Err(); err != nil {
		return model.Caption{}, fmt.Errorf("read %s: %w", path, err)
	}

	for _, key := range []string{"Caption", "Video", "Language", "LastUpdated"} {
		if metas[key] == "" {
			return model.Caption{}, fmt.Errorf("%w %q in %s", ErrMissingHeader, key, path)
		}
	}
	updated, err := time.Parse(time.RFC3339, metas["LastUpdated"])
	if err != nil {
		return model.Caption{}, fmt.Errorf("%s: invalid LastUpdated %q: %w", path, metas["LastUpdated"], err)
	}

	return model.Caption{
		ID:          metas["Caption"],
		VideoID:     model.YoutubeVideoID(metas["Video"]),
		Language:    metas["Language"],
		LastUpdated: updated,
		Path:        path,
	}, nil
}

// CaptionPath is <dir>/<year>/<date>.<slug>.<language>.<caption id>.<format>.
func CaptionPath(dir string, video model.Video, caption model.Caption, format model.CaptionFormat) string {
	name := fmt.Sprintf("%s.%s.%s.%s.%s",
		video.PublishedAt.Format("2006-01-02"), video.Slug(), caption.Language, caption.ID, format)
	return filepath.Join(dir, video.PublishedAt.Format("2006"), name)
}

// WriteCaptionFile stores a downloaded caption with its metadata header and
// returns the path it was written to.
//
// YouTube starts WebVTT files with three comment lines (WEBVTT, Kind and
// Language), the metadata is appended to those. Other formats get a header
// of their own.
func WriteCaptionFile(dir string, video model.Video, caption model.Caption, format model.CaptionFormat, payload string) (string, error) {
	metas := []string{
		"LastUpdated: " + caption.LastUpdated.UTC().Format(time.RFC3339),
		"Caption: " + caption.ID,
		"Video: " + string(video.ID),
	}

	var content string
	if format == model.FormatVTT {
		lines := strings.Split(payload, "\n")
		n := 3
		if len(lines) < n {
			n = len(lines)
		}
		header := append(append([]string{}, lines[:n]...), metas...)
		content = strings.Join(header, "\n") + "\n" + strings.Join(lines[n:], "\n")
	} else {
		header := append([]string{"Kind: captions", "Language: " + caption.Language}, metas...)
		content = strings.Join(header, "\n") + "\n\n" + payload
	}

	path := CaptionPath(dir, video, caption, format)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create caption directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write caption %s: %w", path, err)
	}

	return path, nil
}
