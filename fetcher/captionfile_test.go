package fetcher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ewintr.nl/captionsbot/fetcher"
	"ewintr.nl/captionsbot/model"
)

const vttPayload = "WEBVTT\nKind: captions\nLanguage: fr\n\n00:00:00.000 --> 00:00:02.000\nBonjour\n"

func TestWriteCaptionFileVTT(t *testing.T) {
	dir := t.TempDir()
	video := model.Video{ID: "ABC123", Title: "Débat Final", PublishedAt: time.Date(2017, 4, 3, 18, 0, 0, 0, time.UTC)}
	caption := model.Caption{ID: "cap1", VideoID: "ABC123", Language: "fr", LastUpdated: time.Date(2017, 4, 5, 10, 0, 0, 0, time.UTC)}

	path, err := fetcher.WriteCaptionFile(dir, video, caption, model.FormatVTT, vttPayload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp := filepath.Join(dir, "2017", "2017-04-03.debat-final.fr.cap1.vtt"); path != exp {
		t.Errorf("exp path %s, got %s", exp, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exp := "WEBVTT\nKind: captions\nLanguage: fr\nLastUpdated: 2017-04-05T10:00:00Z\nCaption: cap1\nVideo: ABC123\n\n00:00:00.000 --> 00:00:02.000\nBonjour\n"
	if string(content) != exp {
		t.Errorf("unexpected content:\n%s", content)
	}

	read, err := fetcher.ReadCaptionFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if read.ID != "cap1" || read.VideoID != "ABC123" || read.Language != "fr" || !read.LastUpdated.Equal(caption.LastUpdated) || read.Path != path {
		t.Errorf("unexpected caption %+v", read)
	}
}

func TestWriteCaptionFileSRT(t *testing.T) {
	dir := t.TempDir()
	video := model.Video{ID: "ABC123", Title: "Foo", PublishedAt: time.Date(2017, 4, 3, 18, 0, 0, 0, time.UTC)}
	caption := model.Caption{ID: "cap2", Language: "en-GB", LastUpdated: time.Date(2017, 4, 5, 10, 0, 0, 0, time.UTC)}

	path, err := fetcher.WriteCaptionFile(dir, video, caption, model.FormatSRT, "1\n00:00:00,000 --> 00:00:02,000\nHello\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	read, err := fetcher.ReadCaptionFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if read.Language != "en-GB" || read.VideoID != "ABC123" {
		t.Errorf("unexpected caption %+v", read)
	}
	content, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(content), "\n\n1\n00:00:00,000 --> 00:00:02,000\nHello\n") {
		t.Errorf("payload not separated from header:\n%s", content)
	}
}

func TestReadCaptionFileStopsAtBlankLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.vtt")
	content := "WEBVTT\nKind: captions\nLanguage: fr\nLastUpdated: 2017-04-05T10:00:00Z\nCaption: cap1\n\nVideo: ABC123\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := fetcher.ReadCaptionFile(path)
	if !errors.Is(err, fetcher.ErrMissingHeader) {
		t.Errorf("exp ErrMissingHeader for Video after the blank line, got %v", err)
	}
}

type fakeRunner struct {
	out  string
	dir  string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.dir = dir
	f.args = append([]string{name}, args...)
	return []byte(f.out), nil
}

func TestStagedCaptions(t *testing.T) {
	dir := t.TempDir()
	video := model.Video{ID: "ABC123", Title: "Foo", PublishedAt: time.Date(2017, 4, 3, 18, 0, 0, 0, time.UTC)}
	caption := model.Caption{ID: "cap1", Language: "fr", LastUpdated: time.Date(2017, 4, 5, 10, 0, 0, 0, time.UTC)}
	path, err := fetcher.WriteCaptionFile(dir, video, caption, model.FormatVTT, vttPayload)
	if err != nil {
		t.Fatal(err)
	}
	rel, _ := filepath.Rel(dir, path)

	runner := &fakeRunner{out: "add 'subtitles/" + filepath.ToSlash(rel) + "'\nadd 'README.md'\nadd 'subtitles/2017/other.srt'\n"}
	captions, err := fetcher.StagedCaptions(context.Background(), runner, dir, model.FormatVTT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.dir != dir || strings.Join(runner.args, " ") != "git add -n ." {
		t.Errorf("unexpected command %v in %s", runner.args, runner.dir)
	}
	if len(captions) != 1 || captions[0].ID != "cap1" || captions[0].VideoID != "ABC123" {
		t.Errorf("unexpected captions %+v", captions)
	}
}

func TestStagedCaptionsNothingStaged(t *testing.T) {
	captions, err := fetcher.StagedCaptions(context.Background(), &fakeRunner{}, t.TempDir(), model.FormatVTT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(captions) != 0 {
		t.Errorf("exp no captions, got %+v", captions)
	}
}
