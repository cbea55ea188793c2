package process

import (
	"context"
	"testing"

	"ewintr.nl/captionsbot/model"
	"ewintr.nl/captionsbot/storage"
)

func TestCreateMissing(t *testing.T) {
	langs, err := model.SelectLanguages(model.DefaultLanguages(), []string{"fr", "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	foo := video("abc", "Foo", 12)

	t.Run("creates one issue per language", func(t *testing.T) {
		tr := newFakeTracker()
		journal := &storage.Memory{}
		ic := NewIssueCreator(tr, tr, journal, "o/r", false, discardLogger())

		res, err := ic.CreateMissing(context.Background(), []model.Video{foo}, langs, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Created) != 2 {
			t.Fatalf("exp 2 issues, got %d", len(res.Created))
		}
		if res.Created[0].Title != "[subtitles] [fr] Foo" {
			t.Errorf("exp fr title, got %q", res.Created[0].Title)
		}
		labels := res.Created[1].Labels
		if len(labels) != 2 || labels[0] != langs[1].Label || labels[1] != model.InitialStageLabel {
			t.Errorf("exp language and initial stage labels, got %v", labels)
		}
		if len(tr.placed) != 2 || tr.placed[0] != langs[0].Column || tr.placed[1] != langs[1].Column {
			t.Errorf("exp cards in initial columns, got %v", tr.placed)
		}
		if len(journal.Entries) != 2 {
			t.Errorf("exp 2 journal entries, got %d", len(journal.Entries))
		}
	})

	t.Run("existing issue is skipped", func(t *testing.T) {
		tr := newFakeTracker()
		ic := NewIssueCreator(tr, tr, nil, "o/r", false, discardLogger())
		existing := []model.Issue{{Number: 7, Title: "[subtitles] [fr] Foo"}}

		res, err := ic.CreateMissing(context.Background(), []model.Video{foo}, langs, existing)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Created) != 1 || res.Created[0].Title != "[subtitles] [en] Foo" {
			t.Errorf("exp only en issue, got %v", res.Created)
		}
		if res.Skipped != 1 {
			t.Errorf("exp 1 skipped, got %d", res.Skipped)
		}
	})

	t.Run("second run creates nothing", func(t *testing.T) {
		tr := newFakeTracker()
		ic := NewIssueCreator(tr, tr, nil, "o/r", false, discardLogger())
		first, err := ic.CreateMissing(context.Background(), []model.Video{foo}, langs, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := ic.CreateMissing(context.Background(), []model.Video{foo}, langs, first.Created)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second.Created) != 0 {
			t.Errorf("exp no issues, got %v", second.Created)
		}
		if len(tr.created) != 2 {
			t.Errorf("exp 2 create calls in total, got %d", len(tr.created))
		}
	})

	t.Run("duplicate videos in input", func(t *testing.T) {
		tr := newFakeTracker()
		ic := NewIssueCreator(tr, tr, nil, "o/r", false, discardLogger())
		res, err := ic.CreateMissing(context.Background(), []model.Video{foo, foo}, langs, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Created) != 2 {
			t.Errorf("exp 2 issues, got %d", len(res.Created))
		}
	})

	t.Run("live video", func(t *testing.T) {
		tr := newFakeTracker()
		ic := NewIssueCreator(tr, tr, nil, "o/r", false, discardLogger())
		live := video("live", "Live", 0)
		res, err := ic.CreateMissing(context.Background(), []model.Video{live}, langs, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Created) != 0 || len(tr.calls) != 0 {
			t.Errorf("exp no calls, got %v", tr.calls)
		}
		if len(res.Live) != 1 {
			t.Errorf("exp live video reported, got %v", res.Live)
		}
	})

	t.Run("card failure does not abort", func(t *testing.T) {
		tr := newFakeTracker()
		tr.failCards = true
		ic := NewIssueCreator(tr, tr, nil, "o/r", false, discardLogger())
		res, err := ic.CreateMissing(context.Background(), []model.Video{foo}, langs, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Created) != 2 {
			t.Errorf("exp 2 issues, got %d", len(res.Created))
		}
		if len(res.CardFailures) != 2 {
			t.Errorf("exp 2 card failures, got %d", len(res.CardFailures))
		}
	})

	t.Run("create failure aborts", func(t *testing.T) {
		tr := newFakeTracker()
		tr.failCreate = true
		ic := NewIssueCreator(tr, tr, nil, "o/r", false, discardLogger())
		if _, err := ic.CreateMissing(context.Background(), []model.Video{foo}, langs, nil); err == nil {
			t.Errorf("exp error, got nil")
		}
	})

	t.Run("dry run", func(t *testing.T) {
		tr := newFakeTracker()
		ic := NewIssueCreator(tr, tr, nil, "o/r", true, discardLogger())
		res, err := ic.CreateMissing(context.Background(), []model.Video{foo}, langs, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Created) != 2 {
			t.Errorf("exp 2 planned issues, got %d", len(res.Created))
		}
		if len(tr.calls) != 0 || len(tr.placed) != 0 {
			t.Errorf("exp no mutating calls, got %v %v", tr.calls, tr.placed)
		}
	})
}
