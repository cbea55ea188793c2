package process

import (
	"context"
	"strings"
	"testing"

	"ewintr.nl/captionsbot/model"
	"ewintr.nl/captionsbot/storage"
)

func TestLabelDelta(t *testing.T) {
	board := model.DefaultBoard()
	for _, tc := range []struct {
		name    string
		column  int64
		current []string
		exp     Delta
	}{
		{
			name:    "second to approved",
			column:  398417,
			current: []string{"⚑ Français", model.StageSecond},
			exp:     Delta{Remove: []string{model.StageSecond}, Add: []string{model.StageApproved}},
		},
		{
			name:    "already right",
			column:  654829,
			current: []string{model.StageFirst},
			exp:     Delta{},
		},
		{
			name:    "several stale stages",
			column:  387592,
			current: []string{model.StageAwaiting, model.StageFirst},
			exp:     Delta{Remove: []string{model.StageAwaiting, model.StageFirst}, Add: []string{model.StageWriting}},
		},
		{
			name:    "unknown column clears stages",
			column:  42,
			current: []string{model.StageAwaiting, "other"},
			exp:     Delta{Remove: []string{model.StageAwaiting}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			act := LabelDelta(board, tc.column, tc.current)
			if strings.Join(act.Remove, "|") != strings.Join(tc.exp.Remove, "|") {
				t.Errorf("remove: exp %v, got %v", tc.exp.Remove, act.Remove)
			}
			if strings.Join(act.Add, "|") != strings.Join(tc.exp.Add, "|") {
				t.Errorf("add: exp %v, got %v", tc.exp.Add, act.Add)
			}
		})
	}
}

func TestLabellerCardMoved(t *testing.T) {
	issue := model.Issue{Number: 42, Labels: []string{"⚑ English", model.StageWriting}}
	ctx := context.Background()

	t.Run("removes before adding", func(t *testing.T) {
		tr := newFakeTracker(issue)
		journal := &storage.Memory{}
		l := NewLabeller(tr, model.DefaultBoard(), journal, "o/r", discardLogger())
		_, err := l.CardMoved(ctx, CardMove{Action: "moved", CardID: 5, ColumnID: 387597, ContentURL: "https://api.github.com/repos/o/r/issues/42"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		exp := []string{"remove #42 " + model.StageWriting, "add #42 " + model.StageSecond}
		if strings.Join(tr.calls, "|") != strings.Join(exp, "|") {
			t.Errorf("exp %v, got %v", exp, tr.calls)
		}
		if len(journal.Entries) != 1 || journal.Entries[0].Kind != storage.KindLabelsChanged {
			t.Errorf("exp one labels entry, got %v", journal.Entries)
		}
	})

	for _, tc := range []struct {
		name string
		move CardMove
	}{
		{name: "other action", move: CardMove{Action: "created", ColumnID: 387597, ContentURL: "https://api.github.com/repos/o/r/issues/42"}},
		{name: "note card", move: CardMove{Action: "moved", ColumnID: 387597}},
		{name: "blacklisted", move: CardMove{Action: "moved", ColumnID: 387597, ContentURL: "https://api.github.com/repos/o/r/issues/1"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tr := newFakeTracker(issue, model.Issue{Number: 1})
			l := NewLabeller(tr, model.DefaultBoard(), nil, "o/r", discardLogger())
			if _, err := l.CardMoved(ctx, tc.move); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tr.calls) != 0 {
				t.Errorf("exp no calls, got %v", tr.calls)
			}
		})
	}

	t.Run("missing issue", func(t *testing.T) {
		tr := newFakeTracker()
		l := NewLabeller(tr, model.DefaultBoard(), nil, "o/r", discardLogger())
		if _, err := l.CardMoved(ctx, CardMove{Action: "moved", ColumnID: 1, ContentURL: "https://api.github.com/repos/o/r/issues/9"}); err == nil {
			t.Errorf("exp error, got nil")
		}
	})
}
