package tracker_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"ewintr.nl/captionsbot/tracker"
)

func TestProjectsV1(t *testing.T) {
	gh := newTestGitHub(t, func(w http.ResponseWriter, r *http.Request) {
		if act := r.Header.Get("Accept"); act != tracker.ProjectsPreviewAccept {
			t.Errorf("unexpected accept header %q", act)
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/projects/columns/398412/cards":
			fmt.Fprint(w, `[{"id":1,"content_url":"https://api.github.com/repos/owner/subs/issues/12"},{"id":2,"note":"standalone"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/projects/columns/910796/cards":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["content_id"] != float64(9001) || body["content_type"] != "Issue" {
				t.Errorf("unexpected card body %v", body)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":77,"content_url":"https://api.github.com/repos/owner/subs/issues/42"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/projects/columns/cards/1/moves":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["position"] != "top" || body["column_id"] != float64(398417) {
				t.Errorf("unexpected move body %v", body)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	board := tracker.NewProjectsV1(gh)
	ctx := context.Background()

	cards, err := board.ListCards(ctx, 398412)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 || cards[0].ColumnID != 398412 {
		t.Fatalf("unexpected cards %+v", cards)
	}
	if n, ok := cards[0].IssueNumber(); !ok || n != 12 {
		t.Errorf("exp issue 12, got %d", n)
	}
	if _, ok := cards[1].IssueNumber(); ok {
		t.Errorf("exp standalone card without issue")
	}

	card, err := board.CreateCard(ctx, 910796, 9001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.ID != 77 {
		t.Errorf("unexpected card %+v", card)
	}

	if err := board.MoveCard(ctx, 1, 398417); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
