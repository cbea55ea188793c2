package model_test

import (
	"strings"
	"testing"
	"time"

	"ewintr.nl/captionsbot/model"
)

func TestIssueTitle(t *testing.T) {
	l := model.Language{Short: "fr"}
	if act := l.IssueTitle(model.Video{Title: "Foo"}); act != "[subtitles] [fr] Foo" {
		t.Errorf("unexpected title %q", act)
	}
}

func TestIssueBody(t *testing.T) {
	d := 90 * time.Second
	v := model.Video{ID: "ABC123", Title: "Foo", PublishedAt: time.Date(2017, 4, 3, 0, 0, 0, 0, time.UTC), Duration: &d}
	for _, l := range model.DefaultLanguages() {
		t.Run(l.Short, func(t *testing.T) {
			body, err := l.IssueBody(v)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, exp := range []string{"## Foo", "https://www.youtube.com/watch?v=ABC123", "0:01:30", "lang=" + l.Short} {
				if !strings.Contains(body, exp) {
					t.Errorf("body misses %q:\n%s", exp, body)
				}
			}
		})
	}
}

func TestSelectLanguages(t *testing.T) {
	all := model.DefaultLanguages()

	got, err := model.SelectLanguages(all, nil)
	if err != nil || len(got) != len(all) {
		t.Fatalf("exp all languages, got %d, %v", len(got), err)
	}

	got, err = model.SelectLanguages(all, []string{"en", "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Short != "fr" || got[1].Short != "en" {
		t.Errorf("exp fr, en in configured order, got %+v", got)
	}

	if _, err := model.SelectLanguages(all, []string{"xx"}); err == nil {
		t.Errorf("exp error for unsupported language")
	}
}

func TestDefaultLanguagesStartInFirstStage(t *testing.T) {
	first := model.DefaultBoard()[0]
	for _, l := range model.DefaultLanguages() {
		if !first.HasColumn(l.Column) {
			t.Errorf("language %s starts in column %d outside of the first stage", l.Short, l.Column)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	for input, exp := range map[string]string{
		"en-GB": "en",
		"en-US": "en",
		"en":    "en",
		"pt_BR": "pt",
		"FR":    "fr",
	} {
		if act := model.NormalizeLanguage(input); act != exp {
			t.Errorf("%s: exp %q, got %q", input, exp, act)
		}
	}
}

func TestCardIssueNumber(t *testing.T) {
	for _, tc := range []struct {
		url string
		exp int
		ok  bool
	}{
		{url: "https://api.github.com/repos/o/r/issues/229", exp: 229, ok: true},
		{url: "", ok: false},
		{url: "https://api.github.com/repos/o/r/issues/", ok: false},
	} {
		n, ok := model.Card{ContentURL: tc.url}.IssueNumber()
		if ok != tc.ok || n != tc.exp {
			t.Errorf("%q: exp %d/%v, got %d/%v", tc.url, tc.exp, tc.ok, n, ok)
		}
	}
}

func TestBoard(t *testing.T) {
	b := model.DefaultBoard()
	if len(b) != 5 {
		t.Fatalf("exp 5 stages, got %d", len(b))
	}
	if c, ok := b.Approval("fr"); !ok || c != 398417 {
		t.Errorf("unexpected fr approval column %d", c)
	}
	if _, ok := b.Approval("xx"); ok {
		t.Errorf("exp no approval column for unknown language")
	}
	pending := b.Pending()
	if len(pending) != 4*5 {
		t.Errorf("exp 20 pending columns, got %d", len(pending))
	}
	for _, c := range pending {
		if b[4].HasColumn(c) {
			t.Errorf("approval column %d listed as pending", c)
		}
	}
}
