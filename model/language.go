package model

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Language is one target language of the subtitling effort. Column is the
// board column new cards are placed in.
type Language struct {
	Short    string
	Label    string
	Column   int64
	Template string
}

const titlePrefix = "[subtitles] "

// IssueTitlePrefix is the start every issue title of the language shares.
func IssueTitlePrefix(short string) string {
	return titlePrefix + "[" + short + "]"
}

// IssueTitle is the correlation key between a video and its tracking issue.
func (l Language) IssueTitle(video Video) string {
	return IssueTitlePrefix(l.Short) + " " + video.Title
}

func (l Language) IssueBody(video Video) (string, error) {
	tpl, err := template.New(l.Short).Parse(l.Template)
	if err != nil {
		return "", fmt.Errorf("parse %s issue template: %w", l.Short, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, video); err != nil {
		return "", fmt.Errorf("render %s issue template: %w", l.Short, err)
	}
	return buf.String(), nil
}

// SelectLanguages returns the languages matching the given short codes, in
// the order of all. An empty selection returns all of them.
func SelectLanguages(all []Language, shorts []string) ([]Language, error) {
	if len(shorts) == 0 {
		return all, nil
	}
	wanted := make(map[string]bool, len(shorts))
	for _, s := range shorts {
		s = strings.TrimSpace(s)
		found := false
		for _, l := range all {
			if l.Short == s {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unsupported language %q", s)
		}
		wanted[s] = true
	}

	selected := make([]Language, 0, len(wanted))
	for _, l := range all {
		if wanted[l.Short] {
			selected = append(selected, l)
		}
	}
	return selected, nil
}

const issueTemplateFR = `
## {{.Title}}

&nbsp;          | Info
--------------- | ---------------
**Date**        | {{.DayFR}}
**Durée**       | {{.DurationString}} :clock7:
**Langue**      | Français :fr:
**Vidéo**       | [Voir dans YouTube :arrow_upper_right:]({{.URL}})
**Sous-titres** | [Éditer dans YouTube :arrow_upper_right:](https://www.youtube.com/timedtext_editor?v={{.ID}}&tab=captions&bl=vmp&action_mde_edit_form=1&lang=fr&ui=hd)
`

const issueTemplateEN = `
## {{.Title}}

&nbsp;        | Info
------------- | -------------
**Date**      | {{.DayEN}}
**Duration**  | {{.DurationString}} :clock7:
**Language**  | English :gb:
**Video**     | [See it on YouTube :arrow_upper_right:]({{.URL}})
**Subtitles** | [Edit them in YouTube :arrow_upper_right:](https://www.youtube.com/timedtext_editor?v={{.ID}}&tab=captions&bl=vmp&action_mde_edit_form=1&lang=en&ui=hd)
`

const issueTemplateDE = `
## {{.Title}}

&nbsp;         | Info
-------------- | -------------
**Datum**      | {{.DayDE}}
**Dauer**      | {{.DurationString}} :clock7:
**Sprache**    | Deutsch :de:
**Video**      | [Auf YouTube ansehen :arrow_upper_right:]({{.URL}})
**Untertitel** | [Auf YouTube bearbeiten :arrow_upper_right:](https://www.youtube.com/timedtext_editor?v={{.ID}}&tab=captions&bl=vmp&action_mde_edit_form=1&lang=de&ui=hd)
`

const issueTemplatePT = `
## {{.Title}}

&nbsp;          | Info
--------------- | -------------
**Data**        | {{.DayEN}}
**Duração**     | {{.DurationString}} :clock7:
**Idioma**      | Português :portugal:
**Vídeo**       | [Ver no YouTube :arrow_upper_right:]({{.URL}})
**Legendas**    | [Editar no YouTube :arrow_upper_right:](https://www.youtube.com/timedtext_editor?v={{.ID}}&tab=captions&bl=vmp&action_mde_edit_form=1&lang=pt&ui=hd)
`

const issueTemplateZH = `
## {{.Title}}

&nbsp;        | Info
------------- | -------------
**Date**      | {{.DayEN}}
**Duration**  | {{.DurationString}} :clock7:
**Language**  | 中国 :cn:
**Video**     | [See it on YouTube :arrow_upper_right:]({{.URL}})
**Subtitles** | [Edit them in YouTube :arrow_upper_right:](https://www.youtube.com/timedtext_editor?v={{.ID}}&tab=captions&bl=vmp&action_mde_edit_form=1&lang=zh&ui=hd)
`

// DefaultLanguages is the language set of the subtitles repository. Each
// language starts its cards in the first stage column of DefaultBoard.
func DefaultLanguages() []Language {
	first := DefaultBoard()[0]
	return []Language{
		{Short: "fr", Label: "⚑ Français", Column: first.Columns["fr"], Template: issueTemplateFR},
		{Short: "en", Label: "⚑ English", Column: first.Columns["en"], Template: issueTemplateEN},
		{Short: "de", Label: "⚑ Deutsche", Column: first.Columns["de"], Template: issueTemplateDE},
		{Short: "pt", Label: "⚑ Português", Column: first.Columns["pt"], Template: issueTemplatePT},
		// github sorts labels badly with the native name
		{Short: "zh", Label: "⚑ Chinese", Column: first.Columns["zh"], Template: issueTemplateZH},
	}
}
