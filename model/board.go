package model

import (
	"maps"
	"slices"
)

// Stage is one step of the subtitling workflow. Every language has its own
// column for each stage.
type Stage struct {
	Label   string
	Columns map[string]int64
}

func (s Stage) HasColumn(column int64) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Board is the ordered list of workflow stages.
type Board []Stage

// Approval returns the column of the last stage for the language.
func (b Board) Approval(short string) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	c, ok := b[len(b)-1].Columns[short]
	return c, ok
}

// Pending returns every column of every stage except the last one.
func (b Board) Pending() []int64 {
	var columns []int64
	for i := 0; i < len(b)-1; i++ {
		columns = append(columns, slices.Sorted(maps.Values(b[i].Columns))...)
	}
	return columns
}

const (
	StageAwaiting = "⚙ [0] Awaiting subtitles"
	StageWriting  = "⚙ [1] Writing in progress"
	StageFirst    = "⚙ [2] First review"
	StageSecond   = "⚙ [3] Second review"
	StageApproved = "⚙ [4] Approved"

	// InitialStageLabel is put on every new issue.
	InitialStageLabel = StageAwaiting
)

func DefaultBoard() Board {
	return Board{
		{Label: StageAwaiting, Columns: map[string]int64{"fr": 910796, "en": 387590, "de": 654910, "pt": 654905, "zh": 654911}},
		{Label: StageWriting, Columns: map[string]int64{"fr": 398412, "en": 387592, "de": 654907, "pt": 654906, "zh": 654908}},
		{Label: StageFirst, Columns: map[string]int64{"fr": 398414, "en": 654829, "de": 654913, "pt": 654912, "zh": 654914}},
		{Label: StageSecond, Columns: map[string]int64{"fr": 398416, "en": 387597, "de": 654916, "pt": 654915, "zh": 654917}},
		{Label: StageApproved, Columns: map[string]int64{"fr": 398417, "en": 390130, "de": 654919, "pt": 654918, "zh": 654920}},
	}
}
