package model

import (
	"strings"
	"time"
)

type CaptionFormat string

const (
	FormatVTT CaptionFormat = "vtt"
	FormatSRT CaptionFormat = "srt"
	FormatSBV CaptionFormat = "sbv"
)

var CaptionFormats = []CaptionFormat{FormatVTT, FormatSRT, FormatSBV}

func ParseCaptionFormat(s string) (CaptionFormat, bool) {
	for _, f := range CaptionFormats {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Caption is one language track of a video, either listed remotely or read
// back from a downloaded file.
type Caption struct {
	ID          string
	VideoID     YoutubeVideoID
	Language    string
	LastUpdated time.Time
	Path        string
}

// NormalizedLanguage drops the country suffix: en-GB becomes en.
func (c Caption) NormalizedLanguage() string {
	return NormalizeLanguage(c.Language)
}

func NormalizeLanguage(code string) string {
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}
