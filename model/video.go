package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goodsign/monday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type YoutubeVideoID string

type YoutubeChannelID string

const WatchURL = "https://www.youtube.com/watch?v="

// Video is a published video as reported by the YouTube Data API. A nil or
// zero Duration marks a live broadcast that has not finished yet.
type Video struct {
	ID          YoutubeVideoID
	Title       string
	PublishedAt time.Time
	Duration    *time.Duration
}

// ParseVideo builds a Video from the raw API fields. publishedAt is RFC 3339,
// duration is ISO 8601 (PT1H2M3S) and may be empty.
func ParseVideo(id, title, publishedAt, duration string) (Video, error) {
	video := Video{
		ID:    YoutubeVideoID(id),
		Title: title,
	}
	if publishedAt != "" {
		at, err := time.Parse(time.RFC3339, publishedAt)
		if err != nil {
			return Video{}, fmt.Errorf("video %s: invalid publish date %q: %w", id, publishedAt, err)
		}
		video.PublishedAt = at
	}
	if duration != "" {
		d, err := ParseISODuration(duration)
		if err != nil {
			return Video{}, fmt.Errorf("video %s: %w", id, err)
		}
		video.Duration = &d
	}

	return video, nil
}

func (v Video) String() string {
	return fmt.Sprintf("%s - %s", v.ID, v.Title)
}

// IsLive reports whether the video is an in-progress broadcast.
func (v Video) IsLive() bool {
	return v.Duration == nil || *v.Duration == 0
}

func (v Video) URL() string {
	return WatchURL + string(v.ID)
}

// DurationString formats the duration as H:MM:SS.
func (v Video) DurationString() string {
	if v.Duration == nil {
		return "0:00:00"
	}
	total := int64(v.Duration.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slug is the lowercase, hyphenated, ascii-only form of the title.
func (v Video) Slug() string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, v.Title)
	if err != nil {
		ascii = v.Title
	}
	return strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(ascii), "-"), "-")
}

func (v Video) DayFR() string {
	return capitalize(monday.Format(v.PublishedAt, "Monday 02 January 2006", monday.LocaleFrFR))
}

func (v Video) DayEN() string {
	return monday.Format(v.PublishedAt, "Monday, 02 January 2006", monday.LocaleEnUS)
}

func (v Video) DayDE() string {
	return monday.Format(v.PublishedAt, "Monday 02 January 2006", monday.LocaleDeDE)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration parses the ISO 8601 durations YouTube returns, like
// PT1H2M3S, P1DT2H or P0D.
func ParseISODuration(s string) (time.Duration, error) {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "P" || strings.HasSuffix(s, "T") {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}

	units := []time.Duration{7 * 24 * time.Hour, 24 * time.Hour, time.Hour, time.Minute}
	var d time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q: %w", s, err)
		}
		d += time.Duration(n) * unit
	}
	if m[5] != "" {
		secs, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q: %w", s, err)
		}
		d += time.Duration(secs * float64(time.Second))
	}

	return d, nil
}
