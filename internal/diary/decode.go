package diary

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
)

// Attribute names on an entry marker, fixed by the diary page format.
const (
	AttrViewingDate = "data-viewing-date-str"
	AttrFilmName    = "data-film-name"
	AttrFilmYear    = "data-film-year"
	AttrRating      = "data-rating"
	AttrLiked       = "data-liked"
	AttrRewatch     = "data-rewatch"
)

const truthy = "true"

// dateLayouts are tried in order when turning the viewing-date attribute into
// a day. Anything they miss goes through parseDayTokens.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon 2 Jan 2006",
	"Monday 2 January 2006",
	"Monday, 2 January 2006",
	"Monday, January 2, 2006",
	"Mon, 2 Jan 2006",
	"Mon Jan 2 2006",
	time.RFC1123,
	time.RFC1123Z,
}

var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// DecodeMarker turns a marker into an Entry, substituting defaults for
// missing or malformed attributes. It returns false when the marker has
// no usable viewing date; such markers are never collected.
func DecodeMarker(m Marker) (v1.Entry, bool) {
	raw, ok := m.Attr(AttrViewingDate)
	if !ok || raw == "" {
		return v1.Entry{}, false
	}
	logged, ok := parseDay(raw)
	if !ok {
		return v1.Entry{}, false
	}

	e := v1.Entry{
		Title:      v1.UnknownTitle,
		LoggedDate: logged,
		RawDate:    raw,
	}
	if title, ok := m.Attr(AttrFilmName); ok && title != "" {
		e.Title = title
	}
	if s, ok := m.Attr(AttrFilmYear); ok {
		if year, ok := leadingInt(s); ok {
			e.FilmYear = v1.KnownYear(year)
		}
	}
	if s, ok := m.Attr(AttrRating); ok {
		if rating, ok := leadingInt(s); ok {
			e.Rating = v1.RatingOf(rating)
		}
	}
	if s, ok := m.Attr(AttrLiked); ok {
		e.Liked = s == truthy
	}
	if s, ok := m.Attr(AttrRewatch); ok {
		e.Rewatch = s == truthy
	}
	return e, true
}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return parseDayTokens(s)
}

// parseDayTokens reads a day out of free-form text that names the month:
// the first month name, the first four-digit number as the year and the
// first other number (ordinal suffixes allowed) as the day of the month.
// Weekday names, punctuation and trailing clock times are ignored.
func parseDayTokens(s string) (time.Time, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var (
		month     time.Month
		year, day int
	)
	for _, f := range fields {
		if month == 0 {
			if m, ok := monthByName(f); ok {
				month = m
				continue
			}
		}
		digits := strings.TrimRight(strings.ToLower(f), "stndrh")
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		switch {
		case len(digits) == 4 && year == 0:
			year = n
		case len(digits) <= 2 && day == 0:
			day = n
		}
	}
	if month == 0 || year == 0 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false // e.g. 31 February
	}
	return t, true
}

// monthByName matches a full month name or a prefix of at least three letters.
func monthByName(s string) (time.Month, bool) {
	s = strings.ToLower(s)
	if len(s) < 3 {
		return 0, false
	}
	for i, name := range monthNames {
		if strings.HasPrefix(name, s) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// leadingInt parses the integer prefix of s: leading whitespace, an optional
// sign, then decimal digits up to the first non-digit.
// "1995" and "1995 (re-release)" both give 1995.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
