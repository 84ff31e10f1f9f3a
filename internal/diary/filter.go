package diary

import (
	"fmt"
	"strconv"
	"strings"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
)

// Year match modes accepted in configuration.
const (
	YearMatchSubstring = "substring"
	YearMatchParsed    = "parsed"
)

// YearFilter decides whether a decoded entry belongs to the target year.
type YearFilter interface {
	Keep(e v1.Entry, year int) bool
}

// SubstringYear keeps an entry when its raw viewing-date string contains
// the four-digit year anywhere. This matches the listing's own behaviour,
// including its false positives (a "2024" elsewhere in the string).
type SubstringYear struct{}

func (SubstringYear) Keep(e v1.Entry, year int) bool {
	return strings.Contains(e.RawDate, strconv.Itoa(year))
}

// ParsedYear keeps an entry when the calendar year of its parsed logged
// date equals the target year.
type ParsedYear struct{}

func (ParsedYear) Keep(e v1.Entry, year int) bool {
	return e.LoggedDate.Year() == year
}

// FilterFor returns the filter for a configured year match mode.
func FilterFor(mode string) (YearFilter, error) {
	switch mode {
	case "", YearMatchSubstring:
		return SubstringYear{}, nil
	case YearMatchParsed:
		return ParsedYear{}, nil
	default:
		return nil, fmt.Errorf("unknown year match mode %q (must be %s or %s)", mode, YearMatchSubstring, YearMatchParsed)
	}
}
