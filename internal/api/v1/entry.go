package v1

import (
	"fmt"
	"time"
)

// MaxHalfStars is the highest rating value, five stars in half-star units.
const MaxHalfStars = 10

// UnknownTitle is substituted when a diary entry carries no film name.
const UnknownTitle = "Unknown Title"

// Entry is one logged viewing of a film.
// Defaults for missing attributes are applied where the entry is decoded,
// so every field here is already normalized.
type Entry struct {
	// Title is the film's display name, or UnknownTitle.
	Title string `json:"title" yaml:"title"`

	// LoggedDate is the day the viewing was logged, at midnight UTC.
	// It drives month and weekday bucketing.
	LoggedDate time.Time `json:"logged_date" yaml:"logged_date"`

	// RawDate is the viewing-date attribute exactly as it appeared on the page.
	// The target-year filter runs against this string, not LoggedDate.
	RawDate string `json:"-" yaml:"-"`

	// FilmYear is the release year of the film, independent of LoggedDate.
	FilmYear FilmYear `json:"film_year" yaml:"film_year"`

	// Rating is the user's rating in half-star units, when given.
	Rating Rating `json:"rating" yaml:"rating"`

	Liked   bool `json:"liked" yaml:"liked"`
	Rewatch bool `json:"rewatch" yaml:"rewatch"`
}

// FilmYear is a release year that may be unknown.
type FilmYear struct {
	Year  int
	Valid bool
}

// KnownYear returns a valid FilmYear.
func KnownYear(year int) FilmYear {
	return FilmYear{Year: year, Valid: true}
}

// MarshalJSON encodes an unknown year as null.
func (y FilmYear) MarshalJSON() ([]byte, error) {
	if !y.Valid {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%d", y.Year)), nil
}

// MarshalYAML encodes an unknown year as null.
func (y FilmYear) MarshalYAML() (interface{}, error) {
	if !y.Valid {
		return nil, nil
	}
	return y.Year, nil
}

// Rating is a half-star rating (0..MaxHalfStars) that may be absent.
// Zero is a real rating and is distinct from an absent one.
type Rating struct {
	HalfStars int
	Valid     bool
}

// RatingOf returns a present rating, or an absent one when halfStars is out of range.
// Zero is a real rating and counts toward averages. A source that marks
// unrated entries with 0 rather than an empty attribute will skew them.
func RatingOf(halfStars int) Rating {
	if halfStars < 0 || halfStars > MaxHalfStars {
		return Rating{}
	}
	return Rating{HalfStars: halfStars, Valid: true}
}

// MarshalJSON encodes an absent rating as null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%d", r.HalfStars)), nil
}

// MarshalYAML encodes an absent rating as null.
func (r Rating) MarshalYAML() (interface{}, error) {
	if !r.Valid {
		return nil, nil
	}
	return r.HalfStars, nil
}
