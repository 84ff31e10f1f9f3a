package v1

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DecadeCount is one decade bucket, keyed by the first year of the decade.
type DecadeCount struct {
	Decade int `json:"decade" yaml:"decade"`
	Count  int `json:"count" yaml:"count"`
}

// Summary is the aggregated view of a set of diary entries.
// Fixed-size arrays keep zero buckets present and make copies independent;
// a Summary is never modified once built.
type Summary struct {
	TotalCount int `json:"total_count" yaml:"total_count"`

	// ByMonth is indexed from January (0) to December (11).
	ByMonth [12]int `json:"by_month" yaml:"by_month"`

	// ByWeekday is indexed from Sunday (0) to Saturday (6).
	ByWeekday [7]int `json:"by_weekday" yaml:"by_weekday"`

	// ByDecade holds only decades with at least one entry, ascending.
	// Entries with an unknown film year are not counted here.
	ByDecade []DecadeCount `json:"by_decade" yaml:"by_decade"`

	// ByRating is indexed by half-star units, 0..10.
	ByRating [MaxHalfStars + 1]int `json:"by_rating" yaml:"by_rating"`

	RatedCount int `json:"rated_count" yaml:"rated_count"`

	// AverageRating is on the 0-5 star scale; zero when nothing is rated.
	AverageRating decimal.Decimal `json:"average_rating" yaml:"average_rating"`

	// AverageRatingByMonth is on the 0-5 star scale; zero for months without ratings.
	AverageRatingByMonth [12]decimal.Decimal `json:"average_rating_by_month" yaml:"average_rating_by_month"`

	LikedCount   int `json:"liked_count" yaml:"liked_count"`
	RewatchCount int `json:"rewatch_count" yaml:"rewatch_count"`
}

// MarshalJSON writes the averages as JSON numbers rather than the quoted
// strings decimal.Decimal produces by default.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary

	var byMonth [12]json.Number
	for i, avg := range s.AverageRatingByMonth {
		byMonth[i] = json.Number(avg.String())
	}
	return json.Marshal(struct {
		plain
		AverageRating        json.Number     `json:"average_rating"`
		AverageRatingByMonth [12]json.Number `json:"average_rating_by_month"`
	}{
		plain:                plain(s),
		AverageRating:        json.Number(s.AverageRating.String()),
		AverageRatingByMonth: byMonth,
	})
}

// DecadeMap returns ByDecade as a map from decade to count.
func (s Summary) DecadeMap() map[int]int {
	out := make(map[int]int, len(s.ByDecade))
	for _, d := range s.ByDecade {
		out[d.Decade] = d.Count
	}
	return out
}

// Report wraps a Summary with the request it answers.
// It is what renderers and the HTTP API consume.
type Report struct {
	Username    string    `json:"username" yaml:"username"`
	Year        int       `json:"year" yaml:"year"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Summary     Summary   `json:"summary" yaml:"summary"`
}
