package aggregation

import (
	"sort"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
)

// Accumulator folds diary entries into the running state behind a Summary.
// Add may be called incrementally (for example once per fetched page);
// Summary can be taken at any point and does not disturb the running state.
type Accumulator struct {
	total    int
	months   [12]int
	weekdays [7]int
	decades  map[int]int
	ratings  [v1.MaxHalfStars + 1]int
	overall  mean
	monthly  [12]mean
	liked    int
	rewatch  int
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{decades: make(map[int]int)}
}

// Add folds one entry.
func (a *Accumulator) Add(e v1.Entry) {
	month := MonthIndex(e.LoggedDate)

	a.total++
	a.months[month]++
	a.weekdays[WeekdayIndex(e.LoggedDate)]++

	if e.FilmYear.Valid {
		a.decades[DecadeFor(e.FilmYear.Year)]++
	}

	// Hand-built entries may carry an out-of-range rating.
	if e.Rating.Valid && e.Rating.HalfStars >= 0 && e.Rating.HalfStars <= v1.MaxHalfStars {
		a.ratings[e.Rating.HalfStars]++
		a.overall = a.overall.Apply(e.Rating.HalfStars)
		a.monthly[month] = a.monthly[month].Apply(e.Rating.HalfStars)
	}

	if e.Liked {
		a.liked++
	}
	if e.Rewatch {
		a.rewatch++
	}
}

// Summary builds the immutable summary of everything added so far.
func (a *Accumulator) Summary() v1.Summary {
	s := v1.Summary{
		TotalCount:    a.total,
		ByMonth:       a.months,
		ByWeekday:     a.weekdays,
		ByDecade:      make([]v1.DecadeCount, 0, len(a.decades)),
		ByRating:      a.ratings,
		RatedCount:    int(a.overall.count),
		AverageRating: a.overall.Stars(),
		LikedCount:    a.liked,
		RewatchCount:  a.rewatch,
	}

	for decade, count := range a.decades {
		s.ByDecade = append(s.ByDecade, v1.DecadeCount{Decade: decade, Count: count})
	}
	sort.Slice(s.ByDecade, func(i, j int) bool {
		return s.ByDecade[i].Decade < s.ByDecade[j].Decade
	})

	for m := range a.monthly {
		s.AverageRatingByMonth[m] = a.monthly[m].Stars()
	}

	return s
}

// Aggregate computes the summary of entries in a single pass.
// It is pure: the same input always yields an identical Summary.
func Aggregate(entries []v1.Entry) v1.Summary {
	acc := NewAccumulator()
	for _, e := range entries {
		acc.Add(e)
	}
	return acc.Summary()
}
