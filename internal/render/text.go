package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
)

// DefaultBarWidth is the length of the longest bar in a histogram.
const DefaultBarWidth = 30

const barGlyph = "█"

var (
	monthLabels   = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// Text renders a report as a terminal summary with one histogram per dimension.
type Text struct {
	BarWidth int
}

type row struct {
	label string
	value string
	count int
}

func (r Text) Render(w io.Writer, report v1.Report) error {
	s := report.Summary
	width := r.BarWidth
	if width <= 0 {
		width = DefaultBarWidth
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Diary stats for %s, %d\n\n", report.Username, report.Year)
	fmt.Fprintf(tw, "Total Movies:\t%d\n", s.TotalCount)
	fmt.Fprintf(tw, "Average Rating:\t%s\n", s.AverageRating.StringFixed(1))
	fmt.Fprintf(tw, "Liked Films:\t%d\n", s.LikedCount)
	fmt.Fprintf(tw, "Rewatched Films:\t%d\n", s.RewatchCount)

	months := make([]row, 0, len(s.ByMonth))
	for i, n := range s.ByMonth {
		months = append(months, row{label: monthLabels[i], value: strconv.Itoa(n), count: n})
	}
	writeHistogram(tw, "Movies Watched Per Month", months, width)

	weekdays := make([]row, 0, len(s.ByWeekday))
	for i, n := range s.ByWeekday {
		weekdays = append(weekdays, row{label: weekdayLabels[i], value: strconv.Itoa(n), count: n})
	}
	writeHistogram(tw, "Movies Watched Per Day of Week", weekdays, width)

	decades := make([]row, 0, len(s.ByDecade))
	for _, d := range s.ByDecade {
		decades = append(decades, row{label: strconv.Itoa(d.Decade) + "s", value: strconv.Itoa(d.Count), count: d.Count})
	}
	writeHistogram(tw, "Movies Watched Per Decade", decades, width)

	ratings := make([]row, 0, len(s.ByRating))
	for half, n := range s.ByRating {
		ratings = append(ratings, row{label: StarLabel(half), value: strconv.Itoa(n), count: n})
	}
	writeHistogram(tw, "Ratings Distribution", ratings, width)

	// Bars are scaled on tenths of a star so months stay comparable.
	averages := make([]row, 0, len(s.AverageRatingByMonth))
	for i, avg := range s.AverageRatingByMonth {
		averages = append(averages, row{
			label: monthLabels[i],
			value: avg.StringFixed(1),
			count: int(avg.Shift(1).Round(0).IntPart()),
		})
	}
	writeHistogram(tw, "Average Rating Per Month", averages, width)

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

func writeHistogram(w io.Writer, title string, rows []row, width int) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(rows) == 0 {
		fmt.Fprintf(w, "  (none)\n")
		return
	}

	peak := 0
	for _, r := range rows {
		if r.count > peak {
			peak = r.count
		}
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", r.label, r.value, bar(r.count, peak, width))
	}
}

// bar scales count against peak. Non-zero counts always get at least one glyph.
func bar(count, peak, width int) string {
	if count <= 0 || peak <= 0 {
		return ""
	}
	n := count * width / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat(barGlyph, n)
}

// StarLabel names a half-star rating bucket: "0 Stars", "0.5 Stars", "1 Star", ...
func StarLabel(halfStars int) string {
	stars := strconv.Itoa(halfStars / 2)
	if halfStars%2 == 1 {
		stars += ".5"
	}
	if halfStars == 2 {
		return stars + " Star"
	}
	return stars + " Stars"
}
