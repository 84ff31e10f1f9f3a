package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonthIndex(t *testing.T) {
	require.Equal(t, 0, MonthIndex(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 11, MonthIndex(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestWeekdayIndex(t *testing.T) {
	// 2024-03-17 was a Sunday.
	sunday := time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 0, WeekdayIndex(sunday))
	require.Equal(t, 6, WeekdayIndex(sunday.AddDate(0, 0, 6)))
}

func TestDecadeFor(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{year: 1995, want: 1990},
		{year: 1990, want: 1990},
		{year: 2019, want: 2010},
		{year: 2000, want: 2000},
		{year: 7, want: 0},
		{year: 0, want: 0},
		{year: -5, want: -10},
		{year: -10, want: -10},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, DecadeFor(tc.year), "year %d", tc.year)
	}
}
