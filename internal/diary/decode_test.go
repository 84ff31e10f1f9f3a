package diary

import (
	"testing"
	"time"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func TestDecodeMarker(t *testing.T) {
	march15 := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		attrs  map[string]string
		wantOK bool
		want   v1.Entry
	}{
		{
			name:   "all attributes present",
			attrs:  entryAttrs("2024-03-15", "Heat", "1995", "8", true, false),
			wantOK: true,
			want: v1.Entry{
				Title:      "Heat",
				LoggedDate: march15,
				RawDate:    "2024-03-15",
				FilmYear:   v1.KnownYear(1995),
				Rating:     v1.RatingOf(8),
				Liked:      true,
			},
		},
		{
			name:   "missing date is skipped",
			attrs:  map[string]string{AttrFilmName: "Heat"},
			wantOK: false,
		},
		{
			name:   "empty date is skipped",
			attrs:  map[string]string{AttrViewingDate: ""},
			wantOK: false,
		},
		{
			name:   "unparseable date is skipped",
			attrs:  map[string]string{AttrViewingDate: "sometime in 2024"},
			wantOK: false,
		},
		{
			name:   "only date present applies defaults",
			attrs:  map[string]string{AttrViewingDate: "2024-03-15"},
			wantOK: true,
			want: v1.Entry{
				Title:      v1.UnknownTitle,
				LoggedDate: march15,
				RawDate:    "2024-03-15",
			},
		},
		{
			name: "empty title falls back",
			attrs: map[string]string{
				AttrViewingDate: "2024-03-15",
				AttrFilmName:    "",
			},
			wantOK: true,
			want: v1.Entry{
				Title:      v1.UnknownTitle,
				LoggedDate: march15,
				RawDate:    "2024-03-15",
			},
		},
		{
			name:   "malformed numbers become absent",
			attrs:  entryAttrs("2024-03-15", "Heat", "unknown", "n/a", false, false),
			wantOK: true,
			want: v1.Entry{
				Title:      "Heat",
				LoggedDate: march15,
				RawDate:    "2024-03-15",
			},
		},
		{
			name:   "zero rating is kept",
			attrs:  entryAttrs("2024-03-15", "Heat", "1995", "0", false, false),
			wantOK: true,
			want: v1.Entry{
				Title:      "Heat",
				LoggedDate: march15,
				RawDate:    "2024-03-15",
				FilmYear:   v1.KnownYear(1995),
				Rating:     v1.RatingOf(0),
			},
		},
		{
			name:   "out of range rating becomes absent",
			attrs:  entryAttrs("2024-03-15", "Heat", "1995", "11", false, false),
			wantOK: true,
			want: v1.Entry{
				Title:      "Heat",
				LoggedDate: march15,
				RawDate:    "2024-03-15",
				FilmYear:   v1.KnownYear(1995),
			},
		},
		{
			name: "flags need the exact truthy marker",
			attrs: map[string]string{
				AttrViewingDate: "2024-03-15",
				AttrLiked:       "TRUE",
				AttrRewatch:     "true",
			},
			wantOK: true,
			want: v1.Entry{
				Title:      v1.UnknownTitle,
				LoggedDate: march15,
				RawDate:    "2024-03-15",
				Rewatch:    true,
			},
		},
		{
			name:   "written out date with weekday",
			attrs:  entryAttrs("Wednesday 10 January 2024", "Heat", "1995", "8", false, false),
			wantOK: true,
			want: v1.Entry{
				Title:      "Heat",
				LoggedDate: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
				RawDate:    "Wednesday 10 January 2024",
				FilmYear:   v1.KnownYear(1995),
				Rating:     v1.RatingOf(8),
			},
		},
		{
			name:   "timestamp date is truncated to the day",
			attrs:  map[string]string{AttrViewingDate: "2024-03-15T23:10:00Z"},
			wantOK: true,
			want: v1.Entry{
				Title:      v1.UnknownTitle,
				LoggedDate: march15,
				RawDate:    "2024-03-15T23:10:00Z",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DecodeMarker(NewMarker(tc.attrs))
			require.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				return
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseDay_WrittenOutDates(t *testing.T) {
	jan10 := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{in: "2024-01-10", want: jan10, wantOK: true},
		{in: "2024/01/10", want: jan10, wantOK: true},
		{in: "10 January 2024", want: jan10, wantOK: true},
		{in: "10 Jan 2024", want: jan10, wantOK: true},
		{in: "Wednesday 10 January 2024", want: jan10, wantOK: true},
		{in: "Wednesday, 10 January 2024", want: jan10, wantOK: true},
		{in: "January 10, 2024", want: jan10, wantOK: true},
		{in: "Jan 10, 2024", want: jan10, wantOK: true},
		{in: "Wed, 10 Jan 2024", want: jan10, wantOK: true},
		{in: "Wed, 10 Jan 2024 20:24:00 GMT", want: jan10, wantOK: true},
		{in: "Wed Jan 10 2024 20:24:00 GMT+0000 (Coordinated Universal Time)", want: jan10, wantOK: true},
		{in: "10th January 2024", want: jan10, wantOK: true},
		{in: "  january 10th, 2024 ", want: jan10, wantOK: true},
		{in: "Sept 3rd 2024", want: time.Date(2024, time.September, 3, 0, 0, 0, 0, time.UTC), wantOK: true},
		{in: "31 February 2024", wantOK: false},
		{in: "January 2024", wantOK: false},
		{in: "sometime in 2024", wantOK: false},
		{in: "10 Jan", wantOK: false},
	}

	for _, tc := range tests {
		got, ok := parseDay(tc.in)
		require.Equal(t, tc.wantOK, ok, "input %q", tc.in)
		if tc.wantOK {
			require.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}

func TestMonthByName(t *testing.T) {
	m, ok := monthByName("Sep")
	require.True(t, ok)
	require.Equal(t, time.September, m)

	m, ok = monthByName("DECEMBER")
	require.True(t, ok)
	require.Equal(t, time.December, m)

	_, ok = monthByName("ja")
	require.False(t, ok, "two letters are ambiguous")
	_, ok = monthByName("Wed")
	require.False(t, ok)
	_, ok = monthByName("Marchx")
	require.False(t, ok)
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "1995", want: 1995, wantOK: true},
		{in: "  8", want: 8, wantOK: true},
		{in: "1995 (re-release)", want: 1995, wantOK: true},
		{in: "-12", want: -12, wantOK: true},
		{in: "+7", want: 7, wantOK: true},
		{in: "4.5", want: 4, wantOK: true},
		{in: "", wantOK: false},
		{in: "Unknown Year", wantOK: false},
		{in: "-", wantOK: false},
		{in: "99999999999999999999999", wantOK: false},
	}

	for _, tc := range tests {
		got, ok := leadingInt(tc.in)
		require.Equal(t, tc.wantOK, ok, "input %q", tc.in)
		if tc.wantOK {
			require.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
