package diary

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
	"github.com/google/uuid"
)

// DefaultBaseURL is the public diary host.
const DefaultBaseURL = "https://letterboxd.com"

// Options configures a Collector.
type Options struct {
	BaseURL  string
	Filter   YearFilter
	MaxPages int // 0 = walk until the first empty page
}

// Collector walks a user's diary listing and gathers the entries logged in
// one year. Pages are fetched strictly one after another: whether page N
// exists is only known once page N-1 has been seen.
type Collector struct {
	fetcher  Fetcher
	baseURL  string
	filter   YearFilter
	maxPages int
}

// NewCollector creates a collector. A nil Filter selects SubstringYear.
func NewCollector(fetcher Fetcher, opts Options) *Collector {
	if fetcher == nil {
		panic("diary: fetcher must not be nil")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Filter == nil {
		opts.Filter = SubstringYear{}
	}
	return &Collector{
		fetcher:  fetcher,
		baseURL:  opts.BaseURL,
		filter:   opts.Filter,
		maxPages: opts.MaxPages,
	}
}

// collection is the value folded across pages.
type collection struct {
	entries []v1.Entry
	markers int
	skipped int
	pages   int
}

// Collect returns every entry in username's diary logged in year, in listing order.
// Any non-success page response aborts the walk with a *FetchError and no entries.
func (c *Collector) Collect(ctx context.Context, username string, year int) ([]v1.Entry, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if year < 1000 || year > 9999 {
		return nil, fmt.Errorf("year %d must have four digits", year)
	}

	runID := uuid.New().String()
	started := time.Now()
	slog.Info("[Collector] Starting diary walk",
		"run_id", runID,
		"username", username,
		"year", year,
		"max_pages", c.maxPages,
	)

	src := httpSource{fetcher: c.fetcher, baseURL: c.baseURL, username: username}
	result, err := Fold(ctx, src, IsEmpty, c.maxPages, collection{}, func(acc collection, page Page) collection {
		return c.collectPage(acc, page, year, runID)
	})
	if err != nil {
		slog.Error("[Collector] Diary walk failed",
			"run_id", runID,
			"username", username,
			"error", err,
		)
		return nil, fmt.Errorf("collect diary for %s: %w", username, err)
	}

	slog.Info("[Collector] Diary walk complete",
		"run_id", runID,
		"username", username,
		"year", year,
		"pages", result.pages,
		"markers", result.markers,
		"kept", len(result.entries),
		"skipped", result.skipped,
		"duration", time.Since(started),
	)
	return result.entries, nil
}

func (c *Collector) collectPage(acc collection, page Page, year int, runID string) collection {
	acc.pages++
	kept, skipped := 0, 0
	for _, m := range page.Markers {
		acc.markers++
		e, ok := DecodeMarker(m)
		if !ok {
			skipped++
			if raw, _ := m.Attr(AttrViewingDate); strings.Contains(raw, strconv.Itoa(year)) {
				slog.Warn("[Collector] Unreadable viewing date in target year, entry dropped",
					"run_id", runID,
					"page", page.Number,
					"raw_date", raw,
				)
			}
			continue
		}
		if !c.filter.Keep(e, year) {
			continue
		}
		acc.entries = append(acc.entries, e)
		kept++
	}
	acc.skipped += skipped
	slog.Debug("[Collector] Page processed",
		"run_id", runID,
		"page", page.Number,
		"markers", len(page.Markers),
		"kept", kept,
		"skipped_no_date", skipped,
	)
	return acc
}
