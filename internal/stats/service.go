package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
	"github.com/aevon-lab/diarystats/internal/core/aggregation"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid stats query")

// EntryCollector gathers one user's diary entries for a year.
type EntryCollector interface {
	Collect(ctx context.Context, username string, year int) ([]v1.Entry, error)
}

// Options configures a Service. Zero values disable the matching feature.
type Options struct {
	// DefaultYear is used when a request does not name a year.
	DefaultYear int

	// CollectTimeout bounds one full diary walk.
	CollectTimeout time.Duration

	Cache *SummaryCache
}

// Service turns a username and year into a report: collect, aggregate, cache.
// Concurrent requests for the same report share one diary walk.
type Service struct {
	collector      EntryCollector
	cache          *SummaryCache
	defaultYear    int
	collectTimeout time.Duration
	flight         singleflight.Group
	nowFn          func() time.Time
}

// NewService creates a new stats service.
func NewService(collector EntryCollector, opts Options) *Service {
	if collector == nil {
		panic("stats: entry collector is nil")
	}
	return &Service{
		collector:      collector,
		cache:          opts.Cache,
		defaultYear:    opts.DefaultYear,
		collectTimeout: opts.CollectTimeout,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Summarize returns the report for username's diary in year.
// A zero year selects the default year.
func (s *Service) Summarize(ctx context.Context, username string, year int) (*v1.Report, error) {
	username = strings.TrimSpace(username)
	if year == 0 {
		year = s.defaultYear
	}
	if err := validateQuery(username, year); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if report, ok := s.cache.Get(username, year); ok {
			slog.Debug("[Stats] Cache hit", "username", username, "year", year)
			return &report, nil
		}
	}

	// The walk is detached from ctx and bounded by collectTimeout; each caller
	// stops waiting when its own ctx ends.
	key := username + "/" + strconv.Itoa(year)
	ch := s.flight.DoChan(key, func() (interface{}, error) {
		return s.build(context.WithoutCancel(ctx), username, year)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		slog.Debug("[Stats] Caller left before the diary walk finished",
			"username", username,
			"year", year,
			"error", ctx.Err(),
		)
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		slog.Debug("[Stats] Shared in-flight diary walk", "username", username, "year", year)
	}

	// The flight value may be shared; each caller gets its own ByDecade slice.
	report := cloneReport(res.Val.(v1.Report))
	return &report, nil
}

// Refresh drops any cached report for username and year, then builds a new one.
// A walk already in flight for the same report is joined rather than repeated.
func (s *Service) Refresh(ctx context.Context, username string, year int) (*v1.Report, error) {
	username = strings.TrimSpace(username)
	if year == 0 {
		year = s.defaultYear
	}
	if s.cache != nil {
		s.cache.Invalidate(username, year)
	}
	return s.Summarize(ctx, username, year)
}

func (s *Service) build(ctx context.Context, username string, year int) (v1.Report, error) {
	if s.collectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.collectTimeout)
		defer cancel()
	}

	entries, err := s.collector.Collect(ctx, username, year)
	if err != nil {
		return v1.Report{}, err
	}

	report := v1.Report{
		Username:    username,
		Year:        year,
		GeneratedAt: s.nowFn(),
		Summary:     aggregation.Aggregate(entries),
	}
	slog.Info("[Stats] Report built",
		"username", username,
		"year", year,
		"total", report.Summary.TotalCount,
		"rated", report.Summary.RatedCount,
	)

	if s.cache != nil {
		s.cache.Put(report)
	}
	return report, nil
}

func validateQuery(username string, year int) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidQuery)
	}
	if strings.ContainsAny(username, "/?#") {
		return fmt.Errorf("%w: username %q contains invalid characters", ErrInvalidQuery, username)
	}
	if year < 1000 || year > 9999 {
		return fmt.Errorf("%w: year %d must have four digits", ErrInvalidQuery, year)
	}
	return nil
}
