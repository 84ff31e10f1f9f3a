package diary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrPageLimit is returned when the page after the configured cap still
// has entries.
var ErrPageLimit = errors.New("diary page limit reached")

// Page is one listing page and the entry markers found on it.
type Page struct {
	Number  int
	URL     string
	Markers []Marker
}

// PageSource yields listing pages by number, starting at 1.
// A source knows nothing about where the listing ends.
type PageSource interface {
	Page(ctx context.Context, number int) (Page, error)
}

// IsEmpty is the listing's termination predicate: a page without markers.
func IsEmpty(p Page) bool {
	return len(p.Markers) == 0
}

// Fold walks src from page 1, folding each page into acc with step, and
// stops at the first page for which isEmpty holds. That page is fetched
// but not folded, and nothing after it is fetched.
//
// maxPages <= 0 means no cap. Otherwise page maxPages+1 is still fetched so
// a listing that ends exactly at the cap succeeds; if that page is not empty
// the walk fails with ErrPageLimit. On any error the partial accumulator is
// discarded.
func Fold[A any](
	ctx context.Context,
	src PageSource,
	isEmpty func(Page) bool,
	maxPages int,
	acc A,
	step func(A, Page) A,
) (A, error) {
	var zero A
	for number := 1; ; number++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		page, err := src.Page(ctx, number)
		if err != nil {
			return zero, err
		}
		if isEmpty(page) {
			return acc, nil
		}
		if maxPages > 0 && number > maxPages {
			return zero, fmt.Errorf("%w: %d pages", ErrPageLimit, maxPages)
		}
		acc = step(acc, page)
	}
}

// PageURL builds the listing URL for one diary page:
// <baseURL>/<username>/films/diary/page/<number>/
func PageURL(baseURL, username string, number int) string {
	return fmt.Sprintf("%s/%s/films/diary/page/%d/",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(username),
		number,
	)
}

// httpSource fetches a user's diary pages over a Fetcher.
type httpSource struct {
	fetcher  Fetcher
	baseURL  string
	username string
}

func (s httpSource) Page(ctx context.Context, number int) (Page, error) {
	pageURL := PageURL(s.baseURL, s.username, number)

	resp, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return Page{}, err
	}
	if !resp.OK() {
		return Page{}, &FetchError{Status: resp.Status, URL: pageURL}
	}

	markers, err := ParseMarkers(bytes.NewReader(resp.Body))
	if err != nil {
		return Page{}, fmt.Errorf("page %d: %w", number, err)
	}
	return Page{Number: number, URL: pageURL, Markers: markers}, nil
}
