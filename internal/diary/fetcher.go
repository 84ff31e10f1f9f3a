package diary

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const defaultMaxBodyBytes = 5 * 1024 * 1024

// Response is the raw result of fetching one listing page.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the response carries a success status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Fetcher retrieves a URL. Non-success statuses are returned as a Response,
// not an error; errors are reserved for transport failures.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// FetchError reports a non-success response while walking the diary.
type FetchError struct {
	Status int
	URL    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: status code %d", e.URL, e.Status)
}

// Transient reports whether the status is worth retrying (5xx or 429).
func (e *FetchError) Transient() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewHTTPFetcher constructs a fetcher with a tuned transport.
// maxBodyBytes <= 0 selects the 5MB default.
func NewHTTPFetcher(timeout time.Duration, userAgent string, maxBodyBytes int64) *HTTPFetcher {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
				MaxIdleConnsPerHost:   2,
			},
		},
		userAgent:    userAgent,
		maxBodyBytes: maxBodyBytes,
	}
}

// Fetch performs a GET request. The body is read only for success statuses.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	out := &Response{Status: resp.StatusCode}
	if !out.OK() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return out, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, fmt.Errorf("response from %s exceeded %d bytes", url, f.maxBodyBytes)
	}
	out.Body = body
	return out, nil
}
