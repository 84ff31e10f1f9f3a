package diary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second, "diarystats/1.0", 0)
	resp, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.True(t, resp.OK())
	require.Equal(t, "<html></html>", string(resp.Body))
	require.Equal(t, "diarystats/1.0", gotUA)
}

func TestHTTPFetcher_NonSuccessIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second, "", 0)
	resp, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.False(t, resp.OK())
	require.Equal(t, http.StatusNotFound, resp.Status)
	require.Empty(t, resp.Body)
}

func TestHTTPFetcher_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second, "", 1024)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeded 1024 bytes")
}

func TestHTTPFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewHTTPFetcher(time.Second, "", 0)
	_, err := f.Fetch(context.Background(), url)
	require.Error(t, err)
}

func TestFetchError(t *testing.T) {
	err := &FetchError{Status: 503, URL: "https://example.test/a/films/diary/page/1/"}
	require.Contains(t, err.Error(), "status code 503")
	require.True(t, err.Transient())

	require.True(t, (&FetchError{Status: http.StatusTooManyRequests}).Transient())
	require.False(t, (&FetchError{Status: http.StatusNotFound}).Transient())
	require.False(t, (&FetchError{Status: http.StatusForbidden}).Transient())
}
