package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/blocksearch"
	bshttp "github.com/fwojciec/blocksearch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and sends user agent", func(t *testing.T) {
		t.Parallel()

		var ua string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<ul><li>one</li></ul>`))
		}))
		defer server.Close()

		fetcher := bshttp.NewFetcher(bshttp.WithUserAgent("test-agent"))
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, `<ul><li>one</li></ul>`, html)
		assert.Equal(t, "test-agent", ua)
	})

	t.Run("times out slow servers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		}))
		defer server.Close()

		fetcher := bshttp.NewFetcher(bshttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := bshttp.NewFetcher().Fetch(ctx, server.URL)

		require.Error(t, err)
	})

	t.Run("returns ENOTFOUND for 404", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := bshttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, blocksearch.ENOTFOUND, blocksearch.ErrorCode(err))
	})

	t.Run("returns error for server errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := bshttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("rejects oversized bodies", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		}))
		defer server.Close()

		_, err := bshttp.NewFetcher(bshttp.WithMaxBytes(32)).Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(err))
	})

	t.Run("accepts bodies at the size limit", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 32)))
		}))
		defer server.Close()

		html, err := bshttp.NewFetcher(bshttp.WithMaxBytes(32)).Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Len(t, html, 32)
	})
}
