package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchParsesDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.Equal(t, "en-US,en;q=0.8", r.Header.Get("Accept-Language"))
		w.Write([]byte(`<html><body><h1 class="title">Widget</h1></body></html>`))
	}))
	defer srv.Close()

	doc, err := New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Widget", doc.Find("h1.title").Text())
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindNonSuccessStatus, fetchErr.Kind)
	assert.Equal(t, http.StatusForbidden, fetchErr.Status)
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with nothing in it.
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindEmptyBody, fetchErr.Kind)
}

func TestFetchTimeoutKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := New(WithTimeout(20 * time.Millisecond))
	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindTimeout, fetchErr.Kind)
}

func TestFetchNetworkError(t *testing.T) {
	_, err := New().Fetch(context.Background(), "http://127.0.0.1:1/")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, errors.Is(err, fetchErr.Err) || fetchErr.Err != nil)
}

func TestResolveShortLink(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer target.Close()

	hop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/product/42", http.StatusFound)
	}))
	defer hop.Close()

	f := New()

	t.Run("expands when the final host matches", func(t *testing.T) {
		resolved := f.ResolveShortLink(context.Background(), hop.URL, "127.0.0.1")
		assert.Equal(t, target.URL+"/product/42", resolved)
	})

	t.Run("returns input when the final host does not match", func(t *testing.T) {
		resolved := f.ResolveShortLink(context.Background(), hop.URL, "example.com")
		assert.Equal(t, hop.URL, resolved)
	})

	t.Run("fails open on unreachable hosts", func(t *testing.T) {
		resolved := f.ResolveShortLink(context.Background(), "http://127.0.0.1:1/x", "example.com")
		assert.Equal(t, "http://127.0.0.1:1/x", resolved)
	})
}
