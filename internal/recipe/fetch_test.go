package recipe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page(`{"@type": "Recipe", "name": "Toast", "recipeIngredient": ["2 slices bread"]}`)))
	}))
	defer srv.Close()

	f := NewFetcher(WithUserAgent("yolk-test/1.0"))
	r, err := f.Fetch(context.Background(), srv.URL+"/toast")
	require.NoError(t, err)

	assert.Equal(t, "Toast", r.Name)
	assert.Equal(t, []string{"2 slices bread"}, r.Ingredients)
	assert.Equal(t, "yolk-test/1.0", gotUA)
}

func TestFetcher_DefaultUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(page(`{"@type": "Recipe"}`)))
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestFetcher_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr), "expected StatusError, got %v", err)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestFetcher_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://example.com/r", "/relative/path", "http://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NewFetcher().Fetch(context.Background(), raw)
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestFetcher_MaxBodyBytes(t *testing.T) {
	padding := strings.Repeat("x", 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The recipe block sits past the read limit.
		_, _ = w.Write([]byte("<html><body><p>" + padding + "</p>"))
		_, _ = w.Write([]byte(`<script type="application/ld+json">{"@type": "Recipe", "name": "Late"}</script></body></html>`))
	}))
	defer srv.Close()

	_, err := NewFetcher(WithMaxBodyBytes(1024)).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewFetcher(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRecipeNotFound)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
