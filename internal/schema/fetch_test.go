package schema_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/ocsf-protogen/internal/schema"
)

func TestFetch_DownloadsAndCaches(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(minimalSchemaJSON))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "1.7.0", "schema.json")
	s, err := schema.Fetch(context.Background(), "1.7.0", srv.URL, dest)
	require.NoError(t, err)

	assert.Equal(t, "version=1.7.0", gotQuery)
	assert.Equal(t, "1.7.0", s.Version)

	// The raw body lands on disk and loads back.
	cached, err := schema.Load(dest)
	require.NoError(t, err)
	assert.Equal(t, "1.7.0", cached.Version)
}

func TestFetch_RejectsInvalidBodyBeforeWriting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a schema"}`))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "1.7.0", "schema.json")
	_, err := schema.Fetch(context.Background(), "1.7.0", srv.URL, dest)

	var parseErr *schema.ParseError
	require.True(t, errors.As(err, &parseErr))

	// A bad response never clobbers the cache location.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such version", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := schema.Fetch(context.Background(), "9.9.9", srv.URL, filepath.Join(t.TempDir(), "schema.json"))

	var fetchErr *schema.FetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestCachePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("schemas", "1.7.0", "schema.json"),
		schema.CachePath("schemas", "1.7.0"))
}
