package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCacheKey_Normalized(t *testing.T) {
	assert.Equal(t, "geo:quezon city|philippines", cacheKey("  Quezon   City ", "Philippines"))
	assert.Equal(t, cacheKey("Manila", "PH"), cacheKey("manila", "ph"))
}

func TestEntryRoundTrip(t *testing.T) {
	pt, ok, err := decodeEntry(encodeEntry(Point{Lat: 14.5995, Lon: 120.9842}, true))
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 14.5995, pt.Lat, 1e-9)
	assert.InDelta(t, 120.9842, pt.Lon, 1e-9)

	_, ok, err = decodeEntry(encodeEntry(Point{}, false))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookup_FetchWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Manila, Philippines", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"14.5995","lon":"120.9842"}]`))
	}))
	defer srv.Close()

	g := New(nil, srv.URL, time.Hour, zap.NewNop())
	pt, ok, err := g.Lookup(context.Background(), "Manila", "Philippines")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 14.5995, pt.Lat, 1e-4)
	assert.InDelta(t, 120.9842, pt.Lon, 1e-4)
}

func TestLookup_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := New(nil, srv.URL, time.Hour, zap.NewNop())
	_, ok, err := g.Lookup(context.Background(), "Nowhere", "Atlantis")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookup_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := New(nil, srv.URL, time.Hour, zap.NewNop())
	_, _, err := g.Lookup(context.Background(), "Manila", "Philippines")
	assert.Error(t, err)
}
