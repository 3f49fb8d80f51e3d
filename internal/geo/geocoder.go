// Package geo resolves city/country pairs to coordinates for the dashboard
// map. Results are cached in Redis so the upstream geocoder is hit at most
// once per location per TTL window.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const negativeEntry = "none"

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Geocoder struct {
	rdb     *redis.Client
	client  *http.Client
	baseURL string
	ttl     time.Duration
	log     *zap.Logger
}

func New(rdb *redis.Client, baseURL string, ttl time.Duration, log *zap.Logger) *Geocoder {
	return &Geocoder{
		rdb:     rdb,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
		log:     log,
	}
}

// Lookup returns the coordinates for a location, consulting the cache first.
// ok is false when the location cannot be resolved; that outcome is cached
// too (shorter TTL) so unknown towns do not hammer the upstream service.
func (g *Geocoder) Lookup(ctx context.Context, city, country string) (Point, bool, error) {
	key := cacheKey(city, country)

	if g.rdb != nil {
		cached, err := g.rdb.Get(ctx, key).Result()
		if err == nil {
			return decodeEntry(cached)
		}
		if !errors.Is(err, redis.Nil) {
			g.log.Warn("geocode cache read failed", zap.Error(err))
		}
	}

	pt, ok, err := g.fetch(ctx, city, country)
	if err != nil {
		return Point{}, false, err
	}

	if g.rdb != nil {
		entry, ttl := encodeEntry(pt, ok), g.ttl
		if !ok {
			ttl = 24 * time.Hour
		}
		if err := g.rdb.Set(ctx, key, entry, ttl).Err(); err != nil {
			g.log.Warn("geocode cache write failed", zap.Error(err))
		}
	}
	return pt, ok, nil
}

func (g *Geocoder) fetch(ctx context.Context, city, country string) (Point, bool, error) {
	q := url.Values{}
	q.Set("q", strings.TrimSpace(city+", "+country))
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return Point{}, false, err
	}
	req.Header.Set("User-Agent", "alumni-coordinator/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return Point{}, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Point{}, false, fmt.Errorf("geocoder returned %s", resp.Status)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, false, err
	}
	if len(results) == 0 {
		return Point{}, false, nil
	}
	lat, err1 := strconv.ParseFloat(results[0].Lat, 64)
	lon, err2 := strconv.ParseFloat(results[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return Point{}, false, nil
	}
	return Point{Lat: lat, Lon: lon}, true, nil
}

func cacheKey(city, country string) string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return "geo:" + norm(city) + "|" + norm(country)
}

func encodeEntry(pt Point, ok bool) string {
	if !ok {
		return negativeEntry
	}
	return strconv.FormatFloat(pt.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(pt.Lon, 'f', -1, 64)
}

func decodeEntry(entry string) (Point, bool, error) {
	if entry == negativeEntry {
		return Point{}, false, nil
	}
	parts := strings.SplitN(entry, ",", 2)
	if len(parts) != 2 {
		return Point{}, false, nil
	}
	lat, err1 := strconv.ParseFloat(parts[0], 64)
	lon, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return Point{}, false, nil
	}
	return Point{Lat: lat, Lon: lon}, true, nil
}
