// Package verify implements roster-driven bulk verification of alumni
// profiles: normalized name+year matching, partitioning into
// verify/already-verified/unmatched, and the service that applies the result
// through the backing store.
package verify

import (
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/google/uuid"

	"github.com/merylgrace/alumni-coordinator/internal/models"
	"github.com/merylgrace/alumni-coordinator/internal/roster"
)

// suggestionThreshold mirrors the confidence bar used by document
// verification. Suggestions are diagnostics only and never verify anyone.
const suggestionThreshold = 0.85

// Suggestion points an admin at a profile that nearly matched an unmatched
// roster row, typically a typo or an extra middle name.
type Suggestion struct {
	RosterName  string    `json:"roster_name"`
	Year        int       `json:"year"`
	ProfileID   uuid.UUID `json:"profile_id"`
	ProfileName string    `json:"profile_name"`
	Similarity  float64   `json:"similarity"`
}

// MatchResult partitions a roster against the profile set.
type MatchResult struct {
	ToVerify        []models.Profile `json:"to_verify"`
	AlreadyVerified int              `json:"already_verified"`
	UnmatchedCount  int              `json:"unmatched_count"`
	AmbiguousCount  int              `json:"ambiguous_count"`
	Suggestions     []Suggestion     `json:"suggestions,omitempty"`
}

// NormalizeName lowercases, trims, and collapses whitespace runs so that
// differently formatted spellings of the same name compare equal.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Key builds the lookup key for a name and graduation year. The year is
// formatted from its integer value so comparison is numeric.
func Key(name string, year int) string {
	return fmt.Sprintf("%s|%d", NormalizeName(name), year)
}

func profileKey(p models.Profile) (string, bool) {
	if p.FirstName == "" || p.LastName == "" || p.GraduationYear == nil {
		return "", false
	}
	return Key(p.FirstName+" "+p.LastName, *p.GraduationYear), true
}

// Match partitions roster records against profiles. Only profiles with both
// names and a graduation year are indexed. Two profiles normalizing to the
// same key make that key ambiguous: rows hitting it are counted separately
// and verify nobody, rather than silently picking a winner.
func Match(profiles []models.Profile, records []roster.Record) MatchResult {
	index := make(map[string]models.Profile)
	ambiguous := make(map[string]bool)
	byYear := make(map[int][]models.Profile)

	for _, p := range profiles {
		key, ok := profileKey(p)
		if !ok {
			continue
		}
		if _, dup := index[key]; dup || ambiguous[key] {
			ambiguous[key] = true
			delete(index, key)
			continue
		}
		index[key] = p
		byYear[*p.GraduationYear] = append(byYear[*p.GraduationYear], p)
	}

	var res MatchResult
	seen := make(map[uuid.UUID]bool)
	metric := metrics.NewJaroWinkler()

	for _, rec := range records {
		key := Key(rec.FullName, rec.Year)
		if ambiguous[key] {
			res.AmbiguousCount++
			continue
		}
		p, ok := index[key]
		if !ok {
			res.UnmatchedCount++
			if s, found := nearestProfile(rec, byYear[rec.Year], metric); found {
				res.Suggestions = append(res.Suggestions, s)
			}
			continue
		}
		if p.IsVerified() {
			res.AlreadyVerified++
			continue
		}
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		res.ToVerify = append(res.ToVerify, p)
	}
	return res
}

func nearestProfile(rec roster.Record, candidates []models.Profile, metric *metrics.JaroWinkler) (Suggestion, bool) {
	target := NormalizeName(rec.FullName)
	best := Suggestion{}
	for _, p := range candidates {
		sim := strutil.Similarity(target, NormalizeName(p.FullName()), metric)
		if sim >= suggestionThreshold && sim > best.Similarity {
			best = Suggestion{
				RosterName:  rec.FullName,
				Year:        rec.Year,
				ProfileID:   p.ID,
				ProfileName: p.FullName(),
				Similarity:  sim,
			}
		}
	}
	return best, best.ProfileID != uuid.Nil
}
