package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/merylgrace/alumni-coordinator/internal/models"
)

type yearCount struct {
	GraduationYear int   `json:"graduation_year"`
	Count          int64 `json:"count"`
}

type statusCount struct {
	EmploymentStatus string `json:"employment_status"`
	Count            int64  `json:"count"`
}

// DashboardStats handles GET /api/v1/dashboard/stats.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	var total, verified, announcements int64
	if err := h.DB.Model(&models.Profile{}).Count(&total).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if err := h.DB.Model(&models.Profile{}).Where("verified = true").Count(&verified).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if err := h.DB.Model(&models.Announcement{}).Where("published = true").Count(&announcements).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	var byYear []yearCount
	if err := h.DB.Model(&models.Profile{}).
		Select("graduation_year, count(*) as count").
		Where("graduation_year IS NOT NULL").
		Group("graduation_year").
		Order("graduation_year").
		Scan(&byYear).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	var byStatus []statusCount
	if err := h.DB.Model(&models.Profile{}).
		Select("employment_status, count(*) as count").
		Group("employment_status").
		Scan(&byStatus).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"total_profiles":          total,
		"verified_profiles":       verified,
		"unverified_profiles":     total - verified,
		"published_announcements": announcements,
		"by_graduation_year":      byYear,
		"by_employment_status":    byStatus,
	})
}

type mapMarker struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Count   int64   `json:"count"`
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
	Located bool    `json:"located"`
}

// DashboardMap handles GET /api/v1/dashboard/map: one marker per distinct
// city/country with a resident count. Geocoding is best-effort; a location
// that cannot be resolved still appears, just without coordinates.
func (h *Handler) DashboardMap(w http.ResponseWriter, r *http.Request) {
	var rows []struct {
		City    string
		Country string
		Count   int64
	}
	if err := h.DB.Model(&models.Profile{}).
		Select("city, country, count(*) as count").
		Where("city <> ''").
		Group("city, country").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	markers := make([]mapMarker, 0, len(rows))
	for _, row := range rows {
		m := mapMarker{City: row.City, Country: row.Country, Count: row.Count}
		if h.Geocoder != nil {
			pt, ok, err := h.Geocoder.Lookup(r.Context(), row.City, row.Country)
			if err != nil {
				h.Log.Warn("geocode lookup failed", zap.String("city", row.City), zap.Error(err))
			} else if ok {
				m.Lat, m.Lon, m.Located = pt.Lat, pt.Lon, true
			}
		}
		markers = append(markers, m)
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"markers": markers})
}
