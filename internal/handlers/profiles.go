package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merylgrace/alumni-coordinator/internal/models"
	"github.com/merylgrace/alumni-coordinator/internal/verify"
)

type profileRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	GraduationYear   *int   `json:"graduation_year"`
	Degree           string `json:"degree"`
	EmploymentStatus string `json:"employment_status"`
	Employer         string `json:"employer"`
	JobTitle         string `json:"job_title"`
	City             string `json:"city"`
	Country          string `json:"country"`
}

// ListProfiles handles GET /api/v1/profiles with optional filters:
// ?q= (name substring), ?year=, ?verified=true|false, ?limit=, ?offset=
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Model(&models.Profile{}).Order("last_name, first_name")

	if search := r.URL.Query().Get("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if year := r.URL.Query().Get("year"); year != "" {
		if y, err := strconv.Atoi(year); err == nil {
			q = q.Where("graduation_year = ?", y)
		}
	}
	if v := r.URL.Query().Get("verified"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			if b {
				q = q.Where("verified = true")
			} else {
				q = q.Where("verified IS NOT TRUE")
			}
		}
	}
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	var profiles []models.Profile
	if err := q.Limit(limit).Offset(offset).Find(&profiles).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"total":    total,
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profileByParam(w, r)
	if !ok {
		return
	}
	writeJSONResp(w, http.StatusOK, profile)
}

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var body profileRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.FirstName == "" && body.LastName == "" {
		writeError(w, http.StatusBadRequest, "a name is required")
		return
	}
	profile := models.Profile{
		FirstName:        body.FirstName,
		LastName:         body.LastName,
		Email:            body.Email,
		GraduationYear:   body.GraduationYear,
		Degree:           body.Degree,
		EmploymentStatus: models.NormalizeEmploymentStatus(body.EmploymentStatus),
		Employer:         body.Employer,
		JobTitle:         body.JobTitle,
		City:             body.City,
		Country:          body.Country,
	}
	if err := h.DB.Create(&profile).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}
	h.Audit.RecordAudit(r.Context(), actor(r), "create_profile", "created "+profile.FullName())
	writeJSONResp(w, http.StatusCreated, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profileByParam(w, r)
	if !ok {
		return
	}
	var body profileRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	profile.FirstName = body.FirstName
	profile.LastName = body.LastName
	profile.Email = body.Email
	profile.GraduationYear = body.GraduationYear
	profile.Degree = body.Degree
	profile.EmploymentStatus = models.NormalizeEmploymentStatus(body.EmploymentStatus)
	profile.Employer = body.Employer
	profile.JobTitle = body.JobTitle
	profile.City = body.City
	profile.Country = body.Country
	if err := h.DB.Save(&profile).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeJSONResp(w, http.StatusOK, profile)
}

func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profileByParam(w, r)
	if !ok {
		return
	}
	if err := h.DB.Delete(&profile).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}
	h.Audit.RecordAudit(r.Context(), actor(r), "delete_profile", "deleted "+profile.FullName())
	writeJSONResp(w, http.StatusOK, map[string]any{"deleted": profile.ID})
}

// ToggleVerify handles PATCH /api/v1/profiles/{id}/verify. The flip is
// applied optimistically and rolled back if the database write fails, so the
// response always reflects committed state.
func (h *Handler) ToggleVerify(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profileByParam(w, r)
	if !ok {
		return
	}
	adminEmail := actor(r)

	err := verify.Apply(&profile,
		func(p *models.Profile) {
			next := !p.IsVerified()
			p.Verified = &next
			if next {
				now := time.Now()
				p.VerifiedAt = &now
				p.VerifiedBy = adminEmail
			} else {
				p.VerifiedAt = nil
				p.VerifiedBy = ""
			}
		},
		func(p models.Profile) error {
			return h.DB.Model(&models.Profile{}).Where("id = ?", p.ID).
				Updates(map[string]any{
					"verified":    p.Verified,
					"verified_at": p.VerifiedAt,
					"verified_by": p.VerifiedBy,
				}).Error
		})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update verification status")
		return
	}

	h.Audit.RecordAudit(r.Context(), adminEmail, "toggle_verify",
		fmt.Sprintf("profile=%s verified=%t", profile.ID, profile.IsVerified()))
	writeJSONResp(w, http.StatusOK, profile)
}

var exportHeaders = []string{"first_name", "last_name", "email", "graduation_year", "degree", "employment_status", "employer", "job_title", "city", "country", "verified"}

// ExportProfiles handles GET /api/v1/profiles/export and streams the full
// profile set as CSV, import-compatible with ImportProfiles.
func (h *Handler) ExportProfiles(w http.ResponseWriter, r *http.Request) {
	var profiles []models.Profile
	if err := h.DB.Order("last_name, first_name").Find(&profiles).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="alumni_profiles.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write(exportHeaders)
	for _, p := range profiles {
		year := ""
		if p.GraduationYear != nil {
			year = strconv.Itoa(*p.GraduationYear)
		}
		_ = cw.Write([]string{
			p.FirstName, p.LastName, p.Email, year, p.Degree,
			p.EmploymentStatus, p.Employer, p.JobTitle, p.City, p.Country,
			strconv.FormatBool(p.IsVerified()),
		})
	}
	cw.Flush()
}

func (h *Handler) profileByParam(w http.ResponseWriter, r *http.Request) (models.Profile, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return models.Profile{}, false
	}
	var profile models.Profile
	res := h.DB.Where("id = ?", id).First(&profile)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return models.Profile{}, false
	} else if res.Error != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return models.Profile{}, false
	}
	return profile, true
}
