package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/merylgrace/alumni-coordinator/internal/models"
)

var importHeaders = []string{"first_name", "last_name", "email", "graduation_year", "degree", "employment_status", "city", "country"}

// ImportProfiles handles POST /api/v1/profiles/import: a strict-template CSV
// of new alumni profiles, inserted in one transaction. Rows whose email is
// already present are skipped as duplicates. Unlike the verification roster,
// this endpoint insists on the exact template header.
func (h *Handler) ImportProfiles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := r.ParseMultipartForm(50 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	file, header, ok := formFileLenient(r, "profilesCsv")
	if !ok {
		writeError(w, http.StatusBadRequest, "profilesCsv file is required")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		writeError(w, http.StatusBadRequest, "unable to read CSV header")
		return
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
	}
	if !equalStringSlices(headers, importHeaders) {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{
			"error":    "Invalid CSV format. Please use the provided template.",
			"expected": importHeaders,
			"got":      headers,
		})
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		writeError(w, http.StatusInternalServerError, "could not start transaction")
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	var inserted, duplicates int
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			tx.Rollback()
			writeError(w, http.StatusBadRequest, "failed to read CSV rows")
			return
		}
		if len(rec) != len(importHeaders) {
			tx.Rollback()
			writeError(w, http.StatusBadRequest, "row does not match header length")
			return
		}

		email := strings.ToLower(strings.TrimSpace(rec[2]))
		var year *int
		if s := strings.TrimSpace(rec[3]); s != "" {
			y, err := strconv.Atoi(s)
			if err != nil {
				tx.Rollback()
				writeError(w, http.StatusBadRequest, "invalid graduation_year")
				return
			}
			year = &y
		}

		if email != "" {
			var dup int64
			if err := tx.Model(&models.Profile{}).Where("email = ?", email).Count(&dup).Error; err != nil {
				tx.Rollback()
				writeError(w, http.StatusInternalServerError, "database error during duplicate check")
				return
			}
			if dup > 0 {
				duplicates++
				continue
			}
		}

		row := models.Profile{
			FirstName:        strings.TrimSpace(rec[0]),
			LastName:         strings.TrimSpace(rec[1]),
			Email:            email,
			GraduationYear:   year,
			Degree:           strings.TrimSpace(rec[4]),
			EmploymentStatus: models.NormalizeEmploymentStatus(rec[5]),
			City:             strings.TrimSpace(rec[6]),
			Country:          strings.TrimSpace(rec[7]),
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			writeError(w, http.StatusInternalServerError, "failed to insert row")
			return
		}
		inserted++
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		writeError(w, http.StatusInternalServerError, "failed to commit transaction")
		return
	}

	h.Audit.RecordAudit(r.Context(), actor(r), "import_profiles",
		fmt.Sprintf("inserted=%d duplicates=%d file=%s", inserted, duplicates, header.Filename))
	writeJSONResp(w, http.StatusOK, map[string]any{
		"message":            fmt.Sprintf("Successfully imported %d profiles. Skipped %d duplicates.", inserted, duplicates),
		"inserted":           inserted,
		"duplicates_skipped": duplicates,
		"file":               header.Filename,
	})
}

// formFileLenient prefers the named field but falls back to common
// alternatives and finally to the first file field present. Frontends are
// not consistent about field naming.
func formFileLenient(r *http.Request, preferred string) (multipart.File, *multipart.FileHeader, bool) {
	if f, hdr, err := r.FormFile(preferred); err == nil {
		return f, hdr, true
	}
	var available []string
	if r.MultipartForm != nil && r.MultipartForm.File != nil {
		for k := range r.MultipartForm.File {
			available = append(available, k)
		}
	}
	alts := []string{"file", "csv", "upload", "roster", "rosterCsv", "records", "files[]"}
	for _, a := range alts {
		for _, k := range available {
			if strings.EqualFold(k, a) {
				if f, hdr, err := r.FormFile(k); err == nil {
					return f, hdr, true
				}
			}
		}
	}
	if len(available) > 0 {
		if f, hdr, err := r.FormFile(available[0]); err == nil {
			return f, hdr, true
		}
	}
	return nil, nil, false
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
