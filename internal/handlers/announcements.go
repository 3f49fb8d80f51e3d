package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merylgrace/alumni-coordinator/internal/models"
)

type announcementRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Model(&models.Announcement{}).Order("created_at DESC")
	if r.URL.Query().Get("published") == "true" {
		q = q.Where("published = true")
	}
	var items []models.Announcement
	if err := q.Find(&items).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSONResp(w, http.StatusOK, items)
}

func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var body announcementRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	item := models.Announcement{
		Title:     body.Title,
		Body:      body.Body,
		Author:    actor(r),
		Published: body.Published,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create announcement")
		return
	}
	h.Audit.RecordAudit(r.Context(), actor(r), "create_announcement", item.Title)
	writeJSONResp(w, http.StatusCreated, item)
}

func (h *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	item, ok := h.announcementByParam(w, r)
	if !ok {
		return
	}
	var body announcementRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item.Title = body.Title
	item.Body = body.Body
	item.Published = body.Published
	if err := h.DB.Save(&item).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update announcement")
		return
	}
	writeJSONResp(w, http.StatusOK, item)
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	item, ok := h.announcementByParam(w, r)
	if !ok {
		return
	}
	if err := h.DB.Delete(&item).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete announcement")
		return
	}
	h.Audit.RecordAudit(r.Context(), actor(r), "delete_announcement", item.Title)
	writeJSONResp(w, http.StatusOK, map[string]any{"deleted": item.ID})
}

func (h *Handler) announcementByParam(w http.ResponseWriter, r *http.Request) (models.Announcement, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid announcement id")
		return models.Announcement{}, false
	}
	var item models.Announcement
	res := h.DB.Where("id = ?", id).First(&item)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "announcement not found")
		return models.Announcement{}, false
	} else if res.Error != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return models.Announcement{}, false
	}
	return item, true
}
