package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/merylgrace/alumni-coordinator/internal/middleware"
	"github.com/merylgrace/alumni-coordinator/internal/models"
	"github.com/merylgrace/alumni-coordinator/pkg"
)

// Login handles POST /api/v1/auth/login
// Body: { "email": "...", "password": "..." }
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var admin models.AdminUser
	err := h.DB.Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	signed, err := pkg.CreateToken(admin.Email, admin.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}
	log.Println("admin logged in:", admin.Email)
	writeJSONResp(w, http.StatusOK, map[string]any{
		"token": signed,
		"admin": admin,
		"authStatus": map[string]any{
			"isAuthenticated": true,
			"role":            admin.Role,
		},
	})
}

// CreateAdmin handles POST /api/v1/admins (admin role required). Creating an
// account that already exists returns the existing one (idempotent).
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	role, _ := body["role"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if role != models.RoleAdmin && role != models.RoleViewer {
		role = models.RoleViewer
	}

	var existing models.AdminUser
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		writeJSONResp(w, http.StatusOK, existing)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	admin := models.AdminUser{Email: email, PasswordHash: string(hash), Role: role}
	if err := h.DB.Create(&admin).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create admin")
		return
	}
	h.Audit.RecordAudit(r.Context(), actor(r), "create_admin", "created "+email+" as "+role)
	writeJSONResp(w, http.StatusCreated, admin)
}

// Me returns the current session's identity and role.
// GET /api/v1/auth/me (protected)
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value(middleware.AdminEmailKey).(string)
	if !ok || email == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	role, _ := r.Context().Value(middleware.AdminRoleKey).(string)
	writeJSONResp(w, http.StatusOK, map[string]any{
		"email":           email,
		"role":            role,
		"isAuthenticated": true,
	})
}
