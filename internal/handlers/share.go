package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/merylgrace/alumni-coordinator/internal/models"
)

type shareClaims struct {
	ProfileID string `json:"profile_id"`
	jwt.RegisteredClaims
}

func getShareSecret() ([]byte, error) {
	if s := os.Getenv("SHARE_TOKEN_SECRET"); s != "" {
		return []byte(s), nil
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s), nil
	}
	return nil, errors.New("missing SHARE_TOKEN_SECRET/JWT_SECRET")
}

// GenerateShareLink handles POST /api/v1/profiles/generate-share-link
// (protected). The link lets someone outside the admin console view one
// profile card until the token expires.
func (h *Handler) GenerateShareLink(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	profileID := ""
	if v, ok := payload["profile_id"].(string); ok {
		profileID = strings.TrimSpace(v)
	} else if v, ok := payload["profileId"].(string); ok { // camelCase fallback
		profileID = strings.TrimSpace(v)
	}
	if profileID == "" {
		writeError(w, http.StatusBadRequest, "profile_id is required")
		return
	}

	// expires_in_hours may come as number or string
	parseHours := func(x any) (int, bool) {
		switch t := x.(type) {
		case float64:
			return int(t), true
		case json.Number:
			if i, err := strconv.Atoi(t.String()); err == nil {
				return i, true
			}
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return i, true
			}
		}
		return 0, false
	}
	expires := 0
	for _, key := range []string{"expires_in_hours", "expiresInHours", "duration"} {
		if v, ok := payload[key]; ok {
			if i, ok2 := parseHours(v); ok2 {
				expires = i
				break
			}
		}
	}
	if expires < 1 || expires > 168 {
		writeError(w, http.StatusBadRequest, "expires_in_hours must be between 1 and 168")
		return
	}

	var profile models.Profile
	if err := h.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	secret, err := getShareSecret()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server misconfigured")
		return
	}

	exp := time.Now().Add(time.Duration(expires) * time.Hour)
	claims := shareClaims{
		ProfileID: profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign share token")
		return
	}

	url := fmt.Sprintf("%s/alumni/%s?token=%s", strings.TrimRight(h.FrontendBaseURL, "/"), profileID, signed)
	writeJSONResp(w, http.StatusOK, map[string]any{"shareable_url": url})
}

// ProfileInfo handles GET /api/v1/profile-info/{id}?token=... (public).
func (h *Handler) ProfileInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		writeError(w, http.StatusUnauthorized, "This share link is invalid or has expired.")
		return
	}

	secret, err := getShareSecret()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server misconfigured")
		return
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &shareClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		writeError(w, http.StatusUnauthorized, "This share link is invalid or has expired.")
		return
	}
	claims, ok := parsed.Claims.(*shareClaims)
	if !ok || claims.ProfileID == "" || claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		writeError(w, http.StatusUnauthorized, "This share link is invalid or has expired.")
		return
	}
	if claims.ProfileID != id {
		writeError(w, http.StatusForbidden, "forbidden: id mismatch")
		return
	}

	var profile models.Profile
	res := h.DB.Where("id = ?", id).First(&profile)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	} else if res.Error != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"profile":     profile,
		"valid_until": claims.ExpiresAt.Time,
	})
}
