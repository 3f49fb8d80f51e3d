package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/merylgrace/alumni-coordinator/internal/geo"
	"github.com/merylgrace/alumni-coordinator/internal/middleware"
	"github.com/merylgrace/alumni-coordinator/internal/verify"
)

// Handler bundles the injected dependencies the HTTP layer needs. There is no
// package-level database client.
type Handler struct {
	DB              *gorm.DB
	Log             *zap.Logger
	Verifier        *verify.Service
	Audit           verify.AuditRecorder
	Geocoder        *geo.Geocoder
	FrontendBaseURL string
}

func writeJSONResp(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSONResp(w, status, map[string]any{"error": msg})
}

// actor pulls the authenticated admin email off the context.
func actor(r *http.Request) string {
	email, _ := r.Context().Value(middleware.AdminEmailKey).(string)
	return email
}
