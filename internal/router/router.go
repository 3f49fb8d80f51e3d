package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/merylgrace/alumni-coordinator/internal/handlers"
	"github.com/merylgrace/alumni-coordinator/internal/middleware"
)

func RegisterRouter(h *handlers.Handler, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.NewLogging(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	// Public
	r.Post("/api/v1/auth/login", h.Login)
	r.Get("/api/v1/profile-info/{id}", h.ProfileInfo)
	r.Get("/api/v1/profiles/{id}/qrcode", h.ProfileQRCode)

	// Authenticated (read access for any role)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/api/v1/auth/me", h.Me)
		r.Get("/api/v1/profiles", h.ListProfiles)
		r.Get("/api/v1/profiles/export", h.ExportProfiles)
		r.Get("/api/v1/profiles/{id}", h.GetProfile)
		r.Get("/api/v1/announcements", h.ListAnnouncements)
		r.Get("/api/v1/dashboard/stats", h.DashboardStats)
		r.Get("/api/v1/dashboard/map", h.DashboardMap)

		// Mutations need the admin role; viewers are read-only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/api/v1/admins", h.CreateAdmin)
			r.Post("/api/v1/profiles", h.CreateProfile)
			r.Put("/api/v1/profiles/{id}", h.UpdateProfile)
			r.Delete("/api/v1/profiles/{id}", h.DeleteProfile)
			r.Patch("/api/v1/profiles/{id}/verify", h.ToggleVerify)
			r.Post("/api/v1/profiles/import", h.ImportProfiles)
			r.Post("/api/v1/profiles/generate-share-link", h.GenerateShareLink)
			r.Post("/api/v1/verify/bulk-roster", h.BulkVerifyRoster)
			r.Post("/api/v1/verify-document", h.VerifyDocument)
			r.Post("/api/v1/announcements", h.CreateAnnouncement)
			r.Put("/api/v1/announcements/{id}", h.UpdateAnnouncement)
			r.Delete("/api/v1/announcements/{id}", h.DeleteAnnouncement)
		})
	})
	return r
}
