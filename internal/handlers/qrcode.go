package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
)

// ProfileQRCode handles GET /api/v1/profiles/{id}/qrcode and returns a PNG
// encoding the profile's public page URL.
func (h *Handler) ProfileQRCode(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	if profileID == "" {
		http.Error(w, "missing profile id", http.StatusBadRequest)
		return
	}

	data := strings.TrimRight(h.FrontendBaseURL, "/") + "/alumni/" + profileID

	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
