package handlers

import (
	"io"
	"net/http"
)

// BulkVerifyRoster handles POST /api/v1/verify/bulk-roster: an uploaded CSV
// roster of graduates to mark verified. Parsing and matching happen in the
// verify service; an unusable file comes back as a structured result with a
// message, not an error status, so the UI can tell the admin what to fix.
func (h *Handler) BulkVerifyRoster(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	file, header, ok := formFileLenient(r, "rosterCsv")
	if !ok {
		writeError(w, http.StatusBadRequest, "rosterCsv file is required")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	outcome, err := h.Verifier.VerifyRoster(r.Context(), actor(r), header.Filename, string(raw))
	if err != nil {
		writeError(w, http.StatusBadGateway, "bulk verification failed: "+err.Error())
		return
	}
	writeJSONResp(w, http.StatusOK, outcome)
}
