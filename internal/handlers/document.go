package handlers

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	vision "cloud.google.com/go/vision/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"google.golang.org/api/option"

	"github.com/merylgrace/alumni-coordinator/internal/models"
	"github.com/merylgrace/alumni-coordinator/internal/verify"
)

// nameConfidenceThreshold is the Jaro-Winkler similarity a scanned name must
// reach against the matched profile before the document counts as verified.
const nameConfidenceThreshold = 0.85

// VerifyDocument handles POST /api/v1/verify-document: a scanned graduation
// document uploaded as multipart field "document". The image is OCR'd, the
// fields extracted, and the result compared against the profile whose
// normalized name+year matches.
func (h *Handler) VerifyDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to parse form or file too large"})
		return
	}
	file, _, ok := formFileLenient(r, "document")
	if !ok {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "missing file field 'document'"})
		return
	}
	defer file.Close()

	imgBytes, err := io.ReadAll(file)
	if err != nil || len(imgBytes) == 0 {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to read uploaded file"})
		return
	}

	raw, err := detectText(r.Context(), imgBytes)
	if err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "could not extract text from image: " + err.Error()})
		return
	}

	doc, err := ParseAlumniDocument(r.Context(), raw)
	if err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": err.Error()})
		return
	}

	year, err := strconv.Atoi(strings.TrimSpace(doc.YearOfPassing))
	if err != nil {
		writeJSONResp(w, http.StatusOK, map[string]any{
			"status":  "Not_Found",
			"message": "The document does not carry a readable graduation year.",
		})
		return
	}

	var all []models.Profile
	if err := h.DB.Where("graduation_year = ?", year).Find(&all).Error; err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}

	key := verify.Key(doc.FullName, year)
	var matched *models.Profile
	for i := range all {
		if verify.Key(all[i].FullName(), year) == key {
			matched = &all[i]
			break
		}
	}
	if matched == nil {
		writeJSONResp(w, http.StatusOK, map[string]any{
			"status":  "Not_Found",
			"message": "No matching profile was found for the scanned name and year.",
		})
		return
	}

	metric := metrics.NewJaroWinkler()
	conf := strutil.Similarity(
		strings.ToLower(strings.TrimSpace(doc.FullName)),
		strings.ToLower(matched.FullName()),
		metric,
	)

	data := map[string]any{
		"full_name_ocr":    doc.FullName,
		"year_of_passing":  doc.YearOfPassing,
		"degree_ocr":       doc.Degree,
		"institution_ocr":  doc.InstitutionName,
		"matched_profile":  matched,
	}
	if conf >= nameConfidenceThreshold {
		writeJSONResp(w, http.StatusOK, map[string]any{
			"status":           "Verified",
			"match_confidence": conf,
			"data":             data,
		})
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{
		"status":           "Potentially_Tampered",
		"match_confidence": conf,
		"message":          "The name on the document does not sufficiently match the profile record.",
		"data":             data,
	})
}

// detectText OCRs an image with Google Vision.
func detectText(ctx context.Context, imgBytes []byte) (string, error) {
	var client *vision.ImageAnnotatorClient
	var err error
	if credPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credPath != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credPath))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return "", err
	}
	defer client.Close()

	img := &visionpb.Image{Content: imgBytes}
	anns, err := client.DetectTexts(ctx, img, nil, 1)
	if err != nil {
		return "", err
	}
	if len(anns) == 0 || anns[0].Description == "" {
		return "", errNoText
	}
	return anns[0].Description, nil
}
