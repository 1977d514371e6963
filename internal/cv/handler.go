package cv

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/commhendrix/academic-portfolio/internal/models"
)

const pdfObjectKey = "cv.pdf"

// Limit on an uploaded CV PDF.
const maxPDFSize = 10 << 20

// CVStore defines the interface for profile persistence.
type CVStore interface {
	Get(ctx context.Context) (*models.CV, error)
	Replace(ctx context.Context, cv *models.CV) error
	SetPDFObjectKey(ctx context.Context, key string) error
}

// FileStore defines the interface for PDF object storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// Handler holds CV HTTP handlers.
type Handler struct {
	cvs   CVStore
	files FileStore
}

func NewHandler(cvs CVStore, files FileStore) *Handler {
	return &Handler{cvs: cvs, files: files}
}

// Get returns the public CV profile.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cv, err := h.cvs.Get(r.Context())
	if err != nil {
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if cv == nil {
		http.Error(w, `{"error":"cv not available"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cv)
}

// Update replaces the CV profile. Admin only (enforced by middleware).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var cv models.CV
	if err := json.NewDecoder(r.Body).Decode(&cv); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if cv.Name == "" {
		http.Error(w, `{"error":"name is required"}`, http.StatusBadRequest)
		return
	}
	if err := h.cvs.Replace(r.Context(), &cv); err != nil {
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&cv)
}

// DownloadPDF streams the stored CV PDF.
func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	cv, err := h.cvs.Get(r.Context())
	if err != nil || cv == nil || cv.PDFObjectKey == "" {
		http.Error(w, `{"error":"pdf not available"}`, http.StatusNotFound)
		return
	}

	data, ct, err := h.files.Download(r.Context(), cv.PDFObjectKey)
	if err != nil {
		http.Error(w, `{"error":"download failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", "attachment; filename=cv.pdf")
	w.Write(data)
}

// UploadPDF stores a raw PDF body as the downloadable CV. Admin only.
func (h *Handler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxPDFSize+1))
	if err != nil {
		http.Error(w, `{"error":"read body failed"}`, http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		http.Error(w, `{"error":"empty body"}`, http.StatusBadRequest)
		return
	}
	if len(data) > maxPDFSize {
		http.Error(w, `{"error":"pdf too large"}`, http.StatusRequestEntityTooLarge)
		return
	}

	if err := h.files.Upload(r.Context(), pdfObjectKey, data, "application/pdf"); err != nil {
		http.Error(w, `{"error":"upload failed"}`, http.StatusInternalServerError)
		return
	}
	if err := h.cvs.SetPDFObjectKey(r.Context(), pdfObjectKey); err != nil {
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message":"pdf stored"}`))
}
