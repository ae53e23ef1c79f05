package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/export"
	"github.com/nsight-ai/nsight-engine/pkg/models"
)

// DownloadRequest carries a previously returned result set back to the
// server for rendering. Columns preserves projection order; without it the
// column order of the artifact is unspecified.
type DownloadRequest struct {
	Question string           `json:"question"`
	Insights string           `json:"insights"`
	SQL      string           `json:"sql"`
	Columns  []string         `json:"columns"`
	Data     []map[string]any `json:"data"`
}

// DownloadHandler renders result sets into downloadable artifacts.
type DownloadHandler struct {
	pdf    *export.PDFRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewDownloadHandler creates a new download handler.
func NewDownloadHandler(logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		pdf:    export.NewPDFRenderer(),
		logger: logger,
		now:    time.Now,
	}
}

// RegisterRoutes registers the download handler's routes on the given mux.
func (h *DownloadHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/download/pdf", h.PDF)
	mux.HandleFunc("POST /api/download/csv", h.CSV)
}

// PDF handles POST /api/download/pdf requests.
func (h *DownloadHandler) PDF(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	table := models.TableFromRecords(req.Columns, req.Data)
	artifact, err := h.pdf.Render(req.Question, req.Insights, req.SQL, table)
	if err != nil {
		h.logger.Error("PDF render failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	filename := fmt.Sprintf("finance_report_%s.pdf", h.now().Format("20060102_150405"))
	h.serveAttachment(w, "application/pdf", filename, artifact)
}

// CSV handles POST /api/download/csv requests.
func (h *DownloadHandler) CSV(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	table := models.TableFromRecords(req.Columns, req.Data)
	artifact, err := export.CSV(table)
	if err != nil {
		h.logger.Error("CSV render failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	filename := fmt.Sprintf("finance_data_%s.csv", h.now().Format("20060102_150405"))
	h.serveAttachment(w, "text/csv", filename, artifact)
}

func (h *DownloadHandler) decode(w http.ResponseWriter, r *http.Request) (*DownloadRequest, bool) {
	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return nil, false
	}
	return &req, true
}

func (h *DownloadHandler) serveAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("Failed to write attachment", zap.Error(err))
	}
}
