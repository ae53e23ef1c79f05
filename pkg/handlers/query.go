package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/apperrors"
	"github.com/nsight-ai/nsight-engine/pkg/models"
	"github.com/nsight-ai/nsight-engine/pkg/services"
	"github.com/nsight-ai/nsight-engine/pkg/sqlguard"
)

// QueryRequest is the POST /api/query body.
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse is the successful query payload.
type QueryResponse struct {
	SQL       string            `json:"sql"`
	Data      []map[string]any  `json:"data"`
	Columns   []string          `json:"columns"`
	Insights  string            `json:"insights"`
	ChartSpec *models.ChartSpec `json:"chart_spec"`
	RowCount  int               `json:"row_count"`
	Message   string            `json:"message,omitempty"`
}

// QueryHandler handles natural-language query requests.
type QueryHandler struct {
	pipeline *services.Pipeline
	logger   *zap.Logger
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(pipeline *services.Pipeline, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{pipeline: pipeline, logger: logger}
}

// RegisterRoutes registers the query handler's routes on the given mux.
func (h *QueryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/query", h.Query)
}

// Query handles POST /api/query requests.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Question is required")
		return
	}

	outcome, err := h.pipeline.Run(r.Context(), req.Question)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	resp := QueryResponse{
		SQL:       outcome.SQL,
		Data:      outcome.Table.Rows,
		Columns:   outcome.Table.ColumnNames(),
		Insights:  outcome.Insights,
		ChartSpec: outcome.Chart,
		RowCount:  outcome.Table.RowCount(),
	}
	if resp.Data == nil {
		resp.Data = []map[string]any{}
	}
	if outcome.Table.IsEmpty() {
		resp.Message = "Query returned no results"
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode query response", zap.Error(err))
	}
}

// writePipelineError maps pipeline failures to status codes. Validator
// rejections are client-visible 400s; everything else is a 500 with the
// underlying message preserved.
func (h *QueryHandler) writePipelineError(w http.ResponseWriter, err error) {
	var unsafeErr *sqlguard.UnsafeQueryError

	switch {
	case errors.As(err, &unsafeErr),
		errors.Is(err, apperrors.ErrEmptyQuery),
		errors.Is(err, apperrors.ErrNotAReadQuery):
		_ = ErrorResponse(w, http.StatusBadRequest, "unsafe_query", err.Error())
	case errors.Is(err, apperrors.ErrSchemaUnavailable):
		_ = ErrorResponse(w, http.StatusInternalServerError, "schema_unavailable", "Unable to access database schema")
	case errors.Is(err, apperrors.ErrSynthesisFailed):
		_ = ErrorResponse(w, http.StatusInternalServerError, "synthesis_failed", "Could not generate SQL query")
	case errors.Is(err, apperrors.ErrExecutionFailed):
		_ = ErrorResponse(w, http.StatusInternalServerError, "execution_failed", err.Error())
	default:
		h.logger.Error("query pipeline failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
