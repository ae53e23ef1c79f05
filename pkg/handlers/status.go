package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/config"
	"github.com/nsight-ai/nsight-engine/pkg/datasource"
)

// maxStatusTables caps the table list in the status payload.
const maxStatusTables = 5

// StatusResponse reports store and model availability plus a schema sketch.
type StatusResponse struct {
	DBStatus  string   `json:"db_status"`
	AIStatus  string   `json:"ai_status"`
	Tables    []string `json:"tables"`
	TotalRows int64    `json:"total_rows"`
}

// StatusHandler handles the system status endpoint.
type StatusHandler struct {
	cfg    *config.Config
	store  datasource.Store
	logger *zap.Logger
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(cfg *config.Config, store datasource.Store, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{cfg: cfg, store: store, logger: logger}
}

// RegisterRoutes registers the status handler's routes on the given mux.
func (h *StatusHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/status", h.Status)
}

// Status handles GET /api/status requests. Introspection failures degrade to
// an empty table list rather than failing the status call.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		DBStatus: "offline",
		AIStatus: "offline",
		Tables:   []string{},
	}
	if h.cfg.AI.IsConfigured() {
		resp.AIStatus = "active"
	}

	if err := h.store.TestConnection(r.Context()); err == nil {
		resp.DBStatus = "connected"

		desc, err := h.store.Introspect(r.Context())
		if err != nil {
			h.logger.Warn("status introspection failed", zap.Error(err))
		} else {
			tables := desc.TableNames()
			if len(tables) > maxStatusTables {
				tables = tables[:maxStatusTables]
			}
			resp.Tables = tables
			resp.TotalRows = desc.TotalRows()
		}
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode status response", zap.Error(err))
	}
}
