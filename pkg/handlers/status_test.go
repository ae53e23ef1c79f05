package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/config"
	"github.com/nsight-ai/nsight-engine/pkg/models"
)

func statusConfig(aiKey string) *config.Config {
	cfg := &config.Config{}
	cfg.AI = *aiConfig()
	cfg.AI.APIKey = aiKey
	return cfg
}

func getStatus(t *testing.T, h *StatusHandler) StatusResponse {
	t.Helper()
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestStatus_AllUp(t *testing.T) {
	store := &stubStore{desc: models.SchemaDescription{
		{Name: "customers", RowCount: 10},
		{Name: "transactions", RowCount: 32},
	}}
	resp := getStatus(t, NewStatusHandler(statusConfig("key"), store, zap.NewNop()))

	if resp.DBStatus != "connected" {
		t.Errorf("db_status %q", resp.DBStatus)
	}
	if resp.AIStatus != "active" {
		t.Errorf("ai_status %q", resp.AIStatus)
	}
	if len(resp.Tables) != 2 || resp.Tables[0] != "customers" {
		t.Errorf("tables %v", resp.Tables)
	}
	if resp.TotalRows != 42 {
		t.Errorf("total_rows %d", resp.TotalRows)
	}
}

func TestStatus_DBOffline(t *testing.T) {
	store := &stubStore{connectErr: errors.New("connection refused")}
	resp := getStatus(t, NewStatusHandler(statusConfig("key"), store, zap.NewNop()))

	if resp.DBStatus != "offline" {
		t.Errorf("db_status %q", resp.DBStatus)
	}
	if resp.Tables == nil || len(resp.Tables) != 0 {
		t.Errorf("tables should encode as an empty array, got %v", resp.Tables)
	}
}

func TestStatus_AINotConfigured(t *testing.T) {
	resp := getStatus(t, NewStatusHandler(statusConfig(""), &stubStore{}, zap.NewNop()))
	if resp.AIStatus != "offline" {
		t.Errorf("ai_status %q", resp.AIStatus)
	}
}

func TestStatus_TableListCapped(t *testing.T) {
	desc := models.SchemaDescription{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		desc = append(desc, models.TableDescription{Name: name, RowCount: 1})
	}
	resp := getStatus(t, NewStatusHandler(statusConfig("key"), &stubStore{desc: desc}, zap.NewNop()))

	if len(resp.Tables) != maxStatusTables {
		t.Errorf("expected %d tables, got %v", maxStatusTables, resp.Tables)
	}
	if resp.TotalRows != 7 {
		t.Errorf("total_rows should count every table, got %d", resp.TotalRows)
	}
}

func TestStatus_IntrospectFailureDegrades(t *testing.T) {
	store := &stubStore{introspecErr: errors.New("catalog busy")}
	resp := getStatus(t, NewStatusHandler(statusConfig("key"), store, zap.NewNop()))

	if resp.DBStatus != "connected" {
		t.Errorf("db_status %q", resp.DBStatus)
	}
	if len(resp.Tables) != 0 || resp.TotalRows != 0 {
		t.Errorf("expected empty schema sketch, got %+v", resp)
	}
}
