package health_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ticketry/ticketry/internal/app/features/health"
	"github.com/ticketry/ticketry/internal/testutil"
	"go.uber.org/zap"
)

func TestServe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	testutil.DecodeBody(t, rec, &resp)
	if resp.Status != "ok" || resp.Database != "connected" {
		t.Errorf("response = %+v", resp)
	}
}
