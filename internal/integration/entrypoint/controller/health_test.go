package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthController_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		databaseUp func() bool
		workerOn   bool
		wantDB     string
		wantWorker string
	}{
		{
			name:       "database reachable and worker running",
			databaseUp: func() bool { return true },
			workerOn:   true,
			wantDB:     "up",
			wantWorker: "running",
		},
		{
			name:       "database down and worker disabled",
			databaseUp: func() bool { return false },
			workerOn:   false,
			wantDB:     "unreachable",
			wantWorker: "disabled",
		},
		{
			name:       "no database checker wired",
			databaseUp: nil,
			workerOn:   false,
			wantDB:     "unreachable",
			wantWorker: "disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

			NewHealthController(tt.databaseUp, tt.workerOn).Check(ctx)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}

			var body HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}
			if body.Status != "ok" {
				t.Errorf("expected status ok, got %q", body.Status)
			}
			if body.Database != tt.wantDB {
				t.Errorf("expected database %q, got %q", tt.wantDB, body.Database)
			}
			if body.EmailWorker != tt.wantWorker {
				t.Errorf("expected email_worker %q, got %q", tt.wantWorker, body.EmailWorker)
			}
			if body.Timestamp == "" {
				t.Error("expected a timestamp")
			}
		})
	}
}
