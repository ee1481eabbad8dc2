// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports whether the API can serve invoice traffic.
type HealthController struct {
	databaseUp    func() bool
	emailWorkerOn bool
}

// HealthResponse is the liveness payload: overall status plus the state of
// the invoice store and the welcome-email worker.
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	EmailWorker string `json:"email_worker"`
	Timestamp   string `json:"timestamp"`
}

// NewHealthController creates the health endpoint handler. databaseUp is
// polled on every request; emailWorkerOn reflects whether the worker was
// started at boot.
func NewHealthController(databaseUp func() bool, emailWorkerOn bool) *HealthController {
	return &HealthController{
		databaseUp:    databaseUp,
		emailWorkerOn: emailWorkerOn,
	}
}

// Check handles GET /health requests. The endpoint always answers 200; a
// degraded dependency shows up in the payload, not in the status code.
func (h *HealthController) Check(c *gin.Context) {
	database := "unreachable"
	if h.databaseUp != nil && h.databaseUp() {
		database = "up"
	}

	worker := "disabled"
	if h.emailWorkerOn {
		worker = "running"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Database:    database,
		EmailWorker: worker,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
