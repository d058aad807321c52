package handlers

import (
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"
)

// HealthHandler provides health and readiness endpoints. There is no backing
// store to ping, so readiness flips on once the composition root finishes
// wiring the server.
type HealthHandler struct {
	ready atomic.Bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// SetReady marks the server as ready to accept traffic.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 once startup wiring has completed, 503 before that
// and during shutdown.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if !h.ready.Load() {
		return c.JSON(
			http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
