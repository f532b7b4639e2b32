package http

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines the interface for health check dependencies
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// TicketCounter is optionally implemented by sources that can report how
// many tickets are visible, used as a smoke probe on the detailed check.
type TicketCounter interface {
	CountTickets(ctx context.Context) (int64, error)
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db        HealthChecker
	startTime time.Time
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db HealthChecker, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version,omitempty"`
	Uptime    string           `json:"uptime,omitempty"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
	Tickets *int64 `json:"tickets,omitempty"`
}

// HandleLiveness handles liveness probe requests (is the service running?)
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness handles readiness probe requests (can the service accept traffic?)
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]Check{
		"database": h.checkDatabase(ctx, false),
	}

	overallStatus := "healthy"
	statusCode := http.StatusOK
	if checks["database"].Status != "healthy" {
		overallStatus = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	WriteJSON(w, statusCode, HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    checks,
	})
}

// HandleHealth handles detailed health check requests. Besides the ping it
// runs a ticket-count smoke query against the GLPI schema, so a reachable
// server with a missing or broken schema still shows up as degraded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]Check{
		"database": h.checkDatabase(ctx, true),
	}

	overallStatus := "healthy"
	statusCode := http.StatusOK
	if checks["database"].Status != "healthy" {
		overallStatus = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	WriteJSON(w, statusCode, HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    checks,
	})
}

// checkDatabase checks the database connection, optionally probing the
// ticket table as well.
func (h *HealthHandler) checkDatabase(ctx context.Context, probeTickets bool) Check {
	start := time.Now()

	if h.db == nil {
		return Check{
			Status:  "unhealthy",
			Message: "Database not configured",
		}
	}

	if err := h.db.Ping(ctx); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: err.Error(),
			Latency: time.Since(start).String(),
		}
	}

	check := Check{
		Status:  "healthy",
		Latency: time.Since(start).String(),
	}

	if probeTickets {
		if counter, ok := h.db.(TicketCounter); ok {
			count, err := counter.CountTickets(ctx)
			if err != nil {
				check.Status = "unhealthy"
				check.Message = err.Error()
			} else {
				check.Tickets = &count
			}
			check.Latency = time.Since(start).String()
		}
	}

	return check
}
