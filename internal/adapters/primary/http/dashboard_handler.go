package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/domain"
	apperrors "github.com/sesma-ti/glpi-dashboard-backend/internal/core/errors"
	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/ports"
)

const dateLayout = "2006-01-02"

// DashboardHandler serves the aggregated dashboard payload.
type DashboardHandler struct {
	service      ports.DashboardService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service ports.DashboardService, errorHandler *ErrorHandler, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// RegisterRoutes registers the dashboard routes on the given router.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetDashboard)
}

// HandleGetDashboard handles GET /api/v1/dashboard.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTicketFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	data, err := h.service.BuildDashboard(r.Context(), filter)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, data)
}

// parseTicketFilter maps the optional query parameters onto a filter.
// A status label outside the vocabulary adds no constraint, matching the
// legacy dashboard. Malformed dates are rejected.
func parseTicketFilter(query url.Values) (ports.TicketFilter, error) {
	var filter ports.TicketFilter

	if status := query.Get("status"); status != "" {
		if code, ok := domain.StatusCodeForLabel(status); ok {
			filter.StatusCode = &code
		}
	}

	filter.Requester = query.Get("requisitante")
	filter.Technician = query.Get("tecnico")

	if value := query.Get("start_date"); value != "" {
		start, err := time.Parse(dateLayout, value)
		if err != nil {
			return filter, apperrors.NewBadRequestError(apperrors.ErrInvalidDate, "start_date must be in YYYY-MM-DD format")
		}
		filter.StartDate = &start
	}

	if value := query.Get("end_date"); value != "" {
		end, err := time.Parse(dateLayout, value)
		if err != nil {
			return filter, apperrors.NewBadRequestError(apperrors.ErrInvalidDate, "end_date must be in YYYY-MM-DD format")
		}
		filter.EndDate = &end
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return filter, apperrors.NewBadRequestError(apperrors.ErrInvalidDateRange, "start_date must not be after end_date")
	}

	return filter, nil
}
