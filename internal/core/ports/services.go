package ports

import (
	"context"

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/domain"
)

// DashboardService defines the core operation of the reporting facade:
// fetch one filtered row set and shape it into the dashboard payload.
type DashboardService interface {
	BuildDashboard(ctx context.Context, filter TicketFilter) (*domain.DashboardData, error)
}
