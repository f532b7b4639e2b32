package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/domain"
	apperrors "github.com/sesma-ti/glpi-dashboard-backend/internal/core/errors"
	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/ports"
)

// DashboardService fetches one filtered row set per request and runs the
// aggregators over it. Aggregators share the same immutable slice and no
// state, so the service itself is safe for concurrent requests.
type DashboardService struct {
	source ports.TicketSource
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.DashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new dashboard service.
func NewDashboardService(source ports.TicketSource, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Field selectors for the categorical charts.
func requesterOf(rec domain.TicketRecord) *string { return rec.Requester }
func categoryOf(rec domain.TicketRecord) *string  { return rec.Category }
func locationOf(rec domain.TicketRecord) *string  { return rec.Location }

// BuildDashboard assembles the full dashboard payload. A source failure is
// surfaced as a data-unavailable error, never as an empty payload.
func (s *DashboardService) BuildDashboard(ctx context.Context, filter ports.TicketFilter) (*domain.DashboardData, error) {
	records, err := s.source.FetchTickets(ctx, filter)
	if err != nil {
		s.logger.Error("ticket fetch failed", "error", err)
		return nil, apperrors.NewUnavailableError(err)
	}

	s.logger.Debug("tickets fetched", "count", len(records))

	return &domain.DashboardData{
		Metrics: Snapshot(records, s.now()),
		Charts: domain.DashboardCharts{
			Requester: CountByField(records, requesterOf, CountOptions{
				TopN: 5,
			}),
			Category: CountByField(records, categoryOf, CountOptions{
				TopN:          5,
				IncludeOthers: true,
			}),
			Location: CountByField(records, locationOf, CountOptions{
				TopN:          5,
				ExcludeValues: []string{domain.UnknownLabel},
			}),
			Status: CountByField(records, nil, CountOptions{
				UseStatusLabel: true,
			}),
			PerMonth:     MonthlyCounts(records),
			KindPerMonth: KindByMonth(records),
		},
	}, nil
}
