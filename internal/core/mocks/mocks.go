package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/domain"
	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/ports"
)

// MockTicketSource is a mock implementation of ports.TicketSource
type MockTicketSource struct {
	mock.Mock
}

func NewMockTicketSource() *MockTicketSource {
	return &MockTicketSource{}
}

func (m *MockTicketSource) FetchTickets(ctx context.Context, filter ports.TicketFilter) ([]domain.TicketRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketRecord), args.Error(1)
}

// MockDashboardService is a mock implementation of ports.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func NewMockDashboardService() *MockDashboardService {
	return &MockDashboardService{}
}

func (m *MockDashboardService) BuildDashboard(ctx context.Context, filter ports.TicketFilter) (*domain.DashboardData, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardData), args.Error(1)
}
