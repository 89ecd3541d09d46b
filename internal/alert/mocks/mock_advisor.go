package mocks

import (
	"context"

	"github.com/ridloal/lux-storefront/internal/alert"
	"github.com/stretchr/testify/mock"
)

type MockAdvisor struct {
	mock.Mock
}

func (m *MockAdvisor) GenerateAlerts(ctx context.Context, req alert.AdvisorRequest) (alert.AdvisorResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(alert.AdvisorResponse), args.Error(1)
}
