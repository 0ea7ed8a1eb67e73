package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"modepack.dev/pkg/modepack/internal/domain"
	m "modepack.dev/pkg/modepack/internal/model"
)

// MockPipeline is a testify mock of domain.Pipeline.
type MockPipeline struct {
	mock.Mock
}

var _ domain.Pipeline = (*MockPipeline)(nil)

// Discover provides a mock function.
func (_m *MockPipeline) Discover(ctx context.Context, roots []m.Path) ([]m.Source, error) {
	ret := _m.Called(ctx, roots)

	sources, _ := ret.Get(0).([]m.Source)

	return sources, ret.Error(1)
}

// Scan provides a mock function.
func (_m *MockPipeline) Scan(ctx context.Context, args domain.ScanArgs) (m.ScanReport, error) {
	ret := _m.Called(ctx, args)

	report, _ := ret.Get(0).(m.ScanReport)

	return report, ret.Error(1)
}

// Inspect provides a mock function.
func (_m *MockPipeline) Inspect(ctx context.Context, roots []m.Path) ([]m.SourceResult, error) {
	ret := _m.Called(ctx, roots)

	results, _ := ret.Get(0).([]m.SourceResult)

	return results, ret.Error(1)
}

// NewMockPipeline creates a new instance of MockPipeline. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockPipeline(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPipeline {
	mock := &MockPipeline{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
