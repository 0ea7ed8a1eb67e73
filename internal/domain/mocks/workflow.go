// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"modepack.dev/pkg/modepack/internal/domain"
)

// MockWorkflow is a testify mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

var _ domain.Workflow = (*MockWorkflow)(nil)

// Scan provides a mock function.
func (_m *MockWorkflow) Scan(ctx context.Context, args domain.ScanArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

// List provides a mock function.
func (_m *MockWorkflow) List(ctx context.Context, args domain.ListArgs) error {
	ret := _m.Called(ctx, args)

	return ret.Error(0)
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mock := &MockWorkflow{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
