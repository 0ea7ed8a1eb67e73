// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"modepack.dev/pkg/modepack/internal/controller"
	m "modepack.dev/pkg/modepack/internal/model"
)

// MockUI is a testify mock of controller.UI.
type MockUI struct {
	mock.Mock
}

var _ controller.UI = (*MockUI)(nil)

// Start provides a mock function.
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	ret := _m.Called(ctx, len(options))

	return ret.Error(0)
}

// Close provides a mock function.
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// Wait provides a mock function.
func (_m *MockUI) Wait(ctx context.Context) {
	_m.Called(ctx)
}

// DisplayProgress provides a mock function.
func (_m *MockUI) DisplayProgress(ctx context.Context, snapshot m.ProgressSnapshot) {
	_m.Called(ctx, snapshot)
}

// RegisterGamemode provides a mock function.
func (_m *MockUI) RegisterGamemode(ctx context.Context, gamemode m.Gamemode, category string, artPool []m.Sprite, author *string) error {
	ret := _m.Called(ctx, gamemode, category, artPool, author)

	return ret.Error(0)
}

// DisplaySummary provides a mock function.
func (_m *MockUI) DisplaySummary(ctx context.Context, report m.ScanReport) error {
	ret := _m.Called(ctx, report)

	return ret.Error(0)
}

// DisplaySources provides a mock function.
func (_m *MockUI) DisplaySources(ctx context.Context, results []m.SourceResult) error {
	ret := _m.Called(ctx, results)

	return ret.Error(0)
}

// NewMockUI creates a new instance of MockUI. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
