// Package mocks provides testify mocks for the adapter ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"modepack.dev/pkg/modepack/internal/adapter"
	m "modepack.dev/pkg/modepack/internal/model"
)

// MockAssetProvider is a testify mock of adapter.AssetProvider.
type MockAssetProvider struct {
	mock.Mock
}

var _ adapter.AssetProvider = (*MockAssetProvider)(nil)

// LoadImage provides a mock function.
func (_m *MockAssetProvider) LoadImage(ctx context.Context, path m.Path) (*m.Sprite, error) {
	ret := _m.Called(ctx, path)

	var sprite *m.Sprite
	if v := ret.Get(0); v != nil {
		sprite = v.(*m.Sprite)
	}

	return sprite, ret.Error(1)
}

// LoadBundle provides a mock function.
func (_m *MockAssetProvider) LoadBundle(ctx context.Context, path m.Path, progress adapter.ProgressReporter) (*m.BundleHandle, error) {
	ret := _m.Called(ctx, path, progress)

	var handle *m.BundleHandle
	if v := ret.Get(0); v != nil {
		handle = v.(*m.BundleHandle)
	}

	if progress != nil && ret.Error(1) == nil {
		progress.Report(1)
	}

	return handle, ret.Error(1)
}

// LoadLevelsFromBundle provides a mock function.
func (_m *MockAssetProvider) LoadLevelsFromBundle(ctx context.Context, bundle *m.BundleHandle, progress adapter.ProgressReporter) ([]m.Level, error) {
	ret := _m.Called(ctx, bundle, progress)

	var levels []m.Level
	if v := ret.Get(0); v != nil {
		levels = v.([]m.Level)
	}

	if progress != nil && ret.Error(1) == nil {
		progress.Report(1)
	}

	return levels, ret.Error(1)
}

// LoadGamemodeFromBundle provides a mock function.
func (_m *MockAssetProvider) LoadGamemodeFromBundle(ctx context.Context, bundle *m.BundleHandle, name string, progress adapter.ProgressReporter) (m.Gamemode, error) {
	ret := _m.Called(ctx, bundle, name, progress)

	gm, _ := ret.Get(0).(m.Gamemode)

	if progress != nil && ret.Error(1) == nil {
		progress.Report(1)
	}

	return gm, ret.Error(1)
}

// FindLevelsByName provides a mock function.
func (_m *MockAssetProvider) FindLevelsByName(name string) []m.Level {
	ret := _m.Called(name)

	levels, _ := ret.Get(0).([]m.Level)

	return levels
}

// BuiltinLevels provides a mock function.
func (_m *MockAssetProvider) BuiltinLevels() []m.Level {
	ret := _m.Called()

	levels, _ := ret.Get(0).([]m.Level)

	return levels
}

// NewMockAssetProvider creates a new instance of MockAssetProvider. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAssetProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAssetProvider {
	mock := &MockAssetProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
