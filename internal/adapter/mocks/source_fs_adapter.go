package mocks

import (
	"context"
	"os"
	"path/filepath"

	"github.com/stretchr/testify/mock"

	"modepack.dev/pkg/modepack/internal/adapter"
	m "modepack.dev/pkg/modepack/internal/model"
)

// MockSourceFSAdapter is a testify mock of adapter.SourceFSAdapter.
// JoinPath is not mocked: it joins with filepath.Join.
type MockSourceFSAdapter struct {
	mock.Mock
}

var _ adapter.SourceFSAdapter = (*MockSourceFSAdapter)(nil)

// ListDirs provides a mock function.
func (_m *MockSourceFSAdapter) ListDirs(ctx context.Context, root m.Path) ([]m.Path, error) {
	ret := _m.Called(ctx, root)

	dirs, _ := ret.Get(0).([]m.Path)

	return dirs, ret.Error(1)
}

// ReadFile provides a mock function.
func (_m *MockSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	ret := _m.Called(ctx, path)

	data, _ := ret.Get(0).([]byte)

	return data, ret.Error(1)
}

// FileInfo provides a mock function.
func (_m *MockSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	ret := _m.Called(ctx, path)

	info, _ := ret.Get(0).(os.FileInfo)

	return info, ret.Error(1)
}

// MkdirAll provides a mock function.
func (_m *MockSourceFSAdapter) MkdirAll(ctx context.Context, path m.Path) error {
	ret := _m.Called(ctx, path)

	return ret.Error(0)
}

// RelPath provides a mock function.
func (_m *MockSourceFSAdapter) RelPath(ctx context.Context, base, target m.Path) (m.Path, error) {
	ret := _m.Called(ctx, base, target)

	rel, _ := ret.Get(0).(m.Path)

	return rel, ret.Error(1)
}

// JoinPath joins path elements into a single path.
func (_m *MockSourceFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// NewMockSourceFSAdapter creates a new instance of MockSourceFSAdapter. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockSourceFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSourceFSAdapter {
	mock := &MockSourceFSAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
