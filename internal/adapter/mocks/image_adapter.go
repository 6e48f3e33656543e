// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"

	m "compaug.dev/pkg/compaug/internal/model"
)

// MockImageAdapter is a mock of adapter.ImageAdapter.
type MockImageAdapter struct {
	mock.Mock
}

// Probe mocks ImageAdapter.Probe.
func (_m *MockImageAdapter) Probe(path m.Path) (string, error) {
	ret := _m.Called(path)
	return ret.String(0), ret.Error(1)
}

// Size mocks ImageAdapter.Size.
func (_m *MockImageAdapter) Size(path m.Path) (m.Size, error) {
	ret := _m.Called(path)
	return ret.Get(0).(m.Size), ret.Error(1)
}

// Resize mocks ImageAdapter.Resize.
func (_m *MockImageAdapter) Resize(src, dst m.Path, width, height int) error {
	return _m.Called(src, dst, width, height).Error(0)
}

// Composite mocks ImageAdapter.Composite.
func (_m *MockImageAdapter) Composite(background, component, dst m.Path, x, y int) error {
	return _m.Called(background, component, dst, x, y).Error(0)
}

// Modulate mocks ImageAdapter.Modulate.
func (_m *MockImageAdapter) Modulate(path m.Path, brightness, saturation, hue float64) error {
	return _m.Called(path, brightness, saturation, hue).Error(0)
}

// Contrast mocks ImageAdapter.Contrast.
func (_m *MockImageAdapter) Contrast(path m.Path, steps int) error {
	return _m.Called(path, steps).Error(0)
}

// Transform mocks ImageAdapter.Transform.
func (_m *MockImageAdapter) Transform(src, dst m.Path, op m.Transform) error {
	return _m.Called(src, dst, op).Error(0)
}

// CanEncode mocks ImageAdapter.CanEncode.
func (_m *MockImageAdapter) CanEncode(ext string) bool {
	return _m.Called(ext).Bool(0)
}

// MockAnnotationStore is a mock of adapter.AnnotationStore.
type MockAnnotationStore struct {
	mock.Mock
}

// Write mocks AnnotationStore.Write.
func (_m *MockAnnotationStore) Write(ctx context.Context, image m.Path, label string, placement m.Placement) (m.Path, error) {
	ret := _m.Called(ctx, image, label, placement)
	return ret.Get(0).(m.Path), ret.Error(1)
}

// MockFSAdapter is a mock of adapter.FSAdapter.
type MockFSAdapter struct {
	mock.Mock
}

// ReadDir mocks FSAdapter.ReadDir.
func (_m *MockFSAdapter) ReadDir(path m.Path) ([]string, error) {
	ret := _m.Called(path)

	var names []string
	if v := ret.Get(0); v != nil {
		names = v.([]string)
	}

	return names, ret.Error(1)
}

// FileInfo mocks FSAdapter.FileInfo.
func (_m *MockFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	ret := _m.Called(path)

	var info os.FileInfo
	if v := ret.Get(0); v != nil {
		info = v.(os.FileInfo)
	}

	return info, ret.Error(1)
}

// RealPath mocks FSAdapter.RealPath.
func (_m *MockFSAdapter) RealPath(path m.Path) (m.Path, error) {
	ret := _m.Called(path)
	return ret.Get(0).(m.Path), ret.Error(1)
}

// WorkingDir mocks FSAdapter.WorkingDir.
func (_m *MockFSAdapter) WorkingDir() (m.Path, error) {
	ret := _m.Called()
	return ret.Get(0).(m.Path), ret.Error(1)
}

// MkdirAll mocks FSAdapter.MkdirAll.
func (_m *MockFSAdapter) MkdirAll(path m.Path) error {
	return _m.Called(path).Error(0)
}

// JoinPath mocks FSAdapter.JoinPath.
func (_m *MockFSAdapter) JoinPath(elem ...string) m.Path {
	args := make([]interface{}, len(elem))
	for i, e := range elem {
		args[i] = e
	}

	return _m.Called(args...).Get(0).(m.Path)
}
