// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"compaug.dev/pkg/compaug/internal/controller"
	m "compaug.dev/pkg/compaug/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// Start mocks UI.Start.
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	return _m.Called(ctx).Error(0)
}

// Close mocks UI.Close.
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// DisplayRunInfo mocks UI.DisplayRunInfo.
func (_m *MockUI) DisplayRunInfo(ctx context.Context, input, output m.Path, parallel int) {
	_m.Called(ctx, input, output, parallel)
}

// DisplayExcluded mocks UI.DisplayExcluded.
func (_m *MockUI) DisplayExcluded(ctx context.Context, path m.Path, isDir bool) {
	_m.Called(ctx, path, isDir)
}

// DisplayFileGenerated mocks UI.DisplayFileGenerated.
func (_m *MockUI) DisplayFileGenerated(ctx context.Context, path m.Path) {
	_m.Called(ctx, path)
}

// DisplayFileSkipped mocks UI.DisplayFileSkipped.
func (_m *MockUI) DisplayFileSkipped(ctx context.Context, path m.Path, err error) {
	_m.Called(ctx, path, err)
}

// DisplayAxisFailures mocks UI.DisplayAxisFailures.
func (_m *MockUI) DisplayAxisFailures(ctx context.Context, path m.Path, axis m.Axis, failed, total int) {
	_m.Called(ctx, path, axis, failed, total)
}

// DisplayError mocks UI.DisplayError.
func (_m *MockUI) DisplayError(ctx context.Context, message string, err error) {
	_m.Called(ctx, message, err)
}

// DisplayPlan mocks UI.DisplayPlan.
func (_m *MockUI) DisplayPlan(ctx context.Context, entries []m.PlanEntry) error {
	return _m.Called(ctx, entries).Error(0)
}

// DisplaySummary mocks UI.DisplaySummary.
func (_m *MockUI) DisplaySummary(ctx context.Context, summary m.RunSummary) {
	_m.Called(ctx, summary)
}

// NewQuietMockUI returns a MockUI that accepts every display call.
func NewQuietMockUI() *MockUI {
	return new(MockUI).AllowAll()
}

// AllowAll registers optional expectations for every UI method. Expectations
// registered before it take precedence.
func (_m *MockUI) AllowAll() *MockUI {
	ui := _m
	ui.On("Start", mock.Anything).Return(nil).Maybe()
	ui.On("Close", mock.Anything).Return().Maybe()
	ui.On("DisplayRunInfo", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	ui.On("DisplayExcluded", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	ui.On("DisplayFileGenerated", mock.Anything, mock.Anything).Return().Maybe()
	ui.On("DisplayFileSkipped", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	ui.On("DisplayAxisFailures", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	ui.On("DisplayError", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	ui.On("DisplayPlan", mock.Anything, mock.Anything).Return(nil).Maybe()
	ui.On("DisplaySummary", mock.Anything, mock.Anything).Return().Maybe()

	return ui
}
