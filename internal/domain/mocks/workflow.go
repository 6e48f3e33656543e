// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"compaug.dev/pkg/compaug/internal/domain"
	m "compaug.dev/pkg/compaug/internal/model"
)

// MockWorkflow is a mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// Run mocks Workflow.Run.
func (_m *MockWorkflow) Run(ctx context.Context, args domain.RunArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// Plan mocks Workflow.Plan.
func (_m *MockWorkflow) Plan(ctx context.Context, args domain.PlanArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// MockCompositor is a mock of domain.Compositor.
type MockCompositor struct {
	mock.Mock
}

// Composite mocks Compositor.Composite.
func (_m *MockCompositor) Composite(ctx context.Context, component, output m.Path) (m.Placement, error) {
	ret := _m.Called(ctx, component, output)
	return ret.Get(0).(m.Placement), ret.Error(1)
}

// MockBackgroundPool is a mock of domain.BackgroundPool.
type MockBackgroundPool struct {
	mock.Mock
}

// Pick mocks BackgroundPool.Pick.
func (_m *MockBackgroundPool) Pick(ctx context.Context) (m.Path, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(m.Path), ret.Error(1)
}
