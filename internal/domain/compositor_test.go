package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "compaug.dev/pkg/compaug/internal/adapter/mocks"
	"compaug.dev/pkg/compaug/internal/controller/mocks"
	m "compaug.dev/pkg/compaug/internal/model"
)

type fixedPool struct {
	path m.Path
	err  error
}

func (p fixedPool) Pick(context.Context) (m.Path, error) {
	return p.path, p.err
}

func TestFitScale(t *testing.T) {
	bg := m.Size{Width: 1000, Height: 500}

	tests := []struct {
		name      string
		component m.Size
		wantOK    bool
		wantScale float64
	}{
		{name: "small component", component: m.Size{Width: 100, Height: 100}},
		{name: "exactly at threshold", component: m.Size{Width: 800, Height: 400}},
		{name: "too wide", component: m.Size{Width: 900, Height: 100}, wantOK: true, wantScale: 0.8 / 0.9},
		{name: "too tall", component: m.Size{Width: 100, Height: 500}, wantOK: true, wantScale: 0.8},
		{name: "tighter dimension wins", component: m.Size{Width: 1000, Height: 1000}, wantOK: true, wantScale: 0.4},
		{name: "larger than background", component: m.Size{Width: 2000, Height: 100}, wantOK: true, wantScale: 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, ok := FitScale(tt.component, bg)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantScale, scale, 1e-9)
		})
	}
}

func TestFitScale_ZeroBackground(t *testing.T) {
	scale, ok := FitScale(m.Size{Width: 10, Height: 10}, m.Size{})
	assert.True(t, ok)
	assert.Zero(t, scale)

	_, ok = FitScale(m.Size{}, m.Size{})
	assert.False(t, ok)
}

func TestScaleSize(t *testing.T) {
	assert.Equal(t, m.Size{Width: 800, Height: 89}, ScaleSize(m.Size{Width: 900, Height: 100}, 0.8/0.9))
	assert.Equal(t, m.Size{Width: 1, Height: 1}, ScaleSize(m.Size{Width: 1, Height: 1}, 0.01))
	assert.Equal(t, m.Size{}, ScaleSize(m.Size{Width: 10, Height: 10}, 0))
}

func TestCompositor_BoxWithinBackground(t *testing.T) {
	rng := NewRand(42)
	sizes := []m.Size{
		{Width: 1, Height: 1},
		{Width: 100, Height: 40},
		{Width: 640, Height: 10},
		{Width: 2000, Height: 3000},
		{Width: 640, Height: 480},
	}
	bg := m.Size{Width: 800, Height: 600}

	for _, size := range sizes {
		images := new(adaptermocks.MockImageAdapter)
		images.On("Size", m.Path("bg.png")).Return(bg, nil)
		images.On("Size", m.Path("c.png")).Return(size, nil)
		images.On("Resize", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		images.On("Composite", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		c := NewCompositor(images, fixedPool{path: "bg.png"}, rng, mocks.NewQuietMockUI())

		for range 50 {
			placement, err := c.Composite(context.Background(), "c.png", "out.png")
			require.NoError(t, err)

			box := placement.Box
			assert.Equal(t, placement.Size.Width, box.XMax-box.XMin)
			assert.Equal(t, placement.Size.Height, box.YMax-box.YMin)
			assert.GreaterOrEqual(t, box.XMin, 0)
			assert.GreaterOrEqual(t, box.YMin, 0)
			assert.LessOrEqual(t, box.XMax, bg.Width)
			assert.LessOrEqual(t, box.YMax, bg.Height)
			assert.LessOrEqual(t, float64(box.XMax-box.XMin), FitThreshold*float64(bg.Width)+1)
		}
	}
}

func TestCompositor_ScalesOversizedComponent(t *testing.T) {
	images := new(adaptermocks.MockImageAdapter)
	images.On("Size", m.Path("bg.png")).Return(m.Size{Width: 100, Height: 100}, nil)
	images.On("Size", m.Path("c.png")).Return(m.Size{Width: 200, Height: 100}, nil)
	images.On("Resize", m.Path("c.png"), m.Path("out.png"), 80, 40).Return(nil).Once()
	images.On("Composite", m.Path("bg.png"), m.Path("out.png"), m.Path("out.png"), mock.Anything, mock.Anything).Return(nil).Once()

	c := NewCompositor(images, fixedPool{path: "bg.png"}, NewRand(1), mocks.NewQuietMockUI())

	placement, err := c.Composite(context.Background(), "c.png", "out.png")
	require.NoError(t, err)

	assert.Equal(t, m.Size{Width: 80, Height: 40}, placement.Size)
	assert.Equal(t, 80, placement.Box.XMax-placement.Box.XMin)
	assert.Equal(t, 40, placement.Box.YMax-placement.Box.YMin)
	images.AssertExpectations(t)
}

func TestCompositor_SmallComponentIsNotResized(t *testing.T) {
	images := new(adaptermocks.MockImageAdapter)
	images.On("Size", m.Path("bg.png")).Return(m.Size{Width: 100, Height: 100}, nil)
	images.On("Size", m.Path("c.png")).Return(m.Size{Width: 10, Height: 10}, nil)
	images.On("Composite", m.Path("bg.png"), m.Path("c.png"), m.Path("out.png"), mock.Anything, mock.Anything).Return(nil).Once()

	c := NewCompositor(images, fixedPool{path: "bg.png"}, NewRand(1), mocks.NewQuietMockUI())

	_, err := c.Composite(context.Background(), "c.png", "out.png")
	require.NoError(t, err)

	images.AssertNotCalled(t, "Resize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompositor_UnreadableSizeDegrades(t *testing.T) {
	images := new(adaptermocks.MockImageAdapter)
	images.On("Size", m.Path("bg.png")).Return(m.Size{Width: 100, Height: 100}, nil)
	images.On("Size", m.Path("c.png")).Return(m.Size{}, errors.New("truncated"))
	images.On("Composite", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	ui := mocks.NewQuietMockUI()
	c := NewCompositor(images, fixedPool{path: "bg.png"}, NewRand(1), ui)

	placement, err := c.Composite(context.Background(), "c.png", "out.png")
	require.NoError(t, err)

	assert.Equal(t, placement.Box.XMin, placement.Box.XMax)
	ui.AssertCalled(t, "DisplayError", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompositor_PickFailure(t *testing.T) {
	images := new(adaptermocks.MockImageAdapter)
	c := NewCompositor(images, fixedPool{err: ErrNoBackground}, NewRand(1), mocks.NewQuietMockUI())

	_, err := c.Composite(context.Background(), "c.png", "out.png")
	require.ErrorIs(t, err, ErrNoBackground)
}
