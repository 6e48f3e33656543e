package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSLRoundTrip(t *testing.T) {
	colors := [][3]float64{
		{0, 0, 0},
		{1, 1, 1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.2, 0.4, 0.6},
		{0.9, 0.7, 0.1},
	}

	for _, c := range colors {
		h, s, l := RGBToHSL(c[0], c[1], c[2])
		r, g, b := HSLToRGB(h, s, l)

		assert.InDelta(t, c[0], r, 1e-9)
		assert.InDelta(t, c[1], g, 1e-9)
		assert.InDelta(t, c[2], b, 1e-9)
	}
}

func TestHSBRoundTrip(t *testing.T) {
	colors := [][3]float64{
		{0, 0, 0},
		{1, 1, 1},
		{1, 0, 0},
		{0.5, 0.25, 0.75},
		{0.1, 0.8, 0.3},
	}

	for _, c := range colors {
		h, s, v := RGBToHSB(c[0], c[1], c[2])
		r, g, b := HSBToRGB(h, s, v)

		assert.InDelta(t, c[0], r, 1e-9)
		assert.InDelta(t, c[1], g, 1e-9)
		assert.InDelta(t, c[2], b, 1e-9)
	}
}

func TestRGBToHSL_PrimaryHues(t *testing.T) {
	h, s, l := RGBToHSL(1, 0, 0)
	assert.InDelta(t, 0, h, 1e-9)
	assert.InDelta(t, 1, s, 1e-9)
	assert.InDelta(t, 0.5, l, 1e-9)

	h, _, _ = RGBToHSL(0, 1, 0)
	assert.InDelta(t, 1.0/3, h, 1e-9)

	h, _, _ = RGBToHSL(0, 0, 1)
	assert.InDelta(t, 2.0/3, h, 1e-9)
}

func TestWrapHue(t *testing.T) {
	assert.InDelta(t, 0.25, WrapHue(1.25), 1e-9)
	assert.InDelta(t, 0.75, WrapHue(-0.25), 1e-9)
	assert.InDelta(t, 0, WrapHue(1), 1e-9)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(1.5))
	assert.Equal(t, 0.3, Clamp01(0.3))
}
