package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSweepRange_Values(t *testing.T) {
	tests := []struct {
		name string
		rng  SweepRange
		want []int
	}{
		{"brightness", SweepRange{AxisBrightness, 60, 140, 20, 100}, []int{60, 80, 120, 140}},
		{"contrast", SweepRange{AxisContrast, -5, 2, 1, 0}, []int{-5, -4, -3, -2, -1, 1, 2}},
		{"baseline outside range", SweepRange{AxisHue, 0, 20, 10, 100}, []int{0, 10, 20}},
		{"zero step", SweepRange{AxisHue, 0, 20, 0, 100}, nil},
		{"inverted", SweepRange{AxisHue, 20, 0, 10, 100}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rng.Values())
		})
	}
}

func TestVariant_Modifier(t *testing.T) {
	assert.Equal(t, "adjust-contrast--5", Variant{Axis: AxisContrast, Value: -5}.Modifier())
	assert.Equal(t, "adjust-hue-190", Variant{Axis: AxisHue, Value: 190}.Modifier())
}

func TestImageRef_BaseName(t *testing.T) {
	assert.Equal(t, "resistor", ImageRef{FileRef: FileRef{Name: "resistor.png"}}.BaseName())
	assert.Equal(t, "cap.v2", ImageRef{FileRef: FileRef{Name: "cap.v2.jpeg"}}.BaseName())
	assert.Equal(t, "noext", ImageRef{FileRef: FileRef{Name: "noext"}}.BaseName())
}

func TestRunSummary_Add(t *testing.T) {
	var summary RunSummary

	summary.Add(ImageReport{
		Axes: []AxisReport{
			{Axis: AxisBrightness, Total: 4, Failed: 1},
			{Axis: AxisHue, Total: 19, Failed: 0},
		},
		Geometric: AxisReport{Total: 4, Failed: 4},
	})

	assert.Equal(t, 1, summary.Images)
	assert.Equal(t, 27, summary.Variants)
	assert.Equal(t, 5, summary.FailedVariants)
}
