package model

import "fmt"

// Axis is one augmentation dimension swept by the generator.
type Axis string

const (
	// AxisBrightness modulates HSL lightness in percent (100 = unchanged).
	AxisBrightness Axis = "brightness"
	// AxisContrast applies the contrast step n times (negative reduces).
	AxisContrast Axis = "contrast"
	// AxisHue rotates hue; 100 = unchanged, 0 and 200 are half turns.
	AxisHue Axis = "hue"
	// AxisSaturation modulates HSL saturation in percent (100 = unchanged).
	AxisSaturation Axis = "saturation"
)

// SweepRange describes the inclusive value range swept along an axis.
type SweepRange struct {
	Axis     Axis
	Min      int
	Max      int
	Step     int
	Baseline int
}

// Values returns every value in [Min, Max] by Step, skipping Baseline.
func (r SweepRange) Values() []int {
	if r.Step <= 0 || r.Max < r.Min {
		return nil
	}

	values := make([]int, 0, (r.Max-r.Min)/r.Step+1)
	for v := r.Min; v <= r.Max; v += r.Step {
		if v == r.Baseline {
			continue
		}

		values = append(values, v)
	}

	return values
}

// Variant is a single value along an axis.
type Variant struct {
	Axis     Axis
	Value    int
	Baseline int
}

// Modifier is the file name fragment that makes the variant's output unique.
func (v Variant) Modifier() string {
	return fmt.Sprintf("adjust-%s-%d", v.Axis, v.Value)
}

// Transform is a geometric operation applied directly to a component.
type Transform string

// Available geometric transforms.
const (
	TransformRotate   Transform = "rotate"
	TransformFlip     Transform = "flip"
	TransformFlop     Transform = "flop"
	TransformFlipFlop Transform = "flip-flop"
)

// Box is a bounding box in background pixel coordinates.
type Box struct {
	XMin int `xml:"xmin" yaml:"xmin"`
	YMin int `xml:"ymin" yaml:"ymin"`
	XMax int `xml:"xmax" yaml:"xmax"`
	YMax int `xml:"ymax" yaml:"ymax"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `xml:"width" yaml:"width"`
	Height int `xml:"height" yaml:"height"`
}

// Placement is where the compositor put a component on its background and
// the component's final size.
type Placement struct {
	Box  Box
	Size Size
}
