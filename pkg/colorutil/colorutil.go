// Package colorutil provides the color space conversions used by the pixel
// transforms. All channels are normalized to [0, 1].
package colorutil

import "math"

// RGBToHSL converts RGB to hue, saturation and lightness.
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	l = (maxC + minC) / 2

	if diff == 0 {
		return 0, 0, l
	}

	if l <= 0.5 {
		s = diff / (maxC + minC)
	} else {
		s = diff / (2 - maxC - minC)
	}

	return hue(r, g, b, maxC, diff), s, l
}

// HSLToRGB is the inverse of RGBToHSL.
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}

	p := 2*l - q

	return hueToRGB(p, q, h+1.0/3), hueToRGB(p, q, h), hueToRGB(p, q, h-1.0/3)
}

// RGBToHSB converts RGB to hue, saturation and brightness (HSV).
func RGBToHSB(r, g, b float64) (h, s, v float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC
	if maxC == 0 || diff == 0 {
		return 0, 0, v
	}

	return hue(r, g, b, maxC, diff), diff / maxC, v
}

// HSBToRGB is the inverse of RGBToHSB.
func HSBToRGB(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}

	h = WrapHue(h) * 6
	sector := math.Floor(h)
	f := h - sector
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(sector) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// WrapHue folds h into [0, 1).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}

	return h
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func hue(r, g, b, maxC, diff float64) float64 {
	var h float64

	switch maxC {
	case r:
		h = (g - b) / diff
	case g:
		h = (b-r)/diff + 2
	default:
		h = (r-g)/diff + 4
	}

	return WrapHue(h / 6)
}

func hueToRGB(p, q, t float64) float64 {
	t = WrapHue(t)

	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
