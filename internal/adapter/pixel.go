package adapter

import (
	"image"
	"math"

	"compaug.dev/pkg/compaug/pkg/colorutil"
)

type pixelFunc func(r, g, b float64) (float64, float64, float64)

// eachPixel rewrites the color channels of img in place, leaving alpha as is.
func eachPixel(img *image.NRGBA, fn pixelFunc) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := fn(float64(pix[i])/255, float64(pix[i+1])/255, float64(pix[i+2])/255)
		pix[i] = toByte(r)
		pix[i+1] = toByte(g)
		pix[i+2] = toByte(b)
	}
}

// modulatePixel scales lightness and saturation by percent and rotates hue,
// where a hue percent of 0 or 200 is a half turn.
func modulatePixel(r, g, b, brightness, saturation, hue float64) (float64, float64, float64) {
	h, s, l := colorutil.RGBToHSL(r, g, b)

	h = colorutil.WrapHue(h + math.Mod(hue-100, 200)/200)
	s = colorutil.Clamp01(s * saturation / 100)
	l = colorutil.Clamp01(l * brightness / 100)

	return colorutil.HSLToRGB(h, s, l)
}

// contrastPixel pushes HSB brightness along a sine curve centered on 0.5.
// sign > 0 increases contrast, sign < 0 flattens it.
func contrastPixel(r, g, b, sign float64) (float64, float64, float64) {
	h, s, v := colorutil.RGBToHSB(r, g, b)

	v += 0.5 * sign * (0.5*(math.Sin(math.Pi*(v-0.5))+1) - v)
	v = colorutil.Clamp01(v)

	return colorutil.HSBToRGB(h, s, v)
}

// rotate90 rotates clockwise.
func rotate90(src *image.NRGBA) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, h, w))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetNRGBA(h-1-y, x, src.NRGBAAt(x, y))
		}
	}

	return dst
}

// mirror flips horizontally (flop) and/or vertically (flip).
func mirror(src *image.NRGBA, horizontal, vertical bool) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x, y
			if horizontal {
				dx = w - 1 - x
			}

			if vertical {
				dy = h - 1 - y
			}

			dst.SetNRGBA(dx, dy, src.NRGBAAt(x, y))
		}
	}

	return dst
}

func toByte(v float64) uint8 {
	return uint8(math.Round(colorutil.Clamp01(v) * 255))
}
