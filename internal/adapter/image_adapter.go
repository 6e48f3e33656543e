package adapter

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	m "compaug.dev/pkg/compaug/internal/model"
)

// DefaultBackgroundCacheSize bounds how many decoded backgrounds are kept in memory.
const DefaultBackgroundCacheSize = 16

const jpegQuality = 95

// ErrUnsupportedEncoding is returned when an output extension has no encoder.
var ErrUnsupportedEncoding = errors.New("unsupported output encoding")

// ImageAdapter is the image-processing capability the compositor and the
// sweep engine delegate to. Every operation reads and writes files so that
// intermediate results stay inspectable on disk.
//
//nolint:interfacebloat // Mirrors the set of primitives the pipeline needs.
type ImageAdapter interface {
	// Probe reports the decoder format of path, or an error when no decoder
	// recognizes it.
	Probe(path m.Path) (string, error)

	// Size returns the pixel dimensions of path.
	Size(path m.Path) (m.Size, error)

	// Resize scales src to width x height and writes the result to dst.
	Resize(src, dst m.Path, width, height int) error

	// Composite draws component over background at (x, y) and writes dst.
	// Backgrounds are treated as read-only for the lifetime of the adapter.
	Composite(background, component, dst m.Path, x, y int) error

	// Modulate adjusts brightness, saturation and hue in place. All three
	// are percentages where 100 leaves the channel unchanged.
	Modulate(path m.Path, brightness, saturation, hue float64) error

	// Contrast applies the contrast step |steps| times in place; negative
	// steps reduce contrast.
	Contrast(path m.Path, steps int) error

	// Transform applies a geometric operation to src and writes dst.
	Transform(src, dst m.Path, op m.Transform) error

	// CanEncode reports whether outputs with the extension can be written.
	CanEncode(ext string) bool
}

// LocalImageAdapter implements ImageAdapter with the standard decoders plus
// golang.org/x/image codecs and resamplers.
type LocalImageAdapter struct {
	backgrounds *lru.Cache[m.Path, image.Image]
}

// NewLocalImageAdapter constructs a LocalImageAdapter caching up to
// cacheSize decoded backgrounds.
func NewLocalImageAdapter(cacheSize int) (*LocalImageAdapter, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultBackgroundCacheSize
	}

	cache, err := lru.New[m.Path, image.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create background cache: %w", err)
	}

	return &LocalImageAdapter{backgrounds: cache}, nil
}

// Probe implements ImageAdapter.
func (a *LocalImageAdapter) Probe(path m.Path) (string, error) {
	cfg, format, err := decodeConfig(path)
	if err != nil {
		return "", err
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("image %s has empty dimensions", path)
	}

	return format, nil
}

// Size implements ImageAdapter.
func (a *LocalImageAdapter) Size(path m.Path) (m.Size, error) {
	cfg, _, err := decodeConfig(path)
	if err != nil {
		return m.Size{}, err
	}

	return m.Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// Resize implements ImageAdapter.
func (a *LocalImageAdapter) Resize(src, dst m.Path, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize %s: invalid target size %dx%d", src, width, height)
	}

	img, err := decodeFile(src)
	if err != nil {
		return err
	}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)

	return encodeFile(dst, out)
}

// Composite implements ImageAdapter.
func (a *LocalImageAdapter) Composite(background, component, dst m.Path, x, y int) error {
	bg, err := a.background(background)
	if err != nil {
		return err
	}

	fg, err := decodeFile(component)
	if err != nil {
		return err
	}

	out := image.NewNRGBA(image.Rect(0, 0, bg.Bounds().Dx(), bg.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), bg, bg.Bounds().Min, draw.Src)

	target := image.Rect(x, y, x+fg.Bounds().Dx(), y+fg.Bounds().Dy())
	draw.Draw(out, target, fg, fg.Bounds().Min, draw.Over)

	return encodeFile(dst, out)
}

// Modulate implements ImageAdapter.
func (a *LocalImageAdapter) Modulate(path m.Path, brightness, saturation, hue float64) error {
	img, err := decodeFile(path)
	if err != nil {
		return err
	}

	out := toNRGBA(img)
	eachPixel(out, func(r, g, b float64) (float64, float64, float64) {
		return modulatePixel(r, g, b, brightness, saturation, hue)
	})

	return encodeFile(path, out)
}

// Contrast implements ImageAdapter.
func (a *LocalImageAdapter) Contrast(path m.Path, steps int) error {
	img, err := decodeFile(path)
	if err != nil {
		return err
	}

	sign := 1.0
	if steps < 0 {
		sign = -1
		steps = -steps
	}

	out := toNRGBA(img)
	eachPixel(out, func(r, g, b float64) (float64, float64, float64) {
		for i := 0; i < steps; i++ {
			r, g, b = contrastPixel(r, g, b, sign)
		}

		return r, g, b
	})

	return encodeFile(path, out)
}

// Transform implements ImageAdapter.
func (a *LocalImageAdapter) Transform(src, dst m.Path, op m.Transform) error {
	img, err := decodeFile(src)
	if err != nil {
		return err
	}

	in := toNRGBA(img)

	var out *image.NRGBA

	switch op {
	case m.TransformRotate:
		out = rotate90(in)
	case m.TransformFlip:
		out = mirror(in, false, true)
	case m.TransformFlop:
		out = mirror(in, true, false)
	case m.TransformFlipFlop:
		out = mirror(in, true, true)
	default:
		return fmt.Errorf("unknown transform %q", op)
	}

	return encodeFile(dst, out)
}

// CanEncode implements ImageAdapter.
func (a *LocalImageAdapter) CanEncode(ext string) bool {
	switch normalizeExt(ext) {
	case "png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff":
		return true
	default:
		return false
	}
}

func (a *LocalImageAdapter) background(path m.Path) (image.Image, error) {
	if img, ok := a.backgrounds.Get(path); ok {
		return img, nil
	}

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	a.backgrounds.Add(path, img)
	slog.Debug("cached background", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	return img, nil
}

func decodeConfig(path m.Path) (image.Config, string, error) {
	// #nosec G304 - path comes from the walked input tree
	f, err := os.Open(string(path))
	if err != nil {
		return image.Config{}, "", err
	}

	defer func() { _ = f.Close() }()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, format, nil
}

func decodeFile(path m.Path) (image.Image, error) {
	// #nosec G304 - path comes from the walked input tree or the output directory
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return img, nil
}

func encodeFile(path m.Path, img image.Image) error {
	ext := normalizeExt(filepath.Ext(string(path)))

	// #nosec G304 - path is built inside the output directory
	f, err := os.Create(string(path))
	if err != nil {
		return err
	}

	switch ext {
	case "png":
		err = png.Encode(f, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(f, img, nil)
	case "bmp":
		err = bmp.Encode(f, img)
	case "tif", "tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedEncoding, ext)
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	return out
}
