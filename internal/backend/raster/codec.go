package raster

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"log/slog"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// MaxPixels bounds the decoded size of an upload to keep a single request's memory in check.
	MaxPixels = 64 * 1024 * 1024

	defaultSVGWidth  = 32
	defaultSVGHeight = 32
)

// Decoder turns raw upload bytes into a grid.
type Decoder struct {
	// SVGFallbackWidth and SVGFallbackHeight are used for SVG documents without an explicit size.
	SVGFallbackWidth  int
	SVGFallbackHeight int
}

// NewDecoder returns a decoder that renders unsized SVG documents at the given size.
func NewDecoder(svgFallbackWidth, svgFallbackHeight int) *Decoder {
	return &Decoder{
		SVGFallbackWidth:  svgFallbackWidth,
		SVGFallbackHeight: svgFallbackHeight,
	}
}

// Decode decodes data with a decoder that renders unsized SVG documents at 32x32.
func Decode(data []byte) (*Grid, error) {
	return NewDecoder(defaultSVGWidth, defaultSVGHeight).Decode(data)
}

// Decode accepts PNG, JPEG, GIF, BMP, TIFF, WebP and SVG input.
func (d *Decoder) Decode(data []byte) (*Grid, error) {
	slog.Debug("Decoder: start", "input_size_bytes", len(data))

	if len(data) == 0 {
		return nil, &DecodeError{Reason: "empty input"}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if isSVGData(data) {
			return d.decodeSVG(data)
		}
		slog.Error("Decoder: failed to read image header", "error", err)
		return nil, &DecodeError{Reason: "unrecognized image data", Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &InvalidDimensionsError{Width: cfg.Width, Height: cfg.Height}
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, &DecodeError{Reason: "image exceeds maximum pixel count"}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Error("Decoder: failed to decode image", "format", format, "error", err)
		return nil, &DecodeError{Reason: "corrupt " + format + " data", Err: err}
	}

	slog.Debug("Decoder: decoded raster image",
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())

	return FromImage(img)
}

// Encode serializes the grid as PNG.
func Encode(grid *Grid) ([]byte, error) {
	if grid == nil {
		return nil, &EncodeError{Err: errors.New("nil grid")}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, grid.Image()); err != nil {
		slog.Error("Encoder: failed to encode image to PNG", "error", err)
		return nil, &EncodeError{Err: err}
	}

	slog.Debug("Encoder: encoding complete",
		"width", grid.Width(),
		"height", grid.Height(),
		"output_size_bytes", buf.Len())
	return buf.Bytes(), nil
}
