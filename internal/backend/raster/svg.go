package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const svgSniffLength = 4096

var (
	svgStartTag  = regexp.MustCompile(`(?is)<svg\b[^>]*>`)
	svgSizeAttrs = regexp.MustCompile(`(?i)\s(width|height)\s*=\s*["']\s*([0-9.]+)\s*([a-z%]*)\s*["']`)
)

// isSVGData looks for an <svg tag or the SVG namespace near the start of the data.
func isSVGData(data []byte) bool {
	n := min(len(data), svgSniffLength)
	header := bytes.ToLower(data[:n])
	return bytes.Contains(header, []byte("<svg")) ||
		bytes.Contains(header, []byte("http://www.w3.org/2000/svg"))
}

// svgExplicitSize reads integer width and height attributes from the root <svg> element.
// Only unitless and px values count as pixels; viewBox is not treated as a pixel size.
func svgExplicitSize(data []byte) (int, int, bool) {
	tag := svgStartTag.Find(data[:min(len(data), 2*svgSniffLength)])
	if tag == nil {
		return 0, 0, false
	}

	var width, height int
	for _, m := range svgSizeAttrs.FindAllSubmatch(tag, -1) {
		unit := string(bytes.ToLower(m[3]))
		if unit != "" && unit != "px" {
			continue
		}
		v, err := strconv.Atoi(string(m[2]))
		if err != nil {
			continue
		}
		switch string(bytes.ToLower(m[1])) {
		case "width":
			width = v
		case "height":
			height = v
		}
	}
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

func (d *Decoder) decodeSVG(data []byte) (*Grid, error) {
	w, h, ok := svgExplicitSize(data)
	if !ok {
		w, h = d.SVGFallbackWidth, d.SVGFallbackHeight
		slog.Debug("Decoder: SVG lacks explicit size; using fallback", "width", w, "height", h)
	}
	if w <= 0 || h <= 0 {
		return nil, &InvalidDimensionsError{Width: w, Height: h}
	}
	if w*h > MaxPixels {
		return nil, &DecodeError{Reason: "SVG exceeds maximum pixel count"}
	}

	img, err := renderSVG(data, w, h)
	if err != nil {
		slog.Error("Decoder: failed to render SVG", "error", err)
		return nil, &DecodeError{Reason: "invalid SVG", Err: err}
	}
	return FromImage(img)
}

// renderSVG rasterizes an SVG document onto a white canvas of the given size.
func renderSVG(data []byte, width, height int) (img *image.RGBA, err error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	// rasterx panics on some degenerate paths
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = errors.New(fmt.Sprint("SVG rasterization failed: ", r))
		}
	}()

	icon.SetTarget(0, 0, float64(width), float64(height))

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, canvas, canvas.Bounds())
	dasher := rasterx.NewDasher(width, height, scanner)
	icon.Draw(dasher, 1.0)

	return canvas, nil
}
