package raster

import (
	"image"
	"image/color"
)

// RGB is a single opaque pixel with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// RGBFromHex builds a color from a 0xRRGGBB value.
func RGBFromHex(hex uint32) RGB {
	return RGB{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
	}
}

// Hex returns the color as a 0xRRGGBB value.
func (c RGB) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Grid is a rectangular pixel buffer with three channels per pixel.
// Transforms treat a Grid they receive as read-only and allocate a new one for their result.
type Grid struct {
	width  int
	height int
	pix    []uint8 // R,G,B per pixel, row-major
}

// NewGrid allocates a black grid of the given size.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidDimensionsError{Width: width, Height: height}
	}
	return &Grid{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}, nil
}

// FromImage copies an image into a new grid, dropping the alpha channel.
func FromImage(img image.Image) (*Grid, error) {
	bounds := img.Bounds()
	grid, err := NewGrid(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			// Straight (non-premultiplied) channels keep the stored RGB of translucent pixels
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			grid.Set(x, y, RGB{R: c.R, G: c.G, B: c.B})
		}
	}
	return grid, nil
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

// At returns the pixel at (x, y). Coordinates must lie inside the grid.
func (g *Grid) At(x, y int) RGB {
	i := g.offset(x, y)
	return RGB{R: g.pix[i], G: g.pix[i+1], B: g.pix[i+2]}
}

// Set writes the pixel at (x, y). Coordinates must lie inside the grid.
func (g *Grid) Set(x, y int, c RGB) {
	i := g.offset(x, y)
	g.pix[i] = c.R
	g.pix[i+1] = c.G
	g.pix[i+2] = c.B
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	pix := make([]uint8, len(g.pix))
	copy(pix, g.pix)
	return &Grid{width: g.width, height: g.height, pix: pix}
}

// Equal reports whether both grids have the same size and pixels.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Image converts the grid to an opaque RGBA image.
func (g *Grid) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

func (g *Grid) offset(x, y int) int {
	return (y*g.width + x) * 3
}
