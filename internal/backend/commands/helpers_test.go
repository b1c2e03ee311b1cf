package commands

import (
	"testing"

	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

func solidGrid(t testing.TB, w, h int, c raster.RGB) *raster.Grid {
	t.Helper()
	grid, err := raster.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) failed: %v", w, h, err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grid.Set(x, y, c)
		}
	}
	return grid
}

// gradientGrid gives every pixel a distinct, position-derived color
func gradientGrid(t testing.TB, w, h int) *raster.Grid {
	t.Helper()
	grid, err := raster.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) failed: %v", w, h, err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grid.Set(x, y, raster.RGB{R: uint8(x * 255 / max(w-1, 1)), G: uint8(y * 255 / max(h-1, 1)), B: uint8((x + y) % 256)})
		}
	}
	return grid
}
