package commands

import (
	"fmt"
	"log/slog"

	"github.com/jo-hoe/defectframe/internal/backend/commandstructure"
	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

// GrayscaleCommand replaces every pixel with its BT.601 luminance on all three channels
type GrayscaleCommand struct {
	name string
}

// NewGrayscaleCommand takes no parameters
func NewGrayscaleCommand(params map[string]any) (commandstructure.Command, error) {
	return &GrayscaleCommand{name: "GrayscaleCommand"}, nil
}

func (c *GrayscaleCommand) Name() string {
	return c.name
}

func (c *GrayscaleCommand) Execute(grid *raster.Grid) (*raster.Grid, error) {
	slog.Debug("GrayscaleCommand: start", "width", grid.Width(), "height", grid.Height())

	out, err := raster.NewGrid(grid.Width(), grid.Height())
	if err != nil {
		return nil, err
	}
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			l := Luminance(grid.At(x, y))
			out.Set(x, y, raster.RGB{R: l, G: l, B: l})
		}
	}
	return out, nil
}

// Luminance returns floor(0.299R + 0.587G + 0.114B). Integer weights keep gray input
// (R=G=B=v) mapping exactly to v.
func Luminance(c raster.RGB) uint8 {
	return uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000)
}

func init() {
	if err := commandstructure.DefaultRegistry.Register("GrayscaleCommand", NewGrayscaleCommand); err != nil {
		panic(fmt.Sprintf("failed to register GrayscaleCommand: %v", err))
	}
}
