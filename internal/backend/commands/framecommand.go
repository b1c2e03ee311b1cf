package commands

import (
	"fmt"
	"log/slog"

	"github.com/jo-hoe/defectframe/internal/backend/commandstructure"
	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

// FrameParams represents typed parameters for the frame command
type FrameParams struct {
	Thickness int
	Color     raster.RGB
}

func NewFrameParamsFromMap(params map[string]any) (*FrameParams, error) {
	thickness := commandstructure.GetIntParam(params, "thickness", DefaultFrameThickness)
	if thickness < 0 {
		return nil, fmt.Errorf("thickness must not be negative, got %d", thickness)
	}
	color, err := commandstructure.GetColorParam(params, "color", raster.RGBFromHex(ColorYellow))
	if err != nil {
		return nil, err
	}
	return &FrameParams{Thickness: thickness, Color: color}, nil
}

// FrameCommand paints a border of fixed thickness over the image edges
type FrameCommand struct {
	name   string
	params *FrameParams
}

func NewFrameCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewFrameParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &FrameCommand{
		name:   "FrameCommand",
		params: typedParams,
	}, nil
}

func (c *FrameCommand) Name() string {
	return c.name
}

// Execute copies interior pixels and colors the border. Images no wider or taller than
// twice the thickness end up fully frame-colored.
func (c *FrameCommand) Execute(grid *raster.Grid) (*raster.Grid, error) {
	w, h := grid.Width(), grid.Height()
	f := c.params.Thickness

	slog.Debug("FrameCommand: start",
		"width", w,
		"height", h,
		"thickness", f,
		"color", fmt.Sprintf("%06X", c.params.Color.Hex()))

	out, err := raster.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < f || x >= w-f || y < f || y >= h-f {
				out.Set(x, y, c.params.Color)
			} else {
				out.Set(x, y, grid.At(x, y))
			}
		}
	}
	return out, nil
}

func (c *FrameCommand) GetParams() *FrameParams {
	return c.params
}

func init() {
	if err := commandstructure.DefaultRegistry.Register("FrameCommand", NewFrameCommand); err != nil {
		panic(fmt.Sprintf("failed to register FrameCommand: %v", err))
	}
}
