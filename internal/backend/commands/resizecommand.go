package commands

import (
	"fmt"
	"log/slog"

	"github.com/jo-hoe/defectframe/internal/backend/commandstructure"
	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

// ResizeParams represents typed parameters for the resize command
type ResizeParams struct {
	Width  int
	Height int
}

// NewResizeParamsFromMap reads width and height, defaulting to 32x32
func NewResizeParamsFromMap(params map[string]any) (*ResizeParams, error) {
	width := commandstructure.GetIntParam(params, "width", DefaultTargetWidth)
	height := commandstructure.GetIntParam(params, "height", DefaultTargetHeight)
	if width <= 0 || height <= 0 {
		return nil, &raster.InvalidDimensionsError{Width: width, Height: height}
	}
	return &ResizeParams{Width: width, Height: height}, nil
}

// ResizeCommand stretches an image to exactly the target size using point sampling
type ResizeCommand struct {
	name   string
	params *ResizeParams
}

func NewResizeCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewResizeParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &ResizeCommand{
		name:   "ResizeCommand",
		params: typedParams,
	}, nil
}

func (c *ResizeCommand) Name() string {
	return c.name
}

// Execute returns the input itself when it already has the target size. Otherwise every
// target pixel takes the source pixel under its center, with no interpolation.
func (c *ResizeCommand) Execute(grid *raster.Grid) (*raster.Grid, error) {
	if grid == nil || grid.Width() <= 0 || grid.Height() <= 0 {
		w, h := 0, 0
		if grid != nil {
			w, h = grid.Width(), grid.Height()
		}
		return nil, &raster.InvalidDimensionsError{Width: w, Height: h}
	}

	srcW, srcH := grid.Width(), grid.Height()
	dstW, dstH := c.params.Width, c.params.Height

	if srcW == dstW && srcH == dstH {
		slog.Debug("ResizeCommand: already at target size", "width", srcW, "height", srcH)
		return grid, nil
	}

	slog.Debug("ResizeCommand: scaling image",
		"original_width", srcW,
		"original_height", srcH,
		"target_width", dstW,
		"target_height", dstH)

	out, err := raster.NewGrid(dstW, dstH)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate resized image: %w", err)
	}

	xMap := samplePositions(srcW, dstW)
	yMap := samplePositions(srcH, dstH)
	for y := 0; y < dstH; y++ {
		sy := yMap[y]
		for x := 0; x < dstW; x++ {
			out.Set(x, y, grid.At(xMap[x], sy))
		}
	}
	return out, nil
}

// samplePositions maps each destination index to the source index under its center:
// floor((d + 0.5) * src / dst), computed in integers.
func samplePositions(src, dst int) []int {
	positions := make([]int, dst)
	for d := range positions {
		positions[d] = ((2*d + 1) * src) / (2 * dst)
	}
	return positions
}

func (c *ResizeCommand) GetParams() *ResizeParams {
	return c.params
}

func init() {
	if err := commandstructure.DefaultRegistry.Register("ResizeCommand", NewResizeCommand); err != nil {
		panic(fmt.Sprintf("failed to register ResizeCommand: %v", err))
	}
}
