package commands

import (
	"fmt"
	"log/slog"

	"github.com/jo-hoe/defectframe/internal/backend/commandstructure"
	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

// ThresholdParams represents typed parameters for the two-color threshold command
type ThresholdParams struct {
	Foreground raster.RGB
	Background raster.RGB
	Threshold  int
}

// NewThresholdParamsFromMap requires a foreground color; background defaults to white
// and threshold to 128.
func NewThresholdParamsFromMap(params map[string]any) (*ThresholdParams, error) {
	if err := commandstructure.ValidateRequiredParams(params, []string{"foreground"}); err != nil {
		return nil, err
	}

	foreground, err := commandstructure.GetColorParam(params, "foreground", raster.RGB{})
	if err != nil {
		return nil, err
	}
	background, err := commandstructure.GetColorParam(params, "background", raster.RGBFromHex(ColorWhite))
	if err != nil {
		return nil, err
	}
	threshold := commandstructure.GetIntParam(params, "threshold", DefaultThreshold)
	if threshold < 0 || threshold > 256 {
		return nil, fmt.Errorf("threshold must be between 0 and 256, got %d", threshold)
	}

	return &ThresholdParams{
		Foreground: foreground,
		Background: background,
		Threshold:  threshold,
	}, nil
}

// ThresholdCommand binarizes a grayscale image: luminance below the threshold becomes
// the foreground color, everything else the background color.
type ThresholdCommand struct {
	name   string
	params *ThresholdParams
}

func NewThresholdCommand(params map[string]any) (commandstructure.Command, error) {
	typedParams, err := NewThresholdParamsFromMap(params)
	if err != nil {
		return nil, err
	}
	return &ThresholdCommand{
		name:   "ThresholdCommand",
		params: typedParams,
	}, nil
}

func (c *ThresholdCommand) Name() string {
	return c.name
}

// Execute reads luminance from the red channel, which equals the other two on grayscale input
func (c *ThresholdCommand) Execute(grid *raster.Grid) (*raster.Grid, error) {
	slog.Debug("ThresholdCommand: start",
		"foreground", fmt.Sprintf("%06X", c.params.Foreground.Hex()),
		"background", fmt.Sprintf("%06X", c.params.Background.Hex()),
		"threshold", c.params.Threshold)

	out, err := raster.NewGrid(grid.Width(), grid.Height())
	if err != nil {
		return nil, err
	}
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if int(grid.At(x, y).R) < c.params.Threshold {
				out.Set(x, y, c.params.Foreground)
			} else {
				out.Set(x, y, c.params.Background)
			}
		}
	}
	return out, nil
}

func (c *ThresholdCommand) GetParams() *ThresholdParams {
	return c.params
}

func init() {
	if err := commandstructure.DefaultRegistry.Register("ThresholdCommand", NewThresholdCommand); err != nil {
		panic(fmt.Sprintf("failed to register ThresholdCommand: %v", err))
	}
}
