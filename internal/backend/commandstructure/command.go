package commandstructure

import "github.com/jo-hoe/defectframe/internal/backend/raster"

// Command is a single pixel transform in the defect image pipeline.
// Execute must not modify its input; it returns a grid the caller owns.
type Command interface {
	Name() string
	Execute(grid *raster.Grid) (*raster.Grid, error)
}

// CommandFactory creates a command from configuration parameters
type CommandFactory func(params map[string]any) (Command, error)

// CommandConfig names a registered command together with its parameters
type CommandConfig struct {
	Name   string
	Params map[string]any
}
