package commandstructure

import "github.com/jo-hoe/defectframe/internal/backend/raster"

// mockCommand is a configurable Command used by the package tests
type mockCommand struct {
	name        string
	executeFunc func(*raster.Grid) (*raster.Grid, error)
}

func (m *mockCommand) Name() string {
	return m.name
}

func (m *mockCommand) Execute(grid *raster.Grid) (*raster.Grid, error) {
	if m.executeFunc != nil {
		return m.executeFunc(grid)
	}
	return grid, nil
}

// newMockCommand creates a pass-through mock command
func newMockCommand(name string) *mockCommand {
	return &mockCommand{name: name}
}

// newMockCommandWithError creates a mock command that always fails
func newMockCommandWithError(name string, err error) *mockCommand {
	return &mockCommand{
		name: name,
		executeFunc: func(*raster.Grid) (*raster.Grid, error) {
			return nil, err
		},
	}
}

// newShiftCommand adds delta to the red channel of every pixel
func newShiftCommand(name string, delta uint8) *mockCommand {
	return &mockCommand{
		name: name,
		executeFunc: func(grid *raster.Grid) (*raster.Grid, error) {
			out := grid.Clone()
			for y := 0; y < out.Height(); y++ {
				for x := 0; x < out.Width(); x++ {
					c := out.At(x, y)
					c.R += delta
					out.Set(x, y, c)
				}
			}
			return out, nil
		},
	}
}
