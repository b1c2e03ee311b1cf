package commandstructure

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

// CommandInvoker executes a chain of commands, feeding each result into the next
type CommandInvoker struct {
	name     string
	commands []Command
}

// NewCommandInvoker creates an invoker; name only labels its log lines
func NewCommandInvoker(name string, commands []Command) *CommandInvoker {
	return &CommandInvoker{
		name:     name,
		commands: commands,
	}
}

// Execute applies all commands in sequence. The first failure aborts the chain.
func (i *CommandInvoker) Execute(grid *raster.Grid) (*raster.Grid, error) {
	if grid == nil {
		return nil, fmt.Errorf("chain %s: no input grid", i.name)
	}
	start := time.Now()

	slog.Debug("starting command chain",
		"chain", i.name,
		"command_count", len(i.commands),
		"input_width", grid.Width(),
		"input_height", grid.Height())

	current := grid
	for idx, command := range i.commands {
		commandStart := time.Now()

		processed, err := command.Execute(current)
		if err != nil {
			slog.Error("command execution failed",
				"chain", i.name,
				"index", idx,
				"command_name", command.Name(),
				"error", err)
			return nil, fmt.Errorf("command %s (index %d) failed: %w", command.Name(), idx, err)
		}

		slog.Debug("command completed",
			"chain", i.name,
			"index", idx,
			"command_name", command.Name(),
			"duration_us", time.Since(commandStart).Microseconds(),
			"output_width", processed.Width(),
			"output_height", processed.Height())

		current = processed
	}

	slog.Debug("command chain completed",
		"chain", i.name,
		"total_duration_us", time.Since(start).Microseconds())

	return current, nil
}
