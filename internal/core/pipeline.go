package core

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jo-hoe/defectframe/internal/backend/commands"
	"github.com/jo-hoe/defectframe/internal/backend/commandstructure"
	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

// Role tags one encoded variant of a processed upload
type Role string

const (
	RoleGrayscale          Role = "grayscale"
	RoleRedWhite           Role = "red_white"
	RoleBlueWhite          Role = "blue_white"
	RoleFramedYellowBorder Role = "framed_yellow_border"
)

// Roles lists every variant role in storage order
func Roles() []Role {
	return []Role{RoleGrayscale, RoleRedWhite, RoleBlueWhite, RoleFramedYellowBorder}
}

// ParseRole validates a role name
func ParseRole(s string) (Role, error) {
	for _, r := range Roles() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown variant role: %q", s)
}

// Variants holds the four PNG-encoded results of one pipeline run
type Variants struct {
	Grayscale          []byte
	RedWhite           []byte
	BlueWhite          []byte
	FramedYellowBorder []byte
}

// Get returns the payload for a role
func (v *Variants) Get(role Role) ([]byte, bool) {
	switch role {
	case RoleGrayscale:
		return v.Grayscale, true
	case RoleRedWhite:
		return v.RedWhite, true
	case RoleBlueWhite:
		return v.BlueWhite, true
	case RoleFramedYellowBorder:
		return v.FramedYellowBorder, true
	}
	return nil, false
}

// GetOrError is Get with an error for unknown roles
func (v *Variants) GetOrError(role Role) ([]byte, error) {
	data, ok := v.Get(role)
	if !ok {
		return nil, fmt.Errorf("unknown variant role: %q", role)
	}
	return data, nil
}

func (v *Variants) set(role Role, data []byte) {
	switch role {
	case RoleGrayscale:
		v.Grayscale = data
	case RoleRedWhite:
		v.RedWhite = data
	case RoleBlueWhite:
		v.BlueWhite = data
	case RoleFramedYellowBorder:
		v.FramedYellowBorder = data
	}
}

// preparationCommands turn any upload into the 32x32 grayscale base image
var preparationCommands = []commandstructure.CommandConfig{
	{Name: "ResizeCommand", Params: map[string]any{
		"width":  commands.DefaultTargetWidth,
		"height": commands.DefaultTargetHeight,
	}},
	{Name: "GrayscaleCommand"},
}

type branchConfig struct {
	role     Role
	commands []commandstructure.CommandConfig
}

// branchCommands derive the colored variants from the grayscale base image
var branchCommands = []branchConfig{
	{role: RoleRedWhite, commands: []commandstructure.CommandConfig{
		{Name: "ThresholdCommand", Params: map[string]any{
			"foreground": commands.ColorRed,
			"background": commands.ColorWhite,
			"threshold":  commands.DefaultThreshold,
		}},
	}},
	{role: RoleBlueWhite, commands: []commandstructure.CommandConfig{
		{Name: "ThresholdCommand", Params: map[string]any{
			"foreground": commands.ColorBlue,
			"background": commands.ColorWhite,
			"threshold":  commands.DefaultThreshold,
		}},
	}},
	{role: RoleFramedYellowBorder, commands: []commandstructure.CommandConfig{
		{Name: "FrameCommand", Params: map[string]any{
			"thickness": commands.DefaultFrameThickness,
			"color":     commands.ColorYellow,
		}},
	}},
}

type branch struct {
	role    Role
	invoker *commandstructure.CommandInvoker
}

// DefectPipeline decodes an upload, reduces it to a 32x32 grayscale image and derives
// the red/white, blue/white and framed variants from it. A pipeline holds no per-run
// state and may be shared between concurrent requests.
type DefectPipeline struct {
	decoder  *raster.Decoder
	prepare  *commandstructure.CommandInvoker
	branches []branch
}

// NewDefectPipeline builds the pipeline from the commands in the default registry
func NewDefectPipeline() (*DefectPipeline, error) {
	return newDefectPipeline(commandstructure.DefaultRegistry)
}

func newDefectPipeline(registry *commandstructure.CommandRegistry) (*DefectPipeline, error) {
	prepare, err := registry.CreateAll(preparationCommands)
	if err != nil {
		return nil, fmt.Errorf("failed to build preparation chain: %w", err)
	}

	branches := make([]branch, 0, len(branchCommands))
	for _, bc := range branchCommands {
		cmds, err := registry.CreateAll(bc.commands)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s chain: %w", bc.role, err)
		}
		branches = append(branches, branch{
			role:    bc.role,
			invoker: commandstructure.NewCommandInvoker(string(bc.role), cmds),
		})
	}

	return &DefectPipeline{
		decoder:  raster.NewDecoder(commands.DefaultTargetWidth, commands.DefaultTargetHeight),
		prepare:  commandstructure.NewCommandInvoker("prepare", prepare),
		branches: branches,
	}, nil
}

// Run processes one upload. Any failing stage aborts the whole run; the returned error
// wraps raster.DecodeError, raster.InvalidDimensionsError or raster.EncodeError.
func (p *DefectPipeline) Run(imageData []byte) (*Variants, error) {
	start := time.Now()

	source, err := p.decoder.Decode(imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode upload: %w", err)
	}

	gray, err := p.prepare.Execute(source)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}

	variants := &Variants{}
	if err := p.encodeInto(variants, RoleGrayscale, gray); err != nil {
		return nil, err
	}

	for _, b := range p.branches {
		result, err := b.invoker.Execute(gray)
		if err != nil {
			return nil, fmt.Errorf("failed to produce %s variant: %w", b.role, err)
		}
		if err := p.encodeInto(variants, b.role, result); err != nil {
			return nil, err
		}
	}

	slog.Info("defect image pipeline completed",
		"input_size_bytes", len(imageData),
		"source_width", source.Width(),
		"source_height", source.Height(),
		"duration_ms", time.Since(start).Milliseconds())

	return variants, nil
}

func (p *DefectPipeline) encodeInto(variants *Variants, role Role, grid *raster.Grid) error {
	data, err := raster.Encode(grid)
	if err != nil {
		return fmt.Errorf("failed to encode %s variant: %w", role, err)
	}
	variants.set(role, data)
	return nil
}
