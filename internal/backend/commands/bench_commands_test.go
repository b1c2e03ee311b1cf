package commands

import (
	"testing"

	"github.com/jo-hoe/defectframe/internal/backend/commandstructure"
	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

func benchmarkCommand(b *testing.B, command commandstructure.Command, input *raster.Grid) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := command.Execute(input); err != nil {
			b.Fatalf("execute failed: %v", err)
		}
	}
}

func BenchmarkResizeCommand_Execute(b *testing.B) {
	cases := []struct {
		name          string
		width, height int
	}{
		{"64x48", 64, 48},
		{"1024x768", 1024, 768},
		{"4000x3000", 4000, 3000},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			command, err := NewResizeCommand(map[string]any{})
			if err != nil {
				b.Fatalf("failed to create ResizeCommand: %v", err)
			}
			benchmarkCommand(b, command, gradientGrid(b, tc.width, tc.height))
		})
	}
}

func BenchmarkGrayscaleCommand_Execute(b *testing.B) {
	command, err := NewGrayscaleCommand(nil)
	if err != nil {
		b.Fatalf("failed to create GrayscaleCommand: %v", err)
	}
	benchmarkCommand(b, command, gradientGrid(b, 32, 32))
}

func BenchmarkThresholdCommand_Execute(b *testing.B) {
	command, err := NewThresholdCommand(map[string]any{"foreground": ColorRed})
	if err != nil {
		b.Fatalf("failed to create ThresholdCommand: %v", err)
	}
	benchmarkCommand(b, command, gradientGrid(b, 32, 32))
}

func BenchmarkFrameCommand_Execute(b *testing.B) {
	command, err := NewFrameCommand(map[string]any{})
	if err != nil {
		b.Fatalf("failed to create FrameCommand: %v", err)
	}
	benchmarkCommand(b, command, gradientGrid(b, 32, 32))
}
