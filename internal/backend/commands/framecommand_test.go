package commands

import (
	"testing"

	"github.com/jo-hoe/defectframe/internal/backend/commandstructure"
	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

var yellow = raster.RGBFromHex(ColorYellow)

func TestNewFrameCommand_Defaults(t *testing.T) {
	command, err := NewFrameCommand(map[string]any{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	frameCmd, ok := command.(*FrameCommand)
	if !ok {
		t.Fatal("Expected command to be *FrameCommand")
	}
	if p := frameCmd.GetParams(); p.Thickness != 4 || p.Color != yellow {
		t.Errorf("Expected 4px yellow frame, got %dpx %v", p.Thickness, p.Color)
	}
}

func TestNewFrameCommand_InvalidParams(t *testing.T) {
	if _, err := NewFrameCommand(map[string]any{"thickness": -2}); err == nil {
		t.Error("Expected error for negative thickness")
	}
	if _, err := NewFrameCommand(map[string]any{"color": "#12"}); err == nil {
		t.Error("Expected error for malformed color")
	}
}

func TestFrameCommand_BorderAndInterior(t *testing.T) {
	command, err := NewFrameCommand(map[string]any{})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}

	src := gradientGrid(t, 32, 32)
	result, err := command.Execute(src)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			isFrame := x < 4 || x >= 28 || y < 4 || y >= 28
			got := result.At(x, y)
			if isFrame && got != yellow {
				t.Fatalf("Expected yellow at (%d,%d), got %v", x, y, got)
			}
			if !isFrame && got != src.At(x, y) {
				t.Fatalf("Expected interior pixel copied at (%d,%d), got %v", x, y, got)
			}
		}
	}
}

func TestFrameCommand_CenterPixelPreserved(t *testing.T) {
	command, err := NewFrameCommand(map[string]any{})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}

	for _, size := range [][2]int{{9, 9}, {10, 12}, {32, 32}, {100, 9}} {
		src := gradientGrid(t, size[0], size[1])
		result, err := command.Execute(src)
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		cx, cy := size[0]/2, size[1]/2
		if got, want := result.At(cx, cy), src.At(cx, cy); got != want {
			t.Errorf("Expected center %v for %dx%d, got %v", want, size[0], size[1], got)
		}
	}
}

func TestFrameCommand_SmallImagesFullyFramed(t *testing.T) {
	command, err := NewFrameCommand(map[string]any{})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}

	for _, size := range [][2]int{{1, 1}, {8, 8}, {8, 32}, {32, 5}} {
		result, err := command.Execute(gradientGrid(t, size[0], size[1]))
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		for y := 0; y < size[1]; y++ {
			for x := 0; x < size[0]; x++ {
				if got := result.At(x, y); got != yellow {
					t.Fatalf("Expected %dx%d to be fully yellow, got %v at (%d,%d)", size[0], size[1], got, x, y)
				}
			}
		}
	}
}

func TestFrameCommand_NineByNineKeepsOnlyCenter(t *testing.T) {
	command, err := NewFrameCommand(map[string]any{})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}

	src := gradientGrid(t, 9, 9)
	result, err := command.Execute(src)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			want := yellow
			if x == 4 && y == 4 {
				want = src.At(4, 4)
			}
			if got := result.At(x, y); got != want {
				t.Errorf("Expected %v at (%d,%d), got %v", want, x, y, got)
			}
		}
	}
}

func TestFrameCommand_ZeroThicknessCopies(t *testing.T) {
	command, err := NewFrameCommand(map[string]any{"thickness": 0})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}

	src := gradientGrid(t, 6, 6)
	result, err := command.Execute(src)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Equal(src) {
		t.Error("Expected zero thickness frame to copy the input")
	}
}

func TestFrameCommand_RegisteredInDefaultRegistry(t *testing.T) {
	if !commandstructure.DefaultRegistry.IsRegistered("FrameCommand") {
		t.Error("Expected FrameCommand to be registered in DefaultRegistry")
	}
}
