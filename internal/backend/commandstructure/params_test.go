package commandstructure

import (
	"testing"

	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

func TestGetIntParam(t *testing.T) {
	params := map[string]any{
		"key1": 123,
		"key2": int64(456),
		"key3": float64(789),
		"key4": "not-an-int",
	}

	if val := GetIntParam(params, "key1", 0); val != 123 {
		t.Errorf("Expected 123, got %d", val)
	}
	if val := GetIntParam(params, "key2", 0); val != 456 {
		t.Errorf("Expected 456, got %d", val)
	}
	if val := GetIntParam(params, "key3", 0); val != 789 {
		t.Errorf("Expected 789, got %d", val)
	}
	if val := GetIntParam(params, "key4", 999); val != 999 {
		t.Errorf("Expected 999, got %d", val)
	}
	if val := GetIntParam(params, "key5", 999); val != 999 {
		t.Errorf("Expected 999, got %d", val)
	}
}

func TestGetColorParam(t *testing.T) {
	yellow := raster.RGB{R: 255, G: 255, B: 0}
	fallback := raster.RGB{R: 1, G: 2, B: 3}

	tests := []struct {
		name    string
		value   any
		want    raster.RGB
		wantErr bool
	}{
		{name: "int hex", value: 0xFFFF00, want: yellow},
		{name: "int64 hex", value: int64(0xFFFF00), want: yellow},
		{name: "hash string", value: "#FFFF00", want: yellow},
		{name: "0x string", value: "0xffff00", want: yellow},
		{name: "rgb list", value: []any{255, 255.0, 0}, want: yellow},
		{name: "rgb value", value: yellow, want: yellow},
		{name: "short string", value: "#FFF", wantErr: true},
		{name: "non hex string", value: "#GGGGGG", wantErr: true},
		{name: "out of range int", value: 0x1000000, wantErr: true},
		{name: "negative int", value: -1, wantErr: true},
		{name: "list too short", value: []any{1, 2}, wantErr: true},
		{name: "list component out of range", value: []any{1, 2, 300}, wantErr: true},
		{name: "unsupported type", value: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetColorParam(map[string]any{"color": tt.value}, "color", fallback)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %v, got color %v", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	got, err := GetColorParam(map[string]any{}, "color", fallback)
	if err != nil || got != fallback {
		t.Errorf("Expected default %v without error, got %v (%v)", fallback, got, err)
	}
}

func TestValidateRequiredParams(t *testing.T) {
	params := map[string]any{
		"param1": "value1",
		"param2": 123,
	}

	if err := ValidateRequiredParams(params, []string{"param1", "param2"}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := ValidateRequiredParams(params, []string{"param1", "param3"}); err == nil {
		t.Error("Expected error for missing required param")
	}
	if err := ValidateRequiredParams(params, []string{}); err != nil {
		t.Errorf("Expected no error for empty required list, got %v", err)
	}
}
