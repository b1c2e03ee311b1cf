package commandstructure

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jo-hoe/defectframe/internal/backend/raster"
)

// GetIntParam safely extracts an int parameter from the params map
func GetIntParam(params map[string]any, key string, defaultValue int) int {
	if val, ok := params[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return defaultValue
}

// GetColorParam extracts a color given as 0xRRGGBB integer, "#RRGGBB"/"0xRRGGBB" string
// or [r, g, b] list. A missing key yields the default; a malformed value is an error.
func GetColorParam(params map[string]any, key string, defaultValue raster.RGB) (raster.RGB, error) {
	val, ok := params[key]
	if !ok {
		return defaultValue, nil
	}

	switch v := val.(type) {
	case raster.RGB:
		return v, nil
	case int:
		return hexColor(key, int64(v))
	case int64:
		return hexColor(key, v)
	case uint32:
		return raster.RGBFromHex(v), nil
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		s = strings.TrimPrefix(s, "#")
		s = strings.TrimPrefix(s, "0x")
		if len(s) != 6 {
			return raster.RGB{}, fmt.Errorf("%s must be a 6 digit hex color, got %q", key, v)
		}
		n, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return raster.RGB{}, fmt.Errorf("%s must be a 6 digit hex color, got %q", key, v)
		}
		return raster.RGBFromHex(uint32(n)), nil
	case []any:
		if len(v) != 3 {
			return raster.RGB{}, fmt.Errorf("%s must have exactly 3 values (RGB)", key)
		}
		var rgb [3]uint8
		for i, c := range v {
			n := GetIntParam(map[string]any{"c": c}, "c", -1)
			if n < 0 || n > 255 {
				return raster.RGB{}, fmt.Errorf("%s component %d must be 0-255, got %v", key, i, c)
			}
			rgb[i] = uint8(n)
		}
		return raster.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
	default:
		return raster.RGB{}, fmt.Errorf("%s has unsupported color type %T", key, val)
	}
}

func hexColor(key string, v int64) (raster.RGB, error) {
	if v < 0 || v > 0xFFFFFF {
		return raster.RGB{}, fmt.Errorf("%s must be within 0x000000-0xFFFFFF, got %#x", key, v)
	}
	return raster.RGBFromHex(uint32(v)), nil
}

// ValidateRequiredParams checks that all required parameters are present
func ValidateRequiredParams(params map[string]any, required []string) error {
	for _, key := range required {
		if _, ok := params[key]; !ok {
			return fmt.Errorf("missing required parameter: %s", key)
		}
	}
	return nil
}
