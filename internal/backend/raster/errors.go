package raster

import "fmt"

// DecodeError reports input bytes that are empty or not a recognizable image.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decode image: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to decode image: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidDimensionsError reports a zero or negative width or height.
type InvalidDimensionsError struct {
	Width  int
	Height int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("invalid image dimensions %dx%d", e.Width, e.Height)
}

// EncodeError reports a failure to serialize a grid to PNG.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode image to PNG: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
