package commands

// Fixed parameters of the defect image pipeline. Command factories fall back to these
// when a parameter is absent.
const (
	DefaultTargetWidth    = 32
	DefaultTargetHeight   = 32
	DefaultThreshold      = 128
	DefaultFrameThickness = 4

	ColorRed    = 0xFF0000
	ColorBlue   = 0x0000FF
	ColorWhite  = 0xFFFFFF
	ColorYellow = 0xFFFF00
)
