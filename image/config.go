package image

import "fmt"

// DownscaleConfig controls the heuristic grayscale downscaler (§4.7):
// images whose larger dimension exceeds a threshold are box/OR-reduced
// down by scaleBits before the caller ever sees the full-resolution buffer.
// The thresholds were constants in the system this engine's behavior is
// modeled on; here they're a configurable option, mirroring the teacher's
// Options-with-Validate pattern.
type DownscaleConfig struct {
	// Print disables downscaling outright (a "print quality" request).
	Print bool

	// Thresholds holds the three dimension cutoffs, smallest first, past
	// which scaleBits becomes 1, 2 and 3 respectively. The zero value
	// Validate()s into the defaults {5000, 10000, 15000}.
	Thresholds [3]int
}

// DefaultDownscaleConfig returns the engine's built-in thresholds.
func DefaultDownscaleConfig() DownscaleConfig {
	return DownscaleConfig{Thresholds: [3]int{5000, 10000, 15000}}
}

// Validate fills in default thresholds when the zero value was used and
// rejects a non-increasing threshold triple.
func (c *DownscaleConfig) Validate() error {
	if c.Thresholds == ([3]int{}) {
		c.Thresholds = [3]int{5000, 10000, 15000}
	}
	if c.Thresholds[0] <= 0 || c.Thresholds[1] <= c.Thresholds[0] || c.Thresholds[2] <= c.Thresholds[1] {
		return fmt.Errorf("image: downscale thresholds must be strictly increasing positive values, got %v", c.Thresholds)
	}
	return nil
}

// scaleBits returns 0-3, the number of halvings to apply to an image whose
// larger side is maxDim.
func (c DownscaleConfig) scaleBits(maxDim int) int {
	switch {
	case maxDim > c.Thresholds[2]:
		return 3
	case maxDim > c.Thresholds[1]:
		return 2
	case maxDim > c.Thresholds[0]:
		return 1
	default:
		return 0
	}
}
