package image

import (
	"testing"

	"github.com/cocosip/go-pdf-image/colorspace"
)

// Scenario 5 of spec.md §8: matte undo.
func TestUndoPreblendMatte_WorkedExample(t *testing.T) {
	rgba := []byte{100, 100, 100, 128}
	undoPreblendMatte(rgba, 1, 1, []float64{50.0 / 255, 50.0 / 255, 50.0 / 255}, colorspace.DeviceRGB{})
	for i, got := range rgba[:3] {
		if got != 149 {
			t.Errorf("channel %d: got %d, want 149", i, got)
		}
	}
}

// Property: matte (0,0,0) degenerates to unpremultiply c' = c*255/a.
func TestUndoPreblendMatte_ZeroMatteIsUnpremultiply(t *testing.T) {
	rgba := []byte{100, 50, 200, 200}
	undoPreblendMatte(rgba, 1, 1, []float64{0, 0, 0}, colorspace.DeviceRGB{})
	want := []byte{
		clampTrunc(100.0 * 255 / 200),
		clampTrunc(50.0 * 255 / 200),
		clampTrunc(200.0 * 255 / 200),
	}
	for i := range want {
		if rgba[i] != want[i] {
			t.Errorf("channel %d: got %d, want %d", i, rgba[i], want[i])
		}
	}
}

func TestUndoPreblendMatte_ZeroAlphaIsWhite(t *testing.T) {
	rgba := []byte{10, 20, 30, 0}
	undoPreblendMatte(rgba, 1, 1, []float64{0.2, 0.2, 0.2}, colorspace.DeviceRGB{})
	for i, want := range []byte{255, 255, 255} {
		if rgba[i] != want {
			t.Errorf("channel %d: got %d, want %d", i, rgba[i], want)
		}
	}
	// alpha channel itself is untouched by matte undo.
	if rgba[3] != 0 {
		t.Errorf("alpha channel changed: got %d, want 0", rgba[3])
	}
}
