package image

import (
	"testing"

	"github.com/cocosip/go-pdf-image/colorspace"
	"github.com/cocosip/go-pdf-image/imagestream"
)

func newRGBImage(t *testing.T, raw []byte, w, h int) *Image {
	t.Helper()
	img := &Image{
		stream:     imagestream.NewMemoryStream(raw, "", imagestream.Owned),
		width:      w,
		height:     h,
		bpc:        8,
		nc:         3,
		colorSpace: colorspace.DeviceRGB{},
		downscale:  DefaultDownscaleConfig(),
		logger:     NopLogger{},
	}
	img.drawWidth, img.drawHeight = w, h
	return img
}

// Scenario 3 of spec.md §8: 1x1 DeviceRGB, BPC=8, no masks.
func TestCreateImageData_CompactRGBPassthrough(t *testing.T) {
	img := newRGBImage(t, []byte{10, 20, 30}, 1, 1)
	desc, err := img.CreateImageData(false)
	if err != nil {
		t.Fatalf("CreateImageData: %v", err)
	}
	if desc.Kind != RGB24BPP {
		t.Fatalf("kind = %v, want RGB24BPP", desc.Kind)
	}
	if desc.Width != 1 || desc.Height != 1 {
		t.Fatalf("dims = %dx%d, want 1x1", desc.Width, desc.Height)
	}
	want := []byte{10, 20, 30}
	for i := range want {
		if desc.Data[i] != want[i] {
			t.Errorf("byte %d: got %d, want %d", i, desc.Data[i], want[i])
		}
	}
}

func TestCreateImageData_ForceRGBAEmitsAlpha255(t *testing.T) {
	img := newRGBImage(t, []byte{10, 20, 30}, 1, 1)
	desc, err := img.CreateImageData(true)
	if err != nil {
		t.Fatalf("CreateImageData: %v", err)
	}
	if desc.Kind != RGBA32BPP {
		t.Fatalf("kind = %v, want RGBA32BPP", desc.Kind)
	}
	want := []byte{10, 20, 30, 255}
	for i := range want {
		if desc.Data[i] != want[i] {
			t.Errorf("byte %d: got %d, want %d", i, desc.Data[i], want[i])
		}
	}
}

// Scenario 4: 1x1 DeviceRGB with color-key mask end to end.
func TestCreateImageData_ColorKeyMask(t *testing.T) {
	img := newRGBImage(t, []byte{10, 10, 10}, 1, 1)
	img.colorKey = []float64{0, 20, 0, 20, 0, 20}

	desc, err := img.CreateImageData(false)
	if err != nil {
		t.Fatalf("CreateImageData: %v", err)
	}
	if desc.Kind != RGBA32BPP {
		t.Fatalf("kind = %v, want RGBA32BPP (mask present)", desc.Kind)
	}
	if desc.Data[3] != 0 {
		t.Errorf("alpha = %d, want 0 (fully masked)", desc.Data[3])
	}
	if desc.Data[0] != 10 || desc.Data[1] != 10 || desc.Data[2] != 10 {
		t.Errorf("color channels = %v, want [10 10 10]", desc.Data[:3])
	}
}

func TestCreateImageData_ColorKeyMask_Visible(t *testing.T) {
	img := newRGBImage(t, []byte{10, 10, 30}, 1, 1)
	img.colorKey = []float64{0, 20, 0, 20, 0, 20}

	desc, err := img.CreateImageData(false)
	if err != nil {
		t.Fatalf("CreateImageData: %v", err)
	}
	if desc.Data[3] != 255 {
		t.Errorf("alpha = %d, want 255 (visible)", desc.Data[3])
	}
}

// 1-bpp grayscale passthrough with a Decode-array inversion must XOR every
// output byte.
func TestCreateImageData_GrayPassthroughXORsWithDecode(t *testing.T) {
	img := newTestGrayImage(t, []byte{0b10000000, 0b01000000}, 2, 2, 1, true, []float64{1, 0})
	desc, err := img.CreateImageData(false)
	if err != nil {
		t.Fatalf("CreateImageData: %v", err)
	}
	if desc.Kind != Gray1BPP {
		t.Fatalf("kind = %v, want Gray1BPP", desc.Kind)
	}
	want := []byte{^byte(0b10000000), ^byte(0b01000000)}
	for i := range want {
		if desc.Data[i] != want[i] {
			t.Errorf("byte %d: got %08b, want %08b", i, desc.Data[i], want[i])
		}
	}
}

func TestCreateImageData_TruncatedStreamScalesActualHeight(t *testing.T) {
	// 1x4 DeviceRGB image, but the stream only delivers 2 of 4 rows.
	img := newRGBImage(t, []byte{1, 2, 3, 4, 5, 6}, 1, 4)
	desc, err := img.CreateImageData(true)
	if err != nil {
		t.Fatalf("CreateImageData: %v", err)
	}
	// Rows 2 and 3 (0-indexed) have no source data; FillRgb clamps to the
	// last actually-delivered row rather than reading out of bounds.
	if desc.Width != 1 || desc.Height != 4 {
		t.Fatalf("dims = %dx%d, want 1x4", desc.Width, desc.Height)
	}
}
