package image

import (
	"testing"

	"github.com/cocosip/go-pdf-image/colorspace"
	"github.com/cocosip/go-pdf-image/imagestream"
)

func newTestGrayImage(t *testing.T, raw []byte, w, h, bpc int, needsDecode bool, decode []float64) *Image {
	t.Helper()
	img := &Image{
		stream:      imagestream.NewMemoryStream(raw, "", imagestream.Owned),
		width:       w,
		height:      h,
		bpc:         bpc,
		nc:          1,
		colorSpace:  colorspace.DeviceGray{},
		decode:      decode,
		needsDecode: needsDecode,
		downscale:   DefaultDownscaleConfig(),
		logger:      NopLogger{},
	}
	if needsDecode {
		img.addend, img.coeff = decodeAddendCoeff(decode, 1, bpc)
	}
	img.drawWidth, img.drawHeight = w, h
	return img
}

// Scenario 1 of spec.md §8: 2x2 stencil mask, bit-packed.
func TestFillGrayBuffer_StencilNoDecode(t *testing.T) {
	img := newTestGrayImage(t, []byte{0b10000000, 0b01000000}, 2, 2, 1, false, nil)
	img.isMask = true
	buf := make([]byte, 4)
	if err := img.FillGrayBuffer(buf); err != nil {
		t.Fatalf("FillGrayBuffer: %v", err)
	}
	want := []byte{0, 255, 255, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("index %d: got %d, want %d (full=%v)", i, buf[i], want[i], buf)
		}
	}
}

func TestFillGrayBuffer_StencilWithDecode(t *testing.T) {
	img := newTestGrayImage(t, []byte{0b10000000, 0b01000000}, 2, 2, 1, true, []float64{1, 0})
	img.isMask = true
	buf := make([]byte, 4)
	if err := img.FillGrayBuffer(buf); err != nil {
		t.Fatalf("FillGrayBuffer: %v", err)
	}
	// Inverse of the no-decode case per spec.md §8's property.
	want := []byte{255, 0, 0, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("index %d: got %d, want %d (full=%v)", i, buf[i], want[i], buf)
		}
	}
}

// Scenario 2: 2x1 DeviceGray, BPC=4, no decode.
func TestFillGrayBuffer_BPC4Scaled(t *testing.T) {
	img := newTestGrayImage(t, []byte{0x0F}, 2, 1, 4, false, nil)
	buf := make([]byte, 2)
	if err := img.FillGrayBuffer(buf); err != nil {
		t.Fatalf("FillGrayBuffer: %v", err)
	}
	want := []byte{0, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestFillGrayBuffer_RejectsMultiComponent(t *testing.T) {
	img := newTestGrayImage(t, []byte{1, 2, 3}, 1, 1, 8, false, nil)
	img.nc = 3
	if err := img.FillGrayBuffer(make([]byte, 1)); err == nil {
		t.Fatal("expected FormatError for NumComps != 1")
	}
}

// Scenario 4: 1x1 DeviceRGB with color-key mask.
func TestFillOpacityColorKey(t *testing.T) {
	img := &Image{nc: 3, colorKey: []float64{0, 20, 0, 20, 0, 20}}

	dst := make([]byte, 4)
	img.fillOpacityColorKey(dst, []uint32{10, 10, 10})
	if dst[3] != 0 {
		t.Errorf("all-in-range sample: got alpha %d, want 0 (fully masked)", dst[3])
	}

	dst2 := make([]byte, 4)
	img.fillOpacityColorKey(dst2, []uint32{10, 10, 30})
	if dst2[3] != 255 {
		t.Errorf("out-of-range sample: got alpha %d, want 255", dst2[3])
	}
}

// Decode-array changes must not affect which pixels a color-key mask drops
// — color-key masking reads pre-decode samples.
func TestFillOpacityColorKey_IgnoresDecode(t *testing.T) {
	img := &Image{nc: 1, colorKey: []float64{5, 10}}
	dst := make([]byte, 4)
	// Sample value 7 is inside [5,10] regardless of what a Decode array
	// might remap it to later in the pipeline.
	img.fillOpacityColorKey(dst, []uint32{7})
	if dst[3] != 0 {
		t.Errorf("got alpha %d, want 0", dst[3])
	}
}

// Soft-mask resample must be pure nearest-neighbor.
func TestFillOpacitySoft_NearestNeighborResample(t *testing.T) {
	sub := newTestGrayImage(t, []byte{0x00, 0xFF, 0x80, 0x40}, 2, 2, 8, false, nil)
	parent := &Image{smask: sub}

	dst := make([]byte, 4*4*4) // 4x4 draw dims from a 2x2 soft mask
	if err := parent.fillOpacity(dst, 4, 4, 4, nil); err != nil {
		t.Fatalf("fillOpacity: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			sx := x * 2 / 4
			sy := y * 2 / 4
			want := []byte{0x00, 0xFF, 0x80, 0x40}[sy*2+sx]
			got := dst[(y*4+x)*4+3]
			if got != want {
				t.Errorf("(%d,%d): got alpha %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestFillOpacitySoft_StencilInverts(t *testing.T) {
	sub := newTestGrayImage(t, []byte{0b10000000, 0b01000000}, 2, 2, 1, false, nil)
	sub.isMask = true
	parent := &Image{maskImage: sub}

	dst := make([]byte, 2*2*4)
	if err := parent.fillOpacity(dst, 2, 2, 2, nil); err != nil {
		t.Fatalf("fillOpacity: %v", err)
	}
	// FillGrayBuffer(no-decode) gives [0,255,255,0]; stencil inverts to
	// [255,0,0,255].
	want := []byte{255, 0, 0, 255}
	for i := 0; i < 4; i++ {
		if got := dst[i*4+3]; got != want[i] {
			t.Errorf("pixel %d: got alpha %d, want %d", i, got, want[i])
		}
	}
}

func TestFillOpacity_NoMaskDefaultsOpaque(t *testing.T) {
	img := &Image{}
	dst := make([]byte, 2*2*4)
	if err := img.fillOpacity(dst, 2, 2, 2, nil); err != nil {
		t.Fatalf("fillOpacity: %v", err)
	}
	for i := 0; i < 4; i++ {
		if dst[i*4+3] != 255 {
			t.Errorf("pixel %d: got alpha %d, want 255", i, dst[i*4+3])
		}
	}
}
