package colorspace

import "testing"

func TestDeviceGray_GetRgb(t *testing.T) {
	r, g, b := DeviceGray{}.GetRgb([]float64{0.5}, 0)
	if r != g || g != b {
		t.Fatalf("gray channels must be equal, got %d %d %d", r, g, b)
	}
	if r != 128 {
		t.Errorf("got %d, want 128 (0.5*255 rounded)", r)
	}
}

func TestDeviceRGB_GetRgb(t *testing.T) {
	r, g, b := DeviceRGB{}.GetRgb([]float64{10.0 / 255, 20.0 / 255, 30.0 / 255}, 0)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("got %d %d %d, want 10 20 30", r, g, b)
	}
}

func TestDeviceCMYK_PureBlack(t *testing.T) {
	r, g, b := DeviceCMYK{}.GetRgb([]float64{0, 0, 0, 1}, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("K=1 must produce black, got %d %d %d", r, g, b)
	}
}

func TestDeviceCMYK_PureWhite(t *testing.T) {
	r, g, b := DeviceCMYK{}.GetRgb([]float64{0, 0, 0, 0}, 0)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("all-zero CMYK must produce white, got %d %d %d", r, g, b)
	}
}

func TestIsDefaultDecodeArray(t *testing.T) {
	if !IsDefaultDecodeArray(nil, 3) {
		t.Error("nil decode must be treated as default")
	}
	if !IsDefaultDecodeArray([]float64{0, 1, 0, 1, 0, 1}, 3) {
		t.Error("[0 1 0 1 0 1] must be the default for 3 components")
	}
	if IsDefaultDecodeArray([]float64{1, 0, 0, 1, 0, 1}, 3) {
		t.Error("inverted first component must not be default")
	}
	if IsDefaultDecodeArray([]float64{0, 1}, 3) {
		t.Error("wrong length must not be default")
	}
}

func TestFillRgb_Resamples(t *testing.T) {
	// 1x1 source gray value 0.5, resampled up to 2x2 via nearest neighbor.
	comps := []uint32{128}
	dst := make([]byte, 2*2*3)
	DeviceGray{}.FillRgb(dst, 1, 1, 2, 2, 1, comps, 8, 0)
	for i := 0; i < 4; i++ {
		if dst[i*3] != 128 {
			t.Errorf("pixel %d: got %d, want 128", i, dst[i*3])
		}
	}
}

func TestFillRgb_AlphaStrideUntouched(t *testing.T) {
	comps := []uint32{255, 0, 0}
	dst := make([]byte, 1*1*4)
	dst[3] = 42
	DeviceRGB{}.FillRgb(dst, 1, 1, 1, 1, 1, comps, 8, 1)
	if dst[3] != 42 {
		t.Errorf("alpha byte must be left untouched by FillRgb, got %d", dst[3])
	}
	if dst[0] != 255 || dst[1] != 0 || dst[2] != 0 {
		t.Errorf("RGB = %v, want [255 0 0]", dst[:3])
	}
}
