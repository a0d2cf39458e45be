package colorspace

import "testing"

func TestIndexed_GetRgb(t *testing.T) {
	idx := Indexed{
		Base:  DeviceRGB{},
		HiVal: 1,
		Table: []float64{
			1, 0, 0, // index 0 -> red
			0, 1, 0, // index 1 -> green
		},
	}
	r, g, b := idx.GetRgb([]float64{0}, 0)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("index 0: got %d %d %d, want red", r, g, b)
	}
	r, g, b = idx.GetRgb([]float64{1}, 0)
	if r != 0 || g != 255 || b != 0 {
		t.Errorf("index 1: got %d %d %d, want green", r, g, b)
	}
}

func TestIndexed_ClampsOutOfRange(t *testing.T) {
	idx := Indexed{Base: DeviceGray{}, HiVal: 2, Table: []float64{0, 0.5, 1}}
	r, _, _ := idx.GetRgb([]float64{100.0 / 2}, 0) // normalized value way past hival
	if r != 255 {
		t.Errorf("out-of-range index must clamp to last table entry, got %d", r)
	}
}

func TestIndexed_IsDefaultDecode(t *testing.T) {
	idx := Indexed{Base: DeviceGray{}, HiVal: 15}
	if idx.IsDefaultDecode([]float64{0, 1}) {
		t.Error("Indexed's natural decode is [0 hival], not [0 1]")
	}
	if !idx.IsDefaultDecode([]float64{0, 15}) {
		t.Error("[0 hival] must be recognized as Indexed's default decode")
	}
}

func TestIndexed_NumComps(t *testing.T) {
	idx := Indexed{Base: DeviceCMYK{}}
	if idx.NumComps() != 1 {
		t.Errorf("Indexed is always single-component, got %d", idx.NumComps())
	}
}
