package colorspace

// DeviceGray is the 1-component grayscale color space.
type DeviceGray struct{}

func (DeviceGray) Name() string      { return "DeviceGray" }
func (DeviceGray) NumComps() int     { return 1 }
func (DeviceGray) IsDefaultDecode(decode []float64) bool {
	return IsDefaultDecodeArray(decode, 1)
}

func (DeviceGray) GetRgb(value []float64, offset int) (r, g, b byte) {
	v := clampByte(value[offset] * 255)
	return v, v, v
}

func (s DeviceGray) FillRgb(dst []byte, srcW, srcH, dstW, dstH, actualH int, comps []uint32, bpc, alpha01 int) {
	fillRgbGeneric(dst, srcW, srcH, dstW, dstH, actualH, comps, bpc, alpha01, 1, func(n []float64) (byte, byte, byte) {
		v := clampByte(n[0] * 255)
		return v, v, v
	})
}

// DeviceRGB is the 3-component additive color space.
type DeviceRGB struct{}

func (DeviceRGB) Name() string  { return "DeviceRGB" }
func (DeviceRGB) NumComps() int { return 3 }
func (DeviceRGB) IsDefaultDecode(decode []float64) bool {
	return IsDefaultDecodeArray(decode, 3)
}

func (DeviceRGB) GetRgb(value []float64, offset int) (r, g, b byte) {
	return clampByte(value[offset] * 255), clampByte(value[offset+1] * 255), clampByte(value[offset+2] * 255)
}

func (s DeviceRGB) FillRgb(dst []byte, srcW, srcH, dstW, dstH, actualH int, comps []uint32, bpc, alpha01 int) {
	fillRgbGeneric(dst, srcW, srcH, dstW, dstH, actualH, comps, bpc, alpha01, 3, func(n []float64) (byte, byte, byte) {
		return clampByte(n[0] * 255), clampByte(n[1] * 255), clampByte(n[2] * 255)
	})
}

// DeviceCMYK is the 4-component subtractive color space. Conversion to RGB
// uses the naive r = 1 - min(1, c+k) formula (no ICC black generation /
// under-color removal), matching what a viewer falls back to when no
// richer CMYK profile is available.
type DeviceCMYK struct{}

func (DeviceCMYK) Name() string  { return "DeviceCMYK" }
func (DeviceCMYK) NumComps() int { return 4 }
func (DeviceCMYK) IsDefaultDecode(decode []float64) bool {
	return IsDefaultDecodeArray(decode, 4)
}

func cmykToRgb(c, m, y, k float64) (byte, byte, byte) {
	r := clampByte((1 - min1(c+k)) * 255)
	g := clampByte((1 - min1(m+k)) * 255)
	b := clampByte((1 - min1(y+k)) * 255)
	return r, g, b
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

func (DeviceCMYK) GetRgb(value []float64, offset int) (r, g, b byte) {
	return cmykToRgb(value[offset], value[offset+1], value[offset+2], value[offset+3])
}

func (s DeviceCMYK) FillRgb(dst []byte, srcW, srcH, dstW, dstH, actualH int, comps []uint32, bpc, alpha01 int) {
	fillRgbGeneric(dst, srcW, srcH, dstW, dstH, actualH, comps, bpc, alpha01, 4, func(n []float64) (byte, byte, byte) {
		return cmykToRgb(n[0], n[1], n[2], n[3])
	})
}
