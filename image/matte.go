package image

import "github.com/cocosip/go-pdf-image/colorspace"

// undoPreblendMatte reverses the pre-blending a soft mask's producer did
// against a constant Matte color: PDF readers are handed
// c = matte + (c0 - matte) * a/255, and this computes
// c0 = matte + (c - matte) * 255/a, restoring the un-premultiplied color.
// a == 0 has no recoverable color information and is defined to come back
// as white.
func undoPreblendMatte(rgba []byte, w, h int, matte []float64, cs colorspace.Space) {
	mr, mg, mb := cs.GetRgb(matte, 0)
	m := [3]float64{float64(mr), float64(mg), float64(mb)}
	for i := 0; i < w*h; i++ {
		o := i * 4
		a := rgba[o+3]
		if a == 0 {
			rgba[o], rgba[o+1], rgba[o+2] = 255, 255, 255
			continue
		}
		af := float64(a)
		for ch := 0; ch < 3; ch++ {
			// Multiply by 255 before dividing by a, so an exact quotient
			// such as 200*255/200 is not truncated to 254.
			v := (float64(rgba[o+ch])-m[ch])*255/af + m[ch]
			rgba[o+ch] = clampTrunc(v)
		}
	}
}

func clampTrunc(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
