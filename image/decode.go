package image

// decodeAddendCoeff computes, per component, the affine remap that turns a
// raw sample in [0, max] into the Decode-array-mapped value: out = addend +
// coeff * raw, still in [0, max] terms afterward (the PDF Decode array maps
// into [0,1]; addend/coeff here are pre-scaled by max so decodeBuffer can
// stay in integer-ish sample space and defer the final /max normalization
// to the color space's FillRgb/GetRgb).
func decodeAddendCoeff(decode []float64, nc, bpc int) (addend, coeff []float64) {
	max := float64((uint32(1) << uint(bpc)) - 1)
	addend = make([]float64, nc)
	coeff = make([]float64, nc)
	for i := 0; i < nc; i++ {
		dMin := decode[2*i]
		dMax := decode[2*i+1]
		addend[i] = dMin * max
		coeff[i] = dMax - dMin
	}
	return addend, coeff
}

// decodeBuffer applies the per-component affine Decode remap in place.
// bpc==1 is handled as the boolean complement spec'd for stencil masks
// and 1-bit images, which is exactly what the general affine formula
// degenerates to when decode is [1 0] (coeff=-1, addend=max=1) but is
// special-cased for clarity and to avoid a float round-trip on the common
// path.
func decodeBuffer(comps []uint32, nc, bpc int, addend, coeff []float64) {
	if bpc == 1 && nc == 1 && coeff[0] == -1 && addend[0] == 1 {
		for i, v := range comps {
			comps[i] = 1 - v
		}
		return
	}
	max := float64((uint32(1) << uint(bpc)) - 1)
	for i := range comps {
		c := i % nc
		v := addend[c] + coeff[c]*float64(comps[i])
		if v < 0 {
			v = 0
		} else if v > max {
			v = max
		}
		comps[i] = uint32(v + 0.5)
	}
}
