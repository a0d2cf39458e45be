package colorspace

// RCTInverse applies inverse Reversible Color Transform (RCT).
// params: y,cb,cr - transformed components
// returns: r,g,b original components
func RCTInverse(y, cb, cr int32) (r, g, b int32) {
	g = y - ((cb + cr) >> 2)
	r = cr + g
	b = cb + g
	return
}

// ApplyInverseRCTToComponents converts Y,Cb,Cr arrays back to R,G,B.
// params: y,cb,cr - transformed component slices
// returns: r,g,b slices
func ApplyInverseRCTToComponents(y, cb, cr []int32) (r, g, b []int32) {
	n := len(y)
	r = make([]int32, n)
	g = make([]int32, n)
	b = make([]int32, n)
	for i := 0; i < n; i++ {
		r[i], g[i], b[i] = RCTInverse(y[i], cb[i], cr[i])
	}
	return
}
