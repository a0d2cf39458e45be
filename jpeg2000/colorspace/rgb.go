package colorspace

// YCbCrToRGB converts JPEG 2000 ICT components back to RGB (no 128 offset).
func YCbCrToRGB(y, cb, cr int32) (r, g, b int32) {
	return ICTInverse(y, cb, cr)
}

// ConvertComponentsYCbCrToRGB converts Y,Cb,Cr slices back to R,G,B using ICT inverse.
// params: y,cb,cr - transformed component slices
// returns: r,g,b slices
func ConvertComponentsYCbCrToRGB(y, cb, cr []int32) (r, g, b []int32) {
	n := len(y)
	r = make([]int32, n)
	g = make([]int32, n)
	b = make([]int32, n)
	for i := 0; i < n; i++ {
		r[i], g[i], b[i] = YCbCrToRGB(y[i], cb[i], cr[i])
	}
	return
}
