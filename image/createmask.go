package image

// CreateMask implements PDFImage.createMask (spec.md §6): build a packed
// 1bpp stencil buffer of w×h pixels directly from a literal byte array
// (the inline-image mask case, which never goes through the recursive
// sub-Image machinery). fromDecodeStream reports whether imgArray is this
// call's own buffer, already sized for reuse — when it is, and already big
// enough, the result is built in place instead of allocating.
func CreateMask(imgArray []byte, w, h int, fromDecodeStream, inverseDecode bool) *MaskData {
	rb := rowBytes(w, 1, 1)
	size := rb * h

	var data []byte
	if fromDecodeStream && len(imgArray) >= size {
		data = imgArray[:size]
	} else {
		data = make([]byte, size)
		copy(data, imgArray)
	}

	n := len(imgArray)
	if n > size {
		n = size
	}
	if n < size && inverseDecode {
		for i := n; i < size; i++ {
			data[i] = 0xFF
		}
	}
	if inverseDecode {
		for i := 0; i < n; i++ {
			data[i] = ^data[i]
		}
	}

	return &MaskData{Data: data, Width: w, Height: h}
}
