package image

// fillOpacity is the mask engine (spec.md §4.4): it writes the alpha
// channel of an already-allocated RGBA buffer. comps holds the primary
// image's pre-decode component samples — color-key masking must see raw,
// undecoded values, which is why this runs before decodeBuffer in
// CreateImageData's general path.
func (img *Image) fillOpacity(dst []byte, drawW, drawH, actualH int, comps []uint32) error {
	switch {
	case img.smask != nil:
		return img.fillOpacitySoft(dst, drawW, drawH, img.smask, false)
	case img.maskImage != nil:
		return img.fillOpacitySoft(dst, drawW, drawH, img.maskImage, true)
	case img.colorKey != nil:
		img.fillOpacityColorKey(dst, comps)
		return nil
	default:
		for i := 0; i < drawW*drawH; i++ {
			dst[i*4+3] = 255
		}
		return nil
	}
}

// fillOpacitySoft handles both the SMask and stencil-Mask cases: build the
// sub-image's own 8-bit gray plane via FillGrayBuffer, invert it when the
// sub-image is a stencil Mask rather than a soft mask, then nearest-neighbor
// resample it up/down to the primary image's draw dimensions.
func (img *Image) fillOpacitySoft(dst []byte, drawW, drawH int, sub *Image, stencil bool) error {
	gray := make([]byte, sub.width*sub.height)
	if err := sub.FillGrayBuffer(gray); err != nil {
		return err
	}
	if stencil {
		for i, v := range gray {
			gray[i] = 255 - v
		}
	}
	resized := resizeImageMask8(gray, sub.width, sub.height, drawW, drawH)
	for i := 0; i < drawW*drawH && i < len(resized); i++ {
		dst[i*4+3] = resized[i]
	}
	return nil
}

// fillOpacityColorKey evaluates the color-key range test on pre-decode
// samples: opacity is 255 (fully transparent... no, fully *visible*) unless
// every component of the pixel falls inside its [key[2j], key[2j+1]] range,
// in which case the pixel is transparent (alpha 0).
func (img *Image) fillOpacityColorKey(dst []byte, comps []uint32) {
	nc := img.nc
	if nc == 0 {
		return
	}
	n := len(comps) / nc
	for i := 0; i < n; i++ {
		masked := true
		for j := 0; j < nc; j++ {
			v := float64(comps[i*nc+j])
			if v < img.colorKey[2*j] || v > img.colorKey[2*j+1] {
				masked = false
				break
			}
		}
		a := byte(255)
		if masked {
			a = 0
		}
		if o := i*4 + 3; o < len(dst) {
			dst[o] = a
		}
	}
}

// FillGrayBuffer implements spec.md §4.8: it is only valid for a
// single-component image (a soft mask, a stencil sub-image, or any
// DeviceGray image used as one), reading and unpacking its samples into an
// 8-bit gray plane sized Width()*Height().
func (img *Image) FillGrayBuffer(buf []byte) error {
	if img.nc != 1 {
		return formatErrorf("fillGrayBuffer requires a single-component image, got NumComps=%d", img.nc)
	}
	n := img.width * img.height
	if len(buf) < n {
		return formatErrorf("fillGrayBuffer: destination buffer too small: need %d, got %d", n, len(buf))
	}

	if err := img.stream.Reset(); err != nil {
		return err
	}
	rb := rowBytes(img.width, 1, img.bpc)
	raw, err := img.stream.GetBytes(rb * img.height)
	if err != nil {
		return err
	}
	comps := getComponents(raw, img.width, img.height, 1, img.bpc)

	if img.bpc == 1 {
		// The worked examples in spec.md §8 fix the mapping: a raw bit of 1
		// (painted, under the PDF ImageMask convention) becomes alpha 0
		// with no decode applied, and the opposite when Decode inverts it.
		if img.needsDecode {
			for i := 0; i < n; i++ {
				buf[i] = byte((-int32(comps[i])) & 0xFF)
			}
		} else {
			for i := 0; i < n; i++ {
				buf[i] = byte((int32(comps[i]) - 1) & 0xFF)
			}
		}
		return nil
	}

	if img.needsDecode {
		decodeBuffer(comps, 1, img.bpc, img.addend, img.coeff)
	}
	max := float64((uint32(1) << uint(img.bpc)) - 1)
	for i := 0; i < n; i++ {
		buf[i] = byte(float64(comps[i]) * 255.0 / max)
	}
	return nil
}
