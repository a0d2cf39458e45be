package image

// shallResizeImage reports whether the grayscale fast paths' downscale
// heuristic applies: only 1-component images, and only when bpc is 1 (a
// stencil-shaped bilevel buffer) or 8 (a plain gray byte buffer) — the two
// shapes cheap enough to reduce without unpacking through the general
// sample pipeline.
func (c DownscaleConfig) shallResizeImage(nc, bpc int) bool {
	if c.Print {
		return false
	}
	return nc == 1 && (bpc == 1 || bpc == 8)
}

func (c DownscaleConfig) scaleBitsFor(w, h int) int {
	maxDim := w
	if h > maxDim {
		maxDim = h
	}
	return c.scaleBits(maxDim)
}

// downscale1bpp OR-reduces a packed, row-byte-aligned 1-bpp bitmap by
// 2^scaleBits in both dimensions: an output pixel is set iff any source
// pixel in its block is set. This is the bilevel heuristic — cheap, and
// biased toward keeping thin black strokes visible rather than averaging
// them away.
func downscale1bpp(buf []byte, w, h, scaleBits int) (out []byte, newW, newH int) {
	factor := 1 << uint(scaleBits)
	newW = (w + factor - 1) / factor
	newH = (h + factor - 1) / factor
	srcRowBytes := rowBytes(w, 1, 1)
	dstRowBytes := rowBytes(newW, 1, 1)
	out = make([]byte, dstRowBytes*newH)
	for oy := 0; oy < newH; oy++ {
		for ox := 0; ox < newW; ox++ {
			var set bool
			for dy := 0; dy < factor && !set; dy++ {
				sy := oy*factor + dy
				if sy >= h {
					continue
				}
				rowOff := sy * srcRowBytes
				for dx := 0; dx < factor; dx++ {
					sx := ox*factor + dx
					if sx >= w {
						continue
					}
					byteIdx := rowOff + sx/8
					shift := uint(7 - sx%8)
					if byteIdx < len(buf) && (buf[byteIdx]>>shift)&1 != 0 {
						set = true
						break
					}
				}
			}
			if set {
				out[oy*dstRowBytes+ox/8] |= 1 << uint(7-ox%8)
			}
		}
	}
	return out, newW, newH
}

// downscale8bpp nearest-neighbor resamples a one-byte-per-pixel grayscale
// buffer by 2^scaleBits in both dimensions.
func downscale8bpp(buf []byte, w, h, scaleBits int) (out []byte, newW, newH int) {
	factor := 1 << uint(scaleBits)
	newW = (w + factor - 1) / factor
	newH = (h + factor - 1) / factor
	out = make([]byte, newW*newH)
	for oy := 0; oy < newH; oy++ {
		sy := oy * factor
		if sy >= h {
			sy = h - 1
		}
		srcRow := sy * w
		dstRow := oy * newW
		for ox := 0; ox < newW; ox++ {
			sx := ox * factor
			if sx >= w {
				sx = w - 1
			}
			out[dstRow+ox] = buf[srcRow+sx]
		}
	}
	return out, newW, newH
}

// resizeImageMask8 nearest-neighbor resamples an 8-bit gray buffer (a
// soft mask or a fillGrayBuffer'd stencil mask) from srcW×srcH up or down
// to dstW×dstH, used by the mask engine when a mask's own dimensions
// differ from the image it applies to.
func resizeImageMask8(src []byte, srcW, srcH, dstW, dstH int) []byte {
	if srcW == dstW && srcH == dstH {
		return src
	}
	out := make([]byte, dstW*dstH)
	for y := 0; y < dstH; y++ {
		sy := y * srcH / dstH
		srcRow := sy * srcW
		dstRow := y * dstW
		for x := 0; x < dstW; x++ {
			sx := x * srcW / dstW
			out[dstRow+x] = src[srcRow+sx]
		}
	}
	return out
}
