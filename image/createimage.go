package image

import (
	"github.com/cocosip/go-pdf-image/colorspace"
	"github.com/cocosip/go-pdf-image/imagestream"
)

// CreateImageData is the orchestration entry point (spec.md §4.6): pull the
// raw bytes for one full image from the stream, then either take one of the
// cheap passthrough paths or run the general bit-unpack/mask/decode/
// color-convert/matte pipeline, and return the output descriptor the
// renderer composites.
func (img *Image) CreateImageData(forceRGBA bool) (*Descriptor, error) {
	if err := img.stream.Reset(); err != nil {
		return nil, err
	}
	rb := rowBytes(img.width, img.nc, img.bpc)
	want := rb * img.height
	raw, err := img.stream.GetBytes(want)
	if err != nil {
		return nil, err
	}

	hasMask := img.HasMask()
	dimsMatch := img.drawWidth == img.width && img.drawHeight == img.height
	complete := len(raw) >= want

	if !forceRGBA && !hasMask && dimsMatch && complete {
		if desc, ok, err := img.fastPath(raw); ok || err != nil {
			return desc, err
		}
	}

	return img.generalPath(raw, forceRGBA)
}

// fastPath tries the two cheap passthroughs spec.md §4.6 names: 1-bpp
// grayscale (or stencil) passthrough, and the compact 24-bpp DeviceRGB
// passthrough. It returns ok=false when neither applies, so the caller
// falls through to the general path.
func (img *Image) fastPath(raw []byte) (*Descriptor, bool, error) {
	if img.isMask || isDeviceGray(img.colorSpace) {
		if img.bpc == 1 {
			return img.grayPassthrough(raw), true, nil
		}
	}
	if isDeviceRGB(img.colorSpace) && img.bpc == 8 && !img.needsDecode {
		return img.rgbPassthrough(raw), true, nil
	}
	return nil, false, nil
}

func (img *Image) grayPassthrough(raw []byte) *Descriptor {
	data := img.takeOrCopy(raw)
	if img.needsDecode {
		for i, b := range data {
			data[i] = b ^ 0xFF
		}
	}
	w, h := img.width, img.height
	if img.downscale.shallResizeImage(1, 1) {
		if sb := img.downscale.scaleBitsFor(w, h); sb > 0 {
			data, w, h = downscale1bpp(data, w, h, sb)
		}
	}
	return &Descriptor{Kind: Gray1BPP, Width: w, Height: h, Data: data}
}

func (img *Image) rgbPassthrough(raw []byte) *Descriptor {
	return &Descriptor{Kind: RGB24BPP, Width: img.width, Height: img.height, Data: img.takeOrCopy(raw)}
}

// takeOrCopy hands back raw directly when the backing stream says its
// buffer is exclusively owned by this decode (e.g. a native decoder's
// output) and safe to transfer without copying; otherwise it copies, since
// raw may alias a buffer something else still holds.
func (img *Image) takeOrCopy(raw []byte) []byte {
	if img.stream.Ownership() == imagestream.Owned {
		return raw
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp
}

// generalPath is the pipeline every non-fast-path image runs through: raw
// gray downscale, actualHeight accounting for truncated streams, bit
// unpacking, mask-engine alpha (pre-decode), the Decode transform, color
// conversion/resample via the color space, and matte undo.
func (img *Image) generalPath(rawFull []byte, forceRGBA bool) (*Descriptor, error) {
	origRB := rowBytes(img.width, img.nc, img.bpc)
	bytesRead := len(rawFull)

	w, h, nc, bpc := img.width, img.height, img.nc, img.bpc
	buf := rawFull
	cs := img.colorSpace
	if isDeviceGray(cs) && img.downscale.shallResizeImage(nc, bpc) {
		if sb := img.downscale.scaleBitsFor(w, h); sb > 0 {
			if bpc == 1 {
				buf, w, h = downscale1bpp(rawFull, w, h, sb)
			} else {
				buf, w, h = downscale8bpp(rawFull, w, h, sb)
			}
		}
	}

	actualHeight := img.drawHeight
	if origRB > 0 && img.height > 0 {
		rowsRead := bytesRead / origRB
		ah := rowsRead * img.drawHeight / img.height
		if ah < actualHeight {
			actualHeight = ah
		}
	}
	if actualHeight < 0 {
		actualHeight = 0
	}

	comps := getComponents(buf, w, h, nc, bpc)

	hasMask := img.HasMask()
	alpha01 := 0
	kind := RGB24BPP
	if hasMask || forceRGBA {
		alpha01 = 1
		kind = RGBA32BPP
	}

	stride := 3 + alpha01
	dst := make([]byte, img.drawWidth*img.drawHeight*stride)

	if alpha01 == 1 {
		if err := img.fillOpacity(dst, img.drawWidth, img.drawHeight, actualHeight, comps); err != nil {
			return nil, err
		}
	}

	if img.needsDecode {
		decodeBuffer(comps, nc, bpc, img.addend, img.coeff)
	}

	if cs == nil {
		cs = colorspace.DeviceGray{}
	}
	cs.FillRgb(dst, w, h, img.drawWidth, img.drawHeight, actualHeight, comps, bpc, alpha01)

	if alpha01 == 1 && img.smask != nil && len(img.matte) > 0 {
		undoPreblendMatte(dst, img.drawWidth, img.drawHeight, img.matte, cs)
	}

	return &Descriptor{Kind: kind, Width: img.drawWidth, Height: img.drawHeight, Data: dst}, nil
}

func isDeviceGray(cs colorspace.Space) bool {
	_, ok := cs.(colorspace.DeviceGray)
	return ok
}

func isDeviceRGB(cs colorspace.Space) bool {
	_, ok := cs.(colorspace.DeviceRGB)
	return ok
}
