// Package image is the core image-object decoding engine: given an
// image XObject's parsed dictionary and its (possibly still filter-encoded)
// byte stream, it reconstructs a pixel buffer ready for compositing —
// GRAYSCALE_1BPP, RGB_24BPP or RGBA_32BPP — handling arbitrary
// bits-per-component samples, Decode-array remapping, soft/stencil/color-key
// masking, Matte pre-blend undoing and a heuristic grayscale downscale.
//
// Everything outside that boundary — parsing the dictionary itself,
// resolving the cross-reference table, the real JPEG/JPEG 2000/CCITT/JBIG2
// entropy decoders, page layout and rasterization — is someone else's job;
// this package only consumes those results through Resolver and
// imagestream.NativeDecoder.
package image

import (
	"context"
	"fmt"
	"sync"

	"github.com/cocosip/go-pdf-image/colorspace"
	"github.com/cocosip/go-pdf-image/imagestream"
	"github.com/cocosip/go-pdf-image/pdfobj"
)

// Image holds one fully-resolved image XObject: its dimensions, sample
// shape, color space and the (already built) soft/stencil mask and
// color-key it composites against.
type Image struct {
	stream imagestream.EncodedStream

	width, height int
	bpc, nc       int
	colorSpace    colorspace.Space
	isMask        bool
	interpolate   bool

	decode      []float64
	needsDecode bool
	addend      []float64
	coeff       []float64

	smask     *Image
	maskImage *Image
	colorKey  []float64
	matte     []float64

	drawWidth, drawHeight int

	downscale DownscaleConfig
	logger    Logger
}

// Option configures a BuildImage call beyond the XObject dictionary itself.
type Option func(*buildOpts)

type buildOpts struct {
	downscale DownscaleConfig
	logger    Logger
}

// WithDownscaleConfig overrides the grayscale downscale heuristic's
// thresholds (and Print flag).
func WithDownscaleConfig(cfg DownscaleConfig) Option {
	return func(o *buildOpts) { o.downscale = cfg }
}

// WithLogger overrides where non-fatal anomalies are reported.
func WithLogger(l Logger) Option {
	return func(o *buildOpts) { o.logger = l }
}

// BuildImage is the factory: it fans the primary stream's native-decode
// substitution, SMask resolution and Mask resolution out across goroutines
// (a pure decode, no shared mutable state between them, so no lock is
// needed beyond the WaitGroup join) and then runs the rest of construction
// synchronously and deterministically.
func BuildImage(ctx context.Context, res pdfobj.Resolver, stream pdfobj.Stream, inline bool, native imagestream.NativeDecoder, opts ...Option) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := buildOpts{downscale: DefaultDownscaleConfig(), logger: DefaultLogger}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.downscale.Validate(); err != nil {
		return nil, err
	}

	raw, ok := stream.Reader.(imagestream.EncodedStream)
	if !ok {
		return nil, formatErrorf("stream reader does not implement imagestream.EncodedStream")
	}

	var wg sync.WaitGroup
	var primary imagestream.EncodedStream
	var primaryErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		primary, primaryErr = resolvePrimaryStream(raw, native)
	}()

	var smaskImg *Image
	var smaskErr error
	if smaskObj, has := stream.Dict.Get("SMask"); has {
		wg.Add(1)
		go func() {
			defer wg.Done()
			smaskImg, smaskErr = resolveSubImage(res, smaskObj, native, o)
		}()
	}

	var maskImg *Image
	var maskErr error
	var colorKey []float64
	hasMaskEntry := false
	if _, has := stream.Dict.Get("SMask"); !has {
		if maskObj, has2 := stream.Dict.Get("Mask"); has2 {
			hasMaskEntry = true
			wg.Add(1)
			go func() {
				defer wg.Done()
				resolved, err := resolveObj(res, maskObj)
				if err != nil {
					maskErr = err
					return
				}
				switch v := resolved.(type) {
				case pdfobj.Array:
					ck := make([]float64, len(v))
					for i, e := range v {
						n, err := resolveObj(res, e)
						if err != nil {
							maskErr = err
							return
						}
						ck[i] = toFloat(n)
					}
					colorKey = ck
				case *pdfobj.Stream:
					if !getBool(v.Dict, "ImageMask", "IM") {
						o.logger.Warnf("Mask stream dropped: sub-image dictionary lacks ImageMask")
						return
					}
					maskImg, maskErr = resolveMaskSubImage(v, native, o)
				default:
					o.logger.Warnf("Mask entry of unsupported type %T dropped", resolved)
				}
			}()
		}
	}
	_ = hasMaskEntry

	wg.Wait()

	if primaryErr != nil {
		return nil, primaryErr
	}
	if smaskErr != nil {
		return nil, smaskErr
	}
	if maskErr != nil {
		o.logger.Warnf("Mask dropped: %v", maskErr)
		maskImg = nil
	}

	return newImage(res, stream.Dict, primary, smaskImg, maskImg, colorKey, o)
}

func resolvePrimaryStream(raw imagestream.EncodedStream, native imagestream.NativeDecoder) (imagestream.EncodedStream, error) {
	if native != nil && native.CanDecode(raw) {
		decoded, err := native.Decode(raw)
		if err != nil {
			return nil, err
		}
		return decoded, nil
	}
	return raw, nil
}

// resolveSubImage builds the Image behind an SMask entry: a plain image
// with no SMask/Mask of its own.
func resolveSubImage(res pdfobj.Resolver, obj pdfobj.Object, native imagestream.NativeDecoder, o buildOpts) (*Image, error) {
	s, err := pdfobj.ResolveStream(res, obj)
	if err != nil {
		return nil, fmt.Errorf("resolving SMask stream: %w", err)
	}
	return resolveMaskSubImage(s, native, o)
}

func resolveMaskSubImage(s *pdfobj.Stream, native imagestream.NativeDecoder, o buildOpts) (*Image, error) {
	raw, ok := s.Reader.(imagestream.EncodedStream)
	if !ok {
		return nil, formatErrorf("mask/soft-mask stream reader does not implement imagestream.EncodedStream")
	}
	decoded, err := resolvePrimaryStream(raw, native)
	if err != nil {
		return nil, err
	}
	return newImage(nil, s.Dict, decoded, nil, nil, nil, o)
}

func getBool(d pdfobj.Dictionary, full, abbrev pdfobj.Name) bool {
	if v, ok := d.GetBool(full); ok {
		return v
	}
	v, _ := d.GetBool(abbrev)
	return v
}

func getInt(d pdfobj.Dictionary, full, abbrev pdfobj.Name) (int, bool) {
	if v, ok := d.GetInt(full); ok {
		return int(v), true
	}
	if v, ok := d.GetInt(abbrev); ok {
		return int(v), true
	}
	return 0, false
}

func getFloatArray(d pdfobj.Dictionary, full, abbrev pdfobj.Name) ([]float64, bool) {
	if v, ok := d.GetFloatArray(full); ok {
		return v, true
	}
	return d.GetFloatArray(abbrev)
}

func newImage(res pdfobj.Resolver, dict pdfobj.Dictionary, stream imagestream.EncodedStream, smask, maskImage *Image, colorKey []float64, o buildOpts) (*Image, error) {
	w, okW := getInt(dict, "Width", "W")
	h, okH := getInt(dict, "Height", "H")
	if !okW || !okH || w <= 0 || h <= 0 {
		return nil, formatErrorf("image dictionary missing or non-positive Width/Height")
	}

	isMask := getBool(dict, "ImageMask", "IM")
	interpolate := getBool(dict, "Interpolate", "I")

	bpc, hasBPC := getInt(dict, "BitsPerComponent", "BPC")
	switch {
	case hasBPC:
		// use as given
	case isMask:
		bpc = 1
	default:
		// BitsPerComponent is mandatory on a non-mask image; a native
		// decoder hint (checked below) may still fill it in for
		// JPX/JBIG2 streams that don't carry one in the dictionary.
		bpc = 0
	}

	var cs colorspace.Space
	nc := 1
	if !isMask {
		csObj, has := dict.Get("ColorSpace")
		if !has {
			csObj, _ = dict.Get("CS")
		}
		var err error
		cs, err = resolveColorSpace(res, csObj)
		if err != nil {
			return nil, err
		}
		nc = cs.NumComps()
	}

	if hintBpc, hintNc, ok := stream.ComponentHint(); ok {
		bpc = hintBpc
		if !isMask && hintNc != nc {
			nc = hintNc
			if cs == nil || cs.NumComps() != nc {
				cs = fallbackColorSpace(nc)
			}
		}
	}

	if bpc != 1 && bpc != 2 && bpc != 4 && bpc != 8 && bpc != 16 {
		return nil, formatErrorf("unsupported BitsPerComponent %d", bpc)
	}

	decode, hasDecode := getFloatArray(dict, "Decode", "D")
	needsDecode := false
	var addend, coeff []float64
	if isMask {
		if hasDecode && len(decode) == 2 && decode[0] == 1 && decode[1] == 0 {
			needsDecode = true
			addend, coeff = []float64{1}, []float64{-1}
		}
	} else if hasDecode && len(decode) == 2*nc && !cs.IsDefaultDecode(decode) {
		needsDecode = true
		addend, coeff = decodeAddendCoeff(decode, nc, bpc)
	}

	matte, _ := getFloatArray(dict, "Matte", "Matte")
	if matte == nil && smask != nil {
		matte = smask.matte
	}

	if colorKey != nil && len(colorKey) != 2*nc {
		o.logger.Warnf("color-key Mask array length %d does not match 2*%d components, dropped", len(colorKey), nc)
		colorKey = nil
	}

	drawW, drawH := w, h
	if dw := stream.DrawWidth(); dw > 0 {
		drawW = dw
	}
	if dh := stream.DrawHeight(); dh > 0 {
		drawH = dh
	}
	if smask != nil {
		if smask.width > drawW {
			drawW = smask.width
		}
		if smask.height > drawH {
			drawH = smask.height
		}
	}
	if maskImage != nil {
		if maskImage.width > drawW {
			drawW = maskImage.width
		}
		if maskImage.height > drawH {
			drawH = maskImage.height
		}
	}

	return &Image{
		stream:      stream,
		width:       w,
		height:      h,
		bpc:         bpc,
		nc:          nc,
		colorSpace:  cs,
		isMask:      isMask,
		interpolate: interpolate,
		decode:      decode,
		needsDecode: needsDecode,
		addend:      addend,
		coeff:       coeff,
		smask:       smask,
		maskImage:   maskImage,
		colorKey:    colorKey,
		matte:       matte,
		drawWidth:   drawW,
		drawHeight:  drawH,
		downscale:   o.downscale,
		logger:      o.logger,
	}, nil
}

func resolveObj(res pdfobj.Resolver, obj pdfobj.Object) (pdfobj.Object, error) {
	for {
		ref, ok := obj.(pdfobj.Reference)
		if !ok {
			return obj, nil
		}
		if res == nil {
			return nil, fmt.Errorf("pdfobj: indirect reference with no resolver")
		}
		next, err := res.Resolve(ref)
		if err != nil {
			return nil, err
		}
		obj = next
	}
}

func toFloat(obj pdfobj.Object) float64 {
	switch v := obj.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func toInt(obj pdfobj.Object) int {
	return int(toFloat(obj))
}

func fallbackColorSpace(nc int) colorspace.Space {
	switch nc {
	case 3:
		return colorspace.DeviceRGB{}
	case 4:
		return colorspace.DeviceCMYK{}
	default:
		return colorspace.DeviceGray{}
	}
}

func resolveColorSpace(res pdfobj.Resolver, csObj pdfobj.Object) (colorspace.Space, error) {
	if csObj == nil {
		return colorspace.DeviceGray{}, nil
	}
	resolved, err := resolveObj(res, csObj)
	if err != nil {
		return nil, err
	}
	switch v := resolved.(type) {
	case pdfobj.Name:
		return colorSpaceByName(v)
	case pdfobj.Array:
		if len(v) == 0 {
			return nil, formatErrorf("empty ColorSpace array")
		}
		nameObj, err := resolveObj(res, v[0])
		if err != nil {
			return nil, err
		}
		name, _ := nameObj.(pdfobj.Name)
		switch name {
		case "Indexed", "I":
			return resolveIndexed(res, v)
		default:
			return nil, fmt.Errorf("%w: color space array %q", ErrUnsupported, name)
		}
	default:
		return nil, formatErrorf("unrecognized ColorSpace entry of type %T", resolved)
	}
}

func colorSpaceByName(name pdfobj.Name) (colorspace.Space, error) {
	switch name {
	case "DeviceGray", "CalGray", "G":
		return colorspace.DeviceGray{}, nil
	case "DeviceRGB", "CalRGB", "RGB":
		return colorspace.DeviceRGB{}, nil
	case "DeviceCMYK", "CMYK":
		return colorspace.DeviceCMYK{}, nil
	default:
		return nil, fmt.Errorf("%w: color space %q", ErrUnsupported, name)
	}
}

func resolveIndexed(res pdfobj.Resolver, arr pdfobj.Array) (colorspace.Space, error) {
	if len(arr) != 4 {
		return nil, formatErrorf("Indexed color space array must have 4 entries, got %d", len(arr))
	}
	baseObj, err := resolveObj(res, arr[1])
	if err != nil {
		return nil, err
	}
	base, err := resolveColorSpace(res, baseObj)
	if err != nil {
		return nil, err
	}
	hivalObj, err := resolveObj(res, arr[2])
	if err != nil {
		return nil, err
	}
	hival := toInt(hivalObj)
	if hival < 0 || hival > 255 {
		return nil, formatErrorf("Indexed hival %d out of range", hival)
	}
	tableObj, err := resolveObj(res, arr[3])
	if err != nil {
		return nil, err
	}
	raw, err := tableBytes(tableObj)
	if err != nil {
		return nil, err
	}
	nc := base.NumComps()
	entries := hival + 1
	table := make([]float64, entries*nc)
	for i := range table {
		if i < len(raw) {
			table[i] = float64(raw[i]) / 255.0
		}
	}
	return colorspace.Indexed{Base: base, HiVal: hival, Table: table}, nil
}

func tableBytes(obj pdfobj.Object) ([]byte, error) {
	switch v := obj.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case *pdfobj.Stream:
		es, ok := v.Reader.(imagestream.EncodedStream)
		if !ok {
			return nil, formatErrorf("Indexed lookup stream reader does not implement imagestream.EncodedStream")
		}
		if err := es.Reset(); err != nil {
			return nil, err
		}
		return es.GetBytes(-1)
	default:
		return nil, formatErrorf("unrecognized Indexed lookup table of type %T", obj)
	}
}

// Width, Height, BitsPerComponent, NumComps and IsImageMask expose the
// parsed shape of the image for callers that need it ahead of decoding
// (e.g. to size a destination buffer).
func (img *Image) Width() int             { return img.width }
func (img *Image) Height() int            { return img.height }
func (img *Image) BitsPerComponent() int  { return img.bpc }
func (img *Image) NumComps() int          { return img.nc }
func (img *Image) IsImageMask() bool      { return img.isMask }
func (img *Image) HasMask() bool          { return img.smask != nil || img.maskImage != nil || img.colorKey != nil }
