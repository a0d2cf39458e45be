// Package nativejpx adapts the JPEG 2000 decode chain to the imagestream
// NativeDecoder contract, serving the JPXDecode filter.
package nativejpx

import (
	"errors"
	"fmt"

	"github.com/cocosip/go-pdf-image/imagestream"
	"github.com/cocosip/go-pdf-image/jpeg2000"
)

// FilterName is the PDF filter this decoder answers for.
const FilterName = "JPXDecode"

// ErrNoComponents is returned when the codestream reports zero components,
// which the image factory has no sensible component count to fall back to.
var ErrNoComponents = errors.New("nativejpx: codestream reports no components")

// Decoder is a NativeDecoder backed by the JPEG 2000 codestream decoder. The
// codestream itself carries the true bit depth and component count, which
// is why this is one of the two filters the image factory is willing to
// trust over the dictionary's own BitsPerComponent/ColorSpace entries.
type Decoder struct{}

// New returns a ready-to-register Decoder.
func New() *Decoder { return &Decoder{} }

func (d *Decoder) CanDecode(stream imagestream.EncodedStream) bool {
	return stream.FilterName() == FilterName
}

func (d *Decoder) Decode(stream imagestream.EncodedStream) (imagestream.EncodedStream, error) {
	if err := stream.Reset(); err != nil {
		return nil, err
	}
	raw, err := stream.GetBytes(-1)
	if err != nil {
		return nil, fmt.Errorf("nativejpx: reading encoded bytes: %w", err)
	}
	dec := jpeg2000.NewDecoder()
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("nativejpx: decoding JPXDecode stream: %w", err)
	}
	bpc := dec.BitDepth()
	nc := dec.Components()
	if nc <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoComponents, nc)
	}
	out := imagestream.NewMemoryStream(dec.GetPixelData(), "", imagestream.Owned)
	out.SetComponentHint(bpc, nc)
	return out, nil
}
