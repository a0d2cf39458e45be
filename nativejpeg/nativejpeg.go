// Package nativejpeg adapts the baseline JPEG decoder to the imagestream
// NativeDecoder contract, serving the DCTDecode filter.
package nativejpeg

import (
	"fmt"

	"github.com/cocosip/go-pdf-image/imagestream"
	"github.com/cocosip/go-pdf-image/jpeg/baseline"
)

// FilterName is the PDF filter this decoder answers for.
const FilterName = "DCTDecode"

// Decoder is a NativeDecoder backed by the baseline (sequential DCT) JPEG
// decoder. It always produces 8-bit-per-component samples, 1 component for
// grayscale scans and 3 (already converted from YCbCr to RGB) for color
// scans.
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
		return nil, fmt.Errorf("nativejpeg: reading encoded bytes: %w", err)
	}
	pixels, _, _, components, err := baseline.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("nativejpeg: decoding DCTDecode stream: %w", err)
	}
	out := imagestream.NewMemoryStream(pixels, "", imagestream.Owned)
	out.SetComponentHint(8, components)
	return out, nil
}
