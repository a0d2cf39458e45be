package image

import (
	"errors"
	"fmt"
)

// FormatError reports that an image's own parsed metadata (width, height,
// bits-per-component, color space, decode array...) is internally
// inconsistent or missing a required entry. It is recoverable at the
// document level — the page can skip this one image — but fatal for this
// particular decode.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return "image: " + e.Msg }

func formatErrorf(format string, args ...interface{}) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// ErrUnsupported is wrapped, with added context, whenever a decode hits a
// case this engine deliberately doesn't handle — e.g. a native decoder
// reporting a component count the rest of the pipeline has no color space
// for.
var ErrUnsupported = errors.New("image: unsupported")
