package image

import "log"

// Logger receives non-fatal anomaly reports: a malformed Mask entry that
// gets dropped, a color-key array with an odd length, and similar "keep
// going without this feature" situations. Fatal problems are always
// returned as errors instead.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// stdLogger backs the default Logger with the standard log package — no
// structured logging library is pulled in anywhere in this module's
// dependency stack, so there's nothing richer to delegate to.
type stdLogger struct{}

func (stdLogger) Warnf(format string, args ...interface{}) {
	log.Printf("image: "+format, args...)
}

// DefaultLogger is used whenever no Logger option is supplied.
var DefaultLogger Logger = stdLogger{}

// NopLogger discards every warning; useful in tests that want to assert on
// FormatError-grade failures without log noise.
type NopLogger struct{}

func (NopLogger) Warnf(string, ...interface{}) {}
