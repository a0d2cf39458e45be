package imagestream

import (
	"fmt"
	"sync"
)

// NativeDecoder is the "external collaborator" that turns a still
// filter-encoded EncodedStream into one holding raw, unpacked samples
// (optionally with a ComponentHint the dictionary itself didn't carry).
// nativejpeg and nativejpx are the two concrete implementations wired in
// for DCTDecode and JPXDecode.
type NativeDecoder interface {
	// CanDecode reports whether this decoder applies to stream, usually by
	// inspecting its FilterName.
	CanDecode(stream EncodedStream) bool

	// Decode consumes stream's encoded bytes and returns a new
	// EncodedStream holding decoded samples.
	Decode(stream EncodedStream) (EncodedStream, error)
}

// Registry dispatches to a NativeDecoder by PDF filter name. It mirrors the
// codec registry pattern: a name-keyed table guarded by a single mutex,
// safe for concurrent Register/Get from multiple goroutines.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]NativeDecoder
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]NativeDecoder)}
}

// Register associates filterName ("DCTDecode", "JPXDecode", ...) with a
// decoder. A later Register for the same name replaces the earlier one.
func (r *Registry) Register(filterName string, d NativeDecoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[filterName] = d
}

// Get returns the decoder registered for filterName, if any.
func (r *Registry) Get(filterName string) (NativeDecoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[filterName]
	return d, ok
}

// List returns the registered filter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decoders))
	for name := range r.decoders {
		names = append(names, name)
	}
	return names
}

// CanDecode implements NativeDecoder by dispatching on stream.FilterName().
func (r *Registry) CanDecode(stream EncodedStream) bool {
	_, ok := r.Get(stream.FilterName())
	return ok
}

// Decode implements NativeDecoder by dispatching on stream.FilterName().
func (r *Registry) Decode(stream EncodedStream) (EncodedStream, error) {
	d, ok := r.Get(stream.FilterName())
	if !ok {
		return nil, fmt.Errorf("imagestream: no native decoder registered for filter %q", stream.FilterName())
	}
	return d.Decode(stream)
}
