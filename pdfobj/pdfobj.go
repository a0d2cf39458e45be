// Package pdfobj provides the minimal PDF object model the image decoding
// engine needs: names, dictionaries, arrays and streams. It is deliberately
// thin — parsing a cross-reference table and resolving indirect references
// end to end is the document layer's job, not this package's.
package pdfobj

import "fmt"

// Name is a PDF name object, e.g. /DeviceGray.
type Name string

// Object is any value that can sit in a Dictionary or Array: a Name, bool,
// int64, float64, string, Array, Dictionary, *Stream or Reference.
type Object interface{}

// Reference is an indirect reference (obj gen R) that a Resolver turns into
// a concrete Object.
type Reference struct {
	Num int
	Gen int
}

// Array is a PDF array object.
type Array []Object

// Dictionary is a PDF dictionary. Values may be indirect References; callers
// that need the resolved value go through a Resolver first.
type Dictionary map[Name]Object

// Get returns the raw (possibly indirect) value for name.
func (d Dictionary) Get(name Name) (Object, bool) {
	v, ok := d[name]
	return v, ok
}

// GetInt returns an integer-valued entry, accepting both int64 and float64
// storage (parsers often keep PDF numbers as float64).
func (d Dictionary) GetInt(name Name) (int64, bool) {
	switch v := d[name].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// GetBool returns a boolean-valued entry.
func (d Dictionary) GetBool(name Name) (bool, bool) {
	v, ok := d[name].(bool)
	return v, ok
}

// GetName returns a name-valued entry.
func (d Dictionary) GetName(name Name) (Name, bool) {
	v, ok := d[name].(Name)
	return v, ok
}

// GetArray returns an array-valued entry.
func (d Dictionary) GetArray(name Name) (Array, bool) {
	v, ok := d[name].(Array)
	return v, ok
}

// GetFloatArray returns a numeric array-valued entry as []float64. Mixed
// int64/float64 elements are widened uniformly.
func (d Dictionary) GetFloatArray(name Name) ([]float64, bool) {
	arr, ok := d.GetArray(name)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(arr))
	for i, v := range arr {
		switch n := v.(type) {
		case float64:
			out[i] = n
		case int64:
			out[i] = float64(n)
		case int:
			out[i] = float64(n)
		default:
			return nil, false
		}
	}
	return out, true
}

// Stream pairs a dictionary with the raw encoded bytes behind it, as an
// EncodedStream. The Reader field is typed as an interface{} here to avoid
// an import cycle with imagestream; callers type-assert it to
// imagestream.EncodedStream.
type Stream struct {
	Dict   Dictionary
	Reader interface{}
}

// Resolver turns an indirect Reference into the Object it points at. It
// stands in for the document's cross-reference table.
type Resolver interface {
	Resolve(Object) (Object, error)
}

// ResolveDictionary follows obj through res until it lands on a Dictionary,
// or the Dictionary carried by a *Stream. Non-reference, non-stream objects
// that aren't already a Dictionary produce an error.
func ResolveDictionary(res Resolver, obj Object) (Dictionary, error) {
	resolved, err := resolve(res, obj)
	if err != nil {
		return nil, err
	}
	switch v := resolved.(type) {
	case Dictionary:
		return v, nil
	case *Stream:
		return v.Dict, nil
	default:
		return nil, fmt.Errorf("pdfobj: expected dictionary, got %T", resolved)
	}
}

// ResolveStream follows obj through res until it lands on a *Stream.
func ResolveStream(res Resolver, obj Object) (*Stream, error) {
	resolved, err := resolve(res, obj)
	if err != nil {
		return nil, err
	}
	s, ok := resolved.(*Stream)
	if !ok {
		return nil, fmt.Errorf("pdfobj: expected stream, got %T", resolved)
	}
	return s, nil
}

func resolve(res Resolver, obj Object) (Object, error) {
	for {
		ref, ok := obj.(Reference)
		if !ok {
			return obj, nil
		}
		if res == nil {
			return nil, fmt.Errorf("pdfobj: indirect reference %d %d R with no resolver", ref.Num, ref.Gen)
		}
		next, err := res.Resolve(ref)
		if err != nil {
			return nil, err
		}
		obj = next
	}
}
