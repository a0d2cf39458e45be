package pdfobj

import "testing"

type stubResolver struct {
	objects map[Reference]Object
}

func (r stubResolver) Resolve(obj Object) (Object, error) {
	ref, ok := obj.(Reference)
	if !ok {
		return obj, nil
	}
	v, ok := r.objects[ref]
	if !ok {
		return nil, errNotFound
	}
	return v, nil
}

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "not found" }

func TestDictionary_GetInt_WidensTypes(t *testing.T) {
	d := Dictionary{"A": int64(5), "B": float64(7), "C": int(9)}
	for _, name := range []Name{"A", "B", "C"} {
		v, ok := d.GetInt(name)
		if !ok {
			t.Errorf("%s: expected ok", name)
		}
		if v < 5 {
			t.Errorf("%s: got %d", name, v)
		}
	}
	if _, ok := d.GetInt("missing"); ok {
		t.Error("missing key must report ok=false")
	}
}

func TestDictionary_GetBoolAndName(t *testing.T) {
	d := Dictionary{"ImageMask": true, "ColorSpace": Name("DeviceGray")}
	b, ok := d.GetBool("ImageMask")
	if !ok || !b {
		t.Error("GetBool failed")
	}
	n, ok := d.GetName("ColorSpace")
	if !ok || n != "DeviceGray" {
		t.Error("GetName failed")
	}
}

func TestDictionary_GetFloatArray(t *testing.T) {
	d := Dictionary{"Decode": Array{int64(0), float64(1), int64(0), float64(1)}}
	arr, ok := d.GetFloatArray("Decode")
	if !ok {
		t.Fatal("expected ok")
	}
	want := []float64{0, 1, 0, 1}
	for i := range want {
		if arr[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, arr[i], want[i])
		}
	}
}

func TestDictionary_GetFloatArray_RejectsNonNumeric(t *testing.T) {
	d := Dictionary{"X": Array{Name("oops")}}
	if _, ok := d.GetFloatArray("X"); ok {
		t.Error("non-numeric array element must fail GetFloatArray")
	}
}

func TestResolveDictionary_FollowsReferences(t *testing.T) {
	target := Dictionary{"Width": int64(10)}
	res := stubResolver{objects: map[Reference]Object{{Num: 1}: target}}
	got, err := ResolveDictionary(res, Reference{Num: 1})
	if err != nil {
		t.Fatalf("ResolveDictionary: %v", err)
	}
	if w, _ := got.GetInt("Width"); w != 10 {
		t.Errorf("got Width=%d, want 10", w)
	}
}

func TestResolveDictionary_StreamCarriesDict(t *testing.T) {
	s := &Stream{Dict: Dictionary{"Width": int64(5)}}
	got, err := ResolveDictionary(nil, s)
	if err != nil {
		t.Fatalf("ResolveDictionary: %v", err)
	}
	if w, _ := got.GetInt("Width"); w != 5 {
		t.Errorf("got Width=%d, want 5", w)
	}
}

func TestResolveDictionary_RejectsWrongType(t *testing.T) {
	if _, err := ResolveDictionary(nil, 42); err == nil {
		t.Error("expected error resolving a non-dictionary object")
	}
}

func TestResolveStream_FollowsReference(t *testing.T) {
	s := &Stream{Dict: Dictionary{}}
	res := stubResolver{objects: map[Reference]Object{{Num: 2}: s}}
	got, err := ResolveStream(res, Reference{Num: 2})
	if err != nil {
		t.Fatalf("ResolveStream: %v", err)
	}
	if got != s {
		t.Error("expected the same *Stream instance back")
	}
}

func TestResolveDictionary_UnresolvableReferenceErrors(t *testing.T) {
	res := stubResolver{objects: map[Reference]Object{}}
	if _, err := ResolveDictionary(res, Reference{Num: 99}); err == nil {
		t.Error("expected error for unresolvable reference")
	}
}

func TestResolveDictionary_NoResolverWithReferenceErrors(t *testing.T) {
	if _, err := ResolveDictionary(nil, Reference{Num: 1}); err == nil {
		t.Error("expected error resolving a reference with no resolver")
	}
}
