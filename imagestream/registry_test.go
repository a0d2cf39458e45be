package imagestream

import "testing"

type stubDecoder struct {
	filter string
}

func (d stubDecoder) CanDecode(s EncodedStream) bool { return s.FilterName() == d.filter }
func (d stubDecoder) Decode(s EncodedStream) (EncodedStream, error) {
	return NewMemoryStream([]byte("decoded"), "", Owned), nil
}

func TestRegistry_RegisterGetList(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("DCTDecode"); ok {
		t.Fatal("empty registry must not have DCTDecode")
	}
	r.Register("DCTDecode", stubDecoder{filter: "DCTDecode"})
	d, ok := r.Get("DCTDecode")
	if !ok || d == nil {
		t.Fatal("Get after Register must succeed")
	}
	names := r.List()
	if len(names) != 1 || names[0] != "DCTDecode" {
		t.Errorf("List() = %v, want [DCTDecode]", names)
	}
}

func TestRegistry_CanDecodeAndDecodeDispatch(t *testing.T) {
	r := NewRegistry()
	r.Register("JPXDecode", stubDecoder{filter: "JPXDecode"})
	s := NewMemoryStream([]byte{1, 2, 3}, "JPXDecode", Borrowed)
	if !r.CanDecode(s) {
		t.Fatal("CanDecode must dispatch on FilterName")
	}
	out, err := r.Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, _ := out.GetBytes(-1)
	if string(got) != "decoded" {
		t.Errorf("got %q, want decoded", got)
	}
}

func TestRegistry_DecodeUnregisteredFilterErrors(t *testing.T) {
	r := NewRegistry()
	s := NewMemoryStream(nil, "CCITTFaxDecode", Borrowed)
	if _, err := r.Decode(s); err == nil {
		t.Fatal("expected error for unregistered filter")
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register("DCTDecode", stubDecoder{filter: "DCTDecode"})
	r.Register("DCTDecode", stubDecoder{filter: "DCTDecode-v2"})
	d, _ := r.Get("DCTDecode")
	s := NewMemoryStream(nil, "DCTDecode", Borrowed)
	if d.CanDecode(s) {
		t.Error("second Register should have replaced the first decoder")
	}
}
