package imagestream

import "testing"

func TestMemoryStream_ResetAndGetBytes(t *testing.T) {
	s := NewMemoryStream([]byte{1, 2, 3, 4}, "DCTDecode", Borrowed)
	got, err := s.GetBytes(2)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2]", got)
	}
	rest, err := s.GetBytes(-1)
	if err != nil {
		t.Fatalf("GetBytes(-1): %v", err)
	}
	if len(rest) != 2 || rest[0] != 3 || rest[1] != 4 {
		t.Fatalf("got %v, want [3 4]", rest)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	all, _ := s.GetBytes(-1)
	if len(all) != 4 {
		t.Fatalf("after reset, got %d bytes, want 4", len(all))
	}
}

func TestMemoryStream_FilterNameAndOwnership(t *testing.T) {
	s := NewMemoryStream(nil, "JPXDecode", Owned)
	if s.FilterName() != "JPXDecode" {
		t.Errorf("FilterName = %q, want JPXDecode", s.FilterName())
	}
	if s.Ownership() != Owned {
		t.Errorf("Ownership = %v, want Owned", s.Ownership())
	}
}

func TestMemoryStream_ComponentHint(t *testing.T) {
	s := NewMemoryStream(nil, "", Owned)
	if _, _, ok := s.ComponentHint(); ok {
		t.Fatal("expected no hint before SetComponentHint")
	}
	s.SetComponentHint(8, 3)
	bpc, nc, ok := s.ComponentHint()
	if !ok || bpc != 8 || nc != 3 {
		t.Errorf("got (%d,%d,%v), want (8,3,true)", bpc, nc, ok)
	}
}

func TestMemoryStream_DrawDimensionsAndForceRGB(t *testing.T) {
	s := NewMemoryStream(nil, "", Owned)
	s.SetDrawDimensions(100, 200)
	if s.DrawWidth() != 100 || s.DrawHeight() != 200 {
		t.Errorf("got (%d,%d), want (100,200)", s.DrawWidth(), s.DrawHeight())
	}
	if s.ForceRGB() {
		t.Error("ForceRGB must default false")
	}
	s.SetForceRGB(true)
	if !s.ForceRGB() {
		t.Error("SetForceRGB(true) did not stick")
	}
}

func TestMemoryStream_DetachBytes_Owned(t *testing.T) {
	data := []byte{9, 8, 7}
	s := NewMemoryStream(data, "", Owned)
	got := s.DetachBytes()
	if &got[0] != &data[0] {
		t.Error("Owned DetachBytes must return the same backing array, not a copy")
	}
}

func TestMemoryStream_DetachBytes_BorrowedCopies(t *testing.T) {
	data := []byte{9, 8, 7}
	s := NewMemoryStream(data, "", Borrowed)
	got := s.DetachBytes()
	if len(got) != len(data) {
		t.Fatalf("len = %d, want %d", len(got), len(data))
	}
	got[0] = 0
	if data[0] == 0 {
		t.Error("Borrowed DetachBytes must copy, mutation leaked into original")
	}
}
