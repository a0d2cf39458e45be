package image

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestCreateMask_RoundTrip(t *testing.T) {
	w, h := 10, 3
	rb := rowBytes(w, 1, 1)
	full := rb * h
	short := full - rb // one row short, to exercise tail padding

	r := rand.New(rand.NewSource(1))
	orig := make([]byte, short)
	r.Read(orig)

	m := CreateMask(orig, w, h, false, true)
	if len(m.Data) != full {
		t.Fatalf("len(Data) = %d, want %d", len(m.Data), full)
	}

	negated := make([]byte, full)
	for i, b := range m.Data {
		negated[i] = ^b
	}

	if !bytes.Equal(negated[:short], orig) {
		t.Errorf("negated prefix = %v, want original %v", negated[:short], orig)
	}
	for i := short; i < full; i++ {
		if negated[i] != 0x00 {
			t.Errorf("tail byte %d = %#x, want 0x00", i, negated[i])
		}
	}
}

func TestCreateMask_NoInverseDecodeLeavesTailZero(t *testing.T) {
	w, h := 8, 2
	full := rowBytes(w, 1, 1) * h
	orig := []byte{0xAA}
	m := CreateMask(orig, w, h, false, false)
	if len(m.Data) != full {
		t.Fatalf("len = %d, want %d", len(m.Data), full)
	}
	if m.Data[0] != 0xAA {
		t.Errorf("first byte = %#x, want 0xAA (no inversion)", m.Data[0])
	}
	for i := 1; i < full; i++ {
		if m.Data[i] != 0 {
			t.Errorf("byte %d = %#x, want 0x00", i, m.Data[i])
		}
	}
}
