package image

import "testing"

func TestGetComponents_BPC8Passthrough(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6}
	got := getComponents(buf, 3, 2, 1, 8)
	want := []uint32{1, 2, 3, 4, 5, 6}
	assertUint32Slice(t, got, want)
}

func TestGetComponents_BPC1RowAligned(t *testing.T) {
	// 2x2 stencil, scenario 1 of spec.md §8: row 0 = 0b10000000,
	// row 1 = 0b01000000. Each row starts a fresh byte regardless of
	// whether the previous row's bits filled it.
	buf := []byte{0b10000000, 0b01000000}
	got := getComponents(buf, 2, 2, 1, 1)
	want := []uint32{1, 0, 0, 1}
	assertUint32Slice(t, got, want)
}

func TestGetComponents_BPC4(t *testing.T) {
	// scenario 2: W=2,H=1,BPC=4, byte 0x0F -> samples [0, 15].
	got := getComponents([]byte{0x0F}, 2, 1, 1, 4)
	assertUint32Slice(t, got, []uint32{0, 15})
}

func TestGetComponents_BPC2RowBoundary(t *testing.T) {
	// W=3, NC=1, BPC=2: one row needs 6 bits -> 1 byte, padded with 2
	// unused bits that must not bleed into row 2.
	// row0 byte: 01 10 11 xx = 0b01101111 -> samples 1,2,3
	// row1 byte: 11 00 01 xx = 0b11000111 -> samples 3,0,1
	buf := []byte{0b01101111, 0b11000111}
	got := getComponents(buf, 3, 2, 1, 2)
	assertUint32Slice(t, got, []uint32{1, 2, 3, 3, 0, 1})
}

func TestGetComponents_BPC16(t *testing.T) {
	buf := []byte{0x01, 0x02, 0xFF, 0xFF}
	got := getComponents(buf, 2, 1, 1, 16)
	assertUint32Slice(t, got, []uint32{0x0102, 0xFFFF})
}

// A truncated encoded stream (spec.md §4.2: "no validation of input length
// beyond what the stream supplies") must not panic when a whole row's
// worth of bytes, or more, is simply missing.
func TestGetComponents_TruncatedBufferDoesNotPanic(t *testing.T) {
	for _, bpc := range []int{1, 2, 4, 8, 16} {
		bpc := bpc
		t.Run("", func(t *testing.T) {
			buf := []byte{1, 2, 3} // far short of 4 rows worth of data
			got := getComponents(buf, 2, 4, 1, bpc)
			if len(got) != 2*4*1 {
				t.Fatalf("bpc=%d: length = %d, want %d", bpc, len(got), 8)
			}
		})
	}
}

func TestRowBytes(t *testing.T) {
	cases := []struct {
		w, nc, bpc, want int
	}{
		{8, 1, 1, 1},
		{9, 1, 1, 2},
		{2, 3, 8, 6},
		{3, 1, 2, 1},
		{4, 1, 4, 2},
	}
	for _, c := range cases {
		if got := rowBytes(c.w, c.nc, c.bpc); got != c.want {
			t.Errorf("rowBytes(%d,%d,%d) = %d, want %d", c.w, c.nc, c.bpc, got, c.want)
		}
	}
}

func assertUint32Slice(t *testing.T, got, want []uint32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d (full got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}
