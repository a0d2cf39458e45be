package colorspace

// Indexed wraps a base color space and a lookup table: each incoming sample
// is a single index into Table, which holds Base.NumComps() normalized
// ([0,1]) values per table entry. It is always single-component regardless
// of the base space's component count, and it never has a meaningful
// default decode — PDF gives Indexed spaces a decode array of
// [0 hival] rather than [0 1], so IsDefaultDecode always answers false
// unless the caller explicitly passes that array.
type Indexed struct {
	Base  Space
	HiVal int
	// Table holds (HiVal+1)*Base.NumComps() normalized component values.
	Table []float64
}

func (i Indexed) Name() string  { return "Indexed" }
func (i Indexed) NumComps() int { return 1 }

func (i Indexed) IsDefaultDecode(decode []float64) bool {
	return len(decode) == 2 && decode[0] == 0 && decode[1] == float64(i.HiVal)
}

func (i Indexed) lookup(index int) []float64 {
	nc := i.Base.NumComps()
	if index < 0 {
		index = 0
	}
	if index > i.HiVal {
		index = i.HiVal
	}
	base := index * nc
	if base+nc > len(i.Table) {
		return make([]float64, nc)
	}
	return i.Table[base : base+nc]
}

func (i Indexed) GetRgb(value []float64, offset int) (r, g, b byte) {
	index := int(value[offset]*float64(i.HiVal) + 0.5)
	entry := i.lookup(index)
	return i.Base.GetRgb(entry, 0)
}

func (i Indexed) FillRgb(dst []byte, srcW, srcH, dstW, dstH, actualH int, comps []uint32, bpc, alpha01 int) {
	maxVal := float64((uint32(1) << uint(bpc)) - 1)
	fillRgbGeneric(dst, srcW, srcH, dstW, dstH, actualH, comps, bpc, alpha01, 1, func(n []float64) (byte, byte, byte) {
		// n[0] is sample/maxVal; scale back to the raw sample, which is
		// the table index.
		index := int(n[0]*maxVal + 0.5)
		entry := i.lookup(index)
		return i.Base.GetRgb(entry, 0)
	})
}
