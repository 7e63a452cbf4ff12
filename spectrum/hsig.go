package spectrum

import (
	"math"
)

// Hsig returns the significant wave height of sm, 4*sqrt(m0), where m0 is the
// density integrated over frequency and direction in the canonical basis.
func Hsig(sm *Spectrum) (float64, error) {
	if err := sm.Validate(); err != nil {
		return 0, err
	}

	cs, _, err := ToBasis(sm)
	if err != nil {
		return 0, err
	}

	return 4 * math.Sqrt(Moment0(cs)), nil
}

// Moment0 integrates the density of sm over its own axes using the bin widths
// from BinWidths. Negative totals are clamped to zero.
func Moment0(sm *Spectrum) float64 {
	df := BinWidths(sm.Freqs)
	dd := BinWidths(sm.Dirs)

	var m0 float64
	for i := range df {
		row := sm.S.RawRowView(i)
		for j := range dd {
			m0 += row[j] * df[i] * dd[j]
		}
	}

	if m0 < 0 {
		return 0
	}

	return m0
}

// BinWidths returns the width of each bin on the axis: central differences
// inside, one sided differences at the ends. A single bin has unit width.
func BinWidths(axis []float64) []float64 {
	n := len(axis)
	w := make([]float64, n)

	switch n {
	case 0:
		return w
	case 1:
		w[0] = 1
		return w
	}

	w[0] = math.Abs(axis[1] - axis[0])
	w[n-1] = math.Abs(axis[n-1] - axis[n-2])
	for i := 1; i < n-1; i++ {
		w[i] = math.Abs(axis[i+1]-axis[i-1]) / 2
	}

	return w
}
