package spectrum

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ToBasis converts sm to the canonical basis: frequencies in Hz, directions in
// cartesian radians with the x axis pointing east. Cartesian directions are
// rotated by the x axis bearing; nautical ones are not. It returns the converted
// copy and the factor relating the two densities:
//
//	canonical = original * fac
//
// so the original density is recovered by dividing by fac. The density of the
// copy is nil when sm has none.
func ToBasis(sm *Spectrum) (*Spectrum, float64, error) {
	fu, err := ParseFreqUnit(string(sm.FUnit))
	if err != nil {
		return nil, 0, err
	}

	du, err := ParseDirUnit(string(sm.DUnit))
	if err != nil {
		return nil, 0, err
	}

	out := sm.Copy()
	fac := 1.0

	if fu == RadPerSec {
		floats.Scale(1/(2*math.Pi), out.Freqs)
		fac *= 2 * math.Pi
	}

	switch du {
	case Cartesian:
		floats.Scale(math.Pi/180, out.Dirs)
		fac *= 180 / math.Pi
	case Nautical:
		for i, d := range out.Dirs {
			out.Dirs[i] = math.Pi * (-90 - d) / 180
		}
		fac *= 180 / math.Pi
	}

	// nautical bearings are already absolute
	if du != Nautical && sm.XAxisDir != DefaultXAxisDir {
		floats.AddConst(math.Pi*(DefaultXAxisDir-sm.XAxisDir)/180, out.Dirs)
	}

	if out.S != nil {
		out.S.Scale(fac, out.S)
	}

	out.FUnit = Hz
	out.DUnit = Radians
	out.XAxisDir = DefaultXAxisDir

	return out, fac, nil
}
