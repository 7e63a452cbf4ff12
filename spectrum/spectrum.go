// Package spectrum provides the directional wave spectrum record along with
// the basis conversion and significant wave height helpers that operate on it.
package spectrum

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultXAxisDir is the compass bearing of the x axis in the canonical basis.
const DefaultXAxisDir = 90.0

var (
	// ErrShapeMismatch is returned when the density grid does not have one row
	// per frequency and one column per direction.
	ErrShapeMismatch = errors.New("density shape does not match axes")
	// ErrInvalidAxis is returned for empty or badly ordered axes.
	ErrInvalidAxis = errors.New("invalid spectrum axis")
	// ErrNonFinite is returned when an axis or the density holds NaN or Inf.
	ErrNonFinite = errors.New("non-finite value")
	// ErrNoDensity is returned when a density grid is required but missing.
	ErrNoDensity = errors.New("spectrum has no density")
)

// Spectrum is a directional-frequency distribution of wave energy density.
type Spectrum struct {
	Freqs []float64  // frequency bins, strictly increasing
	Dirs  []float64  // directional bins
	S     *mat.Dense // density, len(Freqs) rows by len(Dirs) columns

	FUnit    FreqUnit // unit of Freqs
	DUnit    DirUnit  // unit and convention of Dirs
	XAxisDir float64  // compass bearing of the x axis in degrees
}

// New returns a spectrum template on the given axes with no density, in Hz
// and radians with the x axis pointing east.
// The axes are copied.
func New(freqs, dirs []float64) *Spectrum {
	return &Spectrum{
		Freqs:    append([]float64(nil), freqs...),
		Dirs:     append([]float64(nil), dirs...),
		FUnit:    Hz,
		DUnit:    Radians,
		XAxisDir: DefaultXAxisDir,
	}
}

// NewWithDensity returns a spectrum on the given axes holding a copy of rows.
func NewWithDensity(freqs, dirs []float64, rows [][]float64) (*Spectrum, error) {
	sm := New(freqs, dirs)
	if err := sm.ValidateAxes(); err != nil {
		return nil, err
	}

	if len(rows) != len(freqs) {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"got %d rows for %d frequencies", len(rows), len(freqs))
	}

	sm.S = mat.NewDense(len(freqs), len(dirs), nil)
	for i, row := range rows {
		if len(row) != len(dirs) {
			return nil, errors.Wrapf(ErrShapeMismatch,
				"row %d has %d values for %d directions", i, len(row), len(dirs))
		}
		sm.S.SetRow(i, row)
	}

	return sm, sm.Validate()
}

// Dims returns the number of frequency and direction bins.
func (sm *Spectrum) Dims() (int, int) {
	return len(sm.Freqs), len(sm.Dirs)
}

// ValidateAxes checks the frequency and direction axes only. It is all a
// target template needs.
func (sm *Spectrum) ValidateAxes() error {
	if len(sm.Freqs) == 0 {
		return errors.Wrap(ErrInvalidAxis, "no frequencies")
	}

	if len(sm.Dirs) == 0 {
		return errors.Wrap(ErrInvalidAxis, "no directions")
	}

	if !allFinite(sm.Freqs) || !allFinite(sm.Dirs) || !isFinite(sm.XAxisDir) {
		return errors.Wrap(ErrNonFinite, "axes")
	}

	if sm.Freqs[0] <= 0 {
		return errors.Wrapf(ErrInvalidAxis, "frequency %v is not positive", sm.Freqs[0])
	}

	for i := 1; i < len(sm.Freqs); i++ {
		if sm.Freqs[i] <= sm.Freqs[i-1] {
			return errors.Wrapf(ErrInvalidAxis,
				"frequencies not strictly increasing at bin %d", i)
		}
	}

	if _, err := ParseFreqUnit(string(sm.FUnit)); err != nil {
		return err
	}

	if _, err := ParseDirUnit(string(sm.DUnit)); err != nil {
		return err
	}

	return nil
}

// Validate checks the axes and the density grid.
func (sm *Spectrum) Validate() error {
	if err := sm.ValidateAxes(); err != nil {
		return err
	}

	if sm.S == nil {
		return ErrNoDensity
	}

	nf, nd := sm.Dims()
	if r, c := sm.S.Dims(); r != nf || c != nd {
		return errors.Wrapf(ErrShapeMismatch,
			"density is %dx%d, axes are %dx%d", r, c, nf, nd)
	}

	for i := 0; i < nf; i++ {
		if !allFinite(sm.S.RawRowView(i)) {
			return errors.Wrapf(ErrNonFinite, "density row %d", i)
		}
	}

	return nil
}

// Copy returns a deep copy of the spectrum.
func (sm *Spectrum) Copy() *Spectrum {
	out := &Spectrum{
		Freqs:    append([]float64(nil), sm.Freqs...),
		Dirs:     append([]float64(nil), sm.Dirs...),
		FUnit:    sm.FUnit,
		DUnit:    sm.DUnit,
		XAxisDir: sm.XAxisDir,
	}

	if sm.S != nil {
		out.S = mat.DenseCopyOf(sm.S)
	}

	return out
}

// Rows returns the density as a slice of freshly allocated rows.
func (sm *Spectrum) Rows() [][]float64 {
	if sm.S == nil {
		return nil
	}

	r, _ := sm.S.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, sm.S)
	}

	return rows
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(s []float64) bool {
	if floats.HasNaN(s) {
		return false
	}

	for _, v := range s {
		if math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
