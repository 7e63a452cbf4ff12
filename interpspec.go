// Package diwasp remaps directional wave spectra between frequency and
// direction bases while keeping the total wave energy.
package diwasp

import (
	"math"
	"strings"

	"github.com/noriah/diwasp/griddata"
	"github.com/noriah/diwasp/spectrum"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultTolerance is the relative gain in significant wave height above
// which the target grid is reported as too coarse.
const DefaultTolerance = 0.02

// ZeroEnergyPolicy decides what happens when the source spectrum carries no
// energy and the relative energy check is undefined.
type ZeroEnergyPolicy string

// Zero energy policies.
const (
	// ZeroEnergySkip remaps as usual and skips the energy check.
	ZeroEnergySkip ZeroEnergyPolicy = "skip"
	// ZeroEnergyFail refuses to remap with ErrZeroReferenceEnergy.
	ZeroEnergyFail ZeroEnergyPolicy = "fail"
)

// ErrUnknownPolicy is returned for an unsupported ZeroEnergyPolicy.
var ErrUnknownPolicy = errors.New("unknown zero energy policy")

// ParseZeroEnergyPolicy parses a policy name. The empty string means skip.
func ParseZeroEnergyPolicy(s string) (ZeroEnergyPolicy, error) {
	switch p := ZeroEnergyPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ZeroEnergySkip, nil
	case ZeroEnergySkip, ZeroEnergyFail:
		return p, nil
	default:
		return "", errors.Wrapf(ErrUnknownPolicy, "%q", s)
	}
}

// Config configures a Remapper. The zero value is usable.
type Config struct {
	Method       griddata.Method       // interpolation method, linear if empty
	Interpolator griddata.Interpolator // overrides Method when set
	Tolerance    *float64              // coarse grid threshold, DefaultTolerance if nil
	ZeroEnergy   ZeroEnergyPolicy      // skip if empty
	Logger       logrus.FieldLogger    // logrus standard logger if nil
}

// Float64 returns a pointer to v, for Config.Tolerance.
func Float64(v float64) *float64 {
	return &v
}

// Report describes what a remap did.
type Report struct {
	HsIn         float64 // significant wave height of the source
	HsOut        float64 // significant wave height of the result
	Interpolated bool    // false when the grids matched and interpolation was skipped
	Coarse       bool    // true when the coarse grid warning was raised
}

// Remapper moves spectra onto new frequency and direction grids.
// It holds no mutable state and may be shared.
type Remapper struct {
	method    griddata.Method
	interp    griddata.Interpolator
	tolerance float64
	policy    ZeroEnergyPolicy
	log       logrus.FieldLogger
}

// New returns a Remapper for cfg.
func New(cfg Config) (*Remapper, error) {
	r := &Remapper{
		interp:    cfg.Interpolator,
		tolerance: DefaultTolerance,
		log:       cfg.Logger,
	}

	var err error
	if r.method, err = griddata.ParseMethod(string(cfg.Method)); err != nil {
		return nil, err
	}

	if r.interp == nil {
		if r.interp, err = griddata.New(r.method); err != nil {
			return nil, err
		}
	}

	if r.policy, err = ParseZeroEnergyPolicy(string(cfg.ZeroEnergy)); err != nil {
		return nil, err
	}

	if tol := cfg.Tolerance; tol != nil {
		// zero warns on any gain
		if *tol < 0 || math.IsNaN(*tol) {
			return nil, errors.Errorf("invalid tolerance %v", *tol)
		}
		r.tolerance = *tol
	}

	if r.log == nil {
		r.log = logrus.StandardLogger()
	}

	return r, nil
}

// InterpSpec remaps in onto the axes of out with the given method and default
// settings. See Remapper.Remap.
func InterpSpec(in, out *spectrum.Spectrum, method griddata.Method) (*spectrum.Spectrum, error) {
	r, err := New(Config{Method: method})
	if err != nil {
		return nil, err
	}

	return r.Remap(in, out)
}

// Remap interpolates the density of in onto the frequency and direction axes
// of out. Only the axes and units of out are used. The result is a new
// spectrum; neither argument is modified.
func (r *Remapper) Remap(in, out *spectrum.Spectrum) (*spectrum.Spectrum, error) {
	sm, _, err := r.RemapReport(in, out)
	return sm, err
}

// RemapReport is Remap that also reports the energy before and after and
// which path was taken.
func (r *Remapper) RemapReport(in, out *spectrum.Spectrum) (*spectrum.Spectrum, Report, error) {
	var rep Report

	if err := in.Validate(); err != nil {
		return nil, rep, errors.Wrap(err, "source spectrum")
	}

	if err := out.ValidateAxes(); err != nil {
		return nil, rep, errors.Wrap(err, "target spectrum")
	}

	hsIn, err := spectrum.Hsig(in)
	if err != nil {
		return nil, rep, err
	}
	rep.HsIn = hsIn

	if hsIn == 0 && r.policy == ZeroEnergyFail {
		return nil, rep, ErrZeroReferenceEnergy
	}

	csIn, _, err := spectrum.ToBasis(in)
	if err != nil {
		return nil, rep, errors.Wrap(err, "source spectrum")
	}

	csOut, facOut, err := spectrum.ToBasis(out)
	if err != nil {
		return nil, rep, errors.Wrap(err, "target spectrum")
	}

	x1, y1 := cartesian(csIn)
	x2, y2 := cartesian(csOut)

	nf, nd := csOut.Dims()
	sf, sd := csIn.Dims()
	var dens []float64

	if sf == nf && sd == nd && floats.Equal(x1, x2) && floats.Equal(y1, y2) {
		r.log.Info("no interpolation required, skipping")
		dens = flatten(csIn.S)
	} else {
		rep.Interpolated = true

		dens, err = r.interp.Interpolate(x1, y1, flatten(csIn.S), x2, y2)
		if err != nil {
			return nil, rep, errors.Wrapf(err, "%s interpolation", r.method)
		}

		if len(dens) != nf*nd {
			return nil, rep, errors.Wrapf(ErrShapeMismatch,
				"interpolator returned %d values for %d bins", len(dens), nf*nd)
		}

		for i, v := range dens {
			if math.IsNaN(v) {
				dens[i] = 0
			}
		}
	}

	floats.Scale(1/facOut, dens)

	res := out.Copy()
	res.S = mat.NewDense(nf, nd, dens)

	hsOut, err := spectrum.Hsig(res)
	if err != nil {
		return nil, rep, err
	}
	rep.HsOut = hsOut

	log := r.log.WithFields(logrus.Fields{
		"hs_in":  hsIn,
		"hs_out": hsOut,
		"method": r.method,
	})

	if hsIn == 0 {
		log.Debug("source spectrum has zero energy, skipping grid check")
		return res, rep, nil
	}

	if gain := (hsOut - hsIn) / hsIn; gain > r.tolerance {
		rep.Coarse = true
		log.WithField("gain", gain).Warn(
			"target grid may be too coarse; try increasing the resolution of the frequency or direction axes")
	}

	return res, rep, nil
}

// cartesian returns the wavenumber-plane coordinates f*sin(theta) and
// f*cos(theta) of every bin of sm, row major.
func cartesian(sm *spectrum.Spectrum) ([]float64, []float64) {
	nf, nd := sm.Dims()
	xs := make([]float64, 0, nf*nd)
	ys := make([]float64, 0, nf*nd)

	for _, f := range sm.Freqs {
		for _, d := range sm.Dirs {
			s, c := math.Sincos(d)
			xs = append(xs, f*s)
			ys = append(ys, f*c)
		}
	}

	return xs, ys
}

// flatten copies m into a row major slice.
func flatten(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, m.RawRowView(i)...)
	}
	return out
}
