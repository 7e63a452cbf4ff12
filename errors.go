package diwasp

import (
	"github.com/noriah/diwasp/griddata"
	"github.com/noriah/diwasp/spectrum"
	"github.com/pkg/errors"
)

var (
	// ErrShapeMismatch is returned when a density grid disagrees with its
	// frequency and direction axes.
	ErrShapeMismatch = spectrum.ErrShapeMismatch
	// ErrDegenerateInterpolation is returned when the source grid cannot
	// support the interpolation method.
	ErrDegenerateInterpolation = griddata.ErrDegenerate
	// ErrZeroReferenceEnergy is returned under ZeroEnergyFail when the source
	// spectrum has a significant wave height of zero.
	ErrZeroReferenceEnergy = errors.New("source spectrum has zero energy")
)
