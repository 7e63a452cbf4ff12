// Package griddata interpolates scattered two dimensional samples at
// arbitrary query points.
//
// Available methods:
//
//   - [Linear]:  barycentric interpolation over a Delaunay triangulation of
//     the samples; queries outside the convex hull yield NaN
//   - [Nearest]: value of the closest sample
package griddata

import (
	"math"
	"strings"

	"github.com/noriah/diwasp/internal/delaunay"
	"github.com/pkg/errors"
)

var (
	// ErrDegenerate is returned when the samples cannot support the method,
	// for example fewer than three non-collinear points for Linear.
	ErrDegenerate = errors.New("degenerate interpolation input")
	// ErrUnknownMethod is returned for an unsupported Method.
	ErrUnknownMethod = errors.New("unknown interpolation method")
	// ErrLength is returned when coordinate and value slices differ in length.
	ErrLength = errors.New("mismatched slice lengths")
)

// Method selects an interpolation backend.
type Method string

// Interpolation methods.
const (
	Linear  Method = "linear"
	Nearest Method = "nearest"

	DefaultMethod = Linear
)

// Methods lists the supported methods.
var Methods = []Method{Linear, Nearest}

// ParseMethod parses a method name. The empty string means DefaultMethod.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return DefaultMethod, nil
	case Linear, Nearest:
		return m, nil
	default:
		return "", errors.Wrapf(ErrUnknownMethod, "%q", s)
	}
}

// Interpolator estimates values at query points (qx, qy) from samples
// (xs, ys, values). Positions it cannot cover are returned as NaN.
type Interpolator interface {
	Interpolate(xs, ys, values, qx, qy []float64) ([]float64, error)
}

// New returns the Interpolator for m.
func New(m Method) (Interpolator, error) {
	switch m {
	case Linear:
		return LinearInterpolator{}, nil
	case Nearest:
		return NearestInterpolator{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownMethod, "%q", m)
	}
}

// Griddata interpolates with the given method.
func Griddata(xs, ys, values, qx, qy []float64, m Method) ([]float64, error) {
	ip, err := New(m)
	if err != nil {
		return nil, err
	}

	return ip.Interpolate(xs, ys, values, qx, qy)
}

func checkLengths(xs, ys, values, qx, qy []float64) error {
	if len(xs) != len(ys) || len(xs) != len(values) {
		return errors.Wrapf(ErrLength, "samples: %d x, %d y, %d values",
			len(xs), len(ys), len(values))
	}

	if len(qx) != len(qy) {
		return errors.Wrapf(ErrLength, "queries: %d x, %d y", len(qx), len(qy))
	}

	return nil
}

// dedupe drops samples that repeat an earlier location to within a small
// fraction of the sample extent, keeping the first occurrence. Directional
// grids that close the circle (0 and 2*pi) produce such repeats.
func dedupe(xs, ys, values []float64) ([]delaunay.Point, []float64) {
	if len(xs) == 0 {
		return nil, nil
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	eps := 1e-12 * math.Max(maxX-minX, maxY-minY)
	if eps == 0 {
		eps = 1e-300
	}

	type key struct{ x, y int64 }
	seen := make(map[key]bool, len(xs))

	pts := make([]delaunay.Point, 0, len(xs))
	vals := make([]float64, 0, len(xs))

	for i := range xs {
		k := key{int64(math.Round(xs[i] / eps)), int64(math.Round(ys[i] / eps))}
		if seen[k] {
			continue
		}
		seen[k] = true

		pts = append(pts, delaunay.Point{X: xs[i], Y: ys[i]})
		vals = append(vals, values[i])
	}

	return pts, vals
}
