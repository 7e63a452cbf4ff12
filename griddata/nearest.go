package griddata

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// NearestInterpolator returns the value of the closest sample. It covers the
// whole plane, so it never yields NaN.
type NearestInterpolator struct{}

// Interpolate implements Interpolator.
func (NearestInterpolator) Interpolate(xs, ys, values, qx, qy []float64) ([]float64, error) {
	if err := checkLengths(xs, ys, values, qx, qy); err != nil {
		return nil, err
	}

	if len(xs) == 0 {
		return nil, errors.Wrap(ErrDegenerate, "no samples")
	}

	pts, vals := dedupe(xs, ys, values)

	s := make(sites, len(pts))
	for i, p := range pts {
		s[i] = site{x: p.X, y: p.Y, idx: i}
	}

	tree := kdtree.New(s, false)

	out := make([]float64, len(qx))
	for i := range qx {
		if math.IsNaN(qx[i]) || math.IsNaN(qy[i]) {
			out[i] = math.NaN()
			continue
		}

		nearest, _ := tree.Nearest(site{x: qx[i], y: qy[i], idx: -1})
		out[i] = vals[nearest.(site).idx]
	}

	return out, nil
}

// site is a sample location that remembers its index.
type site struct {
	x, y float64
	idx  int
}

// Compare implements kdtree.Comparable.
func (p site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(site)
	if d == 0 {
		return p.x - q.x
	}
	return p.y - q.y
}

// Dims implements kdtree.Comparable.
func (p site) Dims() int { return 2 }

// Distance implements kdtree.Comparable. It returns the squared distance.
func (p site) Distance(c kdtree.Comparable) float64 {
	q := c.(site)
	dx, dy := p.x-q.x, p.y-q.y
	return dx*dx + dy*dy
}

type sites []site

func (s sites) Index(i int) kdtree.Comparable         { return s[i] }
func (s sites) Len() int                              { return len(s) }
func (s sites) Slice(start, end int) kdtree.Interface { return s[start:end] }

func (s sites) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{sites: s, dim: d}, kdtree.MedianOfMedians(plane{sites: s, dim: d}))
}

// plane sorts sites along one dimension.
type plane struct {
	sites sites
	dim   kdtree.Dim
}

func (p plane) Len() int { return len(p.sites) }

func (p plane) Less(i, j int) bool {
	return p.sites[i].Compare(p.sites[j], p.dim) < 0
}

func (p plane) Swap(i, j int) { p.sites[i], p.sites[j] = p.sites[j], p.sites[i] }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{sites: p.sites[start:end], dim: p.dim}
}
