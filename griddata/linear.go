package griddata

import (
	"math"

	"github.com/noriah/diwasp/internal/delaunay"
	"github.com/pkg/errors"
)

// baryTol is how far, in barycentric terms, a query may sit outside a
// triangle and still take its value: the square root of the float64 machine
// epsilon.
var baryTol = math.Sqrt(epsilon)

const epsilon = 0x1p-52

// LinearInterpolator performs piecewise linear interpolation over the
// Delaunay triangulation of the samples.
type LinearInterpolator struct{}

// Interpolate implements Interpolator.
func (LinearInterpolator) Interpolate(xs, ys, values, qx, qy []float64) ([]float64, error) {
	if err := checkLengths(xs, ys, values, qx, qy); err != nil {
		return nil, err
	}

	pts, vals := dedupe(xs, ys, values)

	tr, err := delaunay.Triangulate(pts)
	if err != nil {
		if errors.Is(err, delaunay.ErrDegenerate) {
			return nil, errors.Wrap(ErrDegenerate, err.Error())
		}
		return nil, err
	}

	loc := newLocator(tr)

	out := make([]float64, len(qx))
	for i := range qx {
		out[i] = loc.eval(qx[i], qy[i], vals)
	}

	return out, nil
}

// locator buckets triangles on a uniform grid over the sample bounds so a
// query only tests the triangles overlapping its cell.
type locator struct {
	tr *delaunay.Triangulation

	minX, minY float64
	cellW      float64
	cellH      float64
	nx, ny     int
	cells      [][]int
}

func newLocator(tr *delaunay.Triangulation) *locator {
	l := &locator{tr: tr}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range tr.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	n := int(math.Ceil(math.Sqrt(float64(len(tr.Triangles)))))
	if n < 1 {
		n = 1
	}

	l.minX, l.minY = minX, minY
	l.nx, l.ny = n, n
	l.cellW = (maxX - minX) / float64(n)
	l.cellH = (maxY - minY) / float64(n)
	l.cells = make([][]int, n*n)

	for t, tt := range tr.Triangles {
		a, b, c := tr.Points[tt[0]], tr.Points[tt[1]], tr.Points[tt[2]]
		x0, y0 := l.cell(math.Min(a.X, math.Min(b.X, c.X)), math.Min(a.Y, math.Min(b.Y, c.Y)))
		x1, y1 := l.cell(math.Max(a.X, math.Max(b.X, c.X)), math.Max(a.Y, math.Max(b.Y, c.Y)))
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				l.cells[cy*l.nx+cx] = append(l.cells[cy*l.nx+cx], t)
			}
		}
	}

	return l
}

// cell returns the bucket holding (x, y), clamped to the grid.
func (l *locator) cell(x, y float64) (int, int) {
	return bucket(x, l.minX, l.cellW, l.nx), bucket(y, l.minY, l.cellH, l.ny)
}

func bucket(v, lo, w float64, n int) int {
	if w <= 0 {
		return 0
	}

	i := int(math.Floor((v - lo) / w))
	switch {
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	}

	return i
}

func (l *locator) eval(x, y float64, vals []float64) float64 {
	cx, cy := l.cell(x, y)

	// neighbouring buckets catch queries that sit on a bucket edge
	for _, dy := range [...]int{0, -1, 1} {
		for _, dx := range [...]int{0, -1, 1} {
			bx, by := cx+dx, cy+dy
			if bx < 0 || by < 0 || bx >= l.nx || by >= l.ny {
				continue
			}

			for _, t := range l.cells[by*l.nx+bx] {
				if v, ok := l.barycentric(t, x, y, vals); ok {
					return v
				}
			}
		}
	}

	return math.NaN()
}

func (l *locator) barycentric(t int, x, y float64, vals []float64) (float64, bool) {
	tt := l.tr.Triangles[t]
	a, b, c := l.tr.Points[tt[0]], l.tr.Points[tt[1]], l.tr.Points[tt[2]]

	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det == 0 {
		return 0, false
	}

	l1 := ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / det
	l2 := ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / det
	l3 := 1 - l1 - l2

	if l1 < -baryTol || l2 < -baryTol || l3 < -baryTol {
		return 0, false
	}

	return l1*vals[tt[0]] + l2*vals[tt[1]] + l3*vals[tt[2]], true
}
