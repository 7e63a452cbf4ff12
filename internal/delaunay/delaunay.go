// Package delaunay triangulates planar point sets with the Bowyer-Watson
// algorithm.
package delaunay

import (
	"math"

	"github.com/pkg/errors"
)

// ErrDegenerate is returned when the points do not span a plane.
var ErrDegenerate = errors.New("points do not span a plane")

// superScale sizes the enclosing triangle relative to the point extent.
const superScale = 100

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Triangle holds indices into the points passed to Triangulate, in
// anticlockwise order.
type Triangle [3]int

// Triangulation is the result of Triangulate.
type Triangulation struct {
	Points    []Point
	Triangles []Triangle
}

type tri struct {
	v      Triangle
	cx, cy float64 // circumcentre
	r2     float64 // squared circumradius
	dead   bool
}

type edge [2]int

func newEdge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// Triangulate builds a Delaunay triangulation of pts. Duplicate points must
// be removed by the caller; at least three non-collinear points are needed.
func Triangulate(pts []Point) (*Triangulation, error) {
	n := len(pts)
	if n < 3 {
		return nil, errors.Wrapf(ErrDegenerate, "%d points", n)
	}

	minX, minY, maxX, maxY := bounds(pts)
	dx, dy := maxX-minX, maxY-minY
	span := math.Max(dx, dy)
	if span == 0 || collinear(pts, span) {
		return nil, errors.Wrap(ErrDegenerate, "points are collinear")
	}

	// working set holds the input points followed by the super triangle
	work := make([]Point, n, n+3)
	copy(work, pts)

	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	work = append(work,
		Point{midX - superScale*span, midY - superScale*span},
		Point{midX + superScale*span, midY - superScale*span},
		Point{midX, midY + superScale*span},
	)

	tris := []tri{makeTri(work, n, n+1, n+2)}

	for i := 0; i < n; i++ {
		p := work[i]

		edges := make(map[edge]int)
		var boundary []edge

		for t := range tris {
			if tris[t].dead || !tris[t].inCircumcircle(p) {
				continue
			}

			tris[t].dead = true
			for k := 0; k < 3; k++ {
				e := edge{tris[t].v[k], tris[t].v[(k+1)%3]}
				key := newEdge(e[0], e[1])
				if edges[key] == 0 {
					boundary = append(boundary, e)
				}
				edges[key]++
			}
		}

		live := tris[:0]
		for _, t := range tris {
			if !t.dead {
				live = append(live, t)
			}
		}
		tris = live

		for _, e := range boundary {
			if edges[newEdge(e[0], e[1])] != 1 {
				continue
			}
			tris = append(tris, makeTri(work, e[0], e[1], i))
		}
	}

	out := &Triangulation{Points: pts}
	for _, t := range tris {
		if t.v[0] >= n || t.v[1] >= n || t.v[2] >= n {
			continue
		}
		out.Triangles = append(out.Triangles, t.v)
	}

	if len(out.Triangles) == 0 {
		return nil, errors.Wrap(ErrDegenerate, "no triangles")
	}

	return out, nil
}

func makeTri(pts []Point, a, b, c int) tri {
	pa, pb, pc := pts[a], pts[b], pts[c]

	if cross(pa, pb, pc) < 0 {
		b, c = c, b
		pb, pc = pc, pb
	}

	bx, by := pb.X-pa.X, pb.Y-pa.Y
	cx, cy := pc.X-pa.X, pc.Y-pa.Y
	d := 2 * (bx*cy - by*cx)

	t := tri{v: Triangle{a, b, c}}
	if d == 0 {
		// flat triangle: circumcircle at infinity, contains everything
		t.r2 = math.Inf(1)
		return t
	}

	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d

	t.cx = pa.X + ux
	t.cy = pa.Y + uy
	t.r2 = ux*ux + uy*uy

	return t
}

func (t *tri) inCircumcircle(p Point) bool {
	if math.IsInf(t.r2, 1) {
		return true
	}
	dx, dy := p.X-t.cx, p.Y-t.cy
	return dx*dx+dy*dy < t.r2*(1-1e-12)
}

func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func bounds(pts []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

// collinear reports whether every point lies on the line through the first
// point and the point farthest from it.
func collinear(pts []Point, span float64) bool {
	a := pts[0]
	far, best := a, 0.0
	for _, p := range pts[1:] {
		if d := math.Hypot(p.X-a.X, p.Y-a.Y); d > best {
			far, best = p, d
		}
	}

	eps := 1e-12 * span * span
	for _, p := range pts {
		if math.Abs(cross(a, far, p)) > eps {
			return false
		}
	}

	return true
}
