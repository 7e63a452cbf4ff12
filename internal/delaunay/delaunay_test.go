package delaunay

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func area(pts []Point, t Triangle) float64 {
	return cross(pts[t[0]], pts[t[1]], pts[t[2]]) / 2
}

func TestTriangulate_Square(t *testing.T) {
	pts := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	tr, err := Triangulate(pts)
	require.NoError(t, err)
	require.Len(t, tr.Triangles, 2)

	total := 0.0
	for _, tt := range tr.Triangles {
		a := area(pts, tt)
		assert.Greater(t, a, 0.0, "triangles are anticlockwise")
		total += a
	}
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestTriangulate_Grid(t *testing.T) {
	var pts []Point
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			pts = append(pts, Point{float64(i), float64(j)})
		}
	}

	tr, err := Triangulate(pts)
	require.NoError(t, err)
	assert.Len(t, tr.Triangles, 18)

	total := 0.0
	for _, tt := range tr.Triangles {
		total += area(pts, tt)
	}
	assert.InDelta(t, 9.0, total, 1e-9)
}

func TestTriangulate_EmptyCircumcircles(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	pts := make([]Point, 200)
	for i := range pts {
		pts[i] = Point{rnd.Float64(), rnd.Float64()}
	}

	tr, err := Triangulate(pts)
	require.NoError(t, err)

	for _, tt := range tr.Triangles {
		c := makeTri(pts, tt[0], tt[1], tt[2])
		for i, p := range pts {
			if i == tt[0] || i == tt[1] || i == tt[2] {
				continue
			}
			dx, dy := p.X-c.cx, p.Y-c.cy
			assert.GreaterOrEqual(t, dx*dx+dy*dy, c.r2*(1-1e-9),
				"point %d inside circumcircle of %v", i, tt)
		}
	}
}

func TestTriangulate_Polar(t *testing.T) {
	var pts []Point
	for _, f := range []float64{0.1, 0.2, 0.3} {
		for k := 0; k < 12; k++ {
			th := float64(k) * math.Pi / 6
			pts = append(pts, Point{f * math.Sin(th), f * math.Cos(th)})
		}
	}

	tr, err := Triangulate(pts)
	require.NoError(t, err)

	total := 0.0
	for _, tt := range tr.Triangles {
		total += area(pts, tt)
	}

	// area of the outer regular dodecagon
	want := 0.5 * 12 * 0.3 * 0.3 * math.Sin(math.Pi/6)
	assert.InDelta(t, want, total, 1e-9)
}

func TestTriangulate_PolarGrids(t *testing.T) {
	for _, tc := range []struct{ nf, nd int }{
		{30, 36},
		{64, 72},
	} {
		var pts []Point
		for i := 0; i < tc.nf; i++ {
			f := 0.04 + 0.3*float64(i)/float64(tc.nf-1)
			for k := 0; k < tc.nd; k++ {
				th := 2 * math.Pi * float64(k) / float64(tc.nd)
				pts = append(pts, Point{f * math.Sin(th), f * math.Cos(th)})
			}
		}

		tr, err := Triangulate(pts)
		require.NoError(t, err)

		total := 0.0
		for _, tt := range tr.Triangles {
			a := area(pts, tt)
			require.Greater(t, a, 0.0)
			total += a
		}

		// the hull is the outer ring
		r := 0.34
		want := 0.5 * float64(tc.nd) * r * r * math.Sin(2*math.Pi/float64(tc.nd))
		assert.InEpsilon(t, want, total, 1e-9, "%dx%d", tc.nf, tc.nd)
	}
}

func TestTriangulate_Degenerate(t *testing.T) {
	for _, pts := range [][]Point{
		nil,
		{{0, 0}, {1, 1}},
		{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		{{1, 1}, {1, 1}, {1, 1}},
	} {
		_, err := Triangulate(pts)
		assert.True(t, errors.Is(err, ErrDegenerate), "%v: %v", pts, err)
	}
}

func BenchmarkTriangulate(b *testing.B) {
	var pts []Point
	for i := 0; i < 40; i++ {
		f := 0.05 + 0.01*float64(i)
		for k := 0; k < 36; k++ {
			th := float64(k) * math.Pi / 18
			pts = append(pts, Point{f * math.Sin(th), f * math.Cos(th)})
		}
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Triangulate(pts); err != nil {
			b.Fatal(err)
		}
	}
}
