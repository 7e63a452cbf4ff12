package spectrum

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewWithDensity(t *testing.T) {
	sm, err := NewWithDensity([]float64{0.1, 0.2}, []float64{0, 1, 2},
		[][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	r, c := sm.S.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 6.0, sm.S.At(1, 2))
	assert.Equal(t, Hz, sm.FUnit)
	assert.Equal(t, Radians, sm.DUnit)
	assert.Equal(t, DefaultXAxisDir, sm.XAxisDir)
}

func TestNewWithDensity_ShapeMismatch(t *testing.T) {
	_, err := NewWithDensity([]float64{0.1, 0.2}, []float64{0, 1},
		[][]float64{{1, 2}})
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = NewWithDensity([]float64{0.1}, []float64{0, 1},
		[][]float64{{1, 2, 3}})
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		sm   *Spectrum
		want error
	}{
		{
			name: "no freqs",
			sm:   New(nil, []float64{0}),
			want: ErrInvalidAxis,
		},
		{
			name: "no dirs",
			sm:   New([]float64{0.1}, nil),
			want: ErrInvalidAxis,
		},
		{
			name: "zero frequency",
			sm:   New([]float64{0, 0.1}, []float64{0}),
			want: ErrInvalidAxis,
		},
		{
			name: "decreasing frequency",
			sm:   New([]float64{0.2, 0.1}, []float64{0}),
			want: ErrInvalidAxis,
		},
		{
			name: "nan direction",
			sm:   New([]float64{0.1}, []float64{math.NaN()}),
			want: ErrNonFinite,
		},
		{
			name: "missing density",
			sm:   New([]float64{0.1}, []float64{0}),
			want: ErrNoDensity,
		},
		{
			name: "bad unit",
			sm: &Spectrum{
				Freqs: []float64{0.1},
				Dirs:  []float64{0},
				FUnit: "furlongs",
			},
			want: ErrUnknownUnit,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.sm.Validate()
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestValidate_DensityShape(t *testing.T) {
	sm := New([]float64{0.1, 0.2}, []float64{0, 1})
	sm.S = mat.NewDense(2, 3, nil)
	assert.True(t, errors.Is(sm.Validate(), ErrShapeMismatch))

	sm.S = mat.NewDense(2, 2, []float64{1, 2, math.Inf(1), 4})
	assert.True(t, errors.Is(sm.Validate(), ErrNonFinite))

	sm.S = mat.NewDense(2, 2, nil)
	assert.NoError(t, sm.Validate())
}

func TestCopy(t *testing.T) {
	sm, err := NewWithDensity([]float64{0.1}, []float64{0, 1}, [][]float64{{1, 2}})
	require.NoError(t, err)

	cp := sm.Copy()
	cp.Freqs[0] = 0.5
	cp.Dirs[1] = 3
	cp.S.Set(0, 0, 9)

	assert.Equal(t, 0.1, sm.Freqs[0])
	assert.Equal(t, 1.0, sm.Dirs[1])
	assert.Equal(t, 1.0, sm.S.At(0, 0))
}

func TestParseUnits(t *testing.T) {
	fu, err := ParseFreqUnit(" RAD/S ")
	require.NoError(t, err)
	assert.Equal(t, RadPerSec, fu)

	fu, err = ParseFreqUnit("")
	require.NoError(t, err)
	assert.Equal(t, Hz, fu)

	du, err := ParseDirUnit("Naut")
	require.NoError(t, err)
	assert.Equal(t, Nautical, du)

	_, err = ParseDirUnit("grad")
	assert.True(t, errors.Is(err, ErrUnknownUnit))
}

func TestDecode(t *testing.T) {
	in := `
freqs: [0.1, 0.2]
dirs: [0, 90, 180]
S:
  - [1, 2, 3]
  - [4, 5, 6]
funit: rad/s
dunit: cart
xaxisdir: 0
`
	sm, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []float64{0.1, 0.2}, sm.Freqs)
	assert.Equal(t, RadPerSec, sm.FUnit)
	assert.Equal(t, Cartesian, sm.DUnit)
	assert.Equal(t, 0.0, sm.XAxisDir)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, sm.Rows())
}

func TestDecode_Template(t *testing.T) {
	sm, err := Decode(strings.NewReader("freqs: [0.1]\ndirs: [0, 1]\n"))
	require.NoError(t, err)

	assert.Nil(t, sm.S)
	assert.Equal(t, DefaultXAxisDir, sm.XAxisDir)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("freqs: [0.1]\ndirs: [0, 1]\nS: [[1]]\n"))
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = Decode(strings.NewReader("freqs: [0.1]\ndirs: [0]\ndunit: grad\n"))
	assert.True(t, errors.Is(err, ErrUnknownUnit))

	_, err = Decode(strings.NewReader("freqs: [oops"))
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	sm, err := NewWithDensity([]float64{0.05, 0.1}, []float64{-1, 0, 1},
		[][]float64{{0, 0.5, 0}, {0.25, 1, 0.25}})
	require.NoError(t, err)
	sm.DUnit = Radians
	sm.XAxisDir = 45

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sm))

	got, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, sm.Freqs, got.Freqs)
	assert.Equal(t, sm.Dirs, got.Dirs)
	assert.Equal(t, sm.Rows(), got.Rows())
	assert.Equal(t, 45.0, got.XAxisDir)
}
