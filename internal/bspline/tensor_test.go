package bspline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

func testGrid() GridOrigin {
	return GridOrigin{Gx: 400, Gy: 400, OriginX: 200, OriginY: 200, KnotSpace: 0.05}
}

func TestTensorPartitionOfUnity(t *testing.T) {
	g := testGrid()
	for x := -1.0; x < 1.0; x += 0.037 {
		for y := -1.0; y < 1.0; y += 0.041 {
			B := g.Tensor(x, y)
			var sum float64
			for _, v := range B {
				sum += v
			}
			assert.InDelta(t, 1.0, sum, 1e-10)
		}
	}
}

func TestTensorDerivMatchesCentralDifference(t *testing.T) {
	g := testGrid()
	x, y := 0.17, -0.23
	_, dBx, dBy := g.TensorDeriv(x, y)
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-5}
	for k := 0; k < TensorSupport; k++ {
		fdx := fd.Derivative(func(t float64) float64 { return g.Tensor(t, y)[k] }, x, settings)
		fdy := fd.Derivative(func(t float64) float64 { return g.Tensor(x, t)[k] }, y, settings)
		assert.InDelta(t, fdx, dBx[k], 1e-4)
		assert.InDelta(t, fdy, dBy[k], 1e-4)
	}
}

func TestSparseIndexContiguous4x4Block(t *testing.T) {
	g := testGrid()
	C := g.SparseIndex(0.12, -0.08)
	// Each row i of 4 indices must be consecutive (cx[j] = mu-3..mu).
	for i := 0; i < Support; i++ {
		row := C[i*Support : i*Support+Support]
		for j := 0; j < Support-1; j++ {
			assert.Equal(t, row[j]+1, row[j+1])
		}
	}
	// Row stride must equal Gx.
	assert.Equal(t, g.Gx, C[Support]-C[0])
}

func TestSparseIndexMatchesHandComputedLayout(t *testing.T) {
	g := testGrid()
	got := g.SparseIndex(0.12, -0.08)

	want := [TensorSupport]int{
		78199, 78200, 78201, 78202,
		78599, 78600, 78601, 78602,
		78999, 79000, 79001, 79002,
		79399, 79400, 79401, 79402,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SparseIndex(0.12, -0.08) mismatch (-want +got):\n%s", diff)
	}
}
