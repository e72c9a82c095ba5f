package integrator

import (
	"math"

	"github.com/turtacn/StratFit-Intelligence/pkg/types/strategy"
)

// couplingKernelAmplitude modulates matrix cells around the configured
// coefficient so the coupling surface is not uniform.
const couplingKernelAmplitude = 0.2

// couplingMatrixSize is the fixed dimension of every coupling matrix.
const couplingMatrixSize = 3

// CouplingMatrix expresses how one framework's factor vector influences
// another's.  Matrices are built once per analysis and read-only thereafter;
// the scalar coefficient entering the unified equation is the matrix mean,
// which equals the configured coefficient exactly.
type CouplingMatrix struct {
	From  strategy.Framework
	To    strategy.Framework
	Cells [][]float64

	mean float64
}

// NewCouplingMatrix builds the fixed-size coupling matrix for a framework
// pair.  Cells vary around coeff by a sinusoidal positional kernel but are
// rescaled so their mean is exactly coeff.
func NewCouplingMatrix(from, to strategy.Framework, coeff float64) *CouplingMatrix {
	raw := make([][]float64, couplingMatrixSize)
	var sum float64
	for i := range raw {
		raw[i] = make([]float64, couplingMatrixSize)
		for j := range raw[i] {
			raw[i][j] = 1 + couplingKernelAmplitude*math.Sin(float64((i+1)*(j+1)))
			sum += raw[i][j]
		}
	}
	rawMean := sum / float64(couplingMatrixSize*couplingMatrixSize)

	cells := make([][]float64, couplingMatrixSize)
	for i := range cells {
		cells[i] = make([]float64, couplingMatrixSize)
		for j := range cells[i] {
			cells[i][j] = coeff * raw[i][j] / rawMean
		}
	}

	return &CouplingMatrix{From: from, To: to, Cells: cells, mean: coeff}
}

// Mean returns the matrix mean, the scalar coupling coefficient.
func (m *CouplingMatrix) Mean() float64 {
	return m.mean
}
