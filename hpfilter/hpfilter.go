// Package hpfilter implements Hodrick-Prescott trend-cycle decomposition.
package hpfilter

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gomacrots/timeseries"
)

// minObservations is the shortest series for which every boundary row of the
// penalty matrix can be indexed.
const minObservations = 4

var (
	// ErrSeriesTooShort is returned when the input has fewer than four
	// observations.
	ErrSeriesTooShort = errors.New("hpfilter: series too short")

	// ErrNegativeLambda is returned when the smoothing parameter is negative
	// or NaN.
	ErrNegativeLambda = errors.New("hpfilter: lambda must be nonnegative")

	// ErrMissingValues is returned when the input contains NaN or infinite
	// observations. The solve requires fully-present data.
	ErrMissingValues = errors.New("hpfilter: series contains non-finite values")

	// ErrNotPositiveDefinite is returned when the Cholesky factorization of
	// the penalty system fails. Not expected for lambda >= 0, but surfaced
	// rather than returning NaN-filled output.
	ErrNotPositiveDefinite = errors.New("hpfilter: penalty system is not positive definite")
)

// Decomposition holds the result of a trend-cycle decomposition. Trend and
// Cycle have the same length as the input and satisfy
// trend + cycle = input up to the solve residual.
type Decomposition struct {
	Trend *timeseries.Series
	Cycle *timeseries.Series
}

// Decompose splits a series into a smooth trend and a cyclical component.
// The trend minimizes the penalized least-squares objective
//
//	sum (y[i] - trend[i])^2 + lambda * sum (second difference of trend)^2
//
// and the cycle is the residual y - trend. Larger lambda gives a smoother
// trend; lambda = 0 returns the series itself as trend. The standard choice
// for quarterly data is lambda = 1600.
func Decompose(y *timeseries.Series, lambda float64) (*Decomposition, error) {
	trend, cycle, err := Filter(y.Values, lambda)
	if err != nil {
		return nil, err
	}

	return &Decomposition{
		Trend: &timeseries.Series{Timestamps: copyStamps(y.Timestamps), Values: trend, Name: y.Name + "_trend"},
		Cycle: &timeseries.Series{Timestamps: copyStamps(y.Timestamps), Values: cycle, Name: y.Name + "_cycle"},
	}, nil
}

func copyStamps(stamps []time.Time) []time.Time {
	if stamps == nil {
		return nil
	}
	out := make([]time.Time, len(stamps))
	copy(out, stamps)
	return out
}

// Filter runs the decomposition on a raw vector, returning the trend and
// cycle components. The input slice is not modified.
func Filter(values []float64, lambda float64) (trend, cycle []float64, err error) {
	n := len(values)
	if n < minObservations {
		return nil, nil, fmt.Errorf("%w: need at least %d observations, got %d",
			ErrSeriesTooShort, minObservations, n)
	}
	if lambda < 0 || math.IsNaN(lambda) {
		return nil, nil, fmt.Errorf("%w: got %v", ErrNegativeLambda, lambda)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, fmt.Errorf("%w: index %d", ErrMissingValues, i)
		}
	}

	y := make([]float64, n)
	copy(y, values)

	a := penaltyMatrix(n, lambda)

	var chol mat.BandCholesky
	if ok := chol.Factorize(a); !ok {
		return nil, nil, ErrNotPositiveDefinite
	}

	trend = make([]float64, n)
	if err := chol.SolveVecTo(mat.NewVecDense(n, trend), mat.NewVecDense(n, y)); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNotPositiveDefinite, err)
	}

	cycle = make([]float64, n)
	floats.SubTo(cycle, y, trend)

	return trend, cycle, nil
}

// penaltyMatrix assembles A = I + lambda*D'D where D is the (n-2) x n second
// difference operator. A is symmetric pentadiagonal; the first and last two
// rows carry the natural boundary terms of the penalty, where the second
// difference references no observations beyond the ends:
//
//	row 1:        [1+lambda, -2*lambda, lambda]
//	row 2:        [-2*lambda, 1+5*lambda, -4*lambda, lambda]
//	interior row: [lambda, -4*lambda, 1+6*lambda, -4*lambda, lambda]
//	rows n-1, n:  mirrors of rows 2, 1
//
// Only the upper triangle is stored; n must be at least 4.
func penaltyMatrix(n int, lambda float64) *mat.SymBandDense {
	a := mat.NewSymBandDense(n, 2, nil)

	// Main diagonal
	a.SetSymBand(0, 0, 1+lambda)
	a.SetSymBand(1, 1, 1+5*lambda)
	for i := 2; i < n-2; i++ {
		a.SetSymBand(i, i, 1+6*lambda)
	}
	a.SetSymBand(n-2, n-2, 1+5*lambda)
	a.SetSymBand(n-1, n-1, 1+lambda)

	// First off-diagonal
	a.SetSymBand(0, 1, -2*lambda)
	for i := 1; i < n-2; i++ {
		a.SetSymBand(i, i+1, -4*lambda)
	}
	a.SetSymBand(n-2, n-1, -2*lambda)

	// Second off-diagonal
	for i := 0; i < n-2; i++ {
		a.SetSymBand(i, i+2, lambda)
	}

	return a
}
