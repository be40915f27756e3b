// Package hpfilter implements the Hodrick-Prescott filter for splitting a
// macroeconomic time series into a smooth trend and a cyclical component.
//
// The trend is the minimizer of the penalized least-squares objective
//
//	sum_i (y[i] - t[i])^2  +  lambda * sum_i (t[i+1] - 2*t[i] + t[i-1])^2
//
// whose normal equations are the linear system (I + lambda*D'D) t = y, with
// D the second-difference operator. The system matrix is symmetric positive
// definite and pentadiagonal, so the package assembles it directly in banded
// form and solves with a banded Cholesky factorization in O(n) time. The
// first and last two rows of the matrix carry the natural boundary
// coefficients of the penalty (no observations are imagined beyond the
// series' ends).
//
// # Usage
//
// Decompose a quarterly series with the standard smoothing constant:
//
//	dec, err := hpfilter.Decompose(gdp, 1600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	trend := dec.Trend // gdp_trend
//	cycle := dec.Cycle // gdp_cycle, = gdp - trend
//
// Or operate on a raw vector:
//
//	trend, cycle, err := hpfilter.Filter(values, 1600)
//
// # Choosing Lambda
//
// Larger lambda values force a smoother trend. Conventional choices are 1600
// for quarterly data, 100 for annual data, and 129600 for monthly data.
// lambda = 0 makes the penalty vanish, so the trend equals the input and the
// cycle is identically zero.
//
// # Errors
//
// Decompose and Filter fail fast on invalid input: fewer than four
// observations (ErrSeriesTooShort), negative or NaN lambda
// (ErrNegativeLambda), or non-finite observations (ErrMissingValues). A
// failed factorization is reported as ErrNotPositiveDefinite rather than
// returning NaN-filled output.
//
// # References
//
// Hodrick, R. J., and E. C. Prescott (1997). "Postwar U.S. Business Cycles:
// An Empirical Investigation." Journal of Money, Credit and Banking, 29(1).
package hpfilter
