// Package transform provides stateless column transforms for macroeconomic
// forecast series.
//
// Every operation is a pure function over one or more aligned series: inputs
// are never mutated, results are new Series named after the source column
// (e.g. "gdp" -> "gdp_realpercap"). Operations taking two or more series
// fail with timeseries.ErrLengthMismatch when the inputs are not aligned.
//
// # Unit Conversions
//
// Convert nominal series to real, per-capita, or quarterly units:
//
//	percap, err := transform.PerCapita(gdp, population)
//	deflated, err := transform.NominalToReal(gdp, deflator)
//	rpc, err := transform.NominalToRealPerCapita(gdp, population, deflator, 1000.0)
//	quarterly := transform.AnnualToQuarter(annualRate)
//
// # Percent Changes
//
// Log-difference based growth rates:
//
//	dl := transform.DiffLog(gdp)                            // dl.Values[0] is NaN
//	pct := transform.QuarterPctChange(gdp)                  // 100 * DiffLog
//	rpct, err := transform.RealQuarterPctChange(gdp, deflator)
//	pct4q := transform.FourQuarterPctChange(gdp)            // vs. four quarters earlier
//
// # Population Growth Adjustment
//
// Add back the gap between unfiltered and trend population growth:
//
//	adj, err := transform.PopGrowthAdjust(growth, unfiltered, filtered)
//
// # Missing Data
//
// Missing observations (NaN) propagate through every transform following
// IEEE semantics. Callers wanting a hard failure instead run
// RequireComplete on the inputs first:
//
//	if err := transform.RequireComplete(gdp, deflator); err != nil {
//	    // transform.ErrMissingValues, with series name and index
//	}
package transform
