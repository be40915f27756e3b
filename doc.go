// Package gomacrots provides post-processing and charting utilities for
// macroeconomic time-series forecasts.
//
// GoMacroTS takes forecast output produced elsewhere (model estimation is out
// of scope) and prepares it for analysis and presentation: unit and scale
// conversions, percentage-change transforms, a trend/cycle decomposition
// filter, and rendering of forecast deviations from a baseline scenario.
//
// # Features
//
//   - Column-wise unit conversions (per-capita, nominal to real, annual to
//     quarterly) over aligned series
//   - Log-difference and quarter-over-quarter percentage-change transforms
//   - Hodrick-Prescott trend/cycle decomposition via a banded symmetric
//     positive-definite solve
//   - Deviation-from-baseline chart rendering (PNG/SVG)
//   - Wide-CSV table loading for forecast output, with missing-value handling
//
// # Quick Start
//
// Convert nominal GDP to real per-capita terms and detrend it:
//
//	gdp, _ := table.Column("OBS_GDP")
//	pop, _ := table.Column("POPULATION")
//	defl, _ := table.Column("GDP_DEFLATOR")
//
//	realGDP, _ := transform.NominalToRealPerCapita(gdp, pop, defl, 1.0)
//	decomp, _ := hpfilter.Decompose(realGDP, 1600)
//	// decomp.Trend, decomp.Cycle
//
// Render the cyclical component as a deviations chart:
//
//	err := deviation.Render(deviation.Chart{
//	    Forecast:   decomp.Cycle,
//	    Title:      deviation.DeviationTitle("Real GDP per capita"),
//	    YLabel:     "Percent",
//	    OutputPath: "gdp_cycle.png",
//	})
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Series and Table data structures, CSV table I/O
//   - transform: stateless column transforms over aligned series
//   - hpfilter: penalized least-squares trend/cycle decomposition
//   - deviation: deviation-from-baseline chart rendering
//
// The macroplot command (cmd/macroplot) drives all of the above from a YAML
// job description for batch chart generation.
//
// # References
//
//   - Hodrick, R.J., & Prescott, E.C. (1997). Postwar U.S. Business Cycles:
//     An Empirical Investigation
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
package gomacrots
