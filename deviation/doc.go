// Package deviation renders charts of forecast deviations from their
// baseline.
//
// The contract is deliberately narrow: a history series (possibly empty),
// a forecast series, and presentation metadata go in; a rendered chart file
// comes out. History is drawn as a solid line, forecast as a dashed line,
// and a zero baseline is drawn whenever the value range straddles zero.
// Output is PNG, or SVG when the output path ends in ".svg".
//
// # Usage
//
//	err := deviation.Render(deviation.Chart{
//	    History:    cycleHistory,
//	    Forecast:   cycleForecast,
//	    Title:      deviation.DeviationTitle("real GDP per capita"),
//	    YLabel:     "percent",
//	    OutputPath: "charts/gdp.png",
//	    TickEvery:  4,
//	    Legend:     deviation.LegendOn,
//	})
//
// Quarterly timestamps become axis labels like "2019Q4", thinned to every
// TickEvery-th observation. Series without timestamps are plotted against
// their positional index, with an unstamped forecast continuing where the
// history ends. Missing (NaN) and infinite observations are dropped from the
// drawing; if fewer than two plottable points remain in total, Render
// returns ErrTooFewPoints.
package deviation
