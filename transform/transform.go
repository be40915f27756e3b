// Package transform provides stateless column transforms for macroeconomic
// series.
package transform

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/gomacrots/timeseries"
)

// checkAligned verifies that all series share one length.
func checkAligned(series ...*timeseries.Series) error {
	for i := 1; i < len(series); i++ {
		if series[i].Len() != series[0].Len() {
			return fmt.Errorf("%w: %q has %d observations, %q has %d",
				timeseries.ErrLengthMismatch,
				series[0].Name, series[0].Len(),
				series[i].Name, series[i].Len())
		}
	}
	return nil
}

// derived wraps freshly computed values as a new series named after the
// source, carrying a copy of the source timestamps.
func derived(src *timeseries.Series, suffix string, values []float64) *timeseries.Series {
	out := &timeseries.Series{
		Values: values,
		Name:   src.Name + suffix,
	}
	if src.Timestamps != nil {
		stamps := make([]time.Time, len(src.Timestamps))
		copy(stamps, src.Timestamps)
		out.Timestamps = stamps
	}
	return out
}

// PerCapita divides a value series by a population series elementwise.
// Division by zero population follows IEEE semantics and is not specially
// handled.
func PerCapita(value, population *timeseries.Series) (*timeseries.Series, error) {
	if err := checkAligned(value, population); err != nil {
		return nil, err
	}
	out := make([]float64, value.Len())
	floats.DivTo(out, value.Values, population.Values)
	return derived(value, "_percap", out), nil
}

// NominalToReal deflates a nominal series by a price deflator elementwise.
func NominalToReal(value, deflator *timeseries.Series) (*timeseries.Series, error) {
	if err := checkAligned(value, deflator); err != nil {
		return nil, err
	}
	out := make([]float64, value.Len())
	floats.DivTo(out, value.Values, deflator.Values)
	return derived(value, "_real", out), nil
}

// NominalToRealPerCapita converts a nominal series to real per-capita terms:
// scale * (value / population) / deflator. The intermediate per-capita series
// is a local temporary; the caller's data is never touched.
func NominalToRealPerCapita(value, population, deflator *timeseries.Series, scale float64) (*timeseries.Series, error) {
	if err := checkAligned(value, population, deflator); err != nil {
		return nil, err
	}
	percap, err := PerCapita(value, population)
	if err != nil {
		return nil, err
	}
	out, err := NominalToReal(percap, deflator)
	if err != nil {
		return nil, err
	}
	floats.Scale(scale, out.Values)
	out.Name = value.Name + "_realpercap"
	return out, nil
}

// AnnualToQuarter converts an annual-rate series to a quarterly rate by
// dividing each observation by four.
func AnnualToQuarter(v *timeseries.Series) *timeseries.Series {
	out := make([]float64, v.Len())
	floats.ScaleTo(out, 0.25, v.Values)
	return derived(v, "_q", out)
}

// PopGrowthAdjust adds the gap between unfiltered and filtered population
// growth to a series, in percentage points:
// y[i] + 100*(unfiltered[i] - filtered[i]).
func PopGrowthAdjust(y, unfiltered, filtered *timeseries.Series) (*timeseries.Series, error) {
	if err := checkAligned(y, unfiltered, filtered); err != nil {
		return nil, err
	}
	gap := make([]float64, y.Len())
	floats.SubTo(gap, unfiltered.Values, filtered.Values)
	out := make([]float64, y.Len())
	floats.AddScaledTo(out, y.Values, 100, gap)
	return derived(y, "_adj", out), nil
}
