package transform

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/gomacrots/timeseries"
)

// DiffLog computes the log difference of a series. The result has the same
// length as the input; the first entry is NaN since it has no prior
// observation. Non-positive inputs propagate NaN or -Inf per math.Log.
func DiffLog(x *timeseries.Series) *timeseries.Series {
	out := make([]float64, x.Len())
	if len(out) > 0 {
		out[0] = math.NaN()
	}
	for i := 1; i < x.Len(); i++ {
		out[i] = math.Log(x.Values[i]) - math.Log(x.Values[i-1])
	}
	return derived(x, "_difflog", out)
}

// QuarterPctChange computes the quarter-on-quarter percent change of a
// series as 100 times its log difference.
func QuarterPctChange(y *timeseries.Series) *timeseries.Series {
	out := DiffLog(y)
	floats.Scale(100, out.Values)
	out.Name = y.Name + "_pct"
	return out
}

// RealQuarterPctChange computes the quarter-on-quarter percent change of a
// nominal series net of deflator inflation:
// 100 * (DiffLog(value) - DiffLog(deflator)). Which deflator applies to a
// given variable is the caller's lookup, not part of this operation.
func RealQuarterPctChange(value, deflator *timeseries.Series) (*timeseries.Series, error) {
	if err := checkAligned(value, deflator); err != nil {
		return nil, err
	}
	dv := DiffLog(value)
	dd := DiffLog(deflator)
	out := make([]float64, value.Len())
	floats.SubTo(out, dv.Values, dd.Values)
	floats.Scale(100, out)
	return derived(value, "_realpct", out), nil
}

// FourQuarterPctChange computes the percent change over four quarters:
// 100 * (ln y[i] - ln y[i-4]). The first four entries are NaN.
func FourQuarterPctChange(y *timeseries.Series) *timeseries.Series {
	out := make([]float64, y.Len())
	for i := 0; i < y.Len() && i < 4; i++ {
		out[i] = math.NaN()
	}
	for i := 4; i < y.Len(); i++ {
		out[i] = 100 * (math.Log(y.Values[i]) - math.Log(y.Values[i-4]))
	}
	return derived(y, "_pct4q", out)
}
