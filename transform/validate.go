package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/gomacrots/timeseries"
)

// ErrMissingValues is returned by RequireComplete when a series contains
// missing (NaN) observations.
var ErrMissingValues = errors.New("transform: series contains missing values")

// RequireComplete returns an error naming the first series containing a
// missing (NaN) observation and the offending index. The default policy of
// the transforms is to propagate NaN; callers requesting strict validation
// run this check up front.
func RequireComplete(series ...*timeseries.Series) error {
	for _, s := range series {
		for i, v := range s.Values {
			if math.IsNaN(v) {
				return fmt.Errorf("%w: %q at index %d", ErrMissingValues, s.Name, i)
			}
		}
	}
	return nil
}
