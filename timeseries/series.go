// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"time"
)

// ErrLengthMismatch is returned when two inputs that must share a time index
// have different lengths.
var ErrLengthMismatch = errors.New("timeseries: length mismatch")

// Series represents a time series with timestamps and values. Missing
// observations are carried as NaN so that aligned series keep the same
// positional index.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values without timestamps. Such a
// series is aligned by position only.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, ErrLengthMismatch
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Quarterly creates a time series whose timestamps advance one quarter per
// observation, starting at start.
func Quarterly(start time.Time, values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = start.AddDate(0, 3*i, 0)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// WithName returns a shallow copy of the series under a new name. The
// timestamp and value slices are shared with the receiver.
func (s *Series) WithName(name string) *Series {
	return &Series{
		Timestamps: s.Timestamps,
		Values:     s.Values,
		Name:       name,
	}
}

// Mean calculates the arithmetic mean of the series, skipping missing (NaN)
// observations. It returns NaN when no valid observations exist.
func (s *Series) Mean() float64 {
	sum := 0.0
	count := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// Variance calculates the sample variance of the series, skipping missing
// (NaN) observations.
func (s *Series) Variance() float64 {
	mean := s.Mean()
	if math.IsNaN(mean) {
		return math.NaN()
	}
	sumSq := 0.0
	count := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		diff := v - mean
		sumSq += diff * diff
		count++
	}
	if count < 2 {
		return 0
	}
	return sumSq / float64(count-1)
}

// Std calculates the sample standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series, skipping missing (NaN)
// observations. It returns NaN when no valid observations exist.
func (s *Series) Min() float64 {
	min := math.NaN()
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series, skipping missing (NaN)
// observations. It returns NaN when no valid observations exist.
func (s *Series) Max() float64 {
	max := math.NaN()
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}

// Valid returns the number of non-missing observations in the series.
func (s *Series) Valid() int {
	count := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			count++
		}
	}
	return count
}

// Slice returns a copy of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if len(s.Timestamps) >= end {
		timestamps = make([]time.Time, end-start)
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}
