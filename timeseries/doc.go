// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for a single quarterly or annual
// series, the Table type for a set of aligned series sharing one time index,
// and loaders for wide CSV files. Missing observations are represented as
// NaN throughout, so columns keep their positional alignment even when some
// observations are absent.
//
// # Creating a Series
//
// Create a series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// Or with a quarterly time index:
//
//	start := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
//	series := timeseries.Quarterly(start, values)
//
// # Tables
//
// A Table holds equal-length columns addressed by name:
//
//	table := timeseries.NewTable()
//	err := table.Add(gdp)      // series named "gdp"
//	err = table.Add(deflator)  // series named "deflator"
//
//	col, err := table.Column("gdp")
//
// Adding a column whose length differs from the table returns
// ErrLengthMismatch; asking for an unknown column returns ErrColumnMissing.
//
// # Loading from CSV
//
// Load a wide CSV file, one column per series:
//
//	table, err := timeseries.LoadTable("forecast.csv", nil)
//
// The header row names the columns. A date column is detected automatically
// (or named via TableOptions.DateColumn) and missing markers such as "NA"
// and "." load as NaN without shifting rows.
//
// # Basic Statistics
//
// Summary statistics skip missing observations:
//
//	mean := series.Mean()
//	std := series.Std()
//	min := series.Min()
//	max := series.Max()
//	valid := series.Valid()
//
// # Slicing and Manipulation
//
// Work with subsets of the data:
//
//	// Get a slice
//	subset := series.Slice(10, 50)
//
//	// Copy the series
//	copy := series.Copy()
//
//	// Rename without copying data
//	renamed := series.WithName("gdp_real")
package timeseries
