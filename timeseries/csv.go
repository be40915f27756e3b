package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// TableOptions holds options for loading wide CSV files, one column per
// series.
type TableOptions struct {
	DateColumn string // Column name for dates (default: auto-detect)
	DateFormat string // Date format (default: "2006-01-02")
	Delimiter  rune   // Field delimiter (default: ',')
	SkipRows   int    // Number of rows to skip at start
}

// DefaultTableOptions returns default options for table loading.
func DefaultTableOptions() *TableOptions {
	return &TableOptions{
		DateFormat: "2006-01-02",
		Delimiter:  ',',
	}
}

// LoadTable loads a wide CSV file into a table. The header row names the
// columns; one column may hold the time index and every other column becomes
// a series. Missing markers ("", "NA", "NaN", "null", ".") are loaded as NaN
// so that rows stay aligned across columns.
func LoadTable(filename string, opts *TableOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultTableOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadTableFromReader(file, opts)
}

// LoadTableFromReader loads a wide CSV table from an io.Reader.
func LoadTableFromReader(r io.Reader, opts *TableOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultTableOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	// Skip rows if needed
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(header))
	dateIdx := -1
	for i, h := range header {
		h = strings.TrimSpace(strings.Trim(h, "\""))
		names[i] = h
		switch {
		case opts.DateColumn != "" && h == opts.DateColumn:
			dateIdx = i
		case opts.DateColumn == "" && dateIdx == -1:
			switch h {
			case "ds", "date", "Date", "DATE", "observation_date", "Quarter", "Month", "Year":
				dateIdx = i
			}
		}
	}
	if opts.DateColumn != "" && dateIdx == -1 {
		return nil, errors.New("timeseries: date column " + strconv.Quote(opts.DateColumn) + " not found in header")
	}

	columns := make([][]float64, len(header))
	var timestamps []time.Time
	rows := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows++

		for i := range header {
			var field string
			if i < len(record) {
				field = strings.TrimSpace(strings.Trim(record[i], "\""))
			}

			if i == dateIdx {
				ts, err := parseDate(field, opts.DateFormat)
				if err != nil {
					return nil, errors.New("timeseries: cannot parse date " + strconv.Quote(field))
				}
				timestamps = append(timestamps, ts)
				continue
			}

			columns[i] = append(columns[i], parseValue(field))
		}
	}

	if rows == 0 {
		return nil, errors.New("timeseries: no data rows found in CSV")
	}

	table := NewTable()
	for i, name := range names {
		if i == dateIdx {
			continue
		}
		s := &Series{Values: columns[i], Name: name}
		if len(timestamps) == len(columns[i]) {
			stamps := make([]time.Time, len(timestamps))
			copy(stamps, timestamps)
			s.Timestamps = stamps
		}
		if err := table.Add(s); err != nil {
			return nil, err
		}
	}
	if table.Width() == 0 {
		return nil, errors.New("timeseries: no value columns found in CSV")
	}

	return table, nil
}

// parseValue converts a CSV field to a float64, mapping missing markers and
// unparseable fields to NaN.
func parseValue(field string) float64 {
	switch field {
	case "", "NA", "NaN", "nan", "null", ".":
		return math.NaN()
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseDate parses a date field, trying the configured format first, then a
// set of common formats, then quarter notation such as "2019Q4".
func parseDate(field, format string) (time.Time, error) {
	formats := []string{
		format,
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006/01/02",
		"01/02/2006",
		"02-Jan-2006",
		"2006-01",
		"2006",
	}
	var ts time.Time
	var err error
	for _, f := range formats {
		ts, err = time.Parse(f, field)
		if err == nil {
			return ts, nil
		}
	}
	return parseQuarter(field)
}

// parseQuarter parses quarter notation like "2019Q4" or "2019-Q4" into the
// first day of that quarter.
func parseQuarter(field string) (time.Time, error) {
	s := strings.ToUpper(strings.ReplaceAll(field, "-", ""))
	i := strings.Index(s, "Q")
	if i <= 0 || i != len(s)-2 {
		return time.Time{}, errors.New("timeseries: not a quarter")
	}
	year, err := strconv.Atoi(s[:i])
	if err != nil {
		return time.Time{}, err
	}
	q, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return time.Time{}, err
	}
	if q < 1 || q > 4 {
		return time.Time{}, errors.New("timeseries: quarter out of range")
	}
	return time.Date(year, time.Month(3*(q-1)+1), 1, 0, 0, 0, 0, time.UTC), nil
}

// WriteCSV writes the table as a wide CSV to w. When the first column
// carries timestamps a leading "date" column is written. Missing values are
// written as "NA" so the file round-trips through LoadTable.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := bufio.NewWriter(w)

	names := t.Columns()
	var stamps []time.Time
	if len(names) > 0 {
		first, _ := t.Column(names[0])
		if len(first.Timestamps) == t.Len() {
			stamps = first.Timestamps
		}
	}

	// Write header
	if stamps != nil {
		writer.WriteString("date")
		if len(names) > 0 {
			writer.WriteString(",")
		}
	}
	writer.WriteString(strings.Join(names, ","))
	writer.WriteString("\n")

	// Write data
	for i := 0; i < t.Len(); i++ {
		if stamps != nil {
			writer.WriteString(stamps[i].Format("2006-01-02"))
			if len(names) > 0 {
				writer.WriteString(",")
			}
		}
		for j, name := range names {
			if j > 0 {
				writer.WriteString(",")
			}
			s := t.columns[name]
			if math.IsNaN(s.Values[i]) {
				writer.WriteString("NA")
			} else {
				writer.WriteString(strconv.FormatFloat(s.Values[i], 'f', -1, 64))
			}
		}
		writer.WriteString("\n")
	}

	return writer.Flush()
}

// SaveTable writes the table to a CSV file.
func SaveTable(t *Table, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return t.WriteCSV(file)
}
