package timeseries

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadTableFromReader(t *testing.T) {
	// Wide CSV with a date column and two series
	csvData := `date,gdp,deflator
2020-01-01,100,1.00
2020-04-01,101,1.01
2020-07-01,102,1.02
2020-10-01,103,1.03`

	table, err := LoadTableFromReader(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}

	if table.Len() != 4 {
		t.Errorf("Expected 4 rows, got %d", table.Len())
	}
	if table.Width() != 2 {
		t.Errorf("Expected 2 columns, got %d", table.Width())
	}

	gdp, err := table.Column("gdp")
	if err != nil {
		t.Fatalf("Failed to get gdp column: %v", err)
	}
	expected := []float64{100, 101, 102, 103}
	for i, v := range expected {
		if gdp.Values[i] != v {
			t.Errorf("Value at index %d: expected %f, got %f", i, v, gdp.Values[i])
		}
	}

	want := time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC)
	if !gdp.Timestamps[1].Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, gdp.Timestamps[1])
	}
}

func TestLoadTableKeepsAlignment(t *testing.T) {
	// Missing markers must load as NaN, not shift later rows up
	csvData := `date,gdp,pop
2020-01-01,100,10
2020-04-01,NA,11
2020-07-01,102,.
2020-10-01,103,13`

	table, err := LoadTableFromReader(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}

	gdp, _ := table.Column("gdp")
	pop, _ := table.Column("pop")

	if gdp.Len() != 4 || pop.Len() != 4 {
		t.Fatalf("Expected 4 rows in each column, got %d and %d", gdp.Len(), pop.Len())
	}
	if !math.IsNaN(gdp.Values[1]) {
		t.Errorf("Expected NaN at gdp[1], got %f", gdp.Values[1])
	}
	if !math.IsNaN(pop.Values[2]) {
		t.Errorf("Expected NaN at pop[2], got %f", pop.Values[2])
	}
	if gdp.Values[2] != 102 {
		t.Errorf("Expected gdp[2] = 102, got %f", gdp.Values[2])
	}
	if pop.Values[3] != 13 {
		t.Errorf("Expected pop[3] = 13, got %f", pop.Values[3])
	}
}

func TestLoadTableNoDateColumn(t *testing.T) {
	csvData := `gdp,pop
100,10
101,11`

	table, err := LoadTableFromReader(strings.NewReader(csvData), nil)
	if err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}

	gdp, _ := table.Column("gdp")
	if gdp.Timestamps != nil {
		t.Errorf("Expected no timestamps, got %d", len(gdp.Timestamps))
	}
	if gdp.Values[1] != 101 {
		t.Errorf("Expected gdp[1] = 101, got %f", gdp.Values[1])
	}
}

func TestLoadTableExplicitDateColumn(t *testing.T) {
	csvData := `period,gdp
2019Q1,100
2019Q2,101
2019Q3,102`

	opts := DefaultTableOptions()
	opts.DateColumn = "period"

	table, err := LoadTableFromReader(strings.NewReader(csvData), opts)
	if err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}

	gdp, _ := table.Column("gdp")
	want := time.Date(2019, time.April, 1, 0, 0, 0, 0, time.UTC)
	if !gdp.Timestamps[1].Equal(want) {
		t.Errorf("Expected quarter timestamp %v, got %v", want, gdp.Timestamps[1])
	}

	opts.DateColumn = "missing"
	_, err = LoadTableFromReader(strings.NewReader(csvData), opts)
	if err == nil {
		t.Errorf("Expected error for missing date column, got nil")
	}
}

func TestLoadTableEmpty(t *testing.T) {
	_, err := LoadTableFromReader(strings.NewReader("date,gdp\n"), nil)
	if err == nil {
		t.Errorf("Expected error for CSV without data rows, got nil")
	}
}

func TestParseQuarter(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  time.Time
		ok    bool
	}{
		{"plain", "2019Q4", time.Date(2019, time.October, 1, 0, 0, 0, 0, time.UTC), true},
		{"dashed", "2019-Q1", time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"lowercase", "2019q2", time.Date(2019, time.April, 1, 0, 0, 0, 0, time.UTC), true},
		{"out of range", "2019Q5", time.Time{}, false},
		{"not a quarter", "hello", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuarter(tt.field)
			if tt.ok && err != nil {
				t.Fatalf("Failed to parse %q: %v", tt.field, err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("Expected error for %q, got %v", tt.field, got)
			}
			if tt.ok && !got.Equal(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	gdp := Quarterly(start, []float64{100, math.NaN(), 102})
	gdp.Name = "gdp"
	pop := Quarterly(start, []float64{10, 11, 12})
	pop.Name = "pop"

	table := NewTable()
	if err := table.Add(gdp); err != nil {
		t.Fatalf("Failed to add column: %v", err)
	}
	if err := table.Add(pop); err != nil {
		t.Fatalf("Failed to add column: %v", err)
	}

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	loaded, err := LoadTableFromReader(&buf, nil)
	if err != nil {
		t.Fatalf("Failed to reload CSV: %v", err)
	}

	got, _ := loaded.Column("gdp")
	if got.Len() != 3 {
		t.Fatalf("Expected 3 rows after round trip, got %d", got.Len())
	}
	if !math.IsNaN(got.Values[1]) {
		t.Errorf("Expected NaN to round-trip at index 1, got %f", got.Values[1])
	}
	if got.Values[2] != 102 {
		t.Errorf("Expected 102 at index 2, got %f", got.Values[2])
	}
	if !got.Timestamps[0].Equal(start) {
		t.Errorf("Expected timestamp %v, got %v", start, got.Timestamps[0])
	}
}

func TestSaveTable(t *testing.T) {
	table := NewTable()
	if err := table.Add(namedSeries("gdp", []float64{1, 2, 3})); err != nil {
		t.Fatalf("Failed to add column: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := SaveTable(table, path); err != nil {
		t.Fatalf("Failed to save table: %v", err)
	}

	loaded, err := LoadTable(path, nil)
	if err != nil {
		t.Fatalf("Failed to reload table: %v", err)
	}
	if loaded.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", loaded.Len())
	}
}

func TestDefaultTableOptions(t *testing.T) {
	opts := DefaultTableOptions()

	if opts.DateFormat != "2006-01-02" {
		t.Errorf("Expected default date format '2006-01-02', got '%s'", opts.DateFormat)
	}

	if opts.Delimiter != ',' {
		t.Errorf("Expected default delimiter ',', got '%c'", opts.Delimiter)
	}
}
