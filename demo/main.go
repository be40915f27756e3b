// Package main demonstrates macro forecast post-processing with synthetic data.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sartorproj/gomacrots/deviation"
	"github.com/sartorproj/gomacrots/hpfilter"
	"github.com/sartorproj/gomacrots/timeseries"
	"github.com/sartorproj/gomacrots/transform"
)

const (
	historyQuarters  = 100 // 1995Q1 through 2019Q4
	forecastQuarters = 24  // 2020Q1 through 2025Q4
	totalQuarters    = historyQuarters + forecastQuarters
)

// Variable defines one post-processing pipeline to run
type Variable struct {
	Name        string  // Display name
	Description string  // Brief description
	Column      string  // Nominal source column in the table
	Kind        string  // Pipeline: realpercapita, realpctchange, popadjust
	Scale       float64 // Scale factor applied after deflating (e.g. 1000 for thousands)
	Lambda      float64 // Trend smoothing parameter
	Unit        string  // Y-axis label
	File        string  // Chart filename under charts/
}

// DecompositionResult holds one variable's trend-cycle split for JSON export
type DecompositionResult struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Column      string    `json:"column"`
	Lambda      float64   `json:"lambda"`
	NObs        int       `json:"n_obs"`
	ForecastObs int       `json:"forecast_obs"`
	Quarters    []string  `json:"quarters"`
	Series      []float64 `json:"series"`
	Trend       []float64 `json:"trend"`
	Cycle       []float64 `json:"cycle"`
	CycleMean   float64   `json:"cycle_mean"`
	CycleStd    float64   `json:"cycle_std"`
	Chart       string    `json:"chart"`
}

// OutputData holds all results for visualization
type OutputData struct {
	Variables []DecompositionResult `json:"variables"`
}

func main() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("GoMacroTS Demonstration - Macro Forecast Post-Processing")
	fmt.Println("Transforms, trend-cycle decomposition, and deviation charts")
	fmt.Println(strings.Repeat("=", 80))

	table := buildMacroTable()
	fmt.Printf("\nSynthetic data: %d quarters (1995Q1 to 2025Q4), forecast from 2020Q1\n", totalQuarters)

	if err := timeseries.SaveTable(table, "macro_data.csv"); err == nil {
		fmt.Printf("Wrote macro_data.csv (%d rows, %d columns)\n", table.Len(), table.Width())
	}

	chartsDir := "charts"
	os.MkdirAll(chartsDir, 0755)

	// Define pipelines - all configuration in one place
	variables := []Variable{
		{Name: "Real per-capita GDP", Column: "gdp", Kind: "realpercapita", Scale: 1000, Lambda: 1600,
			Unit: "thousands of dollars", File: "real_percapita_gdp.png",
			Description: "Nominal output deflated and divided by population"},
		{Name: "Real per-capita consumption", Column: "consumption", Kind: "realpercapita", Scale: 1000, Lambda: 1600,
			Unit: "thousands of dollars", File: "real_percapita_consumption.png",
			Description: "Nominal household spending deflated and divided by population"},
		{Name: "Real GDP growth", Column: "gdp", Kind: "realpctchange", Lambda: 1600,
			Unit: "percent, quarter on quarter", File: "real_gdp_growth.png",
			Description: "Growth of deflated output, price effects removed"},
		{Name: "Demographics-adjusted GDP growth", Column: "gdp", Kind: "popadjust", Scale: 1000, Lambda: 1600,
			Unit: "percent, quarter on quarter", File: "adjusted_gdp_growth.png",
			Description: "Per-capita real growth plus the transitory part of population growth"},
	}

	output := OutputData{Variables: []DecompositionResult{}}

	for i, v := range variables {
		fmt.Printf("\n%s\n[%d/%d] %s\n%s\n", strings.Repeat("=", 80), i+1, len(variables), v.Name, strings.Repeat("=", 80))

		result := analyze(table, v, chartsDir)
		if result != nil {
			output.Variables = append(output.Variables, *result)
		}
	}

	// Export results
	fmt.Printf("\n%s\nEXPORTING RESULTS\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))

	if data, err := json.MarshalIndent(output, "", "  "); err == nil {
		os.WriteFile("decomposition_results.json", data, 0644)
		fmt.Printf("Exported %d variables to decomposition_results.json\n", len(output.Variables))
	}

	fmt.Println("\nCharts are in charts/; re-plot with: macroplot render --data macro_data.csv")
	fmt.Println(strings.Repeat("=", 80))
}

// analyze runs one pipeline: transform, decompose, chart, collect results
func analyze(table *timeseries.Table, v Variable, chartsDir string) *DecompositionResult {
	series, err := applyTransform(table, v)
	if err != nil {
		fmt.Printf("   Error transforming: %v\n", err)
		return nil
	}

	// Growth pipelines leave an undefined first observation; drop it before
	// fitting the trend.
	trimmed := trimLeadingMissing(series)
	cut := historyQuarters - (series.Len() - trimmed.Len())

	fmt.Printf("   Transformed %q -> %q: %d observations (%.2f to %.2f)\n",
		v.Column, trimmed.Name, trimmed.Len(), trimmed.Min(), trimmed.Max())

	dec, err := hpfilter.Decompose(trimmed, v.Lambda)
	if err != nil {
		fmt.Printf("   Error decomposing: %v\n", err)
		return nil
	}

	cycle := dec.Cycle
	fmt.Printf("   Decomposed with lambda=%.0f: cycle mean %.4f, std %.4f\n",
		v.Lambda, cycle.Mean(), cycle.Std())

	trough, when := troughOf(cycle)
	fmt.Printf("   Deepest deviation: %.3f in %s\n", trough, when)

	chartPath := filepath.Join(chartsDir, v.File)
	err = deviation.Render(deviation.Chart{
		History:    cycle.Slice(0, cut).WithName("history"),
		Forecast:   cycle.Slice(cut, cycle.Len()).WithName("forecast"),
		Title:      deviation.DeviationTitle(v.Name),
		YLabel:     v.Unit,
		OutputPath: chartPath,
		Legend:     deviation.LegendOn,
	})
	if err != nil {
		fmt.Printf("   Error rendering: %v\n", err)
		return nil
	}
	fmt.Printf("   Chart: %s\n", chartPath)

	return &DecompositionResult{
		Name:        v.Name,
		Description: v.Description,
		Column:      v.Column,
		Lambda:      v.Lambda,
		NObs:        trimmed.Len(),
		ForecastObs: trimmed.Len() - cut,
		Quarters:    quarterLabels(trimmed.Timestamps),
		Series:      trimmed.Values,
		Trend:       dec.Trend.Values,
		Cycle:       cycle.Values,
		CycleMean:   cycle.Mean(),
		CycleStd:    cycle.Std(),
		Chart:       chartPath,
	}
}

// applyTransform resolves a pipeline kind against the table columns
func applyTransform(table *timeseries.Table, v Variable) (*timeseries.Series, error) {
	value, err := table.Column(v.Column)
	if err != nil {
		return nil, err
	}
	deflator, err := table.Column("gdp_deflator")
	if err != nil {
		return nil, err
	}

	switch v.Kind {
	case "realpercapita":
		population, err := table.Column("population")
		if err != nil {
			return nil, err
		}
		return transform.NominalToRealPerCapita(value, population, deflator, v.Scale)

	case "realpctchange":
		return transform.RealQuarterPctChange(value, deflator)

	case "popadjust":
		population, err := table.Column("population")
		if err != nil {
			return nil, err
		}
		percap, err := transform.NominalToRealPerCapita(value, population, deflator, v.Scale)
		if err != nil {
			return nil, err
		}
		unfiltered, err := table.Column("pop_growth")
		if err != nil {
			return nil, err
		}
		filtered, err := table.Column("pop_growth_trend")
		if err != nil {
			return nil, err
		}
		return transform.PopGrowthAdjust(transform.QuarterPctChange(percap), unfiltered, filtered)
	}

	return nil, fmt.Errorf("unknown pipeline kind %q", v.Kind)
}

// buildMacroTable generates the synthetic quarterly history and forecast
func buildMacroTable() *timeseries.Table {
	start := time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC)

	gdp := make([]float64, totalQuarters)
	consumption := make([]float64, totalQuarters)
	deflator := make([]float64, totalQuarters)
	population := make([]float64, totalQuarters)
	popGrowth := make([]float64, totalQuarters)
	popGrowthTrend := make([]float64, totalQuarters)

	pop := 265000.0 // thousands of persons
	defl := 0.72    // price index, 2012 = 1

	for i := 0; i < totalQuarters; i++ {
		t := float64(i)

		// Business cycle: a slow swing plus recession dips in 2001, 2008-09,
		// and a sharp one at the start of the forecast window.
		cycle := 0.015*math.Sin(2*math.Pi*t/34) +
			dip(t, 24, 3, 0.012) + dip(t, 55, 5, 0.035) + dip(t, 101, 3, 0.055)

		realPC := 36.0 * math.Exp(0.0045*t+cycle) // thousands of dollars per person

		trendGrowth := 0.0030 - 0.0000065*t
		g := trendGrowth + 0.0004*math.Sin(2*math.Pi*t/20)
		popGrowth[i] = 100 * g
		popGrowthTrend[i] = 100 * trendGrowth

		inflation := 0.0055 - 0.00001*t + 0.0006*math.Sin(2*math.Pi*t/26)

		population[i] = pop
		deflator[i] = defl

		realGDP := realPC * pop / 1000 // billions of dollars
		gdp[i] = realGDP * defl
		consumption[i] = 0.67 * gdp[i] * (1 + 0.004*math.Sin(2*math.Pi*t/18))

		pop *= 1 + g
		defl *= 1 + inflation
	}

	table := timeseries.NewTable()
	columns := map[string][]float64{
		"gdp":              gdp,
		"consumption":      consumption,
		"gdp_deflator":     deflator,
		"population":       population,
		"pop_growth":       popGrowth,
		"pop_growth_trend": popGrowthTrend,
	}
	for _, name := range []string{"gdp", "consumption", "gdp_deflator", "population", "pop_growth", "pop_growth_trend"} {
		table.Add(timeseries.Quarterly(start, columns[name]).WithName(name))
	}
	return table
}

// dip is a smooth recession shock centered on quarter c with width w
func dip(t, c, w, depth float64) float64 {
	d := (t - c) / w
	return -depth * math.Exp(-d*d)
}

func trimLeadingMissing(s *timeseries.Series) *timeseries.Series {
	first := 0
	for first < s.Len() && math.IsNaN(s.Values[first]) {
		first++
	}
	return s.Slice(first, s.Len())
}

// troughOf finds the deepest cycle deviation and the quarter it lands on
func troughOf(cycle *timeseries.Series) (float64, string) {
	low, idx := math.Inf(1), -1
	for i, v := range cycle.Values {
		if !math.IsNaN(v) && v < low {
			low, idx = v, i
		}
	}
	if idx < 0 {
		return math.NaN(), "n/a"
	}
	if idx >= len(cycle.Timestamps) {
		return low, fmt.Sprintf("observation %d", idx+1)
	}
	return low, quarterLabel(cycle.Timestamps[idx])
}

func quarterLabels(stamps []time.Time) []string {
	labels := make([]string, len(stamps))
	for i, ts := range stamps {
		labels[i] = quarterLabel(ts)
	}
	return labels
}

func quarterLabel(ts time.Time) string {
	return fmt.Sprintf("%dQ%d", ts.Year(), (int(ts.Month())-1)/3+1)
}
