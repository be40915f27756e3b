package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sartorproj/gomacrots/deviation"
	"github.com/sartorproj/gomacrots/hpfilter"
	"github.com/sartorproj/gomacrots/internal/logging"
	"github.com/sartorproj/gomacrots/timeseries"
	"github.com/sartorproj/gomacrots/transform"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render charts for every configured variable",
	Long: `Loads a wide CSV of forecast series, applies the transform configured
for each variable (unit conversions, percent changes, trend-cycle
decomposition) and renders one chart per variable into the output directory.

Variables are processed independently: a failure in one is logged and the
run continues, but the command exits non-zero if any variable failed.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dataPath, _ := cmd.Flags().GetString("data")
		outDir, _ := cmd.Flags().GetString("out")
		strict, _ := cmd.Flags().GetBool("strict")
		fourQuarter, _ := cmd.Flags().GetBool("four-quarter")
		untransformed, _ := cmd.Flags().GetBool("untransformed")
		verbose, _ := cmd.Flags().GetBool("verbose")

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		override, err := overrideMode(fourQuarter, untransformed)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		jobs, err := cfg.jobs(override)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		table, err := timeseries.LoadTable(dataPath, nil)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger.Debug("loaded data", "path", dataPath, "columns", table.Width(), "rows", table.Len())

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		failed := 0
		for _, j := range jobs {
			path, err := renderJob(table, j, outDir, strict)
			if err != nil {
				logger.Error("variable failed", "column", j.column, "error", err)
				failed++
				continue
			}
			logger.Info("rendered", "column", j.column, "path", path)
		}
		if failed > 0 {
			logger.Error("completed with failures", "failed", failed, "total", len(jobs))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("config", "c", "plots.yaml", "Path to the plot-job config file")
	renderCmd.Flags().StringP("data", "d", "forecast.csv", "Path to the wide CSV of forecast series")
	renderCmd.Flags().StringP("out", "o", "charts", "Directory for rendered charts")
	renderCmd.Flags().Bool("strict", false, "Fail a variable when its inputs contain missing values")
	renderCmd.Flags().Bool("four-quarter", false, "Plot four-quarter percent changes for every variable")
	renderCmd.Flags().Bool("untransformed", false, "Plot raw columns without transforms")
}

// renderJob runs the pipeline for one variable: resolve columns, transform,
// optionally detrend, render. It returns the chart path.
func renderJob(table *timeseries.Table, j job, outDir string, strict bool) (string, error) {
	target, err := table.Column(j.column)
	if err != nil {
		return "", err
	}

	if strict {
		inputs, err := jobInputs(table, j, target)
		if err != nil {
			return "", err
		}
		if err := transform.RequireComplete(inputs...); err != nil {
			return "", err
		}
	}

	series := target
	if j.mode != ModeUntransformed {
		series, err = applyKind(table, j, target)
		if err != nil {
			return "", err
		}
	}
	if j.mode == ModeFourQuarter {
		series = transform.FourQuarterPctChange(series)
	}

	title := j.title
	if title == "" {
		title = j.column
	}

	if j.detrend {
		// Growth-rate transforms have undefined leading observations;
		// the filter needs them gone.
		dec, err := hpfilter.Decompose(trimLeadingNaN(series), j.lambda)
		if err != nil {
			return "", err
		}
		series = dec.Cycle
		title = deviation.DeviationTitle(title)
	}

	path := filepath.Join(outDir, strings.ToLower(j.column)+".png")
	err = deviation.Render(deviation.Chart{
		Forecast:   series,
		Title:      title,
		YLabel:     j.unit,
		OutputPath: path,
		TickEvery:  j.tickEvery,
		Legend:     j.legend,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// applyKind applies the configured transform to the target column,
// resolving auxiliary columns by their mnemonics.
func applyKind(table *timeseries.Table, j job, target *timeseries.Series) (*timeseries.Series, error) {
	switch j.kind {
	case KindNone:
		return target, nil
	case KindPerCapita:
		pop, err := table.Column(j.population)
		if err != nil {
			return nil, err
		}
		return transform.PerCapita(target, pop)
	case KindReal:
		deflator, err := table.Column(j.deflator)
		if err != nil {
			return nil, err
		}
		return transform.NominalToReal(target, deflator)
	case KindRealPerCapita:
		pop, err := table.Column(j.population)
		if err != nil {
			return nil, err
		}
		deflator, err := table.Column(j.deflator)
		if err != nil {
			return nil, err
		}
		return transform.NominalToRealPerCapita(target, pop, deflator, j.scale)
	case KindAnnualToQuarter:
		return transform.AnnualToQuarter(target), nil
	case KindPctChange:
		return transform.QuarterPctChange(target), nil
	case KindRealPctChange:
		deflator, err := table.Column(j.deflator)
		if err != nil {
			return nil, err
		}
		return transform.RealQuarterPctChange(target, deflator)
	case KindPopGrowthAdjust:
		unfiltered, err := table.Column(j.popGrowth)
		if err != nil {
			return nil, err
		}
		filtered, err := table.Column(j.popGrowthTrend)
		if err != nil {
			return nil, err
		}
		return transform.PopGrowthAdjust(target, unfiltered, filtered)
	}
	return nil, fmt.Errorf("macroplot: unhandled transform kind %d", j.kind)
}

// jobInputs lists every column a job reads, for --strict validation.
func jobInputs(table *timeseries.Table, j job, target *timeseries.Series) ([]*timeseries.Series, error) {
	inputs := []*timeseries.Series{target}
	if j.mode == ModeUntransformed {
		return inputs, nil
	}

	var names []string
	switch j.kind {
	case KindPerCapita:
		names = []string{j.population}
	case KindReal, KindRealPctChange:
		names = []string{j.deflator}
	case KindRealPerCapita:
		names = []string{j.population, j.deflator}
	case KindPopGrowthAdjust:
		names = []string{j.popGrowth, j.popGrowthTrend}
	}
	for _, name := range names {
		s, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, s)
	}
	return inputs, nil
}

// trimLeadingNaN drops undefined leading observations, as left behind by
// percent-change transforms.
func trimLeadingNaN(s *timeseries.Series) *timeseries.Series {
	start := 0
	for start < s.Len() && math.IsNaN(s.Values[start]) {
		start++
	}
	if start == 0 {
		return s
	}
	return s.Slice(start, s.Len())
}
