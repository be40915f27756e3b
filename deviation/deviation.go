// Package deviation renders charts of forecast deviations from baseline.
package deviation

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/sartorproj/gomacrots/timeseries"
)

// ErrTooFewPoints is returned when history and forecast together hold fewer
// than two plottable observations.
var ErrTooFewPoints = errors.New("deviation: too few points to plot")

// LegendMode controls whether a legend is drawn on the chart.
type LegendMode int

const (
	LegendOff LegendMode = iota
	LegendOn
)

// Chart describes one deviation chart: an optional history series drawn
// solid, a forecast series drawn dashed, and presentation metadata.
type Chart struct {
	History  *timeseries.Series // may be nil or empty
	Forecast *timeseries.Series

	Title      string
	YLabel     string
	OutputPath string

	TickEvery int // label every k-th observation (default 4, quarterly years)
	Legend    LegendMode
	Width     int // default 1024
	Height    int // default 512
}

// DeviationTitle builds the conventional chart title for a variable plotted
// as deviations from its baseline.
func DeviationTitle(variable string) string {
	return variable + " (deviations from baseline)"
}

// point is one plottable observation with its axis label.
type point struct {
	x     float64
	y     float64
	label string
}

// Render draws the chart and writes it to c.OutputPath. The format is PNG
// unless the path ends in ".svg". History may be empty; non-finite
// observations are dropped from the drawing. Fewer than two plottable points
// in total is an error.
func Render(c Chart) error {
	history := seriesPoints(c.History, 0)
	offset := 0
	if c.History != nil {
		offset = c.History.Len()
	}
	forecast := seriesPoints(c.Forecast, offset)

	if len(history)+len(forecast) < 2 {
		return ErrTooFewPoints
	}

	width := c.Width
	if width <= 0 {
		width = 1024
	}
	height := c.Height
	if height <= 0 {
		height = 512
	}

	var series []chart.Series
	if len(history) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    seriesName(c.History, "history"),
			XValues: xvalues(history),
			YValues: yvalues(history),
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorBlue},
		})
	}
	if len(forecast) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    seriesName(c.Forecast, "forecast"),
			XValues: xvalues(forecast),
			YValues: yvalues(forecast),
			Style: chart.Style{
				StrokeWidth:     2,
				StrokeColor:     chart.ColorRed,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		})
	}

	xmin, xmax := xbounds(history, forecast)
	ymin, ymax := padded(ybounds(history, forecast))

	// Deviations straddle zero; draw the baseline when the range does.
	if ymin < 0 && ymax > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "baseline",
			XValues: []float64{xmin, xmax},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeWidth: 1, StrokeColor: chart.ColorAlternateGray},
		})
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Ticks: ticks(history, forecast, c.TickEvery),
			Range: &chart.ContinuousRange{Min: xmin, Max: xmax},
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: ymin, Max: ymax},
		},
		Series: series,
	}
	if c.Legend == LegendOn {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	provider := chart.PNG
	if strings.EqualFold(filepath.Ext(c.OutputPath), ".svg") {
		provider = chart.SVG
	}

	f, err := os.Create(c.OutputPath)
	if err != nil {
		return fmt.Errorf("deviation: create %s: %w", c.OutputPath, err)
	}
	if err := ch.Render(provider, f); err != nil {
		f.Close()
		return fmt.Errorf("deviation: render %s: %w", c.OutputPath, err)
	}
	return f.Close()
}

// seriesPoints converts a series to plottable points, dropping non-finite
// observations. Timestamps become the x coordinate when present; otherwise
// the positional index shifted by offset is used, so an unstamped forecast
// continues where the history ends.
func seriesPoints(s *timeseries.Series, offset int) []point {
	if s == nil {
		return nil
	}
	stamped := len(s.Timestamps) == len(s.Values) && len(s.Timestamps) > 0

	var pts []point
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		p := point{y: v}
		if stamped {
			ts := s.Timestamps[i]
			p.x = chart.TimeToFloat64(ts)
			p.label = fmt.Sprintf("%dQ%d", ts.Year(), (int(ts.Month())-1)/3+1)
		} else {
			p.x = float64(i + offset)
			p.label = strconv.Itoa(i + offset)
		}
		pts = append(pts, p)
	}
	return pts
}

func seriesName(s *timeseries.Series, fallback string) string {
	if s != nil && s.Name != "" {
		return s.Name
	}
	return fallback
}

func xvalues(pts []point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.x
	}
	return out
}

func yvalues(pts []point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.y
	}
	return out
}

// xbounds returns the x extent of all points, padded to a non-zero span so
// the axis always has width.
func xbounds(groups ...[]point) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, pts := range groups {
		for _, p := range pts {
			if p.x < min {
				min = p.x
			}
			if p.x > max {
				max = p.x
			}
		}
	}
	if max <= min {
		max = min + 1
	}
	return min, max
}

func ybounds(groups ...[]point) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, pts := range groups {
		for _, p := range pts {
			if p.y < min {
				min = p.y
			}
			if p.y > max {
				max = p.y
			}
		}
	}
	return min, max
}

// padded expands a y extent by a 5% margin on both sides, falling back to a
// unit margin for a flat series.
func padded(min, max float64) (float64, float64) {
	pad := (max - min) * 0.05
	if pad <= 0 {
		pad = 1
	}
	return min - pad, max + pad
}

// ticks labels every k-th observation across history and forecast. Fewer
// than two ticks falls back to the chart's automatic ticks.
func ticks(history, forecast []point, every int) []chart.Tick {
	if every <= 0 {
		every = 4
	}

	all := make([]point, 0, len(history)+len(forecast))
	all = append(all, history...)
	all = append(all, forecast...)
	sort.Slice(all, func(i, j int) bool { return all[i].x < all[j].x })

	var out []chart.Tick
	for i := 0; i < len(all); i += every {
		out = append(out, chart.Tick{Value: all[i].x, Label: all[i].label})
	}
	if len(out) < 2 {
		return nil
	}
	return out
}
