package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/gomacrots/deviation"
)

// errModeConflict is returned when two mutually exclusive output-mode
// overrides are requested together.
var errModeConflict = errors.New("macroplot: --four-quarter and --untransformed are mutually exclusive")

// TransformKind selects which transform a variable goes through before
// plotting.
type TransformKind int

const (
	KindNone TransformKind = iota
	KindPerCapita
	KindReal
	KindRealPerCapita
	KindAnnualToQuarter
	KindPctChange
	KindRealPctChange
	KindPopGrowthAdjust
)

// ForecastMode selects which rendition of the transformed series is plotted.
type ForecastMode int

const (
	ModeStandard ForecastMode = iota
	ModeFourQuarter
	ModeUntransformed
)

// Config is the plot-job file. Column names for shared inputs (population,
// deflators, population growth) are resolved here once; the transforms
// receive already-resolved series.
type Config struct {
	Defaults  Defaults   `yaml:"defaults"`
	Mnemonics Mnemonics  `yaml:"mnemonics"`
	Variables []Variable `yaml:"variables"`
}

// Defaults apply to every variable unless overridden per entry.
type Defaults struct {
	Lambda    float64 `yaml:"lambda"`
	Scale     float64 `yaml:"scale"`
	TickEvery int     `yaml:"tick_every"`
	Legend    string  `yaml:"legend"` // "on" or "off"
}

// Mnemonics maps the roles the transforms need to column names in the data
// file.
type Mnemonics struct {
	Population     string `yaml:"population"`
	GDPDeflator    string `yaml:"gdp_deflator"`
	PCEDeflator    string `yaml:"pce_deflator"`
	PopGrowth      string `yaml:"pop_growth"`
	PopGrowthTrend string `yaml:"pop_growth_trend"`
}

// Variable is one chart to render.
type Variable struct {
	Column   string   `yaml:"column"`
	Title    string   `yaml:"title"`
	Unit     string   `yaml:"unit"`
	Kind     string   `yaml:"kind"`
	Deflator string   `yaml:"deflator"` // "gdp" (default) or "pce"
	Mode     string   `yaml:"mode"`
	Detrend  bool     `yaml:"detrend"`
	Lambda   *float64 `yaml:"lambda"`
	Scale    *float64 `yaml:"scale"`
}

// DefaultConfig returns a config with the conventional quarterly settings.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Lambda:    1600,
			Scale:     1.0,
			TickEvery: 4,
			Legend:    "on",
		},
		Mnemonics: Mnemonics{
			Population:     "population",
			GDPDeflator:    "gdp_deflator",
			PCEDeflator:    "pce_deflator",
			PopGrowth:      "pop_growth",
			PopGrowthTrend: "pop_growth_trend",
		},
	}
}

// LoadConfig reads a YAML plot-job file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("macroplot: parse config %s: %w", path, err)
	}
	if len(cfg.Variables) == 0 {
		return nil, fmt.Errorf("macroplot: config %s lists no variables", path)
	}
	return cfg, nil
}

// job is one fully-resolved plotting task: enumerated kinds and column names
// instead of config strings.
type job struct {
	column         string
	title          string
	unit           string
	kind           TransformKind
	mode           ForecastMode
	deflator       string
	population     string
	popGrowth      string
	popGrowthTrend string
	lambda         float64
	scale          float64
	detrend        bool
	tickEvery      int
	legend         deviation.LegendMode
}

// jobs resolves the config into plotting tasks. A non-nil override replaces
// every variable's mode (the CLI-level --four-quarter / --untransformed
// switches).
func (c *Config) jobs(override *ForecastMode) ([]job, error) {
	legend, err := parseLegend(c.Defaults.Legend)
	if err != nil {
		return nil, err
	}

	out := make([]job, 0, len(c.Variables))
	for _, v := range c.Variables {
		if v.Column == "" {
			return nil, errors.New("macroplot: variable entry without a column")
		}

		kind, err := parseKind(v.Kind)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Column, err)
		}
		mode, err := parseMode(v.Mode)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Column, err)
		}
		if override != nil {
			mode = *override
		}
		deflator, err := c.deflatorColumn(v.Deflator)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Column, err)
		}

		j := job{
			column:         v.Column,
			title:          v.Title,
			unit:           v.Unit,
			kind:           kind,
			mode:           mode,
			deflator:       deflator,
			population:     c.Mnemonics.Population,
			popGrowth:      c.Mnemonics.PopGrowth,
			popGrowthTrend: c.Mnemonics.PopGrowthTrend,
			lambda:         c.Defaults.Lambda,
			scale:          c.Defaults.Scale,
			detrend:        v.Detrend,
			tickEvery:      c.Defaults.TickEvery,
			legend:         legend,
		}
		if v.Lambda != nil {
			j.lambda = *v.Lambda
		}
		if v.Scale != nil {
			j.scale = *v.Scale
		}
		out = append(out, j)
	}
	return out, nil
}

// overrideMode folds the CLI mode switches into a single optional override.
// Requesting both is a configuration error, not a precedence choice.
func overrideMode(fourQuarter, untransformed bool) (*ForecastMode, error) {
	if fourQuarter && untransformed {
		return nil, errModeConflict
	}
	if fourQuarter {
		m := ModeFourQuarter
		return &m, nil
	}
	if untransformed {
		m := ModeUntransformed
		return &m, nil
	}
	return nil, nil
}

func parseKind(s string) (TransformKind, error) {
	switch s {
	case "", "none":
		return KindNone, nil
	case "percapita":
		return KindPerCapita, nil
	case "real":
		return KindReal, nil
	case "realpercapita":
		return KindRealPerCapita, nil
	case "annual_to_quarter":
		return KindAnnualToQuarter, nil
	case "pct_change":
		return KindPctChange, nil
	case "real_pct_change":
		return KindRealPctChange, nil
	case "pop_growth_adjust":
		return KindPopGrowthAdjust, nil
	}
	return 0, fmt.Errorf("macroplot: unknown transform kind %q", s)
}

func parseMode(s string) (ForecastMode, error) {
	switch s {
	case "", "standard":
		return ModeStandard, nil
	case "four_quarter":
		return ModeFourQuarter, nil
	case "untransformed":
		return ModeUntransformed, nil
	}
	return 0, fmt.Errorf("macroplot: unknown mode %q", s)
}

func parseLegend(s string) (deviation.LegendMode, error) {
	switch s {
	case "", "on":
		return deviation.LegendOn, nil
	case "off":
		return deviation.LegendOff, nil
	}
	return 0, fmt.Errorf("macroplot: unknown legend setting %q", s)
}

// deflatorColumn picks the configured deflator mnemonic for a variable.
func (c *Config) deflatorColumn(s string) (string, error) {
	switch s {
	case "", "gdp":
		return c.Mnemonics.GDPDeflator, nil
	case "pce":
		return c.Mnemonics.PCEDeflator, nil
	}
	return "", fmt.Errorf("macroplot: unknown deflator %q", s)
}
