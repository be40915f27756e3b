package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sartorproj/gomacrots/deviation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plots.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Defaults.Lambda != 1600 {
		t.Errorf("Expected default lambda 1600, got %f", cfg.Defaults.Lambda)
	}
	if cfg.Defaults.Scale != 1.0 {
		t.Errorf("Expected default scale 1.0, got %f", cfg.Defaults.Scale)
	}
	if cfg.Defaults.TickEvery != 4 {
		t.Errorf("Expected default tick_every 4, got %d", cfg.Defaults.TickEvery)
	}
	if cfg.Defaults.Legend != "on" {
		t.Errorf("Expected default legend on, got %q", cfg.Defaults.Legend)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
defaults:
  lambda: 100
  legend: off
mnemonics:
  population: POP
  pce_deflator: PPCE
variables:
  - column: GDP
    title: Real GDP per capita
    unit: thousands of dollars
    kind: realpercapita
    deflator: pce
    detrend: true
    scale: 1000
  - column: CPI
    kind: pct_change
    mode: four_quarter
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Explicit values override defaults, absent keys keep them
	if cfg.Defaults.Lambda != 100 {
		t.Errorf("Expected lambda 100, got %f", cfg.Defaults.Lambda)
	}
	if cfg.Defaults.TickEvery != 4 {
		t.Errorf("Expected tick_every default 4, got %d", cfg.Defaults.TickEvery)
	}
	if cfg.Mnemonics.Population != "POP" {
		t.Errorf("Expected population mnemonic POP, got %q", cfg.Mnemonics.Population)
	}
	if cfg.Mnemonics.GDPDeflator != "gdp_deflator" {
		t.Errorf("Expected gdp_deflator mnemonic default, got %q", cfg.Mnemonics.GDPDeflator)
	}

	jobs, err := cfg.jobs(nil)
	if err != nil {
		t.Fatalf("Failed to resolve jobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(jobs))
	}

	gdp := jobs[0]
	if gdp.kind != KindRealPerCapita {
		t.Errorf("Expected kind realpercapita, got %d", gdp.kind)
	}
	if gdp.deflator != "PPCE" {
		t.Errorf("Expected PCE deflator column PPCE, got %q", gdp.deflator)
	}
	if gdp.scale != 1000 {
		t.Errorf("Expected scale override 1000, got %f", gdp.scale)
	}
	if gdp.lambda != 100 {
		t.Errorf("Expected lambda 100 from defaults, got %f", gdp.lambda)
	}
	if !gdp.detrend {
		t.Errorf("Expected detrend true")
	}
	if gdp.legend != deviation.LegendOff {
		t.Errorf("Expected legend off")
	}

	cpi := jobs[1]
	if cpi.kind != KindPctChange || cpi.mode != ModeFourQuarter {
		t.Errorf("Expected pct_change/four_quarter, got %d/%d", cpi.kind, cpi.mode)
	}
	if cpi.scale != 1.0 {
		t.Errorf("Expected default scale 1.0, got %f", cpi.scale)
	}
}

func TestLoadConfigNoVariables(t *testing.T) {
	path := writeConfig(t, "defaults:\n  lambda: 1600\n")
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("Expected error for config without variables, got nil")
	}
}

func TestLoadConfigBadKind(t *testing.T) {
	path := writeConfig(t, `
variables:
  - column: GDP
    kind: quadratic
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if _, err := cfg.jobs(nil); err == nil {
		t.Errorf("Expected error for unknown kind, got nil")
	}
}

func TestJobsModeOverride(t *testing.T) {
	path := writeConfig(t, `
variables:
  - column: GDP
    mode: standard
  - column: CPI
    mode: four_quarter
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	override := ModeUntransformed
	jobs, err := cfg.jobs(&override)
	if err != nil {
		t.Fatalf("Failed to resolve jobs: %v", err)
	}
	for _, j := range jobs {
		if j.mode != ModeUntransformed {
			t.Errorf("Expected override mode for %q, got %d", j.column, j.mode)
		}
	}
}

func TestOverrideMode(t *testing.T) {
	if _, err := overrideMode(true, true); !errors.Is(err, errModeConflict) {
		t.Errorf("Expected errModeConflict, got %v", err)
	}

	m, err := overrideMode(true, false)
	if err != nil || m == nil || *m != ModeFourQuarter {
		t.Errorf("Expected four-quarter override, got %v (%v)", m, err)
	}

	m, err = overrideMode(false, true)
	if err != nil || m == nil || *m != ModeUntransformed {
		t.Errorf("Expected untransformed override, got %v (%v)", m, err)
	}

	m, err = overrideMode(false, false)
	if err != nil || m != nil {
		t.Errorf("Expected no override, got %v (%v)", m, err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want TransformKind
		ok   bool
	}{
		{"", KindNone, true},
		{"none", KindNone, true},
		{"percapita", KindPerCapita, true},
		{"real", KindReal, true},
		{"realpercapita", KindRealPerCapita, true},
		{"annual_to_quarter", KindAnnualToQuarter, true},
		{"pct_change", KindPctChange, true},
		{"real_pct_change", KindRealPctChange, true},
		{"pop_growth_adjust", KindPopGrowthAdjust, true},
		{"quadratic", 0, false},
	}

	for _, tt := range tests {
		got, err := parseKind(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("parseKind(%q): expected %d, got %d (%v)", tt.in, tt.want, got, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("parseKind(%q): expected error, got %d", tt.in, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := parseMode(""); err != nil || m != ModeStandard {
		t.Errorf("Expected standard for empty mode, got %d (%v)", m, err)
	}
	if _, err := parseMode("sideways"); err == nil {
		t.Errorf("Expected error for unknown mode")
	}
}

func TestDeflatorColumn(t *testing.T) {
	cfg := DefaultConfig()

	col, err := cfg.deflatorColumn("")
	if err != nil || col != "gdp_deflator" {
		t.Errorf("Expected gdp_deflator default, got %q (%v)", col, err)
	}
	col, err = cfg.deflatorColumn("pce")
	if err != nil || col != "pce_deflator" {
		t.Errorf("Expected pce_deflator, got %q (%v)", col, err)
	}
	if _, err := cfg.deflatorColumn("cpi"); err == nil {
		t.Errorf("Expected error for unknown deflator")
	}
}
