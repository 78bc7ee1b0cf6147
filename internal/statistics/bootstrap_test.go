package statistics

import (
	"math"
	"testing"
)

func TestBootstrapCI_EmptyRates(t *testing.T) {
	ci := BootstrapCI(nil, 0.95)
	if ci.Mean != 0.0 || ci.Lower != 0.0 || ci.Upper != 0.0 {
		t.Errorf("expected zero CI for empty input, got %+v", ci)
	}
	if ci.NumBootstraps != 0 {
		t.Errorf("expected 0 bootstraps for empty input, got %d", ci.NumBootstraps)
	}
}

func TestBootstrapCI_SingleValue(t *testing.T) {
	ci := BootstrapCI([]float64{0.75}, 0.95)
	if ci.Mean != 0.75 || ci.Lower != 0.75 || ci.Upper != 0.75 {
		t.Errorf("expected degenerate CI for single value, got %+v", ci)
	}
}

func TestBootstrapCI_IdenticalValues(t *testing.T) {
	ci := BootstrapCIWithSeed([]float64{0.5, 0.5, 0.5, 0.5}, 0.95, 42)
	if math.Abs(ci.Lower-0.5) > 1e-9 || math.Abs(ci.Upper-0.5) > 1e-9 {
		t.Errorf("expected CI [0.5, 0.5] for identical values, got [%f, %f]", ci.Lower, ci.Upper)
	}
}

func TestBootstrapCI_KnownDistribution(t *testing.T) {
	// 10 retention rates with known mean 0.55
	rates := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	ci := BootstrapCIWithSeed(rates, 0.95, 42)

	if math.Abs(ci.Mean-0.55) > 1e-9 {
		t.Errorf("expected mean 0.55, got %f", ci.Mean)
	}
	if ci.Lower >= ci.Mean {
		t.Errorf("expected lower bound below mean, got lower=%f mean=%f", ci.Lower, ci.Mean)
	}
	if ci.Upper <= ci.Mean {
		t.Errorf("expected upper bound above mean, got upper=%f mean=%f", ci.Upper, ci.Mean)
	}
	if ci.NumBootstraps != DefaultBootstrapIterations {
		t.Errorf("expected %d bootstraps, got %d", DefaultBootstrapIterations, ci.NumBootstraps)
	}
}

func TestBootstrapCI_Reproducible(t *testing.T) {
	rates := []float64{0.3, 0.6, 0.9, 0.4, 0.8}
	a := BootstrapCIWithSeed(rates, 0.95, 7)
	b := BootstrapCIWithSeed(rates, 0.95, 7)
	if a != b {
		t.Errorf("same seed produced different intervals: %+v vs %+v", a, b)
	}
}

func TestIsSignificant(t *testing.T) {
	tests := []struct {
		name   string
		ci     ConfidenceInterval
		expect bool
	}{
		{"positive_interval", ConfidenceInterval{Lower: 0.1, Upper: 0.3}, true},
		{"negative_interval", ConfidenceInterval{Lower: -0.3, Upper: -0.1}, true},
		{"spans_zero", ConfidenceInterval{Lower: -0.1, Upper: 0.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSignificant(tt.ci); got != tt.expect {
				t.Errorf("IsSignificant(%+v) = %v, want %v", tt.ci, got, tt.expect)
			}
		})
	}
}
