package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round up", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"Large negative", -12345.678, -12345.68},
		{"Binary midpoint rounds on decimal form", 1.005, 1.01},
		{"Float subtraction noise", 2204.7400000000002, 2204.74},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if result != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundNonFinite(t *testing.T) {
	if got := Round(math.NaN()); !math.IsNaN(got) {
		t.Errorf("Round(NaN) = %v, expected NaN", got)
	}
	if got := Round(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("Round(+Inf) = %v, expected +Inf", got)
	}
	if got := Round(math.Inf(-1)); !math.IsInf(got, -1) {
		t.Errorf("Round(-Inf) = %v, expected -Inf", got)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Zero", 0, true},
		{"Positive", 1288.37, true},
		{"Negative", -42, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsFinite(tt.input); result != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Just below negative tolerance", -0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Large positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      float64
		tolerance float64
		expected  bool
	}{
		{"Equal values", 100, 100, 0.01, true},
		{"Within one cent", 100.004, 100, 0.01, true},
		{"Outside one cent", 100.02, 100, 0.01, false},
		{"Wide tolerance", 240000, 240003.5, 3.61, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := WithinTolerance(tt.a, tt.b, tt.tolerance); result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestPercentToRate(t *testing.T) {
	tests := []struct {
		name           string
		annualPercent  float64
		periodsPerYear int
		expected       float64
	}{
		{"Monthly", 6.0, 12, 0.005},
		{"Annual", 5.0, 1, 0.05},
		{"Zero rate", 0, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentToRate(tt.annualPercent, tt.periodsPerYear)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("PercentToRate() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
