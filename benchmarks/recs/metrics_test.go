// ABOUTME: Tests for the benchmark metric calculators
// ABOUTME: Verifies precision, recall, and MRR edge cases

package recs

import "testing"

func TestPrecisionAtK(t *testing.T) {
	m := NewMetricsCalculator()
	relevant := map[string]bool{"a": true, "b": true}

	tests := []struct {
		name   string
		ranked []string
		k      int
		want   float64
	}{
		{"all relevant", []string{"a", "b"}, 2, 1.0},
		{"half relevant", []string{"a", "x"}, 2, 0.5},
		{"none relevant", []string{"x", "y"}, 2, 0.0},
		{"k beyond results", []string{"a"}, 5, 1.0},
		{"empty ranking", nil, 3, 0.0},
		{"zero k", []string{"a"}, 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.PrecisionAtK(tt.ranked, relevant, tt.k)
			if got != tt.want {
				t.Errorf("PrecisionAtK = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecallAtK(t *testing.T) {
	m := NewMetricsCalculator()
	relevant := map[string]bool{"a": true, "b": true}

	if got := m.RecallAtK([]string{"a", "x", "b"}, relevant, 3); got != 1.0 {
		t.Errorf("full recall = %v, want 1.0", got)
	}
	if got := m.RecallAtK([]string{"a", "x"}, relevant, 2); got != 0.5 {
		t.Errorf("half recall = %v, want 0.5", got)
	}
	if got := m.RecallAtK([]string{"a", "b"}, map[string]bool{}, 2); got != 0.0 {
		t.Errorf("empty relevant set = %v, want 0.0", got)
	}
}

func TestMRR(t *testing.T) {
	m := NewMetricsCalculator()
	relevant := map[string]bool{"b": true}

	if got := m.MRR([]string{"b", "x"}, relevant); got != 1.0 {
		t.Errorf("first position MRR = %v, want 1.0", got)
	}
	if got := m.MRR([]string{"x", "b"}, relevant); got != 0.5 {
		t.Errorf("second position MRR = %v, want 0.5", got)
	}
	if got := m.MRR([]string{"x", "y"}, relevant); got != 0.0 {
		t.Errorf("absent MRR = %v, want 0.0", got)
	}
}

func TestRunnerScenarios(t *testing.T) {
	runner := NewBenchmarkRunner(false)

	report, err := runner.Run(nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Results) != len(Scenarios()) {
		t.Fatalf("expected %d results, got %d", len(Scenarios()), len(report.Results))
	}

	for _, result := range report.Results {
		if !result.Passed {
			t.Errorf("scenario %s failed: ranked=%v precision=%.2f recall=%.2f",
				result.ScenarioID, result.Ranked, result.Precision, result.Recall)
		}
	}
	if report.PassRate != 1.0 {
		t.Errorf("pass rate = %v, want 1.0", report.PassRate)
	}
}

func TestRunnerUnknownScenario(t *testing.T) {
	runner := NewBenchmarkRunner(false)
	if _, err := runner.Run([]string{"no-such-scenario"}); err == nil {
		t.Error("expected error for unknown scenario id")
	}
}
