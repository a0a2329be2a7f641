package telemetry

import (
	"math"
	"testing"
)

func TestComputeSeriesStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, p50, p90, max := computeSeriesStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if p50 < 5 || p50 > 6 {
		t.Errorf("p50 = %v, want within [5, 6]", p50)
	}
	if p90 < p50 {
		t.Errorf("p90 %v below p50 %v", p90, p50)
	}
	if p90 < 8.5 || p90 > 10 {
		t.Errorf("p90 = %v, want within [8.5, 10]", p90)
	}
	if max != 10 {
		t.Errorf("max = %v, want 10", max)
	}
}

func TestComputeSeriesStatsUnsortedInput(t *testing.T) {
	a, _, _, maxA := computeSeriesStats([]float64{3, 1, 2})
	b, _, _, maxB := computeSeriesStats([]float64{1, 2, 3})

	if a != b || maxA != maxB {
		t.Error("stats must not depend on sample order")
	}
}

func TestComputeSeriesStatsEmpty(t *testing.T) {
	mean, p50, p90, max := computeSeriesStats(nil)
	if mean != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty series should return all zeros")
	}
}
