package universe

import (
	"math"
	"testing"
	"time"
)

func TestStatsUpdate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStats(start)
	tests := []struct {
		after      time.Duration //since start
		population int
		rate       float64
		average    float64
	}{
		{500 * time.Millisecond, 10, 2, 10},
		{750 * time.Millisecond, 20, 4, 11},
		{750 * time.Millisecond, 0, 4, 9.9}, //no time passed, the rate is kept
		{850 * time.Millisecond, 0, 10, 8.91},
	}
	for i, tt := range tests {
		s.Update(tt.population, start.Add(tt.after))
		if math.Abs(s.GenerationsPerSecond-tt.rate) > 1e-9 {
			t.Errorf("update %v: generations/sec = %v, want %v", i, s.GenerationsPerSecond, tt.rate)
		}
		if math.Abs(s.AveragePopulation-tt.average) > 1e-9 {
			t.Errorf("update %v: average population = %v, want %v", i, s.AveragePopulation, tt.average)
		}
	}
	if !s.StartTime.Equal(start) {
		t.Errorf("start time changed to %v", s.StartTime)
	}
}
