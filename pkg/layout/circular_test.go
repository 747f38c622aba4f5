package layout

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-math.Pi / 2, -math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > eps {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCircularDistance(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 1, 1},
		{math.Pi - 0.1, -math.Pi + 0.1, 0.2},
		{0, math.Pi, math.Pi},
		{0, 2 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := CircularDistance(tt.a, tt.b); math.Abs(got-tt.want) > eps {
			t.Errorf("CircularDistance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCircularMedian(t *testing.T) {
	tests := []struct {
		name    string
		angles  []float64
		weights []float64
		want    float64
	}{
		{"empty", nil, nil, 0},
		{"single", []float64{1.5}, nil, 1.5},
		{"cluster wins", []float64{0, 0.1, 3}, nil, 0.1},
		{"tie keeps first", []float64{1, 2}, nil, 1},
		{"weighted", []float64{0, 1}, []float64{1, 3}, 1},
		{"across the seam", []float64{math.Pi - 0.1, -math.Pi + 0.1, -math.Pi + 0.2}, nil, -math.Pi + 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CircularMedian(tt.angles, tt.weights); math.Abs(got-tt.want) > eps {
				t.Errorf("CircularMedian() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCircularMean(t *testing.T) {
	if got := CircularMean(nil, nil); got != 0 {
		t.Errorf("CircularMean(nil) = %v, want 0", got)
	}
	if got := CircularMean([]float64{0.2, 0.4}, nil); math.Abs(got-0.3) > 1e-6 {
		t.Errorf("CircularMean(0.2, 0.4) = %v, want 0.3", got)
	}
	got := CircularMean([]float64{math.Pi - 0.1, -math.Pi + 0.1}, nil)
	if math.Abs(math.Abs(got)-math.Pi) > 1e-6 {
		t.Errorf("CircularMean(across seam) = %v, want ±π", got)
	}
	if got := CircularMean([]float64{1, 2}, []float64{0, 0}); got != 0 {
		t.Errorf("CircularMean(zero weights) = %v, want 0", got)
	}
}
