package video

import (
	"errors"
	"math"
	"testing"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		n        int
		want     []float64
		wantErr  error
	}{
		{
			name:     "Six cells over two minutes",
			duration: 120,
			n:        6,
			want:     []float64{120.0 / 7, 240.0 / 7, 360.0 / 7, 480.0 / 7, 600.0 / 7, 720.0 / 7},
		},
		{
			name:     "Single cell lands at midpoint",
			duration: 10,
			n:        1,
			want:     []float64{5},
		},
		{
			name:     "Tiny duration still plans",
			duration: 0.5,
			n:        2,
			want:     []float64{0.5 / 3, 1.0 / 3},
		},
		{
			name:     "Zero duration",
			duration: 0,
			n:        4,
			wantErr:  ErrInvalidDuration,
		},
		{
			name:     "Negative duration",
			duration: -3,
			n:        4,
			wantErr:  ErrInvalidDuration,
		},
		{
			name:     "Zero cells",
			duration: 60,
			n:        0,
			wantErr:  ErrEmptyGrid,
		},
		{
			name:     "Negative cells",
			duration: 60,
			n:        -1,
			wantErr:  ErrEmptyGrid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(tt.duration, tt.n)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Plan(%v, %d) error = %v, want %v", tt.duration, tt.n, err, tt.wantErr)
				}
				if got != nil {
					t.Errorf("Plan returned a plan alongside an error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Plan(%v, %d): %v", tt.duration, tt.n, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Plan returned %d timestamps, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("Plan[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestPlanInvariants checks the properties that must hold for any valid
// duration and grid size: exactly n timestamps, strictly increasing, all
// strictly inside (0, duration), evenly spaced.
func TestPlanInvariants(t *testing.T) {
	durations := []float64{0.04, 1, 59.9, 120, 7200}
	sizes := []int{1, 2, 6, 16, 100}

	for _, d := range durations {
		for _, n := range sizes {
			plan, err := Plan(d, n)
			if err != nil {
				t.Fatalf("Plan(%v, %d): %v", d, n, err)
			}
			if len(plan) != n {
				t.Fatalf("Plan(%v, %d) has %d timestamps", d, n, len(plan))
			}

			step := d / float64(n+1)
			prev := 0.0
			for i, ts := range plan {
				if ts <= 0 || ts >= d {
					t.Errorf("Plan(%v, %d)[%d] = %v outside (0, %v)", d, n, i, ts, d)
				}
				if ts <= prev {
					t.Errorf("Plan(%v, %d)[%d] = %v not strictly increasing", d, n, i, ts)
				}
				if i > 0 && math.Abs((ts-prev)-step) > 1e-9*d {
					t.Errorf("Plan(%v, %d)[%d] spacing = %v, want %v", d, n, i, ts-prev, step)
				}
				prev = ts
			}
		}
	}
}
