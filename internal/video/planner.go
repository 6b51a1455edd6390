package video

import "fmt"

// Plan computes n evenly spaced sample timestamps for a video of the given
// duration (seconds). The duration is divided into n+1 equal segments and a
// timestamp is placed at each interior boundary:
//
//	timestamp[i] = duration * (i+1) / (n+1)
//
// so no sample falls at time zero (often a black frame) or at the exact end
// (possibly past the last decodable frame). The result has exactly n strictly
// increasing timestamps inside (0, duration).
func Plan(duration float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d cells requested", ErrEmptyGrid, n)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %.3fs", ErrInvalidDuration, duration)
	}

	step := duration / float64(n+1)
	plan := make([]float64, n)
	for i := range plan {
		plan[i] = step * float64(i+1)
	}
	return plan, nil
}
