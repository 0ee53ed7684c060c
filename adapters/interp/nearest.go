package interp

import (
	"errors"
	"fmt"
	"sort"
)

// nearestNeighbor predicts the sample value whose x coordinate is closest
// to the query point. A query exactly at the midpoint of two samples
// resolves to the right-hand sample. Implements gonum's FittablePredictor
// contract so it slots into the same kernel table as the gonum predictors.
type nearestNeighbor struct {
	xs, ys []float64
}

// Fit stores the sample points. xs must be sorted in increasing order
// (the adapter sorts before fitting). One sample point is enough.
func (n *nearestNeighbor) Fit(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("interp: sample length mismatch (x=%d, y=%d)", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return errors.New("interp: too few points for nearest-neighbor interpolation")
	}
	n.xs = xs
	n.ys = ys
	return nil
}

// Predict returns the value of the nearest sample. Queries outside the
// sample range clamp to the boundary sample.
func (n *nearestNeighbor) Predict(x float64) float64 {
	i := sort.SearchFloat64s(n.xs, x) // first index with xs[i] >= x
	if i == 0 {
		return n.ys[0]
	}
	if i == len(n.xs) {
		return n.ys[len(n.ys)-1]
	}
	if x-n.xs[i-1] < n.xs[i]-x {
		return n.ys[i-1]
	}
	return n.ys[i]
}
