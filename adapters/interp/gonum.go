package interp

import (
	"fmt"
	"sort"

	"gofill/domain/series"

	gonum "gonum.org/v1/gonum/interp"
)

// GonumInterpolator evaluates fill kernels with gonum's one-dimensional
// interpolation predictors. Kernel mapping:
//
//	nearest -> nearest-neighbor (local predictor; gonum has no nearest kernel)
//	linear  -> interp.PiecewiseLinear
//	spline  -> interp.NaturalCubic
//	pchip   -> interp.FritschButland
//	cubic   -> interp.AkimaSpline
type GonumInterpolator struct{}

// NewGonumInterpolator creates the gonum-backed interpolation adapter.
func NewGonumInterpolator() *GonumInterpolator {
	return &GonumInterpolator{}
}

// Interpolate fits the named kernel to the sample points and evaluates it
// at each query coordinate. Samples are sorted by x first: gonum predictors
// require strictly increasing abscissae, and duplicate coordinates are
// rejected with an error rather than letting gonum panic. Sample counts
// below the kernel's minimum are likewise turned into errors up front,
// since gonum's Fit panics on too few points instead of failing.
func (g *GonumInterpolator) Interpolate(sampleX, sampleY, queryX []float64, kernel series.Kernel) ([]float64, error) {
	if len(sampleX) != len(sampleY) {
		return nil, fmt.Errorf("interp: sample length mismatch (x=%d, y=%d)", len(sampleX), len(sampleY))
	}

	xs, ys, err := sortedSamples(sampleX, sampleY)
	if err != nil {
		return nil, err
	}

	predictor, minSamples, err := kernelPredictor(kernel)
	if err != nil {
		return nil, err
	}
	if len(xs) < minSamples {
		return nil, fmt.Errorf("interp: too few sample points for %s interpolation (have %d, need %d)",
			kernel, len(xs), minSamples)
	}

	if err := predictor.Fit(xs, ys); err != nil {
		return nil, err
	}

	values := make([]float64, len(queryX))
	for i, q := range queryX {
		values[i] = predictor.Predict(q)
	}
	return values, nil
}

// kernelPredictor returns the predictor for a kernel together with the
// smallest sample count its Fit accepts.
func kernelPredictor(kernel series.Kernel) (gonum.FittablePredictor, int, error) {
	switch kernel {
	case series.KernelNearest:
		return &nearestNeighbor{}, 1, nil
	case series.KernelLinear:
		return &gonum.PiecewiseLinear{}, 2, nil
	case series.KernelSpline:
		return &gonum.NaturalCubic{}, 2, nil
	case series.KernelPchip:
		return &gonum.FritschButland{}, 2, nil
	case series.KernelCubic:
		return &gonum.AkimaSpline{}, 2, nil
	default:
		return nil, 0, fmt.Errorf("interp: unsupported kernel %q", kernel)
	}
}

// sortedSamples copies the sample pairs and orders them by x coordinate.
func sortedSamples(sampleX, sampleY []float64) ([]float64, []float64, error) {
	xs := make([]float64, len(sampleX))
	ys := make([]float64, len(sampleY))
	copy(xs, sampleX)
	copy(ys, sampleY)

	sort.Sort(&xySamples{xs: xs, ys: ys})

	for i := 1; i < len(xs); i++ {
		if xs[i] == xs[i-1] {
			return nil, nil, fmt.Errorf("interp: duplicate sample coordinate %g", xs[i])
		}
	}
	return xs, ys, nil
}

// xySamples sorts x and y in lockstep by x.
type xySamples struct {
	xs, ys []float64
}

func (s *xySamples) Len() int           { return len(s.xs) }
func (s *xySamples) Less(i, j int) bool { return s.xs[i] < s.xs[j] }
func (s *xySamples) Swap(i, j int) {
	s.xs[i], s.xs[j] = s.xs[j], s.xs[i]
	s.ys[i], s.ys[j] = s.ys[j], s.ys[i]
}
