package series

import (
	"fmt"
	"math"
)

// ============================================================================
// INVALID-VALUE FILL ENGINE
// ============================================================================
// This package produces a cleaned copy of a numeric sequence: entries that
// are NaN are replaced according to a caller-selected fill policy, and a
// boolean mask records which entries were invalid in the original.
//
// Valid entries are never modified, outputs are fresh allocations, and the
// mask depends on y alone (never on x or on the policy).
// ============================================================================

// Interpolator is the external one-dimensional interpolation primitive
// used by the interpolation policies. Implementations fit the named
// kernel to the sample points and evaluate it at each query coordinate.
// Failures (for example too few sample points for the kernel) are the
// primitive's own; the fill engine propagates them unchanged.
type Interpolator interface {
	Interpolate(sampleX, sampleY, queryX []float64, kernel Kernel) ([]float64, error)
}

// Result carries a filled copy of the input sequence together with the
// mask of originally invalid positions. Both slices have the input's length.
type Result struct {
	Filled  []float64
	Invalid []bool
}

// Filler replaces invalid (NaN) entries of a sequence according to a
// fill policy. It holds no mutable state and is safe for concurrent use.
type Filler struct {
	interp Interpolator
}

// NewFiller creates a fill engine backed by the given interpolation primitive.
func NewFiller(interp Interpolator) *Filler {
	return &Filler{interp: interp}
}

// InvalidMask reports which entries of y are invalid. An entry is
// invalid iff it is NaN; NaN never compares equal to itself, so the
// test goes through math.IsNaN rather than equality.
func InvalidMask(y []float64) []bool {
	mask := make([]bool, len(y))
	for i, v := range y {
		mask[i] = math.IsNaN(v)
	}
	return mask
}

// Fill accepts the positional call shapes
//
//	Fill(y)
//	Fill(y, policySpec)
//	Fill(x, y)
//	Fill(x, y, policySpec)
//
// where x and y are []float64 and policySpec is a method tag string, a
// numeric scalar, or a FillPolicy. When x is omitted it defaults to the
// index sequence 1..len(y); when the policy is omitted it defaults to
// linear interpolation. A two-argument call is disambiguated by the
// runtime kind of the second argument: a tag or scalar is a policy
// specifier (so the first argument is y), a second sequence makes the
// first argument x. Argument counts outside [1,3] fail with *ArityError.
//
// Go callers with both sequences in hand should prefer FillSeries,
// which expresses the same operation without runtime type inspection.
func (f *Filler) Fill(args ...interface{}) (*Result, error) {
	x, y, policy, err := resolveArgs(args)
	if err != nil {
		return nil, err
	}
	return f.FillSeries(x, y, policy)
}

// FillSeries fills invalid entries of y per policy. A nil x defaults to
// the index sequence 1..len(y). x and y must have equal length when an
// interpolation policy is selected; other policies never read x.
func (f *Filler) FillSeries(x, y []float64, policy FillPolicy) (*Result, error) {
	if x == nil {
		x = indexSequence(len(y))
	}
	// The mask is computed exactly once, before dispatch, and returned
	// unchanged regardless of policy.
	mask := InvalidMask(y)
	filled, err := f.dispatch(x, y, mask, policy)
	if err != nil {
		return nil, err
	}
	return &Result{Filled: filled, Invalid: mask}, nil
}

// resolveArgs normalizes a 1-3 argument positional call into the
// canonical (x, y, policy) triple.
func resolveArgs(args []interface{}) ([]float64, []float64, FillPolicy, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, nil, FillPolicy{}, &ArityError{Count: len(args)}
	}

	first, ok := args[0].([]float64)
	if !ok {
		return nil, nil, FillPolicy{}, fmt.Errorf("series: first argument must be []float64, got %T", args[0])
	}

	switch len(args) {
	case 1:
		return nil, first, DefaultPolicy(), nil

	case 2:
		// A second sequence means (x, y); anything scalar-like is a
		// policy specifier and the first argument is y.
		if second, ok := args[1].([]float64); ok {
			return first, second, DefaultPolicy(), nil
		}
		policy, err := ParsePolicy(args[1])
		if err != nil {
			return nil, nil, FillPolicy{}, err
		}
		return nil, first, policy, nil

	default: // 3
		second, ok := args[1].([]float64)
		if !ok {
			return nil, nil, FillPolicy{}, fmt.Errorf("series: second argument must be []float64 in a three-argument call, got %T", args[1])
		}
		policy, err := ParsePolicy(args[2])
		if err != nil {
			return nil, nil, FillPolicy{}, err
		}
		return first, second, policy, nil
	}
}

func (f *Filler) dispatch(x, y []float64, mask []bool, policy FillPolicy) ([]float64, error) {
	switch policy.mode {
	case modeNone:
		return copyOf(y), nil

	case modeConstant:
		filled := copyOf(y)
		for i, bad := range mask {
			if bad {
				filled[i] = policy.constant
			}
		}
		return filled, nil

	case modePrevious:
		return fillAdjacent(y, mask, true), nil

	case modeNext:
		return fillAdjacent(y, mask, false), nil

	case modeInterpolate:
		return f.fillInterpolated(x, y, mask, policy.kernel)

	default:
		return nil, fmt.Errorf("series: fill policy is the zero value; use a FillPolicy constructor")
	}
}

// fillAdjacent fills each gap strictly between two consecutive valid
// samples with one of the bracketing valid values: the earlier one for
// carry-previous, the later one for carry-next. Invalid runs before the
// first valid sample or after the last one stay NaN; neither policy
// extrapolates past the valid range. With fewer than two valid samples
// there is no bracketing pair and nothing is filled.
func fillAdjacent(y []float64, mask []bool, carryPrevious bool) []float64 {
	filled := copyOf(y)
	valid := validIndices(mask)
	for k := 0; k+1 < len(valid); k++ {
		lo, hi := valid[k], valid[k+1]
		value := filled[lo]
		if !carryPrevious {
			value = filled[hi]
		}
		for i := lo + 1; i < hi; i++ {
			filled[i] = value
		}
	}
	return filled
}

// fillInterpolated replaces invalid entries with kernel evaluations over
// the valid subset: valid (x, y) pairs are the samples, the x coordinates
// of invalid positions are the query points.
func (f *Filler) fillInterpolated(x, y []float64, mask []bool, kernel Kernel) ([]float64, error) {
	if len(x) != len(y) {
		return nil, &DimensionError{XLen: len(x), YLen: len(y)}
	}

	filled := copyOf(y)

	var sampleX, sampleY, queryX []float64
	var holes []int
	for i, bad := range mask {
		if bad {
			queryX = append(queryX, x[i])
			holes = append(holes, i)
		} else {
			sampleX = append(sampleX, x[i])
			sampleY = append(sampleY, y[i])
		}
	}

	if len(holes) == 0 {
		return filled, nil
	}

	values, err := f.interp.Interpolate(sampleX, sampleY, queryX, kernel)
	if err != nil {
		// The primitive's failure semantics are the contract; no wrapping.
		return nil, err
	}

	for k, i := range holes {
		filled[i] = values[k]
	}
	return filled, nil
}

// validIndices returns the positions where mask is false, in increasing order.
func validIndices(mask []bool) []int {
	valid := make([]int, 0, len(mask))
	for i, bad := range mask {
		if !bad {
			valid = append(valid, i)
		}
	}
	return valid
}

// indexSequence returns the default sample coordinates 1..n.
func indexSequence(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs
}

func copyOf(y []float64) []float64 {
	out := make([]float64, len(y))
	copy(out, y)
	return out
}
