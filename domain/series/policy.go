package series

import (
	"fmt"
	"strings"
)

// Kernel names an interpolation method of the external one-dimensional
// interpolation primitive.
type Kernel string

const (
	KernelNearest Kernel = "nearest" // nearest-neighbor
	KernelLinear  Kernel = "linear"  // piecewise linear
	KernelSpline  Kernel = "spline"  // natural cubic spline
	KernelPchip   Kernel = "pchip"   // monotone (shape-preserving) cubic
	KernelCubic   Kernel = "cubic"   // piecewise cubic (Akima)
)

type fillMode int

const (
	modeNone fillMode = iota
	modePrevious
	modeNext
	modeConstant
	modeInterpolate
)

// FillPolicy selects how invalid entries of a sequence are replaced.
// It is a closed sum type: construct values with NoFill, CarryPrevious,
// CarryNext, Constant or Interpolate, or parse a caller-supplied
// specifier with ParsePolicy. The zero value is not a valid policy.
type FillPolicy struct {
	mode     fillMode
	constant float64
	kernel   Kernel
}

// NoFill leaves the sequence untouched; only the invalid mask is computed.
func NoFill() FillPolicy { return FillPolicy{mode: modeNone} }

// CarryPrevious fills each interior gap with the valid value before it.
func CarryPrevious() FillPolicy { return FillPolicy{mode: modePrevious} }

// CarryNext fills each interior gap with the valid value after it.
func CarryNext() FillPolicy { return FillPolicy{mode: modeNext} }

// Constant fills every invalid entry with the scalar v.
func Constant(v float64) FillPolicy { return FillPolicy{mode: modeConstant, constant: v} }

// Interpolate fills invalid entries by evaluating the named kernel of
// the interpolation primitive over the valid samples.
func Interpolate(k Kernel) FillPolicy { return FillPolicy{mode: modeInterpolate, kernel: k} }

// DefaultPolicy is linear interpolation, used when no policy specifier is given.
func DefaultPolicy() FillPolicy { return Interpolate(KernelLinear) }

// IsInterpolation reports whether the policy consults the interpolation primitive.
func (p FillPolicy) IsInterpolation() bool { return p.mode == modeInterpolate }

// Kernel returns the interpolation kernel; empty for non-interpolation policies.
func (p FillPolicy) Kernel() Kernel { return p.kernel }

// String returns the policy tag, or constant(v) for scalar fills.
func (p FillPolicy) String() string {
	switch p.mode {
	case modeNone:
		return "none"
	case modePrevious:
		return "previous"
	case modeNext:
		return "next"
	case modeConstant:
		return fmt.Sprintf("constant(%g)", p.constant)
	case modeInterpolate:
		return string(p.kernel)
	default:
		return "invalid"
	}
}

// ParsePolicy interprets a caller-supplied policy specifier: a method
// tag string (matched case-insensitively), or a numeric scalar used as
// a constant fill value. A FillPolicy passes through unchanged. Any
// unrecognized string fails with *InvalidMethodError; strings are never
// reinterpreted as numbers, so a numeric-looking tag cannot collide
// with a scalar fill.
func ParsePolicy(spec interface{}) (FillPolicy, error) {
	switch v := spec.(type) {
	case FillPolicy:
		return v, nil
	case string:
		return parseMethodTag(v)
	case float64:
		return Constant(v), nil
	case float32:
		return Constant(float64(v)), nil
	case int:
		return Constant(float64(v)), nil
	case int32:
		return Constant(float64(v)), nil
	case int64:
		return Constant(float64(v)), nil
	default:
		return FillPolicy{}, fmt.Errorf("series: policy specifier must be a method tag or a numeric scalar, got %T", spec)
	}
}

func parseMethodTag(tag string) (FillPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "none":
		return NoFill(), nil
	case "previous":
		return CarryPrevious(), nil
	case "next":
		return CarryNext(), nil
	case "nearest":
		return Interpolate(KernelNearest), nil
	case "linear":
		return Interpolate(KernelLinear), nil
	case "spline":
		return Interpolate(KernelSpline), nil
	case "pchip":
		return Interpolate(KernelPchip), nil
	case "cubic":
		return Interpolate(KernelCubic), nil
	default:
		return FillPolicy{}, &InvalidMethodError{Method: tag}
	}
}
