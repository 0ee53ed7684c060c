package series

import "fmt"

// ArityError reports a positional call with an argument count outside [1,3].
type ArityError struct {
	Count int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("series: expected 1 to 3 arguments, got %d", e.Count)
}

// InvalidMethodError reports an unrecognized fill method tag.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("series: unknown fill method %q", e.Method)
}

// DimensionError reports mismatched x/y lengths when interpolation is requested.
type DimensionError struct {
	XLen int
	YLen int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("series: x and y must have equal length (x=%d, y=%d)", e.XLen, e.YLen)
}
