package ports

import (
	"gofill/domain/series"
)

// Interpolator is the one-dimensional interpolation primitive the fill
// engine delegates to for the nearest/linear/spline/pchip/cubic policies.
// The contract itself lives with the fill engine; this alias names it at
// the adapter boundary.
type Interpolator = series.Interpolator
