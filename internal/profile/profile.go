package profile

import (
	"github.com/montanaflynn/stats"

	"gofill/domain/series"
)

// SeriesProfile describes one numeric sequence before cleaning: how much
// of it is missing, how the gaps are laid out, and summary statistics of
// the valid subset.
type SeriesProfile struct {
	Length  int           `json:"length"`
	Gapping GapStats      `json:"gaps"`
	Summary *SummaryStats `json:"summary,omitempty"` // nil when no valid entries exist
}

// GapStats captures the missing-data topology of a sequence. A gap is a
// maximal run of invalid entries; a valid run is the complement.
type GapStats struct {
	MissingCount int     `json:"missing_count"`
	MissingRate  float64 `json:"missing_rate"`
	ValidRuns    int     `json:"valid_runs"`
	Gaps         int     `json:"gap_count"`
	LongestGap   int     `json:"longest_gap"`
	LeadingGap   int     `json:"leading_gap"`
	TrailingGap  int     `json:"trailing_gap"`
}

// SummaryStats holds summary statistics over valid entries only.
type SummaryStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Analyze profiles a sequence: gap topology from the invalid mask plus
// summary statistics over the valid subset. Interior gaps vs leading or
// trailing ones matter to callers because the carry policies fill only
// interior gaps.
func Analyze(y []float64) (*SeriesProfile, error) {
	mask := series.InvalidMask(y)

	p := &SeriesProfile{
		Length:  len(y),
		Gapping: gapStats(mask),
	}

	valid := make([]float64, 0, len(y))
	for i, v := range y {
		if !mask[i] {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return p, nil
	}

	summary, err := summarize(valid)
	if err != nil {
		return nil, err
	}
	p.Summary = summary
	return p, nil
}

// summarize computes summary statistics for the valid subset.
func summarize(valid []float64) (*SummaryStats, error) {
	mean, err := stats.Mean(valid)
	if err != nil {
		return nil, err
	}

	stdDev, err := stats.StandardDeviation(valid)
	if err != nil {
		return nil, err
	}

	min, err := stats.Min(valid)
	if err != nil {
		return nil, err
	}

	max, err := stats.Max(valid)
	if err != nil {
		return nil, err
	}

	median, err := stats.Median(valid)
	if err != nil {
		return nil, err
	}

	// Quartile handles small samples via median-of-halves, where
	// Percentile would reject anything shorter than four entries. A
	// single value is its own quartile.
	q25, q75 := valid[0], valid[0]
	if len(valid) > 1 {
		quartiles, err := stats.Quartile(valid)
		if err != nil {
			return nil, err
		}
		q25, q75 = quartiles.Q1, quartiles.Q3
	}

	return &SummaryStats{
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}, nil
}

// gapStats walks the mask run by run.
func gapStats(mask []bool) GapStats {
	g := GapStats{}
	n := len(mask)
	if n == 0 {
		return g
	}

	for i := 0; i < n; {
		j := i
		for j < n && mask[j] == mask[i] {
			j++
		}
		runLen := j - i
		if mask[i] {
			g.MissingCount += runLen
			g.Gaps++
			if runLen > g.LongestGap {
				g.LongestGap = runLen
			}
			if i == 0 {
				g.LeadingGap = runLen
			}
			if j == n {
				g.TrailingGap = runLen
			}
		} else {
			g.ValidRuns++
		}
		i = j
	}

	g.MissingRate = float64(g.MissingCount) / float64(n)
	return g
}
