package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"gofill/domain/series"
	"gofill/internal/profile"
	"gofill/ports"
)

// FillService orchestrates fill requests: policy parsing, the fill
// engine, profiling, and concurrency-bounded batch execution.
type FillService struct {
	filler *series.Filler

	// Weighted semaphore bounds how many series a batch fills at once
	batchSem *semaphore.Weighted
}

// NewFillService creates the fill orchestration service.
func NewFillService(interp ports.Interpolator, maxConcurrent int) *FillService {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &FillService{
		filler:   series.NewFiller(interp),
		batchSem: semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// FillOne fills a single sequence. policySpec may be nil (defaults to
// linear interpolation), a method tag string, a numeric scalar, or a
// series.FillPolicy. A nil x defaults to the index sequence 1..len(y).
func (s *FillService) FillOne(x, y []float64, policySpec interface{}) (*series.Result, error) {
	policy := series.DefaultPolicy()
	if policySpec != nil {
		parsed, err := series.ParsePolicy(policySpec)
		if err != nil {
			return nil, err
		}
		policy = parsed
	}
	return s.filler.FillSeries(x, y, policy)
}

// Profile computes the gap/summary profile of a sequence.
func (s *FillService) Profile(y []float64) (*profile.SeriesProfile, error) {
	return profile.Analyze(y)
}

// BatchItem is one sequence of a batch fill request.
type BatchItem struct {
	Name       string
	X          []float64
	Y          []float64
	PolicySpec interface{}
}

// BatchResult is the per-item outcome of a batch fill. Exactly one of
// Result and Err is set.
type BatchResult struct {
	Name   string
	Result *series.Result
	Err    error
}

// FillBatch fills every item with at most maxConcurrent series in
// flight. Failures are reported per item; one bad series does not abort
// the rest. The context aborts acquisition of further slots only:
// series already being filled run to completion and are waited for
// before the error returns.
func (s *FillService) FillBatch(ctx context.Context, items []BatchItem) ([]BatchResult, error) {
	results := make([]BatchResult, len(items))
	var wg sync.WaitGroup

	for i, item := range items {
		if err := s.batchSem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, item BatchItem) {
			defer wg.Done()
			defer s.batchSem.Release(1)

			res, err := s.FillOne(item.X, item.Y, item.PolicySpec)
			results[i] = BatchResult{Name: item.Name, Result: res, Err: err}
		}(i, item)
	}

	wg.Wait()
	return results, nil
}
