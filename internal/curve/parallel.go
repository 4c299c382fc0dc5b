package curve

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/xtding233/payout-engine/internal/contract"
)

// minSpan keeps tiny domains on a single goroutine.
const minSpan = 1 << 10

// ComputeRangesParallel returns the same ranges as ComputeRanges, splitting
// the outcome domain into contiguous spans scanned concurrently. workers <= 0
// uses GOMAXPROCS. When several spans fail, the error of the lowest span is
// returned, matching what a sequential scan would report.
func ComputeRangesParallel(ctx context.Context, c contract.PayoutCurve, ri contract.RoundingIntervals, totalCollateral, lastOutcome int64, workers int) ([]contract.RangePayout, error) {
	if err := validateScan(c, totalCollateral, lastOutcome); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spans := partition(lastOutcome+1, workers)

	results := make([][]contract.RangePayout, len(spans))
	errs := make([]error, len(spans))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range spans {
		i, s := i, s
		g.Go(func() error {
			r, err := computeSpan(gctx, c, ri, totalCollateral, s.first, s.last)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				errs[i] = err
				return nil
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return mergeRanges(results), nil
}

type span struct{ first, last int64 }

// partition splits [0, n) into at most workers contiguous spans.
func partition(n int64, workers int) []span {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if limit := n / minSpan; int64(workers) > limit {
		workers = int(limit)
	}
	if workers < 1 {
		workers = 1
	}
	size := n / int64(workers)
	rem := n % int64(workers)
	spans := make([]span, 0, workers)
	var start int64
	for i := 0; i < workers; i++ {
		length := size
		if int64(i) < rem {
			length++
		}
		spans = append(spans, span{first: start, last: start + length - 1})
		start += length
	}
	return spans
}
