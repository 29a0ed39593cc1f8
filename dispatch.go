package nslscan

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// progressInterval bounds how often dispatch progress is logged.
const progressInterval = 2 * time.Second

// dispatch computes the statistic of every site of m on a bounded pool of
// workers. Each site writes only its own slot of the pre-sized result, so
// the output is ordered by site index however the workers interleave.
//
// The first failing site cancels the remaining work and its error is
// returned; no partial result is produced.
func (s *Scanner) dispatch(ctx context.Context, m HaplotypeMatrix) ([]Statistic, error) {
	n := m.NumSites()
	out := make([]Statistic, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.workers)

	var done atomic.Int64
	progress := rate.Sometimes{Interval: progressInterval}
	logger := s.opts.logger.WithSites(n).WithWorkers(s.opts.workers)

	for site := 0; site < n; site++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			sums, err := pairwiseExtension(m, s.opts.geneticMap, site)
			if err != nil {
				return fmt.Errorf("core site %d: %w", site, err)
			}
			out[site] = sums.statistic()
			s.opts.metricsCollector.RecordSite(time.Since(start), sums.total())

			finished := done.Add(1)
			progress.Do(func() {
				logger.DebugContext(ctx, "dispatch progress", "done", finished)
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancellation observed before any task was scheduled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
