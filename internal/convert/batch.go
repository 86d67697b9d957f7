package convert

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tokenlistConverter/internal/model"
)

// Result is the outcome of converting one source in a batch.
type Result struct {
	Source string
	List   model.TargetList
	Err    error
}

// ConvertBatch converts each source independently, at most concurrency at a
// time. Results keep the order of sources; a failed source never stops the rest.
// A positive timeout bounds each source's run through its context.
func (c *Converter) ConvertBatch(ctx context.Context, sources []string, concurrency int, timeout time.Duration) ([]Result, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]Result, len(sources))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, source := range sources {
		i, source := i, source
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			runCtx, cancel := withTimeout(groupCtx, timeout)
			defer cancel()
			list, err := c.Convert(runCtx, source)
			if err != nil {
				c.logger.Error("conversion aborted", zap.String("source", source), zap.Error(err))
			}
			results[i] = Result{Source: source, List: list, Err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
