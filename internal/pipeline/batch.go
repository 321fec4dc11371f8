package pipeline

import (
	"context"

	"github.com/nao1215/geotags/internal/model"
	"github.com/nao1215/geotags/internal/walker"
	"golang.org/x/sync/errgroup"
)

// runConcurrent processes files with up to e.workers goroutines.
//
// The candidate list is collected first so the outcome slice can be
// pre-allocated; each goroutine writes only its own index, which keeps
// discovery order without locking.
func (e *Extractor) runConcurrent(ctx context.Context, ext *model.Extraction) error {
	var candidates []walker.Candidate
	for c, err := range e.walker.Candidates() {
		if err != nil {
			return err
		}
		candidates = append(candidates, c)
	}

	outcomes := make([]model.Outcome, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			outcomes[i] = e.Process(gctx, c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, out := range outcomes {
		ext.Add(out)
	}
	return nil
}
