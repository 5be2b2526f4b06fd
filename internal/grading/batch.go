package grading

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// GradeBatch grades subs against the same definition concurrently and
// returns the results in input order. It fails as a whole if the test is
// empty or ctx is cancelled; invalid choices stay per-result.
func GradeBatch(ctx context.Context, def Definition, subs []Submission, cfg Config) ([]*Result, error) {
	if len(def.Questions) == 0 {
		return nil, fmt.Errorf("grade test %d: %w", def.Test.ID, ErrEmptyTest)
	}

	results := make([]*Result, len(subs))
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}

	for i, sub := range subs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := GradeSubmission(def, sub)
			if err != nil {
				return fmt.Errorf("submission %d (user %d): %w", i, sub.UserID, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
