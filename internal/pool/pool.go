// Package pool aggregates records from multiple browse strategies into
// one deduplicated, capped set.
package pool

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/iconick/hiddengems/internal/core"
)

// One goroutine per strategy is enough; the strategy list is tiny.
const maxConcurrency = 4

// Querier issues one upstream registry query.
type Querier interface {
	Query(ctx context.Context, q core.QueryRequest) ([]core.Record, error)
}

// Aggregator merges the results of several browse strategies.
type Aggregator struct {
	querier Querier
	log     *zap.Logger
}

// New creates an Aggregator. A nil logger disables logging.
func New(q Querier, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{querier: q, log: log}
}

// Aggregate issues one query per strategy, merges the results in strategy
// order, drops records whose identifier was already seen, and stops once
// capacity unique records are collected. Queries run concurrently and the
// merge waits for every one to settle.
//
// If every strategy fails, the aggregate fails as a whole. If any strategy
// returns records, the partial set wins over a hard failure: 300 records
// are strictly more useful to a discovery page than an error. Partial
// failures are logged, not surfaced.
func (a *Aggregator) Aggregate(ctx context.Context, strategies []core.Strategy, perPage, capacity int) ([]core.Record, error) {
	if len(strategies) == 0 {
		return nil, nil
	}

	type outcome struct {
		records []core.Record
		err     error
	}
	outcomes := make([]outcome, len(strategies))

	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup
	for i, s := range strategies {
		wg.Add(1)
		go func(i int, s core.Strategy) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			records, err := a.querier.Query(ctx, core.QueryRequest{
				Browse:  s,
				PerPage: perPage,
			})
			outcomes[i] = outcome{records: records, err: err}
		}(i, s)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	var merged []core.Record
	var failures []error

merge:
	for i, out := range outcomes {
		if out.err != nil {
			failures = append(failures, out.err)
			a.log.Warn("strategy query failed",
				zap.String("strategy", string(strategies[i])),
				zap.Error(out.err))
			continue
		}
		for _, rec := range out.records {
			if rec.Identifier == "" {
				continue
			}
			if _, dup := seen[rec.Identifier]; dup {
				continue
			}
			if capacity > 0 && len(merged) >= capacity {
				break merge
			}
			seen[rec.Identifier] = struct{}{}
			merged = append(merged, rec)
		}
	}

	if len(failures) == len(strategies) {
		return nil, allFailed(failures)
	}
	return merged, nil
}

// allFailed collapses the per-strategy failures into one pipeline failure,
// distinguishing a dead upstream from a garbled one. A transient kind
// wins so the caller keeps its retry affordance.
func allFailed(failures []error) error {
	kind := core.UpstreamMalformed
	for _, err := range failures {
		if f, ok := core.AsFailure(err); ok {
			if f.Retryable {
				kind = f.Kind
				break
			}
		} else {
			kind = core.UpstreamUnavailable
		}
	}
	return core.NewFailure(kind, "all browse strategies failed", errors.Join(failures...))
}
