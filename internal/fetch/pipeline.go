package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"
)

// Source is what the pipeline needs from a market-data backend.
type Source interface {
	Name() string
	Fetch(ctx context.Context, ticker string) (map[string]string, error)
}

// Options configures a pipeline run. Zero fields take the defaults
// observed to be gentle enough for the upstream API.
type Options struct {
	BatchSize int
	Workers   int
	Cooldown  time.Duration
	Retry     RetryPolicy

	// FailureThreshold is the per-batch failure rate above which the
	// cooldown doubles and the worker count halves.
	FailureThreshold float64

	// MinUpdatedQuote is the fraction of tickers that must have fetched
	// successfully for the run to be considered commit-worthy.
	MinUpdatedQuote float64

	// sleep is injectable for tests; nil selects a context-aware sleep.
	sleep func(ctx context.Context, d time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = 40
	}
	if o.Workers <= 0 {
		o.Workers = 6
	}
	if o.Cooldown <= 0 {
		o.Cooldown = 3 * time.Second
	}
	if o.Retry.MaxAttempts <= 0 {
		o.Retry = DefaultRetryPolicy
	}
	if o.FailureThreshold <= 0 {
		o.FailureThreshold = 0.25
	}
	if o.MinUpdatedQuote <= 0 {
		o.MinUpdatedQuote = 0.80
	}
	if o.sleep == nil {
		o.sleep = sleepCtx
	}
	return o
}

// Result is the outcome of a pipeline run.
type Result struct {
	Updated map[string]map[string]string
	Failed  []string

	// Commit reports whether the success quote reached MinUpdatedQuote;
	// callers must not overwrite the table when it is false.
	Commit bool
}

// Pipeline runs batched, concurrency-bounded fetches with adaptive
// pacing: when a batch's failure rate crosses the threshold the
// inter-batch cooldown doubles and the worker pool halves; a clean
// batch ramps the pool back up by one.
type Pipeline struct {
	src Source
	opt Options

	maxWorkers int
	workers    int
	cooldown   time.Duration
}

// NewPipeline creates a pipeline over the given source.
func NewPipeline(src Source, opt Options) *Pipeline {
	opt = opt.withDefaults()
	return &Pipeline{
		src:        src,
		opt:        opt,
		maxWorkers: opt.Workers,
		workers:    opt.Workers,
		cooldown:   opt.Cooldown,
	}
}

// Run fetches all tickers and returns the per-ticker field maps. A
// ticker that exhausts its retries lands on the failed list; it never
// aborts the batch or the run. Only context cancellation stops the run
// early.
func (p *Pipeline) Run(ctx context.Context, tickers []string) (*Result, error) {
	res := &Result{Updated: make(map[string]map[string]string, len(tickers))}

	batches := chunk(tickers, p.opt.BatchSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		failed, err := p.runBatch(ctx, batch, res)
		if err != nil {
			return nil, err
		}

		rate := float64(failed) / float64(len(batch))
		p.adapt(rate)

		log.Info().
			Str("source", p.src.Name()).
			Int("batch", i+1).
			Int("batches", len(batches)).
			Int("failed", failed).
			Int("workers", p.workers).
			Dur("cooldown", p.cooldown).
			Msg("batch done")

		if i < len(batches)-1 {
			if err := p.opt.sleep(ctx, p.cooldown); err != nil {
				return nil, err
			}
		}
	}

	quote := 1.0
	if len(tickers) > 0 {
		quote = float64(len(res.Updated)) / float64(len(tickers))
	}
	res.Commit = quote >= p.opt.MinUpdatedQuote
	if !res.Commit {
		log.Warn().
			Float64("quote", quote).
			Float64("required", p.opt.MinUpdatedQuote).
			Msg("update quote below threshold, result not commit-worthy")
	}
	return res, nil
}

// runBatch fetches one batch with the current worker bound and returns
// the number of failed tickers.
func (p *Pipeline) runBatch(ctx context.Context, batch []string, res *Result) (int, error) {
	var mu sync.Mutex
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, ticker := range batch {
		g.Go(func() error {
			var fields map[string]string
			err := p.opt.Retry.Do(gctx, func(ctx context.Context) error {
				var ferr error
				fields, ferr = p.src.Fetch(ctx, ticker)
				return ferr
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn().Str("ticker", ticker).Err(err).Msg("fetch failed after retries")
				res.Failed = append(res.Failed, ticker)
				failed++
				return nil
			}
			res.Updated[ticker] = fields
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return failed, err
	}
	return failed, nil
}

// adapt adjusts cooldown and concurrency from the last batch's failure
// rate.
func (p *Pipeline) adapt(failureRate float64) {
	if failureRate > p.opt.FailureThreshold {
		p.cooldown *= 2
		if p.workers > 1 {
			p.workers /= 2
			if p.workers < 1 {
				p.workers = 1
			}
		}
		return
	}
	if failureRate == 0 {
		if p.workers < p.maxWorkers {
			p.workers++
		}
		if p.cooldown > p.opt.Cooldown {
			p.cooldown = p.cooldown / 2
			if p.cooldown < p.opt.Cooldown {
				p.cooldown = p.opt.Cooldown
			}
		}
	}
}

// chunk splits tickers into batches of at most size.
func chunk(tickers []string, size int) [][]string {
	var out [][]string
	for i := 0; i < len(tickers); i += size {
		end := i + size
		if end > len(tickers) {
			end = len(tickers)
		}
		out = append(out, tickers[i:end])
	}
	return out
}
