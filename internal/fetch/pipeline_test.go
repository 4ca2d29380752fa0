package fetch

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

// fakeSource fails the tickers on its deny list, succeeds otherwise.
type fakeSource struct {
	mu    sync.Mutex
	deny  map[string]bool
	calls int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(_ context.Context, ticker string) (map[string]string, error) {
	f.mu.Lock()
	f.calls++
	denied := f.deny[ticker]
	f.mu.Unlock()

	if denied {
		return nil, errors.New("upstream error")
	}
	return map[string]string{"KGV": "10"}, nil
}

func fastOptions() Options {
	return Options{
		BatchSize: 2,
		Workers:   2,
		Cooldown:  time.Second,
		Retry:     RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond, sleep: func(context.Context, time.Duration) error { return nil }},
		sleep:     func(context.Context, time.Duration) error { return nil },
	}
}

func TestPipelineCollectsFailuresWithoutAborting(t *testing.T) {
	src := &fakeSource{deny: map[string]bool{"BAD": true}}
	p := NewPipeline(src, fastOptions())

	res, err := p.Run(context.Background(), []string{"AAA", "BAD", "BBB", "CCC"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Updated) != 3 {
		t.Errorf("updated = %d tickers, want 3", len(res.Updated))
	}
	if len(res.Failed) != 1 || res.Failed[0] != "BAD" {
		t.Errorf("failed = %v, want [BAD]", res.Failed)
	}
	// 3 good tickers once each, the bad one retried twice.
	if src.calls != 5 {
		t.Errorf("source calls = %d, want 5", src.calls)
	}
}

func TestPipelineAdaptsToFailureRate(t *testing.T) {
	opt := fastOptions()
	opt.Workers = 4
	opt.FailureThreshold = 0.4

	p := NewPipeline(&fakeSource{}, opt)

	// A bad batch doubles the cooldown and halves the workers.
	p.adapt(0.5)
	if p.cooldown != 2*time.Second || p.workers != 2 {
		t.Errorf("after bad batch: cooldown=%v workers=%d", p.cooldown, p.workers)
	}
	p.adapt(0.5)
	if p.cooldown != 4*time.Second || p.workers != 1 {
		t.Errorf("after second bad batch: cooldown=%v workers=%d", p.cooldown, p.workers)
	}

	// Clean batches ramp workers back up one at a time and decay the
	// cooldown toward the configured floor.
	p.adapt(0)
	if p.workers != 2 || p.cooldown != 2*time.Second {
		t.Errorf("after clean batch: cooldown=%v workers=%d", p.cooldown, p.workers)
	}
	p.adapt(0)
	p.adapt(0)
	p.adapt(0)
	if p.workers != 4 {
		t.Errorf("workers = %d, want ramped back to 4", p.workers)
	}
	if p.cooldown != time.Second {
		t.Errorf("cooldown = %v, want back at floor", p.cooldown)
	}
}

func TestPipelineCommitQuote(t *testing.T) {
	src := &fakeSource{deny: map[string]bool{"B1": true, "B2": true}}
	opt := fastOptions()
	opt.MinUpdatedQuote = 0.8

	p := NewPipeline(src, opt)
	res, err := p.Run(context.Background(), []string{"A1", "A2", "B1", "B2"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Half the tickers failed: far below the 80% quote.
	if res.Commit {
		t.Error("result marked commit-worthy despite 50% failures")
	}

	good := NewPipeline(&fakeSource{}, opt)
	res, err = good.Run(context.Background(), []string{"A1", "A2", "A3"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Commit {
		t.Error("clean run not marked commit-worthy")
	}
}

func TestPipelineHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(&fakeSource{}, fastOptions())
	if _, err := p.Run(ctx, []string{"AAA", "BBB", "CCC"}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestChunk(t *testing.T) {
	got := chunk([]string{"a", "b", "c", "d", "e"}, 2)
	if len(got) != 3 || len(got[0]) != 2 || len(got[2]) != 1 {
		t.Errorf("chunk = %v", got)
	}

	var all []string
	for _, b := range got {
		all = append(all, b...)
	}
	sort.Strings(all)
	if len(all) != 5 {
		t.Errorf("chunk dropped elements: %v", all)
	}
}
