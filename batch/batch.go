// Package batch converts many automata concurrently. Subset construction
// shares no state between calls, so each NFA is determinized on its own
// worker; identical automata are converted only once.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	automaton "github.com/geange/powerset"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

// ErrClosed is returned by ConvertAll after Close.
var ErrClosed = errors.New("converter is closed")

// Options is used to configure a Converter.
type Options struct {
	// Workers bounds the number of concurrent conversions. Defaults to GOMAXPROCS.
	Workers int

	// Order and WorkLimit are passed to automaton.Determinize.
	Order     automaton.Order
	WorkLimit int

	// DisableCache converts every input even if it was seen before.
	DisableCache bool

	Logger *slog.Logger

	// Registerer receives the converter metrics. Defaults to a private registry.
	Registerer prometheus.Registerer
}

// Converter determinizes automata on a worker pool.
type Converter struct {
	opts    Options
	pool    pond.ResultPool[*automaton.DFA]
	metrics *metrics
	closed  atomic.Bool

	mu    sync.RWMutex
	cache map[Fingerprint]*automaton.DFA
}

func New(opts Options) *Converter {
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.NewRegistry()
	}

	return &Converter{
		opts:    opts,
		pool:    pond.NewResultPool[*automaton.DFA](opts.Workers),
		metrics: newMetrics(opts.Registerer),
		cache:   make(map[Fingerprint]*automaton.DFA),
	}
}

// Convert determinizes a single automaton on the calling goroutine.
func (c *Converter) Convert(ctx context.Context, nfa *automaton.NFA) (*automaton.DFA, error) {
	var key Fingerprint
	if !c.opts.DisableCache {
		key = FingerprintOf(nfa)
		c.mu.RLock()
		dfa, ok := c.cache[key]
		c.mu.RUnlock()
		if ok {
			c.metrics.conversions.WithLabelValues(resultCached).Inc()
			c.opts.Logger.DebugContext(ctx, "conversion served from cache", "fingerprint", key)
			return dfa, nil
		}
	}

	started := time.Now()
	dfa, err := automaton.Determinize(nfa,
		automaton.WithContext(ctx),
		automaton.WithOrder(c.opts.Order),
		automaton.WithWorkLimit(c.opts.WorkLimit),
		automaton.WithLogger(c.opts.Logger))
	if err != nil {
		c.metrics.conversions.WithLabelValues(resultFailed).Inc()
		return nil, err
	}

	c.metrics.duration.Observe(time.Since(started).Seconds())
	c.metrics.dfaStates.Observe(float64(dfa.GetNumStates()))
	c.metrics.conversions.WithLabelValues(resultConverted).Inc()

	if !c.opts.DisableCache {
		c.mu.Lock()
		c.cache[key] = dfa
		c.mu.Unlock()
	}

	return dfa, nil
}

// ConvertAll determinizes every automaton in nfas concurrently. The result
// has one entry per input, in the same order; failed entries are nil and
// their errors are joined into the returned error.
func (c *Converter) ConvertAll(ctx context.Context, nfas []*automaton.NFA) ([]*automaton.DFA, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	tasks := make([]pond.Result[*automaton.DFA], len(nfas))
	for i, nfa := range nfas {
		tasks[i] = c.pool.SubmitErr(func() (*automaton.DFA, error) {
			return c.Convert(ctx, nfa)
		})
	}

	results := make([]*automaton.DFA, len(nfas))
	var errs []error
	for i, task := range tasks {
		dfa, err := task.Wait()
		if err != nil {
			errs = append(errs, fmt.Errorf("automaton %d: %w", i, err))
			continue
		}
		results[i] = dfa
	}

	c.opts.Logger.DebugContext(ctx, "batch converted",
		"automata", len(nfas),
		"failed", len(errs))

	return results, errors.Join(errs...)
}

// Close stops the worker pool after running tasks finish.
func (c *Converter) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.pool.StopAndWait()
}
