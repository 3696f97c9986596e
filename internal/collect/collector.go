// Package collect runs the background collection loop: on each tick it
// samples system metrics, re-reads the timing logs and benchmark summary,
// and publishes the combined snapshot on a channel for whichever display
// variant is running.
package collect

import (
	"context"
	"sync"
	"time"

	"github.com/patchtools/patchmon/internal/logger"
	"github.com/patchtools/patchmon/internal/metrics"
	"github.com/patchtools/patchmon/internal/timing"
)

// DefaultInterval is how often the collector gathers a fresh snapshot.
// Displays refresh faster than this and reuse the latest snapshot.
const DefaultInterval = 5 * time.Second

// Snapshot is one collection cycle's worth of state.
type Snapshot struct {
	Sample    *metrics.Sample
	SampleErr error
	Timings   map[string][]float64
	Order     []string
	Benchmark []timing.BenchmarkRow
	Taken     time.Time
}

// Collector owns the background goroutine that produces snapshots.
type Collector struct {
	sampler  *metrics.Sampler
	store    *timing.Store
	results  string
	interval time.Duration
	log      logger.Logger

	snapshots chan Snapshot
	cancel    context.CancelFunc
	done      chan struct{}

	mu   sync.Mutex
	last *Snapshot
}

// New creates a collector reading timing data from resultsDir for the
// given patch methods.
func New(resultsDir string, methods []string, interval time.Duration) *Collector {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Collector{
		sampler:  metrics.NewSampler(),
		store:    timing.NewStore(resultsDir, methods),
		results:  resultsDir,
		interval: interval,
		log:      logger.Noop(),
		// Capacity 1 so a slow consumer never blocks collection; the
		// stale snapshot is dropped in favor of the fresh one.
		snapshots: make(chan Snapshot, 1),
	}
}

// SetLogger swaps the logger, propagating it to the sampler and store.
func (c *Collector) SetLogger(l logger.Logger) {
	c.log = l
	c.sampler.SetLogger(l)
	c.store.SetLogger(l)
}

// Snapshots returns the channel snapshots are published on. At most the
// latest snapshot is buffered.
func (c *Collector) Snapshots() <-chan Snapshot {
	return c.snapshots
}

// Start launches the collection loop. The first snapshot is collected
// immediately so displays have data before the first interval elapses.
func (c *Collector) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	go func() {
		defer close(c.done)

		c.publish(c.Collect(ctx))

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.publish(c.Collect(ctx))
			}
		}
	}()
}

// Stop cancels the loop and waits for the goroutine to exit. Safe to call
// without a prior Start.
func (c *Collector) Stop() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
}

// Collect performs one synchronous collection cycle. Metric failures are
// carried in the snapshot rather than aborting the cycle: timing data can
// still be fresh when the sampler fails.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	snap := Snapshot{Taken: time.Now()}

	snap.Sample, snap.SampleErr = c.sampler.Sample(ctx)
	if snap.SampleErr != nil {
		c.log.Warn("metrics sample failed: %v", snap.SampleErr)
	}

	c.store.Refresh()
	snap.Timings = c.store.Snapshot()
	snap.Order = c.store.Methods()

	rows, err := timing.ReadBenchmark(timing.BenchmarkPath(c.results))
	if err != nil {
		c.log.Warn("benchmark summary unreadable: %v", err)
	} else {
		snap.Benchmark = rows
	}

	c.mu.Lock()
	c.last = &snap
	c.mu.Unlock()

	return snap
}

// Last returns the most recently collected snapshot, or nil before the
// first cycle completes.
func (c *Collector) Last() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Collector) publish(snap Snapshot) {
	// Drop the buffered snapshot if the consumer has not drained it yet
	select {
	case <-c.snapshots:
	default:
	}
	select {
	case c.snapshots <- snap:
	default:
	}
}
