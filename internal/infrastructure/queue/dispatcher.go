package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnector/connector-api/internal/core/ports"
	"github.com/devconnector/connector-api/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher runs authored-content purges off the request path. Jobs are
// sharded by identity id so two purges for the same identity never overlap.
// Its lifetime is independent of the request context: Stop drains every
// buffered job before returning.
type Dispatcher struct {
	workers []chan ports.PurgeJob
	purger  ports.AuthorPurger
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, purger ports.AuthorPurger, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		workers: make([]chan ports.PurgeJob, numWorkers),
		purger:  purger,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PurgeJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. They run until Stop.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop refuses new jobs, lets the workers finish everything already queued
// and waits for them. If ctx expires first, the purge context is cancelled so
// the remaining jobs fail fast, and ctx.Err() is returned once workers exit.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

// Enqueue hands job to the worker owning its identity id. It blocks only when
// that worker's buffer is full. Jobs arriving after Stop are dropped and logged.
func (d *Dispatcher) Enqueue(job ports.PurgeJob) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		metrics.PurgesTotal.WithLabelValues("dropped").Inc()
		d.log.Error().Str("user_id", job.IdentityID).Msg("purge dropped: dispatcher stopped")
		return
	}

	idx := d.shardIndex(job.IdentityID)
	d.workers[idx] <- job
	metrics.PurgeQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

func (d *Dispatcher) shardIndex(identityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identityID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan ports.PurgeJob) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for job := range ch {
		metrics.PurgeQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		d.process(d.ctx, id, job)
	}
}

func (d *Dispatcher) process(ctx context.Context, worker int, job ports.PurgeJob) {
	start := time.Now()
	err := d.purger.PurgeAuthor(ctx, job.IdentityID)
	metrics.PurgeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PurgesTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Str("user_id", job.IdentityID).
			Int("worker_id", worker).
			Msg("authored content purge failed")
		return
	}
	metrics.PurgesTotal.WithLabelValues("ok").Inc()
}
