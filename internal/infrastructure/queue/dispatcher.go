package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/legalaid/practice-api/internal/api/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// ReferenceCleaner removes every stored reference to a deleted client.
// ports.EventRepository satisfies it.
type ReferenceCleaner interface {
	RemoveClientRefs(ctx context.Context, clientID string) (int64, error)
}

// Dispatcher runs client reference-cleanup jobs on a fixed set of workers,
// sharded by client id so jobs for the same client never run concurrently.
type Dispatcher struct {
	workers []chan string
	cleaner ReferenceCleaner
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, cleaner ReferenceCleaner, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		cleaner: cleaner,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules cleanup for clientID without blocking. When the worker's
// channel is full the job is dropped and logged; reads already hide dangling
// references, so a dropped job only leaves stale ids in storage.
func (d *Dispatcher) Enqueue(clientID string) {
	idx := d.shardIndex(clientID)
	select {
	case d.workers[idx] <- clientID:
		metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.CleanupJobsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("client_id", clientID).
			Int("worker_id", idx).
			Msg("cleanup queue full, job dropped")
	}
}

// shardIndex maps a client id deterministically to a worker index.
func (d *Dispatcher) shardIndex(clientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	depth := metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case clientID, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.process(ctx, id, clientID)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, clientID string) {
	start := time.Now()
	n, err := d.cleaner.RemoveClientRefs(ctx, clientID)
	metrics.CleanupDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CleanupJobsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("client_id", clientID).
			Int("worker_id", workerID).
			Msg("client reference cleanup failed")
		return
	}

	metrics.CleanupJobsTotal.WithLabelValues("done").Inc()
	d.log.Info().
		Str("client_id", clientID).
		Int64("events_updated", n).
		Msg("client references removed from events")
}
