package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/ports"
	"github.com/campusops/user-service/internal/infrastructure/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher routes audit events to a fixed set of workers using
// consistent hashing on the account ID, so events for one account are
// recorded in the order they were published.
type AuditDispatcher struct {
	workers  []chan domain.AuditEvent
	recorder ports.AuditRecorder
	log      zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

var _ ports.AuditPublisher = (*AuditDispatcher)(nil)

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, recorder ports.AuditRecorder, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers:  make([]chan domain.AuditEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers outlive ctx cancellation and
// keep recording until Stop closes their channels; ctx only carries values.
func (d *AuditDispatcher) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the worker channels and waits until every queued event has been
// recorded. Call it after the HTTP server has drained; later Publish calls
// are dropped.
func (d *AuditDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Publish hands the event to the worker responsible for its account.
// It never blocks the request: when the worker channel is full the event is dropped.
func (d *AuditDispatcher) Publish(event domain.AuditEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("account_id", event.AccountID).
			Str("action", string(event.Action)).
			Msg("audit dispatcher stopped, event dropped")
		return
	}

	idx := d.shardIndex(event.AccountID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("account_id", event.AccountID).
			Str("action", string(event.Action)).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an account ID deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()

	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	for event := range ch {
		depth.Set(float64(len(ch)))
		if err := d.recorder.Record(ctx, event); err != nil {
			metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
			d.log.Error().Err(err).
				Str("account_id", event.AccountID).
				Str("action", string(event.Action)).
				Int("worker_id", id).
				Msg("audit event recording failed")
			continue
		}
		metrics.AuditEventsTotal.WithLabelValues("recorded").Inc()
	}
}
