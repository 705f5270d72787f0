package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/primstrade/platform/internal/api/metrics"
	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher records status changes off the request path. Entries are
// sharded by signal id so the changes of one signal are written in order.
type Dispatcher struct {
	workers []chan domain.StatusChange
	service ports.AuditService
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.StatusChange, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.StatusChange, channelBuffer)
	}
	return d
}

// Start launches the workers. They exit when ctx is cancelled or after
// Close has drained their channels.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a change to the worker owning its signal. It never blocks:
// when the worker's buffer is full the entry is dropped and logged.
func (d *Dispatcher) Enqueue(change domain.StatusChange) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.AuditRecordsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("signal_id", change.SignalID).Msg("audit dispatcher closed, entry dropped")
		return
	}

	idx := d.shardIndex(change.SignalID)
	select {
	case d.workers[idx] <- change:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditRecordsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("signal_id", change.SignalID).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// Close stops accepting entries and waits until queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a signal id deterministically to a worker index.
func (d *Dispatcher) shardIndex(signalID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(signalID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.StatusChange) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.record(ctx, id, change)
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, worker int, change domain.StatusChange) {
	start := time.Now()
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := d.service.Record(rctx, change); err != nil {
		metrics.AuditRecordsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("signal_id", change.SignalID).
			Int("worker_id", worker).
			Msg("audit record failed")
		return
	}
	metrics.AuditRecordsTotal.WithLabelValues("recorded").Inc()
	metrics.AuditRecordDuration.Observe(time.Since(start).Seconds())
}
