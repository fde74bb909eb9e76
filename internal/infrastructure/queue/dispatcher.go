package queue

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Metrics receives dispatcher instrumentation. Worker ids are shard indexes.
type Metrics interface {
	Enqueued(worker int)
	Dequeued(worker int)
	Dropped(eventType domain.UserEventType)
	Processed(eventType domain.UserEventType, took time.Duration, err error)
}

type nopMetrics struct{}

func (nopMetrics) Enqueued(int) {}
func (nopMetrics) Dequeued(int) {}
func (nopMetrics) Dropped(domain.UserEventType) {}
func (nopMetrics) Processed(domain.UserEventType, time.Duration, error) {}

// Dispatcher routes user audit events to a fixed set of workers sharded by
// user id, so events for one user are persisted in publish order.
type Dispatcher struct {
	workers []chan domain.UserEvent
	service ports.EventService
	log     zerolog.Logger
	metrics Metrics
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.UserEvent, numWorkers),
		service: service,
		log:     log,
		metrics: nopMetrics{},
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.UserEvent, channelBuffer)
	}
	return d
}

// WithMetrics installs m. Call it before Start.
func (d *Dispatcher) WithMetrics(m Metrics) *Dispatcher {
	if m != nil {
		d.metrics = m
	}
	return d
}

// Start launches all worker goroutines. Workers drain what is already
// queued and stop once ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish hands an event to the worker responsible for its user. When that
// worker's buffer is full the event is dropped and logged; the request path
// never blocks on auditing.
func (d *Dispatcher) Publish(event domain.UserEvent) {
	idx := d.shardIndex(event.UserID)
	select {
	case d.workers[idx] <- event:
		d.metrics.Enqueued(idx)
	default:
		d.metrics.Dropped(event.Type)
		d.log.Warn().
			Int64("user_id", event.UserID).
			Str("type", string(event.Type)).
			Int("worker_id", idx).
			Msg("event queue full, dropping audit event")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(userID))
	h := fnv.New32a()
	_, _ = h.Write(buf[:])
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.UserEvent) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event := <-ch:
			d.metrics.Dequeued(id)
			d.process(ctx, id, event)
		}
	}
}

// drain persists events still buffered at shutdown with a short deadline.
func (d *Dispatcher) drain(id int, ch <-chan domain.UserEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		select {
		case event := <-ch:
			d.metrics.Dequeued(id)
			d.process(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event domain.UserEvent) {
	start := time.Now()
	err := d.service.Process(ctx, event)
	d.metrics.Processed(event.Type, time.Since(start), err)

	if err != nil {
		d.log.Error().Err(err).
			Int64("user_id", event.UserID).
			Str("type", string(event.Type)).
			Int("worker_id", id).
			Msg("event processing failed")
	}
}
