package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	ActionAppointmentCreated       = "appointment_created"
	ActionAppointmentUpdated       = "appointment_updated"
	ActionAppointmentCancelled     = "appointment_cancelled"
	ActionAppointmentStatusChanged = "appointment_status_changed"
	ActionAppointmentReminder      = "appointment_reminder"
)

// Event is a fact about something that already happened. Sinks consume it
// after the operation that produced it has committed.
type Event struct {
	Action     string
	Entity     string
	EntityID   string
	BarberID   *uint
	Metadata   any
	OccurredAt time.Time
}

// Sink receives dispatched events. Errors are logged by the dispatcher and
// never reach the caller of Dispatch.
type Sink interface {
	Name() string
	Write(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	log   *zap.Logger
	sinks []Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(log *zap.Logger, size int, sinks ...Sink) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		log:   log,
		sinks: sinks,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Write(ctx, ev); err != nil {
				d.log.Warn("event sink failed",
					zap.String("sink", s.Name()),
					zap.String("action", ev.Action),
					zap.String("entity_id", ev.EntityID),
					zap.Error(err),
				)
			}
			cancel()
		}
	}
}

// Dispatch never blocks: when the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("event queue full, dropping event",
			zap.String("action", ev.Action),
			zap.String("entity_id", ev.EntityID),
		)
	}
}

// Close stops accepting events and waits for queued ones to drain or for
// ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
