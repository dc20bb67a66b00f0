package eventbus

import (
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/ytget/magnetdrop/internal/model"
)

// Re-export model types for convenience
type Event = model.Event
type EventType = model.EventType

// Event type constants
const (
	EventTorrentConverted = model.EventTorrentConverted
	EventConversionFailed = model.EventConversionFailed
	EventBatchCompleted   = model.EventBatchCompleted
)

// DefaultBufferSize is the number of events queued before Publish blocks
const DefaultBufferSize = 1000

// ErrClosed is returned when subscribing to a closed bus
var ErrClosed = errors.New("event bus closed")

// Handler is a function that handles events
type Handler func(Event)

// Bus delivers published events to every subscriber of the event type.
// Events are delivered one at a time, in publish order, on a single
// dispatch goroutine.
type Bus interface {
	Publish(event Event)
	Subscribe(eventType EventType, handler Handler) (func(), error)
	Close()
}

type subscription struct {
	id      uint64
	handler Handler
}

// bus is the concrete implementation of Bus
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	closed   bool

	events    chan Event
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// New creates a new event bus and starts its dispatcher
func New(logger *slog.Logger) Bus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &bus{
		handlers: make(map[EventType][]subscription),
		events:   make(chan Event, DefaultBufferSize),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger,
	}

	go b.dispatch()
	return b
}

// Publish queues an event for delivery. It blocks while the buffer is full
// and drops the event once the bus is closed.
func (b *bus) Publish(event Event) {
	select {
	case <-b.quit:
		b.logger.Warn("event bus closed, dropping event", "type", event.Type())
		return
	default:
	}

	select {
	case b.events <- event:
	case <-b.quit:
		b.logger.Warn("event bus closed, dropping event", "type", event.Type())
	}
}

// Subscribe registers handler for eventType and returns a function that
// removes it. Calling the returned function more than once is a no-op.
func (b *bus) Subscribe(eventType EventType, handler Handler) (func(), error) {
	if handler == nil {
		return nil, errors.New("nil handler")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(eventType, id) })
	}, nil
}

func (b *bus) unsubscribe(eventType EventType, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Close stops the dispatcher after the queued events were delivered.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
		close(b.quit)
		<-b.done
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer close(b.done)

	for {
		select {
		case event := <-b.events:
			b.deliver(event)
		case <-b.quit:
			for {
				select {
				case event := <-b.events:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *bus) call(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}
