package pipeline

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ytget/magnetdrop/internal/eventbus"
	"github.com/ytget/magnetdrop/internal/model"
)

// Ingestion forwards converted-torrent events from the bus to a sink.
type Ingestion struct {
	bus    eventbus.Bus
	sink   func(model.TorrentConvertedEvent)
	logger *slog.Logger

	mu          sync.Mutex
	unsubscribe func()
	attached    bool
	releaseOnce sync.Once
	released    bool
}

// NewIngestion creates an ingestion channel delivering events to sink
func NewIngestion(bus eventbus.Bus, sink func(model.TorrentConvertedEvent), logger *slog.Logger) *Ingestion {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestion{bus: bus, sink: sink, logger: logger}
}

// Attach subscribes to the converted-torrent stream. A failed subscription
// is logged and returned wrapped in ErrSubscription; it is not retried.
func (in *Ingestion) Attach() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.released {
		return ErrClosed
	}
	if in.attached {
		return ErrAlreadyAttached
	}
	if in.bus == nil {
		in.logger.Error("cannot attach ingestion", "error", "no event bus")
		return fmt.Errorf("%w: no event bus", ErrSubscription)
	}

	unsubscribe, err := in.bus.Subscribe(eventbus.EventTorrentConverted, in.handle)
	if err != nil {
		in.logger.Error("cannot attach ingestion", "error", err)
		return fmt.Errorf("%w: %w", ErrSubscription, err)
	}

	in.unsubscribe = unsubscribe
	in.attached = true
	in.logger.Debug("ingestion attached", "event", eventbus.EventTorrentConverted)
	return nil
}

// Release drops the subscription. It is safe to call more than once and
// before Attach.
func (in *Ingestion) Release() {
	in.releaseOnce.Do(func() {
		in.mu.Lock()
		unsubscribe := in.unsubscribe
		in.unsubscribe = nil
		in.attached = false
		in.released = true
		in.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
			in.logger.Debug("ingestion released")
		}
	})
}

// Attached reports whether the subscription is active
func (in *Ingestion) Attached() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.attached
}

func (in *Ingestion) handle(event eventbus.Event) {
	converted, ok := event.(model.TorrentConvertedEvent)
	if !ok {
		in.logger.Warn("ignoring unexpected event payload", "type", event.Type())
		return
	}
	if in.sink != nil {
		in.sink(converted)
	}
}
