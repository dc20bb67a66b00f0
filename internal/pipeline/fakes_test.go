package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ytget/magnetdrop/internal/eventbus"
	"github.com/ytget/magnetdrop/internal/host"
	"github.com/ytget/magnetdrop/internal/model"
)

type fakeConverter struct {
	mu       sync.Mutex
	requests []host.ConvertRequest
	err      error
}

func (c *fakeConverter) SubmitConversion(req host.ConvertRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	return c.err
}

func (c *fakeConverter) Requests() []host.ConvertRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]host.ConvertRequest(nil), c.requests...)
}

// gatedFilterer delegates to host.FilterRecords. Keywords with a gate block
// until the gate is closed.
type gatedFilterer struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	calls []host.FilterRequest
	err   error
}

func newGatedFilterer() *gatedFilterer {
	return &gatedFilterer{gates: make(map[string]chan struct{})}
}

func (f *gatedFilterer) gate(keyword string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := make(chan struct{})
	f.gates[keyword] = g
	return g
}

func (f *gatedFilterer) Filter(ctx context.Context, req host.FilterRequest) ([]model.Record, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	g := f.gates[req.Keyword]
	err := f.err
	f.mu.Unlock()

	if g != nil {
		<-g
	}
	if err != nil {
		return nil, err
	}
	return host.FilterRecords(ctx, req)
}

func (f *gatedFilterer) Calls() []host.FilterRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]host.FilterRequest(nil), f.calls...)
}

type memClipboard struct {
	mu     sync.Mutex
	text   string
	writes int
	err    error
}

func (c *memClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	c.writes++
	return nil
}

func (c *memClipboard) Text() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, c.writes
}

type harness struct {
	bus       eventbus.Bus
	converter *fakeConverter
	filterer  *gatedFilterer
	clipboard *memClipboard
	presenter *Presenter
	flushed   chan struct{}
	views     chan model.View
}

func newHarness(t *testing.T, configure ...func(*Options)) *harness {
	t.Helper()

	h := &harness{
		bus:       eventbus.New(nil),
		converter: &fakeConverter{},
		filterer:  newGatedFilterer(),
		clipboard: &memClipboard{},
		flushed:   make(chan struct{}, 16),
		views:     make(chan model.View, 256),
	}
	t.Cleanup(h.bus.Close)

	_, err := h.bus.Subscribe(eventbus.EventBatchCompleted, func(eventbus.Event) {
		h.flushed <- struct{}{}
	})
	require.NoError(t, err)

	opts := Options{
		Bus:               h.bus,
		Converter:         h.converter,
		Filterer:          h.filterer,
		Clipboard:         h.clipboard,
		SearchType:        host.SearchByName,
		FenceStaleBatches: true,
		OnView: func(v model.View) {
			select {
			case h.views <- v:
			default:
			}
		},
	}
	for _, fn := range configure {
		fn(&opts)
	}

	h.presenter = New(opts)
	require.NoError(t, h.presenter.Start())
	t.Cleanup(h.presenter.Close)
	return h
}

// publish delivers events through the bus and waits until they and any
// filter requests they caused have been handled.
func (h *harness) publish(t *testing.T, events ...model.Event) {
	t.Helper()
	for _, e := range events {
		h.bus.Publish(e)
	}
	h.bus.Publish(model.BatchCompletedEvent{Batch: "flush"})

	select {
	case <-h.flushed:
	case <-time.After(5 * time.Second):
		t.Fatal("events were not delivered")
	}
	h.presenter.Wait()
}

func converted(batch, name string) model.TorrentConvertedEvent {
	return model.TorrentConvertedEvent{
		Batch: batch,
		Name:  name,
		Path:  "/downloads/" + name + ".torrent",
		Link:  "magnet:?xt=urn:btih:" + name,
	}
}

func rowNames(v model.View) []string {
	names := make([]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		names = append(names, r.Name)
	}
	return names
}
