package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ytget/magnetdrop/internal/clipboard"
	"github.com/ytget/magnetdrop/internal/eventbus"
	"github.com/ytget/magnetdrop/internal/host"
	"github.com/ytget/magnetdrop/internal/model"
	"github.com/ytget/magnetdrop/internal/results"
)

// Options configures a Presenter
type Options struct {
	Bus        eventbus.Bus
	Converter  host.Converter
	Filterer   host.Filterer
	Clipboard  clipboard.Writer
	SearchType host.SearchType
	// FenceStaleBatches drops converted events whose batch is not the
	// current one. Events without a batch are always accepted.
	FenceStaleBatches bool
	// OnView is called with every applied view. It runs while the
	// presenter holds its lock and must not call back into it.
	OnView func(model.View)
	Logger *slog.Logger
}

// Presenter owns the result store, the active keyword and the current view.
type Presenter struct {
	mu      sync.Mutex
	store   *results.Store
	keyword string
	batch   string
	view    model.View
	fence   bool
	onView  func(model.View)
	closed  bool

	renderer  Renderer
	gateway   *FilterGateway
	ingestion *Ingestion
	drops     *DropController
	exporter  *ExportController

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
	logger   *slog.Logger
}

// New creates a presenter. Call Start to begin ingesting events.
func New(opts Options) *Presenter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Presenter{
		store:   results.NewStore(),
		fence:   opts.FenceStaleBatches,
		onView:  opts.OnView,
		gateway: NewFilterGateway(opts.Filterer, opts.SearchType),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
	}
	p.view, _ = p.renderer.Render("", nil)
	p.ingestion = NewIngestion(opts.Bus, p.ingest, logger)
	p.drops = NewDropController(opts.Converter, p.reset, logger)
	p.exporter = NewExportController(opts.Clipboard, p.View, logger)

	return p
}

// Start attaches ingestion and publishes the initial view. On error the
// presenter keeps working without ingestion.
func (p *Presenter) Start() error {
	err := p.ingestion.Attach()
	p.refresh()
	return err
}

// Close releases ingestion and waits for in-flight filter requests. It is
// safe to call more than once.
func (p *Presenter) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.ingestion.Release()
	p.cancel()
	p.inflight.Wait()
}

// HandleDrop clears all results and submits paths as a new batch
func (p *Presenter) HandleDrop(paths []string, fullLink bool) (string, error) {
	if p.isClosed() {
		return "", ErrClosed
	}
	return p.drops.HandleDrop(paths, fullLink)
}

// Filter makes keyword the active filter and refreshes the view. Empty
// keywords resolve synchronously; others are delegated to the host.
func (p *Presenter) Filter(keyword string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	q := p.gateway.Issue(keyword, p.store.Snapshot())
	p.keyword = q.Keyword
	p.mu.Unlock()

	p.run(q)
}

// Export copies the links of all visible rows to the clipboard
func (p *Presenter) Export() (int, error) {
	return p.exporter.Export()
}

// SetSearchType changes the field keywords match against and refreshes
func (p *Presenter) SetSearchType(searchType host.SearchType) {
	p.gateway.SetSearchType(searchType)
	p.refresh()
}

// SetFenceStaleBatches toggles dropping of events from superseded batches
func (p *Presenter) SetFenceStaleBatches(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fence = enabled
}

// View returns the current view
func (p *Presenter) View() model.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Keyword returns the active keyword
func (p *Presenter) Keyword() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.keyword
}

// Batch returns the identifier of the current batch
func (p *Presenter) Batch() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.batch
}

// Records returns every stored record regardless of the active keyword
func (p *Presenter) Records() []model.Record {
	return p.store.Snapshot().Records
}

// Ingesting reports whether converted events are being received
func (p *Presenter) Ingesting() bool {
	return p.ingestion.Attached()
}

// Wait blocks until all in-flight filter requests have been applied or
// discarded.
func (p *Presenter) Wait() {
	p.inflight.Wait()
}

func (p *Presenter) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// reset clears the store and keyword, starts a new batch and publishes the
// empty view before returning.
func (p *Presenter) reset() string {
	p.mu.Lock()
	gen := p.store.Clear()
	p.keyword = ""
	p.batch = uuid.NewString()
	batch := p.batch
	q := p.gateway.Issue("", p.store.Snapshot())
	p.mu.Unlock()

	p.logger.Debug("results cleared", "generation", gen, "batch", batch)
	p.run(q)
	return batch
}

// ingest appends a converted record and re-renders with the active keyword
func (p *Presenter) ingest(event model.TorrentConvertedEvent) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if p.fence && event.Batch != "" && event.Batch != p.batch {
		p.mu.Unlock()
		p.logger.Debug("dropping result of superseded batch", "batch", event.Batch, "path", event.Path)
		return
	}
	record := p.store.Append(event.Record())
	q := p.gateway.Issue(p.keyword, p.store.Snapshot())
	p.mu.Unlock()

	p.logger.Debug("result ingested", "id", record.ID, "name", record.Name)
	p.run(q)
}

// refresh re-renders the current store with the active keyword
func (p *Presenter) refresh() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	q := p.gateway.Issue(p.keyword, p.store.Snapshot())
	p.mu.Unlock()

	p.run(q)
}

func (p *Presenter) run(q FilterQuery) {
	if q.IsShortCircuit() {
		records, err := p.gateway.Resolve(p.ctx, q)
		p.apply(q, records, err)
		return
	}

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		records, err := p.gateway.Resolve(p.ctx, q)
		p.apply(q, records, err)
	}()
}

// apply replaces the view with the response to q unless it is stale
func (p *Presenter) apply(q FilterQuery, records []model.Record, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.gateway.Accept(q, p.store.Generation()) {
		p.logger.Debug("discarding stale filter response", "seq", q.Seq, "keyword", q.Keyword)
		return
	}

	var view model.View
	if err == nil {
		view, err = p.renderer.Render(q.Keyword, records)
	}
	if err != nil {
		p.logger.Warn("cannot produce view", "keyword", q.Keyword, "error", err)
		view = p.renderer.Failure(q.Keyword, err)
	}

	p.view = view
	if p.onView != nil {
		p.onView(view)
	}
}
