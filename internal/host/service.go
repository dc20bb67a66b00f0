package host

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ytget/magnetdrop/internal/eventbus"
	"github.com/ytget/magnetdrop/internal/model"
	"github.com/ytget/magnetdrop/internal/platform"
)

// Parallelism bounds
const (
	DefaultMaxParallel = 4
	MinMaxParallel     = 1
	MaxMaxParallel     = 16
)

var (
	// ErrEmptyBatch is returned for a conversion request without a batch id
	ErrEmptyBatch = errors.New("conversion request has no batch id")

	// ErrNotTorrent is reported for dropped paths that are not .torrent files
	ErrNotTorrent = errors.New("not a .torrent file")

	// ErrServiceClosed is returned once Close was called
	ErrServiceClosed = errors.New("host service closed")
)

// Service converts torrent files in the background and filters record lists.
type Service struct {
	bus         eventbus.Bus
	logger      *slog.Logger
	maxParallel int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewService creates a host service publishing conversion events on bus
func NewService(bus eventbus.Bus, maxParallel int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		bus:         bus,
		logger:      logger,
		maxParallel: ClampParallel(maxParallel),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// ClampParallel bounds n to [MinMaxParallel, MaxMaxParallel]; n <= 0 means the default.
func ClampParallel(n int) int {
	if n <= 0 {
		return DefaultMaxParallel
	}
	if n < MinMaxParallel {
		return MinMaxParallel
	}
	if n > MaxMaxParallel {
		return MaxMaxParallel
	}
	return n
}

// SubmitConversion starts converting req.Paths in the background and returns
// immediately.
func (s *Service) SubmitConversion(req ConvertRequest) error {
	if req.Batch == "" {
		return ErrEmptyBatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrServiceClosed
	}

	paths := make([]string, len(req.Paths))
	copy(paths, req.Paths)
	req.Paths = paths

	limit := s.maxParallel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runBatch(s.ctx, req, limit)
	}()
	return nil
}

// SetMaxParallel changes how many files of later batches are parsed at once
func (s *Service) SetMaxParallel(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxParallel = ClampParallel(n)
}

// Filter narrows req.Records by keyword
func (s *Service) Filter(ctx context.Context, req FilterRequest) ([]model.Record, error) {
	return FilterRecords(ctx, req)
}

// Close cancels running batches and waits for them to stop
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

type conversion struct {
	path string
	link string
	err  error
}

// runBatch converts files in parallel and publishes the results in input order.
func (s *Service) runBatch(ctx context.Context, req ConvertRequest, limit int) {
	files, skipped, err := platform.CollectTorrentFiles(req.Paths)
	failed := 0
	for _, p := range skipped {
		s.logger.Info("skipping non-torrent path", "batch", req.Batch, "path", p)
		s.bus.Publish(model.ConversionFailedEvent{Batch: req.Batch, Path: p, Err: ErrNotTorrent})
		failed++
	}
	if err != nil {
		s.logger.Warn("failed to collect torrent files", "batch", req.Batch, "error", err)
		s.bus.Publish(model.ConversionFailedEvent{Batch: req.Batch, Err: err})
		failed++
	}

	s.logger.Info("conversion started", "batch", req.Batch, "files", len(files), "full_link", req.FullLink)

	results := make([]conversion, len(files))
	ready := make([]chan struct{}, len(files))
	for i := range ready {
		ready[i] = make(chan struct{})
	}

	var g errgroup.Group
	g.SetLimit(limit)
	go func() {
		for i, path := range files {
			g.Go(func() error {
				defer close(ready[i])
				if ctx.Err() != nil {
					results[i] = conversion{path: path, err: ctx.Err()}
					return nil
				}
				link, err := MagnetFromFile(path, req.FullLink)
				results[i] = conversion{path: path, link: link, err: err}
				return nil
			})
		}
	}()

	converted := 0
	for i := range files {
		select {
		case <-ready[i]:
		case <-ctx.Done():
			s.logger.Info("conversion cancelled", "batch", req.Batch, "converted", converted)
			return
		}

		res := results[i]
		if res.err != nil {
			s.logger.Warn("conversion failed", "batch", req.Batch, "path", res.path, "error", res.err)
			s.bus.Publish(model.ConversionFailedEvent{Batch: req.Batch, Path: res.path, Err: res.err})
			failed++
			continue
		}

		s.bus.Publish(model.TorrentConvertedEvent{
			Batch: req.Batch,
			Name:  filepath.Base(res.path),
			Path:  res.path,
			Link:  res.link,
		})
		converted++
	}
	_ = g.Wait()

	s.logger.Info("conversion finished", "batch", req.Batch, "converted", converted, "failed", failed)
	s.bus.Publish(model.BatchCompletedEvent{Batch: req.Batch, Converted: converted, Failed: failed})
}

