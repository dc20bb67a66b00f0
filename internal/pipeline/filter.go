package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ytget/magnetdrop/internal/host"
	"github.com/ytget/magnetdrop/internal/model"
	"github.com/ytget/magnetdrop/internal/results"
)

// FilterQuery is a keyword request against a store snapshot. Seq orders
// queries; a response is applied only if no later query was applied first.
type FilterQuery struct {
	Seq      uint64
	Keyword  string
	Snapshot results.Snapshot
}

// IsShortCircuit reports whether the query resolves locally without the host
func (q FilterQuery) IsShortCircuit() bool {
	return q.Keyword == ""
}

// FilterGateway issues filter queries to the host and decides which
// responses may still be applied.
type FilterGateway struct {
	filterer host.Filterer

	mu         sync.Mutex
	searchType host.SearchType
	issued     uint64
	applied    uint64
}

// NewFilterGateway creates a gateway delegating non-empty keywords to filterer
func NewFilterGateway(filterer host.Filterer, searchType host.SearchType) *FilterGateway {
	if searchType == "" {
		searchType = host.DefaultSearchType
	}
	return &FilterGateway{filterer: filterer, searchType: searchType}
}

// SetSearchType changes the field future queries match against
func (g *FilterGateway) SetSearchType(searchType host.SearchType) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.searchType = searchType
}

// SearchType returns the field queries match against
func (g *FilterGateway) SearchType() host.SearchType {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.searchType
}

// Issue creates the next query. The keyword is trimmed.
func (g *FilterGateway) Issue(keyword string, snapshot results.Snapshot) FilterQuery {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.issued++
	return FilterQuery{
		Seq:      g.issued,
		Keyword:  strings.TrimSpace(keyword),
		Snapshot: snapshot,
	}
}

// Resolve computes the records for q. Empty keywords return the snapshot
// without contacting the host.
func (g *FilterGateway) Resolve(ctx context.Context, q FilterQuery) ([]model.Record, error) {
	if q.IsShortCircuit() {
		return q.Snapshot.Records, nil
	}
	if g.filterer == nil {
		return nil, fmt.Errorf("%w: no filter service", ErrFilterRequest)
	}

	records, err := g.filterer.Filter(ctx, host.FilterRequest{
		Records:    q.Snapshot.Records,
		Keyword:    q.Keyword,
		SearchType: g.SearchType(),
	})
	if err != nil {
		if errors.Is(err, ErrFilterRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrFilterRequest, err)
	}
	return records, nil
}

// Accept reports whether the response to q may be applied given the current
// store generation, and records q as applied if so.
func (g *FilterGateway) Accept(q FilterQuery, generation uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if q.Seq <= g.applied || q.Snapshot.Generation != generation {
		return false
	}
	g.applied = q.Seq
	return true
}

// Latest returns the sequence number of the most recently issued query
func (g *FilterGateway) Latest() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.issued
}
