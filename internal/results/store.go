package results

import (
	"sync"

	"github.com/ytget/magnetdrop/internal/model"
)

// Snapshot is an immutable, ordered copy of the store contents together with
// the generation it was taken from.
type Snapshot struct {
	Generation uint64
	Records    []model.Record
}

// Len returns the number of records in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Records)
}

// Store is an append-only ordered collection of records. Clear empties it and
// starts a new generation; anything derived from an older generation is stale.
type Store struct {
	mu         sync.RWMutex
	records    []model.Record
	generation uint64
	ids        IDGenerator
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		records: make([]model.Record, 0),
	}
}

// Append adds record at the end, assigning an ID if it has none, and returns
// the stored copy.
func (s *Store) Append(record model.Record) model.Record {
	if !record.HasID() {
		record.ID = s.ids.Next()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return record
}

// Clear removes all records and returns the new generation.
func (s *Store) Clear() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]model.Record, 0)
	s.generation++
	return s.generation
}

// Snapshot returns a copy of the current contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.Record, len(s.records))
	copy(records, s.records)
	return Snapshot{Generation: s.generation, Records: records}
}

// Generation returns the number of clears performed so far.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
