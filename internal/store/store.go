// Package store persists complexity verdicts. A verdict is keyed by
// document, function name, and start line; re-analysis overwrites the
// previous record for the same key.
package store

import (
	"sort"
	"sync"
	"time"

	"bigo/internal/analysis"
)

// Key identifies one analyzed function.
type Key struct {
	Doc       string `json:"doc"`
	Name      string `json:"name"`
	StartLine int    `json:"startLine"`
}

// Record is one stored verdict.
type Record struct {
	Key
	analysis.Verdict
	CapturedAt time.Time `json:"capturedAt"`
}

// Store is the persistence surface shared by the in-memory and SQLite
// implementations.
type Store interface {
	Put(rec Record) error
	Get(key Key) (Record, bool, error)
	List() ([]Record, error)
	Len() (int, error)
}

// MemoryStore keeps records in a mutex-guarded map. Suited to single
// process runs where nothing should touch disk.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[Key]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[Key]Record)}
}

// Put stores a record, replacing any record with the same key.
func (s *MemoryStore) Put(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Key] = rec
	return nil
}

// Get returns the record for a key.
func (s *MemoryStore) Get(key Key) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	return rec, ok, nil
}

// List returns all records ordered by document, start line, then name.
func (s *MemoryStore) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sortRecords(out)
	return out, nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func sortRecords(recs []Record) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Doc != recs[j].Doc {
			return recs[i].Doc < recs[j].Doc
		}
		if recs[i].StartLine != recs[j].StartLine {
			return recs[i].StartLine < recs[j].StartLine
		}
		return recs[i].Name < recs[j].Name
	})
}
