// Package history holds the append-only session history. Entries are never
// mutated after creation; the only removal is a full clear.
package history

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
)

// Entry archives one answered query. The json keys (notably "ts") are part
// of the export compatibility surface.
type Entry struct {
	ID        string               `json:"id"`
	Timestamp string               `json:"ts"`
	Query     string               `json:"query"`
	Response  entity.AgentResponse `json:"response"`
}

// Store is the single piece of state that outlives a query. All mutation
// goes through the mutex; callers receive copies.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Append archives a validated response and returns the stored entry.
func (s *Store) Append(query string, resp entity.AgentResponse) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: s.now().Format(time.RFC3339),
		Query:     query,
		Response:  resp,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return entry
}

// List returns a copy of all entries, oldest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// Last returns up to n most recent entries, oldest first.
func (s *Store) Last(n int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || len(s.entries) == 0 {
		return nil
	}
	start := len(s.entries) - n
	if start < 0 {
		start = 0
	}
	return append([]Entry(nil), s.entries[start:]...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// ExportJSON renders the full history in the export format.
func (s *Store) ExportJSON() ([]byte, error) {
	entries := s.List()
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}
