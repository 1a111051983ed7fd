package memory

import (
	"strings"
	"sync"
	"time"
)

// Record is one archived episode: the question, the final answer, the tool
// observations the answer was grounded on, and any metric scores.
type Record struct {
	EpisodeID   string
	Agent       string
	Question    string
	Answer      string
	StepLimited bool
	Contexts    []string
	Scores      map[string]float64
	CreatedAt   time.Time
}

// Store archives completed episodes for later retrieval.
type Store interface {
	// Save archives one episode. Saving the same episode id again
	// overwrites the previous record.
	Save(rec Record) error
	// Get returns the record with the given episode id.
	Get(episodeID string) (Record, bool)
	// List returns all records for the named agent, oldest first. An empty
	// agent name returns every record.
	List(agent string) []Record
	// Search returns up to limit records whose question, answer or
	// contexts contain the query substring, oldest first.
	Search(query string, limit int) []Record
}

// InMemoryStore is a process-local Store. It keeps records in insertion
// order and is safe for concurrent use.
//
// Search is a linear scan with case-insensitive substring matching. Suitable
// for tests and single-process tools; swap for a real index when archives
// grow large.
type InMemoryStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]Record
}

// NewInMemoryStore creates an empty episode archive.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]Record),
	}
}

// Save implements Store.
func (s *InMemoryStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if _, exists := s.records[rec.EpisodeID]; !exists {
		s.order = append(s.order, rec.EpisodeID)
	}
	s.records[rec.EpisodeID] = rec
	return nil
}

// Get implements Store.
func (s *InMemoryStore) Get(episodeID string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[episodeID]
	return rec, ok
}

// List implements Store.
func (s *InMemoryStore) List(agent string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		if agent == "" || rec.Agent == agent {
			out = append(out, rec)
		}
	}
	return out
}

// Search implements Store.
func (s *InMemoryStore) Search(query string, limit int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(query)
	out := make([]Record, 0, limit)
	for _, id := range s.order {
		if limit > 0 && len(out) >= limit {
			break
		}
		rec := s.records[id]
		if needle == "" || matches(rec, needle) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec Record, needle string) bool {
	if strings.Contains(strings.ToLower(rec.Question), needle) ||
		strings.Contains(strings.ToLower(rec.Answer), needle) {
		return true
	}
	for _, c := range rec.Contexts {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return false
}
