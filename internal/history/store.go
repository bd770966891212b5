package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"dualwell-tea/internal/engine"
	"dualwell-tea/internal/model"
)

// Run is one recorded evaluation: the inputs snapshot alongside the
// derived quantities and metrics it produced.
type Run struct {
	ID        string
	Label     string
	CreatedAt time.Time

	Inputs  model.ProjectInputs
	Derived model.DerivedQuantities
	Metrics engine.Metrics
}

// Store keeps runs in memory for the life of the process, in the order
// they were recorded. There is no persistence; the run table is session
// state, cleared on restart or on request.
type Store struct {
	mu   sync.RWMutex
	runs []Run
	byID map[string]int
}

func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// Add records one evaluation and returns the stored run with its
// assigned ID.
func (s *Store) Add(label string, in model.ProjectInputs, res *engine.Result) Run {
	run := Run{
		ID:        uuid.NewString(),
		Label:     label,
		CreatedAt: time.Now().UTC(),
		Inputs:    in,
		Derived:   res.Derived,
		Metrics:   res.Metrics,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[run.ID] = len(s.runs)
	s.runs = append(s.runs, run)
	return run
}

// List returns all runs oldest-first. The slice is a copy; callers may
// hold it across later writes.
func (s *Store) List() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Run, len(s.runs))
	copy(out, s.runs)
	return out
}

func (s *Store) Get(id string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return Run{}, false
	}
	return s.runs[idx], true
}

// Clear drops every run and reports how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.runs)
	s.runs = nil
	s.byID = make(map[string]int)
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
