package sim

import "sync"

// Store holds the current pair of input series through the engine built
// from them. The engine is swapped wholesale on data refresh so readers
// always see a consistent series pair, nothing is mutated in place.
type Store struct {
	mu     sync.RWMutex
	engine *Engine
}

func NewStore() *Store {
	return &Store{}
}

// Swap replaces the current engine with one built from the given series
// and returns it.
func (s *Store) Swap(load, solar Series, policy AlignPolicy) *Engine {
	engine := NewEngine(load, solar, policy)
	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()
	return engine
}

// Engine returns the current engine, or nil before the first data load.
func (s *Store) Engine() *Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}
