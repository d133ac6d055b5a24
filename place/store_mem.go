package place

import (
	"fmt"
	"slices"
	"sync"
)

// MemStore is a Database held in memory.
type MemStore struct {
	mu     sync.RWMutex
	places map[string]*Place
	meta   map[string][]byte
}

func NewMemStore(places ...*Place) *MemStore {
	s := &MemStore{places: map[string]*Place{}, meta: map[string][]byte{}}
	for _, p := range places {
		s.places[p.Handle] = p
	}
	return s
}

func (s *MemStore) PutPlace(p *Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places[p.Handle] = p
	return nil
}

func (s *MemStore) PlaceFromHandle(handle string) (*Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.places[handle]
	if !ok {
		return nil, fmt.Errorf("%w: place %s", ErrNotFound, handle)
	}
	return p, nil
}

func (s *MemStore) PlaceHierTypes() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, p := range s.places {
		out = appendHierTypes(out, p)
	}
	slices.Sort(out)
	return out, nil
}

func (s *MemStore) Metadata(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.meta[key]), nil
}

func (s *MemStore) SetMetadata(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[key] = slices.Clone(value)
	return nil
}
