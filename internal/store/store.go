package store

import (
	"fmt"
	"sort"
	"sync"

	"ordgen/internal/model"
)

// Store archives generated orders keyed by OrderID.
type Store interface {
	Put(o model.Order) error
	Get(orderID string) (model.Order, bool)
	Range(fn func(o model.Order) error) error
	Count() (int, error)
}

// MemoryStore is a simple thread-safe map store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]model.Order)}
}

func (s *MemoryStore) Put(o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[o.OrderID] = o
	return nil
}

// Append satisfies the sink interface so the archive can be wired as an
// output alongside file and Kafka sinks.
func (s *MemoryStore) Append(o model.Order) error { return s.Put(o) }

func (s *MemoryStore) Get(orderID string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.data[orderID]
	return o, ok
}

// Range visits archived orders in OrderID order.
func (s *MemoryStore) Range(fn func(o model.Order) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn(s.data[k]); err != nil {
			return fmt.Errorf("range callback failed: %w", err)
		}
	}
	return nil
}

func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}
