package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap holds the named gameplay metrics of one kind (counters or labels)
// The game loop keeps the pointer Get hands out, the lock only guards the name table
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the counter or label for key, registering it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok = m.items[key]; !ok {
		ptr = new(T)
		m.items[key] = ptr
	}
	return ptr
}

// Names lists the registered metric names, sorted
func (m *MetricMap[T]) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.items))
}

// Range visits every metric in name order for the /stats snapshot
// fn runs after the name table is released, so it may call Get
func (m *MetricMap[T]) Range(fn func(name string, ptr *T)) {
	names := m.Names()
	m.mu.RLock()
	ptrs := make([]*T, len(names))
	for i, name := range names {
		ptrs[i] = m.items[name]
	}
	m.mu.RUnlock()

	for i, name := range names {
		fn(name, ptrs[i])
	}
}

// Len returns how many metrics are registered
func (m *MetricMap[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
