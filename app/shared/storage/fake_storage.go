package storage

import (
	"context"
	"sync"
)

// FakeStorage is a fake implementation of ISInterface for testing.
type FakeStorage[T any] struct {
	mu   sync.Mutex
	data map[string]T
}

// NewFakeStorage creates a new instance of FakeStorage.
func NewFakeStorage[T any]() *FakeStorage[T] {
	return &FakeStorage[T]{
		data: make(map[string]T),
	}
}

// Get retrieves the item from the in-memory map.
func (f *FakeStorage[T]) Get(ctx context.Context, interactionID string) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[interactionID]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return val, nil
}

// Set stores the item in the in-memory map.
func (f *FakeStorage[T]) Set(ctx context.Context, interactionID string, value T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[interactionID] = value
	return nil
}

// Delete removes the item from the in-memory map.
func (f *FakeStorage[T]) Delete(ctx context.Context, interactionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, interactionID)
}

// Take removes the item and returns it.
func (f *FakeStorage[T]) Take(ctx context.Context, interactionID string) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[interactionID]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	delete(f.data, interactionID)
	return val, nil
}

// Len reports how many items are held.
func (f *FakeStorage[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

var _ ISInterface[any] = (*FakeStorage[any])(nil)
