package config

import (
	"fmt"
	"os"
)

// Cloner is implemented by domain values that can deep-copy themselves.
// The copy must share no mutable state with the receiver.
type Cloner[T any] interface {
	Clone() T
}

// Store wraps one configuration domain's state in a draft/commit/rollback
// protocol. It holds two slices of state: the persisted snapshot (the last
// committed, durable-eligible copy) and the working draft (the mutable copy
// every mutation touches).
//
// Callers mutate Latest() in place, optimistically, then pair the mutation
// with either Apply (success) or Discard (failure) before any other command
// touches the same domain — there is exactly one shared working draft per
// domain. Apply marks the draft durable; SaveFile flushes the persisted
// snapshot to disk.
type Store[T Cloner[T]] struct {
	path      string
	encode    func(T) ([]byte, error)
	persisted T
	working   T
}

// NewStore creates a Store over an initial domain value. The value becomes
// both the persisted snapshot and the working draft (via Clone).
// encode serializes the domain for SaveFile.
func NewStore[T Cloner[T]](path string, initial T, encode func(T) ([]byte, error)) *Store[T] {
	return &Store[T]{
		path:      path,
		encode:    encode,
		persisted: initial,
		working:   initial.Clone(),
	}
}

// Latest returns the mutable working draft. Callers mutate it in place; a
// mutation that later fails validation leaves the draft mutated until the
// caller invokes Discard.
func (s *Store[T]) Latest() T {
	return s.working
}

// Data returns the persisted snapshot, the copy SaveFile serializes.
// Immediately after Apply it is equal to Latest.
func (s *Store[T]) Data() T {
	return s.persisted
}

// Apply commits the working draft into the persisted snapshot, making it
// eligible for SaveFile. Applying twice in a row is a no-op.
func (s *Store[T]) Apply() {
	s.persisted = s.working.Clone()
}

// Discard resets the working draft to the last-applied persisted snapshot,
// undoing every mutation since the previous Apply. Discarding immediately
// after Apply is a no-op.
func (s *Store[T]) Discard() {
	s.working = s.persisted.Clone()
}

// SaveFile serializes the persisted snapshot to the store's file, using an
// atomic locked write.
func (s *Store[T]) SaveFile() error {
	data, err := s.encode(s.persisted)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	return withFileLock(s.path, func() error {
		return atomicWriteFile(s.path, data, os.FileMode(0o644))
	})
}

// Path returns the store's file path.
func (s *Store[T]) Path() string {
	return s.path
}
