// Package stack is a checked LIFO used by the turtles for branch save/restore.
package stack

import "errors"

// ErrUnderflow is returned when popping or peeking an empty stack. In a
// generated symbol stream it means the brackets were not balanced.
var ErrUnderflow = errors.New("stack underflow")

// Stack is a slice backed LIFO.
type Stack[T any] struct {
	items []T
}

// Push adds v on top.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top item.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, ErrUnderflow
	}
	v := s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v, nil
}

// Peek returns the top item without removing it.
func (s *Stack[T]) Peek() (T, error) {
	if len(s.items) == 0 {
		var zero T
		return zero, ErrUnderflow
	}
	return s.items[len(s.items)-1], nil
}

// Len returns the number of items.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear empties the stack, keeping its capacity.
func (s *Stack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
