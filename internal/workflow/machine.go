package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownState      = errors.New("unknown status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// TransitionError names the rejected edge.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move from %q to %q", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Machine is a closed set of states and the edges allowed between them.
type Machine[S ~string] struct {
	initial S
	edges   map[S]map[S]bool
}

// New builds a machine. Every state must appear as a key of edges, even
// terminal ones.
func New[S ~string](initial S, edges map[S][]S) *Machine[S] {
	m := &Machine[S]{initial: initial, edges: make(map[S]map[S]bool, len(edges))}
	for from, tos := range edges {
		set := make(map[S]bool, len(tos))
		for _, to := range tos {
			set[to] = true
		}
		m.edges[from] = set
	}
	return m
}

// Initial is the state new records start in.
func (m *Machine[S]) Initial() S { return m.initial }

// Valid reports whether s belongs to the machine.
func (m *Machine[S]) Valid(s S) bool {
	_, ok := m.edges[s]
	return ok
}

// Parse validates a raw value.
func (m *Machine[S]) Parse(raw string) (S, error) {
	s := S(raw)
	if !m.Valid(s) {
		return s, fmt.Errorf("%w: %q", ErrUnknownState, raw)
	}
	return s, nil
}

// CanMove reports whether from → to is allowed. Staying put is always allowed.
func (m *Machine[S]) CanMove(from, to S) bool {
	if from == to {
		return m.Valid(from)
	}
	return m.edges[from][to]
}

// Move validates a transition.
func (m *Machine[S]) Move(from, to S) (S, error) {
	if !m.Valid(to) {
		return from, fmt.Errorf("%w: %q", ErrUnknownState, string(to))
	}
	if !m.CanMove(from, to) {
		return from, &TransitionError{From: string(from), To: string(to)}
	}
	return to, nil
}

// States lists every state of the machine.
func (m *Machine[S]) States() []S {
	out := make([]S, 0, len(m.edges))
	for s := range m.edges {
		out = append(out, s)
	}
	return out
}
