package aoc

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfLoop is returned when an edge connects a node to itself.
	ErrSelfLoop = errors.New("aoc: self-loop not allowed")

	// ErrSearchAborted is returned when a clique search is stopped by its
	// context before it could finish. The context error is wrapped as well.
	ErrSearchAborted = errors.New("aoc: clique search aborted")
)

// ParseError reports a malformed pair record.
type ParseError struct {
	Line   int // 1-based
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("aoc: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvariantError reports a Graph whose adjacency is inconsistent. It is
// never expected from a Graph made by Builder and indicates a bug.
type InvariantError struct {
	Node   int
	Other  int
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("aoc: graph invariant violated at nodes %d/%d: %s", e.Node, e.Other, e.Reason)
}
