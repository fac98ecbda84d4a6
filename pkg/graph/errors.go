package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrEmptyGraph      = errors.New("graph has no nodes")
	ErrNodeNotFound    = errors.New("node not found")
	ErrSelfLoop        = errors.New("self-referencing route")
	ErrUnknownStrategy = errors.New("unknown attack strategy")
	ErrNoConvergence   = errors.New("power iteration did not converge")
	ErrDisconnected    = errors.New("graph is not connected")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op      string // Operation that failed (e.g., "RemoveNode", "Subgraph")
	Entity  string // Entity type (e.g., "node", "route", "component")
	ID      NodeID // Entity ID (if applicable)
	Context string // Additional context
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// NodeError wraps a node-level failure.
func NodeError(op string, id NodeID, cause error) error {
	return &GraphError{Op: op, Entity: "node", ID: id, Cause: cause}
}

// RouteError wraps a route-level failure with both endpoints in context.
func RouteError(op string, from, to NodeID, cause error) error {
	return &GraphError{
		Op:      op,
		Entity:  "route",
		Context: fmt.Sprintf("%d-%d", from, to),
		Cause:   cause,
	}
}

// EmptyGraphError wraps ErrEmptyGraph with the failing operation.
func EmptyGraphError(op string) error {
	return &GraphError{Op: op, Entity: "graph", Cause: ErrEmptyGraph}
}

// IsNotFound returns true if the error is a node not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
