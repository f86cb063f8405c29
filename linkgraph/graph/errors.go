package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned (possibly wrapped) when an operation
	// receives input that violates its preconditions, e.g. an empty graph.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownPage is returned when a page lookup refers to a page that
	// is not part of the graph. It wraps ErrInvalidInput.
	ErrUnknownPage = fmt.Errorf("%w: unknown page", ErrInvalidInput)

	// ErrEmptyGraph is returned when an operation requires at least one
	// page. It wraps ErrInvalidInput.
	ErrEmptyGraph = fmt.Errorf("%w: empty graph", ErrInvalidInput)
)
