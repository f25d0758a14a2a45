// Copyright 2020, Square, Inc.

// Package errors provides errors reported to the user. These are mapped to a
// proto.Error by the API and sent to the user. All errors must implement the
// error interface and return a helpful error message. The message can be terse
// because it will be reported in context. For example, the VertexNotFound
// error message makes sense in response to "kvdagc show hosts web99" when
// "web99" does not exist.
//
// Errors from the graph itself (cycles, cross-graph links, missing attributes)
// are not wrapped here; the API maps them directly.
package errors

import (
	"fmt"
)

var _ error = GraphNotFound{}

type GraphNotFound struct {
	Graph string
}

func (e GraphNotFound) Error() string {
	return fmt.Sprintf("graph %s not found", e.Graph)
}

// --------------------------------------------------------------------------

var _ error = GraphExists{}

type GraphExists struct {
	Graph string
}

func (e GraphExists) Error() string {
	return fmt.Sprintf("graph %s already exists", e.Graph)
}

// --------------------------------------------------------------------------

var _ error = VertexNotFound{}

type VertexNotFound struct {
	Graph  string
	Vertex string
}

func (e VertexNotFound) Error() string {
	return fmt.Sprintf("vertex %s not found in graph %s", e.Vertex, e.Graph)
}

// --------------------------------------------------------------------------

var _ error = ErrInvalidRequest{}

type ErrInvalidRequest struct {
	Message string
}

func (e ErrInvalidRequest) Error() string {
	return e.Message
}
