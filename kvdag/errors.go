// Copyright 2020, Square, Inc.

package kvdag

import (
	"errors"
	"fmt"

	"github.com/square/kvdag/keypath"
)

var ErrNilVertex = errors.New("nil vertex")

var _ error = CrossGraphError{}

// CrossGraphError is returned when an operation involves vertices from
// different graphs.
type CrossGraphError struct {
	Op     string // "link", "reaches"
	Vertex string
	Other  string
}

func (e CrossGraphError) Error() string {
	return fmt.Sprintf("%s: vertices %s and %s are not in the same graph", e.Op, e.Vertex, e.Other)
}

// --------------------------------------------------------------------------

var _ error = CyclicError{}

// CyclicError is returned when linking From to To would create a cycle
// because To already reaches From.
type CyclicError struct {
	From string
	To   string
}

func (e CyclicError) Error() string {
	return fmt.Sprintf("edge %s -> %s would make the graph cyclic", e.From, e.To)
}

// --------------------------------------------------------------------------

var _ error = DuplicateVertexError{}

type DuplicateVertexError struct {
	Id string
}

func (e DuplicateVertexError) Error() string {
	return fmt.Sprintf("vertex %s already exists", e.Id)
}

// --------------------------------------------------------------------------

var _ error = AttrNotFound{}

// AttrNotFound is returned by strict attribute lookups on vertices and edges.
// It wraps the keypath.PathNotFound error from the store that was read.
type AttrNotFound struct {
	Node    string
	Key     keypath.Path
	Shallow bool // true if only local attributes were read
	Err     error
}

func (e AttrNotFound) Error() string {
	view := "resolved"
	if e.Shallow {
		view = "local"
	}
	return fmt.Sprintf("attribute %s not found in %s attributes of %s", e.Key, view, e.Node)
}

func (e AttrNotFound) Unwrap() error {
	return e.Err
}

// --------------------------------------------------------------------------

var _ error = PredicateError{}

// PredicateError is returned by ParsePredicate for malformed predicates.
type PredicateError struct {
	Key    string
	Reason string
}

func (e PredicateError) Error() string {
	return fmt.Sprintf("invalid predicate key %q: %s", e.Key, e.Reason)
}
