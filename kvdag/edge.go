// Copyright 2020, Square, Inc.

package kvdag

import (
	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/keypath"
)

// An Edge links a vertex to one of its parents. Its attributes overlay the
// parent's resolved view for the source vertex only. Edges are created with
// Vertex.LinkTo and never change target.
type Edge struct {
	attrNode
	id    string
	graph *Graph
	from  int // source vertex index
	to    int // target vertex index
}

func (e *Edge) ID() string {
	return e.id
}

// Source returns the vertex that owns the edge.
func (e *Edge) Source() *Vertex {
	return e.graph.vertices[e.from]
}

// Target returns the vertex the edge points to.
func (e *Edge) Target() *Vertex {
	return e.graph.vertices[e.to]
}

// ResolvedView returns the target's resolved view with the edge's local
// attributes merged over it.
func (e *Edge) ResolvedView() keypath.Store {
	return e.resolve(map[int]keypath.Store{})
}

// Reaches returns true if v is the target or is reachable from it.
func (e *Edge) Reaches(v *Vertex) (bool, error) {
	if v == nil {
		return false, ErrNilVertex
	}
	if v.graph != e.graph {
		return false, CrossGraphError{Op: "reaches", Vertex: e.Source().id, Other: v.id}
	}
	return e.graph.reaches(e.to, v.index), nil
}

func (e *Edge) resolve(memo map[int]keypath.Store) keypath.Store {
	result := e.graph.newStore()
	fields := log.Fields{"edge": e.id}
	e.graph.merge(result, e.graph.resolve(e.to, memo), fields)
	e.graph.merge(result, e.attrs, fields)
	return result
}

func (e *Edge) property(p Property) (interface{}, bool) {
	switch p {
	case PropKind:
		return "edge", true
	case PropID:
		return e.id, true
	case PropAttrCount:
		return e.attrs.Len(), true
	case PropParentCount:
		return 1, true
	case PropChildCount:
		return 0, true
	}
	return nil, false
}
