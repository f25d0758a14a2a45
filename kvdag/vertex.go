// Copyright 2020, Square, Inc.

package kvdag

import (
	"fmt"

	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/keypath"
)

// Ordering is the result of Vertex.Compare.
type Ordering int

const (
	Less    Ordering = -1 // the vertex reaches the other: descendant before ancestor
	Equal   Ordering = 0  // same vertex, or no path either way
	Greater Ordering = 1  // the other vertex reaches this one
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	}
	return "equal"
}

// A Vertex is a node in a Graph. Its outgoing edges point to its parents,
// from which it inherits attributes.
type Vertex struct {
	attrNode
	id    string
	graph *Graph
	index int
	edges []*Edge

	// rev holds the source index of every edge that targets this vertex,
	// one entry per edge. It only answers Children and Descendants: it is
	// never read for attributes or for reachability.
	rev []int
}

func (v *Vertex) ID() string {
	return v.id
}

// Graph returns the graph that owns the vertex.
func (v *Vertex) Graph() *Graph {
	return v.graph
}

func (v *Vertex) String() string {
	return fmt.Sprintf("vertex %s (%d attrs, %d edges)", v.id, v.attrs.Len(), len(v.edges))
}

// LinkTo creates an edge from v to other, making other a parent of v. attrs
// is the edge's initial attribute mapping and may be nil.
//
// It returns a CrossGraphError if other is in a different graph and a
// CyclicError if other already reaches v. Nothing is changed on error.
func (v *Vertex) LinkTo(other *Vertex, attrs interface{}) (*Edge, error) {
	if other == nil {
		return nil, ErrNilVertex
	}
	if other.graph != v.graph {
		return nil, CrossGraphError{Op: "link", Vertex: v.id, Other: other.id}
	}
	logger := v.graph.logger.WithFields(log.Fields{"from": v.id, "to": other.id})
	if v.graph.reaches(other.index, v.index) {
		logger.Debug("link rejected: would create a cycle")
		return nil, CyclicError{From: v.id, To: other.id}
	}
	store, err := v.graph.factory(attrs)
	if err != nil {
		return nil, err
	}

	e := &Edge{
		id:    xid.New().String(),
		graph: v.graph,
		from:  v.index,
		to:    other.index,
	}
	e.attrNode = attrNode{attrs: store, self: e}
	v.edges = append(v.edges, e)
	other.rev = append(other.rev, v.index)
	logger.WithField("edge", e.id).Debug("linked")
	return e, nil
}

// Edges returns the outgoing edges in the order they were created.
func (v *Vertex) Edges() []*Edge {
	return append([]*Edge{}, v.edges...)
}

// Parents returns the distinct targets of v's edges that match preds, in the
// order they were first linked.
func (v *Vertex) Parents(preds ...Predicate) []*Vertex {
	return v.graph.filter(v.parentIndexes(), preds)
}

// Children returns the distinct vertices with an edge to v that match preds,
// in the order they were first linked.
func (v *Vertex) Children(preds ...Predicate) []*Vertex {
	return v.graph.filter(v.childIndexes(), preds)
}

// Reaches returns true if other is v or an ancestor of v.
func (v *Vertex) Reaches(other *Vertex) (bool, error) {
	if other == nil {
		return false, ErrNilVertex
	}
	if other.graph != v.graph {
		return false, CrossGraphError{Op: "reaches", Vertex: v.id, Other: other.id}
	}
	return v.graph.reaches(v.index, other.index), nil
}

// ReachedBy returns true if v is other or an ancestor of other.
func (v *Vertex) ReachedBy(other *Vertex) (bool, error) {
	if other == nil {
		return false, ErrNilVertex
	}
	if other.graph != v.graph {
		return false, CrossGraphError{Op: "reaches", Vertex: v.id, Other: other.id}
	}
	return v.graph.reaches(other.index, v.index), nil
}

// Ancestors returns v and every vertex reachable from it that matches preds.
// Non-matching vertices are still traversed.
func (v *Vertex) Ancestors(preds ...Predicate) []*Vertex {
	return v.graph.filter(v.graph.walk(v.index, (*Vertex).parentIndexes), preds)
}

// Descendants returns v and every vertex that reaches it that matches preds.
func (v *Vertex) Descendants(preds ...Predicate) []*Vertex {
	return v.graph.filter(v.graph.walk(v.index, (*Vertex).childIndexes), preds)
}

// Compare orders v against other: Less if other is a proper ancestor of v,
// Greater if other is a proper descendant, else Equal. Equal does not imply
// the vertices hold the same attributes.
func (v *Vertex) Compare(other *Vertex) (Ordering, error) {
	if other == v {
		return Equal, nil
	}
	reaches, err := v.Reaches(other)
	if err != nil {
		return Equal, err
	}
	if reaches {
		return Less, nil
	}
	if v.graph.reaches(other.index, v.index) {
		return Greater, nil
	}
	return Equal, nil
}

// ResolvedView returns the attributes visible from v: the resolved views of
// its edges merged in the order the edges were created, so the last linked
// parent wins conflicts, with v's local attributes merged over everything.
func (v *Vertex) ResolvedView() keypath.Store {
	return v.graph.resolve(v.index, map[int]keypath.Store{})
}

func (v *Vertex) property(p Property) (interface{}, bool) {
	switch p {
	case PropKind:
		return "vertex", true
	case PropID:
		return v.id, true
	case PropAttrCount:
		return v.attrs.Len(), true
	case PropParentCount:
		return len(v.parentIndexes()), true
	case PropChildCount:
		return len(v.childIndexes()), true
	}
	return nil, false
}

func (v *Vertex) parentIndexes() []int {
	idx := make([]int, 0, len(v.edges))
	for _, e := range v.edges {
		idx = append(idx, e.to)
	}
	return unique(idx)
}

func (v *Vertex) childIndexes() []int {
	return unique(v.rev)
}

// unique returns idx without repeats, keeping first occurrences.
func unique(idx []int) []int {
	seen := make(map[int]bool, len(idx))
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}
