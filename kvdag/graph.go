// Copyright 2020, Square, Inc.

// Package kvdag provides a directed acyclic graph whose vertices and edges
// carry key-path attributes. A vertex inherits the attributes of its parents
// through its edges: the resolved view of a vertex is the resolved views of
// its edges merged in edge creation order, with its own attributes on top.
package kvdag

import (
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/keypath"
)

// A Graph is a directed acyclic graph of vertices. Vertices are stored in an
// arena and addressed by index; edges and reverse links hold indexes, not
// pointers.
//
// A Graph is not safe for concurrent use. Callers that share a graph between
// goroutines must serialize access.
type Graph struct {
	id       string
	name     string
	factory  keypath.Factory
	vertices []*Vertex
	byID     map[string]int
	logger   *log.Entry
}

// An Option configures a Graph created by New.
type Option func(*Graph)

// WithStoreFactory sets the factory used to create the attribute store of
// every vertex and edge. The default is keypath.NewStore. The factory must
// accept nil as an empty mapping.
func WithStoreFactory(f keypath.Factory) Option {
	return func(g *Graph) { g.factory = f }
}

// WithLogger sets the logger. Graph mutations are logged at debug level.
func WithLogger(e *log.Entry) Option {
	return func(g *Graph) { g.logger = e }
}

// WithName sets the graph name. The default name is the graph id.
func WithName(name string) Option {
	return func(g *Graph) { g.name = name }
}

// New returns an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		id:      xid.New().String(),
		factory: keypath.NewStore,
		byID:    map[string]int{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.name == "" {
		g.name = g.id
	}
	if g.logger == nil {
		g.logger = log.WithFields(log.Fields{})
	}
	g.logger = g.logger.WithField("graph", g.name)
	return g
}

func (g *Graph) ID() string {
	return g.id
}

func (g *Graph) Name() string {
	return g.name
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.vertices)
}

// NewVertex adds a vertex with a generated id. attrs is the initial
// attribute mapping and may be nil.
func (g *Graph) NewVertex(attrs interface{}) (*Vertex, error) {
	return g.NewNamedVertex(xid.New().String(), attrs)
}

// NewNamedVertex adds a vertex with the given id. It returns a
// DuplicateVertexError if the id is taken.
func (g *Graph) NewNamedVertex(id string, attrs interface{}) (*Vertex, error) {
	if _, ok := g.byID[id]; ok {
		return nil, DuplicateVertexError{Id: id}
	}
	store, err := g.factory(attrs)
	if err != nil {
		return nil, err
	}
	v := &Vertex{
		id:    id,
		graph: g,
		index: len(g.vertices),
	}
	v.attrNode = attrNode{attrs: store, self: v}
	g.vertices = append(g.vertices, v)
	g.byID[id] = v.index
	g.logger.WithField("vertex", id).Debug("vertex added")
	return v, nil
}

// Vertex returns the vertex with the given id.
func (g *Graph) Vertex(id string) (*Vertex, bool) {
	i, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return g.vertices[i], true
}

// Vertices returns the vertices that match preds in creation order.
func (g *Graph) Vertices(preds ...Predicate) []*Vertex {
	p := combine(preds)
	vs := make([]*Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		if v.Match(p) {
			vs = append(vs, v)
		}
	}
	return vs
}

// Edges returns every edge: vertices in creation order, then each vertex's
// edges in creation order.
func (g *Graph) Edges(preds ...Predicate) []*Edge {
	p := combine(preds)
	es := []*Edge{}
	for _, v := range g.vertices {
		for _, e := range v.edges {
			if e.Match(p) {
				es = append(es, e)
			}
		}
	}
	return es
}

// ForEach calls fn for every vertex that matches preds, in creation order,
// and stops at the first error, which it returns.
func (g *Graph) ForEach(fn func(*Vertex) error, preds ...Predicate) error {
	for _, v := range g.Vertices(preds...) {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------

func (g *Graph) newStore() keypath.Store {
	s, err := g.factory(nil)
	if err != nil {
		g.logger.Warnf("store factory rejected an empty mapping, using default store: %s", err)
		s, _ = keypath.NewStore(nil)
	}
	return s
}

// merge deep-merges src into dst. A store that rejects the merge keeps its
// prior contents and the rejection is logged, so the view lacks src.
func (g *Graph) merge(dst, src keypath.Store, fields log.Fields) {
	if err := dst.MergeInPlace(src); err != nil {
		g.logger.WithFields(fields).Warnf("store rejected merge, attributes dropped from resolved view: %s", err)
	}
}

// reaches returns true if to is from or is reachable from it by following
// edges.
func (g *Graph) reaches(from, to int) bool {
	if from == to {
		return true
	}
	seen := map[int]bool{from: true}
	stack := []int{from}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.vertices[i].edges {
			if e.to == to {
				return true
			}
			if !seen[e.to] {
				seen[e.to] = true
				stack = append(stack, e.to)
			}
		}
	}
	return false
}

// walk returns start and every vertex reachable from it through next, in
// breadth-first discovery order, without repeats.
func (g *Graph) walk(start int, next func(*Vertex) []int) []int {
	seen := map[int]bool{start: true}
	order := []int{start}
	for i := 0; i < len(order); i++ {
		for _, j := range next(g.vertices[order[i]]) {
			if !seen[j] {
				seen[j] = true
				order = append(order, j)
			}
		}
	}
	return order
}

// filter maps indexes to vertices, keeping those that match preds.
func (g *Graph) filter(idx []int, preds []Predicate) []*Vertex {
	p := combine(preds)
	vs := make([]*Vertex, 0, len(idx))
	for _, i := range idx {
		if v := g.vertices[i]; v.Match(p) {
			vs = append(vs, v)
		}
	}
	return vs
}

// resolve returns the resolved view of vertex i. Views computed during one
// call are kept in memo so shared ancestors are resolved once.
func (g *Graph) resolve(i int, memo map[int]keypath.Store) keypath.Store {
	if view, ok := memo[i]; ok {
		return view
	}
	v := g.vertices[i]
	view := g.newStore()
	for _, e := range v.edges {
		g.merge(view, e.resolve(memo), log.Fields{"vertex": v.id, "edge": e.id})
	}
	g.merge(view, v.attrs, log.Fields{"vertex": v.id})
	memo[i] = view
	return view
}
