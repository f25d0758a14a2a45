// Copyright 2020, Square, Inc.

// Package graphs provides a Manager that reads and changes the graphs in a
// registry. All API controllers call the Manager; it converts graph objects
// to and from proto types and takes the graph locks.
package graphs

import (
	"encoding/json"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/errors"
	"github.com/square/kvdag/kvdag"
	"github.com/square/kvdag/kvdag-server/registry"
	"github.com/square/kvdag/proto"
)

// A Manager reads and changes named graphs.
type Manager interface {
	// Graphs returns a summary of every graph, sorted by name.
	Graphs() ([]proto.GraphInfo, error)

	// Graph returns a summary of one graph.
	Graph(name string) (proto.GraphInfo, error)

	// CreateGraph creates an empty graph.
	CreateGraph(name string) (proto.GraphInfo, error)

	// Vertices returns the vertices of a graph that match q.Match.
	Vertices(graph string, q proto.VertexQuery) ([]proto.Vertex, error)

	// CreateVertex creates a vertex. If cv.Id is empty, an id is generated.
	CreateVertex(graph string, cv proto.CreateVertex) (proto.Vertex, error)

	// Vertex returns one vertex with its local attributes.
	Vertex(graph, id string) (proto.Vertex, error)

	// MergeAttrs deep-merges attrs into the local attributes of a vertex.
	MergeAttrs(graph, id string, attrs map[string]interface{}) (proto.Vertex, error)

	// Resolved returns the resolved view of a vertex. q.Key reads a single
	// value, q.Filter keeps only some subtrees.
	Resolved(graph, id string, q proto.VertexQuery) (proto.Resolved, error)

	// Ancestors returns the vertex and every vertex it reaches that match
	// q.Match.
	Ancestors(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error)

	// Descendants returns the vertex and every vertex that reaches it that
	// match q.Match.
	Descendants(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error)

	// Compare returns the partial order of two vertices.
	Compare(graph, id, other string) (proto.Ordering, error)

	// Link creates an edge from a vertex to ce.Parent.
	Link(graph, id string, ce proto.CreateEdge) (proto.Edge, error)

	// Edges returns the edges of a graph that match q.Match.
	Edges(graph string, q proto.VertexQuery) ([]proto.Edge, error)

	// Document returns a document that rebuilds the graph.
	Document(graph string) (*document.Document, error)
}

type manager struct {
	reg registry.Registry
}

// NewManager returns a Manager of the graphs in reg.
func NewManager(reg registry.Registry) Manager {
	return &manager{
		reg: reg,
	}
}

func (m *manager) Graphs() ([]proto.GraphInfo, error) {
	names := m.reg.Names()
	infos := make([]proto.GraphInfo, 0, len(names))
	for _, name := range names {
		info, err := m.Graph(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (m *manager) Graph(name string) (proto.GraphInfo, error) {
	e, err := m.reg.Get(name)
	if err != nil {
		return proto.GraphInfo{}, err
	}
	e.RLock()
	defer e.RUnlock()
	return graphInfo(e), nil
}

func (m *manager) CreateGraph(name string) (proto.GraphInfo, error) {
	if name == "" {
		return proto.GraphInfo{}, errors.ErrInvalidRequest{Message: "graph name not set"}
	}
	e, err := m.reg.Add(kvdag.New(kvdag.WithName(name)), "")
	if err != nil {
		return proto.GraphInfo{}, err
	}
	log.Infof("created graph %s", name)
	return graphInfo(e), nil
}

func (m *manager) Vertices(graph string, q proto.VertexQuery) ([]proto.Vertex, error) {
	preds, err := predicates(q)
	if err != nil {
		return nil, err
	}
	e, err := m.reg.Get(graph)
	if err != nil {
		return nil, err
	}
	e.RLock()
	defer e.RUnlock()
	return vertexList(e.Graph.Vertices(preds...)), nil
}

func (m *manager) CreateVertex(graph string, cv proto.CreateVertex) (proto.Vertex, error) {
	e, err := m.reg.Get(graph)
	if err != nil {
		return proto.Vertex{}, err
	}
	e.Lock()
	defer e.Unlock()

	var v *kvdag.Vertex
	if cv.Id == "" {
		v, err = e.Graph.NewVertex(cv.Attrs)
	} else {
		v, err = e.Graph.NewNamedVertex(cv.Id, cv.Attrs)
	}
	if err != nil {
		return proto.Vertex{}, err
	}
	return vertex(v), nil
}

func (m *manager) Vertex(graph, id string) (proto.Vertex, error) {
	e, v, err := m.read(graph, id)
	if err != nil {
		return proto.Vertex{}, err
	}
	defer e.RUnlock()
	return vertex(v), nil
}

func (m *manager) MergeAttrs(graph, id string, attrs map[string]interface{}) (proto.Vertex, error) {
	e, err := m.reg.Get(graph)
	if err != nil {
		return proto.Vertex{}, err
	}
	e.Lock()
	defer e.Unlock()
	v, ok := e.Graph.Vertex(id)
	if !ok {
		return proto.Vertex{}, errors.VertexNotFound{Graph: graph, Vertex: id}
	}
	if err := v.Merge(attrs); err != nil {
		return proto.Vertex{}, err
	}
	return vertex(v), nil
}

func (m *manager) Resolved(graph, id string, q proto.VertexQuery) (proto.Resolved, error) {
	e, v, err := m.read(graph, id)
	if err != nil {
		return proto.Resolved{}, err
	}
	defer e.RUnlock()

	r := proto.Resolved{Vertex: v.ID()}
	if q.Key != "" {
		val, err := v.Fetch(q.Key)
		if err != nil {
			return proto.Resolved{}, err
		}
		r.Key = q.Key
		r.Value = val
		return r, nil
	}
	if len(q.Filter) > 0 {
		paths := make([]interface{}, len(q.Filter))
		for i, p := range q.Filter {
			paths[i] = p
		}
		view, err := v.Filter(paths...)
		if err != nil {
			return proto.Resolved{}, err
		}
		r.Attrs = view.ToMap()
		return r, nil
	}
	r.Attrs = v.ToMap()
	return r, nil
}

func (m *manager) Ancestors(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error) {
	return m.walk(graph, id, q, (*kvdag.Vertex).Ancestors)
}

func (m *manager) Descendants(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error) {
	return m.walk(graph, id, q, (*kvdag.Vertex).Descendants)
}

func (m *manager) Compare(graph, id, other string) (proto.Ordering, error) {
	e, v, err := m.read(graph, id)
	if err != nil {
		return proto.Ordering{}, err
	}
	defer e.RUnlock()
	w, ok := e.Graph.Vertex(other)
	if !ok {
		return proto.Ordering{}, errors.VertexNotFound{Graph: graph, Vertex: other}
	}
	o, err := v.Compare(w)
	if err != nil {
		return proto.Ordering{}, err
	}
	return proto.Ordering{Vertex: id, Other: other, Ordering: o.String()}, nil
}

func (m *manager) Link(graph, id string, ce proto.CreateEdge) (proto.Edge, error) {
	if ce.Parent == "" {
		return proto.Edge{}, errors.ErrInvalidRequest{Message: "parent not set"}
	}
	e, err := m.reg.Get(graph)
	if err != nil {
		return proto.Edge{}, err
	}
	e.Lock()
	defer e.Unlock()
	v, ok := e.Graph.Vertex(id)
	if !ok {
		return proto.Edge{}, errors.VertexNotFound{Graph: graph, Vertex: id}
	}
	parent, ok := e.Graph.Vertex(ce.Parent)
	if !ok {
		return proto.Edge{}, errors.VertexNotFound{Graph: graph, Vertex: ce.Parent}
	}
	edge, err := v.LinkTo(parent, ce.Attrs)
	if err != nil {
		return proto.Edge{}, err
	}
	return edgeProto(edge), nil
}

func (m *manager) Edges(graph string, q proto.VertexQuery) ([]proto.Edge, error) {
	preds, err := predicates(q)
	if err != nil {
		return nil, err
	}
	e, err := m.reg.Get(graph)
	if err != nil {
		return nil, err
	}
	e.RLock()
	defer e.RUnlock()
	edges := e.Graph.Edges(preds...)
	out := make([]proto.Edge, len(edges))
	for i, edge := range edges {
		out[i] = edgeProto(edge)
	}
	return out, nil
}

func (m *manager) Document(graph string) (*document.Document, error) {
	e, err := m.reg.Get(graph)
	if err != nil {
		return nil, err
	}
	e.RLock()
	defer e.RUnlock()
	return document.Export(e.Graph), nil
}

// --------------------------------------------------------------------------

// read returns the entry, read-locked, and the vertex. The caller must unlock
// the entry if err is nil.
func (m *manager) read(graph, id string) (*registry.Entry, *kvdag.Vertex, error) {
	e, err := m.reg.Get(graph)
	if err != nil {
		return nil, nil, err
	}
	e.RLock()
	v, ok := e.Graph.Vertex(id)
	if !ok {
		e.RUnlock()
		return nil, nil, errors.VertexNotFound{Graph: graph, Vertex: id}
	}
	return e, v, nil
}

func (m *manager) walk(graph, id string, q proto.VertexQuery, fn func(*kvdag.Vertex, ...kvdag.Predicate) []*kvdag.Vertex) ([]proto.Vertex, error) {
	preds, err := predicates(q)
	if err != nil {
		return nil, err
	}
	e, v, err := m.read(graph, id)
	if err != nil {
		return nil, err
	}
	defer e.RUnlock()
	return vertexList(fn(v, preds...)), nil
}

// predicates parses q.Match, a JSON object, into a predicate.
func predicates(q proto.VertexQuery) ([]kvdag.Predicate, error) {
	if strings.TrimSpace(q.Match) == "" {
		return nil, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(q.Match), &m); err != nil {
		return nil, errors.ErrInvalidRequest{Message: "match is not a JSON object: " + err.Error()}
	}
	p, err := kvdag.ParsePredicate(m)
	if err != nil {
		return nil, err
	}
	return []kvdag.Predicate{p}, nil
}

func graphInfo(e *registry.Entry) proto.GraphInfo {
	return proto.GraphInfo{
		Name:     e.Graph.Name(),
		Id:       e.Graph.ID(),
		Vertices: e.Graph.Len(),
		Edges:    len(e.Graph.Edges()),
		File:     e.File,
	}
}

func vertex(v *kvdag.Vertex) proto.Vertex {
	pv := proto.Vertex{
		Id:       v.ID(),
		Attrs:    v.Attrs().ToMap(),
		Parents:  ids(v.Parents()),
		Children: ids(v.Children()),
	}
	for _, e := range v.Edges() {
		pv.Edges = append(pv.Edges, edgeProto(e))
	}
	return pv
}

func vertexList(vs []*kvdag.Vertex) []proto.Vertex {
	out := make([]proto.Vertex, len(vs))
	for i, v := range vs {
		out[i] = vertex(v)
	}
	return out
}

func edgeProto(e *kvdag.Edge) proto.Edge {
	return proto.Edge{
		Id:     e.ID(),
		Source: e.Source().ID(),
		Target: e.Target().ID(),
		Attrs:  e.Attrs().ToMap(),
	}
}

func ids(vs []*kvdag.Vertex) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID()
	}
	return out
}
