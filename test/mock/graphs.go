// Copyright 2020, Square, Inc.

package mock

import (
	"errors"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/proto"
)

var (
	ErrGraphManager = errors.New("forced error in graph manager")
	ErrKVSClient    = errors.New("forced error in kvs client")
)

// GraphManager implements graphs.Manager. Methods without a Func return zero
// values.
type GraphManager struct {
	GraphsFunc       func() ([]proto.GraphInfo, error)
	GraphFunc        func(string) (proto.GraphInfo, error)
	CreateGraphFunc  func(string) (proto.GraphInfo, error)
	VerticesFunc     func(string, proto.VertexQuery) ([]proto.Vertex, error)
	CreateVertexFunc func(string, proto.CreateVertex) (proto.Vertex, error)
	VertexFunc       func(string, string) (proto.Vertex, error)
	MergeAttrsFunc   func(string, string, map[string]interface{}) (proto.Vertex, error)
	ResolvedFunc     func(string, string, proto.VertexQuery) (proto.Resolved, error)
	AncestorsFunc    func(string, string, proto.VertexQuery) ([]proto.Vertex, error)
	DescendantsFunc  func(string, string, proto.VertexQuery) ([]proto.Vertex, error)
	CompareFunc      func(string, string, string) (proto.Ordering, error)
	LinkFunc         func(string, string, proto.CreateEdge) (proto.Edge, error)
	EdgesFunc        func(string, proto.VertexQuery) ([]proto.Edge, error)
	DocumentFunc     func(string) (*document.Document, error)
}

func (m *GraphManager) Graphs() ([]proto.GraphInfo, error) {
	if m.GraphsFunc != nil {
		return m.GraphsFunc()
	}
	return []proto.GraphInfo{}, nil
}

func (m *GraphManager) Graph(name string) (proto.GraphInfo, error) {
	if m.GraphFunc != nil {
		return m.GraphFunc(name)
	}
	return proto.GraphInfo{}, nil
}

func (m *GraphManager) CreateGraph(name string) (proto.GraphInfo, error) {
	if m.CreateGraphFunc != nil {
		return m.CreateGraphFunc(name)
	}
	return proto.GraphInfo{}, nil
}

func (m *GraphManager) Vertices(graph string, q proto.VertexQuery) ([]proto.Vertex, error) {
	if m.VerticesFunc != nil {
		return m.VerticesFunc(graph, q)
	}
	return []proto.Vertex{}, nil
}

func (m *GraphManager) CreateVertex(graph string, cv proto.CreateVertex) (proto.Vertex, error) {
	if m.CreateVertexFunc != nil {
		return m.CreateVertexFunc(graph, cv)
	}
	return proto.Vertex{}, nil
}

func (m *GraphManager) Vertex(graph, id string) (proto.Vertex, error) {
	if m.VertexFunc != nil {
		return m.VertexFunc(graph, id)
	}
	return proto.Vertex{}, nil
}

func (m *GraphManager) MergeAttrs(graph, id string, attrs map[string]interface{}) (proto.Vertex, error) {
	if m.MergeAttrsFunc != nil {
		return m.MergeAttrsFunc(graph, id, attrs)
	}
	return proto.Vertex{}, nil
}

func (m *GraphManager) Resolved(graph, id string, q proto.VertexQuery) (proto.Resolved, error) {
	if m.ResolvedFunc != nil {
		return m.ResolvedFunc(graph, id, q)
	}
	return proto.Resolved{}, nil
}

func (m *GraphManager) Ancestors(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error) {
	if m.AncestorsFunc != nil {
		return m.AncestorsFunc(graph, id, q)
	}
	return []proto.Vertex{}, nil
}

func (m *GraphManager) Descendants(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error) {
	if m.DescendantsFunc != nil {
		return m.DescendantsFunc(graph, id, q)
	}
	return []proto.Vertex{}, nil
}

func (m *GraphManager) Compare(graph, id, other string) (proto.Ordering, error) {
	if m.CompareFunc != nil {
		return m.CompareFunc(graph, id, other)
	}
	return proto.Ordering{}, nil
}

func (m *GraphManager) Link(graph, id string, ce proto.CreateEdge) (proto.Edge, error) {
	if m.LinkFunc != nil {
		return m.LinkFunc(graph, id, ce)
	}
	return proto.Edge{}, nil
}

func (m *GraphManager) Edges(graph string, q proto.VertexQuery) ([]proto.Edge, error) {
	if m.EdgesFunc != nil {
		return m.EdgesFunc(graph, q)
	}
	return []proto.Edge{}, nil
}

func (m *GraphManager) Document(graph string) (*document.Document, error) {
	if m.DocumentFunc != nil {
		return m.DocumentFunc(graph)
	}
	return &document.Document{Graph: graph, Vertices: map[string]*document.Vertex{}}, nil
}

// --------------------------------------------------------------------------

// KVSClient implements kvs.Client.
type KVSClient struct {
	GraphManager
	VersionFunc func() (string, error)
}

func (c *KVSClient) Version() (string, error) {
	if c.VersionFunc != nil {
		return c.VersionFunc()
	}
	return "", nil
}
