// Copyright 2020, Square, Inc.

package document

import (
	"github.com/square/kvdag/kvdag"
)

// Build creates a graph from doc. Vertices are created in name order, then
// each vertex is linked to its parents in the order they are listed. The
// graph is named doc.Graph unless opts set another name.
//
// Build does not run static checks; errors from the graph (an unknown parent,
// a cycle, attributes that are not a mapping) are returned as a BuildError.
func Build(doc *Document, opts ...kvdag.Option) (*kvdag.Graph, error) {
	g := kvdag.New(append([]kvdag.Option{kvdag.WithName(doc.Graph)}, opts...)...)

	names := doc.VertexNames()
	for _, name := range names {
		if _, err := g.NewNamedVertex(name, doc.Vertices[name].Attrs); err != nil {
			return nil, BuildError{Graph: doc.Graph, Vertex: name, Err: err}
		}
	}

	for _, name := range names {
		v, _ := g.Vertex(name)
		for _, p := range doc.Vertices[name].Parents {
			if p.Vertex == nil {
				return nil, BuildError{Graph: doc.Graph, Vertex: name, Err: MissingValueError{doc.Graph, &name, "parents -> vertex", ""}}
			}
			parent, ok := g.Vertex(*p.Vertex)
			if !ok {
				return nil, BuildError{
					Graph:  doc.Graph,
					Vertex: name,
					Parent: *p.Vertex,
					Err:    InvalidValueError{doc.Graph, &name, "parents -> vertex", []string{*p.Vertex}, "vertices declared in the graph"},
				}
			}
			if _, err := v.LinkTo(parent, p.Attrs); err != nil {
				return nil, BuildError{Graph: doc.Graph, Vertex: name, Parent: *p.Vertex, Err: err}
			}
		}
	}

	return g, nil
}

// BuildAll builds every document in docs, keyed on graph name.
func BuildAll(docs Documents, opts ...kvdag.Option) (map[string]*kvdag.Graph, error) {
	graphs := make(map[string]*kvdag.Graph, len(docs))
	for name, doc := range docs {
		g, err := Build(doc, opts...)
		if err != nil {
			return nil, err
		}
		graphs[name] = g
	}
	return graphs, nil
}

// Export returns a document that builds a copy of g: vertex and edge local
// attributes, and edges in link order.
func Export(g *kvdag.Graph) *Document {
	doc := &Document{
		Graph:    g.Name(),
		Vertices: make(map[string]*Vertex, g.Len()),
	}
	for _, v := range g.Vertices() {
		dv := &Vertex{
			Name:  v.ID(),
			Attrs: nonEmpty(v.Attrs().ToMap()),
		}
		for _, e := range v.Edges() {
			target := e.Target().ID()
			dv.Parents = append(dv.Parents, Parent{
				Vertex: &target,
				Attrs:  nonEmpty(e.Attrs().ToMap()),
			})
		}
		doc.Vertices[dv.Name] = dv
	}
	return doc
}

func nonEmpty(m map[string]interface{}) interface{} {
	if len(m) == 0 {
		return nil
	}
	return m
}
