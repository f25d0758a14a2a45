// Copyright 2020, Square, Inc.

// Package document reads and writes graph documents: YAML files that declare
// a graph's vertices, their attributes, and their parents.
package document

import (
	"sort"
)

// Document is one graph document.
//
//   graph: hosts
//   vertices:
//     base:
//       attrs: {os: {family: linux}}
//     web:
//       attrs: {role: web}
//       parents:
//         - vertex: base
//           attrs: {os: {pkg: apt}}
//
// Parents are linked in the order listed, so a later parent wins conflicts
// with an earlier one.
type Document struct {
	Graph    string             `yaml:"graph"`    // graph name, defaults to the file base name
	Vertices map[string]*Vertex `yaml:"vertices"` // keyed on vertex id
	File     string             `yaml:"-"`        // file the document was read from, if any
}

// Vertex declares one vertex.
type Vertex struct {
	Name    string      `yaml:"-"`                 // vertex id, set from the Document.Vertices key
	Attrs   interface{} `yaml:"attrs,omitempty"`   // local attributes, must be a mapping
	Parents []Parent    `yaml:"parents,omitempty"` // edges in link order
}

// Parent declares one edge from the enclosing vertex.
type Parent struct {
	Vertex *string     `yaml:"vertex"`          // target vertex id
	Attrs  interface{} `yaml:"attrs,omitempty"` // edge attributes, must be a mapping
}

// Documents are all documents in a directory, keyed on graph name.
type Documents map[string]*Document

// Names returns the graph names in sorted order.
func (docs Documents) Names() []string {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VertexNames returns the names of doc's vertices in sorted order.
func (doc *Document) VertexNames() []string {
	return sortedKeys(doc.Vertices)
}

// ParentNames returns the names of v's parents in link order. Parents without
// a vertex name are skipped.
func (v *Vertex) ParentNames() []string {
	names := make([]string, 0, len(v.Parents))
	for _, p := range v.Parents {
		if p.Vertex != nil {
			names = append(names, *p.Vertex)
		}
	}
	return names
}
