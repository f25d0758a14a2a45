// Copyright 2020, Square, Inc.

package document

import (
	"github.com/square/kvdag/keypath"
)

type GraphCheck interface {
	CheckGraph(Document) error
}

type VertexCheck interface {
	CheckVertex(Document, Vertex) error
}

/* ========================================================================== */
type ParentsNamedVertexCheck struct{}

/* Every parent entry must name a vertex. */
func (check ParentsNamedVertexCheck) CheckVertex(doc Document, v Vertex) error {
	for _, p := range v.Parents {
		if p.Vertex == nil || *p.Vertex == "" {
			return MissingValueError{doc.Graph, &v.Name, "parents -> vertex", "required for every parent"}
		}
	}
	return nil
}

/* ========================================================================== */
type ParentsExistVertexCheck struct{}

/* Parents must be vertices declared in the same document. */
func (check ParentsExistVertexCheck) CheckVertex(doc Document, v Vertex) error {
	missing := []string{}
	for _, name := range v.ParentNames() {
		if _, ok := doc.Vertices[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return InvalidValueError{doc.Graph, &v.Name, "parents -> vertex", missing, "vertices declared in the graph"}
	}
	return nil
}

/* ========================================================================== */
type NoSelfParentVertexCheck struct{}

/* A vertex cannot be its own parent. */
func (check NoSelfParentVertexCheck) CheckVertex(doc Document, v Vertex) error {
	for _, name := range v.ParentNames() {
		if name == v.Name {
			return InvalidValueError{doc.Graph, &v.Name, "parents -> vertex", []string{name}, "any vertex other than itself"}
		}
	}
	return nil
}

/* ========================================================================== */
type AttrsAreMapsVertexCheck struct{}

/* Vertex and edge attributes must be mappings. */
func (check AttrsAreMapsVertexCheck) CheckVertex(doc Document, v Vertex) error {
	if v.Attrs != nil && !isMapping(v.Attrs) {
		return InvalidValueError{doc.Graph, &v.Name, "attrs", []string{kindName(v.Attrs)}, "a mapping"}
	}
	for _, p := range v.Parents {
		if p.Attrs != nil && !isMapping(p.Attrs) {
			return InvalidValueError{doc.Graph, &v.Name, "parents -> attrs", []string{kindName(p.Attrs)}, "a mapping"}
		}
	}
	return nil
}

/* ========================================================================== */
type NoDuplicateParentsVertexCheck struct{}

/* Listing the same parent twice is allowed but usually a mistake. */
func (check NoDuplicateParentsVertexCheck) CheckVertex(doc Document, v Vertex) error {
	seen := map[string]bool{}
	dups := []string{}
	for _, name := range v.ParentNames() {
		if seen[name] {
			dups = append(dups, name)
		}
		seen[name] = true
	}
	if len(dups) > 0 {
		return DuplicateValueError{doc.Graph, &v.Name, "parents -> vertex", dups, "each entry creates another edge"}
	}
	return nil
}

/* ========================================================================== */
type NotEmptyVertexCheck struct{}

/* A vertex with neither attributes nor parents contributes nothing. */
func (check NotEmptyVertexCheck) CheckVertex(doc Document, v Vertex) error {
	if v.Attrs == nil && len(v.Parents) == 0 {
		return MissingValueError{doc.Graph, &v.Name, "attrs, parents", "vertex has no attributes and no parents"}
	}
	return nil
}

/* ========================================================================== */
type HasVerticesGraphCheck struct{}

/* Graphs should declare vertices. */
func (check HasVerticesGraphCheck) CheckGraph(doc Document) error {
	if len(doc.Vertices) == 0 {
		return MissingValueError{doc.Graph, nil, "vertices", ""}
	}
	return nil
}

/* ========================================================================== */
type AcyclicGraphCheck struct{}

/* Declared parents must not form a cycle. Unknown parents are ignored here. */
func (check AcyclicGraphCheck) CheckGraph(doc Document) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := map[string]int{}
	path := []string{}

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = visiting
		path = append(path, name)
		for _, parent := range doc.Vertices[name].ParentNames() {
			if _, ok := doc.Vertices[parent]; !ok {
				continue
			}
			switch state[parent] {
			case visiting:
				// cycle is the path from parent's position to here, closed
				for i, n := range path {
					if n == parent {
						return append(append([]string{}, path[i:]...), parent)
					}
				}
			case unvisited:
				if cycle := visit(parent); cycle != nil {
					return cycle
				}
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}

	for _, name := range doc.VertexNames() {
		if state[name] != unvisited {
			continue
		}
		if cycle := visit(name); cycle != nil {
			return CycleError{Graph: doc.Graph, Path: cycle}
		}
	}
	return nil
}

func isMapping(v interface{}) bool {
	return keypath.IsMap(keypath.Stringify(v))
}

func kindName(v interface{}) string {
	switch v.(type) {
	case string:
		return "string"
	case []interface{}:
		return "list"
	case bool:
		return "bool"
	case int, int64, float64:
		return "number"
	}
	return "non-mapping value"
}
