// Copyright 2020, Square, Inc.

package document

import (
	"fmt"
	"sort"
	"strings"
)

func sortedKeys(m map[string]*Vertex) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func location(graph string, vertex *string) string {
	if vertex == nil {
		return fmt.Sprintf("graph %s", graph)
	}
	return fmt.Sprintf("graph %s, vertex %s", graph, *vertex)
}

/* =========================================================================== */

var _ error = InvalidValueError{}

type InvalidValueError struct {
	Graph    string
	Vertex   *string
	Field    string
	Values   []string
	Expected string
}

func (e InvalidValueError) Error() string {
	values := fmt.Sprintf("\"%s\"", strings.Join(e.Values, "\", \""))
	return fmt.Sprintf("%s: invalid value(s) %s in field `%s`, expected %s",
		location(e.Graph, e.Vertex), values, e.Field, e.Expected)
}

/* =========================================================================== */

var _ error = MissingValueError{}

type MissingValueError struct {
	Graph       string
	Vertex      *string
	Field       string
	Explanation string
}

func (e MissingValueError) Error() string {
	var explanation string
	if e.Explanation != "" {
		explanation = fmt.Sprintf(": %s", e.Explanation)
	}
	return fmt.Sprintf("%s: field(s) `%s` missing%s", location(e.Graph, e.Vertex), e.Field, explanation)
}

/* =========================================================================== */

var _ error = DuplicateValueError{}

type DuplicateValueError struct {
	Graph       string
	Vertex      *string
	Field       string
	Values      []string
	Explanation string
}

func (e DuplicateValueError) Error() string {
	values := fmt.Sprintf("\"%s\"", strings.Join(e.Values, "\", \""))
	var explanation string
	if e.Explanation != "" {
		explanation = fmt.Sprintf(": %s", e.Explanation)
	}
	return fmt.Sprintf("%s: value(s) %s duplicated in field `%s`%s",
		location(e.Graph, e.Vertex), values, e.Field, explanation)
}

/* =========================================================================== */

var _ error = CycleError{}

// CycleError is a cycle in the declared parents. Path starts and ends with
// the same vertex.
type CycleError struct {
	Graph string
	Path  []string
}

func (e CycleError) Error() string {
	return fmt.Sprintf("graph %s: cycle in parents: %s", e.Graph, strings.Join(e.Path, " -> "))
}

/* =========================================================================== */

var _ error = BuildError{}

// BuildError is returned by Build when the graph rejects a declared vertex
// or edge. Err is the kvdag or keypath error.
type BuildError struct {
	Graph  string
	Vertex string
	Parent string // empty if the vertex itself could not be created
	Err    error
}

func (e BuildError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("graph %s, vertex %s: %s", e.Graph, e.Vertex, e.Err)
	}
	return fmt.Sprintf("graph %s, vertex %s: parent %s: %s", e.Graph, e.Vertex, e.Parent, e.Err)
}

func (e BuildError) Unwrap() error {
	return e.Err
}
