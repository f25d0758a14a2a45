// Copyright 2020, Square, Inc.

// Package proto provides API message structures and constants.
package proto

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	ORDER_LESS    = "less"    // vertex reaches the other vertex (other is an ancestor)
	ORDER_EQUAL   = "equal"   // same vertex or unrelated
	ORDER_GREATER = "greater" // other vertex reaches the vertex (other is a descendant)
)

// GraphInfo summarizes one graph in the registry.
type GraphInfo struct {
	Name     string `json:"name"`           // unique graph name
	Id       string `json:"id"`             // generated graph id
	Vertices int    `json:"vertices"`       // number of vertices
	Edges    int    `json:"edges"`          // number of edges
	File     string `json:"file,omitempty"` // document the graph was loaded from, if any
}

// Vertex is one vertex with its local attributes. Parents and Children are
// vertex ids, distinct, in link order.
type Vertex struct {
	Id       string                 `json:"id"`
	Attrs    map[string]interface{} `json:"attrs"` // local attributes
	Parents  []string               `json:"parents"`
	Children []string               `json:"children"`
	Edges    []Edge                 `json:"edges,omitempty"` // outgoing edges in link order
}

// Edge is one edge from Source to its parent Target.
type Edge struct {
	Id     string                 `json:"id"`
	Source string                 `json:"source"`
	Target string                 `json:"target"`
	Attrs  map[string]interface{} `json:"attrs"` // local edge attributes
}

// Resolved is the resolved view of a vertex. If Key is set, Value is the value
// at that key path and Attrs is empty. Otherwise Attrs is the whole view or,
// if a filter was given, the filtered view.
type Resolved struct {
	Vertex string                 `json:"vertex"`
	Attrs  map[string]interface{} `json:"attrs,omitempty"`
	Key    string                 `json:"key,omitempty"`
	Value  interface{}            `json:"value,omitempty"`
}

// Ordering is the result of comparing Vertex to Other: one of the ORDER_*
// constants.
type Ordering struct {
	Vertex   string `json:"vertex"`
	Other    string `json:"other"`
	Ordering string `json:"ordering"`
}

// CreateGraph is the payload to create an empty graph.
type CreateGraph struct {
	Name string `json:"name"`
}

// CreateVertex is the payload to create a vertex. If Id is empty, an id is
// generated.
type CreateVertex struct {
	Id    string                 `json:"id,omitempty"`
	Attrs map[string]interface{} `json:"attrs"`
}

// CreateEdge is the payload to link a vertex to Parent.
type CreateEdge struct {
	Parent string                 `json:"parent"`
	Attrs  map[string]interface{} `json:"attrs"`
}

// VertexQuery are the optional query parameters for reading vertices and
// resolved views. Match is a JSON-encoded predicate.
type VertexQuery struct {
	Match  string   // predicate as JSON, e.g. {"all":{"role":"web"}}
	Filter []string // key paths to keep in a resolved view
	Key    string   // single key path to read from a resolved view
}

// String returns the query string, including the leading "?", or an empty
// string if no parameters are set.
func (q VertexQuery) String() string {
	v := url.Values{}
	if q.Match != "" {
		v.Set("match", q.Match)
	}
	if len(q.Filter) > 0 {
		v.Set("filter", strings.Join(q.Filter, ","))
	}
	if q.Key != "" {
		v.Set("key", q.Key)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Error is the standard response for all handled errors. Client errors (HTTP 400
// codes) and internal errors (HTTP 500 codes) are returned as an Error, if handled.
// If not handled (API crash, panic, etc.), the server returns an HTTP 500 code and the
// response data is undefined; the client should print any response data as a string.
type Error struct {
	Message    string `json:"message"`    // human-readable and loggable error message
	Entity     string `json:"entity"`     // graph or vertex that caused error, if any
	HTTPStatus int    `json:"httpStatus"` // HTTP status code
}

func NewError(msgFmt string, msgArgs ...interface{}) Error {
	e := Error{}
	if msgFmt != "" {
		e.Message = fmt.Sprintf(msgFmt, msgArgs...)
	}
	return e
}

func (e Error) String() string {
	return e.Message
}

func (e Error) Error() string {
	return e.Message
}
