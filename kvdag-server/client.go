// Copyright 2020, Square, Inc.

// Package kvs provides an HTTP client for interacting with the KVDAG server API.
package kvs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/proto"
)

// A Client is an HTTP client used for interacting with the KVDAG server API.
// Errors returned by the server are returned as a proto.Error.
type Client interface {
	// Graphs returns a summary of every graph, sorted by name.
	Graphs() ([]proto.GraphInfo, error)

	// Graph returns a summary of one graph.
	Graph(name string) (proto.GraphInfo, error)

	// CreateGraph creates an empty graph.
	CreateGraph(name string) (proto.GraphInfo, error)

	// Vertices returns the vertices of a graph that match q.Match.
	Vertices(graph string, q proto.VertexQuery) ([]proto.Vertex, error)

	// CreateVertex creates a vertex.
	CreateVertex(graph string, cv proto.CreateVertex) (proto.Vertex, error)

	// Vertex returns one vertex with its local attributes.
	Vertex(graph, id string) (proto.Vertex, error)

	// MergeAttrs deep-merges attrs into the local attributes of a vertex.
	MergeAttrs(graph, id string, attrs map[string]interface{}) (proto.Vertex, error)

	// Resolved returns the resolved view of a vertex.
	Resolved(graph, id string, q proto.VertexQuery) (proto.Resolved, error)

	// Ancestors returns the vertex and the vertices it reaches that match q.Match.
	Ancestors(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error)

	// Descendants returns the vertex and the vertices that reach it that match q.Match.
	Descendants(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error)

	// Compare returns the partial order of two vertices.
	Compare(graph, id, other string) (proto.Ordering, error)

	// Link creates an edge from a vertex to ce.Parent.
	Link(graph, id string, ce proto.CreateEdge) (proto.Edge, error)

	// Edges returns the edges of a graph that match q.Match.
	Edges(graph string, q proto.VertexQuery) ([]proto.Edge, error)

	// Document returns the graph as a graph document.
	Document(graph string) (*document.Document, error)

	// Version returns the server version.
	Version() (string, error)
}

type client struct {
	*http.Client
	baseUrl string
}

// NewClient takes an http.Client and base API URL and creates a Client.
func NewClient(c *http.Client, baseUrl string) Client {
	return &client{
		Client:  c,
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
	}
}

func (c *client) Graphs() ([]proto.GraphInfo, error) {
	// GET /api/v1/graphs
	var infos []proto.GraphInfo
	err := c.makeRequest("GET", c.graphURL(""), nil, http.StatusOK, &infos)
	return infos, err
}

func (c *client) Graph(name string) (proto.GraphInfo, error) {
	// GET /api/v1/graphs/${name}
	var info proto.GraphInfo
	err := c.makeRequest("GET", c.graphURL(name), nil, http.StatusOK, &info)
	return info, err
}

func (c *client) CreateGraph(name string) (proto.GraphInfo, error) {
	// POST /api/v1/graphs
	var info proto.GraphInfo
	err := c.makeRequest("POST", c.graphURL(""), proto.CreateGraph{Name: name}, http.StatusCreated, &info)
	return info, err
}

func (c *client) Vertices(graph string, q proto.VertexQuery) ([]proto.Vertex, error) {
	// GET /api/v1/graphs/${graph}/vertices?match=
	var vs []proto.Vertex
	err := c.makeRequest("GET", c.graphURL(graph, "vertices")+q.String(), nil, http.StatusOK, &vs)
	return vs, err
}

func (c *client) CreateVertex(graph string, cv proto.CreateVertex) (proto.Vertex, error) {
	// POST /api/v1/graphs/${graph}/vertices
	var v proto.Vertex
	err := c.makeRequest("POST", c.graphURL(graph, "vertices"), cv, http.StatusCreated, &v)
	return v, err
}

func (c *client) Vertex(graph, id string) (proto.Vertex, error) {
	// GET /api/v1/graphs/${graph}/vertices/${id}
	var v proto.Vertex
	err := c.makeRequest("GET", c.graphURL(graph, "vertices", id), nil, http.StatusOK, &v)
	return v, err
}

func (c *client) MergeAttrs(graph, id string, attrs map[string]interface{}) (proto.Vertex, error) {
	// PUT /api/v1/graphs/${graph}/vertices/${id}/attrs
	var v proto.Vertex
	err := c.makeRequest("PUT", c.graphURL(graph, "vertices", id, "attrs"), attrs, http.StatusOK, &v)
	return v, err
}

func (c *client) Resolved(graph, id string, q proto.VertexQuery) (proto.Resolved, error) {
	// GET /api/v1/graphs/${graph}/vertices/${id}/resolved?filter=&key=
	var r proto.Resolved
	err := c.makeRequest("GET", c.graphURL(graph, "vertices", id, "resolved")+q.String(), nil, http.StatusOK, &r)
	return r, err
}

func (c *client) Ancestors(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error) {
	// GET /api/v1/graphs/${graph}/vertices/${id}/ancestors?match=
	var vs []proto.Vertex
	err := c.makeRequest("GET", c.graphURL(graph, "vertices", id, "ancestors")+q.String(), nil, http.StatusOK, &vs)
	return vs, err
}

func (c *client) Descendants(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error) {
	// GET /api/v1/graphs/${graph}/vertices/${id}/descendants?match=
	var vs []proto.Vertex
	err := c.makeRequest("GET", c.graphURL(graph, "vertices", id, "descendants")+q.String(), nil, http.StatusOK, &vs)
	return vs, err
}

func (c *client) Compare(graph, id, other string) (proto.Ordering, error) {
	// GET /api/v1/graphs/${graph}/vertices/${id}/compare/${other}
	var o proto.Ordering
	err := c.makeRequest("GET", c.graphURL(graph, "vertices", id, "compare", other), nil, http.StatusOK, &o)
	return o, err
}

func (c *client) Link(graph, id string, ce proto.CreateEdge) (proto.Edge, error) {
	// POST /api/v1/graphs/${graph}/vertices/${id}/edges
	var e proto.Edge
	err := c.makeRequest("POST", c.graphURL(graph, "vertices", id, "edges"), ce, http.StatusCreated, &e)
	return e, err
}

func (c *client) Edges(graph string, q proto.VertexQuery) ([]proto.Edge, error) {
	// GET /api/v1/graphs/${graph}/edges?match=
	var edges []proto.Edge
	err := c.makeRequest("GET", c.graphURL(graph, "edges")+q.String(), nil, http.StatusOK, &edges)
	return edges, err
}

func (c *client) Document(graph string) (*document.Document, error) {
	// GET /api/v1/graphs/${graph}/document
	body, err := c.do("GET", c.graphURL(graph, "document"), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	doc, err := document.Parse(body, log.Warnf)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *client) Version() (string, error) {
	// GET /version
	body, err := c.do("GET", c.baseUrl+"/version", nil, http.StatusOK)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ------------------------------------------------------------------------- //

// graphURL returns the URL of /api/v1/graphs/${graph}/${parts...}. Each part
// is path-escaped.
func (c *client) graphURL(graph string, parts ...string) string {
	u := c.baseUrl + "/api/v1/graphs"
	if graph == "" {
		return u
	}
	u += "/" + url.PathEscape(graph)
	for _, p := range parts {
		u += "/" + url.PathEscape(p)
	}
	return u
}

// makeRequest is a helper function for making HTTP requests. The httpVerb, url,
// and expectedStatusCode arguments are self explanatory. If the payloadStruct
// argument is provided (if it's not nil), the struct will be marshalled into
// JSON and sent as the payload of the request. If the respStruct argument is
// provided (if it's not nil), the response body of the request will be
// unmarshalled into the struct pointed to by it.
func (c *client) makeRequest(httpVerb, url string, payloadStruct interface{}, expectedStatusCode int, respStruct interface{}) error {
	body, err := c.do(httpVerb, url, payloadStruct, expectedStatusCode)
	if err != nil {
		return err
	}

	// Unmarshal the body into the struct pointed to by the respStruct argument.
	if respStruct != nil {
		if err = json.Unmarshal(body, respStruct); err != nil {
			return err
		}
	}

	return nil
}

// do sends the request and returns the response body. If the status code is
// not expectedStatusCode, the body is returned as a proto.Error if possible.
func (c *client) do(httpVerb, url string, payloadStruct interface{}, expectedStatusCode int) ([]byte, error) {
	// Marshal payload.
	var payload []byte
	var err error
	if payloadStruct != nil {
		payload, err = json.Marshal(payloadStruct)
		if err != nil {
			return nil, err
		}
	}

	// Create the request.
	req, err := http.NewRequest(httpVerb, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}

	// Send the request.
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Read the response body.
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Check the status code.
	if resp.StatusCode != expectedStatusCode {
		var perr proto.Error
		if err := json.Unmarshal(body, &perr); err == nil && perr.Message != "" {
			perr.HTTPStatus = resp.StatusCode
			return nil, perr
		}
		return nil, fmt.Errorf("unsuccessful status code: %d (response body: %s)",
			resp.StatusCode, string(body))
	}

	return body, nil
}
