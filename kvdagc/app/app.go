// Copyright 2020, Square, Inc.

// Package app provides app-wide data structs and functions.
package app

import (
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/kvdagc/config"
	"github.com/square/kvdag/proto"
)

var (
	ErrHelp = errors.New("print help")
)

// Context represents how to run kvdagc. A context is passed to kvdagc.Run().
// A default context is created in main.go. Wrapper code can integrate with
// kvdagc by passing a custom context to kvdagc.Run(). Integration is done
// primarily with hooks and factories.
type Context struct {
	// Set in main.go or by wrapper
	In        io.Reader // where to read user input (default: stdin)
	Out       io.Writer // where to print output (default: stdout)
	Hooks     Hooks     // for integration with other code
	Factories Factories // for integration with other code

	// Set automatically in kvdagc.Run()
	Options config.Options // command line options (--addr, etc.)
	Command config.Command // command and args, if any ("resolve <graph> <vertex>", etc.)
	Source  Source         // where graphs are read from: server or local documents
	Nargs   int            // number of positional args including command
}

// A Source provides the graphs that commands read and change. The KVDAG server
// client (kvs.Client) and the server's own graphs.Manager, used for local
// documents, are both Sources.
type Source interface {
	Graphs() ([]proto.GraphInfo, error)
	Graph(name string) (proto.GraphInfo, error)
	Vertices(graph string, q proto.VertexQuery) ([]proto.Vertex, error)
	CreateVertex(graph string, cv proto.CreateVertex) (proto.Vertex, error)
	Vertex(graph, id string) (proto.Vertex, error)
	MergeAttrs(graph, id string, attrs map[string]interface{}) (proto.Vertex, error)
	Resolved(graph, id string, q proto.VertexQuery) (proto.Resolved, error)
	Ancestors(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error)
	Descendants(graph, id string, q proto.VertexQuery) ([]proto.Vertex, error)
	Compare(graph, id, other string) (proto.Ordering, error)
	Link(graph, id string, ce proto.CreateEdge) (proto.Edge, error)
	Edges(graph string, q proto.VertexQuery) ([]proto.Edge, error)
	Document(graph string) (*document.Document, error)
}

type Command interface {
	Prepare() error
	Run() error
	Cmd() string
	Help() string
}

type CommandFactory interface {
	Make(string, Context) (Command, error)
}

type HTTPClientFactory interface {
	Make(Context) (*http.Client, error)
}

type SourceFactory interface {
	Make(Context) (Source, error)
}

type Factories struct {
	HTTPClient HTTPClientFactory
	Command    CommandFactory
	Source     SourceFactory
}

type Hooks struct {
	AfterParseOptions func(*config.Options)
	CommandRunResult  func(interface{}, error)
}

// Debug logs at debug level. Run enables debug level when --debug is given.
func Debug(fmt string, v ...interface{}) {
	log.Debugf(fmt, v...)
}
