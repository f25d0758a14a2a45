// Copyright 2020, Square, Inc.

// Package registry holds the named graphs served by the KVDAG server.
package registry

import (
	"sort"
	"sync"

	"github.com/orcaman/concurrent-map"
	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/errors"
	"github.com/square/kvdag/kvdag"
)

// An Entry is one graph in the registry. Graphs are not safe for concurrent
// use, so callers must hold the read lock to read the graph and the write lock
// to change it.
type Entry struct {
	sync.RWMutex
	Graph *kvdag.Graph
	File  string // document the graph was loaded from, empty if created by API
}

// A Registry maps graph names to entries.
type Registry interface {
	// Get returns the entry for the named graph or an errors.GraphNotFound.
	Get(name string) (*Entry, error)

	// Add adds g under g.Name() or returns an errors.GraphExists.
	Add(g *kvdag.Graph, file string) (*Entry, error)

	// Names returns all graph names, sorted.
	Names() []string
}

type registry struct {
	graphs cmap.ConcurrentMap
}

var _ Registry = &registry{}

// New returns an empty Registry.
func New() *registry {
	return &registry{
		graphs: cmap.New(),
	}
}

// Load parses every graph document in dir and returns a Registry holding
// the graphs, like LoadDocuments. logFunc is a Printf-like function for parse
// and check warnings and errors.
func Load(dir string, logFunc func(string, ...interface{})) (*registry, error) {
	docs, err := document.ParseDir(dir, logFunc)
	if err != nil {
		return nil, err
	}
	return LoadDocuments(docs, logFunc)
}

// LoadDocuments runs the static checks on docs, builds the graphs, and
// returns a Registry holding them.
func LoadDocuments(docs document.Documents, logFunc func(string, ...interface{})) (*registry, error) {
	if err := document.RunChecks(docs, logFunc); err != nil {
		return nil, err
	}
	r := New()
	for name, doc := range docs {
		g, err := document.Build(doc, kvdag.WithLogger(log.WithFields(log.Fields{"file": doc.File})))
		if err != nil {
			return nil, err
		}
		if _, err := r.Add(g, doc.File); err != nil {
			return nil, err
		}
		log.Debugf("loaded graph %s from %s: %d vertices", name, doc.File, g.Len())
	}
	return r, nil
}

func (r *registry) Get(name string) (*Entry, error) {
	v, ok := r.graphs.Get(name)
	if !ok {
		return nil, errors.GraphNotFound{Graph: name}
	}
	return v.(*Entry), nil
}

func (r *registry) Add(g *kvdag.Graph, file string) (*Entry, error) {
	e := &Entry{Graph: g, File: file}
	if !r.graphs.SetIfAbsent(g.Name(), e) {
		return nil, errors.GraphExists{Graph: g.Name()}
	}
	return e, nil
}

func (r *registry) Names() []string {
	names := r.graphs.Keys()
	sort.Strings(names)
	return names
}
