// Copyright 2020, Square, Inc.

package kvdag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"
	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/keypath"
)

func ids(vs []*Vertex) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID()
	}
	return out
}

func mustVertex(t *testing.T, g *Graph, id string, attrs interface{}) *Vertex {
	t.Helper()
	v, err := g.NewNamedVertex(id, attrs)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func mustLink(t *testing.T, from, to *Vertex, attrs interface{}) *Edge {
	t.Helper()
	e, err := from.LinkTo(to, attrs)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// v1 -> v2 -> v3, v2 -> v4
func chain(t *testing.T) (*Graph, []*Vertex) {
	g := New(WithName("chain"))
	v := []*Vertex{
		mustVertex(t, g, "v1", nil),
		mustVertex(t, g, "v2", nil),
		mustVertex(t, g, "v3", nil),
		mustVertex(t, g, "v4", nil),
	}
	mustLink(t, v[0], v[1], nil)
	mustLink(t, v[1], v[2], nil)
	mustLink(t, v[1], v[3], nil)
	return g, v
}

func TestNew(t *testing.T) {
	g := New()
	if g.ID() == "" {
		t.Error("graph id is empty")
	}
	if g.Name() != g.ID() {
		t.Errorf("default name = %s, expected graph id %s", g.Name(), g.ID())
	}
	if g.Len() != 0 {
		t.Errorf("Len = %d, expected 0", g.Len())
	}

	g = New(WithName("hosts"))
	if g.Name() != "hosts" {
		t.Errorf("Name = %s, expected hosts", g.Name())
	}
}

func TestNewVertex(t *testing.T) {
	g := New()
	v1, err := g.NewVertex(map[string]interface{}{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	v2, err := g.NewVertex(nil)
	if err != nil {
		t.Fatal(err)
	}
	if v1.ID() == v2.ID() {
		t.Errorf("generated vertex ids are equal: %s", v1.ID())
	}
	if v1.Graph() != g {
		t.Error("vertex graph is not the graph that created it")
	}
	got, ok := g.Vertex(v1.ID())
	if !ok || got != v1 {
		t.Errorf("Vertex(%s) = %v, %t", v1.ID(), got, ok)
	}
	if _, ok := g.Vertex("nope"); ok {
		t.Error("Vertex(nope) found a vertex")
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, expected 2", g.Len())
	}
}

func TestNewVertexRejectsNonMap(t *testing.T) {
	g := New()
	_, err := g.NewVertex([]interface{}{1, 2})
	switch err.(type) {
	case keypath.TypeError:
	default:
		t.Errorf("err = %v (%T), expected keypath.TypeError", err, err)
	}
	if g.Len() != 0 {
		t.Errorf("Len = %d after failed NewVertex, expected 0", g.Len())
	}
}

func TestNewNamedVertexDuplicate(t *testing.T) {
	g := New()
	mustVertex(t, g, "web", nil)
	_, err := g.NewNamedVertex("web", nil)
	derr, ok := err.(DuplicateVertexError)
	if !ok {
		t.Fatalf("err = %v (%T), expected DuplicateVertexError", err, err)
	}
	if diff := deep.Equal(&derr, &DuplicateVertexError{Id: "web"}); diff != nil {
		t.Error(diff)
	}
}

func TestVerticesMatch(t *testing.T) {
	g := New()
	v1 := mustVertex(t, g, "v1", map[string]interface{}{"first": true})
	v2 := mustVertex(t, g, "v2", map[string]interface{}{"second": true})
	mustLink(t, v1, v2, map[string]interface{}{"edge": true})

	if diff := deep.Equal(ids(g.Vertices()), []string{"v1", "v2"}); diff != nil {
		t.Error(diff)
	}

	// v1 inherits second from v2
	got := ids(g.Vertices(All(map[string]interface{}{"second": true})))
	if diff := deep.Equal(got, []string{"v1", "v2"}); diff != nil {
		t.Error(diff)
	}

	// edge attrs are visible only to the edge's source
	got = ids(g.Vertices(All(map[string]interface{}{"edge": true})))
	if diff := deep.Equal(got, []string{"v1"}); diff != nil {
		t.Error(diff)
	}

	got = ids(g.Vertices(All(map[string]interface{}{"first": true})))
	if diff := deep.Equal(got, []string{"v1"}); diff != nil {
		t.Error(diff)
	}
}

func TestEdges(t *testing.T) {
	g := New()
	a := mustVertex(t, g, "a", nil)
	b := mustVertex(t, g, "b", nil)
	c := mustVertex(t, g, "c", nil)
	e1 := mustLink(t, b, c, map[string]interface{}{"w": 1})
	e2 := mustLink(t, a, c, nil)
	e3 := mustLink(t, a, b, map[string]interface{}{"w": 2})

	// vertex order, then edge order
	es := g.Edges()
	if len(es) != 3 || es[0] != e2 || es[1] != e3 || es[2] != e1 {
		t.Errorf("Edges = %v, expected [e2 e3 e1]", es)
	}

	es = g.Edges(Prop(PropAttrCount, 1))
	if len(es) != 2 || es[0] != e3 || es[1] != e1 {
		t.Errorf("Edges(attr_count=1) = %v, expected [e3 e1]", es)
	}
}

func TestForEach(t *testing.T) {
	g, _ := chain(t)
	seen := []string{}
	err := g.ForEach(func(v *Vertex) error {
		seen = append(seen, v.ID())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(seen, []string{"v1", "v2", "v3", "v4"}); diff != nil {
		t.Error(diff)
	}

	stop := errors.New("stop")
	seen = []string{}
	err = g.ForEach(func(v *Vertex) error {
		seen = append(seen, v.ID())
		if v.ID() == "v2" {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Errorf("err = %v, expected stop", err)
	}
	if diff := deep.Equal(seen, []string{"v1", "v2"}); diff != nil {
		t.Error(diff)
	}

	// leaves of the chain
	seen = []string{}
	g.ForEach(func(v *Vertex) error {
		seen = append(seen, v.ID())
		return nil
	}, Prop(PropParentCount, 0))
	if diff := deep.Equal(seen, []string{"v3", "v4"}); diff != nil {
		t.Error(diff)
	}
}

type countingFactory struct {
	n int
}

func (f *countingFactory) make(v interface{}) (keypath.Store, error) {
	f.n++
	return keypath.NewStore(v)
}

func TestWithStoreFactory(t *testing.T) {
	f := &countingFactory{}
	g := New(WithStoreFactory(f.make))
	a := mustVertex(t, g, "a", nil)
	b := mustVertex(t, g, "b", nil)
	mustLink(t, a, b, nil)
	if f.n != 3 {
		t.Errorf("factory called %d times, expected 3 (two vertices, one edge)", f.n)
	}
}

// secretRejectingStore refuses to merge any store holding a "secret" key.
type secretRejectingStore struct {
	keypath.Store
}

func (s secretRejectingStore) MergeInPlace(other interface{}) error {
	if o, ok := other.(keypath.Store); ok && o.Get("secret") != nil {
		return errors.New("secret keys cannot be merged")
	}
	return s.Store.MergeInPlace(other)
}

func rejectingFactory(v interface{}) (keypath.Store, error) {
	s, err := keypath.NewStore(v)
	if err != nil {
		return nil, err
	}
	return secretRejectingStore{s}, nil
}

func TestResolveMergeRejected(t *testing.T) {
	var buf bytes.Buffer
	l := log.New()
	l.Out = &buf
	g := New(WithStoreFactory(rejectingFactory), WithLogger(log.NewEntry(l)))

	parent := mustVertex(t, g, "parent", map[string]interface{}{"secret": "x"})
	child := mustVertex(t, g, "child", map[string]interface{}{"env": "prod"})
	mustLink(t, child, parent, nil)

	expect := map[string]interface{}{"env": "prod"}
	if diff := deep.Equal(child.ResolvedView().ToMap(), expect); diff != nil {
		t.Error(diff)
	}
	out := buf.String()
	if !strings.Contains(out, "store rejected merge") {
		t.Errorf("rejected merge not logged, got log output %q", out)
	}
	if !strings.Contains(out, "level=warning") {
		t.Errorf("rejected merge not logged at warning level, got log output %q", out)
	}
	if !strings.Contains(out, "vertex=parent") {
		t.Errorf("log output %q does not name the vertex", out)
	}
}
