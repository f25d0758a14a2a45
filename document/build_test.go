// Copyright 2020, Square, Inc.

package document_test

import (
	"testing"

	"github.com/go-test/deep"
	"gopkg.in/yaml.v2"

	. "github.com/square/kvdag/document"
	"github.com/square/kvdag/kvdag"
	"github.com/square/kvdag/test"
)

func TestBuild(t *testing.T) {
	doc, err := ParseFile(test.GraphPath+"/hosts.yaml", t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(doc)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name() != "hosts" {
		t.Errorf("name = %s, expected hosts", g.Name())
	}
	if g.Len() != 5 {
		t.Errorf("Len = %d, expected 5", g.Len())
	}

	web01, ok := g.Vertex("web01")
	if !ok {
		t.Fatal("vertex web01 not built")
	}
	expect := map[string]interface{}{
		"os":     map[string]interface{}{"family": "linux", "pkg": "apt"},
		"ntp":    map[string]interface{}{"servers": []interface{}{"ntp1", "ntp2"}},
		"role":   "web",
		"ports":  []interface{}{80, 443},
		"weight": 10,
		"rack":   "r1",
	}
	if diff := deep.Equal(web01.ToMap(), expect); diff != nil {
		t.Error(diff)
	}

	db01, _ := g.Vertex("db01")
	if diff := deep.Equal(db01.Get("ntp.servers"), []interface{}{"ntp3"}); diff != nil {
		t.Error(diff)
	}
}

func TestBuildCycle(t *testing.T) {
	doc, err := ParseFile(test.DataPath+"/cycle.yaml", t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Build(doc)
	expect := BuildError{
		Graph:  "cycle",
		Vertex: "c",
		Parent: "a",
		Err:    kvdag.CyclicError{From: "c", To: "a"},
	}
	buildErr, ok := err.(BuildError)
	if !ok {
		t.Fatalf("err = %v (%T), expected BuildError", err, err)
	}
	if diff := deep.Equal(&buildErr, &expect); diff != nil {
		t.Error(diff)
	}
	if _, ok := buildErr.Err.(kvdag.CyclicError); !ok {
		t.Errorf("BuildError.Err = %T, expected kvdag.CyclicError", buildErr.Err)
	}
}

func TestBuildUnknownParent(t *testing.T) {
	doc, err := Parse([]byte("graph: g\nvertices:\n  a:\n    parents:\n      - vertex: b\n"), t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Build(doc)
	berr, ok := err.(BuildError)
	if !ok {
		t.Fatalf("err = %v (%T), expected BuildError", err, err)
	}
	if berr.Vertex != "a" || berr.Parent != "b" {
		t.Errorf("unexpected error: %s", berr)
	}
}

func TestExportRoundTrip(t *testing.T) {
	doc, err := ParseFile(test.GraphPath+"/hosts.yaml", t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(doc)
	if err != nil {
		t.Fatal(err)
	}

	out, err := yaml.Marshal(Export(g))
	if err != nil {
		t.Fatal(err)
	}
	doc2, err := Parse(out, t.Fatalf)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := Build(doc2)
	if err != nil {
		t.Fatal(err)
	}

	if g2.Name() != "hosts" {
		t.Errorf("name = %s, expected hosts", g2.Name())
	}
	for _, v := range g.Vertices() {
		v2, ok := g2.Vertex(v.ID())
		if !ok {
			t.Errorf("vertex %s lost in export", v.ID())
			continue
		}
		if diff := deep.Equal(v2.ToMap(), v.ToMap()); diff != nil {
			t.Errorf("vertex %s: %v", v.ID(), diff)
		}
		if len(v2.Edges()) != len(v.Edges()) {
			t.Errorf("vertex %s: %d edges, expected %d", v.ID(), len(v2.Edges()), len(v.Edges()))
		}
	}
}
