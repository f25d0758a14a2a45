// Copyright 2020, Square, Inc.

package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/logrusorgru/aurora"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/kvdag"
	"github.com/square/kvdag/render"
	"github.com/square/kvdag/test"
)

func hosts(t *testing.T) *kvdag.Graph {
	doc, err := document.ParseFile(test.GraphPath+"/hosts.yaml", t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	g, err := document.Build(doc)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestDot(t *testing.T) {
	g := hosts(t)
	var buf bytes.Buffer
	render.Dot(&buf, g)
	out := buf.String()

	if !strings.HasPrefix(out, "digraph {\n") || !strings.HasSuffix(out, "}\n") {
		t.Errorf("not a digraph:\n%s", out)
	}
	for _, line := range []string{
		"\t\"web01\" -> \"web\" [label=\"weight\"];\n",
		"\t\"web01\" -> \"debian\";\n",
		"\t\"base\" [label=\"base\\nntp, os\"]\n",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q in:\n%s", line, out)
		}
	}
	if n := strings.Count(out, "->"); n != 5 {
		t.Errorf("%d edges, expected 5", n)
	}
}

func TestTree(t *testing.T) {
	g := hosts(t)
	web01, _ := g.Vertex("web01")
	var buf bytes.Buffer
	render.Tree(&buf, web01, "  ")
	expect := "web01\n  web\n    base\n  debian\n    base (seen)\n"
	if diff := deep.Equal(buf.String(), expect); diff != nil {
		t.Error(diff)
	}
}

func TestColorTree(t *testing.T) {
	g := hosts(t)
	web01, _ := g.Vertex("web01")
	var buf bytes.Buffer
	render.ColorTree(&buf, web01, "  ", aurora.NewAurora(true))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, expected 5: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "\x1b[") {
			t.Errorf("line %q is not colored", line)
		}
	}
	if !strings.HasPrefix(lines[4], "    ") || !strings.Contains(lines[4], "base (seen)") {
		t.Errorf("got last line %q, expected indented base (seen)", lines[4])
	}
}

func TestYAML(t *testing.T) {
	g := hosts(t)
	db01, _ := g.Vertex("db01")
	filtered, err := db01.Filter("role", "os.family")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := render.YAML(&buf, filtered.ToMap()); err != nil {
		t.Fatal(err)
	}
	expect := "os:\n  family: linux\nrole: db\n"
	if diff := deep.Equal(buf.String(), expect); diff != nil {
		t.Error(diff)
	}
}
