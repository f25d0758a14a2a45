// Copyright 2020, Square, Inc.

package cmd_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/square/kvdag/kvdag-server/graphs"
	"github.com/square/kvdag/kvdag-server/registry"
	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/kvdagc/cmd"
	"github.com/square/kvdag/kvdagc/config"
	"github.com/square/kvdag/proto"
	"github.com/square/kvdag/test"
	"github.com/square/kvdag/test/mock"
)

// localSource returns a Source over the test graphs.
func localSource(t *testing.T) app.Source {
	reg, err := registry.Load(test.GraphPath, t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	return graphs.NewManager(reg)
}

func run(t *testing.T, ctx app.Context, name string, args ...string) error {
	ctx.Command = config.Command{Cmd: name, Args: args}
	ctx.Nargs = 1 + len(args)
	c, err := (&cmd.DefaultFactory{}).Make(name, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Prepare(); err != nil {
		return err
	}
	return c.Run()
}

func TestFactoryNotExist(t *testing.T) {
	_, err := (&cmd.DefaultFactory{}).Make("frobnicate", app.Context{})
	if err != cmd.ErrNotExist {
		t.Errorf("got err %v, expected ErrNotExist", err)
	}
}

func TestAddAttrs(t *testing.T) {
	var gotGraph string
	var gotCV proto.CreateVertex
	ctx := app.Context{
		Out: &bytes.Buffer{},
		Source: &mock.GraphManager{
			CreateVertexFunc: func(graph string, cv proto.CreateVertex) (proto.Vertex, error) {
				gotGraph, gotCV = graph, cv
				return proto.Vertex{Id: cv.Id}, nil
			},
		},
	}
	if err := run(t, ctx, "add", "hosts", "web02", "os.arch=arm64", "weight=10", "ports=[80,443]"); err != nil {
		t.Fatal(err)
	}
	if gotGraph != "hosts" {
		t.Errorf("got graph %s, expected hosts", gotGraph)
	}
	expect := proto.CreateVertex{
		Id: "web02",
		Attrs: map[string]interface{}{
			"os":     map[string]interface{}{"arch": "arm64"},
			"weight": 10,
			"ports":  []interface{}{80, 443},
		},
	}
	if diff := deep.Equal(gotCV, expect); diff != nil {
		t.Error(diff)
	}
}

func TestAddBadAttr(t *testing.T) {
	ctx := app.Context{Out: &bytes.Buffer{}, Source: &mock.GraphManager{}}
	if err := run(t, ctx, "add", "hosts", "web02", "noequals"); err == nil {
		t.Error("no error, expected one")
	}
}

func TestLink(t *testing.T) {
	var gotCE proto.CreateEdge
	out := &bytes.Buffer{}
	ctx := app.Context{
		Out: out,
		Source: &mock.GraphManager{
			LinkFunc: func(graph, id string, ce proto.CreateEdge) (proto.Edge, error) {
				gotCE = ce
				return proto.Edge{Id: "e1", Source: id, Target: ce.Parent}, nil
			},
		},
	}
	if err := run(t, ctx, "link", "hosts", "web02", "web", "weight=5"); err != nil {
		t.Fatal(err)
	}
	expect := proto.CreateEdge{Parent: "web", Attrs: map[string]interface{}{"weight": 5}}
	if diff := deep.Equal(gotCE, expect); diff != nil {
		t.Error(diff)
	}
	if out.String() != "e1: web02 -> web\n" {
		t.Errorf("got output %q", out.String())
	}
}

func TestLinkUsage(t *testing.T) {
	ctx := app.Context{Out: &bytes.Buffer{}, Source: &mock.GraphManager{}}
	err := run(t, ctx, "link", "hosts", "web02")
	if err == nil || !strings.HasPrefix(err.Error(), "Usage: ") {
		t.Errorf("got err %v, expected usage error", err)
	}
}

func TestResolveKeyAndFilter(t *testing.T) {
	ctx := app.Context{Out: &bytes.Buffer{}, Source: &mock.GraphManager{}}
	if err := run(t, ctx, "resolve", "hosts", "web01", "key=os", "filter=rack"); err == nil {
		t.Error("no error, expected one")
	}
}

func TestResolveLocal(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := app.Context{Out: out, Source: localSource(t)}
	if err := run(t, ctx, "resolve", "hosts", "web01", "filter=os,rack"); err != nil {
		t.Fatal(err)
	}
	expect := "os:\n  family: linux\n  pkg: apt\nrack: r1\n"
	if out.String() != expect {
		t.Errorf("got output %q, expected %q", out.String(), expect)
	}
}

func TestCompareLocal(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := app.Context{Out: out, Source: localSource(t)}
	if err := run(t, ctx, "compare", "hosts", "web01", "base"); err != nil {
		t.Fatal(err)
	}
	if out.String() != proto.ORDER_LESS+"\n" {
		t.Errorf("got output %q, expected %q", out.String(), proto.ORDER_LESS)
	}
}

func TestVerticesMatchLocal(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := app.Context{Out: out, Source: localSource(t)}
	if err := run(t, ctx, "vertices", "hosts", `{"all":{"role":"web"}}`); err != nil {
		t.Fatal(err)
	}
	if out.String() != "web\nweb01\n" {
		t.Errorf("got output %q", out.String())
	}
}

func TestEdgesLocal(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := app.Context{Out: out, Source: localSource(t)}
	if err := run(t, ctx, "edges", "services"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "api -> defaults\n" {
		t.Errorf("got output %q", out.String())
	}
}

func TestTreeLocal(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := app.Context{Out: out, Source: localSource(t)}
	if err := run(t, ctx, "tree", "hosts", "web01", "color=off"); err != nil {
		t.Fatal(err)
	}
	expect := "web01\n  web\n    base\n  debian\n    base (seen)\n"
	if out.String() != expect {
		t.Errorf("got output %q, expected %q", out.String(), expect)
	}
}

func TestTreeBadColor(t *testing.T) {
	ctx := app.Context{Out: &bytes.Buffer{}, Source: &mock.GraphManager{}}
	if err := run(t, ctx, "tree", "hosts", "web01", "color=maybe"); err == nil {
		t.Error("no error, expected one")
	}
}

func TestCommandRunResultHook(t *testing.T) {
	var result interface{}
	out := &bytes.Buffer{}
	ctx := app.Context{
		Out:    out,
		Source: localSource(t),
		Hooks: app.Hooks{
			CommandRunResult: func(v interface{}, err error) {
				result = v
			},
		},
	}
	if err := run(t, ctx, "ancestors", "hosts", "web01"); err != nil {
		t.Fatal(err)
	}
	vs, ok := result.([]proto.Vertex)
	if !ok {
		t.Fatalf("got result %T, expected []proto.Vertex", result)
	}
	if len(vs) != 4 {
		t.Errorf("got %d ancestors, expected 4", len(vs))
	}
	if out.Len() != 0 {
		t.Errorf("got output %q, expected none", out.String())
	}
}

func TestSourceError(t *testing.T) {
	ctx := app.Context{
		Out: &bytes.Buffer{},
		Source: &mock.GraphManager{
			VertexFunc: func(string, string) (proto.Vertex, error) {
				return proto.Vertex{}, mock.ErrGraphManager
			},
		},
	}
	if err := run(t, ctx, "show", "hosts", "web01"); err != mock.ErrGraphManager {
		t.Errorf("got err %v, expected %v", err, mock.ErrGraphManager)
	}
}
