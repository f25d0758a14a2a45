// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"
	"strings"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/proto"
	"github.com/square/kvdag/render"
)

const resolveUsage = "kvdagc resolve <graph> <vertex> [key=path] [filter=path,...]"

type Resolve struct {
	ctx    app.Context
	graph  string
	vertex string
	q      proto.VertexQuery
}

func NewResolve(ctx app.Context) *Resolve {
	return &Resolve{
		ctx: ctx,
	}
}

func (c *Resolve) Prepare() error {
	args := c.ctx.Command.Args
	if len(args) < 2 {
		return fmt.Errorf("Usage: %s", resolveUsage)
	}
	c.graph = args[0]
	c.vertex = args[1]
	for _, arg := range args[2:] {
		split := strings.SplitN(arg, "=", 2)
		if len(split) != 2 {
			return fmt.Errorf("Invalid command arg %s: expected key=path or filter=path,...", arg)
		}
		switch split[0] {
		case "key":
			c.q.Key = split[1]
		case "filter":
			c.q.Filter = strings.Split(split[1], ",")
		default:
			return fmt.Errorf("Invalid command arg %s: expected key=path or filter=path,...", arg)
		}
	}
	if c.q.Key != "" && len(c.q.Filter) > 0 {
		return fmt.Errorf("key and filter are mutually exclusive")
	}
	return nil
}

func (c *Resolve) Run() error {
	r, err := c.ctx.Source.Resolved(c.graph, c.vertex, c.q)
	if err != nil {
		return err
	}
	if c.ctx.Options.Debug {
		app.Debug("resolved: %#v", r)
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(r, err)
		return nil
	}

	if c.q.Key != "" {
		return render.YAML(c.ctx.Out, r.Value)
	}
	if len(r.Attrs) == 0 {
		return nil
	}
	return render.YAML(c.ctx.Out, r.Attrs)
}

func (c *Resolve) Cmd() string {
	return "resolve " + c.graph + " " + c.vertex
}

func (c *Resolve) Help() string {
	return fmt.Sprintf(`'%s' prints the resolved attributes of <vertex> as YAML:
its parents' resolved attributes and its edge attributes, merged in link order,
with its local attributes on top.

Args:
  key     Print only the value at this key path, e.g. key=os.family
  filter  Print only these subtrees, e.g. filter=os,ntp.servers
`, resolveUsage)
}
