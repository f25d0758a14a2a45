// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/proto"
)

const linkUsage = "kvdagc link <graph> <vertex> <parent> [key=value ...]"

type Link struct {
	ctx    app.Context
	graph  string
	vertex string
	ce     proto.CreateEdge
}

func NewLink(ctx app.Context) *Link {
	return &Link{
		ctx: ctx,
	}
}

func (c *Link) Prepare() error {
	args := c.ctx.Command.Args
	if len(args) < 3 {
		return fmt.Errorf("Usage: %s", linkUsage)
	}
	c.graph = args[0]
	c.vertex = args[1]
	attrs, err := parseAttrs(args[3:])
	if err != nil {
		return err
	}
	c.ce = proto.CreateEdge{
		Parent: args[2],
		Attrs:  attrs,
	}
	return nil
}

func (c *Link) Run() error {
	e, err := c.ctx.Source.Link(c.graph, c.vertex, c.ce)
	if err != nil {
		return err
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(e, err)
		return nil
	}

	fmt.Fprintf(c.ctx.Out, "%s: %s -> %s\n", e.Id, e.Source, e.Target)
	return nil
}

func (c *Link) Cmd() string {
	return "link " + c.graph + " " + c.vertex + " " + c.ce.Parent
}

func (c *Link) Help() string {
	return fmt.Sprintf(`'%s' adds an edge from <vertex> to <parent>.
The new edge has the highest precedence of <vertex>'s edges. Linking fails if
<parent> already reaches <vertex>.

Args:
  key=value  Edge attributes. Keys are key paths (a.b=1), values are YAML.
`, linkUsage)
}
