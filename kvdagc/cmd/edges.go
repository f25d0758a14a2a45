// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/proto"
)

const edgesUsage = "kvdagc edges <graph> [match]"

type Edges struct {
	ctx   app.Context
	graph string
	q     proto.VertexQuery
}

func NewEdges(ctx app.Context) *Edges {
	return &Edges{
		ctx: ctx,
	}
}

func (c *Edges) Prepare() error {
	args := c.ctx.Command.Args
	if len(args) == 0 {
		return fmt.Errorf("Usage: %s", edgesUsage)
	}
	c.graph = args[0]
	c.q = matchArg(args, 1)
	return nil
}

func (c *Edges) Run() error {
	edges, err := c.ctx.Source.Edges(c.graph, c.q)
	if err != nil {
		return err
	}
	if c.ctx.Options.Debug {
		app.Debug("edges: %#v", edges)
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(edges, err)
		return nil
	}

	for _, e := range edges {
		fmt.Fprintf(c.ctx.Out, "%s -> %s", e.Source, e.Target)
		if len(e.Attrs) > 0 {
			fmt.Fprintf(c.ctx.Out, " [%s]", keys(e.Attrs))
		}
		if c.ctx.Options.Verbose {
			fmt.Fprintf(c.ctx.Out, " %s", e.Id)
		}
		fmt.Fprintln(c.ctx.Out)
	}
	return nil
}

func (c *Edges) Cmd() string {
	return "edges " + c.graph
}

func (c *Edges) Help() string {
	return fmt.Sprintf(`'%s' lists the edges of <graph> that match, in vertex order then link order.
Edge attribute keys are shown in brackets. With -v, edge ids are printed too.

Args:
  match  Predicate as a JSON object; see 'kvdagc help vertices'. It is matched
         against the edge's resolved attributes: its parent's resolved
         attributes with the edge attributes on top.
`, edgesUsage)
}
