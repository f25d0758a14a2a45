// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/proto"
)

const verticesUsage = "kvdagc vertices <graph> [match]"

type Vertices struct {
	ctx   app.Context
	graph string
	q     proto.VertexQuery
}

func NewVertices(ctx app.Context) *Vertices {
	return &Vertices{
		ctx: ctx,
	}
}

func (c *Vertices) Prepare() error {
	args := c.ctx.Command.Args
	if len(args) == 0 {
		return fmt.Errorf("Usage: %s", verticesUsage)
	}
	c.graph = args[0]
	c.q = matchArg(args, 1)
	return nil
}

func (c *Vertices) Run() error {
	vs, err := c.ctx.Source.Vertices(c.graph, c.q)
	if err != nil {
		return err
	}
	if c.ctx.Options.Debug {
		app.Debug("vertices: %#v", vs)
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(vs, err)
		return nil
	}

	printIds(c.ctx.Out, vs, c.ctx.Options.Verbose)
	return nil
}

func (c *Vertices) Cmd() string {
	return "vertices " + c.graph
}

func (c *Vertices) Help() string {
	return fmt.Sprintf(`'%s' lists the vertices of <graph> that match.

Args:
  match  Predicate as a JSON object, e.g. '{"all":{"role":"web"},"parent_count":1}'.
         Quantifiers none, one, any, all map key paths to expected values.
         Expected "/re/" or {"$regex":"re"} matches strings, {"$kind":"map"}
         matches the value type. Other keys are properties: kind, id,
         attr_count, parent_count, child_count.

With -v, local attributes are printed after each vertex.
`, verticesUsage)
}
