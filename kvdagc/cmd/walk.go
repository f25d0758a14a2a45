// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/proto"
)

// Walk is the ancestors and descendants commands.
type Walk struct {
	ctx    app.Context
	dir    string // "ancestors" or "descendants"
	graph  string
	vertex string
	q      proto.VertexQuery
}

func NewWalk(ctx app.Context, dir string) *Walk {
	return &Walk{
		ctx: ctx,
		dir: dir,
	}
}

func (c *Walk) Prepare() error {
	args := c.ctx.Command.Args
	if len(args) < 2 {
		return fmt.Errorf("Usage: %s", c.usage())
	}
	c.graph = args[0]
	c.vertex = args[1]
	c.q = matchArg(args, 2)
	return nil
}

func (c *Walk) Run() error {
	var vs []proto.Vertex
	var err error
	if c.dir == "ancestors" {
		vs, err = c.ctx.Source.Ancestors(c.graph, c.vertex, c.q)
	} else {
		vs, err = c.ctx.Source.Descendants(c.graph, c.vertex, c.q)
	}
	if err != nil {
		return err
	}
	if c.ctx.Options.Debug {
		app.Debug("%s: %#v", c.dir, vs)
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(vs, err)
		return nil
	}

	printIds(c.ctx.Out, vs, c.ctx.Options.Verbose)
	return nil
}

func (c *Walk) Cmd() string {
	return c.dir + " " + c.graph + " " + c.vertex
}

func (c *Walk) Help() string {
	what := "it reaches through its parents"
	if c.dir == "descendants" {
		what = "that reach it through their parents"
	}
	return fmt.Sprintf(`'%s' lists <vertex> and every vertex %s, nearest first.

Args:
  match  Predicate as a JSON object; see 'kvdagc help vertices'.
         Vertices that do not match are walked through but not listed.
`, c.usage(), what)
}

func (c *Walk) usage() string {
	return "kvdagc " + c.dir + " <graph> <vertex> [match]"
}
