// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
)

const compareUsage = "kvdagc compare <graph> <vertex> <other>"

type Compare struct {
	ctx    app.Context
	graph  string
	vertex string
	other  string
}

func NewCompare(ctx app.Context) *Compare {
	return &Compare{
		ctx: ctx,
	}
}

func (c *Compare) Prepare() error {
	args := c.ctx.Command.Args
	if len(args) < 3 {
		return fmt.Errorf("Usage: %s", compareUsage)
	}
	c.graph = args[0]
	c.vertex = args[1]
	c.other = args[2]
	return nil
}

func (c *Compare) Run() error {
	o, err := c.ctx.Source.Compare(c.graph, c.vertex, c.other)
	if err != nil {
		return err
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(o, err)
		return nil
	}

	fmt.Fprintln(c.ctx.Out, o.Ordering)
	return nil
}

func (c *Compare) Cmd() string {
	return "compare " + c.graph + " " + c.vertex + " " + c.other
}

func (c *Compare) Help() string {
	return fmt.Sprintf(`'%s' prints how <vertex> is ordered relative to <other>:
  less     <vertex> reaches <other> (<other> is an ancestor)
  greater  <other> reaches <vertex> (<other> is a descendant)
  equal    same vertex, or neither reaches the other
`, compareUsage)
}
