// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/render"
)

const setUsage = "kvdagc set <graph> <vertex> key=value [key=value ...]"

type Set struct {
	ctx    app.Context
	graph  string
	vertex string
	attrs  map[string]interface{}
}

func NewSet(ctx app.Context) *Set {
	return &Set{
		ctx: ctx,
	}
}

func (c *Set) Prepare() error {
	args := c.ctx.Command.Args
	if len(args) < 3 {
		return fmt.Errorf("Usage: %s", setUsage)
	}
	c.graph = args[0]
	c.vertex = args[1]
	attrs, err := parseAttrs(args[2:])
	if err != nil {
		return err
	}
	c.attrs = attrs
	return nil
}

func (c *Set) Run() error {
	v, err := c.ctx.Source.MergeAttrs(c.graph, c.vertex, c.attrs)
	if err != nil {
		return err
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(v, err)
		return nil
	}

	return render.YAML(c.ctx.Out, v.Attrs)
}

func (c *Set) Cmd() string {
	return "set " + c.graph + " " + c.vertex
}

func (c *Set) Help() string {
	return fmt.Sprintf(`'%s' deep-merges attributes into the local attributes of <vertex> and prints them.

Args:
  key=value  Keys are key paths (a.b=1), values are YAML.
`, setUsage)
}
