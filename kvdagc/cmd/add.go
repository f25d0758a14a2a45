// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/proto"
)

const addUsage = "kvdagc add <graph> <vertex> [key=value ...]"

type Add struct {
	ctx   app.Context
	graph string
	cv    proto.CreateVertex
}

func NewAdd(ctx app.Context) *Add {
	return &Add{
		ctx: ctx,
	}
}

func (c *Add) Prepare() error {
	args := c.ctx.Command.Args
	if len(args) < 2 {
		return fmt.Errorf("Usage: %s", addUsage)
	}
	c.graph = args[0]
	attrs, err := parseAttrs(args[2:])
	if err != nil {
		return err
	}
	c.cv = proto.CreateVertex{
		Id:    args[1],
		Attrs: attrs,
	}
	return nil
}

func (c *Add) Run() error {
	v, err := c.ctx.Source.CreateVertex(c.graph, c.cv)
	if err != nil {
		return err
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(v, err)
		return nil
	}

	fmt.Fprintln(c.ctx.Out, v.Id)
	return nil
}

func (c *Add) Cmd() string {
	return "add " + c.graph + " " + c.cv.Id
}

func (c *Add) Help() string {
	return fmt.Sprintf(`'%s' creates <vertex> with no parents.

Args:
  key=value  Local attributes. Keys are key paths (a.b=1), values are YAML.
`, addUsage)
}
