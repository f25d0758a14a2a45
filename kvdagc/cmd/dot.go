// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/render"
)

type Dot struct {
	ctx   app.Context
	graph string
}

func NewDot(ctx app.Context) *Dot {
	return &Dot{
		ctx: ctx,
	}
}

func (c *Dot) Prepare() error {
	if len(c.ctx.Command.Args) != 1 {
		return fmt.Errorf("Usage: kvdagc dot <graph>")
	}
	c.graph = c.ctx.Command.Args[0]
	return nil
}

func (c *Dot) Run() error {
	doc, err := c.ctx.Source.Document(c.graph)
	if err != nil {
		return err
	}
	g, err := document.Build(doc)
	if err != nil {
		return err
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(g, err)
		return nil
	}

	render.Dot(c.ctx.Out, g)
	return nil
}

func (c *Dot) Cmd() string {
	return "dot " + c.graph
}

func (c *Dot) Help() string {
	return "'kvdagc dot <graph>' prints <graph> in Graphviz dot format. Edges point from child to parent.\n"
}
