// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"
	"strings"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/render"
)

const showUsage = "kvdagc show <graph> <vertex>"

type Show struct {
	ctx    app.Context
	graph  string
	vertex string
}

func NewShow(ctx app.Context) *Show {
	return &Show{
		ctx: ctx,
	}
}

func (c *Show) Prepare() error {
	args := c.ctx.Command.Args
	if len(args) < 2 {
		return fmt.Errorf("Usage: %s", showUsage)
	}
	c.graph = args[0]
	c.vertex = args[1]
	return nil
}

func (c *Show) Run() error {
	v, err := c.ctx.Source.Vertex(c.graph, c.vertex)
	if err != nil {
		return err
	}
	if c.ctx.Options.Debug {
		app.Debug("vertex: %#v", v)
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(v, err)
		return nil
	}

	fmt.Fprintf(c.ctx.Out, "      id: %s\n", v.Id)
	fmt.Fprintf(c.ctx.Out, " parents: %s\n", strings.Join(v.Parents, " "))
	fmt.Fprintf(c.ctx.Out, "children: %s\n", strings.Join(v.Children, " "))
	if c.ctx.Options.Verbose {
		for _, e := range v.Edges {
			fmt.Fprintf(c.ctx.Out, "    edge: %s -> %s %s\n", e.Id, e.Target, keys(e.Attrs))
		}
	}
	if len(v.Attrs) > 0 {
		fmt.Fprintf(c.ctx.Out, "attrs:\n")
		return render.YAML(c.ctx.Out, v.Attrs)
	}
	return nil
}

func (c *Show) Cmd() string {
	return "show " + c.graph + " " + c.vertex
}

func (c *Show) Help() string {
	return fmt.Sprintf("'%s' prints the parents, children, and local attributes of <vertex>. With -v, edges are printed too.\n", showUsage)
}
