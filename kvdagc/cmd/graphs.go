// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/proto"
)

type Graphs struct {
	ctx  app.Context
	name string
}

func NewGraphs(ctx app.Context) *Graphs {
	return &Graphs{
		ctx: ctx,
	}
}

func (c *Graphs) Prepare() error {
	if len(c.ctx.Command.Args) > 0 {
		c.name = c.ctx.Command.Args[0]
	}
	return nil
}

func (c *Graphs) Run() error {
	var infos []proto.GraphInfo
	var err error
	if c.name != "" {
		var info proto.GraphInfo
		info, err = c.ctx.Source.Graph(c.name)
		infos = []proto.GraphInfo{info}
	} else {
		infos, err = c.ctx.Source.Graphs()
	}
	if err != nil {
		return err
	}
	if c.ctx.Options.Debug {
		app.Debug("graphs: %#v", infos)
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(infos, err)
		return nil
	}

	if len(infos) == 0 {
		return nil
	}

	l := len("GRAPH")
	for _, g := range infos {
		if len(g.Name) > l {
			l = len(g.Name)
		}
	}
	line := fmt.Sprintf("%%-%ds  %%8v  %%5v  %%s\n", l)
	fmt.Fprintf(c.ctx.Out, line, "GRAPH", "VERTICES", "EDGES", "FILE")
	for _, g := range infos {
		fmt.Fprintf(c.ctx.Out, line, g.Name, g.Vertices, g.Edges, g.File)
	}
	return nil
}

func (c *Graphs) Cmd() string {
	if c.name != "" {
		return "graphs " + c.name
	}
	return "graphs"
}

func (c *Graphs) Help() string {
	return "'kvdagc graphs [graph]' lists all graphs, or one graph, with vertex and edge counts.\n"
}
