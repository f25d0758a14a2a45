// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/errors"
	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/render"
)

const treeUsage = "kvdagc tree <graph> <vertex> [color=value]"

type Tree struct {
	ctx    app.Context
	graph  string
	vertex string
	color  bool
}

func NewTree(ctx app.Context) *Tree {
	return &Tree{
		ctx: ctx,
	}
}

func (c *Tree) Prepare() error {
	args := c.ctx.Command.Args
	n := len(args)
	if n < 2 || n > 3 {
		return fmt.Errorf("Usage: %s", treeUsage)
	}
	c.graph = args[0]
	c.vertex = args[1]
	c.color = true // Turn color on by default
	if n == 3 {
		split := strings.Split(args[2], "=")
		if len(split) != 2 || split[0] != "color" {
			return fmt.Errorf("Invalid command arg %s: expected arg of form color=value", args[2])
		}
		color := strings.ToLower(split[1])
		switch color {
		case "off":
			c.color = false
		case "on":
			c.color = true
		default:
			return fmt.Errorf("Invalid value %s in arg color=value: expected 'on' or 'off'", color)
		}
	}
	return nil
}

func (c *Tree) Run() error {
	doc, err := c.ctx.Source.Document(c.graph)
	if err != nil {
		return err
	}
	g, err := document.Build(doc)
	if err != nil {
		return err
	}
	v, ok := g.Vertex(c.vertex)
	if !ok {
		return errors.VertexNotFound{Graph: c.graph, Vertex: c.vertex}
	}

	if c.ctx.Hooks.CommandRunResult != nil {
		c.ctx.Hooks.CommandRunResult(v, nil)
		return nil
	}

	render.ColorTree(c.ctx.Out, v, "  ", aurora.NewAurora(c.color))
	return nil
}

func (c *Tree) Cmd() string {
	return "tree " + c.graph + " " + c.vertex
}

func (c *Tree) Help() string {
	return fmt.Sprintf(`'%s' prints <vertex> and its ancestors as an indented tree.
Parents are listed in precedence order. A vertex reached a second time is
marked "(seen)" and not expanded again.

Args:
  color        "on" for color, "off" for no color (e.g. for output to a text file)
`, treeUsage)
}
