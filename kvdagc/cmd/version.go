// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
	v "github.com/square/kvdag/version"
)

type Version struct {
	ctx app.Context
}

func NewVersion(ctx app.Context) *Version {
	return &Version{
		ctx: ctx,
	}
}

func (c *Version) Prepare() error {
	return nil
}

func (c *Version) Run() error {
	fmt.Fprintln(c.ctx.Out, "kvdagc "+v.Version())
	return nil
}

func (c *Version) Cmd() string {
	return "version"
}

func (c *Version) Help() string {
	return "'kvdagc version' prints the KVDAG version.\n"
}
