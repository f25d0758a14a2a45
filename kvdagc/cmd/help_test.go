// Copyright 2020, Square, Inc.

package cmd_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/kvdagc/cmd"
	"github.com/square/kvdag/kvdagc/config"
	"github.com/square/kvdag/proto"
	"github.com/square/kvdag/test/mock"
)

func TestHelpCommandHelp(t *testing.T) {
	// kvdagc help link
	out := &bytes.Buffer{}
	ctx := app.Context{
		Out: out,
		Command: config.Command{
			Cmd:  "help",
			Args: []string{"link"},
		},
		Nargs: 2,
	}
	help := cmd.NewHelp(ctx)
	if err := help.Prepare(); err != nil {
		t.Error(err)
	}
	if err := help.Run(); err != app.ErrHelp {
		t.Errorf("got err %v, expected ErrHelp", err)
	}
	if !strings.HasPrefix(out.String(), "'kvdagc link <graph> <vertex> <parent>") {
		t.Errorf("got output %q", out.String())
	}
}

func TestHelpUnknownCommand(t *testing.T) {
	ctx := app.Context{
		Out: &bytes.Buffer{},
		Command: config.Command{
			Cmd:  "help",
			Args: []string{"frobnicate"},
		},
		Nargs: 2,
	}
	err := cmd.NewHelp(ctx).Run()
	if err == nil || err == app.ErrHelp {
		t.Errorf("got err %v, expected invalid command error", err)
	}
}

func TestQuickHelp(t *testing.T) {
	// kvdagc
	out := &bytes.Buffer{}
	ctx := app.Context{
		Out: out,
		Source: &mock.GraphManager{
			GraphsFunc: func() ([]proto.GraphInfo, error) {
				return []proto.GraphInfo{{Name: "hosts"}, {Name: "services"}}, nil
			},
		},
		Options: config.Options{
			Addr: "http://localhost",
		},
	}
	if err := cmd.NewHelp(ctx).Run(); err != app.ErrHelp {
		t.Errorf("got err %v, expected ErrHelp", err)
	}
	if !strings.Contains(out.String(), "Graphs:\n  hosts\n  services\n") {
		t.Errorf("got output %q", out.String())
	}
}
