// Copyright 2020, Square, Inc.

package cmd

import (
	"fmt"

	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/kvdagc/config"
)

type Help struct {
	ctx app.Context
}

func NewHelp(ctx app.Context) *Help {
	return &Help{
		ctx: ctx,
	}
}

func (c *Help) Prepare() error {
	return nil
}

func (c *Help) Run() error {
	// Return app.ErrHelp on success so kvdagc.Run callers can tell help
	// apart from command output.

	cmdlineArgs := c.ctx.Nargs
	commandArgs := len(c.ctx.Command.Args)

	if c.ctx.Options.Help { // kvdagc --help
		c.Usage()
	} else if cmdlineArgs == 0 && commandArgs == 0 { // kvdagc
		c.QuickHelp()
	} else if commandArgs == 0 { // kvdagc help
		c.Usage()
	} else { // kvdagc help <cmd>
		arg := c.ctx.Command.Args[0]
		var kvCmd app.Command
		var err error
		if c.ctx.Factories.Command != nil {
			kvCmd, err = c.ctx.Factories.Command.Make(arg, c.ctx)
		}
		if kvCmd == nil {
			kvCmd, err = (&DefaultFactory{}).Make(arg, c.ctx)
		}
		if c.ctx.Options.Debug {
			app.Debug("Factories.Command.Make: %v", err)
		}
		if err != nil {
			return fmt.Errorf("'%s' is not a valid command. Run 'kvdagc help' to list commands.", arg)
		}
		fmt.Fprint(c.ctx.Out, kvCmd.Help())
	}
	return app.ErrHelp
}

func (c *Help) Cmd() string {
	return "help"
}

func (c *Help) Help() string {
	return "Run 'kvdagc help' for usage, or 'kvdagc help <command>' for command help.\n"
}

// --------------------------------------------------------------------------

func (c *Help) Usage() {
	fmt.Fprintf(c.ctx.Out, "Usage: kvdagc [flags] command <graph> [args]\n\n"+
		"Flags:\n"+
		"  --addr        KVDAG server address (default: %s)\n"+
		"  --cafile      TLS CA file (with --certfile and --keyfile)\n"+
		"  --certfile    TLS certificate file\n"+
		"  --config      Config files (default: %s)\n"+
		"  --debug       Print debug to stderr\n"+
		"  --file        Graph document or directory to use instead of a server\n"+
		"  --help        Print help\n"+
		"  --keyfile     TLS key file\n"+
		"  --ping        Ping the server and exit\n"+
		"  --retry       Extra tries for reads that fail to reach the server\n"+
		"  --retrywait  Wait between tries, milliseconds (default: %d ms)\n"+
		"  --timeout     API timeout, milliseconds (default: %d ms)\n"+
		"  --verbose     Print more (attributes, edge ids)\n"+
		"  --version     Print version\n"+
		"Commands:\n"+
		"  add         <graph> <v> [k=v]       Create vertex\n"+
		"  ancestors   <graph> <v> [match]     List vertex and the vertices it reaches\n"+
		"  compare     <graph> <v> <other>     Print partial order of two vertices\n"+
		"  descendants <graph> <v> [match]     List vertex and the vertices that reach it\n"+
		"  dot         <graph>                 Print graph in dot format\n"+
		"  edges       <graph> [match]         List edges\n"+
		"  graphs      [graph]                 List graphs\n"+
		"  help        <cmd>                   Print command help\n"+
		"  link        <graph> <v> <p> [k=v]   Add edge from vertex to parent\n"+
		"  resolve     <graph> <v> [key=|filter=]  Print resolved attributes\n"+
		"  set         <graph> <v> k=v         Merge local attributes\n"+
		"  show        <graph> <v>             Print vertex, parents, children\n"+
		"  tree        <graph> <v>             Print ancestor tree\n"+
		"  version                             Print KVDAG version\n"+
		"  vertices    <graph> [match]         List vertices\n",
		config.DEFAULT_ADDR, config.DEFAULT_CONFIG_FILES, config.DEFAULT_RETRY_WAIT, config.DEFAULT_TIMEOUT)
}

func (c *Help) QuickHelp() {
	if c.ctx.Source == nil {
		fmt.Fprintf(c.ctx.Out, "Specify --addr, --file, or ADDR environment variable to list all graphs\n")
		fmt.Fprintf(c.ctx.Out, "Run 'kvdagc help' for usage\n")
		return
	}
	if c.ctx.Options.File != "" {
		fmt.Fprintf(c.ctx.Out, "Graph documents: %s\n\n", c.ctx.Options.File)
	} else {
		fmt.Fprintf(c.ctx.Out, "KVDAG server address: %s\n\n", c.ctx.Options.Addr)
	}
	fmt.Fprintf(c.ctx.Out, "Graphs:\n")
	infos, err := c.ctx.Source.Graphs()
	if err != nil {
		fmt.Fprintf(c.ctx.Out, "  Error getting graph list: %s. Verify that --addr is correct and the KVDAG server is running.\n", err)
	} else {
		for _, g := range infos {
			fmt.Fprintf(c.ctx.Out, "  %s\n", g.Name)
		}
	}
	fmt.Fprintf(c.ctx.Out, "\nkvdagc vertices <graph>\n")
	fmt.Fprintf(c.ctx.Out, "kvdagc resolve  <graph> <vertex>\n")
}
