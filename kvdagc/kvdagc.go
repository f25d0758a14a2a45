// Copyright 2020, Square, Inc.

// Package kvdagc provides a framework for integration with other programs.
package kvdagc

import (
	"fmt"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	kvconfig "github.com/square/kvdag/config"
	"github.com/square/kvdag/document"
	kvs "github.com/square/kvdag/kvdag-server"
	"github.com/square/kvdag/kvdag-server/graphs"
	"github.com/square/kvdag/kvdag-server/registry"
	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/kvdagc/cmd"
	"github.com/square/kvdag/kvdagc/config"
	"github.com/square/kvdag/retry"
	"github.com/square/kvdag/util"
)

// Run runs kvdagc and returns when done. When using a standard kvdagc bin, Run
// is called by kvdagc/bin/main.go. When kvdagc is wrapped by custom code, that
// code imports this pkg then calls kvdagc.Run() with its custom factories. If a
// factory is not set (nil), then the default/standard factory is used.
//
// Help and version return app.ErrHelp.
func Run(ctx app.Context) error {
	// //////////////////////////////////////////////////////////////////////
	// Config and command line
	// //////////////////////////////////////////////////////////////////////

	// Options are set in this order: config -> env var -> cmd line option.
	// So first we must apply config files, then do cmd line parsing which
	// will apply env vars and cmd line options.

	// Parse cmd line to get --config files
	cmdLine, err := config.ParseCommandLine(config.Options{})
	if err != nil {
		return err
	}

	// --config files override defaults if given
	configFiles := config.DEFAULT_CONFIG_FILES
	if cmdLine.Config != "" {
		configFiles = cmdLine.Config
	}

	// Parse default options from config files
	def := config.ParseConfigFiles(configFiles, cmdLine.Debug)

	// Parse env vars and cmd line options, override default config
	cmdLine, err = config.ParseCommandLine(def)
	if err != nil {
		return err
	}

	// Final options and commands
	var o config.Options = cmdLine.Options
	var c config.Command = cmdLine.Command
	if o.Debug {
		log.SetLevel(log.DebugLevel)
		app.Debug("command: %#v", c)
		app.Debug("options: %#v", o)
	}

	if ctx.Hooks.AfterParseOptions != nil {
		if o.Debug {
			app.Debug("calling hook AfterParseOptions")
		}
		ctx.Hooks.AfterParseOptions(&o)

		// Dump options again to see if hook changed them
		if o.Debug {
			app.Debug("options: %#v", o)
		}
	}
	ctx.Options = o
	ctx.Command = c

	// Number of positional args: command plus its args
	if c.Cmd != "" {
		ctx.Nargs = 1 + len(c.Args)
	}

	if ctx.Factories.HTTPClient == nil {
		ctx.Factories.HTTPClient = &httpClientFactory{}
	}
	if ctx.Factories.Source == nil {
		ctx.Factories.Source = &sourceFactory{}
	}

	// //////////////////////////////////////////////////////////////////////
	// Help and version
	// //////////////////////////////////////////////////////////////////////

	// kvdagc --version or kvdagc version
	if o.Version || c.Cmd == "version" {
		cmd.NewVersion(ctx).Run()
		return app.ErrHelp
	}

	// Help lists graphs if a source can be made; else it prints usage only.
	if o.Help || c.Cmd == "help" || (c.Cmd == "" && !o.Ping) {
		if ctx.Nargs == 0 && !o.Help {
			if src, err := ctx.Factories.Source.Make(ctx); err == nil {
				ctx.Source = src
			} else if o.Debug {
				app.Debug("no source for quick help: %s", err)
			}
		}
		return cmd.NewHelp(ctx).Run()
	}

	// //////////////////////////////////////////////////////////////////////
	// Graph source: KVDAG server or local documents
	// //////////////////////////////////////////////////////////////////////
	src, err := ctx.Factories.Source.Make(ctx)
	if err != nil {
		return err
	}
	ctx.Source = src

	// //////////////////////////////////////////////////////////////////////
	// Ping
	// //////////////////////////////////////////////////////////////////////
	if o.Ping {
		if _, err := src.Graphs(); err != nil {
			return fmt.Errorf("Ping failed: %s", err)
		}
		fmt.Fprintf(ctx.Out, "%s OK\n", o.Addr)
		return nil
	}

	// //////////////////////////////////////////////////////////////////////
	// Commands
	// //////////////////////////////////////////////////////////////////////
	cmdFactory := &cmd.DefaultFactory{}

	var run app.Command
	if ctx.Factories.Command != nil {
		run, err = ctx.Factories.Command.Make(c.Cmd, ctx)
		if err != nil {
			switch err {
			case cmd.ErrNotExist:
				if o.Debug {
					app.Debug("user cmd factory cannot make a %s cmd, trying default factory", c.Cmd)
				}
			default:
				return fmt.Errorf("User command factory error: %s", err)
			}
		}
	}
	if run == nil {
		if o.Debug {
			app.Debug("using default factory to make a %s cmd", c.Cmd)
		}
		run, err = cmdFactory.Make(c.Cmd, ctx)
		if err != nil {
			switch err {
			case cmd.ErrNotExist:
				return fmt.Errorf("Unknown command: %s. Run 'kvdagc help' to list commands.", c.Cmd)
			default:
				return fmt.Errorf("Command factory error: %s", err)
			}
		}
	}

	if err := run.Prepare(); err != nil {
		if o.Debug {
			app.Debug("%s Prepare error: %s", c.Cmd, err)
		}
		return err
	}

	if err := run.Run(); err != nil {
		if o.Debug {
			app.Debug("%s Run error: %s", c.Cmd, err)
		}
		return err
	}
	return nil
}

// --------------------------------------------------------------------------

type sourceFactory struct{}

// Make returns a graphs.Manager over the local documents if --file is set,
// else a KVDAG server client.
func (f *sourceFactory) Make(ctx app.Context) (app.Source, error) {
	o := ctx.Options
	if o.File != "" {
		if o.Debug {
			app.Debug("file: %s", o.File)
		}
		return localSource(o.File)
	}

	if o.Addr == "" {
		return nil, fmt.Errorf("KVDAG server address is not set."+
			" It is best to specify addr in a config file (%s). Or, specify"+
			" --addr on the command line option or set the ADDR environment"+
			" variable. Use --ping to test addr when set.", config.DEFAULT_CONFIG_FILES)
	}
	if o.Debug {
		app.Debug("addr: %s", o.Addr)
	}
	httpClient, err := ctx.Factories.HTTPClient.Make(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error making http.Client: %s", err)
	}
	return kvs.NewClient(httpClient, o.Addr), nil
}

// localSource loads one graph document, or every document in a directory.
func localSource(file string) (app.Source, error) {
	fi, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	var reg registry.Registry
	if fi.IsDir() {
		reg, err = registry.Load(file, log.Warnf)
	} else {
		var doc *document.Document
		doc, err = document.ParseFile(file, log.Warnf)
		if err != nil {
			return nil, err
		}
		reg, err = registry.LoadDocuments(document.Documents{doc.Graph: doc}, log.Warnf)
	}
	if err != nil {
		return nil, err
	}
	return graphs.NewManager(reg), nil
}

type httpClientFactory struct{}

func (f *httpClientFactory) Make(ctx app.Context) (*http.Client, error) {
	o := ctx.Options
	c, err := util.NewHTTPClient(kvconfig.TLS{
		CAFile:   o.CAFile,
		CertFile: o.CertFile,
		KeyFile:  o.KeyFile,
	})
	if err != nil {
		return nil, err
	}
	c.Timeout = time.Duration(o.Timeout) * time.Millisecond
	if o.Retry > 0 {
		next := c.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		c.Transport = &retryTransport{
			next:  next,
			tries: int(o.Retry) + 1,
			wait:  time.Duration(o.RetryWait) * time.Millisecond,
		}
	}
	return c, nil
}

// retryTransport retries GET requests that fail to reach the server. Requests
// that change a graph are sent once.
type retryTransport struct {
	next  http.RoundTripper
	tries int
	wait  time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != "GET" {
		return t.next.RoundTrip(req)
	}
	var resp *http.Response
	err := retry.Do(t.tries, t.wait,
		func() error {
			var err error
			resp, err = t.next.RoundTrip(req)
			return err
		},
		func(err error) {
			log.Warnf("%s %s: %s (retrying)", req.Method, req.URL, err)
		},
	)
	return resp, err
}
