// Copyright 2020, Square, Inc.

package kvdagc_test

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/square/kvdag/kvdag-server/api"
	srvapp "github.com/square/kvdag/kvdag-server/app"
	"github.com/square/kvdag/kvdag-server/graphs"
	"github.com/square/kvdag/kvdag-server/registry"
	"github.com/square/kvdag/kvdagc"
	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/kvdagc/config"
	"github.com/square/kvdag/proto"
	"github.com/square/kvdag/test"
	"github.com/square/kvdag/test/mock"
)

type sourceFactory struct {
	src app.Source
}

func (f sourceFactory) Make(ctx app.Context) (app.Source, error) {
	return f.src, nil
}

func TestArgsNoCommand(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := app.Context{
		In:        os.Stdin,
		Out:       out,
		Hooks:     app.Hooks{},
		Factories: app.Factories{},
	}
	os.Args = []string{"kvdagc", "--config", "nonexistent.yaml", "--file", test.GraphPath}
	err := kvdagc.Run(ctx)
	if err != app.ErrHelp {
		t.Errorf("got error '%v', expected ErrHelp", err)
	}
	// Quick help lists the graphs
	if !bytes.Contains(out.Bytes(), []byte("  hosts\n")) || !bytes.Contains(out.Bytes(), []byte("  services\n")) {
		t.Errorf("graphs not listed in output:\n%s", out.String())
	}
}

func TestArgsHelpCommand(t *testing.T) {
	ctx := app.Context{
		In:        os.Stdin,
		Out:       &bytes.Buffer{},
		Hooks:     app.Hooks{},
		Factories: app.Factories{},
	}
	os.Args = []string{"kvdagc", "--help"}
	err := kvdagc.Run(ctx)
	if err != app.ErrHelp {
		t.Errorf("got error '%v', expected ErrHelp", err)
	}
}

func TestFileAncestors(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := app.Context{
		In:  os.Stdin,
		Out: out,
	}
	file := filepath.Join(test.GraphPath, "hosts.yaml")
	os.Args = []string{"kvdagc", "--config", "nonexistent.yaml", "--file", file, "ancestors", "hosts", "web01"}
	if err := kvdagc.Run(ctx); err != nil {
		t.Fatal(err)
	}
	expect := "web01\nweb\ndebian\nbase\n"
	if out.String() != expect {
		t.Errorf("got output %q, expected %q", out.String(), expect)
	}
}

func TestAfterParseOptionsHook(t *testing.T) {
	var result interface{}
	ctx := app.Context{
		In:  os.Stdin,
		Out: &bytes.Buffer{},
		Hooks: app.Hooks{
			AfterParseOptions: func(o *config.Options) {
				o.File = test.GraphPath
			},
			CommandRunResult: func(v interface{}, err error) {
				result = v
			},
		},
	}
	os.Args = []string{"kvdagc", "--config", "nonexistent.yaml", "resolve", "services", "api", "key=retries"}
	if err := kvdagc.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if result == nil {
		t.Fatal("CommandRunResult not called")
	}
}

func TestUnknownCommand(t *testing.T) {
	ctx := app.Context{
		In:  os.Stdin,
		Out: &bytes.Buffer{},
	}
	os.Args = []string{"kvdagc", "--config", "nonexistent.yaml", "--file", test.GraphPath, "frobnicate"}
	if err := kvdagc.Run(ctx); err == nil {
		t.Error("no error, expected one")
	}
}

func TestServerPingAndResolve(t *testing.T) {
	reg, err := registry.Load(test.GraphPath, t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(api.NewAPI(srvapp.Defaults(), graphs.NewManager(reg)))
	defer ts.Close()

	out := &bytes.Buffer{}
	ctx := app.Context{In: os.Stdin, Out: out}
	os.Args = []string{"kvdagc", "--config", "nonexistent.yaml", "--addr", ts.URL, "--retry", "2", "--ping"}
	if err := kvdagc.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if out.String() != ts.URL+" OK\n" {
		t.Errorf("got output %q", out.String())
	}

	out.Reset()
	os.Args = []string{"kvdagc", "--config", "nonexistent.yaml", "--addr", ts.URL, "resolve", "hosts", "web01", "key=os.pkg"}
	if err := kvdagc.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "apt" {
		t.Errorf("got output %q, expected apt", out.String())
	}
}

func TestSourceFactoryPingError(t *testing.T) {
	ctx := app.Context{
		In:  os.Stdin,
		Out: &bytes.Buffer{},
		Factories: app.Factories{
			Source: sourceFactory{
				src: &mock.KVSClient{
					GraphManager: mock.GraphManager{
						GraphsFunc: func() ([]proto.GraphInfo, error) {
							return nil, mock.ErrKVSClient
						},
					},
				},
			},
		},
	}
	os.Args = []string{"kvdagc", "--config", "nonexistent.yaml", "--ping"}
	err := kvdagc.Run(ctx)
	if err == nil || !strings.Contains(err.Error(), mock.ErrKVSClient.Error()) {
		t.Errorf("got err %v, expected ping to fail with %v", err, mock.ErrKVSClient)
	}
}
