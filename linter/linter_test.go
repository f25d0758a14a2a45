// Copyright 2020, Square, Inc.

package linter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/linter"
	"github.com/square/kvdag/linter/app"
	"github.com/square/kvdag/test"
)

func TestRunValid(t *testing.T) {
	os.Args = []string{"linter", test.GraphPath}
	if err := linter.Run(app.Defaults()); err != nil {
		t.Error(err)
	}
}

func TestRunCheckFailed(t *testing.T) {
	os.Args = []string{"linter", filepath.Join(test.DataPath, "bad")}
	if err := linter.Run(app.Defaults()); err == nil {
		t.Error("no error, expected static check to fail")
	}
}

func TestRunLoadHook(t *testing.T) {
	var gotDir string
	ctx := app.Defaults()
	ctx.Hooks.LoadDocuments = func(dir string, logFunc func(string, ...interface{})) (document.Documents, error) {
		gotDir = dir
		return document.ParseDir(dir, logFunc)
	}
	os.Args = []string{"linter", test.GraphPath}
	if err := linter.Run(ctx); err != nil {
		t.Error(err)
	}
	if gotDir != test.GraphPath {
		t.Errorf("got dir %s, expected %s", gotDir, test.GraphPath)
	}
}
