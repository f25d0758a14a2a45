// Copyright 2020, Square, Inc.

// Package linter checks and builds graph documents without starting a server.
package linter

import (
	"fmt"

	"github.com/alexflint/go-arg"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/linter/app"
)

var cmd struct {
	GraphsDir string `arg:"positional,required" help:"path to graph documents directory"`
}

func Run(ctx app.Context) error {
	/* Setup. */
	arg.MustParse(&cmd)
	printf := func(s string, args ...interface{}) { fmt.Printf(s+"\n", args...) }

	if ctx.Hooks.LoadDocuments == nil {
		ctx.Hooks.LoadDocuments = document.ParseDir
	}

	/* Static checks. */
	docs, err := ctx.Hooks.LoadDocuments(cmd.GraphsDir, printf)
	if err != nil {
		return err
	}

	checkFactories := append([]document.CheckFactory{document.BaseCheckFactory{}}, ctx.Factories.CheckFactories...)
	checker, err := document.NewChecker(checkFactories)
	if err != nil {
		return err
	}
	results := checker.RunChecks(docs)
	for _, name := range results.Keys() {
		result, _ := results.Get(name)
		for _, err := range result.Errors {
			printf("%s: Error: %s", docs[name].File, err)
		}
		for _, err := range result.Warnings {
			printf("%s: Warning: %s", docs[name].File, err)
		}
	}
	if results.AnyError {
		return fmt.Errorf("static check failed") // errors printed above
	}

	/* Graph checks. */
	graphs, err := document.BuildAll(docs)
	if err != nil {
		return fmt.Errorf("graph check failed: %s", err)
	}
	for _, name := range docs.Names() {
		g := graphs[name]
		printf("%s: %d vertices, %d edges", name, g.Len(), len(g.Edges()))
	}

	return nil
}
