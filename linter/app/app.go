// Copyright 2020, Square, Inc.

// Package app provides app-wide data structs and functions.
package app

import (
	"github.com/square/kvdag/document"
)

// Context represents how to run linter. A context is passed to linter.Run().
// A default context is created in main.go. Wrapper code can integrate with
// linter by passing a custom context to linter.Run(). Integration is done
// primarily with hooks and factories.
type Context struct {
	// for integration with other code
	Factories Factories
	Hooks     Hooks
}

type Factories struct {
	CheckFactories []document.CheckFactory // All additional check factories to run
}

type Hooks struct {
	LoadDocuments func(graphsDir string, logFunc func(string, ...interface{})) (document.Documents, error)
}

func Defaults() Context {
	return Context{
		Factories: Factories{
			CheckFactories: []document.CheckFactory{document.DefaultCheckFactory{}},
		},
		Hooks: Hooks{
			LoadDocuments: document.ParseDir,
		},
	}
}
