// Copyright 2020, Square, Inc.

// format-document rewrites a graph document in canonical form: vertices
// sorted by id, attributes sorted by key, and empty attrs dropped. Comments
// are not preserved. The document must pass the static checks.
package main

import (
	"fmt"
	"os"

	"github.com/square/kvdag/document"
	"github.com/square/kvdag/render"
)

func main() {
	/* Process arguments. */
	args := os.Args
	if len(args) != 3 {
		fmt.Printf("Usage: %s [input file path] [output file path]\n", args[0])
		os.Exit(0)
	}
	filename := args[1]
	ofilename := args[2]

	/* Parse and check. */
	printf := func(s string, args ...interface{}) { fmt.Printf(s, args...) }
	doc, err := document.ParseFile(filename, printf)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := document.RunChecks(document.Documents{doc.Graph: doc}, printf); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	/* Round trip through a graph so the output is what the server would load. */
	g, err := document.Build(doc)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	of, err := os.Create(ofilename)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer of.Close()

	if err := render.YAML(of, document.Export(g)); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
