// Copyright 2020, Square, Inc.

package main

import (
	"fmt"
	"os"

	"github.com/square/kvdag/linter"
	"github.com/square/kvdag/linter/app"
)

func main() {
	if err := linter.Run(app.Defaults()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("No errors")
}
