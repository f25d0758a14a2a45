// Copyright 2020, Square, Inc.

package main

import (
	"fmt"
	"os"

	"github.com/square/kvdag/kvdagc"
	"github.com/square/kvdag/kvdagc/app"
)

func main() {
	defaultContext := app.Context{
		In:        os.Stdin,
		Out:       os.Stdout,
		Hooks:     app.Hooks{},
		Factories: app.Factories{},
	}
	if err := kvdagc.Run(defaultContext); err != nil {
		if err != app.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
