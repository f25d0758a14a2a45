// Copyright 2020, Square, Inc.

package main

import (
	"log"

	"github.com/square/kvdag/kvdag-server/app"
	"github.com/square/kvdag/kvdag-server/server"
)

func main() {
	s := server.NewServer(app.Defaults())
	if err := s.Boot(); err != nil {
		log.Fatalf("Error starting KVDAG server: %s", err)
	}
	err := s.Run(true)
	log.Fatalf("KVDAG server stopped: %s", err)
}
