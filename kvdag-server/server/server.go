// Copyright 2020, Square, Inc.

// Package server bootstraps and runs the KVDAG server.
package server

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/config"
	"github.com/square/kvdag/kvdag-server/api"
	"github.com/square/kvdag/kvdag-server/app"
	"github.com/square/kvdag/kvdag-server/graphs"
)

type Server struct {
	appCtx app.Context
	api    *api.API

	apiStopped chan struct{}
	stopMux    sync.Mutex
	stopped    bool
}

func NewServer(appCtx app.Context) *Server {
	return &Server{
		appCtx:     appCtx,
		stopMux:    sync.Mutex{},
		apiStopped: make(chan struct{}),
	}
}

// Run runs the API in the foreground. It returns when the API stops running
// (either from an error, or after a call to Stop).
//
// If stopOnSignal = true, the server will listen for TERM and INT signals from the
// OS and call Stop to shut itself down when those signals are received. Else, the
// caller must call Stop to shut down the server.
func (s *Server) Run(stopOnSignal bool) error {
	if s.api == nil {
		panic("Server.Run called before Server.Boot")
	}
	if s.stopped {
		return fmt.Errorf("server stopped")
	}

	if stopOnSignal {
		go s.waitForShutdown()
	}

	// Blocks until the API is stopped or fails
	err := s.api.Run()

	// If the server was stopped (as opposed to some error within the API), wait
	// to make sure it's done shutting down the API before returning.
	if s.stopped {
		<-s.apiStopped
	}

	if err != nil {
		return fmt.Errorf("error from API: %s", err)
	}
	return nil
}

// Boot sets up the server: it loads the config, loads the graphs, and creates
// the API. It must be called before calling Run.
func (s *Server) Boot() error {
	// Only run Boot once.
	if s.api != nil {
		return nil
	}

	// Load config file
	cfg, err := s.appCtx.Hooks.LoadConfig(s.appCtx)
	if err != nil {
		return fmt.Errorf("error loading config: %s", err)
	}
	// Override with env vars, if set
	cfg.Server.Addr = config.Env("KVDAG_SERVER_ADDR", cfg.Server.Addr)
	cfg.GraphDir = config.Env("KVDAG_GRAPH_DIR", cfg.GraphDir)
	s.appCtx.Config = cfg
	cfgstr, _ := json.MarshalIndent(cfg, "", "  ")
	log.Printf("Config: %s", cfgstr)

	if cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log_level: %s", err)
		}
		log.SetLevel(level)
	}

	reg, err := s.appCtx.Factories.MakeRegistry(s.appCtx)
	if err != nil {
		return fmt.Errorf("error loading graphs: %s", err)
	}
	log.Infof("%d graphs loaded: %v", len(reg.Names()), reg.Names())

	s.api = api.NewAPI(s.appCtx, graphs.NewManager(reg))
	return nil
}

// Stop stops the server. Once Stop has been called, the server cannot be
// reused: future calls to Run will return an error.
//
// If stopOnSignal was set when calling Run, Stop will automatically be called by
// the server on receiving a TERM or INT signal from the OS. Otherwise, you must
// call Stop when you want to shut down the server.
func (s *Server) Stop() error {
	// Only stop once. We lock the whole Stop call, so that, if Stop is called
	// multiple times in quick succession, no calls will return before the server
	// has actually been shut down.
	s.stopMux.Lock()
	defer s.stopMux.Unlock()
	if s.stopped {
		return nil
	}
	s.stopped = true

	log.Infof("Stopping KVDAG server")

	err := s.api.Stop()
	close(s.apiStopped) // indicate to Run that the API is done shutting down

	if err != nil {
		return fmt.Errorf("error stopping API: %s", err)
	}
	return nil
}

// API returns the API created in Boot.
func (s *Server) API() *api.API {
	return s.api
}

// --------------------------------------------------------------------------

// Catch TERM and INT signals to gracefully shut down the server
func (s *Server) waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan

	err := s.Stop()
	if err != nil {
		log.Errorf("error shutting down server: %s", err)
	}
}
