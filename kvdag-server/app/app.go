// Copyright 2020, Square, Inc.

// Package app provides app context and extensions: hooks and factories.
package app

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/square/kvdag/config"
	"github.com/square/kvdag/kvdag-server/registry"
)

// Context represents the config, core service singletons, and 3rd-party
// extensions. There is one immutable context created in server.Boot and
// passed to the API.
type Context struct {
	Hooks     Hooks
	Factories Factories

	Config config.KVDAGServer
}

// Factories make objects at runtime. All factories are optional; the default
// is used when a factory is nil.
type Factories struct {
	MakeRegistry func(Context) (registry.Registry, error)
}

// Hooks allow users to modify system behavior at certain points. All hooks
// are optional; the default is used when a hook is nil.
type Hooks struct {
	// LoadConfig is called by server.Boot to load the config.
	LoadConfig func(Context) (config.KVDAGServer, error)
}

// Defaults returns a Context with default hooks and factories.
func Defaults() Context {
	return Context{
		Factories: Factories{
			MakeRegistry: MakeRegistry,
		},
		Hooks: Hooks{
			LoadConfig: LoadConfig,
		},
	}
}

// LoadConfig is the default LoadConfig hook. If a config file is given as the
// first command line argument it is loaded. Otherwise the file is chosen by
// the ENVIRONMENT env var: config/production.yaml, config/staging.yaml, or
// config/development.yaml (the default). A missing default file is not an
// error: the built-in defaults are used.
func LoadConfig(appCtx Context) (config.KVDAGServer, error) {
	cfg := config.Defaults()

	var cfgFile string
	if len(os.Args) > 1 {
		cfgFile = os.Args[1]
	} else {
		switch os.Getenv("ENVIRONMENT") {
		case "staging":
			cfgFile = "config/staging.yaml"
		case "production":
			cfgFile = "config/production.yaml"
		default:
			cfgFile = "config/development.yaml"
		}
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			log.Infof("config file %s does not exist, using defaults", cfgFile)
			return cfg, nil
		}
	}

	if err := config.Load(cfgFile, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MakeRegistry is the default MakeRegistry factory. It loads every graph
// document in Config.GraphDir, or returns an empty registry if GraphDir is
// not set.
func MakeRegistry(appCtx Context) (registry.Registry, error) {
	if appCtx.Config.GraphDir == "" {
		return registry.New(), nil
	}
	return registry.Load(appCtx.Config.GraphDir, log.Warnf)
}
