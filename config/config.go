// Copyright 2020, Square, Inc.

package config

import (
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

///////////////////////////////////////////////////////////////////////////////
// High-Level Config Structs
///////////////////////////////////////////////////////////////////////////////

// The config used by the KVDAG server. This is read from in
// kvdag-server/app/app.go
type KVDAGServer struct {
	// The config that the web server will run with.
	Server Server `yaml:"server"`

	// The directory that holds all of the graph documents loaded at boot.
	// Subdirectories are read too. If empty, the server starts with no graphs.
	GraphDir string `yaml:"graph_dir"`

	// Log level: debug, info, warn, error. Default: info.
	LogLevel string `yaml:"log_level"`
}

///////////////////////////////////////////////////////////////////////////////
// Config Components
///////////////////////////////////////////////////////////////////////////////

// Configuration for a web server.
type Server struct {
	// The address the server will listen on (ex: "127.0.0.1:8420").
	Addr string `yaml:"addr"`

	// The TLS config used by the server.
	TLS TLS `yaml:"tls"`
}

// TLS configuration.
type TLS struct {
	// The certificate file to use.
	CertFile string `yaml:"cert_file"`

	// The key file to use.
	KeyFile string `yaml:"key_file"`

	// The CA file to use.
	CAFile string `yaml:"ca_file"`
}

// Defaults returns the default server config.
func Defaults() KVDAGServer {
	return KVDAGServer{
		Server: Server{
			Addr: "127.0.0.1:8420",
		},
		LogLevel: "info",
	}
}

///////////////////////////////////////////////////////////////////////////////
// Loading Config
///////////////////////////////////////////////////////////////////////////////

// Load loads a configuration file into the struct pointed to by the
// configStruct argument.
func Load(configFile string, configStruct interface{}) error {
	// Make sure the file exists.
	_, err := os.Stat(configFile)
	if err != nil {
		return err
	}

	// Read the file.
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return err
	}

	// Unmarshal the contents of the file into the provided struct.
	err = yaml.Unmarshal(data, configStruct)
	if err != nil {
		return err
	}

	return nil
}

// Env returns the value of environment variable name if set, else def.
func Env(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
