/*
Copyright 2020, Square, Inc.

Package config provides the ability to load config files into predefined
structures. The KVDAG server uses the KVDAGServer struct in
kvdag-server/app/app.go.

Types of config structs provided by this package:

* KVDAGServer: all of the config needed to run the server

* Server: the configuration for running a webserver (ex: the listen address the
  server should run on, the TLS config the server should run with, etc.)

* TLS: cert, key, and CA files. The server uses it to serve HTTPS; kvdagc
  uses it, through util.NewHTTPClient, to connect to the server

Values in a config file override Defaults. Environment variables override the
config file; see kvdag-server/server.
*/
package config
