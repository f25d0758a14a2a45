// Copyright 2020, Square, Inc.

// Package config handles config files, --config, and env vars at startup.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	DEFAULT_CONFIG_FILES = "/etc/kvdagc/kvdagc.yaml,~/.kvdagc.yaml"
	DEFAULT_ADDR         = "http://127.0.0.1:8420"
	DEFAULT_TIMEOUT      = 5000 // 5s
	DEFAULT_RETRY_WAIT   = 500  // 0.5s
)

// Options represents typical command line options: --addr, --config, etc.
type Options struct {
	Addr      string `arg:"env" yaml:"addr"`
	CAFile    string `arg:"env" yaml:"ca_file"`
	CertFile  string `arg:"env" yaml:"cert_file"`
	Config    string `arg:"env"`
	Debug     bool
	File      string `arg:"env" yaml:"file"` // graph document or directory; overrides --addr
	Help      bool
	KeyFile   string `arg:"env" yaml:"key_file"`
	Ping      bool
	Retry     uint `arg:"env" yaml:"retry"`      // extra tries for reads
	RetryWait uint `arg:"env" yaml:"retry_wait"` // milliseconds between tries
	Timeout   uint `arg:"env" yaml:"timeout"`
	Version   bool
	Verbose   bool `arg:"-v"`
}

// Command represents a command (resolve, link, etc.) and its values.
type Command struct {
	Cmd  string   `arg:"positional"`
	Args []string `arg:"positional"`
}

// CommandLine represents options (--addr, etc.) and commands (resolve, etc.).
// The caller is expected to copy and use the embedded structs separately, like:
//
//   var o config.Options = cmdLine.Options
//   var c config.Command = cmdLine.Command
//
// Some commands and options are mutually exclusive, like --ping and --version.
// Others can be used together, like --addr and --timeout with any command.
type CommandLine struct {
	Options
	Command
}

// ParseCommandLine parses the command line and env vars. Command line options
// override env vars. Default options are used unless overridden by env vars or
// command line options. Defaults are usually parsed from config files.
func ParseCommandLine(def Options) (CommandLine, error) {
	var c CommandLine
	c.Options = def
	p, err := arg.NewParser(arg.Config{Program: "kvdagc"}, &c)
	if err != nil {
		return c, fmt.Errorf("arg.NewParser: %s", err)
	}
	if err := p.Parse(os.Args[1:]); err != nil {
		switch err {
		case arg.ErrHelp:
			c.Help = true
		case arg.ErrVersion:
			c.Version = true
		default:
			return c, fmt.Errorf("Error parsing command line: %s\n", err)
		}
	}
	return c, nil
}

// ParseConfigFiles returns the options set in the comma-separated list of
// YAML config files. Later files override earlier ones. Missing or invalid
// files are skipped.
func ParseConfigFiles(files string, debug bool) Options {
	def := Options{
		Addr:      DEFAULT_ADDR,
		RetryWait: DEFAULT_RETRY_WAIT,
		Timeout:   DEFAULT_TIMEOUT,
	}
	for _, file := range strings.Split(files, ",") {
		// If file starts with ~/, we need to expand this to the user home dir
		// because this is a shell expansion, not something Go knows about.
		if strings.HasPrefix(file, "~/") {
			usr, err := user.Current()
			if err != nil {
				continue
			}
			file = filepath.Join(usr.HomeDir, file[2:])
		}

		absfile, err := filepath.Abs(file)
		if err != nil {
			if debug {
				log.Debugf("filepath.Abs(%s) error: %s", file, err)
			}
			continue
		}

		bytes, err := ioutil.ReadFile(absfile)
		if err != nil {
			if debug {
				log.Debugf("Cannot read config file %s: %s", file, err)
			}
			continue
		}

		var o Options
		if err := yaml.Unmarshal(bytes, &o); err != nil {
			if debug {
				log.Debugf("Invalid YAML in config file %s: %s", file, err)
			}
			continue
		}

		// Set options from this config file only if they're set
		if debug {
			log.Debugf("Applying config file %s (%s)", file, absfile)
		}
		if o.Addr != "" {
			def.Addr = o.Addr
		}
		if o.CAFile != "" {
			def.CAFile = o.CAFile
		}
		if o.CertFile != "" {
			def.CertFile = o.CertFile
		}
		if o.KeyFile != "" {
			def.KeyFile = o.KeyFile
		}
		if o.File != "" {
			def.File = o.File
		}
		if o.Retry != 0 {
			def.Retry = o.Retry
		}
		if o.RetryWait != 0 {
			def.RetryWait = o.RetryWait
		}
		if o.Timeout != 0 {
			def.Timeout = o.Timeout
		}
	}
	return def
}
