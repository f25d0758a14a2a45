// Copyright 2020, Square, Inc.

// Package cmd provides all the commands that kvdagc can run: resolve, link, etc.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/square/kvdag/keypath"
	"github.com/square/kvdag/kvdagc/app"
	"github.com/square/kvdag/proto"
)

var (
	ErrNotExist = errors.New("command does not exist")
)

type DefaultFactory struct {
}

func (f *DefaultFactory) Make(name string, ctx app.Context) (app.Command, error) {
	switch name {
	case "add":
		return NewAdd(ctx), nil
	case "ancestors":
		return NewWalk(ctx, "ancestors"), nil
	case "compare":
		return NewCompare(ctx), nil
	case "descendants":
		return NewWalk(ctx, "descendants"), nil
	case "dot":
		return NewDot(ctx), nil
	case "edges":
		return NewEdges(ctx), nil
	case "graphs":
		return NewGraphs(ctx), nil
	case "help":
		return NewHelp(ctx), nil
	case "link":
		return NewLink(ctx), nil
	case "resolve":
		return NewResolve(ctx), nil
	case "set":
		return NewSet(ctx), nil
	case "show":
		return NewShow(ctx), nil
	case "tree":
		return NewTree(ctx), nil
	case "version":
		return NewVersion(ctx), nil
	case "vertices":
		return NewVertices(ctx), nil
	default:
		return nil, ErrNotExist
	}
}

// --------------------------------------------------------------------------

// parseAttrs converts key=value args into an attribute map. Keys are key
// paths ("os.arch=arm64" sets {os: {arch: arm64}}). Values are parsed as YAML
// scalars or flow collections, so "weight=10" is a number and "ports=[80,443]"
// is a list.
func parseAttrs(args []string) (map[string]interface{}, error) {
	attrs, err := keypath.New(nil)
	if err != nil {
		return nil, err
	}
	for _, arg := range args {
		split := strings.SplitN(arg, "=", 2)
		if len(split) != 2 || split[0] == "" {
			return nil, fmt.Errorf("Invalid attribute %s: expected key=value", arg)
		}
		var val interface{}
		if err := yaml.Unmarshal([]byte(split[1]), &val); err != nil {
			val = split[1]
		}
		if err := attrs.Set(split[0], val); err != nil {
			return nil, fmt.Errorf("Invalid attribute %s: %s", arg, err)
		}
	}
	return attrs.ToMap(), nil
}

// matchArg returns the optional match predicate (a JSON object) at args[n].
func matchArg(args []string, n int) proto.VertexQuery {
	if len(args) > n {
		return proto.VertexQuery{Match: args[n]}
	}
	return proto.VertexQuery{}
}

// printIds prints one vertex id per line. If verbose, each vertex's local
// attributes are printed after its id.
func printIds(w io.Writer, vs []proto.Vertex, verbose bool) {
	for _, v := range vs {
		fmt.Fprintln(w, v.Id)
		if verbose && len(v.Attrs) > 0 {
			bytes, _ := yaml.Marshal(v.Attrs)
			for _, line := range strings.Split(strings.TrimSuffix(string(bytes), "\n"), "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
}

// keys returns the sorted top-level keys of m, comma-separated.
func keys(m map[string]interface{}) string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return strings.Join(ks, ",")
}
