// Copyright 2020, Square, Inc.

// Package render writes graphs and attribute views as text: Graphviz DOT,
// YAML, and indented ancestor trees.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora"
	"gopkg.in/yaml.v2"

	"github.com/square/kvdag/kvdag"
)

// Dot writes g in DOT graph format. Edges point from a vertex to its parents.
// Edges with local attributes are labeled with the attribute keys.
// Copy and paste output into http://www.webgraphviz.com/
func Dot(w io.Writer, g *kvdag.Graph) {
	fmt.Fprintf(w, "digraph {\n")
	fmt.Fprintf(w, "\trankdir=BT;\n")
	fmt.Fprintf(w, "\tlabelloc=\"t\";\n")
	fmt.Fprintf(w, "\tlabel=\"%s\"\n", escape(g.Name()))
	fmt.Fprintf(w, "\tfontsize=22\n")
	fmt.Fprintf(w, "\tnode [style=filled,color=\"%s\",shape=box]\n", "#86cedf")
	for _, v := range g.Vertices() {
		fmt.Fprintf(w, "\t\"%s\" [label=\"%s\\n%s\"]\n", escape(v.ID()), escape(v.ID()), escape(keyList(v.Attrs().ToMap())))
	}
	for _, e := range g.Edges() {
		label := ""
		if attrs := e.Attrs().ToMap(); len(attrs) > 0 {
			label = fmt.Sprintf(" [label=\"%s\"]", escape(keyList(attrs)))
		}
		fmt.Fprintf(w, "\t\"%s\" -> \"%s\"%s;\n", escape(e.Source().ID()), escape(e.Target().ID()), label)
	}
	fmt.Fprintln(w, "}")
}

// YAML writes v, usually a resolved view from ToMap or a document, as YAML.
func YAML(w io.Writer, v interface{}) error {
	bytes, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(bytes)
	return err
}

// Tree writes v and its ancestors as an indented tree, parents in link order.
// A vertex reached a second time is printed once more, marked "(seen)",
// without its parents.
//
//   web01
//     web
//       base
//     debian
//       base (seen)
func Tree(w io.Writer, v *kvdag.Vertex, indent string) {
	ColorTree(w, v, indent, aurora.NewAurora(false))
}

// ColorTree is Tree with vertex ids in bold and repeat visits in gray when
// au has colors enabled.
func ColorTree(w io.Writer, v *kvdag.Vertex, indent string, au aurora.Aurora) {
	seen := map[string]bool{}
	var walk func(v *kvdag.Vertex, depth int)
	walk = func(v *kvdag.Vertex, depth int) {
		prefix := strings.Repeat(indent, depth)
		if seen[v.ID()] {
			fmt.Fprintf(w, "%s%s\n", prefix, au.Gray(12, v.ID()+" (seen)"))
			return
		}
		seen[v.ID()] = true
		fmt.Fprintf(w, "%s%s\n", prefix, au.Bold(v.ID()))
		for _, e := range v.Edges() {
			walk(e.Target(), depth+1)
		}
	}
	walk(v, 0)
}

func keyList(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func escape(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}
