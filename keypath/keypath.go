// Copyright 2020, Square, Inc.

package keypath

import (
	"fmt"
	"strings"
)

// Separator splits string key paths into segments.
const Separator = "."

// Path is a key path split into segments. The empty Path addresses the root
// of a store.
type Path []string

// Parse converts p into a Path. Strings are split on Separator, string and
// interface slices are taken segment by segment, and any other value becomes
// a single segment.
func Parse(p interface{}) Path {
	switch v := p.(type) {
	case nil:
		return Path{}
	case Path:
		return append(Path{}, v...)
	case []string:
		return append(Path{}, v...)
	case string:
		if v == "" {
			return Path{}
		}
		return Path(strings.Split(v, Separator))
	case []interface{}:
		path := make(Path, len(v))
		for i, seg := range v {
			path[i] = Key(seg)
		}
		return path
	default:
		return Path{Key(v)}
	}
}

// Key returns the canonical string form of a map key or path segment.
func Key(k interface{}) string {
	switch v := k.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (p Path) String() string {
	return strings.Join(p, Separator)
}

// nest returns v wrapped in one map level per segment of p, so that merging
// the result into a store writes v at p.
func nest(p Path, v interface{}) map[string]interface{} {
	if len(p) == 0 {
		m, _ := v.(map[string]interface{})
		return m
	}
	for i := len(p) - 1; i > 0; i-- {
		v = map[string]interface{}{p[i]: v}
	}
	return map[string]interface{}{p[0]: v}
}
