// Copyright 2020, Square, Inc.

package keypath

import (
	"errors"
	"fmt"
)

var ErrEmptyPath = errors.New("empty key path")

var _ error = PathNotFound{}

// PathNotFound is returned by strict lookups when a segment of Path is
// absent. Missing is the prefix of Path that could not be resolved.
type PathNotFound struct {
	Path    Path
	Missing Path
}

func (e PathNotFound) Error() string {
	if len(e.Missing) == 0 || len(e.Missing) == len(e.Path) {
		return fmt.Sprintf("key path %s not found", e.Path)
	}
	return fmt.Sprintf("key path %s not found (%s is missing)", e.Path, e.Missing)
}

var _ error = TypeError{}

// TypeError is returned when a store is built from, or merged with, a value
// that is not a mapping.
type TypeError struct {
	Value interface{}
}

func (e TypeError) Error() string {
	return fmt.Sprintf("attribute store requires a mapping, got %T", e.Value)
}
