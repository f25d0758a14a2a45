// Copyright 2020, Square, Inc.

package kvdag

import (
	"github.com/square/kvdag/keypath"
)

// node is implemented by Vertex and Edge. attrNode uses it to reach the
// resolved view and properties of the node that embeds it.
type node interface {
	ID() string
	ResolvedView() keypath.Store
	property(Property) (interface{}, bool)
}

// attrNode holds the local attributes of a vertex or edge and provides the
// attribute methods common to both.
type attrNode struct {
	attrs keypath.Store
	self  node
}

type fetchOptions struct {
	shallow bool
}

// A FetchOption changes how Fetch and Get read attributes.
type FetchOption func(*fetchOptions)

// Shallow limits a lookup to the node's local attributes.
func Shallow() FetchOption {
	return func(o *fetchOptions) { o.shallow = true }
}

// Attrs returns the node's local attribute store. Changes to the store are
// changes to the node.
func (n *attrNode) Attrs() keypath.Store {
	return n.attrs
}

// Fetch returns the attribute at key from the resolved view, or from local
// attributes only if Shallow is given. It returns an AttrNotFound error if
// key is absent.
func (n *attrNode) Fetch(key interface{}, opts ...FetchOption) (interface{}, error) {
	o := fetchOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	store := n.attrs
	if !o.shallow {
		store = n.self.ResolvedView()
	}
	v, err := store.Fetch(key)
	if err != nil {
		return nil, AttrNotFound{
			Node:    n.self.ID(),
			Key:     keypath.Parse(key),
			Shallow: o.shallow,
			Err:     err,
		}
	}
	return v, nil
}

// Get is Fetch but returns nil if key is absent.
func (n *attrNode) Get(key interface{}, opts ...FetchOption) interface{} {
	v, err := n.Fetch(key, opts...)
	if err != nil {
		return nil
	}
	return v
}

// Set writes value at key in the node's local attributes.
func (n *attrNode) Set(key interface{}, value interface{}) error {
	return n.attrs.Set(key, value)
}

// Merge deep-merges a plain mapping into the node's local attributes.
func (n *attrNode) Merge(other interface{}) error {
	return n.attrs.MergeInPlace(other)
}

// Filter returns the subtrees of the resolved view at paths.
func (n *attrNode) Filter(paths ...interface{}) (keypath.Store, error) {
	return n.self.ResolvedView().Filter(paths...)
}

// Match returns true if every given predicate matches the node. No
// predicates, or empty ones, always match.
func (n *attrNode) Match(preds ...Predicate) bool {
	p := combine(preds)
	if p.Empty() {
		return true
	}
	if len(p.Rules) > 0 {
		view := n.self.ResolvedView()
		for _, r := range p.Rules {
			if !r.matches(view) {
				return false
			}
		}
	}
	for prop, pat := range p.Props {
		v, ok := n.self.property(prop)
		if !ok || !PatternMatches(pat, v) {
			return false
		}
	}
	return true
}

// ToMap returns the resolved view as plain maps.
func (n *attrNode) ToMap() map[string]interface{} {
	return n.self.ResolvedView().ToMap()
}
