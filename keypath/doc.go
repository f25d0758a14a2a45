/*
Copyright 2020, Square, Inc.

Package keypath provides the attribute store used by every vertex and edge in
a kvdag graph: a nested map of string keys addressed by key paths.

A key path is either a dot-separated string ("os.pkg.manager") or a
pre-split list of segments ([]string{"os", "pkg", "manager"}). Both forms
are accepted by every operation. Keys are canonicalized to strings on every
insert and merge, so a map decoded from YAML (map[interface{}]interface{})
and one built in Go (map[string]interface{}) address the same paths.

Types and functions provided by this package:

* Store: the interface kvdag uses for attribute storage. A Factory creates
  Stores; NewStore is the default Factory.

* Hash: the default Store, a map[string]interface{} tree.

* Path and Parse: key path handling.

* Stringify: deep copy with canonical string keys.

Merging is deep for maps and replacing for everything else: lists are never
concatenated.
*/
package keypath
