// Copyright 2020, Square, Inc.

package keypath

import (
	"reflect"
)

// Stringify returns a deep copy of v in which every map, at any depth and
// including maps inside lists, is a map[string]interface{}. Keys are
// converted with Key. Scalars are returned as is.
func Stringify(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, e := range val {
			m[k] = Stringify(e)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, e := range val {
			m[Key(k)] = Stringify(e)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(val))
		for i, e := range val {
			l[i] = Stringify(e)
		}
		return l
	case Store:
		return val.ToMap()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		m := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[Key(iter.Key().Interface())] = Stringify(iter.Value().Interface())
		}
		return m
	case reflect.Slice, reflect.Array:
		// Only lists that can hold maps need rewriting. Typed scalar lists
		// ([]string, []int) are kept so that values round-trip unchanged.
		switch rv.Type().Elem().Kind() {
		case reflect.Map, reflect.Interface:
			l := make([]interface{}, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				l[i] = Stringify(rv.Index(i).Interface())
			}
			return l
		}
	}
	return v
}

// IsMap returns true if v is a canonical (stringified) map.
func IsMap(v interface{}) bool {
	_, ok := v.(map[string]interface{})
	return ok
}

// deepMerge merges src into dst. Where both sides hold maps the merge
// recurses; otherwise the src value replaces the dst value. src must not be
// shared with any store: its maps are adopted by dst.
func deepMerge(dst, src map[string]interface{}) {
	for k, sv := range src {
		if sm, ok := sv.(map[string]interface{}); ok {
			if dm, ok := dst[k].(map[string]interface{}); ok {
				deepMerge(dm, sm)
				continue
			}
		}
		dst[k] = sv
	}
}
