// Copyright 2020, Square, Inc.

package kvdag

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/square/kvdag/keypath"
)

// Kind is the type of an attribute value as seen by IsKind patterns.
type Kind string

const (
	KindNull   Kind = "null"
	KindBool   Kind = "bool"
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindList   Kind = "list"
	KindMap    Kind = "map"
	KindOther  Kind = "other"
)

// KindOf returns the Kind of v.
func KindOf(v interface{}) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	}
	if _, ok := number(v); ok {
		return KindNumber
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map:
		return KindMap
	case reflect.Slice, reflect.Array:
		return KindList
	}
	return KindOther
}

type patternTag byte

const (
	tagExact patternTag = iota
	tagMatches
	tagIsKind
	tagCustom
)

// A Pattern is the expected side of a match rule. It is one of Exact,
// Matches, IsKind, or Custom. The zero Pattern is Exact(nil).
type Pattern struct {
	tag   patternTag
	value interface{}
	re    *regexp.Regexp
	kind  Kind
	fn    func(interface{}) bool
}

// Exact matches values equal to v. Maps and lists compare element-wise, and
// numbers compare by value regardless of Go type (1 == 1.0 == uint8(1)).
func Exact(v interface{}) Pattern {
	return Pattern{tag: tagExact, value: keypath.Stringify(v)}
}

// Matches matches strings that re matches. Non-string values never match.
func Matches(re *regexp.Regexp) Pattern {
	return Pattern{tag: tagMatches, re: re}
}

// MustMatch is Matches(regexp.MustCompile(expr)).
func MustMatch(expr string) Pattern {
	return Matches(regexp.MustCompile(expr))
}

// IsKind matches values of Kind k.
func IsKind(k Kind) Pattern {
	return Pattern{tag: tagIsKind, kind: k}
}

// Custom matches values for which fn returns true.
func Custom(fn func(interface{}) bool) Pattern {
	return Pattern{tag: tagCustom, fn: fn}
}

// AsPattern returns v if it is a Pattern, a Matches pattern if v is a
// *regexp.Regexp, a Custom pattern if v is a func(interface{}) bool, else
// Exact(v).
func AsPattern(v interface{}) Pattern {
	switch p := v.(type) {
	case Pattern:
		return p
	case *regexp.Regexp:
		return Matches(p)
	case Kind:
		return IsKind(p)
	case func(interface{}) bool:
		return Custom(p)
	}
	return Exact(v)
}

// PatternMatches returns true if v matches p.
func PatternMatches(p Pattern, v interface{}) bool {
	switch p.tag {
	case tagExact:
		return valuesEqual(p.value, keypath.Stringify(v))
	case tagMatches:
		s, ok := v.(string)
		return ok && p.re != nil && p.re.MatchString(s)
	case tagIsKind:
		return KindOf(v) == p.kind
	case tagCustom:
		return p.fn != nil && p.fn(v)
	}
	return false
}

func (p Pattern) String() string {
	switch p.tag {
	case tagMatches:
		return fmt.Sprintf("/%s/", p.re)
	case tagIsKind:
		return fmt.Sprintf("kind(%s)", p.kind)
	case tagCustom:
		return "custom"
	}
	return fmt.Sprintf("%v", p.value)
}

// --------------------------------------------------------------------------

// valuesEqual compares two stringified values.
func valuesEqual(a, b interface{}) bool {
	if na, ok := number(a); ok {
		nb, ok := number(b)
		return ok && na == nb
	}
	if ma, ok := a.(map[string]interface{}); ok {
		mb, ok := b.(map[string]interface{})
		if !ok || len(ma) != len(mb) {
			return false
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !valuesEqual(va, vb) {
				return false
			}
		}
		return true
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if isList(ra) && isList(rb) {
		if ra.Len() != rb.Len() {
			return false
		}
		for i := 0; i < ra.Len(); i++ {
			if !valuesEqual(ra.Index(i).Interface(), rb.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func isList(rv reflect.Value) bool {
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

// number returns v as a float64 if v is any Go numeric type.
func number(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
