// Copyright 2020, Square, Inc.

package kvdag

import (
	"regexp"
	"sort"
	"strings"

	"github.com/square/kvdag/keypath"
)

// A Quantifier says how many of a Rule's checks must match.
type Quantifier string

const (
	QuantNone Quantifier = "none"
	QuantOne  Quantifier = "one"
	QuantAny  Quantifier = "any"
	QuantAll  Quantifier = "all"
)

// A Property is a read-only accessor on a vertex or edge that predicates can
// test. Properties are a fixed table; unknown properties never match.
type Property string

const (
	PropKind        Property = "kind"         // "vertex" or "edge"
	PropID          Property = "id"           // vertex or edge id
	PropAttrCount   Property = "attr_count"   // number of top-level local attributes
	PropParentCount Property = "parent_count" // number of distinct parents
	PropChildCount  Property = "child_count"  // number of distinct children
)

var Properties = []Property{PropKind, PropID, PropAttrCount, PropParentCount, PropChildCount}

func validProperty(p Property) bool {
	for _, known := range Properties {
		if p == known {
			return true
		}
	}
	return false
}

// A Rule applies Quantifier to the results of matching each pattern in
// Checks against the value at its key path in a resolved view. A key path
// that is absent is matched against nil.
type Rule struct {
	Quantifier Quantifier
	Checks     map[string]Pattern // key path -> expected
}

func (r Rule) matches(view keypath.Store) bool {
	n := 0
	for path, p := range r.Checks {
		if PatternMatches(p, view.Get(path)) {
			n++
		}
	}
	switch r.Quantifier {
	case QuantNone:
		return n == 0
	case QuantOne:
		return n == 1
	case QuantAny:
		return n > 0
	case QuantAll:
		return n == len(r.Checks)
	}
	return false
}

// A Predicate filters vertices and edges. Every rule and every property
// pattern must match (logical AND). The zero Predicate matches everything.
type Predicate struct {
	Rules []Rule
	Props map[Property]Pattern
}

// Empty returns true if p has no rules and no property patterns.
func (p Predicate) Empty() bool {
	return len(p.Rules) == 0 && len(p.Props) == 0
}

// And returns a Predicate that matches only if p and all others match.
func (p Predicate) And(others ...Predicate) Predicate {
	out := Predicate{
		Rules: append([]Rule{}, p.Rules...),
		Props: map[Property]Pattern{},
	}
	for k, v := range p.Props {
		out.Props[k] = v
	}
	for _, o := range others {
		out.Rules = append(out.Rules, o.Rules...)
		for k, v := range o.Props {
			out.Props[k] = v
		}
	}
	return out
}

// All returns a Predicate matching nodes where every check matches.
// Values in checks are converted with AsPattern.
func All(checks map[string]interface{}) Predicate { return quantified(QuantAll, checks) }

// Any returns a Predicate matching nodes where at least one check matches.
func Any(checks map[string]interface{}) Predicate { return quantified(QuantAny, checks) }

// One returns a Predicate matching nodes where exactly one check matches.
func One(checks map[string]interface{}) Predicate { return quantified(QuantOne, checks) }

// None returns a Predicate matching nodes where no check matches.
func None(checks map[string]interface{}) Predicate { return quantified(QuantNone, checks) }

// Prop returns a Predicate matching nodes whose property prop matches
// expected, converted with AsPattern.
func Prop(prop Property, expected interface{}) Predicate {
	return Predicate{Props: map[Property]Pattern{prop: AsPattern(expected)}}
}

func quantified(q Quantifier, checks map[string]interface{}) Predicate {
	r := Rule{Quantifier: q, Checks: make(map[string]Pattern, len(checks))}
	for path, v := range checks {
		r.Checks[path] = AsPattern(v)
	}
	return Predicate{Rules: []Rule{r}}
}

// combine ANDs a variadic list of predicates.
func combine(preds []Predicate) Predicate {
	switch len(preds) {
	case 0:
		return Predicate{}
	case 1:
		return preds[0]
	}
	return preds[0].And(preds[1:]...)
}

// --------------------------------------------------------------------------

// ParsePredicate converts a plain mapping, as decoded from YAML or JSON, into
// a Predicate. Keys "none", "one", "any", and "all" take a mapping of key
// path to expected value. Any other key must be a Property.
//
// Expected values are parsed with ParsePattern.
func ParsePredicate(m map[string]interface{}) (Predicate, error) {
	p := Predicate{}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch q := Quantifier(k); q {
		case QuantNone, QuantOne, QuantAny, QuantAll:
			checks, ok := keypath.Stringify(m[k]).(map[string]interface{})
			if !ok {
				return Predicate{}, PredicateError{Key: k, Reason: "quantifier value must be a mapping of key path to expected value"}
			}
			r := Rule{Quantifier: q, Checks: make(map[string]Pattern, len(checks))}
			for path, v := range checks {
				pat, err := ParsePattern(v)
				if err != nil {
					return Predicate{}, PredicateError{Key: k + "." + path, Reason: err.Error()}
				}
				r.Checks[path] = pat
			}
			p.Rules = append(p.Rules, r)
		default:
			prop := Property(k)
			if !validProperty(prop) {
				return Predicate{}, PredicateError{Key: k, Reason: "not a quantifier or a known property"}
			}
			pat, err := ParsePattern(m[k])
			if err != nil {
				return Predicate{}, PredicateError{Key: k, Reason: err.Error()}
			}
			if p.Props == nil {
				p.Props = map[Property]Pattern{}
			}
			p.Props[prop] = pat
		}
	}
	return p, nil
}

// ParsePattern converts a plain value into a Pattern:
//
//   "/expr/"           Matches(expr)
//   {"$regex": expr}   Matches(expr)
//   {"$kind": name}    IsKind(name)
//   anything else      Exact(value)
func ParsePattern(v interface{}) (Pattern, error) {
	switch val := keypath.Stringify(v).(type) {
	case string:
		if len(val) >= 2 && strings.HasPrefix(val, "/") && strings.HasSuffix(val, "/") {
			re, err := regexp.Compile(val[1 : len(val)-1])
			if err != nil {
				return Pattern{}, err
			}
			return Matches(re), nil
		}
	case map[string]interface{}:
		if len(val) == 1 {
			if expr, ok := val["$regex"].(string); ok {
				re, err := regexp.Compile(expr)
				if err != nil {
					return Pattern{}, err
				}
				return Matches(re), nil
			}
			if kind, ok := val["$kind"].(string); ok {
				return IsKind(Kind(kind)), nil
			}
		}
	}
	return Exact(v), nil
}
