// Copyright 2020, Square, Inc.

package document

import (
	"sort"
)

// CheckResult are the errors and warnings for one graph.
type CheckResult struct {
	Errors   []error
	Warnings []error
}

// CheckResults are the results for any number of graphs, keyed on graph name.
type CheckResults struct {
	Results    map[string]*CheckResult
	AnyError   bool
	AnyWarning bool
}

func NewCheckResults() *CheckResults {
	return &CheckResults{
		Results: map[string]*CheckResult{},
	}
}

func (c *CheckResults) result(key string) *CheckResult {
	r, ok := c.Results[key]
	if !ok {
		r = &CheckResult{}
		c.Results[key] = r
	}
	return r
}

func (c *CheckResults) AddError(key string, err error) {
	r := c.result(key)
	r.Errors = append(r.Errors, err)
	c.AnyError = true
}

func (c *CheckResults) AddWarning(key string, err error) {
	r := c.result(key)
	r.Warnings = append(r.Warnings, err)
	c.AnyWarning = true
}

func (c *CheckResults) Union(other *CheckResults) {
	for key, result := range other.Results {
		r := c.result(key)
		r.Errors = append(r.Errors, result.Errors...)
		r.Warnings = append(r.Warnings, result.Warnings...)
	}
	c.AnyError = c.AnyError || other.AnyError
	c.AnyWarning = c.AnyWarning || other.AnyWarning
}

func (c *CheckResults) Get(key string) (*CheckResult, bool) {
	result, ok := c.Results[key]
	return result, ok
}

// Keys returns the graph names with results in sorted order.
func (c *CheckResults) Keys() []string {
	keys := make([]string, 0, len(c.Results))
	for k := range c.Results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
