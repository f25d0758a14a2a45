// Copyright 2020, Square, Inc.

package document_test

import (
	"fmt"
	"testing"

	"github.com/go-test/deep"

	. "github.com/square/kvdag/document"
	"github.com/square/kvdag/test"
)

// Dummy check objects that always fail or always pass.
type PassGraphCheck struct{}

func (c PassGraphCheck) CheckGraph(d Document) error {
	return nil
}

type PassVertexCheck struct{}

func (c PassVertexCheck) CheckVertex(d Document, v Vertex) error {
	return nil
}

var failGraphCheckError = fmt.Errorf("FailGraphCheck failed")
var failVertexCheckError = fmt.Errorf("FailVertexCheck failed")

type FailGraphCheck struct{}

func (c FailGraphCheck) CheckGraph(d Document) error {
	return failGraphCheckError
}

type FailVertexCheck struct{}

func (c FailVertexCheck) CheckVertex(d Document, v Vertex) error {
	return failVertexCheckError
}

// One graph with two vertices to give the dummy checks something to run on.
var docs = Documents{
	"g": &Document{
		Graph: "g",
		Vertices: map[string]*Vertex{
			"a": &Vertex{Name: "a"},
			"b": &Vertex{Name: "b"},
		},
	},
}

type mockFact struct {
	graphErrors, graphWarnings   []GraphCheck
	vertexErrors, vertexWarnings []VertexCheck
	err                          error
}

func (f mockFact) MakeGraphErrorChecks() ([]GraphCheck, error)     { return f.graphErrors, f.err }
func (f mockFact) MakeGraphWarningChecks() ([]GraphCheck, error)   { return f.graphWarnings, nil }
func (f mockFact) MakeVertexErrorChecks() ([]VertexCheck, error)   { return f.vertexErrors, nil }
func (f mockFact) MakeVertexWarningChecks() ([]VertexCheck, error) { return f.vertexWarnings, nil }

func TestCheckerPass(t *testing.T) {
	checker, err := NewChecker([]CheckFactory{mockFact{
		graphErrors:    []GraphCheck{PassGraphCheck{}},
		graphWarnings:  []GraphCheck{PassGraphCheck{}},
		vertexErrors:   []VertexCheck{PassVertexCheck{}},
		vertexWarnings: []VertexCheck{PassVertexCheck{}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	results := checker.RunChecks(docs)
	if results.AnyError || results.AnyWarning {
		t.Errorf("got errors or warnings: %+v", results.Results)
	}
}

func TestCheckerFail(t *testing.T) {
	checker, err := NewChecker([]CheckFactory{mockFact{
		graphErrors:    []GraphCheck{FailGraphCheck{}},
		vertexWarnings: []VertexCheck{FailVertexCheck{}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	results := checker.RunChecks(docs)
	if !results.AnyError || !results.AnyWarning {
		t.Fatalf("AnyError = %t, AnyWarning = %t, expected both true", results.AnyError, results.AnyWarning)
	}
	result, ok := results.Get("g")
	if !ok {
		t.Fatal("no result for graph g")
	}
	expect := &CheckResult{
		Errors:   []error{failGraphCheckError},
		Warnings: []error{failVertexCheckError, failVertexCheckError},
	}
	if diff := deep.Equal(result, expect); diff != nil {
		t.Error(diff)
	}
}

func TestCheckerFactoryError(t *testing.T) {
	factErr := fmt.Errorf("factory failed")
	_, err := NewChecker([]CheckFactory{mockFact{err: factErr}})
	if err != factErr {
		t.Errorf("err = %v, expected %v", err, factErr)
	}
}

func TestDefaultChecksValid(t *testing.T) {
	all, err := ParseDir(test.GraphPath, t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	if err := RunChecks(all, t.Logf); err != nil {
		t.Error(err)
	}
}

func TestDefaultChecksInvalid(t *testing.T) {
	doc, err := ParseFile(test.DataPath+"/bad/invalid.yaml", t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	checker, err := NewChecker([]CheckFactory{BaseCheckFactory{}, DefaultCheckFactory{}})
	if err != nil {
		t.Fatal(err)
	}
	results := checker.Check(doc.Graph, doc)
	result, ok := results.Get("invalid")
	if !ok {
		t.Fatal("no result for graph invalid")
	}

	a, b, c, d := "a", "b", "c", "d"
	expectErrors := []error{
		CycleError{Graph: "invalid", Path: []string{"b", "b"}},
		MissingValueError{"invalid", &a, "parents -> vertex", "required for every parent"},
		InvalidValueError{"invalid", &a, "parents -> vertex", []string{"nope"}, "vertices declared in the graph"},
		InvalidValueError{"invalid", &a, "attrs", []string{"list"}, "a mapping"},
		InvalidValueError{"invalid", &b, "parents -> vertex", []string{"b"}, "any vertex other than itself"},
	}
	if diff := deep.Equal(result.Errors, expectErrors); diff != nil {
		t.Error(diff)
	}

	expectWarnings := []error{
		DuplicateValueError{"invalid", &c, "parents -> vertex", []string{"a"}, "each entry creates another edge"},
		MissingValueError{"invalid", &d, "attrs, parents", "vertex has no attributes and no parents"},
	}
	if diff := deep.Equal(result.Warnings, expectWarnings); diff != nil {
		t.Error(diff)
	}
}

func TestAcyclicGraphCheck(t *testing.T) {
	doc, err := ParseFile(test.DataPath+"/cycle.yaml", t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	err = AcyclicGraphCheck{}.CheckGraph(*doc)
	cycleErr, ok := err.(CycleError)
	if !ok {
		t.Fatalf("err = %v (%T), expected CycleError", err, err)
	}
	expect := CycleError{Graph: "cycle", Path: []string{"a", "b", "c", "a"}}
	if diff := deep.Equal(&cycleErr, &expect); diff != nil {
		t.Error(diff)
	}
}
