// Copyright 2020, Square, Inc.

package registry_test

import (
	"path/filepath"
	"testing"

	"github.com/go-test/deep"

	"github.com/square/kvdag/errors"
	"github.com/square/kvdag/kvdag"
	"github.com/square/kvdag/kvdag-server/registry"
	"github.com/square/kvdag/test"
)

func TestLoad(t *testing.T) {
	r, err := registry.Load(test.GraphPath, t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(r.Names(), []string{"hosts", "services"}); diff != nil {
		t.Error(diff)
	}

	e, err := r.Get("hosts")
	if err != nil {
		t.Fatal(err)
	}
	if e.File != filepath.Join(test.GraphPath, "hosts.yaml") {
		t.Errorf("got File %s, expected hosts.yaml in %s", e.File, test.GraphPath)
	}
	if e.Graph.Len() != 5 {
		t.Errorf("got %d vertices, expected 5", e.Graph.Len())
	}
}

func TestLoadCheckFailed(t *testing.T) {
	_, err := registry.Load(filepath.Join(test.DataPath, "bad"), t.Logf)
	if err == nil {
		t.Error("no error loading invalid documents, expected one")
	}
}

func TestGetNotFound(t *testing.T) {
	r := registry.New()
	_, err := r.Get("nope")
	if expect := error(errors.GraphNotFound{Graph: "nope"}); err != expect {
		t.Errorf("err = %v (%T), expected %v (%T)", err, err, expect, expect)
	}
}

func TestAdd(t *testing.T) {
	r := registry.New()
	g := kvdag.New(kvdag.WithName("g1"))
	e, err := r.Add(g, "")
	if err != nil {
		t.Fatal(err)
	}
	if e.Graph != g {
		t.Error("entry does not hold the added graph")
	}

	_, err = r.Add(kvdag.New(kvdag.WithName("g1")), "")
	if expect := error(errors.GraphExists{Graph: "g1"}); err != expect {
		t.Errorf("err = %v (%T), expected %v (%T)", err, err, expect, expect)
	}

	got, err := r.Get("g1")
	if err != nil {
		t.Fatal(err)
	}
	if got != e {
		t.Error("Get returned a different entry than Add")
	}
}
