// Copyright 2020, Square, Inc.

package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"

	"github.com/square/kvdag/kvdagc/config"
)

func TestParseConfigFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "kvdagc")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	file1 := filepath.Join(dir, "one.yaml")
	file2 := filepath.Join(dir, "two.yaml")
	if err := ioutil.WriteFile(file1, []byte("addr: http://kvdag1:8420\ntimeout: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(file2, []byte("addr: http://kvdag2:8420\nretry: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Missing file is skipped, later file wins
	got := config.ParseConfigFiles(file1+","+filepath.Join(dir, "missing.yaml")+","+file2, false)
	expect := config.Options{
		Addr:      "http://kvdag2:8420",
		Retry:     2,
		RetryWait: config.DEFAULT_RETRY_WAIT,
		Timeout:   100,
	}
	if diff := deep.Equal(got, expect); diff != nil {
		t.Error(diff)
	}
}

func TestParseConfigFilesDefaults(t *testing.T) {
	got := config.ParseConfigFiles("/nonexistent/kvdagc.yaml", false)
	expect := config.Options{
		Addr:      config.DEFAULT_ADDR,
		RetryWait: config.DEFAULT_RETRY_WAIT,
		Timeout:   config.DEFAULT_TIMEOUT,
	}
	if diff := deep.Equal(got, expect); diff != nil {
		t.Error(diff)
	}
}
