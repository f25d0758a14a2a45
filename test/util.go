// Copyright 2020, Square, Inc.

// Package test provides helper functions for tests.
package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"runtime"
)

var (
	GraphPath string // Where valid test graph documents are stored.
	DataPath  string // Where invalid and edge-case documents are stored.
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	GraphPath, _ = filepath.Abs(path.Join(filepath.Dir(filename), "graphs/"))
	DataPath, _ = filepath.Abs(path.Join(filepath.Dir(filename), "data/"))
}

// MakeHTTPRequest is a helper function for making an http request. The response
// body of the http request is unmarshalled into the struct pointed to by the
// respStruct argument (if it's not nil). The status code of the response and
// the response headers are returned.
func MakeHTTPRequest(httpVerb, url string, payload []byte, respStruct interface{}) (int, http.Header, error) {
	var statusCode int
	// Make the http request.
	req, err := http.NewRequest(httpVerb, url, bytes.NewReader(payload))
	if err != nil {
		return statusCode, http.Header{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := (http.DefaultClient).Do(req)
	if err != nil {
		return statusCode, http.Header{}, err
	}
	defer res.Body.Close()

	if respStruct != nil {
		decoder := json.NewDecoder(res.Body)
		err = decoder.Decode(respStruct)
		if err != nil {
			return res.StatusCode, res.Header, fmt.Errorf("error decoding response body: %s", err)
		}
	}

	return res.StatusCode, res.Header, nil
}
