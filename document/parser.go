// Copyright 2020, Square, Inc.

package document

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

var checkFailed = fmt.Errorf("Static check(s) failed")

// Parse a single graph document (YAML) file.
// `logFunc` is a Printf-like function used to log warning(s) should they occur.
// Errors are returned, not logged.
func ParseFile(file string, logFunc func(string, ...interface{})) (*Document, error) {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data, logFunc)
	if err != nil {
		return nil, err
	}
	doc.File = file
	if doc.Graph == "" {
		base := filepath.Base(file)
		doc.Graph = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return doc, nil
}

// Parse a graph document from YAML data.
func Parse(data []byte, logFunc func(string, ...interface{})) (*Document, error) {
	doc := &Document{}

	/* Emit warning if unexpected or duplicate fields are present. */
	/* Error if the document is incorrectly formatted or fields are of incorrect type. */
	err := yaml.UnmarshalStrict(data, doc)
	if err != nil {
		logFunc("Warning: %s\n", err)
		doc = &Document{}
		if err = yaml.Unmarshal(data, doc); err != nil {
			return nil, err
		}
	}

	if doc.Vertices == nil {
		doc.Vertices = map[string]*Vertex{}
	}
	for name, v := range doc.Vertices {
		// "name:" with no body
		if v == nil {
			v = &Vertex{}
			doc.Vertices[name] = v
		}
		v.Name = name
	}

	return doc, nil
}

// Read all graph documents in dir and its subdirectories. Files must end in
// .yaml or .yml. Two documents with the same graph name are an error.
// `logFunc` is a Printf-like function used to log warning(s) should they occur.
// Errors are returned, not logged.
func ParseDir(dir string, logFunc func(string, ...interface{})) (Documents, error) {
	docs := Documents{}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isDocument(info.Name()) {
			return nil
		}
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			logFunc("Warning: failed to get relative directory path for file %s: %s", path, err)
			relPath = path
		}

		doc, err := ParseFile(path, logFunc) // logs warnings but not errors
		if err != nil {
			return fmt.Errorf("error reading graph file %s: %s", relPath, err)
		}
		if prev, ok := docs[doc.Graph]; ok {
			return DuplicateValueError{
				Graph:       doc.Graph,
				Field:       "graph",
				Values:      []string{doc.Graph},
				Explanation: fmt.Sprintf("declared in %s and %s", prev.File, doc.File),
			}
		}
		docs[doc.Graph] = doc
		return nil
	})
	if err != nil {
		return docs, fmt.Errorf("error reading graph files: %s", err)
	}

	return docs, nil
}

func isDocument(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// Runs the default checks on docs.
// `logFunc` is a Printf-like function used to log warnings and errors should they occur.
// If any error is logged, this function returns an error.
func RunChecks(docs Documents, logFunc func(string, ...interface{})) error {
	checker, err := NewChecker([]CheckFactory{BaseCheckFactory{}, DefaultCheckFactory{}})
	if err != nil {
		return err
	}
	results := checker.RunChecks(docs)

	for _, name := range results.Keys() {
		result, _ := results.Get(name)
		for _, err := range result.Errors {
			logFunc("Error: %s\n", err)
		}
		for _, err := range result.Warnings {
			logFunc("Warning: %s\n", err)
		}
	}
	if results.AnyError {
		return checkFailed
	}
	return nil
}
