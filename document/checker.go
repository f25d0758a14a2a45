// Copyright 2020, Square, Inc.

package document

// Runs checks on graph documents.
type Checker struct {
	// Checks to run. ErrorChecks are fatal on failure. Warnings are not.
	graphErrorChecks    []GraphCheck
	graphWarningChecks  []GraphCheck
	vertexErrorChecks   []VertexCheck
	vertexWarningChecks []VertexCheck
}

// Create a new Checker with the checks specified by check factories in list.
func NewChecker(checkFactories []CheckFactory) (*Checker, error) {
	checker := &Checker{
		graphErrorChecks:    []GraphCheck{},
		graphWarningChecks:  []GraphCheck{},
		vertexErrorChecks:   []VertexCheck{},
		vertexWarningChecks: []VertexCheck{},
	}

	for _, factory := range checkFactories {
		gec, err := factory.MakeGraphErrorChecks()
		if err != nil {
			return nil, err
		}
		checker.graphErrorChecks = append(checker.graphErrorChecks, gec...)

		gwc, err := factory.MakeGraphWarningChecks()
		if err != nil {
			return nil, err
		}
		checker.graphWarningChecks = append(checker.graphWarningChecks, gwc...)

		vec, err := factory.MakeVertexErrorChecks()
		if err != nil {
			return nil, err
		}
		checker.vertexErrorChecks = append(checker.vertexErrorChecks, vec...)

		vwc, err := factory.MakeVertexWarningChecks()
		if err != nil {
			return nil, err
		}
		checker.vertexWarningChecks = append(checker.vertexWarningChecks, vwc...)
	}

	return checker, nil
}

// Runs checks on docs. Results are keyed on graph name.
func (checker *Checker) RunChecks(docs Documents) *CheckResults {
	results := NewCheckResults()
	for name, doc := range docs {
		results.Union(checker.Check(name, doc))
	}
	return results
}

// Check runs checks on a single document. Results are keyed on name.
// Vertices are checked in name order so results are stable.
func (checker *Checker) Check(name string, doc *Document) *CheckResults {
	results := NewCheckResults()

	for _, graphCheck := range checker.graphErrorChecks {
		if err := graphCheck.CheckGraph(*doc); err != nil {
			results.AddError(name, err)
		}
	}
	for _, graphCheck := range checker.graphWarningChecks {
		if err := graphCheck.CheckGraph(*doc); err != nil {
			results.AddWarning(name, err)
		}
	}

	for _, vname := range doc.VertexNames() {
		v := doc.Vertices[vname]
		for _, vertexCheck := range checker.vertexErrorChecks {
			if err := vertexCheck.CheckVertex(*doc, *v); err != nil {
				results.AddError(name, err)
			}
		}
		for _, vertexCheck := range checker.vertexWarningChecks {
			if err := vertexCheck.CheckVertex(*doc, *v); err != nil {
				results.AddWarning(name, err)
			}
		}
	}

	return results
}
