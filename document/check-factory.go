// Copyright 2020, Square, Inc.

package document

// Generates static checks to be performed on graph documents.
//
// Errors are mistakes that prevent a document from being built into a graph,
// like a parent that does not exist or a cycle. If any error occurs, the
// server fails to boot and the linter fails.
//
// Warnings identify probable mistakes, like listing the same parent twice.
// Warnings are logged but do not prevent the graph from being built.
type CheckFactory interface {
	MakeGraphErrorChecks() ([]GraphCheck, error)
	MakeGraphWarningChecks() ([]GraphCheck, error)
	MakeVertexErrorChecks() ([]VertexCheck, error)
	MakeVertexWarningChecks() ([]VertexCheck, error)
}

// The absolute minimum of checks for Build to succeed.
type BaseCheckFactory struct{}

func (c BaseCheckFactory) MakeGraphErrorChecks() ([]GraphCheck, error) {
	return []GraphCheck{
		AcyclicGraphCheck{},
	}, nil
}

func (c BaseCheckFactory) MakeGraphWarningChecks() ([]GraphCheck, error) {
	return []GraphCheck{}, nil
}

func (c BaseCheckFactory) MakeVertexErrorChecks() ([]VertexCheck, error) {
	return []VertexCheck{
		ParentsNamedVertexCheck{},
		ParentsExistVertexCheck{},
		NoSelfParentVertexCheck{},
		AttrsAreMapsVertexCheck{},
	}, nil
}

func (c BaseCheckFactory) MakeVertexWarningChecks() ([]VertexCheck, error) {
	return []VertexCheck{}, nil
}

// Some default checks. Not necessary for Build, but generally reasonable.
type DefaultCheckFactory struct{}

func (c DefaultCheckFactory) MakeGraphErrorChecks() ([]GraphCheck, error) {
	return []GraphCheck{}, nil
}

func (c DefaultCheckFactory) MakeGraphWarningChecks() ([]GraphCheck, error) {
	return []GraphCheck{
		HasVerticesGraphCheck{},
	}, nil
}

func (c DefaultCheckFactory) MakeVertexErrorChecks() ([]VertexCheck, error) {
	return []VertexCheck{}, nil
}

func (c DefaultCheckFactory) MakeVertexWarningChecks() ([]VertexCheck, error) {
	return []VertexCheck{
		NoDuplicateParentsVertexCheck{},
		NotEmptyVertexCheck{},
	}, nil
}
