// Package pipeline runs named processing steps over a library database in
// dependency order.
package pipeline

import "context"

// Well-known step names.
const (
	StepParse                      = "parse"
	StepFindTemplateInstantiations = "find_template_instantiations"
	StepInstantiateTemplates       = "instantiate_templates"
	StepGenerateFFI                = "generate_ffi"
)

// RunFunc is the transformation a step applies. Steps communicate only
// through the database reachable from data.
type RunFunc func(ctx context.Context, data *Data) error

// Step is a named transformation with prerequisites.
type Step struct {
	Name      string
	DependsOn []string
	Run       RunFunc
}
