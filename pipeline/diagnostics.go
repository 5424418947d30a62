package pipeline

import (
	"sync"

	"github.com/teranos/bindgen/errors"
)

// Severity separates "why was this candidate dropped" from hard failures.
type Severity int

const (
	SeveritySkip Severity = iota
	SeverityFailure
)

func (s Severity) String() string {
	if s == SeverityFailure {
		return "failure"
	}
	return "skip"
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Step     string
	Subject  string
	Severity Severity
	Err      error
}

// Diagnostics collects reports of a pipeline run in order.
type Diagnostics struct {
	mu    sync.Mutex
	items []Diagnostic
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) Add(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, diag)
}

// All returns a copy of the collected diagnostics.
func (d *Diagnostics) All() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Diagnostic(nil), d.items...)
}

// Filter returns the diagnostics of the given severity.
func (d *Diagnostics) Filter(severity Severity) []Diagnostic {
	var r []Diagnostic
	for _, diag := range d.All() {
		if diag.Severity == severity {
			r = append(r, diag)
		}
	}
	return r
}

// CountFor counts diagnostics of a step with the given severity.
func (d *Diagnostics) CountFor(step string, severity Severity) int {
	n := 0
	for _, diag := range d.All() {
		if diag.Step == step && diag.Severity == severity {
			n++
		}
	}
	return n
}

// IsSkip reports whether err only drops a single candidate or item.
func IsSkip(err error) bool {
	return errors.IsCandidateRejection(err) ||
		errors.IsNamingError(err) ||
		errors.Is(err, errors.ErrUnsupportedType)
}
