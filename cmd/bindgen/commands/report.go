package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/teranos/bindgen/database"
	"github.com/teranos/bindgen/pipeline"
	"github.com/teranos/bindgen/workspace"
)

// LibraryReport summarizes one processed library.
type LibraryReport struct {
	Library        string          `json:"library" yaml:"library"`
	Version        string          `json:"version,omitempty" yaml:"version,omitempty"`
	RunID          string          `json:"run_id" yaml:"run_id"`
	Instantiations int             `json:"instantiations" yaml:"instantiations"`
	Generated      int             `json:"generated_functions" yaml:"generated_functions"`
	Skipped        int             `json:"skipped" yaml:"skipped"`
	Failed         int             `json:"failed" yaml:"failed"`
	DurationMS     int64           `json:"duration_ms" yaml:"duration_ms"`
	Methods        []MethodReport  `json:"methods,omitempty" yaml:"methods,omitempty"`
	Diagnostics    []DiagnosticRow `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// MethodReport is one exported identifier.
type MethodReport struct {
	Name     string `json:"name" yaml:"name"`
	Function string `json:"function" yaml:"function"`
	Place    string `json:"allocation_place" yaml:"allocation_place"`
}

// DiagnosticRow is one skipped or failed candidate.
type DiagnosticRow struct {
	Step     string `json:"step" yaml:"step"`
	Severity string `json:"severity" yaml:"severity"`
	Subject  string `json:"subject" yaml:"subject"`
	Reason   string `json:"reason" yaml:"reason"`
}

// NewLibraryReport builds the report of a workspace result.
func NewLibraryReport(r *workspace.Result) LibraryReport {
	rep := LibraryReport{
		Library:        r.Library,
		Version:        r.Version,
		RunID:          r.RunID,
		Instantiations: len(r.Database.Instantiations()),
		DurationMS:     r.Duration.Milliseconds(),
	}
	for _, item := range r.Database.Items() {
		if _, ok := item.Function(); ok && item.Source == database.SourceTemplateInstantiation {
			rep.Generated++
		}
	}
	for _, m := range r.Database.Methods() {
		rep.Methods = append(rep.Methods, MethodReport{
			Name:     m.Name,
			Function: m.CppFunction.ShortText(),
			Place:    m.AllocationPlace.String(),
		})
	}
	for _, d := range r.Diagnostics {
		if d.Severity == pipeline.SeveritySkip {
			rep.Skipped++
		} else {
			rep.Failed++
		}
		rep.Diagnostics = append(rep.Diagnostics, DiagnosticRow{
			Step:     d.Step,
			Severity: d.Severity.String(),
			Subject:  d.Subject,
			Reason:   d.Err.Error(),
		})
	}
	return rep
}

// WriteReports renders reports as a table, JSON or YAML.
func WriteReports(w io.Writer, reports []LibraryReport, format string, showMethods bool) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		data, err := yaml.Marshal(reports)
		if err != nil {
			return fmt.Errorf("failed to marshal report to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err

	case "table":
		return writeTables(w, reports, showMethods)

	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", format)
	}
}

func writeTables(w io.Writer, reports []LibraryReport, showMethods bool) error {
	summary := pterm.TableData{{"Library", "Version", "Instantiations", "Generated", "Methods", "Skipped", "Failed", "ms"}}
	for _, r := range reports {
		summary = append(summary, []string{
			r.Library,
			r.Version,
			strconv.Itoa(r.Instantiations),
			strconv.Itoa(r.Generated),
			strconv.Itoa(len(r.Methods)),
			strconv.Itoa(r.Skipped),
			strconv.Itoa(r.Failed),
			strconv.FormatInt(r.DurationMS, 10),
		})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(summary).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)

	if !showMethods {
		return nil
	}
	for _, r := range reports {
		if len(r.Methods) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Library)
		rows := pterm.TableData{{"Method", "C++ function", "Place"}}
		for _, m := range r.Methods {
			rows = append(rows, []string{m.Name, m.Function, m.Place})
		}
		s, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, s)
	}
	return nil
}
