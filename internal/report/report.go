package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mehditeymorian/lrutil/internal/diagnostics"
)

// FileResult holds the diagnostics produced for one input file.
type FileResult struct {
	File  string
	Diags []diagnostics.Diagnostic
}

// Model is the report model used for JSON, YAML and JUnit output.
type Model struct {
	Suites  []Suite `json:"suites" yaml:"suites"`
	Summary Summary `json:"summary" yaml:"summary"`
}

type Summary struct {
	Tests   int `json:"tests" yaml:"tests"`
	Errors  int `json:"errors" yaml:"errors"`
	Dropped int `json:"dropped" yaml:"dropped"`
}

type Suite struct {
	Name      string     `json:"name" yaml:"name"`
	Testcases []Testcase `json:"testcases" yaml:"testcases"`
	Summary   Summary    `json:"summary" yaml:"summary"`
}

type Testcase struct {
	Name    string `json:"name" yaml:"name"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Dropped int    `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

// Build turns per-file diagnostics into a report: one suite per file, one
// error testcase per diagnostic, and a single passing testcase for a file
// without diagnostics.
func Build(results []FileResult) Model {
	model := Model{}
	for _, res := range results {
		suite := Suite{Name: res.File}
		if len(res.Diags) == 0 {
			suite.Testcases = append(suite.Testcases, Testcase{Name: "parse", Status: "passed"})
		}
		for _, d := range res.Diags {
			suite.Testcases = append(suite.Testcases, Testcase{
				Name:    fmt.Sprintf("%d:%d %s", d.Line, d.Column, d.Code),
				Code:    d.Code,
				Status:  "error",
				Message: diagMessage(d),
				Dropped: d.Dropped,
			})
		}
		suite.Summary = summarize(suite.Testcases)
		model.Suites = append(model.Suites, suite)
	}
	model.Summary = summarizeSuites(model.Suites)
	return model
}

func diagMessage(d diagnostics.Diagnostic) string {
	return fmt.Sprintf("%s @ %s:%d:%d", d.Message, d.File, d.Line, d.Column)
}

func summarize(cases []Testcase) Summary {
	s := Summary{Tests: len(cases)}
	for _, tc := range cases {
		if tc.Status == "error" {
			s.Errors++
		}
		s.Dropped += tc.Dropped
	}
	return s
}

func summarizeSuites(suites []Suite) Summary {
	s := Summary{}
	for _, suite := range suites {
		s.Tests += suite.Summary.Tests
		s.Errors += suite.Summary.Errors
		s.Dropped += suite.Summary.Dropped
	}
	return s
}

func WriteJSONFile(path string, model Model) error {
	return writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(model)
	})
}

func WriteYAMLFile(path string, model Model) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteYAML(w, model)
	})
}

// WriteYAML encodes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func WriteJUnitFile(path string, model Model) error {
	return writeFile(path, func(w io.Writer) error {
		top := junitSuites{Suites: make([]junitSuite, 0, len(model.Suites))}
		for _, s := range model.Suites {
			js := junitSuite{Name: s.Name, Tests: s.Summary.Tests, Errors: s.Summary.Errors}
			for _, tc := range s.Testcases {
				jtc := junitCase{Name: tc.Name}
				if tc.Status == "error" {
					jtc.Error = &junitError{Message: tc.Message, Type: tc.Code}
				}
				js.Cases = append(js.Cases, jtc)
			}
			top.Suites = append(top.Suites, js)
		}
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		return enc.Encode(top)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

type junitSuites struct {
	XMLName xml.Name     `xml:"testsuites"`
	Suites  []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name   string      `xml:"name,attr"`
	Tests  int         `xml:"tests,attr"`
	Errors int         `xml:"errors,attr"`
	Cases  []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name  string      `xml:"name,attr"`
	Error *junitError `xml:"error,omitempty"`
}

type junitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr,omitempty"`
}
