package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mehditeymorian/lrutil/internal/diagnostics"
)

func sampleResults() []FileResult {
	return []FileResult{
		{File: "clean.calc"},
		{File: "broken.calc", Diags: []diagnostics.Diagnostic{
			{Code: diagnostics.CodeUnrecognizedToken, Message: "Unrecognized token `=` found at 2:5:2:6\nExpected one of IDENT", File: "broken.calc", Line: 2, Column: 5, Dropped: 2},
			{Code: diagnostics.CodeInvalidToken, Message: "Invalid token at 4:9", File: "broken.calc", Line: 4, Column: 9, Dropped: 2},
		}},
	}
}

func TestBuildEmpty(t *testing.T) {
	got := Build(nil)
	assert.Empty(t, got.Suites)
	assert.Equal(t, Summary{}, got.Summary)
}

func TestBuildMapsDiagnostics(t *testing.T) {
	model := Build(sampleResults())
	require.Len(t, model.Suites, 2)

	clean := model.Suites[0]
	require.Len(t, clean.Testcases, 1)
	assert.Equal(t, Testcase{Name: "parse", Status: "passed"}, clean.Testcases[0])
	assert.Equal(t, Summary{Tests: 1}, clean.Summary)

	broken := model.Suites[1]
	require.Len(t, broken.Testcases, 2)
	assert.Equal(t, "2:5 E_PARSE_UNRECOGNIZED_TOKEN", broken.Testcases[0].Name)
	assert.Equal(t, "error", broken.Testcases[0].Status)
	assert.Equal(t, "Invalid token at 4:9 @ broken.calc:4:9", broken.Testcases[1].Message)
	assert.Equal(t, Summary{Tests: 2, Errors: 2, Dropped: 4}, broken.Summary)

	assert.Equal(t, Summary{Tests: 3, Errors: 2, Dropped: 4}, model.Summary)
}

func TestWriteReportFiles(t *testing.T) {
	model := Build(sampleResults())
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "nested", "report.json")
	yamlPath := filepath.Join(dir, "nested", "report.yaml")
	xmlPath := filepath.Join(dir, "nested", "report.xml")

	require.NoError(t, WriteJSONFile(jsonPath, model))
	require.NoError(t, WriteYAMLFile(yamlPath, model))
	require.NoError(t, WriteJUnitFile(xmlPath, model))

	jsonBytes, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON Model
	require.NoError(t, json.Unmarshal(jsonBytes, &fromJSON))
	assert.Equal(t, model.Summary, fromJSON.Summary)

	yamlBytes, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML Model
	require.NoError(t, yaml.Unmarshal(yamlBytes, &fromYAML))
	assert.Equal(t, model.Summary, fromYAML.Summary)
	assert.Equal(t, "broken.calc", fromYAML.Suites[1].Name)

	xmlBytes, err := os.ReadFile(xmlPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(xmlBytes), "<?xml"))
	var suites junitSuites
	require.NoError(t, xml.Unmarshal(xmlBytes, &suites))
	require.Len(t, suites.Suites, 2)
	assert.Nil(t, suites.Suites[0].Cases[0].Error)
	require.NotNil(t, suites.Suites[1].Cases[0].Error)
	assert.Equal(t, diagnostics.CodeUnrecognizedToken, suites.Suites[1].Cases[0].Error.Type)
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	diags := sampleResults()[1].Diags
	diags[0].Hint = "insert IDENT"
	require.NoError(t, WritePretty(&buf, diags, PrettyOptions{NoColor: true}))

	want := "ERROR E_PARSE_UNRECOGNIZED_TOKEN broken.calc:2:5 Unrecognized token `=` found at 2:5:2:6\n" +
		"  Expected one of IDENT\n" +
		"  recovered: dropped 2 token(s)\n" +
		"  hint: insert IDENT\n" +
		"ERROR E_PARSE_INVALID_TOKEN broken.calc:4:9 Invalid token at 4:9\n" +
		"  recovered: dropped 2 token(s)\n"
	assert.Equal(t, want, buf.String())
}
