package diagnostics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mehditeymorian/lrutil"
)

const (
	CodeInvalidToken      = "E_PARSE_INVALID_TOKEN"
	CodeUnrecognizedEOF   = "E_PARSE_UNRECOGNIZED_EOF"
	CodeUnrecognizedToken = "E_PARSE_UNRECOGNIZED_TOKEN"
	CodeExtraToken        = "E_PARSE_EXTRA_TOKEN"
	CodeUser              = "E_PARSE_USER"
)

// Diagnostic is the canonical parse diagnostic contract.
type Diagnostic struct {
	Severity  string   `json:"severity" yaml:"severity"`
	Code      string   `json:"code" yaml:"code"`
	Message   string   `json:"message" yaml:"message"`
	File      string   `json:"file" yaml:"file"`
	Line      int      `json:"line" yaml:"line"`
	Column    int      `json:"column" yaml:"column"`
	EndLine   int      `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	EndColumn int      `json:"end_column,omitempty" yaml:"end_column,omitempty"`
	Hint      string   `json:"hint,omitempty" yaml:"hint,omitempty"`
	Expected  []string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Dropped   int      `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

// Locator is a location that knows its line and column.
type Locator interface {
	LineCol() (line, column int)
}

// Coder is implemented by user errors that carry their own diagnostic
// code.
type Coder interface {
	DiagnosticCode() string
}

// FromParseError converts e into a diagnostic for file. The message is the
// rendered error.
func FromParseError[L Locator, T, E any](file string, e lrutil.ParseError[L, T, E]) Diagnostic {
	d := Diagnostic{Severity: "error", File: file, Message: e.Error()}
	switch v := e.(type) {
	case lrutil.InvalidToken[L, T, E]:
		d.Code = CodeInvalidToken
		d.Line, d.Column = v.Location.LineCol()
		d.Hint = "remove or replace the character"
	case lrutil.UnrecognizedEOF[L, T, E]:
		d.Code = CodeUnrecognizedEOF
		d.Line, d.Column = v.Location.LineCol()
		d.Expected = v.Expected
		d.Hint = expectedHint(v.Expected)
	case lrutil.UnrecognizedToken[L, T, E]:
		d.Code = CodeUnrecognizedToken
		d.Line, d.Column = v.Token.Start.LineCol()
		d.EndLine, d.EndColumn = v.Token.End.LineCol()
		d.Expected = v.Expected
		d.Hint = expectedHint(v.Expected)
	case lrutil.ExtraToken[L, T, E]:
		d.Code = CodeExtraToken
		d.Line, d.Column = v.Token.Start.LineCol()
		d.EndLine, d.EndColumn = v.Token.End.LineCol()
		d.Hint = "remove the trailing input"
	case lrutil.User[L, T, E]:
		d.Code = CodeUser
		if c, ok := any(v.Err).(Coder); ok && c.DiagnosticCode() != "" {
			d.Code = c.DiagnosticCode()
		}
		d.Line, d.Column = 1, 1
		if l, ok := any(v.Err).(Locator); ok {
			d.Line, d.Column = l.LineCol()
		}
	}
	return d
}

// FromRecovery converts a recovered error, noting how many tokens were
// dropped after it.
func FromRecovery[L Locator, T, E any](file string, r lrutil.ErrorRecovery[L, T, E]) Diagnostic {
	d := FromParseError(file, r.Error)
	d.Dropped = len(r.DroppedTokens)
	return d
}

func expectedHint(expected []string) string {
	switch len(expected) {
	case 0:
		return ""
	case 1:
		return "insert " + expected[0]
	default:
		return "expected one of " + strings.Join(expected, " ")
	}
}

// SortAndDedupe enforces deterministic output ordering and duplicate removal.
func SortAndDedupe(in []Diagnostic) []Diagnostic {
	if len(in) == 0 {
		return nil
	}
	out := append([]Diagnostic(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
	seen := map[string]struct{}{}
	result := make([]Diagnostic, 0, len(out))
	for _, d := range out {
		key := dedupeKey(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, d)
	}
	return result
}

func dedupeKey(d Diagnostic) string {
	return d.Code + "|" + d.File + "|" + strconv.Itoa(d.Line) + "|" + strconv.Itoa(d.Column) + "|" + d.Message
}
