package lexer

import "fmt"

const (
	ErrMalformedNumber     = "E_LEX_MALFORMED_NUMBER"
	ErrNumberRange         = "E_LEX_NUMBER_RANGE"
	ErrUnterminatedComment = "E_LEX_UNTERMINATED_COMMENT"
)

// Span is a half-open byte range.
type Span struct {
	Start int
	End   int
}

// LexError captures a lexer diagnostic.
type LexError struct {
	Code    string
	Message string
	Span    Span
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Span.Start, e.Span.End)
}

// DiagnosticCode reports the code diagnostics should use for e.
func (e LexError) DiagnosticCode() string {
	return e.Code
}

// SourceError is a LexError with its span resolved to line and column
// positions.
type SourceError struct {
	Code    string
	Message string
	Start   Position
	End     Position
}

// Locate resolves the span of e through ix.
func (e LexError) Locate(ix *LineIndex) SourceError {
	return SourceError{
		Code:    e.Code,
		Message: e.Message,
		Start:   ix.Position(e.Span.Start),
		End:     ix.Position(e.Span.End),
	}
}

func (e SourceError) Error() string {
	return fmt.Sprintf("%s at %s:%s", e.Message, e.Start, e.End)
}

func (e SourceError) DiagnosticCode() string {
	return e.Code
}

func (e SourceError) LineCol() (int, int) {
	return e.Start.Line, e.Start.Column
}
