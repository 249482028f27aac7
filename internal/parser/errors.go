package parser

import (
	"errors"

	"github.com/mehditeymorian/lrutil"
	"github.com/mehditeymorian/lrutil/internal/lexer"
)

// Error is the failure value of this grammar: byte offsets, lexer tokens
// and lexer errors.
type Error = lrutil.ParseError[int, lexer.Token, lexer.LexError]

// Recovery records one error the parser continued past.
type Recovery = lrutil.ErrorRecovery[int, lexer.Token, lexer.LexError]

// ErrTooManyErrors is returned when recovery gives up after
// Options.MaxErrors recovered errors.
var ErrTooManyErrors = errors.New("too many errors")

type (
	invalidToken      = lrutil.InvalidToken[int, lexer.Token, lexer.LexError]
	unrecognizedEOF   = lrutil.UnrecognizedEOF[int, lexer.Token, lexer.LexError]
	unrecognizedToken = lrutil.UnrecognizedToken[int, lexer.Token, lexer.LexError]
	extraToken        = lrutil.ExtraToken[int, lexer.Token, lexer.LexError]
	userError         = lrutil.User[int, lexer.Token, lexer.LexError]
)

// expected-token lists, in terminal declaration order
var (
	stmtStart    = []lexer.Kind{lexer.IDENT, lexer.NUMBER, lexer.KW_LET, lexer.KW_PRINT, lexer.MINUS, lexer.LPAREN}
	operandStart = []lexer.Kind{lexer.IDENT, lexer.NUMBER, lexer.MINUS, lexer.LPAREN}
	stmtEnd      = []lexer.Kind{lexer.SEMICOLON, lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT}
	parenEnd     = []lexer.Kind{lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT, lexer.RPAREN}
)
