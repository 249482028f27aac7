// Package lrutil holds the error values shared by generated LR parsers.
//
// A parser reports failures as a ParseError[L, T, E], where L is the
// grammar's location type, T its token type and E a caller-defined error
// type. The five variants form a closed set; callers switch on them
// exhaustively:
//
//	switch v := err.(type) {
//	case lrutil.InvalidToken[int, Tok, LexErr]:
//	case lrutil.UnrecognizedEOF[int, Tok, LexErr]:
//	case lrutil.UnrecognizedToken[int, Tok, LexErr]:
//	case lrutil.ExtraToken[int, Tok, LexErr]:
//	case lrutil.User[int, Tok, LexErr]:
//	}
//
// MapLocation, MapToken and MapError re-express an error in terms of other
// types, one axis at a time. A typical use converts the byte offsets a
// lexer produces into line and column positions before showing the error.
//
// A parser that keeps going after a failure reports each one as an
// ErrorRecovery, which also records the tokens dropped while
// resynchronizing.
//
// Generated parser sources are placed into a package with the include
// command of cmd/lrutil, usually from a go:generate directive:
//
//	//go:generate lrutil include pub calc /lex/calc.go
package lrutil
