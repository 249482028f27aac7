package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Lexer converts source text into byte-offset spanned tokens.
type Lexer struct {
	src string
	pos int
}

// NewLexer returns a new lexer for the provided source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Lex returns all tokens up to and including EOF, and the lexer errors
// met along the way.
func Lex(src string) ([]Item, []LexError) {
	lx := NewLexer(src)
	var (
		items []Item
		errs  []LexError
	)
	for {
		item, err := lx.Next()
		if err != nil {
			errs = append(errs, err.(LexError))
		}
		items = append(items, item)
		if item.Value.Kind == EOF {
			break
		}
	}
	return items, errs
}

// Next returns the next token. When the text at the current position is
// malformed, the returned item has kind ERROR, covers the offending text,
// and the error is a LexError. Characters that start no token come back as
// ILLEGAL items without an error.
func (l *Lexer) Next() (Item, error) {
	if err := l.skipTrivia(); err != nil {
		return err.item, err.LexError
	}
	if l.pos >= len(l.src) {
		return l.item(EOF, l.pos), nil
	}

	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	switch {
	case isDigit(r):
		return l.scanNumber()
	case isIdentStart(r):
		for l.pos < len(l.src) && isIdentPart(l.peek()) {
			l.advance()
		}
		lit := l.src[start:l.pos]
		if kind, ok := keywords[lit]; ok {
			return l.item(kind, start), nil
		}
		return l.item(IDENT, start), nil
	}

	l.pos += size
	switch r {
	case '=':
		return l.item(ASSIGN, start), nil
	case ';':
		return l.item(SEMICOLON, start), nil
	case '+':
		return l.item(PLUS, start), nil
	case '-':
		return l.item(MINUS, start), nil
	case '*':
		return l.item(STAR, start), nil
	case '/':
		return l.item(SLASH, start), nil
	case '%':
		return l.item(PERCENT, start), nil
	case '(':
		return l.item(LPAREN, start), nil
	case ')':
		return l.item(RPAREN, start), nil
	default:
		return l.item(ILLEGAL, start), nil
	}
}

type triviaError struct {
	LexError
	item Item
}

func (l *Lexer) skipTrivia() *triviaError {
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.peekN(1) == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekN(1) == '*':
			start := l.pos
			l.pos += 2
			for {
				if l.pos >= len(l.src) {
					return &triviaError{
						LexError: LexError{Code: ErrUnterminatedComment, Message: "unterminated block comment", Span: Span{Start: start, End: l.pos}},
						item:     l.item(ERROR, start),
					}
				}
				if l.peek() == '*' && l.peekN(1) == '/' {
					l.pos += 2
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scanNumber() (Item, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	if l.pos < len(l.src) && isIdentPart(l.peek()) {
		for l.pos < len(l.src) && isIdentPart(l.peek()) {
			l.advance()
		}
		lit := l.src[start:l.pos]
		return l.item(ERROR, start), LexError{
			Code:    ErrMalformedNumber,
			Message: fmt.Sprintf("malformed number literal %q", lit),
			Span:    Span{Start: start, End: l.pos},
		}
	}
	lit := l.src[start:l.pos]
	if _, err := strconv.ParseInt(lit, 10, 64); err != nil {
		return l.item(ERROR, start), LexError{
			Code:    ErrNumberRange,
			Message: fmt.Sprintf("number literal %s out of range", lit),
			Span:    Span{Start: start, End: l.pos},
		}
	}
	return l.item(NUMBER, start), nil
}

func (l *Lexer) item(kind Kind, start int) Item {
	lit := l.src[start:l.pos]
	if kind == EOF {
		lit = ""
	}
	return Item{Start: start, Value: Token{Kind: kind, Lit: lit}, End: l.pos}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *Lexer) peekN(n int) rune {
	pos := l.pos
	for i := 0; i < n; i++ {
		if pos >= len(l.src) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.src[pos:])
		pos += size
	}
	if pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[pos:])
	return r
}

func (l *Lexer) advance() {
	if l.pos >= len(l.src) {
		return
	}
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
