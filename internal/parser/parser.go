package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mehditeymorian/lrutil/internal/ast"
	"github.com/mehditeymorian/lrutil/internal/lexer"
)

// Options control how the parser reacts to errors.
type Options struct {
	// Recover makes the parser record an error, drop tokens up to the next
	// ";" and continue, instead of stopping at the first error.
	Recover bool
	// MaxErrors stops recovery after this many errors. Zero means no limit.
	MaxErrors int
}

// Parser converts lexer tokens into AST nodes.
type Parser struct {
	lx      *lexer.Lexer
	opts    Options
	cur     lexer.Item
	curErr  *lexer.LexError
	lastEnd int

	recovered []Recovery
}

// ParseProgram parses a whole program. Without recovery the first error is
// returned. With recovery the returned error is nil unless MaxErrors was
// reached, and every error met is reported in the recoveries.
func ParseProgram(src string, opts Options) (*ast.Program, []Recovery, error) {
	p := NewParser(lexer.NewLexer(src), opts)
	prog, err := p.ParseProgram()
	return prog, p.Recovered(), err
}

// ParseExpr parses a single expression that must span the whole input.
func ParseExpr(src string) (ast.Expr, error) {
	return NewParser(lexer.NewLexer(src), Options{}).ParseExpr()
}

// NewParser creates a parser for the lexer stream.
func NewParser(lx *lexer.Lexer, opts Options) *Parser {
	p := &Parser{lx: lx, opts: opts}
	p.advance()
	return p
}

// Recovered returns the errors the parser continued past, in input order.
func (p *Parser) Recovered() []Recovery {
	return p.recovered
}

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.cur.Value.Kind != lexer.EOF {
		stmt, err := p.parseStmt()
		if err == nil {
			if len(prog.Stmts) == 0 {
				prog.Span.Start = stmt.Pos().Start
			}
			prog.Span.End = stmt.Pos().End
			prog.Stmts = append(prog.Stmts, stmt)
			continue
		}
		if !p.opts.Recover {
			return prog, err
		}
		p.recovered = append(p.recovered, Recovery{Error: err, DroppedTokens: p.sync()})
		if p.opts.MaxErrors > 0 && len(p.recovered) >= p.opts.MaxErrors {
			return prog, fmt.Errorf("%w: stopped after %d", ErrTooManyErrors, len(p.recovered))
		}
	}
	return prog, nil
}

// ParseExpr parses one expression and requires EOF after it.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	x, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if p.cur.Value.Kind != lexer.EOF {
		if err := p.invalid(); err != nil {
			return nil, err
		}
		return nil, extraToken{Token: p.cur}
	}
	return x, nil
}

func (p *Parser) advance() {
	p.lastEnd = p.cur.End
	item, err := p.lx.Next()
	p.cur = item
	p.curErr = nil
	var lexErr lexer.LexError
	if errors.As(err, &lexErr) {
		p.curErr = &lexErr
	}
}

// invalid reports the current token when the lexer could not produce a
// usable token for it.
func (p *Parser) invalid() Error {
	if p.curErr != nil {
		return userError{Err: *p.curErr}
	}
	if p.cur.Value.Kind == lexer.ILLEGAL {
		return invalidToken{Location: p.cur.Start}
	}
	return nil
}

func (p *Parser) unexpected(expected []lexer.Kind) Error {
	if err := p.invalid(); err != nil {
		return err
	}
	if p.cur.Value.Kind == lexer.EOF {
		return unrecognizedEOF{Location: p.lastEnd, Expected: lexer.Terminals(expected...)}
	}
	return unrecognizedToken{Token: p.cur, Expected: lexer.Terminals(expected...)}
}

func (p *Parser) expect(kind lexer.Kind, expected []lexer.Kind) (lexer.Item, Error) {
	if p.cur.Value.Kind != kind {
		return lexer.Item{}, p.unexpected(expected)
	}
	item := p.cur
	p.advance()
	return item, nil
}

// sync drops tokens up to the next ";" and consumes it. The ";" itself is
// the resynchronization point and is not reported as dropped.
func (p *Parser) sync() []lexer.Item {
	var dropped []lexer.Item
	for p.cur.Value.Kind != lexer.SEMICOLON && p.cur.Value.Kind != lexer.EOF {
		dropped = append(dropped, p.cur)
		p.advance()
	}
	if p.cur.Value.Kind == lexer.SEMICOLON {
		p.advance()
	}
	return dropped
}

func (p *Parser) parseStmt() (ast.Stmt, Error) {
	start := p.cur.Start
	switch p.cur.Value.Kind {
	case lexer.KW_LET:
		p.advance()
		name, err := p.expect(lexer.IDENT, []lexer.Kind{lexer.IDENT})
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ASSIGN, []lexer.Kind{lexer.ASSIGN}); err != nil {
			return nil, err
		}
		value, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.SEMICOLON, stmtEnd)
		if err != nil {
			return nil, err
		}
		return &ast.LetStmt{Name: name.Value.Lit, Value: value, Span: ast.Span{Start: start, End: end.End}}, nil
	case lexer.KW_PRINT:
		p.advance()
		value, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.SEMICOLON, stmtEnd)
		if err != nil {
			return nil, err
		}
		return &ast.PrintStmt{Value: value, Span: ast.Span{Start: start, End: end.End}}, nil
	}

	if !startsOperand(p.cur.Value.Kind) {
		return nil, p.unexpected(stmtStart)
	}
	value, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(lexer.SEMICOLON, stmtEnd)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Value: value, Span: ast.Span{Start: start, End: end.End}}, nil
}

func (p *Parser) parseExpr(min prec) (ast.Expr, Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		pr, ok := infixPrec(p.cur.Value.Kind)
		if !ok || pr <= min {
			return left, nil
		}
		op := p.cur.Value.Lit
		p.advance()
		right, err := p.parseExpr(pr)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, X: left, Y: right, Span: ast.Span{Start: left.Pos().Start, End: right.Pos().End}}
	}
}

func (p *Parser) parseUnary() (ast.Expr, Error) {
	if p.cur.Value.Kind != lexer.MINUS {
		return p.parsePrimary()
	}
	start := p.cur.Start
	p.advance()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: "-", X: x, Span: ast.Span{Start: start, End: x.Pos().End}}, nil
}

func (p *Parser) parsePrimary() (ast.Expr, Error) {
	tok := p.cur
	switch tok.Value.Kind {
	case lexer.NUMBER:
		v, err := strconv.ParseInt(tok.Value.Lit, 10, 64)
		if err != nil {
			return nil, userError{Err: lexer.LexError{
				Code:    lexer.ErrNumberRange,
				Message: fmt.Sprintf("number literal %s out of range", tok.Value.Lit),
				Span:    lexer.Span{Start: tok.Start, End: tok.End},
			}}
		}
		p.advance()
		return &ast.NumberLit{Value: v, Span: ast.Span{Start: tok.Start, End: tok.End}}, nil
	case lexer.IDENT:
		p.advance()
		return &ast.Ident{Name: tok.Value.Lit, Span: ast.Span{Start: tok.Start, End: tok.End}}, nil
	case lexer.LPAREN:
		p.advance()
		x, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.RPAREN, parenEnd)
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{X: x, Span: ast.Span{Start: tok.Start, End: end.End}}, nil
	default:
		return nil, p.unexpected(operandStart)
	}
}

// precedence handling

type prec int

const (
	precLowest prec = iota
	precAdd
	precMul
)

func infixPrec(kind lexer.Kind) (prec, bool) {
	switch kind {
	case lexer.PLUS, lexer.MINUS:
		return precAdd, true
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return precMul, true
	default:
		return precLowest, false
	}
}

func startsOperand(kind lexer.Kind) bool {
	switch kind {
	case lexer.IDENT, lexer.NUMBER, lexer.MINUS, lexer.LPAREN:
		return true
	default:
		return false
	}
}
