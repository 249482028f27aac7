package compiler

import (
	"fmt"
	"sort"

	"github.com/mehditeymorian/lrutil/internal/ast"
	"github.com/mehditeymorian/lrutil/internal/lexer"
)

const (
	CodeUndefinedVariable = "E_SEM_UNDEFINED_VARIABLE"
	CodeDuplicateLet      = "E_SEM_DUPLICATE_LET"
	CodeDivisionByZero    = "E_SEM_DIVISION_BY_ZERO"
	CodeConstantOverflow  = "E_SEM_CONSTANT_OVERFLOW"
)

// Error is a semantic error found in a syntactically valid program. It is
// the user error parsers hand back through the User variant.
type Error struct {
	Code    string
	Message string
	Span    ast.Span
}

func (e Error) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Span.Start, e.Span.End)
}

func (e Error) DiagnosticCode() string {
	return e.Code
}

// Locate resolves the span of e through ix.
func (e Error) Locate(ix *lexer.LineIndex) lexer.SourceError {
	return lexer.SourceError{
		Code:    e.Code,
		Message: e.Message,
		Start:   ix.Position(e.Span.Start),
		End:     ix.Position(e.Span.End),
	}
}

// StepKind identifies what a plan step does.
type StepKind string

const (
	StepLet   StepKind = "let"
	StepPrint StepKind = "print"
	StepEval  StepKind = "eval"
)

// Plan is a checked program ready for execution.
type Plan struct {
	Globals []string `json:"globals"`
	Steps   []Step   `json:"steps"`
}

// Step is one statement of a plan.
type Step struct {
	Kind StepKind `json:"kind"`
	Name string   `json:"name,omitempty"`
	Expr ast.Expr `json:"-"`
	Span ast.Span `json:"span"`
}

// Compile validates prog and returns a plan, or the errors found in source
// order.
func Compile(prog *ast.Program) (*Plan, []Error) {
	c := &compiler{prog: prog}
	c.run()
	if len(c.errs) > 0 {
		sort.SliceStable(c.errs, func(i, j int) bool {
			return c.errs[i].Span.Start < c.errs[j].Span.Start
		})
		return nil, c.errs
	}
	return c.plan, nil
}

type compiler struct {
	prog *ast.Program
	errs []Error
	plan *Plan

	declared map[string]ast.Span
}

func (c *compiler) run() {
	if c.prog == nil {
		c.plan = &Plan{}
		return
	}
	c.passSymbols()
	c.passConstants()
	if len(c.errs) > 0 {
		return
	}
	c.buildPlan()
}

// passSymbols checks that every name is bound before use and bound once.
func (c *compiler) passSymbols() {
	c.declared = map[string]ast.Span{}
	for _, stmt := range c.prog.Stmts {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			c.checkIdents(s.Value)
			if prev, ok := c.declared[s.Name]; ok {
				c.addErr(CodeDuplicateLet, fmt.Sprintf("%s is already bound at %d:%d", s.Name, prev.Start, prev.End), s.Span)
				continue
			}
			c.declared[s.Name] = s.Span
		case *ast.PrintStmt:
			c.checkIdents(s.Value)
		case *ast.ExprStmt:
			c.checkIdents(s.Value)
		}
	}
}

func (c *compiler) checkIdents(expr ast.Expr) {
	for _, id := range collectIdents(expr) {
		if _, ok := c.declared[id.Name]; !ok {
			c.addErr(CodeUndefinedVariable, fmt.Sprintf("undefined variable %s", id.Name), id.Span)
		}
	}
}

// passConstants folds constant subexpressions and rejects divisions by a
// constant zero and constants that overflow int64.
func (c *compiler) passConstants() {
	for _, stmt := range c.prog.Stmts {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			c.fold(s.Value)
		case *ast.PrintStmt:
			c.fold(s.Value)
		case *ast.ExprStmt:
			c.fold(s.Value)
		}
	}
}

// fold returns the value of expr when it is constant.
func (c *compiler) fold(expr ast.Expr) (int64, bool) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return e.Value, true
	case *ast.ParenExpr:
		return c.fold(e.X)
	case *ast.UnaryExpr:
		x, ok := c.fold(e.X)
		if !ok {
			return 0, false
		}
		v, err := Negate(x)
		if err != nil {
			c.addErr(CodeConstantOverflow, err.Error(), e.Span)
			return 0, false
		}
		return v, true
	case *ast.BinaryExpr:
		x, okX := c.fold(e.X)
		y, okY := c.fold(e.Y)
		if okY && y == 0 && (e.Op == "/" || e.Op == "%") {
			c.addErr(CodeDivisionByZero, "division by constant zero", e.Span)
			return 0, false
		}
		if !okX || !okY {
			return 0, false
		}
		v, err := Apply(e.Op, x, y)
		if err != nil {
			c.addErr(CodeConstantOverflow, err.Error(), e.Span)
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func (c *compiler) buildPlan() {
	plan := &Plan{}
	for _, stmt := range c.prog.Stmts {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			plan.Globals = append(plan.Globals, s.Name)
			plan.Steps = append(plan.Steps, Step{Kind: StepLet, Name: s.Name, Expr: s.Value, Span: s.Span})
		case *ast.PrintStmt:
			plan.Steps = append(plan.Steps, Step{Kind: StepPrint, Expr: s.Value, Span: s.Span})
		case *ast.ExprStmt:
			plan.Steps = append(plan.Steps, Step{Kind: StepEval, Expr: s.Value, Span: s.Span})
		}
	}
	c.plan = plan
}

func (c *compiler) addErr(code, msg string, span ast.Span) {
	c.errs = append(c.errs, Error{Code: code, Message: msg, Span: span})
}

func collectIdents(expr ast.Expr) []*ast.Ident {
	var out []*ast.Ident
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch n := e.(type) {
		case *ast.Ident:
			out = append(out, n)
		case *ast.UnaryExpr:
			walk(n.X)
		case *ast.BinaryExpr:
			walk(n.X)
			walk(n.Y)
		case *ast.ParenExpr:
			walk(n.X)
		}
	}
	walk(expr)
	return out
}
