package ast

import "strconv"

// Span represents a half-open byte range in the source.
type Span struct {
	Start int
	End   int
}

// Program is the root AST node.
type Program struct {
	Stmts []Stmt
	Span  Span
}

// Stmt marks top-level statements.
type Stmt interface {
	stmtNode()
	Pos() Span
}

// Expr marks expression nodes.
type Expr interface {
	exprNode()
	Pos() Span
}

// LetStmt binds a name to an expression.
type LetStmt struct {
	Name  string
	Value Expr
	Span  Span
}

func (*LetStmt) stmtNode()   {}
func (s *LetStmt) Pos() Span { return s.Span }

// PrintStmt prints the value of an expression.
type PrintStmt struct {
	Value Expr
	Span  Span
}

func (*PrintStmt) stmtNode()   {}
func (s *PrintStmt) Pos() Span { return s.Span }

// ExprStmt evaluates an expression for its value.
type ExprStmt struct {
	Value Expr
	Span  Span
}

func (*ExprStmt) stmtNode()   {}
func (s *ExprStmt) Pos() Span { return s.Span }

// NumberLit is an integer literal.
type NumberLit struct {
	Value int64
	Span  Span
}

func (*NumberLit) exprNode()   {}
func (e *NumberLit) Pos() Span { return e.Span }

// Ident references a bound name.
type Ident struct {
	Name string
	Span Span
}

func (*Ident) exprNode()   {}
func (e *Ident) Pos() Span { return e.Span }

// UnaryExpr is a prefix operation.
type UnaryExpr struct {
	Op   string
	X    Expr
	Span Span
}

func (*UnaryExpr) exprNode()   {}
func (e *UnaryExpr) Pos() Span { return e.Span }

// BinaryExpr is an infix operation.
type BinaryExpr struct {
	Op   string
	X    Expr
	Y    Expr
	Span Span
}

func (*BinaryExpr) exprNode()   {}
func (e *BinaryExpr) Pos() Span { return e.Span }

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	X    Expr
	Span Span
}

func (*ParenExpr) exprNode()   {}
func (e *ParenExpr) Pos() Span { return e.Span }

// Format renders e in fully parenthesized prefix form, for tests and
// debugging output.
func Format(e Expr) string {
	switch n := e.(type) {
	case *NumberLit:
		return strconv.FormatInt(n.Value, 10)
	case *Ident:
		return n.Name
	case *UnaryExpr:
		return "(" + n.Op + " " + Format(n.X) + ")"
	case *BinaryExpr:
		return "(" + n.Op + " " + Format(n.X) + " " + Format(n.Y) + ")"
	case *ParenExpr:
		return Format(n.X)
	case nil:
		return "<nil>"
	default:
		return "<?>"
	}
}
