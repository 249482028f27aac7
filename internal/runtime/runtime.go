package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mehditeymorian/lrutil/internal/ast"
	"github.com/mehditeymorian/lrutil/internal/compiler"
)

const (
	CodeDivisionByZero = "E_RUNTIME_DIVISION_BY_ZERO"
	CodeOverflow       = "E_RUNTIME_OVERFLOW"
	CodeExpression     = "E_RUNTIME_EXPRESSION"
)

type Options struct {
	// Output receives one line per print statement.
	Output io.Writer
	Logger *zap.Logger
}

type Result struct {
	Printed []int64
	Vars    map[string]int64
	// Err is the error that stopped execution, if any.
	Err *compiler.Error
}

// Execute runs plan until it finishes, fails or ctx is done.
func Execute(ctx context.Context, plan *compiler.Plan, opt Options) (Result, error) {
	res := Result{Vars: map[string]int64{}}
	if plan == nil {
		return res, nil
	}
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		v, rerr := evalExpr(step.Expr, res.Vars)
		if rerr != nil {
			logger.Debug("step failed", zap.Int("step", i), zap.String("code", rerr.Code), zap.String("message", rerr.Message))
			res.Err = rerr
			return res, nil
		}
		switch step.Kind {
		case compiler.StepLet:
			res.Vars[step.Name] = v
		case compiler.StepPrint:
			res.Printed = append(res.Printed, v)
			if opt.Output != nil {
				if _, err := fmt.Fprintln(opt.Output, v); err != nil {
					return res, fmt.Errorf("write output: %w", err)
				}
			}
		}
		logger.Debug("step done", zap.Int("step", i), zap.String("kind", string(step.Kind)), zap.Int64("value", v))
	}
	return res, nil
}

func evalExpr(expr ast.Expr, vars map[string]int64) (int64, *compiler.Error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return e.Value, nil
	case *ast.Ident:
		v, ok := vars[e.Name]
		if !ok {
			return 0, runtimeErr(CodeExpression, fmt.Sprintf("unbound variable %s", e.Name), e.Span)
		}
		return v, nil
	case *ast.ParenExpr:
		return evalExpr(e.X, vars)
	case *ast.UnaryExpr:
		x, rerr := evalExpr(e.X, vars)
		if rerr != nil {
			return 0, rerr
		}
		v, err := compiler.Negate(x)
		if err != nil {
			return 0, arithErr(err, e.Span)
		}
		return v, nil
	case *ast.BinaryExpr:
		x, rerr := evalExpr(e.X, vars)
		if rerr != nil {
			return 0, rerr
		}
		y, rerr := evalExpr(e.Y, vars)
		if rerr != nil {
			return 0, rerr
		}
		v, err := compiler.Apply(e.Op, x, y)
		if err != nil {
			return 0, arithErr(err, e.Span)
		}
		return v, nil
	default:
		return 0, runtimeErr(CodeExpression, fmt.Sprintf("unsupported expression %T", expr), ast.Span{})
	}
}

func arithErr(err error, span ast.Span) *compiler.Error {
	switch {
	case errors.Is(err, compiler.ErrDivisionByZero):
		return runtimeErr(CodeDivisionByZero, err.Error(), span)
	case errors.Is(err, compiler.ErrOverflow):
		return runtimeErr(CodeOverflow, err.Error(), span)
	default:
		return runtimeErr(CodeExpression, err.Error(), span)
	}
}

func runtimeErr(code, message string, span ast.Span) *compiler.Error {
	return &compiler.Error{Code: code, Message: message, Span: span}
}
