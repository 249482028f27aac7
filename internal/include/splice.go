package include

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const generatedMarker = "// Code generated by lrutil include. DO NOT EDIT."

// Splicer copies generated sources into the module tree.
type Splicer struct {
	Logger *zap.Logger
	// OutDir is where generated sources are read from.
	OutDir string
	// Root is the module root packages are written under.
	Root string
}

// Splice writes the package described by spec and returns the path of the
// written file.
func (s *Splicer) Splice(ctx context.Context, spec Spec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateModule(spec.Module); err != nil {
		return "", err
	}

	src := spec.SourcePath(s.OutDir)
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read generated source: %w", err)
	}
	out, err := Rewrite(src, data, spec.Module)
	if err != nil {
		return "", err
	}

	dir := spec.TargetDir(s.Root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create package directory: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", dst, err)
	}

	s.logger().Info("spliced generated package",
		zap.String("module", spec.Module),
		zap.Bool("public", spec.Public),
		zap.String("source", src),
		zap.String("target", dst),
	)
	return dst, nil
}

// SpliceAll splices every spec in order and stops at the first failure.
func (s *Splicer) SpliceAll(ctx context.Context, specs []Spec) ([]string, error) {
	written := make([]string, 0, len(specs))
	for _, spec := range specs {
		dst, err := s.Splice(ctx, spec)
		if err != nil {
			return written, fmt.Errorf("include %s: %w", spec, err)
		}
		written = append(written, dst)
	}
	return written, nil
}

func (s *Splicer) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Rewrite renames the package clause of a Go source file to pkg, marks it
// as generated and gofmts the result.
func Rewrite(filename string, src []byte, pkg string) ([]byte, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse generated source: %w", err)
	}
	file.Name.Name = pkg

	var buf bytes.Buffer
	if !ast.IsGenerated(file) {
		buf.WriteString(generatedMarker + "\n\n")
	}
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return buf.Bytes(), nil
}
