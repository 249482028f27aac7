// Package include splices generated parser sources into a Go module under
// a chosen package name and visibility.
//
// A declaration names the package, whether it is public, and optionally the
// generated file to take it from:
//
//	calc
//	pub calc
//	calc /lex/calc.go
//	pub calc /lex/calc.go
//
// Without a source the file is "/<module>.go". Sources are resolved under
// the generated-output directory. Public packages land in <root>/<module>,
// private ones in <root>/internal/<module>.
package include

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
)

var (
	ErrInvalidModule = errors.New("invalid module name")
	ErrTooManyArgs   = errors.New("too many arguments")
)

// Spec is one parsed inclusion declaration.
type Spec struct {
	Module string
	Public bool
	Source string
}

// ParseArgs parses the words of an inclusion declaration.
func ParseArgs(args []string) (Spec, error) {
	var spec Spec
	if len(args) > 0 && args[0] == "pub" {
		spec.Public = true
		args = args[1:]
	}
	switch len(args) {
	case 0:
		return Spec{}, fmt.Errorf("%w: missing module name", ErrInvalidModule)
	case 1, 2:
	default:
		return Spec{}, fmt.Errorf("%w: unexpected %q", ErrTooManyArgs, args[2])
	}
	if err := ValidateModule(args[0]); err != nil {
		return Spec{}, err
	}
	spec.Module = args[0]
	if len(args) == 2 {
		spec.Source = args[1]
	}
	return spec, nil
}

// ValidateModule reports whether name can be used as a Go package name.
func ValidateModule(name string) error {
	if !token.IsIdentifier(name) || name == "_" {
		return fmt.Errorf("%w: %q", ErrInvalidModule, name)
	}
	return nil
}

func (s Spec) source() string {
	if s.Source != "" {
		return s.Source
	}
	return "/" + s.Module + ".go"
}

// SourcePath is the generated file the package is read from.
func (s Spec) SourcePath(outDir string) string {
	return filepath.Join(outDir, filepath.FromSlash(s.source()))
}

// TargetDir is the directory the package is written to.
func (s Spec) TargetDir(root string) string {
	if s.Public {
		return filepath.Join(root, s.Module)
	}
	return filepath.Join(root, "internal", s.Module)
}

func (s Spec) String() string {
	out := s.Module
	if s.Public {
		out = "pub " + out
	}
	if s.Source != "" {
		out += " " + s.Source
	}
	return out
}
