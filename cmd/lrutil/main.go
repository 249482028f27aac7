package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mehditeymorian/lrutil"
	"github.com/mehditeymorian/lrutil/internal/compiler"
	"github.com/mehditeymorian/lrutil/internal/config"
	"github.com/mehditeymorian/lrutil/internal/diagnostics"
	"github.com/mehditeymorian/lrutil/internal/include"
	"github.com/mehditeymorian/lrutil/internal/lexer"
	"github.com/mehditeymorian/lrutil/internal/parser"
	"github.com/mehditeymorian/lrutil/internal/report"
	"github.com/mehditeymorian/lrutil/internal/runtime"
)

const (
	checkUsage   = "lrutil check <file>... [--recover] [--max-errors n] [--format pretty|json|yaml] [--report-dir dir] [--no-color] [--verbose]"
	runUsage     = "lrutil run <file> [--format pretty|json|yaml] [--no-color] [--verbose]"
	includeUsage = "lrutil include [pub] <module> [source] [--out-dir dir] [--root dir] [--all] [--verbose]"
)

const codeTooManyErrors = "E_PARSE_TOO_MANY_ERRORS"

type cliExitError struct {
	code  int
	msg   string
	usage string
}

func (e *cliExitError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.usage != "" {
		return e.usage
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var exitErr *cliExitError
		if errors.As(err, &exitErr) {
			if exitErr.msg != "" {
				_, _ = fmt.Fprintln(stderr, exitErr.msg)
			}
			if exitErr.usage != "" {
				_, _ = fmt.Fprintln(stderr, strings.TrimSpace(exitErr.usage))
			}
			return exitErr.code
		}
		_, _ = fmt.Fprintln(stderr, err.Error())
		printUsage(stderr)
		return 2
	}
	return 0
}

type globalFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "lrutil",
		Short:         "lrutil CLI",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return &cliExitError{code: 2, usage: rootUsage()}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ./lrutil.yaml when present)")
	root.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "print debug logs to stderr")
	root.AddCommand(newCheckCmd(g, stdout, stderr), newRunCmd(g, stdout, stderr), newIncludeCmd(g, stdout, stderr))
	return root
}

func newCheckCmd(g *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		format     string
		reportDir  string
		recoverErr bool
		maxErrors  int
		noColor    bool
	)

	checkCmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse files and report every parse error",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &cliExitError{code: 2, msg: "usage: " + checkUsage}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			if cmd.Flags().Changed("report-dir") {
				cfg.ReportDir = reportDir
			}
			if noColor {
				cfg.Color = false
			}
			if err := config.ValidateFormat(cfg.Format); err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			if maxErrors < 0 {
				return &cliExitError{code: 2, msg: fmt.Sprintf("invalid --max-errors value: %d", maxErrors)}
			}

			logger := newLogger(g.verbose, stderr)
			defer func() { _ = logger.Sync() }()

			results, err := checkFiles(cmd.Context(), logger, args, parser.Options{Recover: recoverErr, MaxErrors: maxErrors})
			if err != nil {
				return &cliExitError{code: 1, msg: err.Error()}
			}

			var allDiags []diagnostics.Diagnostic
			for _, res := range results {
				allDiags = append(allDiags, res.Diags...)
			}
			allDiags = diagnostics.SortAndDedupe(allDiags)
			model := report.Build(results)

			if cfg.ReportDir != "" {
				if err := writeCheckReports(cfg.ReportDir, model); err != nil {
					return &cliExitError{code: 1, msg: fmt.Sprintf("failed to write reports: %v", err)}
				}
			}
			payload := newCommandResult("check", allDiags)
			payload.Report = &model
			if err := printCommandResult(stdout, cfg, payload); err != nil {
				return &cliExitError{code: 1, msg: fmt.Sprintf("failed to write output: %v", err)}
			}
			if len(allDiags) > 0 {
				return &cliExitError{code: 1}
			}
			return nil
		},
	}
	checkCmd.Flags().StringVar(&format, "format", "pretty", "stdout format: pretty|json|yaml")
	checkCmd.Flags().StringVar(&reportDir, "report-dir", "", "directory for report artifacts")
	checkCmd.Flags().BoolVar(&recoverErr, "recover", false, "continue past errors by dropping tokens up to the next ';'")
	checkCmd.Flags().IntVar(&maxErrors, "max-errors", 0, "stop recovering after this many errors (0 means no limit)")
	checkCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return checkCmd
}

func newRunCmd(g *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		format  string
		noColor bool
	)

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Check a program and evaluate it",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &cliExitError{code: 2, msg: "usage: " + runUsage}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			if noColor {
				cfg.Color = false
			}
			if err := config.ValidateFormat(cfg.Format); err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}

			logger := newLogger(g.verbose, stderr)
			defer func() { _ = logger.Sync() }()

			fc, err := checkFile(filepath.Clean(args[0]), parser.Options{})
			if err != nil {
				return &cliExitError{code: 1, msg: err.Error()}
			}
			diags := fc.result.Diags
			var printed []int64
			if len(diags) == 0 {
				opt := runtime.Options{Logger: logger}
				if cfg.Format == "pretty" {
					opt.Output = stdout
				}
				res, err := runtime.Execute(cmd.Context(), fc.plan, opt)
				if err != nil {
					return &cliExitError{code: 1, msg: err.Error()}
				}
				printed = res.Printed
				if res.Err != nil {
					diags = append(diags, userDiag(fc.result.File, fc.ix, *res.Err))
				}
			}

			payload := newCommandResult("run", diags)
			payload.Output = printed
			if err := printCommandResult(stdout, cfg, payload); err != nil {
				return &cliExitError{code: 1, msg: fmt.Sprintf("failed to write output: %v", err)}
			}
			if len(diags) > 0 {
				return &cliExitError{code: 1}
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&format, "format", "pretty", "stdout format: pretty|json|yaml")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return runCmd
}

func newIncludeCmd(g *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		outDir string
		root   string
		all    bool
	)

	includeCmd := &cobra.Command{
		Use:   "include [pub] <module> [source]",
		Short: "Splice a generated parser into the module as a package",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return &cliExitError{code: 2, msg: err.Error()}
			}
			if cmd.Flags().Changed("out-dir") {
				cfg.OutDir = outDir
			}
			if cmd.Flags().Changed("root") {
				cfg.Root = root
			}

			var specs []include.Spec
			if all {
				if len(args) > 0 {
					return &cliExitError{code: 2, msg: "--all takes no arguments", usage: "usage: " + includeUsage}
				}
				specs = cfg.Specs()
				if len(specs) == 0 {
					return &cliExitError{code: 2, msg: "no includes configured"}
				}
			} else {
				spec, err := include.ParseArgs(args)
				if err != nil {
					return &cliExitError{code: 2, msg: err.Error(), usage: "usage: " + includeUsage}
				}
				specs = []include.Spec{spec}
			}

			logger := newLogger(g.verbose, stderr)
			defer func() { _ = logger.Sync() }()

			splicer := &include.Splicer{Logger: logger, OutDir: cfg.OutDir, Root: cfg.Root}
			written, err := splicer.SpliceAll(cmd.Context(), specs)
			for _, path := range written {
				_, _ = fmt.Fprintf(stdout, "wrote %s\n", path)
			}
			if err != nil {
				return &cliExitError{code: 1, msg: err.Error()}
			}
			return nil
		},
	}
	includeCmd.Flags().StringVar(&outDir, "out-dir", "", "generated-output directory (default $LRUTIL_OUT_DIR or ./gen)")
	includeCmd.Flags().StringVar(&root, "root", "", "module root to write packages under (default .)")
	includeCmd.Flags().BoolVar(&all, "all", false, "splice every include declared in the config file")
	return includeCmd
}

func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zap.DebugLevel,
	)
	return zap.New(core, zap.Development())
}

func checkFiles(ctx context.Context, logger *zap.Logger, paths []string, opts parser.Options) ([]report.FileResult, error) {
	results := make([]report.FileResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		fc, err := checkFile(filepath.Clean(path), opts)
		if err != nil {
			return results, err
		}
		logger.Debug("checked file", zap.String("file", fc.result.File), zap.Int("diagnostics", len(fc.result.Diags)))
		results = append(results, fc.result)
	}
	return results, nil
}

type fileCheck struct {
	result report.FileResult
	ix     *lexer.LineIndex
	// plan is set only when the file has no diagnostics.
	plan *compiler.Plan
}

// checkFile parses path and, when it parses cleanly, runs the semantic
// passes over it.
func checkFile(path string, opts parser.Options) (fileCheck, error) {
	fc := fileCheck{result: report.FileResult{File: path}}
	src, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read %s: %w", path, err)
	}
	fc.ix = lexer.NewLineIndex(string(src))

	prog, recovered, err := parser.ParseProgram(string(src), opts)
	for _, r := range recovered {
		fc.result.Diags = append(fc.result.Diags, diagnostics.FromRecovery(path, locateRecovery(fc.ix, r)))
	}

	var perr parser.Error
	switch {
	case err == nil:
	case errors.As(err, &perr):
		fc.result.Diags = append(fc.result.Diags, diagnostics.FromParseError(path, locate(fc.ix, perr)))
	case errors.Is(err, parser.ErrTooManyErrors):
		fc.result.Diags = append(fc.result.Diags, diagnostics.Diagnostic{
			Severity: "error",
			Code:     codeTooManyErrors,
			Message:  err.Error(),
			File:     path,
			Line:     1,
			Column:   1,
			Hint:     "fix the reported errors or raise --max-errors",
		})
	default:
		return fc, err
	}

	if len(fc.result.Diags) == 0 {
		plan, errs := compiler.Compile(prog)
		for _, e := range errs {
			fc.result.Diags = append(fc.result.Diags, userDiag(path, fc.ix, e))
		}
		fc.plan = plan
	}
	fc.result.Diags = diagnostics.SortAndDedupe(fc.result.Diags)
	return fc, nil
}

type locatable interface {
	Locate(ix *lexer.LineIndex) lexer.SourceError
}

// locate converts byte offsets to line/column positions and user errors to
// their located form.
func locate[E locatable](ix *lexer.LineIndex, e lrutil.ParseError[int, lexer.Token, E]) lrutil.ParseError[lexer.Position, lexer.Token, lexer.SourceError] {
	return lrutil.MapError(lrutil.MapLocation(e, ix.Position), func(ue E) lexer.SourceError {
		return ue.Locate(ix)
	})
}

func locateRecovery(ix *lexer.LineIndex, r parser.Recovery) lrutil.ErrorRecovery[lexer.Position, lexer.Token, lexer.SourceError] {
	return lrutil.MapRecoveryError(lrutil.MapRecoveryLocation(r, ix.Position), func(le lexer.LexError) lexer.SourceError {
		return le.Locate(ix)
	})
}

// userDiag reports a semantic or runtime error as the User variant of the
// grammar's error type.
func userDiag(path string, ix *lexer.LineIndex, e compiler.Error) diagnostics.Diagnostic {
	var perr lrutil.ParseError[int, lexer.Token, compiler.Error] = lrutil.User[int, lexer.Token, compiler.Error]{Err: e}
	return diagnostics.FromParseError(path, locate(ix, perr))
}

func writeCheckReports(reportDir string, model report.Model) error {
	if err := report.WriteJUnitFile(filepath.Join(reportDir, "lrutil-junit.xml"), model); err != nil {
		return err
	}
	if err := report.WriteJSONFile(filepath.Join(reportDir, "lrutil-report.json"), model); err != nil {
		return err
	}
	return report.WriteYAMLFile(filepath.Join(reportDir, "lrutil-report.yaml"), model)
}

type commandResult struct {
	Command     string                   `json:"command" yaml:"command"`
	OK          bool                     `json:"ok" yaml:"ok"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Summary     resultSummary            `json:"summary" yaml:"summary"`
	Output      []int64                  `json:"output,omitempty" yaml:"output,omitempty"`
	Report      *report.Model            `json:"report,omitempty" yaml:"report,omitempty"`
}

type resultSummary struct {
	ErrorCount int `json:"error_count" yaml:"error_count"`
}

func newCommandResult(cmd string, diags []diagnostics.Diagnostic) commandResult {
	return commandResult{
		Command:     cmd,
		OK:          len(diags) == 0,
		Diagnostics: diags,
		Summary:     resultSummary{ErrorCount: len(diags)},
	}
}

func printCommandResult(stdout io.Writer, cfg *config.Config, payload commandResult) error {
	switch cfg.Format {
	case "pretty":
		if err := report.WritePretty(stdout, payload.Diagnostics, report.PrettyOptions{NoColor: !cfg.Color}); err != nil {
			return err
		}
		if payload.Report != nil {
			model := payload.Report
			_, _ = fmt.Fprintf(stdout, "files=%d errors=%d dropped=%d\n", len(model.Suites), model.Summary.Errors, model.Summary.Dropped)
		}
		if payload.OK && payload.Command == "check" {
			_, _ = fmt.Fprintln(stdout, "OK")
		}
		return nil
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "yaml":
		return report.WriteYAML(stdout, payload)
	default:
		return config.ValidateFormat(cfg.Format)
	}
}

func printUsage(stderr io.Writer) {
	_, _ = fmt.Fprintln(stderr, strings.TrimSpace(rootUsage()))
}

func rootUsage() string {
	return `Usage:
  ` + checkUsage + `
  ` + runUsage + `
  ` + includeUsage
}
