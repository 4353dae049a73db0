// Package demo runs the xsd2code demonstration: check the binary, pick a
// schema, generate code and print it, then show the type mappings.
//
// Steps run strictly in order and each child process is waited on before the
// next step starts. A missing file or a failed generation ends the run with
// an error; the mappings query never does.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"xsddemo/internal/config"
	"xsddemo/internal/fsutil"
	"xsddemo/internal/gocheck"
	"xsddemo/internal/generator"
	"xsddemo/internal/report"
)

var log = logging.Logger("xsddemo/demo")

// Separator frames the generated source when it is printed.
var Separator = strings.Repeat("=", 50)

var (
	// ErrBinaryNotFound means the xsd2code executable is absent.
	ErrBinaryNotFound = errors.New("xsd2code binary not found")
	// ErrSchemaNotFound means none of the schema candidates exist.
	ErrSchemaNotFound = errors.New("no XSD schema found")
	// ErrGenerateFailed wraps a non-zero exit of the generate invocation.
	ErrGenerateFailed = errors.New("code generation failed")
)

// Demo holds one configured demonstration.
type Demo struct {
	cfg  *config.Config
	tool *generator.Tool
	out  io.Writer
}

// New returns a Demo printing to stdout. The generator's own stdout and
// stderr go to stdout and stderr as well.
func New(cfg *config.Config, stdout, stderr io.Writer) *Demo {
	tool := generator.New(cfg.Binary)
	tool.Stdout = stdout
	tool.Stderr = stderr
	return &Demo{cfg: cfg, tool: tool, out: stdout}
}

// Check verifies the binary exists and returns the first existing schema
// candidate. The binary is checked first.
func (d *Demo) Check() (string, error) {
	if !fsutil.FileExists(d.cfg.Binary) {
		return "", fmt.Errorf("%w at %s (build it first: go build -o xsd2code ./cmd)", ErrBinaryNotFound, d.cfg.Binary)
	}
	schema, ok := fsutil.FirstExisting(d.cfg.Schemas)
	if !ok {
		return "", fmt.Errorf("%w: tried %s", ErrSchemaNotFound, strings.Join(d.cfg.Schemas, ", "))
	}
	log.Debugw("resolved schema", "schema", schema)
	return schema, nil
}

// Run performs the full demonstration.
func (d *Demo) Run(ctx context.Context) (err error) {
	rep := &report.Report{
		Binary:  d.cfg.Binary,
		Lang:    d.cfg.Lang,
		Output:  d.cfg.Output,
		Started: time.Now(),
	}
	if d.cfg.Report != "" {
		defer func() {
			rep.Duration = time.Since(rep.Started)
			if err != nil {
				rep.Error = err.Error()
			}
			if werr := report.Write(d.cfg.Report, rep); werr != nil {
				log.Errorw("cannot write run report", "path", d.cfg.Report, "err", werr)
			}
		}()
	}

	lang := generator.DisplayName(d.cfg.Lang)
	fmt.Fprintf(d.out, "=== xsd2code %s code generation demo ===\n\n", lang)

	schema, err := d.Check()
	if err != nil {
		return err
	}
	rep.Schema = schema

	if err := d.generate(ctx, schema, lang, rep); err != nil {
		return err
	}
	d.verify(rep)
	d.mappings(ctx, schema, lang, rep)

	fmt.Fprintf(d.out, "\n=== Demo complete ===\n")
	return nil
}

// Mappings checks the binary and schema, then runs only the show-mappings
// query. Unlike Run, a failed query is returned.
func (d *Demo) Mappings(ctx context.Context) error {
	schema, err := d.Check()
	if err != nil {
		return err
	}
	args := generator.MappingsArgs(schema, d.cfg.Lang)
	fmt.Fprintf(d.out, "%s type mappings:\n", generator.DisplayName(d.cfg.Lang))
	fmt.Fprintf(d.out, "   command: %s\n", d.tool.CommandLine(args))
	return d.tool.ShowMappings(ctx, schema, d.cfg.Lang)
}

func (d *Demo) generate(ctx context.Context, schema, lang string, rep *report.Report) error {
	req := generator.Request{
		XSD:     schema,
		Lang:    d.cfg.Lang,
		Output:  d.cfg.Output,
		Package: d.cfg.Package,
		JSON:    d.cfg.JSON,
	}
	cmdline := d.tool.CommandLine(req.Args())

	fmt.Fprintf(d.out, "1. Generating %s code...\n", lang)
	fmt.Fprintf(d.out, "   input:   %s\n", schema)
	fmt.Fprintf(d.out, "   output:  %s\n", d.cfg.Output)
	fmt.Fprintf(d.out, "   command: %s\n", cmdline)

	err := d.tool.Generate(ctx, req)
	rep.Generate = &report.Invocation{Command: cmdline, ExitCode: exitCode(err)}
	if err != nil {
		fmt.Fprintf(d.out, "✗ %s code generation failed\n", lang)
		return fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}
	fmt.Fprintf(d.out, "✓ %s code generated\n", lang)

	data, err := os.ReadFile(d.cfg.Output)
	if err != nil {
		// A zero exit without an output file is the generator's problem;
		// there is simply nothing to show.
		log.Warnw("generated output not readable", "path", d.cfg.Output, "err", err)
		return nil
	}
	rep.OutputBytes = int64(len(data))
	printFramed(d.out, fmt.Sprintf("Generated %s code:", lang), data)
	return nil
}

// verify checks generated Go output when asked to. Problems are warnings.
func (d *Demo) verify(rep *report.Report) {
	if !d.cfg.Verify || d.cfg.Lang != "go" || !fsutil.FileExists(d.cfg.Output) {
		return
	}
	res, err := gocheck.File(d.cfg.Output)
	switch {
	case err != nil:
		rep.VerifyError = err.Error()
		fmt.Fprintf(d.out, "⚠ generated Go code does not parse: %v\n", err)
	case !res.Formatted:
		rep.VerifyError = "not gofmt-formatted"
		fmt.Fprintf(d.out, "⚠ generated Go code is not gofmt-formatted\n")
	default:
		fmt.Fprintf(d.out, "✓ generated Go code is well-formed\n")
	}
}

func (d *Demo) mappings(ctx context.Context, schema, lang string, rep *report.Report) {
	args := generator.MappingsArgs(schema, d.cfg.Lang)
	cmdline := d.tool.CommandLine(args)
	fmt.Fprintf(d.out, "\n2. %s type mappings:\n", lang)
	fmt.Fprintf(d.out, "   command: %s\n", cmdline)

	err := d.tool.ShowMappings(ctx, schema, d.cfg.Lang)
	rep.Mappings = &report.Invocation{Command: cmdline, ExitCode: exitCode(err)}
	if err != nil {
		log.Warnw("show-mappings failed", "err", err)
	}
}

// printFramed writes title, then data verbatim between two separator lines.
func printFramed(w io.Writer, title string, data []byte) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, Separator)
	fmt.Fprintf(w, "%s", data)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, Separator)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *generator.ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return -1
}
