// Package generator drives a pre-built xsd2code binary through its
// command-line contract:
//
//	<binary> -xsd=<path> -lang=<name> -output=<path> -package=<name>
//	<binary> -xsd=<path> -lang=<name> -show-mappings
//
// The binary is opaque. Success is a zero exit status; anything else is an
// *ExitError. Its stdout and stderr are passed through unchanged.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("xsddemo/generator")

// Request holds the inputs of one generate invocation.
type Request struct {
	XSD     string
	Lang    string
	Output  string
	Package string
	// JSON appends -json after the contract flags.
	JSON bool
}

// Args returns the generate argv, contract flags first and in fixed order.
func (r Request) Args() []string {
	args := []string{
		"-xsd=" + r.XSD,
		"-lang=" + r.Lang,
		"-output=" + r.Output,
		"-package=" + r.Package,
	}
	if r.JSON {
		args = append(args, "-json")
	}
	return args
}

// MappingsArgs returns the argv of the show-mappings query.
func MappingsArgs(xsd, lang string) []string {
	return []string{"-xsd=" + xsd, "-lang=" + lang, "-show-mappings"}
}

// ExitError reports that the binary did not exit cleanly. Code is -1 when
// the process could not be started or was killed by a signal.
type ExitError struct {
	Args []string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("xsd2code %s: %v", strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("xsd2code %s: exit status %d", strings.Join(e.Args, " "), e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Tool runs one xsd2code binary.
type Tool struct {
	// Binary is the path exec runs. A bare name is made relative to the
	// working directory so that it is never resolved through $PATH.
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Tool writing child output to os.Stdout and os.Stderr.
func New(binary string) *Tool {
	if binary != "" && !filepath.IsAbs(binary) && !strings.ContainsRune(binary, filepath.Separator) {
		binary = "." + string(filepath.Separator) + binary
	}
	return &Tool{
		Binary: binary,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// CommandLine renders args as the single line a user would type.
func (t *Tool) CommandLine(args []string) string {
	return strings.Join(append([]string{t.Binary}, args...), " ")
}

// Generate runs the generate form and waits for it to exit.
func (t *Tool) Generate(ctx context.Context, req Request) error {
	return t.run(ctx, req.Args())
}

// ShowMappings runs the show-mappings query. The mapping table is written by
// the binary itself to t.Stdout.
func (t *Tool) ShowMappings(ctx context.Context, xsd, lang string) error {
	return t.run(ctx, MappingsArgs(xsd, lang))
}

func (t *Tool) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, t.Binary, args...)
	cmd.Stdout = t.Stdout
	cmd.Stderr = t.Stderr

	log.Debugw("running xsd2code", "binary", t.Binary, "args", args)
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		log.Debugw("xsd2code failed", "code", ee.ExitCode())
		return &ExitError{Args: args, Code: ee.ExitCode(), Err: err}
	}
	return &ExitError{Args: args, Code: -1, Err: err}
}
