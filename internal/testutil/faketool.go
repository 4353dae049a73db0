// Package testutil contains common utility functions for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// FakeOptions controls how a fake xsd2code binary behaves.
type FakeOptions struct {
	// ExitCode is returned by generate invocations.
	ExitCode int
	// Output is copied to the -output path when ExitCode is zero.
	// SkipOutput suppresses the copy even on success.
	Output     string
	SkipOutput bool
	// Mappings is printed to stdout by -show-mappings invocations,
	// which then exit with MappingsExitCode.
	Mappings         string
	MappingsExitCode int
}

// FakeTool is a shell script standing in for xsd2code.
type FakeTool struct {
	Path string
	log  string
}

// NewFakeTool writes a fake xsd2code script into a temp dir. Every
// invocation appends its arguments, space separated, to a call log.
// Tests using it are skipped on Windows.
func NewFakeTool(t *testing.T, opts FakeOptions) *FakeTool {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake xsd2code is a /bin/sh script")
	}
	dir := t.TempDir()
	ft := &FakeTool{
		Path: filepath.Join(dir, "xsd2code"),
		log:  filepath.Join(dir, "calls.log"),
	}
	outputData := filepath.Join(dir, "output.data")
	mappingsData := filepath.Join(dir, "mappings.data")
	writeFile(t, outputData, opts.Output, 0o644)
	writeFile(t, mappingsData, opts.Mappings, 0o644)

	copyOutput := "1"
	if opts.SkipOutput {
		copyOutput = ""
	}

	script := `#!/bin/sh
echo "$*" >> ` + quote(ft.log) + `
out=""
mappings=""
for a in "$@"; do
	case "$a" in
	-output=*) out="${a#-output=}" ;;
	-show-mappings) mappings=1 ;;
	esac
done
if [ -n "$mappings" ]; then
	cat ` + quote(mappingsData) + `
	exit ` + strconv.Itoa(opts.MappingsExitCode) + `
fi
echo "generating" >&2
code=` + strconv.Itoa(opts.ExitCode) + `
if [ "$code" -eq 0 ] && [ -n "` + copyOutput + `" ] && [ -n "$out" ]; then
	cp ` + quote(outputData) + ` "$out"
fi
exit $code
`
	writeFile(t, ft.Path, script, 0o755)
	return ft
}

// Calls returns the argument lines of every invocation so far.
func (f *FakeTool) Calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.log)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read call log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// WriteSchema creates a placeholder XSD file at path, creating parents.
func WriteSchema(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"/>`, 0o644)
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
