// Package gocheck checks generated Go source the way gofmt/goimports would
// see it.
package gocheck

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/tools/imports"
)

// Result describes one checked file.
type Result struct {
	// Formatted is true when the file is already goimports-clean.
	Formatted bool
}

// File parses and formats the Go file at path. A syntax error is returned
// as an error; a file that parses but is not formatted yields
// Result{Formatted: false}.
func File(path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Source(path, src)
}

// Source is File for in-memory source; filename is used in error positions.
func Source(filename string, src []byte) (Result, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("gocheck: %w", err)
	}
	return Result{Formatted: bytes.Equal(out, src)}, nil
}
