// Package report records the outcome of one demonstration run as JSON.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// Invocation is one call to the external generator.
type Invocation struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
}

// Report summarises a run. Zero-valued sections mean the step was not
// reached.
type Report struct {
	Binary      string      `json:"binary"`
	Schema      string      `json:"schema,omitempty"`
	Lang        string      `json:"lang"`
	Output      string      `json:"output"`
	Generate    *Invocation `json:"generate,omitempty"`
	Mappings    *Invocation `json:"mappings,omitempty"`
	OutputBytes int64       `json:"output_bytes,omitempty"`
	// VerifyError is set when --verify found a problem in Go output.
	VerifyError string        `json:"verify_error,omitempty"`
	Started     time.Time     `json:"started"`
	Duration    time.Duration `json:"duration_ns"`
	Error       string        `json:"error,omitempty"`
}

// Marshal renders r as indented JSON.
func Marshal(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Write marshals r to path, replacing any previous report.
func Write(path string, r *Report) error {
	data, err := Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Read loads a report previously written by Write. Nothing in xsddemo reads
// reports back; it exists for tests and external tooling.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &r, nil
}
