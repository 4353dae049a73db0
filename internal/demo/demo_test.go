package demo_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"xsddemo/internal/config"
	"xsddemo/internal/demo"
	"xsddemo/internal/generator"
	"xsddemo/internal/report"
	"xsddemo/internal/testutil"
)

const pythonSource = `from dataclasses import dataclass


@dataclass
class Person:
    name: str
`

// setup returns a config pointing at fake with one existing schema.
func setup(t *testing.T, fake *testutil.FakeTool) *config.Config {
	t.Helper()
	dir := t.TempDir()
	schema := filepath.Join(dir, "test", "simple_types.xsd")
	testutil.WriteSchema(t, schema)

	cfg := config.Default()
	cfg.Schemas = []string{schema, filepath.Join(dir, "examples", "person.xsd")}
	cfg.Output = filepath.Join(dir, "models.py")
	if fake != nil {
		cfg.Binary = fake.Path
	} else {
		cfg.Binary = filepath.Join(dir, "xsd2code")
	}
	return cfg
}

func run(t *testing.T, cfg *config.Config) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := demo.New(cfg, &stdout, &stderr).Run(context.Background())
	return stdout.String(), err
}

func TestMissingBinary(t *testing.T) {
	cfg := setup(t, nil)
	out, err := run(t, cfg)
	require.ErrorIs(t, err, demo.ErrBinaryNotFound)
	require.Contains(t, err.Error(), cfg.Binary)
	require.NotContains(t, out, "1. Generating")
}

func TestMissingBinaryCheckedBeforeSchema(t *testing.T) {
	cfg := setup(t, nil)
	cfg.Schemas = []string{filepath.Join(t.TempDir(), "none.xsd")}
	_, err := run(t, cfg)
	require.ErrorIs(t, err, demo.ErrBinaryNotFound)
}

func TestDanglingBinaryLinkIsMissing(t *testing.T) {
	cfg := setup(t, nil)
	require.NoError(t, os.Symlink(filepath.Join(t.TempDir(), "gone"), cfg.Binary))

	out, err := run(t, cfg)
	require.ErrorIs(t, err, demo.ErrBinaryNotFound)
	require.NotContains(t, out, "1. Generating")
}

func TestNoSchemaNeverInvokesBinary(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{Output: pythonSource})
	cfg := setup(t, fake)
	dir := t.TempDir()
	cfg.Schemas = []string{filepath.Join(dir, "a.xsd"), filepath.Join(dir, "b.xsd")}

	out, err := run(t, cfg)
	require.ErrorIs(t, err, demo.ErrSchemaNotFound)
	require.NotContains(t, out, "1. Generating")
	require.Empty(t, fake.Calls(t))
}

func TestSecondCandidateUsed(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{Output: pythonSource})
	cfg := setup(t, fake)
	second := filepath.Join(t.TempDir(), "person.xsd")
	testutil.WriteSchema(t, second)
	cfg.Schemas = []string{filepath.Join(t.TempDir(), "missing.xsd"), second}

	out, err := run(t, cfg)
	require.NoError(t, err)
	require.Contains(t, out, "input:   "+second)
	require.True(t, strings.HasPrefix(fake.Calls(t)[0], "-xsd="+second+" "))
}

func TestDanglingSchemaLinkFallsBack(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{Output: pythonSource})
	cfg := setup(t, fake)
	dir := t.TempDir()
	link := filepath.Join(dir, "simple_types.xsd")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.xsd"), link))
	second := filepath.Join(dir, "person.xsd")
	testutil.WriteSchema(t, second)
	cfg.Schemas = []string{link, second}

	_, err := run(t, cfg)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(fake.Calls(t)[0], "-xsd="+second+" "))
}

func TestGenerateFailureDoesNotPrintOutput(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{ExitCode: 1, Mappings: "MAPPINGS"})
	cfg := setup(t, fake)
	// A stale file from an earlier run must not be shown.
	require.NoError(t, os.WriteFile(cfg.Output, []byte("STALE"), 0o644))

	out, err := run(t, cfg)
	require.ErrorIs(t, err, demo.ErrGenerateFailed)

	var ee *generator.ExitError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, 1, ee.Code)

	require.Contains(t, out, "✗ Python code generation failed")
	require.NotContains(t, out, "STALE")
	require.NotContains(t, out, demo.Separator)
	require.NotContains(t, out, "MAPPINGS")
	require.Len(t, fake.Calls(t), 1)
}

func TestSuccessPrintsFramedOutputThenMappings(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{
		Output:   pythonSource,
		Mappings: "xs:string -> str\n",
	})
	cfg := setup(t, fake)

	out, err := run(t, cfg)
	require.NoError(t, err)

	framed := demo.Separator + "\n" + pythonSource + demo.Separator + "\n"
	require.Contains(t, out, framed)
	require.Contains(t, out, "✓ Python code generated")

	mapIdx := strings.Index(out, "2. Python type mappings:")
	require.Greater(t, mapIdx, strings.Index(out, framed))
	require.Greater(t, strings.Index(out, "xs:string -> str"), mapIdx)
	require.True(t, strings.HasSuffix(out, "=== Demo complete ===\n"))

	calls := fake.Calls(t)
	require.Len(t, calls, 2)
	require.Equal(t, "-xsd="+cfg.Schemas[0]+" -lang=python -output="+cfg.Output+" -package=models", calls[0])
	require.Equal(t, "-xsd="+cfg.Schemas[0]+" -lang=python -show-mappings", calls[1])
}

func TestOutputWithoutTrailingNewline(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{Output: "x = 1"})
	cfg := setup(t, fake)

	out, err := run(t, cfg)
	require.NoError(t, err)
	require.Contains(t, out, demo.Separator+"\nx = 1\n"+demo.Separator+"\n")
}

func TestMappingsFailureIsIgnored(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{Output: pythonSource, MappingsExitCode: 4})
	cfg := setup(t, fake)

	_, err := run(t, cfg)
	require.NoError(t, err)
	require.Len(t, fake.Calls(t), 2)
}

func TestZeroExitWithoutOutputFile(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{SkipOutput: true})
	cfg := setup(t, fake)

	out, err := run(t, cfg)
	require.NoError(t, err)
	require.NotContains(t, out, demo.Separator)
	require.Len(t, fake.Calls(t), 2)
}

func TestJSONFlagPassedThrough(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{Output: pythonSource})
	cfg := setup(t, fake)
	cfg.JSON = true

	_, err := run(t, cfg)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(fake.Calls(t)[0], " -package=models -json"))
}

func TestVerifyGoOutput(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"clean", "package models\n\ntype Person struct {\n\tName string\n}\n", "✓ generated Go code is well-formed"},
		{"unformatted", "package models\ntype Person struct{Name string}\n", "not gofmt-formatted"},
		{"broken", "package models\ntype Person struct {\n", "does not parse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := testutil.NewFakeTool(t, testutil.FakeOptions{Output: tc.source})
			cfg := setup(t, fake)
			cfg.Lang = "go"
			cfg.Output = filepath.Join(t.TempDir(), "models.go")
			cfg.Verify = true

			out, err := run(t, cfg)
			require.NoError(t, err)
			require.Contains(t, out, tc.want)
		})
	}
}

func TestVerifyIgnoredForOtherLanguages(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{Output: pythonSource})
	cfg := setup(t, fake)
	cfg.Verify = true

	out, err := run(t, cfg)
	require.NoError(t, err)
	require.NotContains(t, out, "Go code")
}

func TestReportWritten(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{Output: pythonSource, MappingsExitCode: 2})
	cfg := setup(t, fake)
	cfg.Report = filepath.Join(t.TempDir(), "report.json")

	_, err := run(t, cfg)
	require.NoError(t, err)

	rep, err := report.Read(cfg.Report)
	require.NoError(t, err)
	require.Equal(t, cfg.Schemas[0], rep.Schema)
	require.NotNil(t, rep.Generate)
	require.Equal(t, 0, rep.Generate.ExitCode)
	require.NotNil(t, rep.Mappings)
	require.Equal(t, 2, rep.Mappings.ExitCode)
	require.Equal(t, int64(len(pythonSource)), rep.OutputBytes)
	require.Empty(t, rep.Error)
}

func TestReportWrittenOnFailure(t *testing.T) {
	cfg := setup(t, nil)
	cfg.Report = filepath.Join(t.TempDir(), "report.json")

	_, err := run(t, cfg)
	require.Error(t, err)

	rep, err := report.Read(cfg.Report)
	require.NoError(t, err)
	require.Contains(t, rep.Error, "xsd2code binary not found")
	require.Nil(t, rep.Generate)
}

func TestMappingsOnly(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{Mappings: "xs:int -> int\n"})
	cfg := setup(t, fake)

	var stdout bytes.Buffer
	d := demo.New(cfg, &stdout, &bytes.Buffer{})
	require.NoError(t, d.Mappings(context.Background()))
	require.Contains(t, stdout.String(), "xs:int -> int")
	require.Equal(t, []string{"-xsd=" + cfg.Schemas[0] + " -lang=python -show-mappings"}, fake.Calls(t))
}

func TestMappingsOnlyFailure(t *testing.T) {
	fake := testutil.NewFakeTool(t, testutil.FakeOptions{MappingsExitCode: 3})
	cfg := setup(t, fake)

	d := demo.New(cfg, &bytes.Buffer{}, &bytes.Buffer{})
	var ee *generator.ExitError
	require.ErrorAs(t, d.Mappings(context.Background()), &ee)
	require.Equal(t, 3, ee.Code)
}
