// Package config loads xsddemo settings from .xsddemo.yaml.
//
// Every key is optional; keys absent from the file keep their defaults, which
// reproduce the stock python demonstration:
//
//	binary:  ./xsd2code
//	schemas: [test/simple_types.xsd, examples/person.xsd]
//	lang:    python
//	output:  examples/python_demo.py
//	package: models
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = ".xsddemo.yaml"

var (
	// ErrConfigExists is returned by Save when the target file is present.
	ErrConfigExists = errors.New("configuration file already exists")
	// ErrInvalid is returned by Validate for a missing required setting.
	ErrInvalid = errors.New("invalid configuration")
)

// Config describes one demonstration run.
type Config struct {
	// Binary is the path to the pre-built xsd2code executable.
	Binary string `yaml:"binary"`
	// Schemas are candidate XSD inputs; the first that exists is used.
	Schemas []string `yaml:"schemas"`
	Lang    string   `yaml:"lang"`
	Output  string   `yaml:"output"`
	Package string   `yaml:"package"`

	// JSON asks the generator for JSON-compatible tags.
	JSON bool `yaml:"json,omitempty"`
	// Verify runs generated Go output through goimports.
	Verify bool `yaml:"verify,omitempty"`
	// Report, when set, is where the JSON run report is written.
	Report string `yaml:"report,omitempty"`
}

// Default returns the stock demonstration settings.
func Default() *Config {
	return &Config{
		Binary:  "./xsd2code",
		Schemas: []string{"test/simple_types.xsd", "examples/person.xsd"},
		Lang:    "python",
		Output:  "examples/python_demo.py",
		Package: "models",
	}
}

// Load reads the YAML config at path, or DefaultFile when path is empty.
// A missing file is not an error: the defaults are returned instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c as YAML to path. Errors if the file already exists.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultFile
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Expand resolves a leading ~ in every path field.
func (c *Config) Expand() error {
	var err error
	if c.Binary, err = homedir.Expand(c.Binary); err != nil {
		return fmt.Errorf("binary: %w", err)
	}
	for i, s := range c.Schemas {
		if c.Schemas[i], err = homedir.Expand(s); err != nil {
			return fmt.Errorf("schema %q: %w", s, err)
		}
	}
	if c.Output, err = homedir.Expand(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if c.Report, err = homedir.Expand(c.Report); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// Validate checks that every field the generator contract needs is set.
func (c *Config) Validate() error {
	switch {
	case c.Binary == "":
		return fmt.Errorf("%w: binary not set", ErrInvalid)
	case len(c.Schemas) == 0:
		return fmt.Errorf("%w: no schema candidates", ErrInvalid)
	case c.Lang == "":
		return fmt.Errorf("%w: lang not set", ErrInvalid)
	case c.Output == "":
		return fmt.Errorf("%w: output not set", ErrInvalid)
	case c.Package == "":
		return fmt.Errorf("%w: package not set", ErrInvalid)
	}
	return nil
}
