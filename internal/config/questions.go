package config

import "strings"

// Question describes a single prompt asked by `xsddemo init`.
type Question struct {
	Key     string
	Prompt  string
	Default string
}

// Questions returns the init prompts, pre-filled from c.
func (c *Config) Questions() []Question {
	return []Question{
		{Key: "binary", Prompt: "Path to xsd2code binary", Default: c.Binary},
		{Key: "schemas", Prompt: "Schema candidates (comma separated)", Default: strings.Join(c.Schemas, ",")},
		{Key: "lang", Prompt: "Target language", Default: c.Lang},
		{Key: "output", Prompt: "Output file", Default: c.Output},
		{Key: "package", Prompt: "Package name", Default: c.Package},
	}
}

// Apply copies non-empty answers, keyed by Question.Key, into c.
func (c *Config) Apply(answers map[string]string) {
	for key, val := range answers {
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		switch key {
		case "binary":
			c.Binary = val
		case "schemas":
			var schemas []string
			for _, s := range strings.Split(val, ",") {
				if s = strings.TrimSpace(s); s != "" {
					schemas = append(schemas, s)
				}
			}
			if len(schemas) != 0 {
				c.Schemas = schemas
			}
		case "lang":
			c.Lang = val
		case "output":
			c.Output = val
		case "package":
			c.Package = val
		}
	}
}
