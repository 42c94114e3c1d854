package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// printResult writes v to w as indented JSON or YAML.
func printResult(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "output: encode json")
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "output: flush yaml")
		}
	default:
		return eris.Errorf("output: unsupported format %q (want json or yaml)", format)
	}
	return nil
}
