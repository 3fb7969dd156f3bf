package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how results are printed.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

func parseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (text, json, yaml)", s)
	}
}

// field is one line of text output.
type field struct {
	name  string
	value string
}

// texter is implemented by every result printed by the CLI.
type texter interface {
	textFields() []field
}

// Printer writes results in the configured format.
type Printer struct {
	format OutputFormat
	w      io.Writer
}

// NewPrinter returns a Printer; unknown formats fall back to text.
func NewPrinter(format string, w io.Writer) *Printer {
	f, err := parseOutputFormat(format)
	if err != nil {
		f = OutputFormatText
	}
	return &Printer{format: f, w: w}
}

// Print writes v.
func (p *Printer) Print(v texter) error {
	switch p.format {
	case OutputFormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, f := range v.textFields() {
			if _, err := fmt.Fprintf(p.w, "%s: %s\n", f.name, f.value); err != nil {
				return err
			}
		}
		return nil
	}
}
