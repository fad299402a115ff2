// Package output writes matched entries and walk diagnostics.
package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/findr/internal/entry"
	"github.com/taigrr/findr/internal/types"
)

// Format selects how matches are written.
type Format string

const (
	// Plain writes one path per line.
	Plain Format = "plain"
	// Print0 terminates each path with a NUL byte, for xargs -0.
	Print0 Format = "print0"
	// YAML writes a stream of {path, kind} documents.
	YAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{Plain, Print0, YAML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q: must be one of plain, print0, yaml", s)
}

// Printer writes matches to w.
type Printer struct {
	w      io.Writer
	format Format
	enc    *yaml.Encoder
}

// New creates a Printer. An unknown format falls back to Plain.
func New(w io.Writer, format Format) *Printer {
	p := &Printer{w: w, format: format}
	if format == YAML {
		p.enc = yaml.NewEncoder(w)
		p.enc.SetIndent(2)
	}
	return p
}

// Print writes one match.
func (p *Printer) Print(e entry.Entry) error {
	switch p.format {
	case Print0:
		_, err := fmt.Fprintf(p.w, "%s\x00", e.Path)
		return err
	case YAML:
		return p.enc.Encode(types.Match{Path: e.Path, Kind: e.Kind.String()})
	default:
		_, err := fmt.Fprintln(p.w, e.Path)
		return err
	}
}

// Close finishes the output stream.
func (p *Printer) Close() error {
	if p.enc != nil {
		return p.enc.Close()
	}
	return nil
}

// Reporter returns an error sink that writes "prog: err" lines to w.
func Reporter(w io.Writer, prog string) func(error) {
	return func(err error) {
		fmt.Fprintf(w, "%s: %v\n", prog, err)
	}
}
