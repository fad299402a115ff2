// Package types holds the request and result shapes shared by the CLI and
// the MCP tool.
package types

type (
	// FindParams contains parameters for one find run.
	FindParams struct {
		Paths    []string `json:"paths"`
		Names    []string `json:"names,omitempty"`
		Types    []string `json:"types,omitempty"`
		MaxDepth int      `json:"maxDepth,omitempty"`
	}

	// Match is one reported entry.
	Match struct {
		Path string `json:"path" yaml:"path"`
		Kind string `json:"kind" yaml:"kind"`
		URI  string `json:"uri,omitempty" yaml:"uri,omitempty"`
	}
)
