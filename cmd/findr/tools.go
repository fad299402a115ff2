package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/findr/internal/types"
)

type (
	// FindInput contains parameters for finding entries.
	FindInput struct {
		Paths    []string `json:"paths,omitempty" jsonschema:"Paths to search, relative to the served directory (default: the served directory)"`
		Names    []string `json:"names,omitempty" jsonschema:"Regular expressions tested against entry base names; any may match (default: all names)"`
		Types    []string `json:"types,omitempty" jsonschema:"Entry types to include: d (directory), f (file), l (symlink or other) (default: all types)"`
		MaxDepth int      `json:"maxDepth,omitempty" jsonschema:"Descend at most this many levels below each path (default: unlimited)"`
		Limit    int      `json:"limit,omitempty" jsonschema:"Maximum matches to return (default: 1000)"`
	}

	// FindOutput contains find results.
	FindOutput struct {
		Matches   []types.Match `json:"matches"`
		Errors    []string      `json:"errors,omitempty"`
		Visited   int           `json:"visited"`
		Truncated bool          `json:"truncated,omitempty"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find",
		Description: "Recursively find files, directories and symlinks. Name patterns are OR'd, types are OR'd, and the two groups are AND'd. Unreadable directories are listed in errors and do not stop the search.",
	}, handleFind)
}
