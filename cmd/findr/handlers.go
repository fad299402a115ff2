package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/findr/internal/entry"
	"github.com/taigrr/findr/internal/types"
	"github.com/taigrr/findr/internal/uri"
)

const defaultLimit = 1000

var errLimit = errors.New("match limit reached")

func handleFind(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindOutput, error) {
	roots := make([]string, 0, len(input.Paths))
	for _, p := range input.Paths {
		resolved, err := resolvePath(p)
		if err != nil {
			return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
		}
		roots = append(roots, resolved)
	}
	if len(roots) == 0 {
		roots = append(roots, baseDir)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	names := input.Names
	if len(names) == 0 {
		names = serveDefaults.Names
	}
	kinds := input.Types
	if len(kinds) == 0 {
		kinds = serveDefaults.Types
	}
	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = serveDefaults.MaxDepth
	}
	if maxDepth <= 0 {
		maxDepth = -1
	}

	out := FindOutput{Matches: []types.Match{}}
	stats, err := find(ctx, types.FindParams{
		Paths:    roots,
		Names:    names,
		Types:    kinds,
		MaxDepth: maxDepth,
	}, serveLogger,
		func(e entry.Entry) error {
			if len(out.Matches) >= limit {
				out.Truncated = true
				return errLimit
			}
			out.Matches = append(out.Matches, types.Match{
				Path: relativePath(e.Path),
				Kind: e.Kind.String(),
				URI:  uri.FileURI(baseDir, e.Path),
			})
			return nil
		},
		func(err error) {
			out.Errors = append(out.Errors, err.Error())
		})
	if err != nil && !errors.Is(err, errLimit) {
		return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
	}

	out.Visited = stats.Visited
	return nil, out, nil
}

// resolvePath resolves a path relative to the served directory and rejects
// anything outside it, including paths that reach outside through a
// symbolic link. A path that does not exist is returned as is so the walk
// can report it.
func resolvePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "/")

	absPath := filepath.Join(baseDir, p)
	if !within(baseDir, absPath) {
		return "", fmt.Errorf("path traversal not allowed: %s", p)
	}

	target, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return absPath, nil
	}
	realBase, err := filepath.EvalSymlinks(baseDir)
	if err != nil {
		realBase = baseDir
	}
	if !within(realBase, target) {
		return "", fmt.Errorf("path traversal not allowed: %s", p)
	}
	return absPath, nil
}

// within reports whether path is dir or lies beneath it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// relativePath reports p relative to the served directory.
func relativePath(p string) string {
	rel, err := filepath.Rel(baseDir, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}
