package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/findr/internal/types"
)

func setupServedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "root")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", ".hidden"), []byte("h"), 0o644))

	prevDir, prevDefaults := baseDir, serveDefaults
	baseDir = dir
	serveDefaults = types.FindParams{MaxDepth: -1}
	t.Cleanup(func() {
		baseDir = prevDir
		serveDefaults = prevDefaults
	})
	return dir
}

func TestHandleFind_TxtFiles(t *testing.T) {
	dir := setupServedDir(t)

	result, out, err := handleFind(context.Background(), nil, FindInput{
		Paths: []string{"root"},
		Names: []string{`\.txt$`},
		Types: []string{"f"},
	})
	require.NoError(t, err)
	assert.Nil(t, result)

	require.Len(t, out.Matches, 2)
	assert.Equal(t, "root/a.txt", out.Matches[0].Path)
	assert.Equal(t, "root/sub/b.txt", out.Matches[1].Path)
	assert.Equal(t, "file", out.Matches[0].Kind)
	assert.True(t, strings.HasPrefix(out.Matches[0].URI, "file:///"))
	assert.True(t, strings.HasSuffix(out.Matches[0].URI, "/root/a.txt"))
	assert.Contains(t, out.Matches[0].URI, filepath.ToSlash(filepath.Base(dir)))
	assert.Empty(t, out.Errors)
	assert.False(t, out.Truncated)
	assert.Equal(t, 5, out.Visited)
}

func TestHandleFind_DefaultsToServedDirectory(t *testing.T) {
	setupServedDir(t)

	_, out, err := handleFind(context.Background(), nil, FindInput{Types: []string{"d"}})
	require.NoError(t, err)

	paths := make([]string, len(out.Matches))
	for i, m := range out.Matches {
		paths[i] = m.Path
	}
	assert.Equal(t, []string{".", "root", "root/sub"}, paths)
}

func TestHandleFind_Limit(t *testing.T) {
	setupServedDir(t)

	_, out, err := handleFind(context.Background(), nil, FindInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Matches, 2)
	assert.True(t, out.Truncated)

	_, out, err = handleFind(context.Background(), nil, FindInput{Limit: 6})
	require.NoError(t, err)
	assert.Len(t, out.Matches, 6)
	assert.False(t, out.Truncated)
}

func TestHandleFind_MaxDepth(t *testing.T) {
	setupServedDir(t)

	_, out, err := handleFind(context.Background(), nil, FindInput{
		Paths:    []string{"root"},
		MaxDepth: 1,
	})
	require.NoError(t, err)
	assert.Len(t, out.Matches, 3)
}

func TestHandleFind_MissingRootReported(t *testing.T) {
	setupServedDir(t)

	result, out, err := handleFind(context.Background(), nil, FindInput{
		Paths: []string{"missing", "root"},
		Types: []string{"d"},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "missing")
	assert.Len(t, out.Matches, 2)
}

func TestHandleFind_InvalidInput(t *testing.T) {
	setupServedDir(t)

	tests := []struct {
		name  string
		input FindInput
		want  string
	}{
		{"bad pattern", FindInput{Names: []string{"("}}, `invalid name pattern "("`},
		{"bad type", FindInput{Types: []string{"x"}}, `invalid entry type "x"`},
		{"escaping path", FindInput{Paths: []string{"../.."}}, "path traversal not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, out, err := handleFind(context.Background(), nil, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			assert.Empty(t, out.Matches)
		})
	}
}

func TestResolvePath(t *testing.T) {
	dir := setupServedDir(t)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"root", filepath.Join(dir, "root"), false},
		{"/root", filepath.Join(dir, "root"), false},
		{" root/sub ", filepath.Join(dir, "root", "sub"), false},
		{"", dir, false},
		{"..", "", true},
		{"root/../../x", "", true},
		{"..foo", filepath.Join(dir, "..foo"), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := resolvePath(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleFind_ConfiguredDefaults(t *testing.T) {
	setupServedDir(t)
	serveDefaults = types.FindParams{
		Names:    []string{`^b`, `^sub$`},
		Types:    []string{"f"},
		MaxDepth: 1,
	}

	_, out, err := handleFind(context.Background(), nil, FindInput{Paths: []string{"root"}})
	require.NoError(t, err)
	assert.Empty(t, out.Matches, "b.txt lies below the configured depth")

	_, out, err = handleFind(context.Background(), nil, FindInput{
		Paths:    []string{"root"},
		MaxDepth: 5,
	})
	require.NoError(t, err)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "root/sub/b.txt", out.Matches[0].Path)

	_, out, err = handleFind(context.Background(), nil, FindInput{
		Paths: []string{"root"},
		Types: []string{"d"},
	})
	require.NoError(t, err)
	require.Len(t, out.Matches, 1, "tool input replaces the configured types")
	assert.Equal(t, "root/sub", out.Matches[0].Path)
}

func TestResolvePath_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := setupServedDir(t)
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "out")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "root"), filepath.Join(dir, "in")))

	_, err := resolvePath("out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path traversal not allowed")

	got, err := resolvePath("in")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "in"), got)

	got, err = resolvePath("missing")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "missing"), got)

	result, _, err := handleFind(context.Background(), nil, FindInput{Paths: []string{"out"}})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
