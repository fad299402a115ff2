// Package uri provides file URI generation for reported entries.
package uri

import (
	"net/url"
	"path/filepath"
	"strings"
)

// FileURI generates a file URI for path. Relative paths are resolved against
// baseDir. Uses the absolute path format: file:///absolute/path/to/entry
func FileURI(baseDir, path string) string {
	absolutePath := path
	if !filepath.IsAbs(absolutePath) {
		absolutePath = filepath.Join(baseDir, path)
	}
	absolutePath = filepath.ToSlash(filepath.Clean(absolutePath))

	// URI encode each segment, but keep slashes as slashes
	parts := strings.Split(absolutePath, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	encodedPath := strings.Join(parts, "/")

	// Windows volumes have no leading slash
	encodedPath = strings.TrimPrefix(encodedPath, "/")

	return "file:///" + encodedPath
}
