// Package walker produces the entries beneath a root path as a lazy sequence.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"

	"kr.dev/walk"

	"github.com/taigrr/findr/internal/entry"
)

// TraversalError reports a path beneath a root that could not be read.
// The walk continues after it.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, cause(e.Err))
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// RootError reports a root path that could not be opened or read.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, cause(e.Err))
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// cause drops the *fs.PathError wrapper, whose path would repeat ours.
func cause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Option configures a walk.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth stops descent below depth n; the root is depth 0.
// A negative n means no limit.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// Walk returns the entries at and beneath root in depth-first pre-order,
// siblings sorted by name. Errors are yielded in place of an entry and do not
// end the walk, except a *RootError for a root that cannot be stat'd, which is
// the only value yielded.
//
// Nothing is read until the sequence is ranged over, and breaking out of the
// range stops all further reads.
//
// Kinds are resolved without following symbolic links, and links are never
// descended into, so a link pointing at an ancestor cannot cause a cycle. A
// root that is itself a link to a directory is reported as Other and walked.
func Walk(root string, opts ...Option) iter.Seq2[entry.Entry, error] {
	o := options{maxDepth: -1}
	for _, opt := range opts {
		opt(&o)
	}

	return func(yield func(entry.Entry, error) bool) {
		info, err := os.Lstat(root)
		if err != nil {
			yield(entry.Entry{}, &RootError{Path: root, Err: err})
			return
		}

		top := entry.Entry{
			Path: root,
			Name: filepath.Base(root),
			Kind: entry.KindOf(info.Mode()),
		}
		if !yield(top, nil) {
			return
		}
		if o.maxDepth == 0 || !isDir(root, info) {
			return
		}

		w := walk.New(os.DirFS(root), ".")
		for w.Next() {
			p := w.Path()
			if err := w.Err(); err != nil {
				var werr error = &TraversalError{Path: join(root, p), Err: err}
				if p == "." {
					werr = &RootError{Path: root, Err: err}
				}
				if !yield(entry.Entry{}, werr) {
					return
				}
				continue
			}
			if p == "." {
				continue
			}

			d := w.Entry()
			depth := strings.Count(p, "/") + 1
			if o.maxDepth > 0 && depth >= o.maxDepth && d.IsDir() {
				w.SkipDir()
			}

			e := entry.Entry{
				Path:  join(root, p),
				Name:  path.Base(p),
				Kind:  entry.KindOf(d.Type()),
				Depth: depth,
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// isDir reports whether the root should be descended into. Root links are
// followed for traversal only.
func isDir(root string, info fs.FileInfo) bool {
	if info.IsDir() {
		return true
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(root)
	return err == nil && target.IsDir()
}

// join prefixes a slash-separated path from the walk with the root as the
// caller spelled it.
func join(root, p string) string {
	if p == "." {
		return root
	}
	p = filepath.FromSlash(p)
	if os.IsPathSeparator(root[len(root)-1]) {
		return root + p
	}
	return root + string(filepath.Separator) + p
}
