// Package finder runs a walk over each root path and reports the entries
// that pass a predicate set.
package finder

import (
	"context"
	"io"
	"log/slog"

	"github.com/taigrr/findr/internal/entry"
	"github.com/taigrr/findr/internal/predicate"
	"github.com/taigrr/findr/internal/walker"
)

// MatchFunc receives every matching entry in walk order. Returning an error
// stops the run; the error is returned from Run unchanged.
type MatchFunc func(entry.Entry) error

// ErrorFunc receives every walk error: *walker.RootError or
// *walker.TraversalError.
type ErrorFunc func(error)

// Stats summarises a run.
type Stats struct {
	Roots   int
	Visited int
	Matched int
	Errors  int
}

// Finder walks roots and filters entries through a predicate set.
type Finder struct {
	set      predicate.Set
	maxDepth int
	logger   *slog.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithMaxDepth limits how deep below each root the walk descends.
func WithMaxDepth(n int) Option {
	return func(f *Finder) {
		f.maxDepth = n
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(f *Finder) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a Finder for a predicate set built with predicate.Build.
func New(set predicate.Set, opts ...Option) *Finder {
	f := &Finder{
		set:      set,
		maxDepth: -1,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run walks every root in order, fully finishing one before starting the
// next. Walk errors go to report and never stop the run. Run returns early
// only when emit fails or ctx is done. An empty root list walks ".".
func (f *Finder) Run(ctx context.Context, roots []string, emit MatchFunc, report ErrorFunc) (Stats, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	if report == nil {
		report = func(error) {}
	}

	f.logger.Debug("starting run",
		"roots", len(roots),
		"names", f.set.Names.Patterns(),
		"kinds", f.set.Kinds,
		"max_depth", f.maxDepth)

	var stats Stats
	for _, root := range roots {
		stats.Roots++
		f.logger.Debug("walking root", "root", root)

		for e, err := range walker.Walk(root, walker.WithMaxDepth(f.maxDepth)) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stats, ctxErr
			}
			if err != nil {
				stats.Errors++
				f.logger.Debug("walk error", "root", root, "err", err)
				report(err)
				continue
			}

			stats.Visited++
			if !f.set.Matches(e) {
				continue
			}
			stats.Matched++
			if err := emit(e); err != nil {
				return stats, err
			}
		}

		f.logger.Debug("finished root", "root", root, "visited", stats.Visited, "matched", stats.Matched)
	}

	return stats, nil
}
