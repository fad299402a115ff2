package main

import (
	"context"
	"log/slog"

	"github.com/taigrr/findr/internal/entry"
	"github.com/taigrr/findr/internal/finder"
	"github.com/taigrr/findr/internal/predicate"
	"github.com/taigrr/findr/internal/types"
)

// find builds the predicate set for params and runs it over params.Paths.
// Invalid types or patterns fail before anything is walked.
func find(
	ctx context.Context,
	params types.FindParams,
	logger *slog.Logger,
	emit finder.MatchFunc,
	report finder.ErrorFunc,
) (finder.Stats, error) {
	kinds, err := entry.ParseKinds(params.Types)
	if err != nil {
		return finder.Stats{}, err
	}

	set, err := predicate.Build(params.Names, kinds)
	if err != nil {
		return finder.Stats{}, err
	}

	f := finder.New(set,
		finder.WithMaxDepth(params.MaxDepth),
		finder.WithLogger(logger),
	)
	return f.Run(ctx, params.Paths, emit, report)
}
