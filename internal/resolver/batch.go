package resolver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hanayashiki/es-resolve/internal/fs"
	"github.com/hanayashiki/es-resolve/internal/logger"
)

// Request is one unit of work for BatchResolve: resolve Target as written in
// From, under Env.
type Request struct {
	Target string
	From   string
	Env    TargetEnv
}

// Result is a Request's outcome: exactly one of Path or Err is set.
type Result struct {
	Path string
	Err  error
}

// BatchResolve resolves every request concurrently (spec §5 permits this:
// Resolve has no shared mutable state, so N requests may run on N
// goroutines), returning results in the same order as requests. Each
// goroutine gets its own Resolver sharing the same fs and options, since
// Resolver carries no mutable state of its own.
//
// log receives diagnostics from every goroutine; callers needing to tell
// messages apart by request should pass logger.Discard here and inspect
// Result.Err instead, since Log implementations are not required to be
// concurrency-safe beyond what TerminalLog and DeferredLog already provide.
func BatchResolve(ctx context.Context, fsys fs.FS, log logger.Log, options Options, requests []Request) ([]Result, error) {
	results := make([]Result, len(requests))

	group, ctx := errgroup.WithContext(ctx)

	for i, req := range requests {
		i, req := i, req
		group.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			r := NewWithOptions(fsys, log, options)
			path, err := r.Resolve(req.Target, req.From, req.Env)
			results[i] = Result{Path: path, Err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
