package main

import (
	"context"
	"log/slog"
	"os"
	"runtime/pprof"
)

// profiler runs one profile from construction until [profiler.Stop]. An
// empty path disables it.
//
//nolint:containedctx
type profiler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
}

func startProfiler(ctx context.Context, path string, run func(ctx context.Context, path string)) *profiler {
	prof := &profiler{doneChan: make(chan struct{})}
	prof.ctx, prof.cancel = context.WithCancel(ctx)

	go func() {
		defer close(prof.doneChan)

		if path == "" {
			return
		}
		run(prof.ctx, path)
	}()

	return prof
}

func (prof *profiler) Stop() {
	prof.cancel()
	<-prof.doneChan
}

// newCPUProfiler samples the CPU until stopped.
func newCPUProfiler(ctx context.Context, path string) *profiler {
	return startProfiler(ctx, path, func(ctx context.Context, path string) {
		f, err := os.Create(path)
		if err != nil {
			slog.Error("Could not create cpu profile", "path", path, "err", err)

			return
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			slog.Error("Could not start cpu profile", "path", path, "err", err)

			return
		}
		defer pprof.StopCPUProfile()

		<-ctx.Done()
	})
}

// newAllocProfiler writes the allocation profile once stopped.
func newAllocProfiler(ctx context.Context, path string) *profiler {
	return startProfiler(ctx, path, func(ctx context.Context, path string) {
		<-ctx.Done()

		f, err := os.Create(path)
		if err != nil {
			slog.Error("Could not create allocs profile", "path", path, "err", err)

			return
		}
		defer f.Close()

		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			slog.Error("Could not write allocs profile", "path", path, "err", err)
		}
	})
}
