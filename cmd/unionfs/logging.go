package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const (
	terminalLogHandler = "terminal"
	uiLogHandler       = "ui"
)

// logRouter is a [slog.Handler] fanning records out to a set of named
// handlers, which can be swapped at runtime. The browser uses this to move
// logging from the terminal into the UI and back.
type logRouter struct {
	mu       *sync.RWMutex
	handlers map[string]slog.Handler
	attrs    []slog.Attr
	groups   []string
}

func newLogRouter() *logRouter {
	return &logRouter{
		mu:       &sync.RWMutex{},
		handlers: make(map[string]slog.Handler),
	}
}

func (r *logRouter) Enabled(ctx context.Context, level slog.Level) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (r *logRouter) Handle(ctx context.Context, rec slog.Record) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.handlers {
		if h.Enabled(ctx, rec.Level) {
			_ = h.Handle(ctx, rec.Clone())
		}
	}

	return nil
}

// derive returns a router sharing the lock but holding its own handler set,
// so that handlers added to r later do not reach derived loggers.
func (r *logRouter) derive(attrs []slog.Attr, groups []string, wrap func(slog.Handler) slog.Handler) *logRouter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	derived := &logRouter{
		mu:       r.mu,
		handlers: make(map[string]slog.Handler, len(r.handlers)),
		attrs:    attrs,
		groups:   groups,
	}
	for name, h := range r.handlers {
		derived.handlers[name] = wrap(h)
	}

	return derived
}

func (r *logRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, r.attrs...), attrs...)

	return r.derive(merged, append([]string{}, r.groups...), func(h slog.Handler) slog.Handler {
		return h.WithAttrs(attrs)
	})
}

func (r *logRouter) WithGroup(name string) slog.Handler {
	groups := append(append([]string{}, r.groups...), name)

	return r.derive(append([]slog.Attr{}, r.attrs...), groups, func(h slog.Handler) slog.Handler {
		return h.WithGroup(name)
	})
}

// SetHandler installs handler under name, replacing any previous one.
func (r *logRouter) SetHandler(name string, handler slog.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := handler
	if len(r.attrs) > 0 {
		h = h.WithAttrs(r.attrs)
	}
	for _, group := range r.groups {
		h = h.WithGroup(group)
	}

	r.handlers[name] = h
}

// RemoveHandler uninstalls the handler of name and returns it.
func (r *logRouter) RemoveHandler(name string) (slog.Handler, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handlers[name]
	delete(r.handlers, name)

	return h, ok
}

// newTintHandler returns the colored handler used for all log output. Colors
// are disabled unless w is a terminal.
func newTintHandler(w io.Writer, level slog.Level) slog.Handler {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})
}

func setupLogging(router *logRouter, w io.Writer, level slog.Level) {
	router.SetHandler(terminalLogHandler, newTintHandler(w, level))
	slog.SetDefault(slog.New(router))
}
