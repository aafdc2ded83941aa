package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alur/WinUnionFS/internal/configuration"
	"github.com/alur/WinUnionFS/internal/folder"
	"github.com/spf13/afero"
)

type options struct {
	configFile string
	storeKind  string
	storePath  string
	logLevel   string
	cpuProfile string
	memProfile string
	memStats   bool
}

// App holds the state shared by all commands of one invocation.
type App struct {
	opts options

	fs     afero.Fs
	out    io.Writer
	errOut io.Writer

	logs     *logRouter
	logLevel slog.Level
	config   *configuration.AppConfiguration
	store    configuration.Store

	stopFns []func()
}

// NewApp returns an [App] writing results to out and logs to errOut. A nil fs
// selects the operating system filesystem for backing folders.
func NewApp(fs afero.Fs, out io.Writer, errOut io.Writer) *App {
	return &App{
		fs:     fs,
		out:    out,
		errOut: errOut,
		logs:   newLogRouter(),
	}
}

// Execute runs the command line args and releases everything set up for it.
func (app *App) Execute(ctx context.Context, args []string) error {
	defer app.teardown()

	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetOut(app.out)
	root.SetErr(app.errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("(app) %w", err)
	}

	return nil
}

func (app *App) setup(ctx context.Context) error {
	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	config, err := configuration.LoadAppConfiguration(configHandler, app.opts.configFile)
	if err != nil {
		return fmt.Errorf("(app-setup) %w", err)
	}

	if app.opts.storeKind != "" {
		config.StoreKind = app.opts.storeKind
		if app.opts.storePath == "" {
			if config.StorePath, err = configuration.DefaultStorePath(config.StoreKind); err != nil {
				return fmt.Errorf("(app-setup) %w", err)
			}
		}
	}
	if app.opts.storePath != "" {
		config.StorePath = app.opts.storePath
	}
	if app.opts.logLevel != "" {
		if config.LogLevel, err = configuration.ParseLogLevel(app.opts.logLevel); err != nil {
			return fmt.Errorf("(app-setup) %w", err)
		}
	}

	app.config = config
	app.logLevel = config.LogLevel
	setupLogging(app.logs, app.errOut, app.logLevel)

	store, err := configuration.NewStore(config.StoreKind, config.StorePath, configHandler)
	if err != nil {
		return fmt.Errorf("(app-setup) %w", err)
	}
	app.store = store

	slog.Debug("Using group store",
		"kind", config.StoreKind,
		"path", config.StorePath,
	)

	cpuProfiler := newCPUProfiler(ctx, app.opts.cpuProfile)
	allocProfiler := newAllocProfiler(ctx, app.opts.memProfile)
	app.stopFns = append(app.stopFns, cpuProfiler.Stop, allocProfiler.Stop)

	if app.opts.memStats {
		memObserver := newMemoryObserver(ctx)
		app.stopFns = append(app.stopFns, memObserver.Stop)
	}

	return nil
}

func (app *App) teardown() {
	for i := len(app.stopFns) - 1; i >= 0; i-- {
		app.stopFns[i]()
	}
	app.stopFns = nil
}

// openSession returns a new session on the configured store. The caller
// closes it.
func (app *App) openSession() *session {
	table := folder.NewTable()

	var binder *folder.Binder
	if app.fs == nil {
		binder = folder.NewOSBinder(table)
	} else {
		binder = folder.NewBinder(app.fs, table, nil)
	}

	return newSession(app.store, binder)
}
