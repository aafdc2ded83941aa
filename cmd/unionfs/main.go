package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
)

const (
	stackTraceBufMax = 1 << 24
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  = "dev"
)

func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "unionfs",
		Short:         "Browse groups of folders as merged folders",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.opts.configFile, "config", "", "settings file (env format)")
	flags.StringVar(&app.opts.storeKind, "store", "", "group store kind (dir, yaml)")
	flags.StringVar(&app.opts.storePath, "store-path", "", "group store location")
	flags.StringVar(&app.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&app.opts.cpuProfile, "cpuprofile", "", "write cpu profile to file")
	flags.StringVar(&app.opts.memProfile, "memprofile", "", "write memory profile to this file")
	flags.BoolVar(&app.opts.memStats, "memstats", false, "log peak memory consumption at exit")

	root.AddCommand(
		newGroupsCommand(app),
		newGroupCommand(app),
		newLsCommand(app),
		newTreeCommand(app),
		newCatCommand(app),
		newInspectCommand(app),
		newBrowseCommand(app),
	)

	return root
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandlers(cancel)

	app := NewApp(nil, os.Stdout, os.Stderr)
	if err := app.Execute(ctx, os.Args[1:]); err != nil {
		slog.Error("Command failed", "err", err)
		ExitCode = 1
	}
}
