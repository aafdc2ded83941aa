package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alur/WinUnionFS/internal/ui"
	"github.com/spf13/cobra"
)

func newBrowseCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "Browse the merged folders interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.openSession()
			defer s.Close()

			start, err := s.Open(pathArg(args))
			if err != nil {
				return err
			}

			b := newBrowser(start, enumFlags(all))
			defer b.Close()

			return app.browse(cmd.Context(), b)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include hidden items")

	return cmd
}

// browse runs the UI with the logs routed into it.
func (app *App) browse(ctx context.Context, b *browser) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	uiHandler := ui.NewHandler(ctx, cancel, b)

	terminal, hadTerminal := app.logs.RemoveHandler(terminalLogHandler)
	app.logs.SetHandler(uiLogHandler, newTintHandler(uiHandler.LogWriter, app.logLevel))

	defer func() {
		app.logs.RemoveHandler(uiLogHandler)
		if hadTerminal {
			app.logs.SetHandler(terminalLogHandler, terminal)
		}
	}()

	if err := uiHandler.Launch(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("(browse) %w", err)
	}

	return nil
}
