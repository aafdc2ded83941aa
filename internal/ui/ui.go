// Package ui implements an interactive namespace browser using [tea].
package ui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Entry is one child of the browsed location.
type Entry struct {
	Name     string
	Folder   bool
	Size     int64
	Modified time.Time
	Delegate int
}

type browserProvider interface {
	// Location returns the display path of the current location.
	Location() string

	// Targets returns the backing folders of the current location.
	Targets() []string

	// Entries lists the children of the current location.
	Entries() ([]Entry, error)

	// Enter moves into the folder at index of the last listing.
	Enter(index int) error

	// Up moves to the parent location. It reports false at the root.
	Up() bool
}

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	browser browserProvider
	program *tea.Program

	LogWriter *TeaLogWriter

	Initialized atomic.Bool
	Failed      atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler] browsing
// with browser.
func NewHandler(ctx context.Context, cancel context.CancelFunc, browser browserProvider) *Handler {
	handler := &Handler{
		browser: browser,
	}

	model := NewTeaModel(handler, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch runs the browser until it is quit.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
