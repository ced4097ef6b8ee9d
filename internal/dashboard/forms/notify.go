// Package forms drives the multi-step dashboard forms: schema validation,
// debounced availability checks, submission and the notification shown to
// the user afterwards.
package forms

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/zamanihq/dashboard/pkg/slogx"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notifier presents the outcome of a form action to the user.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, level Level, message string)

func (f NotifierFunc) Notify(ctx context.Context, level Level, message string) {
	f(ctx, level, message)
}

// WriterNotifier prints one line per notification, e.g. to a terminal.
type WriterNotifier struct {
	mu sync.Mutex
	W  io.Writer
}

func (n *WriterNotifier) Notify(ctx context.Context, level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintf(n.W, "[%s] %s\n", level, message); err != nil {
		slogx.FromContext(ctx).Warn("notification dropped", "level", string(level), "err", err)
	}
}

// Note is one recorded notification.
type Note struct {
	Level   Level
	Message string
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

func (r *Recorder) Notify(_ context.Context, level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{Level: level, Message: message})
}

// Notes returns a copy of everything recorded so far.
func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Note(nil), r.notes...)
}
