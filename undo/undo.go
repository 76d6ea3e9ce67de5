// Copyright (c) 2021, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package undo provides a bounded undo / redo history of reversible
// [Command]s. Recording a new command discards any redo history, which
// is the standard linear (non-branching) undo model.
package undo

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cogentcore.org/propgrid/events"
	"github.com/google/uuid"
)

var (
	// ErrNoCommand is returned by Undo and Redo when there is
	// nothing to undo or redo.
	ErrNoCommand = errors.New("undo: no command")

	// ErrCannotCancel is returned by Undo when the next command
	// can not be canceled.
	ErrCannotCancel = errors.New("undo: command can not be canceled")

	// ErrCannotExecute is returned by Execute and Redo when the
	// command can not be executed.
	ErrCannotExecute = errors.New("undo: command can not be executed")
)

// DefaultMaxCommands is the default bound on the number of commands
// that can be undone.
var DefaultMaxCommands = 100

// DefaultNoCommandText is the description returned when there is no
// command to undo or redo.
var DefaultNoCommandText = "(none)"

// Command is a named, reversible unit of work.
type Command interface {

	// Name returns the human readable name of the command.
	Name() string

	// Execute applies the command.
	Execute() error

	// Cancel reverses the command.
	Cancel() error

	// CanExecute returns whether Execute can be called.
	CanExecute() bool

	// CanCancel returns whether Cancel can be called.
	CanCancel() bool
}

// EventTypes are the types of [Event] sent by a [Recorder].
type EventTypes int32

const (
	// Added is sent when a command is pushed or executed.
	Added EventTypes = iota

	// Canceled is sent when a command is undone.
	Canceled

	// Redone is sent when a command is redone.
	Redone

	// Cleared is sent when the history is cleared.
	Cleared

	// Trimmed is sent for each command evicted from the bottom
	// of the history by [Recorder.MaxCommands].
	Trimmed
)

func (et EventTypes) String() string {
	switch et {
	case Added:
		return "Added"
	case Canceled:
		return "Canceled"
	case Redone:
		return "Redone"
	case Cleared:
		return "Cleared"
	case Trimmed:
		return "Trimmed"
	}
	return fmt.Sprintf("EventTypes(%d)", int32(et))
}

// Event is sent to the listeners of a [Recorder].
type Event struct {
	Type EventTypes

	// ID is the record ID of the command; it is the zero UUID for Cleared.
	ID uuid.UUID

	// Command is nil for Cleared.
	Command Command
}

// Rec is one recorded command.
type Rec struct {

	// ID uniquely identifies this record.
	ID uuid.UUID

	// Command is the recorded command.
	Command Command
}

// Recorder is the undo / redo manager, managing the two stacks of
// done and undone commands. Every recorded command is on at most one
// of the stacks. Events are sent after the lock is released, so that
// listeners can query the recorder.
type Recorder struct {

	// MaxCommands is the maximum number of commands that can be undone;
	// the oldest are discarded beyond that. 0 means unbounded.
	MaxCommands int

	// NoCommandText is the description returned by UndoDescription
	// and RedoDescription when the respective stack is empty.
	NoCommandText string

	done   []Rec
	undone []Rec

	listeners events.Listeners[Event]

	// mu protects the stacks
	mu sync.Mutex
}

// NewRecorder returns a new [Recorder] with the given maximum number of
// commands, with 0 meaning unbounded.
func NewRecorder(maxCommands int) *Recorder {
	return &Recorder{MaxCommands: maxCommands, NoCommandText: DefaultNoCommandText}
}

// OnEvent adds a function called for every [Event].
func (r *Recorder) OnEvent(fun func(ev Event)) events.ID {
	return r.listeners.Add(fun)
}

// RemoveOnEvent removes the listener with the given ID.
func (r *Recorder) RemoveOnEvent(id events.ID) bool {
	return r.listeners.Remove(id)
}

func (r *Recorder) send(evs ...Event) {
	for _, ev := range evs {
		r.listeners.Call(ev)
	}
}

// Push records a command that has already been applied, without
// executing it. Any redo history is discarded.
func (r *Recorder) Push(c Command) {
	r.mu.Lock()
	evs := r.pushLocked(c)
	r.mu.Unlock()
	r.send(evs...)
}

// pushLocked pushes the command onto the done stack, clears the undone
// stack and trims the history, returning the events to send.
func (r *Recorder) pushLocked(c Command) []Event {
	rec := Rec{ID: uuid.New(), Command: c}
	r.done = append(r.done, rec)
	r.undone = nil
	evs := []Event{{Type: Added, ID: rec.ID, Command: c}}
	if r.MaxCommands > 0 && len(r.done) > r.MaxCommands {
		n := len(r.done) - r.MaxCommands
		for _, tr := range r.done[:n] {
			evs = append(evs, Event{Type: Trimmed, ID: tr.ID, Command: tr.Command})
		}
		r.done = append([]Rec(nil), r.done[n:]...)
	}
	return evs
}

// Execute executes the command and records it on success. A command
// that can not be executed or fails is discarded, and the error is
// returned.
func (r *Recorder) Execute(c Command) error {
	if !c.CanExecute() {
		return fmt.Errorf("%w: %s", ErrCannotExecute, c.Name())
	}
	if err := c.Execute(); err != nil {
		return fmt.Errorf("undo: executing %s: %w", c.Name(), err)
	}
	r.Push(c)
	return nil
}

// Undo cancels the most recently done command and moves it to the redo
// stack. If the command fails to cancel, it is put back on the done
// stack and the error is returned, leaving the history unchanged.
func (r *Recorder) Undo() error {
	r.mu.Lock()
	n := len(r.done)
	if n == 0 {
		r.mu.Unlock()
		return ErrNoCommand
	}
	rec := r.done[n-1]
	if !rec.Command.CanCancel() {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrCannotCancel, rec.Command.Name())
	}
	r.done = r.done[:n-1]
	r.mu.Unlock()

	if err := rec.Command.Cancel(); err != nil {
		r.mu.Lock()
		r.done = append(r.done, rec)
		r.mu.Unlock()
		slog.Warn("undo: cancel failed", "command", rec.Command.Name(), "err", err)
		return fmt.Errorf("undo: canceling %s: %w", rec.Command.Name(), err)
	}

	r.mu.Lock()
	r.undone = append(r.undone, rec)
	r.mu.Unlock()
	r.send(Event{Type: Canceled, ID: rec.ID, Command: rec.Command})
	return nil
}

// Redo executes the most recently undone command again and moves it
// back to the done stack. If the command can not be executed or fails,
// it stays on the redo stack and the error is returned.
func (r *Recorder) Redo() error {
	r.mu.Lock()
	n := len(r.undone)
	if n == 0 {
		r.mu.Unlock()
		return ErrNoCommand
	}
	rec := r.undone[n-1]
	if !rec.Command.CanExecute() {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrCannotExecute, rec.Command.Name())
	}
	r.undone = r.undone[:n-1]
	r.mu.Unlock()

	if err := rec.Command.Execute(); err != nil {
		r.mu.Lock()
		r.undone = append(r.undone, rec)
		r.mu.Unlock()
		slog.Warn("undo: redo failed", "command", rec.Command.Name(), "err", err)
		return fmt.Errorf("undo: redoing %s: %w", rec.Command.Name(), err)
	}

	r.mu.Lock()
	r.done = append(r.done, rec)
	var evs []Event
	if r.MaxCommands > 0 && len(r.done) > r.MaxCommands {
		tr := r.done[0]
		r.done = r.done[1:]
		evs = append(evs, Event{Type: Trimmed, ID: tr.ID, Command: tr.Command})
	}
	r.mu.Unlock()
	r.send(append([]Event{{Type: Redone, ID: rec.ID, Command: rec.Command}}, evs...)...)
	return nil
}

// Clear discards both stacks.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.done = nil
	r.undone = nil
	r.mu.Unlock()
	r.send(Event{Type: Cleared})
}

// CanUndo returns whether there is a command that can be undone.
func (r *Recorder) CanUndo() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.done)
	return n > 0 && r.done[n-1].Command.CanCancel()
}

// CanRedo returns whether there is a command that can be redone.
func (r *Recorder) CanRedo() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.undone)
	return n > 0 && r.undone[n-1].Command.CanExecute()
}

func (r *Recorder) noCommand() string {
	if r.NoCommandText == "" {
		return DefaultNoCommandText
	}
	return r.NoCommandText
}

// UndoDescription returns the name of the command that Undo would cancel.
func (r *Recorder) UndoDescription() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.done); n > 0 {
		return r.done[n-1].Command.Name()
	}
	return r.noCommand()
}

// RedoDescription returns the name of the command that Redo would execute.
func (r *Recorder) RedoDescription() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.undone); n > 0 {
		return r.undone[n-1].Command.Name()
	}
	return r.noCommand()
}

// Done returns the done stack, from oldest to most recent.
func (r *Recorder) Done() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return commands(r.done)
}

// Undone returns the redo stack, from oldest to the next to be redone.
func (r *Recorder) Undone() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return commands(r.undone)
}

func commands(recs []Rec) []Command {
	cs := make([]Command, len(recs))
	for i, rec := range recs {
		cs[i] = rec.Command
	}
	return cs
}
