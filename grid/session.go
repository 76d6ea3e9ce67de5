// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid provides the editing session of a property grid: the
// category tree of the properties of one or more targets, undoable
// edits, and visibility filtering.
package grid

import (
	"errors"
	"fmt"
	"log/slog"

	"cogentcore.org/propgrid/base/keylist"
	"cogentcore.org/propgrid/config"
	"cogentcore.org/propgrid/events"
	"cogentcore.org/propgrid/multi"
	"cogentcore.org/propgrid/props"
	"cogentcore.org/propgrid/undo"
	"cogentcore.org/propgrid/visibility"
	"github.com/google/uuid"
)

// ErrNoTargets is returned when a session has no targets.
var ErrNoTargets = errors.New("grid: no targets")

// EventTypes are the types of session [Event]s.
type EventTypes int32

const (
	// PropertyChanged is sent when the value of the property at
	// [Event.Path] changed.
	PropertyChanged EventTypes = iota

	// VisibilityChanged is sent when the visibility of any row changed.
	VisibilityChanged

	// HistoryChanged is sent when the undo history changed.
	HistoryChanged

	// TreeRebuilt is sent when the category tree was rebuilt.
	TreeRebuilt
)

func (et EventTypes) String() string {
	switch et {
	case PropertyChanged:
		return "PropertyChanged"
	case VisibilityChanged:
		return "VisibilityChanged"
	case HistoryChanged:
		return "HistoryChanged"
	case TreeRebuilt:
		return "TreeRebuilt"
	}
	return fmt.Sprintf("EventTypes(%d)", int32(et))
}

// Event is sent to the listeners of a [Session].
type Event struct {
	Type EventTypes

	// Path is the path of the changed property, for PropertyChanged.
	Path string

	// Undo is the recorder event, for HistoryChanged.
	Undo undo.Event
}

// Session is one property grid editing one or more targets.
type Session struct {

	// ID uniquely identifies the session.
	ID uuid.UUID

	// Settings are the settings of the session; use [Session.ApplySettings]
	// to change them.
	Settings *config.Settings

	// Types are the registered types used to bind targets and
	// expand property values.
	Types *props.Registry

	// Recorder is the undo history of the edits.
	Recorder *undo.Recorder

	// Engine computes the visibility of the rows.
	Engine *visibility.Engine

	targets []any
	object  props.Object
	roots   []*visibility.Category

	// cells are the rows by property path.
	cells keylist.List[string, *visibility.Cell]

	// watches are the change listeners added to properties.
	watches []watch

	// watched are the paths of the properties that announce changes.
	watched map[string]bool

	filter    string
	recID     events.ID
	engID     events.ID
	listeners events.Listeners[Event]
}

type watch struct {
	notifier props.ChangeNotifier
	id       events.ID
}

// New returns a new [Session] editing the given targets, which are
// [props.Object]s or values of types registered in types. Nil settings
// mean [config.Defaults].
func New(types *props.Registry, settings *config.Settings, targets ...any) (*Session, error) {
	if settings == nil {
		settings = config.Defaults()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ID:       uuid.New(),
		Settings: settings,
		Types:    types,
		Recorder: undo.NewRecorder(settings.MaxCommands),
		Engine:   visibility.NewEngine(),
	}
	s.Recorder.NoCommandText = settings.NoCommandText
	s.applyDimensions()
	s.engID = s.Engine.OnChange(func(*visibility.Engine) {
		s.send(Event{Type: VisibilityChanged})
	})
	s.recID = s.Recorder.OnEvent(s.recorderEvent)
	if err := s.SetTargets(targets...); err != nil {
		s.Close()
		return nil, err
	}
	slog.Debug("grid: new session", "id", s.ID, "targets", len(targets))
	return s, nil
}

// Close detaches the session from its targets.
func (s *Session) Close() {
	s.unwatch()
	s.Engine.RemoveOnChange(s.engID)
	s.Engine.Close()
	s.Recorder.RemoveOnEvent(s.recID)
}

// OnChange adds a function called for every session [Event].
func (s *Session) OnChange(fun func(ev Event)) events.ID {
	return s.listeners.Add(fun)
}

// RemoveOnChange removes the listener with the given ID.
func (s *Session) RemoveOnChange(id events.ID) bool {
	return s.listeners.Remove(id)
}

func (s *Session) send(ev Event) {
	s.listeners.Call(ev)
}

// SetTargets replaces the edited targets, which clears the undo history.
func (s *Session) SetTargets(targets ...any) error {
	if len(targets) == 0 {
		return ErrNoTargets
	}
	objs := make([]props.Object, len(targets))
	for i, t := range targets {
		obj, err := s.bind(t)
		if err != nil {
			return err
		}
		objs[i] = obj
	}
	object, err := multi.NewObject(objs...)
	if err != nil {
		return err
	}
	s.targets = targets
	s.object = object
	s.Recorder.Clear()
	s.Refresh()
	return nil
}

func (s *Session) bind(target any) (props.Object, error) {
	if s.Types == nil {
		obj, ok := target.(props.Object)
		if !ok {
			return nil, fmt.Errorf("grid: %T: %w", target, props.ErrNotRegistered)
		}
		return obj, nil
	}
	return s.Types.Bind(target)
}

// Targets returns the edited targets.
func (s *Session) Targets() []any { return s.targets }

// Object returns the object presenting the common properties of the targets.
func (s *Session) Object() props.Object { return s.object }

// Categories returns the top level categories.
func (s *Session) Categories() []*visibility.Category { return s.roots }

// Cell returns the row of the property at the given path, which is the
// property name prefixed by the paths of the expanded values containing
// it, separated by dots.
func (s *Session) Cell(path string) (*visibility.Cell, bool) {
	return s.cells.AtTry(path)
}

// Paths returns the paths of all rows in tree order.
func (s *Session) Paths() []string {
	return s.cells.Keys
}

// Visible returns whether the row at the given path is visible.
func (s *Session) Visible(path string) bool {
	c, ok := s.cells.AtTry(path)
	return ok && c.Visible
}

// Value returns the value of the property at the given path.
func (s *Session) Value(path string) (any, error) {
	c, err := s.cell(path)
	if err != nil {
		return nil, err
	}
	return c.Property.Value()
}

func (s *Session) cell(path string) (*visibility.Cell, error) {
	c, ok := s.cells.AtTry(path)
	if !ok {
		return nil, fmt.Errorf("grid: %q: %w", path, props.ErrNotFound)
	}
	return c, nil
}

// SetValue sets the property at the given path to the given value,
// as an undoable command.
func (s *Session) SetValue(path string, v any) error {
	c, err := s.cell(path)
	if err != nil {
		return err
	}
	if c.Property.IsReadOnly() {
		return fmt.Errorf("grid: %q: %w", path, props.ErrReadOnly)
	}
	return s.Recorder.Execute(newSetCommand(path, c.Property, v))
}

// ResetValue resets the property at the given path to its default
// value, as an undoable command.
func (s *Session) ResetValue(path string) error {
	c, err := s.cell(path)
	if err != nil {
		return err
	}
	if !c.Property.CanResetValue() {
		return fmt.Errorf("grid: %q: %w", path, props.ErrNoDefault)
	}
	return s.Recorder.Execute(newResetCommand(path, c.Property))
}

// Undo undoes the last edit.
func (s *Session) Undo() error { return s.Recorder.Undo() }

// Redo redoes the last undone edit.
func (s *Session) Redo() error { return s.Recorder.Redo() }

func (s *Session) recorderEvent(ev undo.Event) {
	if ec, ok := ev.Command.(*editCommand); ok {
		switch ev.Type {
		case undo.Added, undo.Canceled, undo.Redone:
			s.edited(ec)
		}
	}
	s.send(Event{Type: HistoryChanged, Undo: ev})
}

// edited updates the session after an edit was applied or reversed.
func (s *Session) edited(ec *editCommand) {
	c, ok := s.cells.AtTry(ec.path)
	switch {
	case !ok || c.Property != ec.prop || c.Categories != nil || s.expandable(c.Property):
		s.Refresh()
		s.send(Event{Type: PropertyChanged, Path: ec.path})
	case !s.watched[ec.path]:
		s.propertyChanged(ec.path, c.Property.Name())
	}
}

func (s *Session) propertyChanged(path, name string) {
	s.send(Event{Type: PropertyChanged, Path: path})
	s.Engine.PropertyChanged(name)
}

// Refresh rebuilds the category tree from the current values of the
// targets, keeping the filter state.
func (s *Session) Refresh() {
	s.unwatch()
	s.cells.Reset()
	s.roots = s.buildTree(s.object, "", 0)
	s.watch()
	s.Engine.SetRoots(s.roots...)
	s.send(Event{Type: TreeRebuilt})
}

func (s *Session) watch() {
	s.watched = map[string]bool{}
	for i, path := range s.cells.Keys {
		cell := s.cells.Values[i]
		cn, ok := cell.Property.(props.ChangeNotifier)
		if !ok {
			continue
		}
		name := cell.Property.Name()
		id := cn.AddChangeListener(func(props.Property) { s.propertyChanged(path, name) })
		if id == events.NoID {
			continue
		}
		s.watches = append(s.watches, watch{notifier: cn, id: id})
		s.watched[path] = true
	}
}

func (s *Session) unwatch() {
	for _, w := range s.watches {
		w.notifier.RemoveChangeListener(w.id)
	}
	s.watches = nil
	s.watched = nil
}

// Watches returns the number of change listeners the session has
// added to properties of its targets.
func (s *Session) Watches() int { return len(s.watches) }

// SetFilterText sets the filter text, matched according to the settings.
func (s *Session) SetFilterText(text string) error {
	m, err := newMatcher(s.Settings, text)
	if err != nil {
		return err
	}
	s.filter = text
	s.Engine.SetMatcher(m)
	return nil
}

// FilterText returns the filter text.
func (s *Session) FilterText() string { return s.filter }

// SetFilterMode sets the filter mode setting and rematches the filter text.
func (s *Session) SetFilterMode(mode string) error {
	if _, err := visibility.ParseMode(mode); err != nil {
		return err
	}
	old := s.Settings.FilterMode
	s.Settings.FilterMode = mode
	if err := s.SetFilterText(s.filter); err != nil {
		s.Settings.FilterMode = old
		return err
	}
	return nil
}

func newMatcher(settings *config.Settings, text string) (visibility.Matcher, error) {
	if text == "" {
		return nil, nil
	}
	mode, err := visibility.ParseMode(settings.FilterMode)
	if err != nil {
		return nil, err
	}
	return visibility.NewMatcher(text, visibility.MatchOptions{
		Mode:          mode,
		CaseSensitive: settings.CaseSensitive,
		Threshold:     settings.FuzzyThreshold,
	})
}

// CheckCategory checks the category with the given name.
func (s *Session) CheckCategory(name string) { s.Engine.Checklist.Check(name) }

// UncheckCategory unchecks the category with the given name,
// hiding its rows.
func (s *Session) UncheckCategory(name string) { s.Engine.Checklist.Uncheck(name) }

// IsChecked returns whether the category with the given name is checked.
func (s *Session) IsChecked(name string) bool { return s.Engine.Checklist.IsChecked(name) }

// ApplySettings replaces the settings, updating the history bound,
// the filter and the tree.
func (s *Session) ApplySettings(settings *config.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	m, err := newMatcher(settings, s.filter)
	if err != nil {
		return err
	}
	s.Settings = settings
	s.Recorder.MaxCommands = settings.MaxCommands
	s.Recorder.NoCommandText = settings.NoCommandText
	s.applyDimensions()
	s.Engine.SetMatcher(m)
	s.Refresh()
	return nil
}

func (s *Session) applyDimensions() {
	d := s.Settings.Dimensions
	s.Engine.SetDimension(visibility.DimCondition, d.Condition)
	s.Engine.SetDimension(visibility.DimFactory, d.Factory)
	s.Engine.SetDimension(visibility.DimText, d.Text)
	s.Engine.SetDimension(visibility.DimCategory, d.Category)
}
