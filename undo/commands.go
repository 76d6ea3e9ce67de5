// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package undo

import (
	"errors"
)

// Func is a [Command] defined by a pair of functions.
type Func struct {

	// Label is the name of the command.
	Label string

	// Do applies the command.
	Do func() error

	// Undo reverses the command. A Func without Undo can not be canceled.
	Undo func() error
}

func (f *Func) Name() string { return f.Label }
func (f *Func) CanExecute() bool { return f.Do != nil }
func (f *Func) CanCancel() bool { return f.Undo != nil }

func (f *Func) Execute() error {
	if f.Do == nil {
		return ErrCannotExecute
	}
	return f.Do()
}

func (f *Func) Cancel() error {
	if f.Undo == nil {
		return ErrCannotCancel
	}
	return f.Undo()
}

// Composite is a [Command] made of several commands that are executed
// in order and canceled in reverse order, as one unit. When one of them
// fails, the ones already applied are reversed before the error is
// returned.
type Composite struct {

	// Label is the name of the command.
	Label string

	// Commands are the commands, in execution order.
	Commands []Command
}

func (c *Composite) Name() string { return c.Label }

func (c *Composite) CanExecute() bool {
	for _, cmd := range c.Commands {
		if !cmd.CanExecute() {
			return false
		}
	}
	return true
}

func (c *Composite) CanCancel() bool {
	for _, cmd := range c.Commands {
		if !cmd.CanCancel() {
			return false
		}
	}
	return true
}

func (c *Composite) Execute() error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(); err != nil {
			var errs []error
			errs = append(errs, err)
			for j := i - 1; j >= 0; j-- {
				if rerr := c.Commands[j].Cancel(); rerr != nil {
					errs = append(errs, rerr)
				}
			}
			return errors.Join(errs...)
		}
	}
	return nil
}

func (c *Composite) Cancel() error {
	n := len(c.Commands)
	for i := n - 1; i >= 0; i-- {
		if err := c.Commands[i].Cancel(); err != nil {
			errs := []error{err}
			for j := i + 1; j < n; j++ {
				if rerr := c.Commands[j].Execute(); rerr != nil {
					errs = append(errs, rerr)
				}
			}
			return errors.Join(errs...)
		}
	}
	return nil
}
