// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watch calls the function with freshly loaded settings whenever the
// given settings file is written or created, until
// the context is done. The directory of the file is watched, so that
// editors replacing the file are seen. Load errors are passed to the
// function along with the settings loaded so far.
func Watch(ctx context.Context, file string, fun func(s *Settings, err error)) error {
	file, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	file, err = filepath.Abs(file)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(file)); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != file || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			slog.Debug("config: settings file changed", "file", file, "op", ev.Op)
			fun(Load(file))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config: watching settings", "file", file, "err", err)
		}
	}
}
