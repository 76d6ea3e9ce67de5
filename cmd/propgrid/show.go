// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"cogentcore.org/propgrid/base/errors"
	"cogentcore.org/propgrid/config"
	"cogentcore.org/propgrid/grid"
	"github.com/spf13/cobra"
)

func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file.json>",
		Short: "Print the visible rows of a JSON document",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			s, _, err := openSession(settings, args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			if err := applyFilter(cmd, s); err != nil {
				return err
			}
			if err := dump(cmd, s); err != nil {
				return err
			}

			watch, _ := cmd.Flags().GetBool("watch")
			if !watch {
				return nil
			}
			file, _ := cmd.Flags().GetString("settings")
			if file == "" {
				if file, err = config.DefaultFile(); err != nil {
					return err
				}
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return config.Watch(ctx, file, func(st *config.Settings, err error) {
				if err != nil {
					slog.Error("propgrid: reloading settings", "err", err)
					return
				}
				if err := reload(cmd, s, st); err != nil {
					slog.Error("propgrid: applying settings", "err", err)
				}
			})
		},
	}

	cmd.Flags().StringP("filter", "f", "", "only show properties matching the filter text")
	cmd.Flags().String("mode", "", "filter mode: substring, regexp, glob or fuzzy")
	cmd.Flags().StringSlice("uncheck", nil, "categories to hide")
	cmd.Flags().BoolP("watch", "w", false, "print again whenever the settings file changes")

	errors.Must(cmd.RegisterFlagCompletionFunc("mode", cobra.FixedCompletions(
		[]string{config.FilterSubstring, config.FilterRegexp, config.FilterGlob, config.FilterFuzzy},
		cobra.ShellCompDirectiveNoFileComp)))

	return cmd
}

// reload applies reloaded settings to the session, keeping the filter
// mode given on the command line, and prints the session again.
func reload(cmd *cobra.Command, s *grid.Session, st *config.Settings) error {
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		st.FilterMode = mode
	}
	if err := s.ApplySettings(st); err != nil {
		return err
	}
	return dump(cmd, s)
}

func applyFilter(cmd *cobra.Command, s *grid.Session) error {
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		if err := s.SetFilterMode(mode); err != nil {
			return err
		}
	}
	if filter, _ := cmd.Flags().GetString("filter"); filter != "" {
		if err := s.SetFilterText(filter); err != nil {
			return err
		}
	}
	unchecked, _ := cmd.Flags().GetStringSlice("uncheck")
	for _, c := range unchecked {
		s.UncheckCategory(c)
	}
	return nil
}

func dump(cmd *cobra.Command, s *grid.Session) error {
	out, err := s.Dump()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
