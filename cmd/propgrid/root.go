// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"cogentcore.org/propgrid/base/logx"
	"cogentcore.org/propgrid/config"
	"cogentcore.org/propgrid/grid"
	"cogentcore.org/propgrid/jsondoc"
	"cogentcore.org/propgrid/notify"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "propgrid",
		Short:         "Show and edit JSON documents as property grids",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			vv, _ := cmd.Flags().GetBool("vv")
			v, _ := cmd.Flags().GetBool("verbose")
			q, _ := cmd.Flags().GetBool("quiet")
			logx.UserLevel = logx.LevelFromFlags(vv, v, q)
			logx.SetDefaultLogger()
		},
	}

	cmd.PersistentFlags().String("settings", "", "settings file (default ~/.config/propgrid/settings.toml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log informational messages")
	cmd.PersistentFlags().Bool("vv", false, "log debugging messages")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(SetCmd())
	cmd.AddCommand(SettingsCmd())

	return cmd
}

// loadSettings loads the settings named by the settings flag.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	file, _ := cmd.Flags().GetString("settings")
	return config.Load(file)
}

// openSession opens the given JSON file as the target of a new session.
func openSession(settings *config.Settings, file string) (*grid.Session, *jsondoc.Document, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, err
	}
	schema, err := jsondoc.InferSchema(filepath.Base(file), data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}
	doc, err := schema.Open(notify.NewRegistry(), data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}
	s, err := grid.New(nil, settings, doc)
	if err != nil {
		return nil, nil, err
	}
	return s, doc, nil
}
