// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"cogentcore.org/propgrid/base/errors"
	"cogentcore.org/propgrid/config"
	"github.com/spf13/cobra"
)

func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings",

		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			b, err := config.Marshal(settings, "."+format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	cmd.Flags().String("format", "toml", "output format: toml or yaml")
	errors.Must(cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"toml", "yaml"}, cobra.ShellCompDirectiveNoFileComp)))
	cmd.AddCommand(SettingsInitCmd())

	return cmd
}

func SettingsInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings to the settings file",

		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("settings")
			if file == "" {
				f, err := config.DefaultFile()
				if err != nil {
					return err
				}
				file = f
			}
			if err := config.Save(config.Defaults(), file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Clean(file))
			return nil
		},
	}

	return cmd
}
