// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func SetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file.json> <path=value>...",
		Short: "Set properties of a JSON document",
		Long: "Set properties of a JSON document. Values are parsed as JSON, " +
			"and taken as strings if they are not valid JSON.",
		Args: cobra.MinimumNArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			s, doc, err := openSession(settings, args[0])
			if err != nil {
				return err
			}
			defer s.Close()
			for _, arg := range args[1:] {
				path, val, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected path=value, not %q", arg)
				}
				if err := s.SetValue(path, parseValue(val)); err != nil {
					return err
				}
			}
			if write, _ := cmd.Flags().GetBool("write"); write {
				return os.WriteFile(args[0], doc.Bytes(), 0o644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.String())
			return nil
		},
	}

	cmd.Flags().Bool("write", false, "write the result to the file instead of printing it")

	return cmd
}

// parseValue returns the JSON value of the given text, or the text
// itself if it is not valid JSON.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}
