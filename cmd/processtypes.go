/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/valemdb/internal/iofs"
	"github.com/gnames/valemdb/internal/iostore"
	"github.com/gnames/valemdb/pkg/schema"
	"github.com/spf13/cobra"
)

// getProcessTypesCmd returns the process-types command.
func getProcessTypesCmd() *cobra.Command {
	ptCmd := &cobra.Command{
		Use:     "process-types",
		Aliases: []string{"pt"},
		Short:   "List or seed process types",
		Long: `List or seed process types. Reactions refer to process types by
their abbreviations.

Seeding inserts new abbreviations and updates descriptions of known
ones. Without a file the built-in table is used.

Examples:
  valemdb process-types list
  valemdb process-types seed
  valemdb process-types seed my_process_types.yaml`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List process types ordered by abbreviation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				res, err := st.ProcessTypes().All(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed [FILE]",
		Short: "Insert or update process types from a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pts []schema.ProcessType
			var err error
			if len(args) == 1 {
				pts, err = iofs.ReadProcessTypes(args[0])
			} else {
				pts, err = iofs.ProcessTypes()
			}
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				if err := st.ProcessTypes().Seed(ctx, pts); err != nil {
					return err
				}
				gn.Info("Seeded <em>%d</em> process types", len(pts))
				return nil
			})
		},
	}

	ptCmd.AddCommand(listCmd, seedCmd)
	return ptCmd
}
