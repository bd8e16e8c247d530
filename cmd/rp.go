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

	"github.com/gnames/valemdb/internal/iostore"
	"github.com/spf13/cobra"
)

// getRPCmd returns the rp command for stateful species.
func getRPCmd() *cobra.Command {
	rpCmd := &cobra.Command{
		Use:   "rp",
		Short: "Find or add stateful species",
		Long: `Find or add stateful species (RPs): a formula followed by zero or
more states separated by ";", "," or spaces. The order of states does
not matter.

Examples:
  valemdb rp get "H2O v=1;J=2"
  valemdb rp add "He n=2;*"
  valemdb rp filter "H2O v=1"
  valemdb rp filter --alias "XLYOFNOQVPJJNP-UHFFFAOYSA-N v=1"
  valemdb rp states 12`,
	}

	getCmd := &cobra.Command{
		Use:   "get TEXT",
		Short: "Print the RP with exactly the states in TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				rp, err := st.RPs().Get(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rp)
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add TEXT",
		Short: "Print the RP for TEXT, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				rp, created, err := st.RPs().GetOrCreate(ctx, args[0])
				if err != nil {
					return err
				}
				reportCreated(created, rp.QualifiedID(), rp.Text)
				return printJSON(cmd.OutOrStdout(), rp)
			})
		},
	}

	var useAlias bool
	filterCmd := &cobra.Command{
		Use:   "filter TEXT",
		Short: "List RPs of a species that have at least the states in TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				res, err := st.RPs().Filter(ctx, args[0], useAlias)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	filterCmd.Flags().BoolVarP(&useAlias, "alias", "a", false,
		"accept InChI or InChIKey in place of the formula")

	statesCmd := &cobra.Command{
		Use:   "states RP_ID",
		Short: "List states of an RP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				res, err := st.RPs().States(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}

	rpCmd.AddCommand(getCmd, addCmd, filterCmd, statesCmd)
	return rpCmd
}
