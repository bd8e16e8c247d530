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
	"github.com/gnames/valemdb/internal/iostore"
	"github.com/spf13/cobra"
)

// getDeleteCmd returns the delete command. Deletion removes everything
// that depends on the deleted row.
func getDeleteCmd() *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete species, RPs, states or reactions",
		Long: `Delete rows together with everything that depends on them.

  species   removes its aliases, RPs, their states and reaction links
  rp        removes its states and reaction links, keeps the species
  state     removes a single state, the RP keeps its text and key
  reaction  removes its links and datasets

Examples:
  valemdb delete species 4
  valemdb delete reaction 12`,
	}

	subs := []struct {
		use, short string
		fn         func(*iostore.Store, context.Context, int) error
	}{
		{"species SPECIES_ID", "Delete a species and its RPs",
			(*iostore.Store).DeleteSpecies},
		{"rp RP_ID", "Delete an RP and its states",
			(*iostore.Store).DeleteRP},
		{"state STATE_ID", "Delete a state",
			(*iostore.Store).DeleteState},
		{"reaction REACTION_ID", "Delete a reaction and its datasets",
			(*iostore.Store).DeleteReaction},
	}

	for _, v := range subs {
		deleteCmd.AddCommand(&cobra.Command{
			Use:   v.use,
			Short: v.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return withStore(func(ctx context.Context, st *iostore.Store) error {
					if err := v.fn(st, ctx, id); err != nil {
						return err
					}
					gn.Info("Deleted <em>%s</em>", args[0])
					return nil
				})
			},
		})
	}

	return deleteCmd
}
