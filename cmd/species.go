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

// getSpeciesCmd returns the species command with get and add
// subcommands.
func getSpeciesCmd() *cobra.Command {
	speciesCmd := &cobra.Command{
		Use:   "species",
		Short: "Find or add species by formula",
		Long: `Find or add species by their chemical formula.

Formulas are canonicalized first, "(1H)2(16O)" and "H1He+1" are stored
in their canonical forms.

Examples:
  valemdb species get H2O
  valemdb species add "(235U)"`,
	}

	getCmd := &cobra.Command{
		Use:   "get FORMULA",
		Short: "Print the species with the canonical form of FORMULA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				sp, err := st.Species().Get(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), sp)
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add FORMULA",
		Short: "Print the species for FORMULA, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				sp, created, err := st.Species().GetOrCreate(ctx, args[0])
				if err != nil {
					return err
				}
				reportCreated(created, sp.QualifiedID(), sp.Text)
				return printJSON(cmd.OutOrStdout(), sp)
			})
		},
	}

	speciesCmd.AddCommand(getCmd, addCmd)
	return speciesCmd
}

// getAliasCmd returns the alias command.
func getAliasCmd() *cobra.Command {
	aliasCmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage alternative names of species",
		Long: `Manage alternative names of species such as InChI strings,
InChIKeys or common names. Alias texts are unique across all species.

Examples:
  valemdb alias add 1 water
  valemdb alias resolve water
  valemdb alias list 1`,
	}

	addCmd := &cobra.Command{
		Use:   "add SPECIES_ID ALIAS",
		Short: "Attach ALIAS to a species",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				a, err := st.Aliases().AddAlias(ctx, id, args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), a)
			})
		},
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve ALIAS",
		Short: "Print the species that has ALIAS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				sp, err := st.Aliases().Resolve(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), sp)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list SPECIES_ID",
		Short: "List aliases of a species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				res, err := st.Aliases().Aliases(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}

	aliasCmd.AddCommand(addCmd, resolveCmd, listCmd)
	return aliasCmd
}
