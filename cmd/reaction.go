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
	"github.com/gnames/valemdb/pkg/registry"
	"github.com/gnames/valemdb/pkg/schema"
	"github.com/spf13/cobra"
)

type reactionFlags struct {
	comment      string
	processTypes []string
	nonStrict    bool
}

func (f *reactionFlags) options() registry.ReactionOptions {
	return registry.ReactionOptions{
		Comment:      f.comment,
		ProcessTypes: f.processTypes,
		NonStrict:    f.nonStrict,
	}
}

func (f *reactionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.comment, "comment", "c", "",
		"comment that distinguishes otherwise identical reactions")
	cmd.Flags().StringSliceVarP(&f.processTypes, "process-types", "p", nil,
		"process type abbreviations, e.g. EEX,HDS")
	cmd.Flags().BoolVarP(&f.nonStrict, "non-strict", "n", false,
		"skip charge and atom balance checks")
}

type participants struct {
	Reactants []schema.RP `json:"reactants"`
	Products  []schema.RP `json:"products"`
}

// getReactionCmd returns the reaction command.
func getReactionCmd() *cobra.Command {
	reactionCmd := &cobra.Command{
		Use:   "reaction",
		Short: "Find or add reactions",
		Long: `Find or add reactions between stateful species.

A reaction is identified by its canonical text, its comment and its set
of process types. Reactions must conserve charge and atoms unless
--non-strict is given.

Examples:
  valemdb reaction list "2H -> H2"
  valemdb reaction get "2H -> H2" -p HDS
  valemdb reaction add "e- + H2 -> e- + H2 v=1" -p EXV -c "resonant"
  valemdb reaction create "2H -> H2" --allow-duplicate
  valemdb reaction participants 3
  valemdb reaction molecularity 3
  valemdb reaction reset-html 3`,
	}

	var listNonStrict bool
	listCmd := &cobra.Command{
		Use:   "list TEXT",
		Short: "List reactions with the canonical form of TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				res, err := st.Reactions().AllMatching(ctx, args[0], !listNonStrict)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	listCmd.Flags().BoolVarP(&listNonStrict, "non-strict", "n", false,
		"skip charge and atom balance checks")

	var getFlags reactionFlags
	getCmd := &cobra.Command{
		Use:   "get TEXT",
		Short: "Print the reaction with TEXT, comment and process types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				r, err := st.Reactions().Get(ctx, args[0], getFlags.options())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), r)
			})
		},
	}
	getFlags.bind(getCmd)

	var addFlags reactionFlags
	addCmd := &cobra.Command{
		Use:   "add TEXT",
		Short: "Print the matching reaction, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				r, created, err := st.Reactions().GetOrCreate(ctx, args[0],
					addFlags.options())
				if err != nil {
					return err
				}
				reportCreated(created, r.QualifiedID(), r.Text)
				return printJSON(cmd.OutOrStdout(), r)
			})
		},
	}
	addFlags.bind(addCmd)

	var createFlags reactionFlags
	var allowDuplicate bool
	createCmd := &cobra.Command{
		Use:   "create TEXT",
		Short: "Create a reaction, failing if an equivalent one exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				r, err := st.Reactions().Create(ctx, args[0],
					createFlags.options(), allowDuplicate)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), r)
			})
		},
	}
	createFlags.bind(createCmd)
	createCmd.Flags().BoolVar(&allowDuplicate, "allow-duplicate", false,
		"create the reaction even if an equivalent one exists")

	participantsCmd := &cobra.Command{
		Use:   "participants REACTION_ID",
		Short: "List reactant and product RPs of a reaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				rs, ps, err := st.Reactions().Participants(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(),
					participants{Reactants: rs, Products: ps})
			})
		},
	}

	molecularityCmd := &cobra.Command{
		Use:   "molecularity REACTION_ID",
		Short: "Print the number of reactant units of a reaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				n, err := st.Reactions().Molecularity(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), n)
			})
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset-html REACTION_ID",
		Short: "Render HTML and LaTeX of a reaction again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				r, err := st.Reactions().ByID(ctx, id)
				if err != nil {
					return err
				}
				if err = st.Reactions().ResetHTML(ctx, r); err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), r)
			})
		},
	}

	reactionCmd.AddCommand(
		listCmd, getCmd, addCmd, createCmd,
		participantsCmd, molecularityCmd, resetCmd,
	)
	return reactionCmd
}
