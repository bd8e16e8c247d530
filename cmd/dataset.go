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
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/valemdb/internal/iostore"
	"github.com/gnames/valemdb/pkg/schema"
	"github.com/spf13/cobra"
)

// getDataSetCmd returns the dataset command.
func getDataSetCmd() *cobra.Command {
	dsCmd := &cobra.Command{
		Use:   "dataset",
		Short: "Attach data and references to reactions",
		Long: `Attach data to reactions. A dataset keeps a JSON payload, a comment
and bibliographic references. References with a known DOI are reused.

Examples:
  valemdb dataset add 3 --payload rates.json --doi 10.1000/xyz123 \
    --title "Rate coefficients" --authors "A. Author" --year 2020
  valemdb dataset get 1
  valemdb dataset list 3`,
	}

	var (
		comment, payload             string
		doi, title, authors, journal string
		year                         int
	)
	addCmd := &cobra.Command{
		Use:   "add REACTION_ID",
		Short: "Create a dataset for a reaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ds := schema.ReactionDataSet{ReactionID: id, Comment: comment}
			if payload != "" {
				data, err := os.ReadFile(payload)
				if err != nil {
					gn.PrintErrorMessage(err)
					return err
				}
				ds.Payload = string(data)
			}
			var refs []schema.Ref
			if title != "" || doi != "" {
				ref := schema.Ref{
					Title:   title,
					Authors: authors,
					Journal: journal,
					Year:    year,
				}
				if doi != "" {
					ref.DOI = &doi
				}
				refs = append(refs, ref)
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				if err := st.DataSets().Create(ctx, &ds, refs...); err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), ds)
			})
		},
	}
	addCmd.Flags().StringVarP(&comment, "comment", "c", "", "dataset comment")
	addCmd.Flags().StringVar(&payload, "payload", "", "JSON file with data")
	addCmd.Flags().StringVar(&doi, "doi", "", "reference DOI")
	addCmd.Flags().StringVar(&title, "title", "", "reference title")
	addCmd.Flags().StringVar(&authors, "authors", "", "reference authors")
	addCmd.Flags().StringVar(&journal, "journal", "", "reference journal")
	addCmd.Flags().IntVar(&year, "year", 0, "reference year")

	getCmd := &cobra.Command{
		Use:   "get DATASET_ID",
		Short: "Print a dataset with its reaction and references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				ds, err := st.DataSets().Get(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), ds)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list REACTION_ID",
		Short: "List datasets of a reaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, st *iostore.Store) error {
				res, err := st.DataSets().ForReaction(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}

	dsCmd.AddCommand(addCmd, getCmd, listCmd)
	return dsCmd
}
