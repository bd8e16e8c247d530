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
	"github.com/gnames/valemdb/internal/iooptimize"
	"github.com/gnames/valemdb/pkg/config"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	var jobs int

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Refresh renderings and compact the database",
		Long: `Bring a populated catalogue up to date with the current parser.

The command renders HTML and LaTeX of species, states, RPs and reactions
again from their stored canonical text, removes rows whose parent rows
are gone and unused references, then reclaims storage with VACUUM and
ANALYZE. Stored texts are never changed. Texts that the current parser
would write differently are reported in the log.

Prerequisites:
  - Database must be created (run 'valemdb create' first)

Examples:
  valemdb optimize
  valemdb optimize -j 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("jobs") {
				cfg.Update([]config.Option{config.OptJobsNumber(jobs)})
			}
			return runOptimize(cmd, args)
		},
	}

	optimizeCmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"number of rendering workers (default: config jobs_number)")

	return optimizeCmd
}

func runOptimize(
	_ *cobra.Command,
	_ []string,
) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
Run 'valemdb create' first to initialize the schema.`)
		return nil
	}

	optimizer := iooptimize.NewOptimizer(cfg, op, newParser())

	if err := optimizer.Optimize(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info(`Database optimization is complete!

You can re-run 'valemdb optimize' after parser upgrades.`)

	return nil
}
