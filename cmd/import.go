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
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/valemdb/internal/ioimport"
	"github.com/gnames/valemdb/internal/iostore"
	"github.com/gnames/valemdb/pkg/config"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var (
		kind       string
		nonStrict  bool
		noProgress bool
		jobs       int
	)

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import species, RPs or reactions from a text file",
		Long: `Import records from a text file, one record per line.

Reaction lines look like

  text|comment|ABBR,ABBR

where comment and process types are optional. Species and RP files hold
one formula or stateful species per line. Empty lines and lines that
start with "#" are skipped.

Records that already exist are counted and left alone. Lines that cannot
be parsed, or refer to unknown process types, are reported at the end
and do not stop the import.

Examples:
  valemdb import reactions.txt
  valemdb import -k species species.txt
  valemdb import -k rps --no-progress states.txt
  valemdb import --non-strict -j 8 reactions.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var importOpts []config.Option
			if cmd.Flags().Changed("kind") {
				importOpts = append(importOpts, config.OptImportKind(kind))
			}
			if cmd.Flags().Changed("non-strict") {
				importOpts = append(importOpts, config.OptImportNonStrict(nonStrict))
			}
			if cmd.Flags().Changed("no-progress") {
				importOpts = append(importOpts, config.OptImportWithProgress(!noProgress))
			}
			if cmd.Flags().Changed("jobs") {
				importOpts = append(importOpts, config.OptJobsNumber(jobs))
			}
			cfg.Update(importOpts)

			return withStore(func(ctx context.Context, st *iostore.Store) error {
				return runImport(ctx, cmd, st, args[0])
			})
		},
	}

	importCmd.Flags().StringVarP(&kind, "kind", "k", "reactions",
		"kind of records: reactions, rps, species")
	importCmd.Flags().BoolVarP(&nonStrict, "non-strict", "n", false,
		"import reactions that do not balance")
	importCmd.Flags().BoolVar(&noProgress, "no-progress", false,
		"do not show progress")
	importCmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"number of parsing workers (default: config jobs_number)")

	return importCmd
}

func runImport(
	ctx context.Context,
	cmd *cobra.Command,
	st *iostore.Store,
	path string,
) error {
	start := time.Now()
	gn.Info("Importing %s from <em>%s</em>...", cfg.Import.Kind, path)

	im := ioimport.New(cfg, st)
	stats, err := im.ImportFile(ctx, path, cfg.Import.Kind)
	if err != nil {
		return err
	}

	gn.Info("Imported <em>%s</em> records in %s: "+
		"%s created, %s existing, %s failed",
		humanize.Comma(int64(stats.Records)),
		gnfmt.TimeString(time.Since(start).Seconds()),
		humanize.Comma(int64(stats.Created)),
		humanize.Comma(int64(stats.Existing)),
		humanize.Comma(int64(stats.Failed)),
	)
	if stats.Failed > 0 {
		gn.Warn("Some lines were not imported, see the failures below")
		return printJSON(cmd.OutOrStdout(), stats.Failures)
	}
	return nil
}
