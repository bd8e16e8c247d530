package iooptimize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// orphanQuery deletes rows of a table whose parent rows are gone.
type orphanQuery struct {
	table string
	query string
}

// orphanQueries run in order, children after the rows they point to.
var orphanQueries = []orphanQuery{
	{
		table: "species_aliases",
		query: `DELETE FROM species_aliases
WHERE species_id NOT IN (SELECT id FROM species)`,
	},
	{
		table: "rps",
		query: `DELETE FROM rps
WHERE species_id NOT IN (SELECT id FROM species)`,
	},
	{
		table: "states",
		query: `DELETE FROM states
WHERE rp_id NOT IN (SELECT id FROM rps)`,
	},
	{
		table: "reaction_reactants",
		query: `DELETE FROM reaction_reactants
WHERE reaction_id NOT IN (SELECT id FROM reactions)
	OR rp_id NOT IN (SELECT id FROM rps)`,
	},
	{
		table: "reaction_products",
		query: `DELETE FROM reaction_products
WHERE reaction_id NOT IN (SELECT id FROM reactions)
	OR rp_id NOT IN (SELECT id FROM rps)`,
	},
	{
		table: "reaction_process_types",
		query: `DELETE FROM reaction_process_types
WHERE reaction_id NOT IN (SELECT id FROM reactions)
	OR process_type_id NOT IN (SELECT id FROM process_types)`,
	},
	{
		table: "reaction_datasets",
		query: `DELETE FROM reaction_datasets
WHERE reaction_id NOT IN (SELECT id FROM reactions)`,
	},
	{
		table: "reaction_dataset_refs",
		query: `DELETE FROM reaction_dataset_refs
WHERE data_set_id NOT IN (SELECT id FROM reaction_datasets)
	OR ref_id NOT IN (SELECT id FROM refs)`,
	},
	{
		table: "refs",
		query: `DELETE FROM refs
WHERE id NOT IN (SELECT ref_id FROM reaction_dataset_refs)`,
	},
}

// removeOrphans deletes dangling rows left by deletions that bypassed
// the registries, and references no dataset uses anymore.
func (o *optimizer) removeOrphans(ctx context.Context) (string, error) {
	gdb := o.operator.DB().WithContext(ctx)

	var total int64
	for _, v := range orphanQueries {
		res := gdb.Exec(v.query)
		if res.Error != nil {
			return "", OrphanRemovalError(v.table, res.Error)
		}
		if res.RowsAffected > 0 {
			slog.Info("Removed orphans",
				"table", v.table, "count", res.RowsAffected)
		}
		total += res.RowsAffected
	}

	msg := "<em>No orphaned records found</em>"
	if total > 0 {
		msg = fmt.Sprintf(
			"<em>Removed %s orphaned records</em>",
			humanize.Comma(total),
		)
	}
	return msg, nil
}
