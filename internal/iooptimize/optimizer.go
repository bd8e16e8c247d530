// Package iooptimize implements the Optimizer interface. This is an
// impure I/O package that renders stored entities again, removes
// dangling rows and reclaims database space.
package iooptimize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/valemdb/pkg/config"
	"github.com/gnames/valemdb/pkg/db"
	"github.com/gnames/valemdb/pkg/errcode"
	"github.com/gnames/valemdb/pkg/lifecycle"
	"github.com/gnames/valemdb/pkg/valem"
)

// optimizer implements the Optimizer interface.
type optimizer struct {
	cfg      *config.Config
	operator db.Operator
	parser   valem.Parser
}

// NewOptimizer creates a new Optimizer. A nil parser means the default
// valem parser.
func NewOptimizer(
	cfg *config.Config,
	op db.Operator,
	p valem.Parser,
) lifecycle.Optimizer {
	if p == nil {
		p = valem.New()
	}
	return &optimizer{
		cfg:      cfg,
		operator: op,
		parser:   p,
	}
}

// Optimize executes 3 sequential steps:
//  1. Render HTML and LaTeX of species, states, RPs and reactions
//  2. Remove rows whose parent rows are gone
//  3. Reclaim space and update planner statistics
//
// Errors are returned to the CLI layer for user-friendly display
// via gn.PrintErrorMessage().
func (o *optimizer) Optimize(ctx context.Context) error {
	if o.operator.DB() == nil {
		return &gn.Error{
			Code: errcode.DBNotConnectedError,
			Msg:  "Database not connected",
			Err:  errors.New("gorm handle is nil"),
		}
	}

	slog.Info("Starting database optimization")
	gn.Info(
		"Optimization in progress, " +
			"<em>it might take a while</em>...",
	)

	slog.Info("Step 1/3: Rendering stored entities")
	var updated, stale int
	for _, r := range renderers {
		stats, err := o.render(ctx, r)
		if err != nil {
			return NewStepError(1, "render entities", err)
		}
		updated += stats.updated
		stale += stats.stale
	}
	gn.Info("Rendered entities again, <em>%s</em> updated",
		humanize.Comma(int64(updated)))
	if stale > 0 {
		gn.Warn(fmt.Sprintf(
			"%s stored texts are not canonical anymore, see the log",
			humanize.Comma(int64(stale))))
	}

	slog.Info("Step 2/3: Removing orphans")
	msg, err := o.removeOrphans(ctx)
	if err != nil {
		return NewStepError(2, "remove orphans", err)
	}
	gn.Info(msg)

	slog.Info("Step 3/3: Reclaiming space")
	if err = o.vacuum(ctx); err != nil {
		return NewStepError(3, "vacuum", err)
	}

	slog.Info("Database optimization completed successfully")
	return nil
}
