package iooptimize

import (
	"context"
	"log/slog"
	"time"
)

// vacuum reclaims storage and updates query planner statistics.
// VACUUM cannot run inside a transaction block.
func (o *optimizer) vacuum(ctx context.Context) error {
	gdb := o.operator.DB().WithContext(ctx)
	stmts := []string{"VACUUM ANALYZE"}
	if o.cfg.Database.Driver == "sqlite" {
		stmts = []string{"VACUUM", "ANALYZE"}
	}

	timeStart := time.Now()
	for _, v := range stmts {
		slog.Info("Running " + v)
		if err := gdb.Exec(v).Error; err != nil {
			return VacuumError(v, err)
		}
	}
	slog.Info("Vacuum completed", "duration", time.Since(timeStart).String())
	return nil
}
