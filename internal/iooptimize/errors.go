package iooptimize

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/valemdb/pkg/errcode"
)

// RenderError is returned when stored entities cannot be read or
// their renderings cannot be saved.
func RenderError(table string, err error) error {
	msg := "Cannot render rows of <em>%s</em> table"

	return &gn.Error{
		Code: errcode.OptimizerRenderError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("render %s: %w", table, err),
	}
}

// OrphanRemovalError is returned when removing orphan records fails.
func OrphanRemovalError(table string, err error) error {
	msg := "Failed to remove orphan records from <em>%s</em>"

	return &gn.Error{
		Code: errcode.OptimizerOrphanRemovalError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("delete orphans from %s: %w", table, err),
	}
}

// VacuumError is returned when VACUUM or ANALYZE fails.
func VacuumError(stmt string, err error) error {
	msg := "Failed to run <em>%s</em>"

	return &gn.Error{
		Code: errcode.OptimizerVacuumError,
		Msg:  msg,
		Vars: []any{stmt},
		Err:  fmt.Errorf("%s: %w", stmt, err),
	}
}

// StepError is returned when an optimization step fails.
type StepError struct {
	error
	gnlib.MessageBase
}

// NewStepError creates an error for a failed step.
func NewStepError(step int, name string, err error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Step %d Failed: %s</title>
<warn>%s</warn>

<em>Possible causes:</em>
  1. Database connection lost during processing
  2. Insufficient disk space
  3. Long-running transactions holding locks

<em>How to fix:</em>
  1. Check the database connection and disk space
  2. Review the valemdb log for details
  3. Retry the optimize operation
`,
		Vars: []any{step, name, err},
	}

	return StepError{
		error:       fmt.Errorf("step %d failed (%s): %w", step, name, err),
		MessageBase: msgBase,
	}
}

// Unwrap gives access to the error of the failed step.
func (e StepError) Unwrap() error {
	return e.error
}
