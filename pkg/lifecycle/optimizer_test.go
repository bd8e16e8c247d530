package lifecycle_test

import (
	"context"
	"testing"

	"github.com/gnames/valemdb/internal/iodb"
	"github.com/gnames/valemdb/internal/iooptimize"
	"github.com/gnames/valemdb/pkg/config"
	"github.com/gnames/valemdb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestOptimizerContract ensures that the iooptimize optimizer
// satisfies the lifecycle.Optimizer interface and refuses to run
// without a connection.
func TestOptimizerContract(t *testing.T) {
	var opt lifecycle.Optimizer = iooptimize.NewOptimizer(
		config.New(), iodb.NewSQLiteOperator(), nil,
	)
	assert.Error(t, opt.Optimize(context.Background()))
}
