package lifecycle

import (
	"context"
)

// Optimizer brings a populated catalogue up to date with the current
// parser and compacts the database.
//
// Optimization is safe to run repeatedly:
// - HTML and LaTeX are rendered again from the stored canonical text
// - rows that lost their parents are removed
// - storage is reclaimed and planner statistics are refreshed
type Optimizer interface {
	// Optimize runs all optimization steps in order. Stored canonical
	// texts are never changed, so identities of species, RPs and
	// reactions survive parser upgrades.
	Optimize(ctx context.Context) error
}
