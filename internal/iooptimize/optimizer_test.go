package iooptimize_test

import (
	"context"
	"testing"

	"github.com/gnames/valemdb/internal/iooptimize"
	"github.com/gnames/valemdb/internal/iostore"
	"github.com/gnames/valemdb/internal/iotesting"
	"github.com/gnames/valemdb/pkg/config"
	"github.com/gnames/valemdb/pkg/db"
	"github.com/gnames/valemdb/pkg/registry"
	"github.com/gnames/valemdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*config.Config, db.Operator, *iostore.Store) {
	t.Helper()
	cfg := iotesting.Config(t)
	cfg.Update([]config.Option{
		config.OptDatabaseBatchSize(2),
		config.OptJobsNumber(3),
	})
	op := iotesting.Operator(t)
	require.NoError(t, schema.Migrate(op.DB()))
	iotesting.SeedProcessTypes(t, op.DB())
	return cfg, op, iostore.New(op.DB(), nil)
}

func TestOptimizeRendersHTML(t *testing.T) {
	ctx := context.Background()
	cfg, op, st := setup(t)
	gdb := op.DB()

	var species []*schema.Species
	for _, v := range []string{"H2O", "CO2", "He+", "(1H)2(16O)", "C3H8+2"} {
		sp, _, err := st.Species().GetOrCreate(ctx, v)
		require.NoError(t, err)
		species = append(species, sp)
	}
	rp, _, err := st.RPs().GetOrCreate(ctx, "H2O v=1;J=2")
	require.NoError(t, err)
	r, _, err := st.Reactions().GetOrCreate(ctx, "2H -> H2",
		registry.ReactionOptions{ProcessTypes: []string{"HDS"}})
	require.NoError(t, err)

	for _, v := range species {
		err = gdb.Table("species").Where("id = ?", v.ID).
			Update("html", "broken").Error
		require.NoError(t, err)
	}
	require.NoError(t, gdb.Exec("UPDATE states SET html = ''").Error)
	require.NoError(t, gdb.Table("rps").Where("id = ?", rp.ID).
		Update("html", "broken").Error)
	require.NoError(t, gdb.Table("reactions").Where("id = ?", r.ID).
		Updates(map[string]any{"html": "", "latex": "broken"}).Error)

	opt := iooptimize.NewOptimizer(cfg, op, nil)
	require.NoError(t, opt.Optimize(ctx))

	for _, v := range species {
		var got schema.Species
		require.NoError(t, gdb.First(&got, v.ID).Error)
		assert.Equal(t, v.HTML, got.HTML)
		assert.Equal(t, v.Text, got.Text)
	}

	var gotRP schema.RP
	require.NoError(t, gdb.Preload("States").First(&gotRP, rp.ID).Error)
	assert.Equal(t, rp.HTML, gotRP.HTML)
	require.Len(t, gotRP.States, 2)
	for _, v := range gotRP.States {
		assert.NotEmpty(t, v.HTML)
	}

	var gotR schema.Reaction
	require.NoError(t, gdb.First(&gotR, r.ID).Error)
	assert.Equal(t, r.HTML, gotR.HTML)
	assert.Equal(t, r.LaTeX, gotR.LaTeX)
}

func TestOptimizeKeepsStoredText(t *testing.T) {
	ctx := context.Background()
	cfg, op, _ := setup(t)
	gdb := op.DB()

	stale := []schema.Species{
		{Text: "H1He+1", HTML: "", Charge: 1},
		{Text: "Zz", HTML: "Zz", Charge: 0},
	}
	require.NoError(t, gdb.Create(&stale).Error)

	opt := iooptimize.NewOptimizer(cfg, op, nil)
	require.NoError(t, opt.Optimize(ctx))

	var got schema.Species
	require.NoError(t, gdb.First(&got, stale[0].ID).Error)
	assert.Equal(t, "H1He+1", got.Text)
	assert.Equal(t, "HHe<sup>+</sup>", got.HTML)

	require.NoError(t, gdb.First(&got, stale[1].ID).Error)
	assert.Equal(t, "Zz", got.Text)
	assert.Equal(t, "Zz", got.HTML)
}

func TestOptimizeRemovesOrphans(t *testing.T) {
	ctx := context.Background()
	cfg, op, st := setup(t)
	gdb := op.DB()

	sp, _, err := st.Species().GetOrCreate(ctx, "H2O")
	require.NoError(t, err)
	_, err = st.Aliases().AddAlias(ctx, sp.ID, "water")
	require.NoError(t, err)

	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = OFF").Error)
	err = gdb.Exec(
		"INSERT INTO species_aliases (species_id, text) VALUES (?, ?)",
		999, "lost",
	).Error
	require.NoError(t, err)
	err = gdb.Exec(
		"INSERT INTO states (rp_id, state_type, text, html) VALUES (?, ?, ?, ?)",
		999, 1, "v=1", "v=1",
	).Error
	require.NoError(t, err)
	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, gdb.Create(&schema.Ref{
		Authors: "Nobody", Title: "Unused reference",
	}).Error)

	opt := iooptimize.NewOptimizer(cfg, op, nil)
	require.NoError(t, opt.Optimize(ctx))

	var n int64
	require.NoError(t, gdb.Model(&schema.SpeciesAlias{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, gdb.Model(&schema.State{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, gdb.Model(&schema.Ref{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	// a second run finds nothing to do
	require.NoError(t, opt.Optimize(ctx))
	require.NoError(t, gdb.Model(&schema.SpeciesAlias{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestOptimizeCanceled(t *testing.T) {
	cfg, op, st := setup(t)
	_, _, err := st.Species().GetOrCreate(context.Background(), "H2O")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opt := iooptimize.NewOptimizer(cfg, op, nil)
	err = opt.Optimize(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
