package iostore_test

import (
	"context"
	"testing"

	"github.com/gnames/valemdb/pkg/registry"
	"github.com/gnames/valemdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteSpecies(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)

	rp, _, err := st.RPs().GetOrCreate(ctx, "H n=2;*")
	require.NoError(t, err)
	_, _, err = st.RPs().GetOrCreate(ctx, "H v=1")
	require.NoError(t, err)
	_, err = st.Aliases().AddAlias(ctx, rp.SpeciesID, "hydrogen")
	require.NoError(t, err)
	_, _, err = st.Reactions().GetOrCreate(ctx, "H n=2;* -> H v=1",
		registry.ReactionOptions{})
	require.NoError(t, err)

	require.NoError(t, st.DeleteSpecies(ctx, rp.SpeciesID))

	for _, v := range []any{
		&schema.Species{}, &schema.SpeciesAlias{}, &schema.RP{},
		&schema.State{}, &schema.ReactantList{}, &schema.ProductList{},
	} {
		assert.Equal(t, 0, count(t, gdb, v))
	}
	assert.Equal(t, 1, count(t, gdb, &schema.Reaction{}))

	err = st.DeleteSpecies(ctx, rp.SpeciesID)
	assert.True(t, registry.IsNotFound(err))
}

func TestDeleteRP(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)

	rp, _, err := st.RPs().GetOrCreate(ctx, "(235U) l=0;n=1;***")
	require.NoError(t, err)
	require.NoError(t, st.DeleteRP(ctx, rp.ID))

	_, err = st.RPs().Get(ctx, "(235U) l=0;n=1;***")
	assert.True(t, registry.IsNotFound(err))
	assert.Equal(t, 0, count(t, gdb, &schema.State{}))
	assert.Equal(t, 1, count(t, gdb, &schema.Species{}), "species stays")

	again, created, err := st.RPs().GetOrCreate(ctx, "(235U) l=0;***;n=1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, rp.Text, again.Text)

	assert.True(t, registry.IsNotFound(st.DeleteRP(ctx, rp.ID)))
}

func TestDeleteState(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)

	rp, _, err := st.RPs().GetOrCreate(ctx, "H2 v=0;J=2")
	require.NoError(t, err)
	require.Len(t, rp.States, 2)

	require.NoError(t, st.DeleteState(ctx, rp.States[0].ID))
	assert.Equal(t, 1, count(t, gdb, &schema.State{}))

	got, err := st.RPs().Get(ctx, rp.Text)
	require.NoError(t, err)
	assert.Equal(t, rp.Text, got.Text)
	assert.Equal(t, rp.UUID, got.UUID)
	assert.Len(t, got.States, 1)
	assert.True(t, registry.IsNotFound(st.DeleteState(ctx, rp.States[0].ID)))
}

func TestDeleteReaction(t *testing.T) {
	ctx := context.Background()
	st, gdb := newStore(t)

	r, _, err := st.Reactions().GetOrCreate(ctx, beHText,
		registry.ReactionOptions{ProcessTypes: []string{"EEX", "EXV"}})
	require.NoError(t, err)
	ds := &schema.ReactionDataSet{ReactionID: r.ID}
	require.NoError(t, st.DataSets().Create(ctx, ds, beHRef()))

	require.NoError(t, st.DeleteReaction(ctx, r.ID))

	for _, v := range []any{
		&schema.Reaction{}, &schema.ReactantList{}, &schema.ProductList{},
		&schema.ReactionDataSet{},
	} {
		assert.Equal(t, 0, count(t, gdb, v))
	}
	var links int64
	err = gdb.Table("reaction_process_types").Count(&links).Error
	require.NoError(t, err)
	assert.Zero(t, links)

	assert.Equal(t, 3, count(t, gdb, &schema.RP{}), "RPs stay")
	assert.Equal(t, 1, count(t, gdb, &schema.Ref{}), "refs stay")
	assert.Equal(t, 4, count(t, gdb, &schema.ProcessType{}))

	assert.True(t, registry.IsNotFound(st.DeleteReaction(ctx, r.ID)))
}
