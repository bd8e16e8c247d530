package registry_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/valemdb/pkg/errcode"
	"github.com/gnames/valemdb/pkg/registry"
	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	wrap := func(code gn.ErrorCode) error {
		return fmt.Errorf("outer: %w", &gn.Error{Code: code, Err: errors.New("x")})
	}

	assert.True(t, registry.IsNotFound(wrap(errcode.StoreNotFoundError)))
	assert.False(t, registry.IsNotFound(wrap(errcode.StoreQueryError)))
	assert.False(t, registry.IsNotFound(errors.New("plain")))
	assert.False(t, registry.IsNotFound(nil))

	assert.True(t, registry.IsConflict(wrap(errcode.StoreAliasConflictError)))
	assert.True(t, registry.IsConflict(wrap(errcode.StoreConflictError)))
	assert.True(t, registry.IsDuplicateReaction(
		wrap(errcode.StoreDuplicateReactionError)))
	assert.True(t, registry.IsProcessTypeNotFound(
		wrap(errcode.StoreProcessTypeNotFoundError)))
}
