package iostore_test

import (
	"strconv"
	"testing"

	"github.com/gnames/valemdb/internal/iostore"
	"github.com/gnames/valemdb/internal/iotesting"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStore(t *testing.T) (*iostore.Store, *gorm.DB) {
	t.Helper()
	gdb := iotesting.DB(t)
	iotesting.SeedProcessTypes(t, gdb)
	return iostore.New(gdb, nil), gdb
}

func count(t *testing.T, gdb *gorm.DB, model any) int {
	t.Helper()
	var n int64
	err := gdb.Model(model).Count(&n).Error
	require.NoError(t, err)
	return int(n)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
